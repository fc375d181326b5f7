// Package types defines the shared data types for the semantic index:
// content types and their natural keys, the metadata tagged union,
// search results, chat messages and answers, and the error taxonomy
// used across all public operations.
package types
