package types

import "errors"

// Error taxonomy shared across the core. Each public operation surfaces
// exactly one failure kind; transport-level provider errors are wrapped
// at the orchestration boundary rather than leaked to callers.
var (
	// ErrInvalidArgument is returned for empty queries or messages.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound is returned when the requested content has not been embedded.
	ErrNotFound = errors.New("not found")
	// ErrProviderFailed is returned when an embedding or chat provider call fails.
	ErrProviderFailed = errors.New("provider failed")
	// ErrCredentialMissing is returned when a provider credential is not configured.
	ErrCredentialMissing = errors.New("credential not configured")
	// ErrSearchFailed wraps provider failures at the search boundary.
	ErrSearchFailed = errors.New("search failed")
	// ErrChatFailed wraps provider failures at the chat boundary.
	ErrChatFailed = errors.New("chat failed")
)
