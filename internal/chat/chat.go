// Package chat orchestrates retrieval-augmented chat: search the index
// for grounding context, assemble a bounded system instruction, call the
// chat-completion provider, and return the answer with citations.
// There is no persisted conversation state; the caller supplies the
// history on every turn.
package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/scholex/semindex/internal/llm"
	"github.com/scholex/semindex/pkg/types"
)

const (
	// GroundingTopN is the number of retrieved items injected into the
	// system instruction.
	GroundingTopN = 5

	// DefaultTemperature keeps answers close to the provided context.
	DefaultTemperature = 0.3
	// DefaultMaxTokens bounds the generated answer length.
	DefaultMaxTokens = 1024

	// FallbackAnswer is returned when retrieval succeeded but the chat
	// provider failed; partial success is not presented as total failure.
	FallbackAnswer = "I'm unable to answer right now. Please try again in a moment."
)

const systemPromptHeader = `You are the research catalog assistant. Answer questions about the
datasets, case studies, and method modules listed below. Answer ONLY from
the provided content; if it does not contain enough information, say so
rather than guessing. Prefer concise, structured answers. When several
items are relevant, recommend at most 3-5 of them by title.`

// Searcher is the retrieval dependency of the orchestrator.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]types.SearchResult, error)
}

// Options configures one orchestrator instance.
type Options struct {
	TopN        int
	Temperature float64
	MaxTokens   int
}

// DefaultOptions returns the standard chat configuration.
func DefaultOptions() Options {
	return Options{
		TopN:        GroundingTopN,
		Temperature: DefaultTemperature,
		MaxTokens:   DefaultMaxTokens,
	}
}

// Orchestrator runs one grounded chat turn at a time.
type Orchestrator struct {
	searcher Searcher
	client   llm.Client
	opts     Options
	logger   *slog.Logger
}

// New creates an Orchestrator.
func New(searcher Searcher, client llm.Client, opts Options, logger *slog.Logger) *Orchestrator {
	if opts.TopN <= 0 {
		opts.TopN = GroundingTopN
	}
	if opts.Temperature == 0 {
		opts.Temperature = DefaultTemperature
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = DefaultMaxTokens
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		searcher: searcher,
		client:   client,
		opts:     opts,
		logger:   logger,
	}
}

// Chat answers one user message grounded in retrieved catalog content.
// Zero retrieved items still produce an answer: the system instruction
// degrades to "no relevant content found" and the model discloses the
// insufficiency. A chat-provider failure after successful retrieval
// yields the fallback answer with the citations intact.
func (o *Orchestrator) Chat(ctx context.Context, message string, history []types.Message) (*types.ChatAnswer, error) {
	if message == "" {
		return nil, fmt.Errorf("%w: message cannot be empty", types.ErrInvalidArgument)
	}

	results, err := o.searcher.Search(ctx, message, o.opts.TopN)
	if err != nil {
		return nil, fmt.Errorf("%w: retrieval: %v", types.ErrChatFailed, err)
	}

	messages := make([]types.Message, 0, len(history)+2)
	messages = append(messages, types.Message{Role: "system", Content: buildSystemPrompt(results)})
	messages = append(messages, history...)
	messages = append(messages, types.Message{Role: "user", Content: message})

	sources := make([]types.Source, len(results))
	for i, r := range results {
		sources[i] = types.Source{
			ContentType: r.ContentType,
			ContentID:   r.ContentID,
			Title:       r.Title,
			Similarity:  r.Similarity,
		}
	}

	answer, err := o.client.Chat(ctx, messages, llm.ChatOptions{
		MaxTokens:   o.opts.MaxTokens,
		Temperature: o.opts.Temperature,
	})
	if err != nil {
		o.logger.Error("chat provider failed, returning fallback", "err", err, "sources", len(sources))
		return &types.ChatAnswer{
			Answer:  FallbackAnswer,
			Sources: sources,
		}, nil
	}

	o.logger.Info("chat done", "history_len", len(history), "sources", len(sources))
	return &types.ChatAnswer{
		Answer:  answer,
		Sources: sources,
	}, nil
}

// buildSystemPrompt assembles the grounding context into one system
// instruction. Each item carries its type label and the full canonical
// text the index stored for it; the 200-char display snippet is a
// search-response shape and never feeds the model.
func buildSystemPrompt(results []types.SearchResult) string {
	var b strings.Builder
	b.WriteString(systemPromptHeader)
	b.WriteString("\n\n")

	if len(results) == 0 {
		b.WriteString("No relevant content was found in the catalog for this question. ")
		b.WriteString("Tell the user that nothing relevant is available rather than inventing an answer.")
		return b.String()
	}

	b.WriteString("Relevant catalog content:\n")
	for i, r := range results {
		fmt.Fprintf(&b, "\n%d. [%s] %s (relevance %.3f)\n%s\n",
			i+1, r.ContentType.Label(), r.Title, r.Similarity, r.Content)
	}
	return b.String()
}
