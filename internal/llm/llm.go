package llm

import (
	"context"
	"encoding/json"
	"errors"
)

// Client abstracts the hosted model that performs the actual scoring. The
// rest of the system treats it as an opaque oracle from code text to a raw
// JSON verdict, so the provider can be swapped or faked in tests.
type Client interface {
	AnalyzeCode(ctx context.Context, input AnalyzeInput) (json.RawMessage, error)
}

// AnalyzeInput captures the inputs needed for a code quality analysis.
type AnalyzeInput struct {
	Code             string
	Filename         string
	Language         string
	StructureSummary string
	Model            string
}

// ErrNotImplemented is returned by the placeholder client.
var ErrNotImplemented = errors.New("LLM not implemented")

// PlaceholderClient stands in when no provider is configured.
type PlaceholderClient struct{}

// AnalyzeCode returns ErrNotImplemented.
func (PlaceholderClient) AnalyzeCode(ctx context.Context, input AnalyzeInput) (json.RawMessage, error) {
	_ = ctx
	_ = input
	return nil, ErrNotImplemented
}
