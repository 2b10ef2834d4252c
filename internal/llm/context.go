package llm

import (
	"context"
	"slices"
)

// Purposes label each request in the request log.
const (
	PurposeExplanation = "explanation"
	PurposePing        = "ping"
	purposeUnknown     = "unknown"
)

// KnownPurpose reports whether p is a label this app attaches to requests.
func KnownPurpose(p string) bool {
	return slices.Contains([]string{PurposeExplanation, PurposePing, purposeUnknown}, p)
}

type purposeKey struct{}

// WithPurpose labels requests made with ctx.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the label of ctx, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok && v != "" {
		return v
	}
	return purposeUnknown
}
