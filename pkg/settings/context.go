package settings

import (
	"context"
)

type contextKey string

const runContextKey contextKey = "easyface.run"

// IntoContext attaches the options of the current run to ctx.
func IntoContext(ctx context.Context, s *Run) context.Context {
	return context.WithValue(ctx, runContextKey, s)
}

// FromContext returns the run attached by IntoContext.
func FromContext(ctx context.Context) (*Run, bool) {
	s, ok := ctx.Value(runContextKey).(*Run)
	return s, ok && s != nil
}

// PathsFromContext returns the resolved file locations of the run in ctx.
func PathsFromContext(ctx context.Context) (Paths, bool) {
	s, ok := FromContext(ctx)
	if !ok {
		return Paths{}, false
	}
	return s.Paths, true
}
