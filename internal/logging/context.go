package logging

import (
	"context"
	"log/slog"
)

const (
	// FieldComponent names the emitting package.
	FieldComponent = "component"
	// FieldRunID identifies one invocation of the pipeline.
	FieldRunID = "run_id"
	// FieldJob names the configured job being processed.
	FieldJob = "job"
	// FieldCanonicalID is the resolved game identifier.
	FieldCanonicalID = "canonical_id"
	// FieldTitle is the human-readable source title.
	FieldTitle = "title"
	// FieldAsset is an asset file path.
	FieldAsset = "asset"
	// FieldDestination is a planned output path.
	FieldDestination = "destination"
	// FieldStrategy is the matching strategy that produced a result.
	FieldStrategy = "strategy"
)

type contextKey string

const (
	runIDKey contextKey = "run_id"
	jobKey   contextKey = "job"
)

// WithRunID annotates ctx with the run identifier.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext returns the run identifier if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	v, ok := ctx.Value(runIDKey).(string)
	return v, ok && v != ""
}

// WithJob annotates ctx with the job name.
func WithJob(ctx context.Context, job string) context.Context {
	if job == "" {
		return ctx
	}
	return context.WithValue(ctx, jobKey, job)
}

// JobFromContext returns the job name if present.
func JobFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	v, ok := ctx.Value(jobKey).(string)
	return v, ok && v != ""
}

// ContextFields extracts standardized slog attributes from ctx.
func ContextFields(ctx context.Context) []slog.Attr {
	fields := make([]slog.Attr, 0, 2)
	if id, ok := RunIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldRunID, id))
	}
	if job, ok := JobFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldJob, job))
	}
	return fields
}

// WithContext returns a logger augmented with fields derived from ctx.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(Args(fields...)...)
}
