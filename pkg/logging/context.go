package logging

import (
	"context"

	"github.com/rs/zerolog"
)

type ctxKey int

const (
	loggerKey ctxKey = iota
	runIDKey
)

// WithLogger stores logger in ctx. A nil logger stores Default.
func WithLogger(ctx context.Context, logger *zerolog.Logger) context.Context {
	if logger == nil {
		logger = Default()
	}
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the logger stored by WithLogger, or Default.
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey).(*zerolog.Logger); ok && l != nil {
			return l
		}
	}
	return Default()
}

// WithRunID tags the context logger with the ID of a grading or comparison run.
func WithRunID(ctx context.Context, runID string) context.Context {
	ctx = context.WithValue(ctx, runIDKey, runID)
	return WithField(ctx, "run_id", runID)
}

// RunID returns the ID set by WithRunID, or "".
func RunID(ctx context.Context) string {
	if id, ok := ctx.Value(runIDKey).(string); ok {
		return id
	}
	return ""
}

// WithFields derives a child logger carrying fields.
func WithFields(ctx context.Context, fields map[string]any) context.Context {
	zc := FromContext(ctx).With()
	for k, v := range fields {
		zc = addField(zc, k, v)
	}
	child := zc.Logger()
	return WithLogger(ctx, &child)
}

// WithField is WithFields for one key.
func WithField(ctx context.Context, key string, value any) context.Context {
	return WithFields(ctx, map[string]any{key: value})
}

// WithCourse and WithAssignment tag events with Canvas IDs.
func WithCourse(ctx context.Context, courseID int64) context.Context {
	return WithField(ctx, "course_id", courseID)
}

func WithAssignment(ctx context.Context, assignmentID int64) context.Context {
	return WithField(ctx, "assignment_id", assignmentID)
}

// WithOperation tags events with the command being run.
func WithOperation(ctx context.Context, operation string) context.Context {
	return WithField(ctx, "operation", operation)
}
