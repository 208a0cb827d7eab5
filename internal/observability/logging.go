package observability

import (
	"context"
	"io"
	"log/slog"

	"github.com/getsentry/sentry-go"
)

type Tags map[string]string

// NewTags creates a new Tags from a mix of slog.Attr and a string and its
// corresponding value. It ignores incomplete pairs and other types.
func NewTags(args ...any) Tags {
	var done bool
	tags := Tags{}
	for len(args) > 0 && !done {
		switch x := args[0].(type) {
		case slog.Attr:
			tags[x.Key] = x.Value.String()
			args = args[1:]
		case string:
			if len(args) < 2 {
				done = true
				break
			}
			attr := slog.Any(x, args[1])
			tags[attr.Key] = attr.Value.String()
			args = args[2:]
		default:
			args = args[1:]
		}
	}
	return tags
}

const LevelFatal = slog.Level(12)

type CoreLoggerParams struct {
	// Sentry is the hub errors are reported to.
	//
	// Nil disables reporting.
	Sentry *sentry.Hub
	Tags   Tags
}

// CoreLogger is the structured logger used across timechart.
//
// Capture* methods log and additionally report to Sentry when a hub is set.
type CoreLogger struct {
	*slog.Logger
	baseTags Tags
	hub      *sentry.Hub
}

func NewCoreLogger(logger *slog.Logger, params *CoreLoggerParams) *CoreLogger {
	if params == nil {
		params = &CoreLoggerParams{}
	}

	tags := Tags{}
	var args []any
	for key, value := range params.Tags {
		args = append(args, slog.String(key, value))
		tags[key] = value
	}

	return &CoreLogger{
		Logger:   logger.With(args...),
		hub:      params.Sentry,
		baseTags: tags,
	}
}

// withArgs merges the given args with the logger's base tags.
//
// The logger's base tags take precedence over args.
func (cl *CoreLogger) withArgs(args ...any) Tags {
	tags := NewTags(args...)
	for key, value := range cl.baseTags {
		tags[key] = value
	}
	return tags
}

// With returns a derived logger that includes the given tags in each message.
func (cl *CoreLogger) With(args ...any) *CoreLogger {
	return &CoreLogger{
		Logger:   cl.Logger.With(args...),
		baseTags: cl.withArgs(args...),
		hub:      cl.hub,
	}
}

// CaptureError logs an error and sends it to Sentry.
func (cl *CoreLogger) CaptureError(err error, args ...any) {
	if err == nil {
		return
	}
	cl.Error(err.Error(), args...)
	cl.withScope(args, func(hub *sentry.Hub) { hub.CaptureException(err) })
}

// CaptureFatal logs a fatal error and sends it to Sentry.
func (cl *CoreLogger) CaptureFatal(err error, args ...any) {
	if err == nil {
		return
	}
	cl.Log(context.Background(), LevelFatal, err.Error(), args...)
	cl.withScope(args, func(hub *sentry.Hub) { hub.CaptureException(err) })
}

// CaptureWarn logs a warning and sends it to Sentry.
func (cl *CoreLogger) CaptureWarn(msg string, args ...any) {
	cl.Warn(msg, args...)
	cl.withScope(args, func(hub *sentry.Hub) { hub.CaptureMessage(msg) })
}

// CaptureInfo logs an info message and sends it to Sentry.
func (cl *CoreLogger) CaptureInfo(msg string, args ...any) {
	cl.Info(msg, args...)
	cl.withScope(args, func(hub *sentry.Hub) { hub.CaptureMessage(msg) })
}

// Reraise reports a recovered panic to Sentry and panics again.
//
// Must be deferred directly.
func (cl *CoreLogger) Reraise(args ...any) {
	if err := recover(); err != nil {
		cl.Error("panic", append(args, "panic", err)...)
		cl.withScope(args, func(hub *sentry.Hub) { hub.Recover(err) })
		panic(err)
	}
}

func (cl *CoreLogger) withScope(args []any, capture func(hub *sentry.Hub)) {
	if cl.hub == nil {
		return
	}
	tags := cl.withArgs(args...)
	cl.hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTags(tags)
		capture(cl.hub)
	})
}

// GetTags returns the tags associated with the logger.
//
// Used for testing.
func (cl *CoreLogger) GetTags() Tags {
	return cl.baseTags
}

// NewNoOpLogger returns a logger that discards all messages.
//
// Used for testing.
func NewNoOpLogger() *CoreLogger {
	return NewCoreLogger(
		slog.New(slog.NewJSONHandler(io.Discard, nil)),
		nil,
	)
}
