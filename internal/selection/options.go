package selection

import (
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"github.com/dshills/caret/internal/animation"
	"github.com/dshills/caret/internal/caret"
)

// Option configures an Engine during creation.
type Option func(*Engine)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger.With("component", "selection")
		}
	}
}

// WithTracer sets the tracer used for Update spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(e *Engine) {
		if tracer != nil {
			e.tracer = tracer
		}
	}
}

// WithKeymap replaces the default key bindings.
func WithKeymap(km *Keymap) Option {
	return func(e *Engine) {
		if km != nil {
			e.keymap = km
		}
	}
}

// WithScheduler sets the scheduler driving caret blinks.
func WithScheduler(s animation.Scheduler) Option {
	return func(e *Engine) {
		if s != nil {
			e.sched = s
		}
	}
}

// WithLayer sets the presentation layer carets and highlights are drawn on.
func WithLayer(l *caret.Layer) Option {
	return func(e *Engine) {
		if l != nil {
			e.layer = l
		}
	}
}
