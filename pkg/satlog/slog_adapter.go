package satlog

import (
	"context"
	"log/slog"
)

// SlogAdapter writes debug events to an slog.Logger, for development
// visibility alongside the module's ordinary operational logging.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates an SlogAdapter that writes to logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger at Debug level.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("category", event.Category.String()),
	}
	if event.TraceID != "" {
		attrs = append(attrs, slog.String("trace_id", event.TraceID))
	}

	switch {
	case event.Transition != nil:
		attrs = append(attrs,
			slog.String("old_state", event.Transition.OldState),
			slog.String("new_state", event.Transition.NewState),
		)
		if event.Transition.Cause != "" {
			attrs = append(attrs, slog.String("cause", event.Transition.Cause))
		}
	case event.Timer != nil:
		attrs = append(attrs,
			slog.String("timer_kind", event.Timer.Kind),
			slog.String("timer_action", event.Timer.Action.String()),
		)
		if event.Timer.Duration > 0 {
			attrs = append(attrs, slog.Duration("duration", event.Timer.Duration))
		}
	case event.ModemCall != nil:
		attrs = append(attrs, slog.String("method", event.ModemCall.Method))
		if event.ModemCall.Request != "" {
			attrs = append(attrs, slog.String("request", event.ModemCall.Request))
		}
	case event.Error != nil:
		attrs = append(attrs,
			slog.String("error_kind", event.Error.Kind),
			slog.String("error_msg", event.Error.Message),
		)
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "satsession", attrs...)
}

var _ Logger = (*SlogAdapter)(nil)
