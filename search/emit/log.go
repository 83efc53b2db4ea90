package emit

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sort"
)

// LogEmitter implements Emitter by writing one structured log record per event.
//
// Supports two output modes:
//   - Text mode (default): key=value pairs
//   - JSON mode: one JSON object per line
//
// Example text output:
//
//	level=DEBUG msg=node_expanded run_id=5c1f... step=1 key=A depth=0 f=3 g=0 h=3
//
// Call-level events (search_start, goal_reached, no_solution) are logged at Info,
// per-node events at Debug and search_error at Error.
type LogEmitter struct {
	logger *slog.Logger
}

// NewLogEmitter creates a LogEmitter writing to writer at debug level.
// Timestamps are omitted so the output of a deterministic search is itself
// deterministic.
func NewLogEmitter(writer io.Writer, jsonMode bool) *LogEmitter {
	if writer == nil {
		writer = os.Stdout
	}
	opts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}
	var handler slog.Handler
	if jsonMode {
		handler = slog.NewJSONHandler(writer, opts)
	} else {
		handler = slog.NewTextHandler(writer, opts)
	}
	return &LogEmitter{logger: slog.New(handler)}
}

// NewLogEmitterWithLogger creates a LogEmitter on top of an existing logger.
func NewLogEmitterWithLogger(logger *slog.Logger) *LogEmitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogEmitter{logger: logger}
}

// Emit writes the event as a single log record.
func (l *LogEmitter) Emit(event Event) {
	attrs := make([]slog.Attr, 0, 3+len(event.Meta))
	attrs = append(attrs,
		slog.String("run_id", event.RunID),
		slog.Int("step", event.Step),
	)
	if event.Key != "" {
		attrs = append(attrs, slog.String("key", event.Key))
	}

	// Sorted so text output is stable across runs.
	keys := make([]string, 0, len(event.Meta))
	for k := range event.Meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		attrs = append(attrs, slog.Any(k, event.Meta[k]))
	}

	l.logger.LogAttrs(context.Background(), levelFor(event.Msg), event.Msg, attrs...)
}

func levelFor(msg string) slog.Level {
	switch msg {
	case MsgNodeExpanded, MsgDuplicateSkipped:
		return slog.LevelDebug
	case MsgSearchError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
