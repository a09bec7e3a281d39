package audit

import (
	"log/slog"
	"sort"
)

// Saver persists audit events
type Saver interface {
	Save(event Event) error
}

// Recorder sends events to the syslog Logger and, when configured, the audit database
type Recorder struct {
	logger  *Logger
	store   Saver
	enabled bool
	log     *slog.Logger
}

// NewRecorder creates a Recorder. store may be nil. A nil log uses slog.Default().
func NewRecorder(logger *Logger, store Saver, enabled bool, log *slog.Logger) *Recorder {
	if log == nil {
		log = slog.Default()
	}
	return &Recorder{logger: logger, store: store, enabled: enabled, log: log}
}

// Enabled reports whether events are recorded
func (r *Recorder) Enabled() bool {
	return r.enabled
}

// Log records event. Persistence failures are logged and otherwise ignored.
func (r *Recorder) Log(event Event) {
	if !r.enabled {
		return
	}
	if r.logger != nil {
		r.logger.Log(event)
	}
	if r.store != nil {
		if err := r.store.Save(event); err != nil {
			r.log.Warn("audit: failed to save event", "msgid", event.MessageID(), "error", err)
		}
	}
}

// Discard is a Recorder that drops every event
var Discard = &Recorder{}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
