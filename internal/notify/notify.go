package notify

import (
	"log/slog"
	"sync"
)

// Notifier displays a transient warning to the user. Fire and forget.
type Notifier interface {
	Notify(msg string)
}

// Logger writes notices to a structured logger.
type Logger struct {
	log *slog.Logger
}

// NewLogger returns a Notifier backed by l (slog.Default() when nil).
func NewLogger(l *slog.Logger) *Logger {
	if l == nil {
		l = slog.Default()
	}
	return &Logger{log: l}
}

func (n *Logger) Notify(msg string) {
	n.log.Warn("user notice", "message", msg)
}

// Recorder collects notices so they can be returned to the caller, e.g. in an
// HTTP response. It is safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	notices []string
	next    Notifier
}

// NewRecorder returns a Recorder that also forwards to next when non-nil.
func NewRecorder(next Notifier) *Recorder {
	return &Recorder{next: next}
}

func (r *Recorder) Notify(msg string) {
	r.mu.Lock()
	r.notices = append(r.notices, msg)
	r.mu.Unlock()
	if r.next != nil {
		r.next.Notify(msg)
	}
}

// Notices returns a copy of everything recorded so far.
func (r *Recorder) Notices() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.notices))
	copy(out, r.notices)
	return out
}
