// Package notifications carries user-visible messages out of the engine.
// Every failure and every confirmable action produces a notification;
// silent failures are disallowed.
package notifications

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Severity indicates how a notification should be presented.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Notification is a transient user-visible message. Sticky notifications
// stay on screen until explicitly dismissed (used for the attachment
// relocation hint).
type Notification struct {
	Message  string
	Severity Severity
	Sticky   bool
}

// Notifier receives notifications emitted by the engine. Implementations
// must be safe for concurrent use: remote call results arrive from their
// own goroutines.
type Notifier interface {
	Notify(n Notification)
}

// Info builds an informational notification.
func Info(format string, args ...interface{}) Notification {
	return Notification{Message: fmt.Sprintf(format, args...), Severity: SeverityInfo}
}

// Success builds a success notification.
func Success(format string, args ...interface{}) Notification {
	return Notification{Message: fmt.Sprintf(format, args...), Severity: SeveritySuccess}
}

// Error builds an error notification.
func Error(format string, args ...interface{}) Notification {
	return Notification{Message: fmt.Sprintf(format, args...), Severity: SeverityError}
}

// Hint builds a sticky informational notification.
func Hint(format string, args ...interface{}) Notification {
	return Notification{Message: fmt.Sprintf(format, args...), Severity: SeverityInfo, Sticky: true}
}

// LogNotifier forwards notifications to a zap logger. It is the default
// sink when no UI toast layer is attached.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a LogNotifier.
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify implements Notifier.
func (l *LogNotifier) Notify(n Notification) {
	fields := []zap.Field{
		zap.String("severity", string(n.Severity)),
		zap.Bool("sticky", n.Sticky),
	}
	switch n.Severity {
	case SeverityError:
		l.logger.Error(n.Message, fields...)
	case SeverityWarning:
		l.logger.Warn(n.Message, fields...)
	default:
		l.logger.Info(n.Message, fields...)
	}
}

// Recorder captures notifications in memory for assertions in tests.
type Recorder struct {
	mu   sync.Mutex
	seen []Notification
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Notify implements Notifier.
func (r *Recorder) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, n)
}

// All returns a copy of every recorded notification.
func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.seen))
	copy(out, r.seen)
	return out
}

// BySeverity returns recorded notifications matching the given severity.
func (r *Recorder) BySeverity(s Severity) []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Notification
	for _, n := range r.seen {
		if n.Severity == s {
			out = append(out, n)
		}
	}
	return out
}
