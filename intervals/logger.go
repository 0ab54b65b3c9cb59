package intervals

import "log"

// Logger receives debug lines for each request and response when installed
// with WithLogger. Implementations must be safe for concurrent use.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
}

// StdLogger adapts the standard library logger to the Logger interface.
type StdLogger struct {
	L *log.Logger
}

// Debug writes one line with alternating key/value pairs.
func (s StdLogger) Debug(msg string, keysAndValues ...any) {
	l := s.L
	if l == nil {
		l = log.Default()
	}
	args := append([]any{msg}, keysAndValues...)
	l.Println(args...)
}
