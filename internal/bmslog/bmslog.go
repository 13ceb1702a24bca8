// Package bmslog wraps the standard library's log.Logger with the
// level-tagged helpers the command-line tool uses to report
// non-fatal activity (a parse's diagnostics are carried as values through
// diag.Warning/diag.Error; this package is for operational trace output
// only, same split the command-line tool draws with its -debug flag).
package bmslog

import (
	"io"
	"log"
	"os"
)

// Logger tags every line with a severity prefix. Build one with New, or
// use Discard for the "-debug ''" no-logging default; the zero value has
// no underlying log.Logger and is not usable.
type Logger struct {
	std *log.Logger
}

// New wraps w. Pass io.Discard for a no-op logger.
func New(w io.Writer) *Logger {
	return &Logger{std: log.New(w, "", log.LstdFlags)}
}

// Discard is the default logger: every call is a no-op.
var Discard = New(io.Discard)

// Open mirrors the teacher's -debug flag: an empty path disables logging,
// any other path is opened for appending and used for the process
// lifetime. Callers are responsible for closing the returned file.
func Open(path string) (*Logger, *os.File, error) {
	if path == "" {
		return Discard, nil, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return New(f), f, nil
}

func (l *Logger) Debugf(format string, args ...any) { l.std.Printf("[debug] "+format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.std.Printf("[warn] "+format, args...) }
func (l *Logger) Errorf(format string, args ...any) { l.std.Printf("[error] "+format, args...) }
