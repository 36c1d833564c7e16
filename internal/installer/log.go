package installer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fatih/color"
)

// RunLog duplicates everything the installer says or does into an
// append-only log file. The file is never truncated: repeated runs keep
// extending it, so it doubles as the audit trail across retries.
type RunLog struct {
	mu      sync.Mutex
	file    io.Writer
	console io.Writer
	closer  io.Closer

	infoTag string
	warnTag string
	errTag  string
}

// OpenRunLog opens (or creates) the log file in append mode and wires the
// console side of the tee to out.
func OpenRunLog(path string, out io.Writer) (*RunLog, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	l := NewRunLog(f, out)
	l.closer = f
	return l, nil
}

// NewRunLog builds a log over arbitrary writers. Tests use buffers here.
func NewRunLog(file, console io.Writer) *RunLog {
	return &RunLog{
		file:    file,
		console: console,
		infoTag: color.New(color.FgCyan).Sprint("[INFO]"),
		warnTag: color.New(color.FgYellow).Sprint("[WARN]"),
		errTag:  color.New(color.FgRed, color.Bold).Sprint("[ERROR]"),
	}
}

func (l *RunLog) Close() error {
	if l.closer != nil {
		return l.closer.Close()
	}
	return nil
}

func (l *RunLog) Infof(format string, args ...any)  { l.emit("INFO", l.infoTag, format, args...) }
func (l *RunLog) Warnf(format string, args ...any)  { l.emit("WARN", l.warnTag, format, args...) }
func (l *RunLog) Errorf(format string, args ...any) { l.emit("ERROR", l.errTag, format, args...) }

func (l *RunLog) emit(tag, coloredTag, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(l.console, "%s %s\n", coloredTag, msg)
	ts := time.Now().Format("2006-01-02 15:04:05")
	fmt.Fprintf(l.file, "[%s] %-7s %s\n", ts, "["+tag+"]", msg)
}

// Writer returns the sink for subprocess output: everything a command
// prints lands on the console and in the log file in execution order.
func (l *RunLog) Writer() io.Writer {
	return &teeWriter{log: l}
}

type teeWriter struct {
	log *RunLog
}

func (w *teeWriter) Write(p []byte) (int, error) {
	w.log.mu.Lock()
	defer w.log.mu.Unlock()
	if _, err := w.log.console.Write(p); err != nil {
		return 0, err
	}
	return w.log.file.Write(p)
}
