package logger

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// LogFilePath is the path to the walkthrough log file, relative to the working directory.
const LogFilePath = "logs/walk.txt"

// maxLines bounds the in-memory tail kept for the HUD.
const maxLines = 200

// Logger is the sink behind slog: every record is kept in memory (for the
// on-screen tail) and appended to a file on disk.
type Logger struct {
	mu    sync.Mutex
	path  string
	lines []string
	log   *slog.Logger
}

// New returns a Logger writing to path at the given level and ensures the
// directory exists. An empty path keeps lines in memory only.
func New(path string, level slog.Level) *Logger {
	if path != "" {
		_ = os.MkdirAll(filepath.Dir(path), 0755)
	}
	l := &Logger{path: path}
	l.log = slog.New(slog.NewTextHandler(l, &slog.HandlerOptions{Level: level}))
	return l
}

// Slog returns the structured logger backed by l.
func (l *Logger) Slog() *slog.Logger {
	return l.log
}

// Write stores each formatted record and appends it to the log file. It never
// fails: a logging problem must not stop the frame loop.
func (l *Logger) Write(p []byte) (int, error) {
	text := strings.TrimRight(string(p), "\n")

	l.mu.Lock()
	l.lines = append(l.lines, strings.Split(text, "\n")...)
	if over := len(l.lines) - maxLines; over > 0 {
		l.lines = append(l.lines[:0:0], l.lines[over:]...)
	}
	l.mu.Unlock()

	if l.path == "" {
		return len(p), nil
	}
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return len(p), nil
	}
	_, _ = f.Write(bytes.TrimRight(p, "\n"))
	_, _ = f.Write([]byte{'\n'})
	_ = f.Close()
	return len(p), nil
}

// Tail returns a copy of the last n stored lines, oldest first. n <= 0 returns
// everything kept.
func (l *Logger) Tail(n int) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	from := 0
	if n > 0 && n < len(l.lines) {
		from = len(l.lines) - n
	}
	out := make([]string, len(l.lines)-from)
	copy(out, l.lines[from:])
	return out
}
