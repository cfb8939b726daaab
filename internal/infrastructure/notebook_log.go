package infrastructure

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"datakit/internal/config"
	"datakit/internal/persist"
)

// NotebookTimeLayout is the timestamp prefix of every notebook log line
const NotebookTimeLayout = "2006-01-02 15:04:05,000"

var (
	notebookMu   sync.Mutex
	notebookLogs = make(map[string]*NotebookLog)
)

// NotebookLog is a file-backed logger writing lines of the form
//
//	2024-03-01 12:00:00,123 - Jupyter Notebook - INFO - message
type NotebookLog struct {
	*slog.Logger
	Path     string
	identity string
	file     *os.File
}

// Identity returns the name written on every line
func (l *NotebookLog) Identity() string {
	return l.identity
}

// Close releases the log file and forgets the identity. Closing a log that
// was already replaced by a later OpenLog call is a no-op.
func (l *NotebookLog) Close() error {
	notebookMu.Lock()
	defer notebookMu.Unlock()

	if notebookLogs[l.identity] == l {
		delete(notebookLogs, l.identity)
	}
	return closeFile(l)
}

// OpenLog opens folder/filename for appending and returns a logger tagged
// with the default identity. With timestamp set, the current time is
// inserted before the extension. The folder must already exist.
func OpenLog(folder, filename string, level slog.Level, timestamp bool) (*NotebookLog, error) {
	return OpenLogAs(config.DefaultLogIdentity, folder, filename, level, timestamp)
}

// OpenLogAs is OpenLog with an explicit identity. Opening a log for an
// identity that already has one closes the previous file, so each line is
// written exactly once.
func OpenLogAs(identity, folder, filename string, level slog.Level, timestamp bool) (*NotebookLog, error) {
	if filename == "" {
		return nil, persist.ErrEmptyFilename
	}
	if timestamp {
		filename = persist.TimestampedName(filename, time.Now())
	}
	path := filepath.Join(folder, filename)

	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}

	log := &NotebookLog{
		Logger:   slog.New(newLineHandler(file, identity, level)),
		Path:     path,
		identity: identity,
		file:     file,
	}

	notebookMu.Lock()
	if prev, ok := notebookLogs[identity]; ok {
		if err := closeFile(prev); err != nil {
			slog.Warn("Failed to close previous notebook log",
				slog.String("path", prev.Path),
				slog.String("error", err.Error()))
		}
	}
	notebookLogs[identity] = log
	notebookMu.Unlock()

	slog.Info("Log Started", slog.String("path", path))
	return log, nil
}

// closeFile must be called with notebookMu held
func closeFile(l *NotebookLog) error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// lineHandler formats records as "<time> - <identity> - <LEVEL> - <message>"
// followed by any attributes as key=value pairs
type lineHandler struct {
	mu       *sync.Mutex
	w        io.Writer
	identity string
	level    slog.Leveler
	prefix   string
	attrs    []slog.Attr
}

func newLineHandler(w io.Writer, identity string, level slog.Leveler) *lineHandler {
	return &lineHandler{mu: &sync.Mutex{}, w: w, identity: identity, level: level}
}

func (h *lineHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *lineHandler) Handle(_ context.Context, r slog.Record) error {
	var sb strings.Builder
	sb.WriteString(r.Time.Format(NotebookTimeLayout))
	sb.WriteString(" - ")
	sb.WriteString(h.identity)
	sb.WriteString(" - ")
	sb.WriteString(levelName(r.Level))
	sb.WriteString(" - ")
	sb.WriteString(r.Message)

	for _, a := range h.attrs {
		writeAttr(&sb, "", a)
	}
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(&sb, h.prefix, a)
		return true
	})
	sb.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, sb.String())
	return err
}

func (h *lineHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	child := *h
	child.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	child.attrs = append(child.attrs, h.attrs...)
	for _, a := range attrs {
		child.attrs = append(child.attrs, slog.Attr{Key: h.prefix + a.Key, Value: a.Value})
	}
	return &child
}

func (h *lineHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	child := *h
	child.prefix = h.prefix + name + "."
	return &child
}

func writeAttr(sb *strings.Builder, prefix string, a slog.Attr) {
	if a.Equal(slog.Attr{}) {
		return
	}
	fmt.Fprintf(sb, " %s%s=%v", prefix, a.Key, a.Value.Resolve())
}

// levelName returns the conventional upper-case level names
func levelName(l slog.Level) string {
	switch {
	case l >= slog.LevelError+4:
		return "CRITICAL"
	case l >= slog.LevelError:
		return "ERROR"
	case l >= slog.LevelWarn:
		return "WARNING"
	case l >= slog.LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}
