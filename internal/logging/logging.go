// Package logging builds the slog loggers used by the fcea binaries.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/sasha-s/go-deadlock"
)

// New returns a text logger writing to w at the named level.
func New(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)}))
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel maps debug, warn and error to their slog levels; anything else
// is info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Default size limits for CappedFile.
const (
	DefaultMaxBytes  = 6 * 1024 * 1024
	DefaultKeepBytes = 5 * 1024 * 1024
)

// CappedFile is an append-only log file that, once it grows past MaxBytes,
// is cut down to its most recent KeepBytes.
type CappedFile struct {
	MaxBytes  int64
	KeepBytes int64

	mu   deadlock.Mutex
	file *os.File
}

// OpenCapped opens or creates path with the default limits, creating parent
// directories as needed.
func OpenCapped(path string) (*CappedFile, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	c := &CappedFile{MaxBytes: DefaultMaxBytes, KeepBytes: DefaultKeepBytes, file: file}
	if err := c.trim(); err != nil {
		_ = file.Close()
		return nil, err
	}
	return c, nil
}

func (c *CappedFile) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, err := c.file.Write(p)
	if err != nil {
		return n, err
	}
	return n, c.trim()
}

// Close closes the underlying file.
func (c *CappedFile) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.file.Close()
}

func (c *CappedFile) trim() error {
	info, err := c.file.Stat()
	if err != nil {
		return err
	}
	size := info.Size()
	if size <= c.MaxBytes || c.KeepBytes >= size {
		return nil
	}

	tail := make([]byte, c.KeepBytes)
	n, err := c.file.ReadAt(tail, size-c.KeepBytes)
	if err != nil && err != io.EOF {
		return err
	}
	if err := c.file.Truncate(0); err != nil {
		return err
	}
	// O_APPEND writes land at the new end regardless of the offset.
	_, err = c.file.Write(tail[:n])
	return err
}
