package logging

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

const filePrefix = "magistral-"

// RotatingWriter writes log lines to one file per ISO week, starting a new
// numbered file when the size limit is reached, and prunes files older than
// the retention period.
type RotatingWriter struct {
	dir         string
	retention   time.Duration
	maxFileSize int64

	mu      sync.Mutex
	file    *os.File
	week    string
	part    int
	size    int64
	nowFunc func() time.Time

	cancel context.CancelFunc
	done   chan struct{}
}

// NewRotatingWriter creates the log directory and opens the current file.
// maxFileSize <= 0 disables size rotation.
func NewRotatingWriter(dir string, retentionWeeks int, maxFileSize int64) (*RotatingWriter, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	w := &RotatingWriter{
		dir:         dir,
		retention:   time.Duration(retentionWeeks) * 7 * 24 * time.Hour,
		maxFileSize: maxFileSize,
		nowFunc:     time.Now,
		done:        make(chan struct{}),
	}

	w.mu.Lock()
	err := w.openLocked(weekKey(w.nowFunc()))
	w.mu.Unlock()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel
	go w.cleanupLoop(ctx, 24*time.Hour)

	return w, nil
}

// weekKey returns the ISO week in YYYY-Www format.
func weekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

func (w *RotatingWriter) fileName(week string, part int) string {
	if part == 0 {
		return filepath.Join(w.dir, filePrefix+week+".log")
	}
	return filepath.Join(w.dir, fmt.Sprintf("%s%s.%d.log", filePrefix, week, part))
}

// openLocked opens the first file of week that still has room. Caller holds mu.
func (w *RotatingWriter) openLocked(week string) error {
	if w.file != nil {
		_ = w.file.Close()
		w.file = nil
	}

	part := 0
	if week == w.week {
		part = w.part
	}
	for {
		info, err := os.Stat(w.fileName(week, part))
		if err != nil || w.maxFileSize <= 0 || info.Size() < w.maxFileSize {
			break
		}
		part++
	}

	path := w.fileName(week, part)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", path, err)
	}

	w.file = f
	w.week = week
	w.part = part
	w.size = 0
	if info, err := f.Stat(); err == nil {
		w.size = info.Size()
	}
	return nil
}

// Write implements io.Writer.
func (w *RotatingWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	week := weekKey(w.nowFunc())
	switch {
	case week != w.week:
		w.part = 0
		if err := w.openLocked(week); err != nil {
			return 0, err
		}
	case w.maxFileSize > 0 && w.size > 0 && w.size+int64(len(p)) > w.maxFileSize:
		w.part++
		if err := w.openLocked(week); err != nil {
			return 0, err
		}
	}

	if w.file == nil {
		return 0, fmt.Errorf("no log file available")
	}

	n, err := w.file.Write(p)
	w.size += int64(n)
	return n, err
}

// CurrentFile returns the path being written to.
func (w *RotatingWriter) CurrentFile() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.file == nil {
		return ""
	}
	return w.file.Name()
}

func (w *RotatingWriter) cleanupLoop(ctx context.Context, every time.Duration) {
	defer close(w.done)

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := w.Cleanup(); err != nil {
				fmt.Fprintf(os.Stderr, "log cleanup failed: %v\n", err)
			}
		}
	}
}

// Cleanup removes log files last modified before the retention cutoff and
// returns how many were removed. The current file is never removed.
func (w *RotatingWriter) Cleanup() (int, error) {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read log directory: %w", err)
	}

	current := w.CurrentFile()
	cutoff := w.nowFunc().Add(-w.retention)

	var stale []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, ".log") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		path := filepath.Join(w.dir, name)
		if path != current && info.ModTime().Before(cutoff) {
			stale = append(stale, path)
		}
	}
	sort.Strings(stale)

	removed := 0
	for _, path := range stale {
		if err := os.Remove(path); err == nil {
			removed++
		}
	}
	return removed, nil
}

// Close stops the cleanup goroutine and closes the current file.
func (w *RotatingWriter) Close() error {
	if w.cancel != nil {
		w.cancel()
		select {
		case <-w.done:
		case <-time.After(time.Second):
		}
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	return err
}
