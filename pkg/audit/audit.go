// Package audit writes an append-only structured log of privileged actions.
// One JSON object per line; entries are only ever appended, never rewritten.
package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Log is an append-only JSON-lines audit log
type Log struct {
	mu  sync.Mutex
	f   *os.File
	enc *json.Encoder
}

// Open opens (or creates) the audit log at the given path for appending
func Open(path string) (*Log, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("audit: create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("audit: open log file: %w", err)
	}
	return &Log{f: f, enc: json.NewEncoder(f)}, nil
}

// Record appends one entry with the event name and a UTC timestamp merged
// into the given fields
func (l *Log) Record(event string, fields map[string]interface{}) error {
	entry := make(map[string]interface{}, len(fields)+2)
	for k, v := range fields {
		entry[k] = v
	}
	entry["event"] = event
	entry["timestamp"] = time.Now().UTC().Format(time.RFC3339)

	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.enc.Encode(entry); err != nil {
		return fmt.Errorf("audit: write entry: %w", err)
	}
	return nil
}

// Close releases the underlying file
func (l *Log) Close() error {
	return l.f.Close()
}
