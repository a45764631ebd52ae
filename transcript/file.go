package transcript

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileSink writes each session as a single JSON document named after the
// session ID. The file is rewritten on every Record so a crashed run still
// leaves the turns recorded so far on disk.
type FileSink struct {
	mu  sync.Mutex
	dir string
}

// NewFileSink creates a sink writing session files into dir, creating it as
// needed.
func NewFileSink(dir string) (*FileSink, error) {
	if dir == "" {
		return nil, fmt.Errorf("transcript: directory not set")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create transcript directory: %w", err)
	}
	return &FileSink{dir: dir}, nil
}

// Record implements Sink.
func (s *FileSink) Record(unit Unit) error { return s.write(unit) }

// Finish implements Sink.
func (s *FileSink) Finish(unit Unit) error { return s.write(unit) }

func (s *FileSink) write(unit Unit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := json.MarshalIndent(unit, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session log: %w", err)
	}
	path := filepath.Join(s.dir, unit.SessionID+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write session log: %w", err)
	}
	return nil
}
