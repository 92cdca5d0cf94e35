// Package checkpoint persists per-dataset batch progress as flat JSON files
// so an interrupted run resumes where it stopped. One file per
// (model, target, action, split) key; the file is the sole persistence.
package checkpoint

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Store reads and writes checkpoint records under a single directory.
// Saves rewrite the whole file; the store assumes a single process per
// checkpoint key (two concurrent runs last-write-win on the full record).
type Store struct {
	mu     sync.Mutex
	dir    string
	logger *zap.Logger
}

// NewStore creates a store rooted at dir. The directory is created on the
// first write, not here.
func NewStore(dir string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{dir: dir, logger: logger}
}

// Dir returns the checkpoint directory.
func (s *Store) Dir() string { return s.dir }

// Load reads the record for key. A missing file returns (nil, false, nil).
// A file that fails to parse or shape-check is logged and treated as
// absent — resuming from nothing beats crashing on a corrupt checkpoint.
func (s *Store) Load(key Key) (*Record, bool, error) {
	path := filepath.Join(s.dir, key.Filename())

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read checkpoint %s: %w", path, err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		s.logger.Warn("checkpoint file is malformed, starting fresh",
			zap.String("path", path), zap.Error(err))
		return nil, false, nil
	}
	if err := rec.validate(); err != nil {
		s.logger.Warn("checkpoint file failed validation, starting fresh",
			zap.String("path", path), zap.Error(err))
		return nil, false, nil
	}
	if rec.Results == nil {
		rec.Results = make(map[string]string)
	}

	return &rec, true, nil
}

// Save writes the full record for key, creating the checkpoint directory
// if needed.
func (s *Store) Save(key Key, rec *Record) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create checkpoint dir: %w", err)
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal checkpoint: %w", err)
	}

	path := filepath.Join(s.dir, key.Filename())
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write checkpoint %s: %w", path, err)
	}
	return nil
}

// RecordBatch marks one batch complete in rec and persists the whole record.
// Safe for concurrent batch completions within one process; the batch is
// only considered complete once the write has succeeded.
func (s *Store) RecordBatch(key Key, index int, rawText string, rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec.markProcessed(index, rawText)
	return s.Save(key, rec)
}

// List returns the checkpoint filenames currently on disk.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read checkpoint dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasPrefix(e.Name(), "checkpoint-") && strings.HasSuffix(e.Name(), ".json") {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// ClearAll deletes every checkpoint file in the directory. Only invoked on
// explicit user request.
func (s *Store) ClearAll() error {
	names, err := s.List()
	if err != nil {
		return err
	}

	for _, name := range names {
		path := filepath.Join(s.dir, name)
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("remove %s: %w", path, err)
		}
		s.logger.Info("removed checkpoint", zap.String("file", name))
	}
	return nil
}
