package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/Jagbo/zenrent-sub000/internal/transformerror"
)

// FileErrorStore appends transformation errors to a JSON Lines file, one
// record per line. It implements transformerror.ErrorStore and is safe for
// concurrent use.
type FileErrorStore struct {
	mu   sync.Mutex
	path string
}

// NewFileErrorStore creates the audit log's parent directory if needed. The
// file itself is created on first write.
func NewFileErrorStore(path string) (*FileErrorStore, error) {
	if path == "" {
		return nil, fmt.Errorf("error store path is empty")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating error store directory %s: %w", dir, err)
		}
	}
	return &FileErrorStore{path: path}, nil
}

// Save appends one error record as a JSON line.
func (s *FileErrorStore) Save(record *transformerror.TransformationError) error {
	line, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encoding error record: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening error store %s: %w", s.path, err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("writing error record: %w", err)
	}
	return nil
}

// Load reads every record in the audit log. Missing files yield an empty
// slice.
func (s *FileErrorStore) Load() ([]transformerror.TransformationError, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading error store %s: %w", s.path, err)
	}

	var records []transformerror.TransformationError
	dec := json.NewDecoder(bytes.NewReader(raw))
	for dec.More() {
		var record transformerror.TransformationError
		if err := dec.Decode(&record); err != nil {
			return nil, fmt.Errorf("decoding error record: %w", err)
		}
		records = append(records, record)
	}
	return records, nil
}
