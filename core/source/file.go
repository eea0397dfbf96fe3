package source

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// FileSource loads snapshots from a JSON array on disk. Each Load
// re-reads the file, so edits between passes show up as enter/update/
// exit work on the next join.
type FileSource struct {
	name string
	path string
}

// NewFileSource creates a file-backed snapshot source.
func NewFileSource(name, path string) *FileSource {
	return &FileSource{name: name, path: path}
}

// Name identifies the source.
func (s *FileSource) Name() string {
	return s.name
}

// Load reads and decodes the snapshot file.
func (s *FileSource) Load(ctx context.Context) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s: %w", s.path, err)
	}

	var records []Record
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %s: expected a JSON array of objects: %w", s.path, err)
	}

	return records, nil
}
