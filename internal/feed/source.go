// Package feed provides the places a product feed can be read from.
package feed

import (
	"context"
	"fmt"
	"os"

	"github.com/bradykim7/shopfront/internal/catalog"
)

// FileSource reads a raw JSON feed from disk
type FileSource struct {
	Path string
}

var _ catalog.Source = (*FileSource)(nil)

// NewFileSource creates a new file source
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// Name returns the name of the source
func (s *FileSource) Name() string {
	return "file:" + s.Path
}

// Read returns the file contents
func (s *FileSource) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read feed file: %w", err)
	}
	return data, nil
}
