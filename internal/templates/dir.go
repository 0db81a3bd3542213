// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-03-05
// Last Modified: 2026-03-05

package templates

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// DirSource reads templates from a directory in the local checkout.
type DirSource struct {
	Dir string
}

// NewDirSource creates a source for dir, using DefaultDir when dir is empty.
func NewDirSource(dir string) *DirSource {
	if dir == "" {
		dir = DefaultDir
	}
	return &DirSource{Dir: dir}
}

// List returns the files in the directory. Sub-directories are skipped.
func (s *DirSource) List(_ context.Context) (Listing, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Listing{Found: false}, nil
		}
		return Listing{}, fmt.Errorf("failed to read directory %s: %w", s.Dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	return Listing{Found: true, Names: names}, nil
}

// Read returns the content of a template file.
func (s *DirSource) Read(_ context.Context, name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(s.Dir, name))
	if err != nil {
		return "", err
	}
	return string(data), nil
}
