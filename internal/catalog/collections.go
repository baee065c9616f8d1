package catalog

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bradykim7/shopfront/internal/models"
)

// Collections maps a collection slug to its alias
type Collections map[string]models.Collection

// DefaultCollections is the built-in alias table
func DefaultCollections() Collections {
	return Collections{
		"hi-vis": {
			Slug:     "hi-vis",
			GroupKey: "Protection",
			Value:    "Hi-Vis",
			Title:    "Hi-Vis Workwear",
		},
		"welding": {
			Slug:     "welding",
			GroupKey: "Industry",
			Value:    "Welding",
			Title:    "Welding Gear",
		},
		"winter": {
			Slug:     "winter",
			GroupKey: "Season",
			Value:    "Winter",
			Title:    "Winter Workwear",
		},
	}
}

// Lookup returns the alias for slug
func (c Collections) Lookup(slug string) (models.Collection, bool) {
	if c == nil || slug == "" {
		return models.Collection{}, false
	}
	col, ok := c[slug]
	return col, ok
}

type collectionsFile struct {
	Collections []models.Collection `yaml:"collections"`
}

// LoadCollections reads a YAML alias table. Entries override the defaults by slug.
func LoadCollections(path string) (Collections, error) {
	cols := DefaultCollections()
	if strings.TrimSpace(path) == "" {
		return cols, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read collections file: %w", err)
	}

	var file collectionsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse collections file: %w", err)
	}

	for i, col := range file.Collections {
		col.Slug = strings.TrimSpace(col.Slug)
		if col.Slug == "" || col.GroupKey == "" || col.Value == "" {
			return nil, fmt.Errorf("collection %d: slug, group and value are required", i)
		}
		if col.Title == "" {
			col.Title = col.Value
		}
		cols[col.Slug] = col
	}
	return cols, nil
}
