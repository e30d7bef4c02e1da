package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"invite-builder/internal/builder/models"
)

var ErrTemplateNotFound = errors.New("template not found")

// ============================================================
// Template Storage
// ============================================================

// TemplateStore reads seed legacy documents, one <name>.json per template.
type TemplateStore struct {
	root string
}

func NewTemplateStore(root string) *TemplateStore {
	return &TemplateStore{root: root}
}

func (s *TemplateStore) Path(name string) string {
	return filepath.Join(s.root, name+".json")
}

// List returns template names in alphabetical order. A missing directory
// means no templates.
func (s *TemplateStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("read templates dir: %w", err)
	}

	names := []string{}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(names)
	return names, nil
}

// Load reads and decodes the template called name.
func (s *TemplateStore) Load(name string) (*models.LegacyDocument, error) {
	if !validTemplateName(name) {
		return nil, ErrTemplateNotFound
	}

	data, err := os.ReadFile(s.Path(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("read template: %w", err)
	}

	var doc models.LegacyDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode template %s: %w", name, err)
	}
	return &doc, nil
}

func validTemplateName(name string) bool {
	return name != "" && name != "." && name != ".." && !strings.ContainsAny(name, `/\`)
}
