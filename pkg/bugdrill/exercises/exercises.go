// Package exercises holds the catalog of debugging exercises: snippets with
// intentionally injected defects, one or more per supported language.
// A builtin set ships with the engine; additional exercises load from YAML
// files on disk.
package exercises

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/practicelabs/bugdrill/pkg/bugdrill"
)

// Exercise is one debugging task as presented to a learner.
type Exercise struct {
	ID          string            `yaml:"id" json:"id"`
	Title       string            `yaml:"title" json:"title"`
	Language    bugdrill.Language `yaml:"language" json:"language"`
	Description string            `yaml:"description" json:"description"`
	Snippet     string            `yaml:"snippet" json:"snippet"`
	Hints       []string          `yaml:"hints,omitempty" json:"hints,omitempty"`
}

// Validate checks the fields a catalog entry must carry. A missing language
// is not an error: it is detected from the snippet.
func (ex *Exercise) Validate() error {
	if ex.ID == "" {
		return fmt.Errorf("exercise missing id")
	}
	if ex.Title == "" {
		return fmt.Errorf("exercise %s: missing title", ex.ID)
	}
	if strings.TrimSpace(ex.Snippet) == "" {
		return fmt.Errorf("exercise %s: missing snippet", ex.ID)
	}
	if ex.Language == "" {
		ex.Language = bugdrill.Detect(ex.Snippet)
	}
	return nil
}

// Catalog is a concurrency-safe collection of exercises keyed by ID.
type Catalog struct {
	mu   sync.RWMutex
	byID map[string]Exercise
}

// NewCatalog returns a catalog preloaded with the builtin exercises.
func NewCatalog() *Catalog {
	c := &Catalog{byID: make(map[string]Exercise)}
	for _, ex := range Builtin() {
		c.byID[ex.ID] = ex
	}
	return c
}

// Add validates and inserts an exercise, replacing any entry with the same ID.
func (c *Catalog) Add(ex Exercise) error {
	if err := ex.Validate(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byID[ex.ID] = ex
	return nil
}

// Get returns the exercise with the given ID.
func (c *Catalog) Get(id string) (Exercise, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ex, ok := c.byID[id]
	return ex, ok
}

// List returns every exercise, sorted by ID for deterministic output.
func (c *Catalog) List() []Exercise {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Exercise, 0, len(c.byID))
	for _, ex := range c.byID {
		out = append(out, ex)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of exercises in the catalog.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.byID)
}

// exerciseFile is the YAML document layout: a flat list under "exercises".
type exerciseFile struct {
	Exercises []Exercise `yaml:"exercises"`
}

// LoadFile reads exercises from one YAML file into the catalog.
func (c *Catalog) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading exercise file: %w", err)
	}

	var file exerciseFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	for _, ex := range file.Exercises {
		if err := c.Add(ex); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}

// LoadDir loads every .yaml/.yml file in dir, in lexical order. A missing
// directory is not an error: the builtin catalog still applies.
func (c *Catalog) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading exercise dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext == ".yaml" || ext == ".yml" {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		if err := c.LoadFile(filepath.Join(dir, name)); err != nil {
			return err
		}
	}
	return nil
}
