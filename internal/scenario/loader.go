package scenario

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// Loader handles loading scenarios from a directory.
type Loader struct {
	Root string

	// FS, if set, is walked instead of the directory at Root. Root is then
	// only used as a prefix for FilePath.
	FS fs.FS
}

// NewLoader creates a new scenario loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// BuiltinLoader returns a loader over the scenarios compiled into the binary.
func BuiltinLoader() *Loader {
	sub, err := fs.Sub(builtinFS, "builtin")
	if err != nil {
		panic(fmt.Sprintf("scenario: builtin fs: %v", err))
	}
	return &Loader{Root: "builtin", FS: sub}
}

func (l *Loader) fsys() fs.FS {
	if l.FS != nil {
		return l.FS
	}
	return os.DirFS(l.Root)
}

// LoadAll recursively scans and loads all scenario files.
// Returns scenarios sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]Scenario, error) {
	var scenarios []Scenario
	fsys := l.fsys()

	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(path.Ext(p))
		if !isSupportedExtension(ext) {
			return nil
		}

		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil
		}
		s, err := parseByExtension(data, ext)
		if err != nil {
			// Skip invalid files
			return nil
		}

		s.FilePath = filepath.Join(l.Root, filepath.FromSlash(p))
		scenarios = append(scenarios, s)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	// Sort by ID for determinism
	sort.Slice(scenarios, func(i, j int) bool {
		return scenarios[i].ID < scenarios[j].ID
	})

	return scenarios, nil
}

// LoadFile loads a single scenario file from disk.
func (l *Loader) LoadFile(p string) (Scenario, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return Scenario{}, fmt.Errorf("reading file %s: %w", p, err)
	}

	s, err := parseByExtension(data, strings.ToLower(filepath.Ext(p)))
	if err != nil {
		return Scenario{}, fmt.Errorf("parsing file %s: %w", p, err)
	}

	s.FilePath = p
	return s, nil
}

// LoadByID loads a specific scenario by ID.
func (l *Loader) LoadByID(id string) (Scenario, error) {
	scenarios, err := l.LoadAll()
	if err != nil {
		return Scenario{}, err
	}

	for _, s := range scenarios {
		if s.ID == id {
			return s, nil
		}
	}

	return Scenario{}, fmt.Errorf("scenario not found: %s", id)
}

// ListIDs returns all scenario IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	scenarios, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(scenarios))
	for i, s := range scenarios {
		ids[i] = s.ID
	}
	return ids, nil
}

// IsScenarioFile reports whether p names a file LoadFile can parse.
func IsScenarioFile(p string) bool {
	return isSupportedExtension(strings.ToLower(filepath.Ext(p)))
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// parseByExtension routes to the correct parser.
func parseByExtension(data []byte, ext string) (Scenario, error) {
	switch ext {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return Scenario{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
