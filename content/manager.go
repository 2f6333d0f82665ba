package content

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lixenwraith/drag-match/level"
)

// PackExt is the level pack file extension
const PackExt = ".toml"

// Manager discovers and loads level packs from a directory
type Manager struct {
	dir   string
	files []string
}

// NewManager creates a manager for dir; empty dir means embedded content only
func NewManager(dir string) *Manager {
	return &Manager{dir: dir}
}

// DiscoverPacks scans the pack directory for .toml files
// Missing directories are not an error; hidden files are skipped
func (m *Manager) DiscoverPacks() error {
	m.files = m.files[:0]
	if m.dir == "" {
		return nil
	}

	if _, err := os.Stat(m.dir); os.IsNotExist(err) {
		log.Printf("Pack directory '%s' does not exist, using embedded content", m.dir)
		return nil
	}

	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return fmt.Errorf("failed to read pack directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if strings.EqualFold(filepath.Ext(name), PackExt) {
			m.files = append(m.files, filepath.Join(m.dir, name))
		}
	}
	sort.Strings(m.files)

	log.Printf("Discovered %d pack file(s) in %s", len(m.files), m.dir)
	return nil
}

// Files returns discovered pack paths in lexical order
func (m *Manager) Files() []string {
	return m.files
}

// Catalog loads every discovered pack into one catalog
// Falls back to the embedded pack when nothing was discovered; any invalid pack fails the load
func (m *Manager) Catalog() (*Catalog, error) {
	if len(m.files) == 0 {
		return NewCatalog(Default().Levels...)
	}

	var levels []level.PuzzleLevel
	for _, path := range m.files {
		p, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		log.Printf("Loaded pack %q from %s (%d levels)", p.Name, path, len(p.Levels))
		levels = append(levels, p.Levels...)
	}
	return NewCatalog(levels...)
}
