// Package levels loads Laser Hop campaign packs from YAML files.
// A pack is a directory of level files; sorted by ID they form the campaign
// that replaces the built-in levels.
package levels

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/laserhop/internal/games/laserhop/engine"
	"github.com/vovakirdan/laserhop/internal/games/laserhop/levels/formats"
)

// ErrLevelNotFound is returned by LoadByID for an unknown ID.
var ErrLevelNotFound = errors.New("levels: level not found")

// Level is a validated level file.
type Level struct {
	ID       string
	Name     string
	Board    engine.Board
	Metadata map[string]string
	FilePath string
}

// Loader handles loading levels from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new level loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively loads every level file under Root, sorted by ID.
// Unlike a best-effort scan, any invalid file fails the whole pack.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(strings.ToLower(filepath.Ext(path))) {
			return nil
		}

		level, err := l.LoadFile(path)
		if err != nil {
			return err
		}
		levels = append(levels, level)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("levels: loading %s: %w", l.Root, err)
	}

	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})

	for i := 1; i < len(levels); i++ {
		if levels[i].ID == levels[i-1].ID {
			return nil, ValidationError{
				Code:    "DUPLICATE_ID",
				Message: fmt.Sprintf("level id %q used by %s and %s", levels[i].ID, levels[i-1].FilePath, levels[i].FilePath),
			}
		}
	}

	return levels, nil
}

// LoadFile loads and validates a single level file. A missing ID defaults
// to the file name without extension.
func (l *Loader) LoadFile(path string) (Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	parsed, err := parseByExtension(data, ext)
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", path, err)
	}

	board, err := BuildBoard(parsed.Rows)
	if err != nil {
		return Level{}, fmt.Errorf("%s: %w", path, err)
	}

	id := parsed.ID
	if id == "" {
		id = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	return Level{
		ID:       id,
		Name:     parsed.Name,
		Board:    board,
		Metadata: parsed.Metadata,
		FilePath: path,
	}, nil
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}

	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}
	return Level{}, fmt.Errorf("%w: %s", ErrLevelNotFound, id)
}

// Campaign loads the pack as engine levels numbered from 1.
// An empty directory is an error since a campaign needs at least one level.
func (l *Loader) Campaign() ([]engine.Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	if len(levels) == 0 {
		return nil, ValidationError{Code: "EMPTY_PACK", Message: fmt.Sprintf("no level files in %s", l.Root)}
	}

	campaign := make([]engine.Level, len(levels))
	for i, lvl := range levels {
		name := lvl.Name
		if name == "" {
			name = lvl.ID
		}
		campaign[i] = engine.Level{ID: i + 1, Name: name, Board: lvl.Board}
	}
	return campaign, nil
}

// Export writes levels as YAML files into dir, one file per level.
func Export(dir string, levels []engine.Level) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("levels: creating %s: %w", dir, err)
	}

	for _, lvl := range levels {
		id := fmt.Sprintf("%02d", lvl.ID)
		data, err := formats.MarshalYAML(formats.Level{
			ID:   id,
			Name: lvl.Name,
			Rows: strings.Split(lvl.Board.String(), "\n"),
		})
		if err != nil {
			return fmt.Errorf("levels: encoding level %d: %w", lvl.ID, err)
		}
		path := filepath.Join(dir, id+".yaml")
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("levels: writing %s: %w", path, err)
		}
	}
	return nil
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// parseByExtension routes to the correct parser.
func parseByExtension(data []byte, ext string) (formats.Level, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return formats.Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
