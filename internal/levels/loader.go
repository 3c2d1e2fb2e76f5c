package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-rocket/internal/core"
)

//go:embed defaults/*.yaml
var defaultFS embed.FS

// levelFile is the on-disk YAML layout.
type levelFile struct {
	ID          string            `yaml:"id"`
	Name        string            `yaml:"name"`
	Legend      map[string]string `yaml:"legend"`
	Map         []string          `yaml:"map"`
	Oscillators []oscillatorFile  `yaml:"oscillators"`
}

type oscillatorFile struct {
	Glyph   string  `yaml:"glyph"`
	Tag     string  `yaml:"tag"`
	X       int     `yaml:"x"`
	Y       int     `yaml:"y"`
	Width   int     `yaml:"width"`
	Height  int     `yaml:"height"`
	OffsetX float64 `yaml:"offset_x"`
	OffsetY float64 `yaml:"offset_y"`
	Speed   float64 `yaml:"speed"`
}

// Parse decodes a YAML level document.
func Parse(data []byte) (*Level, error) {
	var f levelFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("levels: invalid yaml: %w", err)
	}
	if f.ID == "" {
		return nil, fmt.Errorf("levels: missing id")
	}

	legend := make(map[rune]string, len(f.Legend))
	for glyph, tag := range f.Legend {
		r := []rune(glyph)
		if len(r) != 1 {
			return nil, fmt.Errorf("levels: %s: legend key %q must be a single character", f.ID, glyph)
		}
		legend[r[0]] = tag
	}

	name := f.Name
	if name == "" {
		name = f.ID
	}

	l, err := ParseMap(f.ID, name, f.Map, legend)
	if err != nil {
		return nil, err
	}

	for i, o := range f.Oscillators {
		osc, err := o.toOscillator(legend)
		if err != nil {
			return nil, fmt.Errorf("levels: %s: oscillator %d: %w", f.ID, i, err)
		}
		l.Oscillators = append(l.Oscillators, osc)
	}

	return l, nil
}

func (o oscillatorFile) toOscillator(legend map[rune]string) (Oscillator, error) {
	glyph := '#'
	if o.Glyph != "" {
		r := []rune(o.Glyph)
		if len(r) != 1 {
			return Oscillator{}, fmt.Errorf("glyph %q must be a single character", o.Glyph)
		}
		glyph = r[0]
	}

	tag := o.Tag
	if tag == "" {
		tag = legend[glyph]
	}
	if tag == "" {
		tag = TagObstacle
	}

	w, h := o.Width, o.Height
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}

	return Oscillator{
		Glyph:  glyph,
		Tag:    tag,
		Start:  core.NewRect(o.X, o.Y, w, h),
		Offset: core.Vec2{X: o.OffsetX, Y: o.OffsetY},
		Speed:  o.Speed,
	}, nil
}

// Defaults returns the built-in campaign, sorted by ID.
func Defaults() ([]*Level, error) {
	return loadFS(defaultFS, "defaults")
}

// LoadDir loads every .yaml/.yml level under root, sorted by ID.
func LoadDir(root string) ([]*Level, error) {
	levels, err := loadFS(os.DirFS(root), ".")
	if err != nil {
		return nil, fmt.Errorf("levels: loading %s: %w", root, err)
	}
	for _, l := range levels {
		l.FilePath = filepath.Join(root, l.FilePath)
	}
	return levels, nil
}

func loadFS(fsys fs.FS, root string) ([]*Level, error) {
	var levels []*Level
	seen := make(map[string]string)

	err := fs.WalkDir(fsys, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		l, err := Parse(data)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
		if prev, dup := seen[l.ID]; dup {
			return fmt.Errorf("duplicate level id %q in %s and %s", l.ID, prev, path)
		}
		seen[l.ID] = path
		l.FilePath = path

		levels = append(levels, l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(levels) == 0 {
		return nil, fmt.Errorf("no level files found")
	}

	// Sort by ID for deterministic ordering
	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})

	return levels, nil
}

// Load returns the levels in dir, or the built-in campaign when dir is empty.
func Load(dir string) ([]*Level, error) {
	if dir == "" {
		return Defaults()
	}
	return LoadDir(dir)
}
