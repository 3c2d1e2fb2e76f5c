// Package levels loads level maps and tracks the campaign order.
//
// Levels are YAML documents holding an ASCII map. Each glyph is looked up in
// the level legend to get a collider tag; the game resolves tags into
// contact classifications, this package never interprets them.
package levels

import (
	"fmt"

	"github.com/vovakirdan/tui-rocket/internal/core"
)

// Map glyphs with a fixed meaning.
const (
	GlyphSpawn = 'S'
	GlyphEmpty = '.'
)

// TagObstacle is given to glyphs missing from the legend.
const TagObstacle = "Obstacle"

// Tile is one cell of collision geometry.
type Tile struct {
	Glyph rune
	Tag   string
}

// Solid reports whether the cell holds geometry.
func (t Tile) Solid() bool {
	return t.Glyph != 0
}

// Level is a playable map.
type Level struct {
	ID          string
	Name        string
	Width       int
	Height      int
	Tiles       [][]Tile // [row][col]
	Spawn       core.Vec2
	Oscillators []Oscillator
	FilePath    string
}

// TileAt returns the tile at a cell. Cells outside the map are solid
// obstacles so the craft can never leave the level.
func (l *Level) TileAt(x, y int) Tile {
	if y < 0 || y >= l.Height || x < 0 || x >= l.Width {
		return Tile{Glyph: '#', Tag: TagObstacle}
	}
	return l.Tiles[y][x]
}

// Tags returns the distinct tags used by the map, in first-seen order.
func (l *Level) Tags() []string {
	seen := make(map[string]bool)
	var tags []string
	for _, row := range l.Tiles {
		for _, t := range row {
			if t.Solid() && !seen[t.Tag] {
				seen[t.Tag] = true
				tags = append(tags, t.Tag)
			}
		}
	}
	for _, o := range l.Oscillators {
		if !seen[o.Tag] {
			seen[o.Tag] = true
			tags = append(tags, o.Tag)
		}
	}
	return tags
}

// HasTag reports whether any collider carries the tag.
func (l *Level) HasTag(tag string) bool {
	for _, t := range l.Tags() {
		if t == tag {
			return true
		}
	}
	return false
}

// ParseMap builds a level from map rows and a glyph legend.
// Rows shorter than the widest row are padded with empty cells.
func ParseMap(id, name string, rows []string, legend map[rune]string) (*Level, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("levels: %s: empty map", id)
	}

	width := 0
	for _, row := range rows {
		if n := len([]rune(row)); n > width {
			width = n
		}
	}

	l := &Level{
		ID:     id,
		Name:   name,
		Width:  width,
		Height: len(rows),
		Tiles:  make([][]Tile, len(rows)),
	}

	spawns := 0
	for y, row := range rows {
		l.Tiles[y] = make([]Tile, width)
		for x, ch := range []rune(row) {
			switch ch {
			case GlyphEmpty, ' ':
			case GlyphSpawn:
				spawns++
				l.Spawn = core.Vec2{X: float64(x) + 0.5, Y: float64(y) + 0.5}
			default:
				tag, ok := legend[ch]
				if !ok {
					tag = TagObstacle
				}
				l.Tiles[y][x] = Tile{Glyph: ch, Tag: tag}
			}
		}
	}

	switch {
	case spawns == 0:
		return nil, fmt.Errorf("levels: %s: no spawn point %q", id, GlyphSpawn)
	case spawns > 1:
		return nil, fmt.Errorf("levels: %s: %d spawn points, expected 1", id, spawns)
	}

	return l, nil
}
