// Package level loads hand-written scenes from YAML and spawns them into
// an ecs store.
//
//	name: tower
//	entities:
//	  - kind: platform
//	    position: {x: 2, y: 9}
//	    size: {x: 3, y: 1}
//	    glyph: "="
//	    color: {r: 0.4, g: 0.8, b: 0.4}
package level

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/plus3/hewn/ecs"
	"gopkg.in/yaml.v3"
)

// Vec is a 2D value such as a position or a size.
type Vec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// RGB is a color with channels in [0, 1].
type RGB struct {
	R float32 `yaml:"r"`
	G float32 `yaml:"g"`
	B float32 `yaml:"b"`
}

// Entity is one scene entry. Kind is free-form; games use it to pick out
// the entries they understand, such as "platform" or "wall".
type Entity struct {
	Kind         string `yaml:"kind"`
	Position     *Vec   `yaml:"position"`
	Size         *Vec   `yaml:"size"`
	Velocity     *Vec   `yaml:"velocity"`
	Glyph        string `yaml:"glyph"`
	Color        *RGB   `yaml:"color"`
	CameraFollow bool   `yaml:"camera_follow"`
}

// Level is a named list of entities.
type Level struct {
	Name     string   `yaml:"name"`
	Entities []Entity `yaml:"entities"`
}

// Load reads and validates a level file.
func Load(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read level %s: %w", path, err)
	}
	lvl, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", path, err)
	}
	return lvl, nil
}

// Parse decodes a level document. Unknown fields are rejected.
func Parse(data []byte) (*Level, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var lvl Level
	if err := dec.Decode(&lvl); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse: %w", err)
	}
	for i, e := range lvl.Entities {
		if err := e.validate(); err != nil {
			return nil, fmt.Errorf("entity %d: %w", i, err)
		}
	}
	return &lvl, nil
}

func (e Entity) validate() error {
	if e.Glyph != "" && utf8.RuneCountInString(e.Glyph) != 1 {
		return fmt.Errorf("glyph %q must be a single character", e.Glyph)
	}
	if e.Size != nil && (e.Size.X <= 0 || e.Size.Y <= 0) {
		return fmt.Errorf("size must be positive, got %gx%g", e.Size.X, e.Size.Y)
	}
	if e.Color != nil && e.Glyph == "" {
		return errors.New("color without glyph")
	}
	return nil
}

// Components converts the entry to a component bundle.
func (e Entity) Components() ecs.Components {
	var c ecs.Components
	if e.Position != nil {
		c = c.WithPosition(e.Position.X, e.Position.Y)
	}
	if e.Size != nil {
		c = c.WithSize(e.Size.X, e.Size.Y)
	}
	if e.Velocity != nil {
		c = c.WithVelocity(e.Velocity.X, e.Velocity.Y)
	}
	if e.Glyph != "" {
		glyph, _ := utf8.DecodeRuneInString(e.Glyph)
		color := ecs.Color{R: 1, G: 1, B: 1}
		if e.Color != nil {
			color = ecs.Color{R: e.Color.R, G: e.Color.G, B: e.Color.B}
		}
		c = c.WithRender(glyph, color)
	}
	if e.CameraFollow {
		c = c.WithCameraFollow()
	}
	return c
}

// Spawn adds every entry of the given kinds to storage, or every entry
// when no kind is given, and returns the new ids in file order.
func (l *Level) Spawn(storage *ecs.Storage, kinds ...string) []ecs.EntityId {
	var ids []ecs.EntityId
	for _, e := range l.Entities {
		if !matches(e.Kind, kinds) {
			continue
		}
		ids = append(ids, storage.Spawn(e.Components()))
	}
	return ids
}

// PositionsOf returns the positions of the entries of a kind.
func (l *Level) PositionsOf(kind string) []ecs.Position {
	var out []ecs.Position
	for _, e := range l.Entities {
		if e.Kind == kind && e.Position != nil {
			out = append(out, ecs.Position{X: e.Position.X, Y: e.Position.Y})
		}
	}
	return out
}

func matches(kind string, kinds []string) bool {
	if len(kinds) == 0 {
		return true
	}
	for _, k := range kinds {
		if k == kind {
			return true
		}
	}
	return false
}
