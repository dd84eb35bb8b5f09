package ecs

// ComponentType names one of the fixed component slots of a bundle.
type ComponentType uint8

const (
	PositionType ComponentType = iota
	VelocityType
	SizeType
	RenderType
	CameraFollowType

	componentTypeCount
)

var componentTypeNames = [componentTypeCount]string{
	PositionType:     "Position",
	VelocityType:     "Velocity",
	SizeType:         "Size",
	RenderType:       "Render",
	CameraFollowType: "CameraFollow",
}

func (c ComponentType) String() string {
	if c >= componentTypeCount {
		return "Unknown"
	}
	return componentTypeNames[c]
}

// ComponentTypes lists every slot in declaration order.
func ComponentTypes() []ComponentType {
	return []ComponentType{PositionType, VelocityType, SizeType, RenderType, CameraFollowType}
}

// Position is a world coordinate.
type Position struct {
	X, Y float64
}

// Velocity is a rate of change of Position per second.
type Velocity struct {
	X, Y float64
}

// Size is the width and height of the footprint anchored at Position
// (bottom-left corner).
type Size struct {
	X, Y float64
}

// Color is an RGB triple with channels in [0, 1].
type Color struct {
	R, G, B float32
}

// Render describes how renderers draw an entity. The core never reads it.
type Render struct {
	Glyph rune
	Color Color
	// SpriteTile is a row-major tile index into a tilemap. Nil draws a solid color.
	SpriteTile *uint16
}

// CameraFollow marks the entity a viewport should track.
type CameraFollow struct{}

// Components is the fixed bundle of optional component slots carried by
// every entity. A nil slot means the component is absent.
type Components struct {
	Position     *Position
	Velocity     *Velocity
	Size         *Size
	Render       *Render
	CameraFollow *CameraFollow
}

// Has reports whether the slot for kind is populated.
func (c *Components) Has(kind ComponentType) bool {
	switch kind {
	case PositionType:
		return c.Position != nil
	case VelocityType:
		return c.Velocity != nil
	case SizeType:
		return c.Size != nil
	case RenderType:
		return c.Render != nil
	case CameraFollowType:
		return c.CameraFollow != nil
	}
	return false
}

// Clear empties the slot for kind.
func (c *Components) Clear(kind ComponentType) {
	switch kind {
	case PositionType:
		c.Position = nil
	case VelocityType:
		c.Velocity = nil
	case SizeType:
		c.Size = nil
	case RenderType:
		c.Render = nil
	case CameraFollowType:
		c.CameraFollow = nil
	}
}

// Clone returns a bundle that shares no component memory with c.
func (c Components) Clone() Components {
	out := Components{}
	if c.Position != nil {
		p := *c.Position
		out.Position = &p
	}
	if c.Velocity != nil {
		v := *c.Velocity
		out.Velocity = &v
	}
	if c.Size != nil {
		s := *c.Size
		out.Size = &s
	}
	if c.Render != nil {
		r := *c.Render
		if r.SpriteTile != nil {
			tile := *r.SpriteTile
			r.SpriteTile = &tile
		}
		out.Render = &r
	}
	if c.CameraFollow != nil {
		out.CameraFollow = &CameraFollow{}
	}
	return out
}

// WithPosition returns a copy of c with Position set.
func (c Components) WithPosition(x, y float64) Components {
	c.Position = &Position{X: x, Y: y}
	return c
}

// WithVelocity returns a copy of c with Velocity set.
func (c Components) WithVelocity(x, y float64) Components {
	c.Velocity = &Velocity{X: x, Y: y}
	return c
}

// WithSize returns a copy of c with Size set.
func (c Components) WithSize(x, y float64) Components {
	c.Size = &Size{X: x, Y: y}
	return c
}

// WithRender returns a copy of c with a glyph-only Render set.
func (c Components) WithRender(glyph rune, color Color) Components {
	c.Render = &Render{Glyph: glyph, Color: color}
	return c
}

// WithCameraFollow returns a copy of c carrying the CameraFollow marker.
func (c Components) WithCameraFollow() Components {
	c.CameraFollow = &CameraFollow{}
	return c
}
