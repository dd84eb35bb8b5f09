// Package terminal draws games on a tcell screen and maps tcell key
// events to game keys.
package terminal

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/hewn/ecs"
	"github.com/plus3/hewn/game"
)

// Renderer draws every entity with a Render and a Position component.
// World y grows upwards; the bottom screen row is kept for the status line.
type Renderer struct {
	screen     tcell.Screen
	debug      bool
	viewWidth  int
	viewHeight int
}

func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen}
}

// SetDebug adds the game's debug string to the status line.
func (r *Renderer) SetDebug(on bool) { r.debug = on }

// SetViewSize limits the world area to width x height cells. Zero uses
// the whole screen on that axis.
func (r *Renderer) SetViewSize(width, height int) {
	r.viewWidth, r.viewHeight = width, height
}

// Viewport is the world cell shown in the bottom-left screen corner and
// the number of cells shown on each axis.
type Viewport struct {
	X, Y          int
	Width, Height int
}

// ViewportFor centres the view on the CameraFollow entity, never showing
// negative world coordinates.
func ViewportFor(storage *ecs.Storage, width, height int) Viewport {
	vp := Viewport{Width: width, Height: height}
	for e := range storage.Query(ecs.CameraFollowType) {
		if e.Components.Position == nil {
			continue
		}
		vp.X = max(int(math.Floor(e.Components.Position.X))-width/2, 0)
		vp.Y = max(int(math.Floor(e.Components.Position.Y))-height/2, 0)
		break
	}
	return vp
}

// Draw renders one frame of h and shows it.
func (r *Renderer) Draw(h game.Handler) {
	r.screen.Clear()

	width, height := r.screen.Size()
	if r.viewWidth > 0 {
		width = min(width, r.viewWidth)
	}
	if r.viewHeight > 0 {
		height = min(height, r.viewHeight+1)
	}
	if height < 2 {
		r.screen.Show()
		return
	}
	vp := ViewportFor(h.Storage(), width, height-1)

	for e := range h.Storage().Query(ecs.RenderType) {
		if e.Components.Position == nil {
			continue
		}
		r.drawEntity(e, vp)
	}

	r.drawText(0, height-1, r.status(h), tcell.StyleDefault.Reverse(true))
	r.screen.Show()
}

func (r *Renderer) drawEntity(e *ecs.Entity, vp Viewport) {
	render := e.Components.Render
	style := tcell.StyleDefault.Foreground(toColor(render.Color))

	cols, rows := 1, 1
	if size := e.Components.Size; size != nil {
		cols, rows = max(int(math.Ceil(size.X)), 1), max(int(math.Ceil(size.Y)), 1)
	}

	x0 := int(math.Floor(e.Components.Position.X)) - vp.X
	y0 := int(math.Floor(e.Components.Position.Y)) - vp.Y
	for dy := range rows {
		for dx := range cols {
			x, y := x0+dx, y0+dy
			if x < 0 || x >= vp.Width || y < 0 || y >= vp.Height {
				continue
			}
			r.screen.SetContent(x, vp.Height-1-y, render.Glyph, nil, style)
		}
	}
}

func (r *Renderer) status(h game.Handler) string {
	state := h.State()

	var text string
	switch state.Phase {
	case game.PhaseMenu:
		text = "press space to start"
	case game.PhasePlaying:
		text = fmt.Sprintf("score %d", state.Score)
	case game.PhaseLost:
		text = fmt.Sprintf("game over, score %d, space to restart", state.Score)
	}
	if r.debug {
		text += " | " + h.DebugString()
	}
	return text
}

func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	for _, ch := range text {
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
}

func toColor(c ecs.Color) tcell.Color {
	return tcell.NewRGBColor(channel(c.R), channel(c.G), channel(c.B))
}

func channel(v float32) int32 {
	return int32(math.Round(float64(min(max(v, 0), 1)) * 255))
}
