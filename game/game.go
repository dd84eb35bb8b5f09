// Package game defines the boundary between the runtime loop and the games
// built on the ecs store.
package game

import (
	"fmt"
	"time"

	"github.com/plus3/hewn/ecs"
)

// Key is an abstract input key. Runtimes map device events onto it.
type Key uint8

const (
	KeyLeft Key = iota + 1
	KeyRight
	KeyUp
	KeyDown
	KeySpace
	KeyEscape
)

func (k Key) String() string {
	switch k {
	case KeyLeft:
		return "Left"
	case KeyRight:
		return "Right"
	case KeyUp:
		return "Up"
	case KeyDown:
		return "Down"
	case KeySpace:
		return "Space"
	case KeyEscape:
		return "Escape"
	}
	return fmt.Sprintf("Key(%d)", uint8(k))
}

// Phase is where a game is in its lifecycle.
type Phase uint8

const (
	PhaseMenu Phase = iota
	PhasePlaying
	PhaseLost
)

// State is the externally visible game state.
type State struct {
	Phase Phase
	Score int
}

// Handler is implemented by every game. The runtime calls Next once per
// tick with the key pressed since the previous tick, or nil.
type Handler interface {
	Start()
	Next(dt time.Duration, key *Key)
	Storage() *ecs.Storage
	State() State
	DebugString() string
}
