package terminal

import (
	"github.com/gdamore/tcell/v2"
	"github.com/plus3/hewn/game"
)

var keys = map[tcell.Key]game.Key{
	tcell.KeyLeft:   game.KeyLeft,
	tcell.KeyRight:  game.KeyRight,
	tcell.KeyUp:     game.KeyUp,
	tcell.KeyDown:   game.KeyDown,
	tcell.KeyEscape: game.KeyEscape,
	tcell.KeyCtrlC:  game.KeyEscape,
}

var runes = map[rune]game.Key{
	'a': game.KeyLeft,
	'd': game.KeyRight,
	'w': game.KeyUp,
	's': game.KeyDown,
	'h': game.KeyLeft,
	'l': game.KeyRight,
	'k': game.KeyUp,
	'j': game.KeyDown,
	' ': game.KeySpace,
	'q': game.KeyEscape,
}

// KeyFromEvent maps a tcell key event to a game key. Unmapped keys
// return false.
func KeyFromEvent(ev *tcell.EventKey) (game.Key, bool) {
	if ev.Key() == tcell.KeyRune {
		k, ok := runes[ev.Rune()]
		return k, ok
	}
	k, ok := keys[ev.Key()]
	return k, ok
}
