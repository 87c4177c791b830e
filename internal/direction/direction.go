// Package direction maps directional-input tokens used in combo overrides to canonical values.
package direction

import "strings"

// Direction is a held input direction.
type Direction int

const (
	Unknown Direction = iota
	Neutral
	Up
	Down
	Left
	Right
	Forward
	Back
	UpLeft
	UpRight
	DownLeft
	DownRight
)

// String returns the canonical token for the direction.
func (d Direction) String() string {
	switch d {
	case Neutral:
		return "neutral"
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	case Forward:
		return "forward"
	case Back:
		return "back"
	case UpLeft:
		return "up-left"
	case UpRight:
		return "up-right"
	case DownLeft:
		return "down-left"
	case DownRight:
		return "down-right"
	default:
		return "unknown"
	}
}

// Arrow returns a single-cell glyph for compact rendering.
func (d Direction) Arrow() rune {
	switch d {
	case Neutral:
		return '•'
	case Up:
		return '↑'
	case Down:
		return '↓'
	case Left, Back:
		return '←'
	case Right, Forward:
		return '→'
	case UpLeft:
		return '↖'
	case UpRight:
		return '↗'
	case DownLeft:
		return '↙'
	case DownRight:
		return '↘'
	default:
		return '?'
	}
}

var tokens = map[string]Direction{
	"neutral":   Neutral,
	"up":        Up,
	"down":      Down,
	"left":      Left,
	"right":     Right,
	"forward":   Forward,
	"back":      Back,
	"upleft":    UpLeft,
	"upright":   UpRight,
	"downleft":  DownLeft,
	"downright": DownRight,
}

// Lookup resolves a case-insensitive token. Compound directions may be written with a
// hyphen, underscore, space or nothing between parts ("Up-Left", "up_left", "UpLeft").
// ok is false for tokens outside the vocabulary.
func Lookup(token string) (Direction, bool) {
	key := strings.ToLower(strings.TrimSpace(token))
	key = strings.NewReplacer("-", "", "_", "", " ", "").Replace(key)
	d, ok := tokens[key]
	if !ok {
		return Unknown, false
	}
	return d, true
}
