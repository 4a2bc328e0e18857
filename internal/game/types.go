// internal/game/types.go
//
// Core type definitions for the pot-picking move engine.
// Defines:
//   - Level: difficulty policy applied on top of the optimal-play table.

package game

// Level selects how far the engine's chosen end deviates from optimal play.
// Possible values:
//   - Easy:   always the worse end.
//   - Medium: the better or worse end with equal probability.
//   - Hard:   always the better end. Also the default for unknown names.
type Level int

const (
	Hard Level = iota
	Medium
	Easy
)

// ParseLevel maps a wire name to a Level.
// Only the exact names "EASY" and "MEDIUM" select the softer policies;
// every other string, including the empty one, resolves to Hard.
func ParseLevel(s string) Level {
	switch s {
	case "EASY":
		return Easy
	case "MEDIUM":
		return Medium
	default:
		return Hard
	}
}

// String returns the wire name of the level.
func (l Level) String() string {
	switch l {
	case Easy:
		return "EASY"
	case Medium:
		return "MEDIUM"
	default:
		return "HARD"
	}
}

// MarshalText lets Level appear as its wire name in JSON.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText applies ParseLevel, so decoding never fails on unknown names.
func (l *Level) UnmarshalText(b []byte) error {
	*l = ParseLevel(string(b))
	return nil
}
