package symbol

import (
	"fmt"
	"strings"
)

// Direction is the signal direction of a pin.
type Direction int

const (
	// In pins are drawn in the left column.
	In Direction = iota
	// Out pins are drawn in the right column.
	Out
	// InOut pins are drawn in the right column, like Out.
	InOut
)

// String returns the lower-case keyword for the direction
func (d Direction) String() string {
	switch d {
	case In:
		return "in"
	case Out:
		return "out"
	case InOut:
		return "inout"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection parses "in", "out" or "inout", ignoring case.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "in":
		return In, nil
	case "out":
		return Out, nil
	case "inout":
		return InOut, nil
	default:
		return 0, fmt.Errorf("unknown pin direction %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(text []byte) error {
	v, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// side is the column a pin is drawn in. sign points outward from the
// section border: -1 for the left column, +1 for the right.
type side struct {
	sign float64
}

var (
	leftSide  = side{sign: -1}
	rightSide = side{sign: 1}
)

func (d Direction) side() side {
	if d == In {
		return leftSide
	}
	return rightSide
}

func (d Direction) isLeft() bool {
	return d == In
}

// textX returns the left edge for text of the given width placed at x and
// growing in direction grow (+1 rightward, -1 leftward).
func textX(x, width, grow float64) float64 {
	if grow < 0 {
		return x - width
	}
	return x
}
