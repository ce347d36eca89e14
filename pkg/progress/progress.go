package progress

import (
	"encoding/json"
	"fmt"
)

// Direction tells whether a transition is bringing a target in or taking it out.
type Direction string

const (
	DirectionInsertion Direction = "insertion"
	DirectionRemoval   Direction = "removal"
)

// At returns a Progress in this direction at the given magnitude.
func (d Direction) At(magnitude float64) Progress {
	return Progress{direction: d.normalized(), magnitude: clamp(magnitude)}
}

// AtEdge returns a Progress in this direction at the start or end edge.
func (d Direction) AtEdge(e Edge) Progress {
	return d.At(e.Progress())
}

// Valid reports whether d is one of the known directions.
func (d Direction) Valid() bool {
	return d == DirectionInsertion || d == DirectionRemoval
}

// Opposite returns the other direction.
func (d Direction) Opposite() Direction {
	if d == DirectionRemoval {
		return DirectionInsertion
	}
	return DirectionRemoval
}

func (d Direction) normalized() Direction {
	if d == DirectionRemoval {
		return DirectionRemoval
	}
	return DirectionInsertion
}

// ParseDirection converts a string into a Direction.
func ParseDirection(s string) (Direction, error) {
	d := Direction(s)
	if !d.Valid() {
		return "", fmt.Errorf("unknown direction %q", s)
	}
	return d, nil
}

// Edge is one end of the progress range.
type Edge int

const (
	EdgeStart Edge = iota
	EdgeEnd
)

// Progress returns 0 for the start edge and 1 for the end edge.
func (e Edge) Progress() float64 {
	if e == EdgeEnd {
		return 1
	}
	return 0
}

// Progress is a direction plus a magnitude in [0, 1].
// The zero value is Insertion(0).
type Progress struct {
	direction Direction
	magnitude float64
}

// Insertion returns an insertion progress at magnitude m.
func Insertion(m float64) Progress {
	return DirectionInsertion.At(m)
}

// Removal returns a removal progress at magnitude m.
func Removal(m float64) Progress {
	return DirectionRemoval.At(m)
}

// InsertionEdge returns an insertion progress at the given edge.
func InsertionEdge(e Edge) Progress {
	return DirectionInsertion.AtEdge(e)
}

// RemovalEdge returns a removal progress at the given edge.
func RemovalEdge(e Edge) Progress {
	return DirectionRemoval.AtEdge(e)
}

// Direction returns the direction of p.
func (p Progress) Direction() Direction {
	return p.direction.normalized()
}

// Magnitude returns the raw magnitude of p, regardless of direction.
func (p Progress) Magnitude() float64 {
	return p.magnitude
}

// Progress returns how much of the identity (untransformed) state is visible:
// the magnitude for insertion, its complement for removal.
func (p Progress) Progress() float64 {
	if p.IsRemoval() {
		return 1 - p.magnitude
	}
	return p.magnitude
}

// IsInsertion reports whether p runs in the insertion direction.
func (p Progress) IsInsertion() bool {
	return p.Direction() == DirectionInsertion
}

// IsRemoval reports whether p runs in the removal direction.
func (p Progress) IsRemoval() bool {
	return p.Direction() == DirectionRemoval
}

// Inverted swaps the direction and complements the magnitude, so the
// normalized Progress() value is preserved.
func (p Progress) Inverted() Progress {
	return p.Direction().Opposite().At(1 - p.magnitude)
}

// Reversed complements the magnitude and keeps the direction.
func (p Progress) Reversed() Progress {
	return p.Direction().At(1 - p.magnitude)
}

// WithDirection returns p with direction d at the same magnitude.
func (p Progress) WithDirection(d Direction) Progress {
	return d.At(p.magnitude)
}

// WithMagnitude returns p with the same direction at magnitude m.
func (p Progress) WithMagnitude(m float64) Progress {
	return p.Direction().At(m)
}

func (p Progress) String() string {
	return fmt.Sprintf("%s(%g)", p.Direction(), p.magnitude)
}

type progressJSON struct {
	Direction Direction `json:"direction"`
	Magnitude float64   `json:"magnitude"`
}

// MarshalJSON encodes p as {"direction": ..., "magnitude": ...}.
func (p Progress) MarshalJSON() ([]byte, error) {
	return json.Marshal(progressJSON{Direction: p.Direction(), Magnitude: p.magnitude})
}

// UnmarshalJSON decodes p, clamping the magnitude into [0, 1].
func (p *Progress) UnmarshalJSON(data []byte) error {
	var raw progressJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	d, err := ParseDirection(string(raw.Direction))
	if err != nil {
		return err
	}
	*p = d.At(raw.Magnitude)
	return nil
}

func clamp(m float64) float64 {
	switch {
	case m != m: // NaN
		return 0
	case m < 0:
		return 0
	case m > 1:
		return 1
	}
	return m
}
