package geometry

import (
	"fmt"
	"strconv"
	"strings"
)

// RelationType tells how a RelationValue resolves against a full length.
type RelationType string

const (
	RelationAbsolute RelationType = "absolute"
	RelationRelative RelationType = "relative"
)

// RelationValue is either an absolute length or a fraction of some full
// length that is only known when the transition runs.
type RelationValue struct {
	kind  RelationType
	value float64
}

// Absolute is a fixed length.
func Absolute(v float64) RelationValue {
	return RelationValue{kind: RelationAbsolute, value: v}
}

// Relative is k times the full length.
func Relative(k float64) RelationValue {
	return RelationValue{kind: RelationRelative, value: k}
}

// Type reports whether r is absolute or relative. The zero value is an
// absolute zero.
func (r RelationValue) Type() RelationType {
	if r.kind == "" {
		return RelationAbsolute
	}
	return r.kind
}

// Raw returns the stored length or coefficient.
func (r RelationValue) Raw() float64 {
	return r.value
}

// ValueFor resolves r against full.
func (r RelationValue) ValueFor(full float64) float64 {
	if r.Type() == RelationRelative {
		return full * r.value
	}
	return r.value
}

// Mul scales r, keeping its type.
func (r RelationValue) Mul(f float64) RelationValue {
	return RelationValue{kind: r.Type(), value: r.value * f}
}

// Div divides r, keeping its type.
func (r RelationValue) Div(f float64) RelationValue {
	return RelationValue{kind: r.Type(), value: r.value / f}
}

// String renders relative values as percentages, the form ParseRelation
// reads back.
func (r RelationValue) String() string {
	if r.Type() == RelationRelative {
		return strconv.FormatFloat(r.value*100, 'g', -1, 64) + "%"
	}
	return strconv.FormatFloat(r.value, 'g', -1, 64)
}

// ParseRelation reads "12.5" as Absolute(12.5) and "50%" as Relative(0.5).
func ParseRelation(s string) (RelationValue, error) {
	s = strings.TrimSpace(s)
	if pct, ok := strings.CutSuffix(s, "%"); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(pct), 64)
		if err != nil {
			return RelationValue{}, fmt.Errorf("invalid relative value %q: %w", s, err)
		}
		return Relative(f / 100), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return RelationValue{}, fmt.Errorf("invalid absolute value %q: %w", s, err)
	}
	return Absolute(f), nil
}

func (r RelationValue) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *RelationValue) UnmarshalText(text []byte) error {
	parsed, err := ParseRelation(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
