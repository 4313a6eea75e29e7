package ov

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Dimension is one axis of a PartialShape: static, dynamic, or dynamic within bounds.
// Max is -1 for an unbounded dimension.
type Dimension struct {
	Min int64
	Max int64
	// Symbol ties equal dynamic dimensions together. Nil when unknown.
	Symbol *Symbol
}

// Symbol marks dynamic dimensions that are known to be equal.
type Symbol struct {
	name string
}

// NewSymbol returns a fresh dimension symbol.
func NewSymbol(name string) *Symbol { return &Symbol{name: name} }

func (s *Symbol) String() string { return s.name }

// NewDimension returns a static dimension.
func NewDimension(n int64) Dimension { return Dimension{Min: n, Max: n} }

// DynamicDimension returns an unbounded dynamic dimension.
func DynamicDimension() Dimension { return Dimension{Min: 0, Max: -1} }

// BoundedDimension returns a dynamic dimension within [lo, hi].
func BoundedDimension(lo, hi int64) Dimension { return Dimension{Min: lo, Max: hi} }

// IsStatic reports whether the dimension has a single value.
func (d Dimension) IsStatic() bool { return d.Max >= 0 && d.Min == d.Max }

// IsDynamic is the negation of IsStatic.
func (d Dimension) IsDynamic() bool { return !d.IsStatic() }

// Length returns the static value.
func (d Dimension) Length() (int64, error) {
	if !d.IsStatic() {
		return 0, fmt.Errorf("%w: dimension %s", ErrDynamicShape, d)
	}

	return d.Min, nil
}

func (d Dimension) String() string {
	switch {
	case d.IsStatic():
		return strconv.FormatInt(d.Min, 10)
	case d.Max < 0 && d.Min == 0:
		return "?"
	case d.Max < 0:
		return fmt.Sprintf("%d..", d.Min)
	default:
		return fmt.Sprintf("%d..%d", d.Min, d.Max)
	}
}

// ParseDimension parses "3", "?", "-1", "1..10" or "2..".
func ParseDimension(s string) (Dimension, error) {
	s = strings.TrimSpace(s)
	if s == "?" || s == "-1" {
		return DynamicDimension(), nil
	}
	if lo, hi, ok := strings.Cut(s, ".."); ok {
		lower, err := strconv.ParseInt(lo, 10, 64)
		if err != nil {
			return Dimension{}, fmt.Errorf("parse dimension %q: %w", s, err)
		}
		if hi == "" {
			return Dimension{Min: lower, Max: -1}, nil
		}
		upper, err := strconv.ParseInt(hi, 10, 64)
		if err != nil {
			return Dimension{}, fmt.Errorf("parse dimension %q: %w", s, err)
		}
		if upper < lower {
			return Dimension{}, fmt.Errorf("parse dimension %q: upper bound below lower bound", s)
		}

		return BoundedDimension(lower, upper), nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return Dimension{}, fmt.Errorf("parse dimension %q: %w", s, err)
	}

	return NewDimension(n), nil
}

// PartialShape is a shape whose dimensions may be dynamic. A nil PartialShape has dynamic rank.
type PartialShape []Dimension

// NewPartialShape returns a static partial shape.
func NewPartialShape(dims ...int64) PartialShape {
	ps := make(PartialShape, len(dims))
	for i, d := range dims {
		ps[i] = NewDimension(d)
	}

	return ps
}

// ParsePartialShape parses "[1,3,?,224]" or "1,3,?,224". "..." means dynamic rank.
func ParsePartialShape(s string) (PartialShape, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(strings.TrimPrefix(s, "["), "]")
	if s == "..." {
		return nil, nil
	}
	if s == "" {
		return PartialShape{}, nil
	}
	var ps PartialShape
	for _, part := range strings.Split(s, ",") {
		d, err := ParseDimension(part)
		if err != nil {
			return nil, err
		}
		ps = append(ps, d)
	}

	return ps, nil
}

// IsStatic reports whether every dimension is static and the rank is known.
func (p PartialShape) IsStatic() bool {
	if p == nil {
		return false
	}
	for _, d := range p {
		if !d.IsStatic() {
			return false
		}
	}

	return true
}

// Rank returns the rank, or -1 when the rank is dynamic.
func (p PartialShape) Rank() int {
	if p == nil {
		return -1
	}

	return len(p)
}

// ToShape converts a static partial shape.
func (p PartialShape) ToShape() (Shape, error) {
	if !p.IsStatic() {
		return nil, fmt.Errorf("%w: %s", ErrDynamicShape, p)
	}
	s := make(Shape, len(p))
	for i, d := range p {
		s[i] = uint64(d.Min)
	}

	return s, nil
}

func (p PartialShape) String() string {
	if p == nil {
		return "[...]"
	}
	parts := make([]string, len(p))
	for i, d := range p {
		parts[i] = d.String()
	}

	return "[" + strings.Join(parts, ",") + "]"
}

// Shape is a static tensor shape.
type Shape []uint64

// Size returns the number of elements.
func (s Shape) Size() uint64 {
	n := uint64(1)
	for _, d := range s {
		n *= d
	}

	return n
}

// ToPartialShape converts a static shape.
func (s Shape) ToPartialShape() PartialShape {
	ps := make(PartialShape, len(s))
	for i, d := range s {
		ps[i] = NewDimension(int64(d))
	}

	return ps
}

func (s Shape) String() string { return s.ToPartialShape().String() }

// Strides are per-axis byte strides.
type Strides []uint64

// Coordinate indexes a tensor element.
type Coordinate []uint64

// CoordinateDiff is a signed per-axis offset, e.g. padding.
type CoordinateDiff []int64

// AxisVector is an ordered list of axes, e.g. a transpose order.
type AxisVector []uint64

// AxisSet is a sorted set of axes.
type AxisSet []uint64

// NewAxisSet returns the sorted, de-duplicated set of axes.
func NewAxisSet(axes ...uint64) AxisSet {
	s := slices.Clone(axes)
	slices.Sort(s)

	return AxisSet(slices.Compact(s))
}

// Contains reports whether axis is in the set.
func (a AxisSet) Contains(axis uint64) bool {
	_, ok := slices.BinarySearch(a, axis)

	return ok
}
