package ov

import (
	"fmt"
	"slices"
	"strings"
)

// Layout names the axes of a tensor, e.g. "NCHW" or "[N,C,H,W]". "?" marks an unnamed axis.
type Layout struct {
	names []string
}

// ParseLayout parses a layout string. Single-letter layouts may be written without brackets;
// multi-letter axis names need the bracketed, comma separated form.
func ParseLayout(s string) (Layout, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Layout{}, nil
	}

	var names []string
	if strings.HasPrefix(s, "[") {
		if !strings.HasSuffix(s, "]") {
			return Layout{}, fmt.Errorf("%w: %q is missing a closing bracket", ErrInvalidLayout, s)
		}
		for _, n := range strings.Split(s[1:len(s)-1], ",") {
			names = append(names, strings.ToUpper(strings.TrimSpace(n)))
		}
	} else {
		for _, r := range s {
			names = append(names, strings.ToUpper(string(r)))
		}
	}

	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if n == "" {
			return Layout{}, fmt.Errorf("%w: %q has an empty axis name", ErrInvalidLayout, s)
		}
		if n != "?" && seen[n] {
			return Layout{}, fmt.Errorf("%w: %q repeats axis %s", ErrInvalidLayout, s, n)
		}
		seen[n] = true
	}

	return Layout{names: names}, nil
}

// MustParseLayout is like ParseLayout but panics on error.
func MustParseLayout(s string) Layout {
	l, err := ParseLayout(s)
	if err != nil {
		panic(err)
	}

	return l
}

// Empty reports whether the layout has no axes.
func (l Layout) Empty() bool { return len(l.names) == 0 }

// Index returns the position of an axis name.
func (l Layout) Index(name string) (int, bool) {
	i := slices.Index(l.names, strings.ToUpper(name))

	return i, i >= 0
}

// Has reports whether the layout names axis name.
func (l Layout) Has(name string) bool {
	_, ok := l.Index(name)

	return ok
}

func (l Layout) String() string {
	return "[" + strings.Join(l.names, ",") + "]"
}

// BatchIdx, ChannelsIdx, HeightIdx and WidthIdx return the conventional axis positions.
func BatchIdx(l Layout) (int, bool)    { return l.Index("N") }
func ChannelsIdx(l Layout) (int, bool) { return l.Index("C") }
func HeightIdx(l Layout) (int, bool)   { return l.Index("H") }
func WidthIdx(l Layout) (int, bool)    { return l.Index("W") }
