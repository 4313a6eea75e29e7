// Package namespace provides ordered, read-only-after-construction symbol tables. A symbol is a
// shared reference to an object owned elsewhere; a Namespace never copies what it exports.
package namespace

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"
)

var (
	ErrDuplicateSymbol = errors.New("symbol already defined")
	ErrFrozen          = errors.New("namespace is frozen")
	ErrInvalidSymbol   = errors.New("invalid symbol")
)

// Namespace is an ordered mapping from exported names to symbols, plus ordered named child
// namespaces. Symbols and children share one name space.
type Namespace struct {
	mu sync.RWMutex

	name string
	// parent is the namespace the child was first attached to, guarded by mu.
	parent *Namespace

	// names keeps definition order for symbols.
	names   []string
	symbols map[string]any

	children []*Namespace
	byChild  map[string]*Namespace

	frozen bool
}

// New creates an empty namespace.
func New(name string) *Namespace {
	return &Namespace{
		name:    name,
		symbols: make(map[string]any),
		byChild: make(map[string]*Namespace),
	}
}

// Name returns the namespace's own name.
func (n *Namespace) Name() string { return n.name }

// Path returns the dotted path from the root namespace, e.g. "ov.opset8".
func (n *Namespace) Path() string {
	parent := n.owner()
	if parent == nil {
		return n.name
	}

	return parent.Path() + "." + n.name
}

func (n *Namespace) owner() *Namespace {
	n.mu.RLock()
	defer n.mu.RUnlock()

	return n.parent
}

// Define binds name to value. The name must be non-empty and not yet taken by a symbol or a
// child, and the value must be non-nil.
func (n *Namespace) Define(name string, value any) error {
	if name == "" {
		return fmt.Errorf("%w: empty name in %s", ErrInvalidSymbol, n.Path())
	}
	if isNil(value) {
		return fmt.Errorf("%w: %s.%s is nil", ErrInvalidSymbol, n.Path(), name)
	}

	path := n.Path()

	n.mu.Lock()
	defer n.mu.Unlock()

	if n.frozen {
		return fmt.Errorf("%w: cannot define %s.%s", ErrFrozen, path, name)
	}
	if n.takenLocked(name) {
		return fmt.Errorf("%w: %s.%s", ErrDuplicateSymbol, path, name)
	}
	n.symbols[name] = value
	n.names = append(n.names, name)

	return nil
}

// MustDefine is like Define but panics on error.
func (n *Namespace) MustDefine(name string, value any) {
	if err := n.Define(name, value); err != nil {
		panic(err)
	}
}

// AddChild attaches child under its own name. The child keeps the path of the namespace it
// was first attached to.
func (n *Namespace) AddChild(child *Namespace) error {
	if child == nil || child.name == "" {
		return fmt.Errorf("%w: unnamed child in %s", ErrInvalidSymbol, n.Path())
	}
	path := n.Path()
	if child == n {
		return fmt.Errorf("%w: %s cannot be its own child", ErrInvalidSymbol, path)
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if n.frozen {
		return fmt.Errorf("%w: cannot add %s.%s", ErrFrozen, path, child.name)
	}
	if n.takenLocked(child.name) {
		return fmt.Errorf("%w: %s.%s", ErrDuplicateSymbol, path, child.name)
	}
	// A child attached to several namespaces is shared, not copied; the first one owns it.
	child.mu.Lock()
	if child.parent == nil {
		child.parent = n
	}
	child.mu.Unlock()
	n.children = append(n.children, child)
	n.byChild[child.name] = child

	return nil
}

// MustAddChild is like AddChild but panics on error.
func (n *Namespace) MustAddChild(child *Namespace) {
	if err := n.AddChild(child); err != nil {
		panic(err)
	}
}

func (n *Namespace) takenLocked(name string) bool {
	if _, ok := n.symbols[name]; ok {
		return true
	}
	_, ok := n.byChild[name]

	return ok
}

// Lookup returns the symbol bound to name.
func (n *Namespace) Lookup(name string) (any, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	v, ok := n.symbols[name]

	return v, ok
}

// Child returns the child namespace called name.
func (n *Namespace) Child(name string) (*Namespace, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	c, ok := n.byChild[name]

	return c, ok
}

// Resolve looks up a dotted path such as "opset8.Add" relative to n. A path naming a child
// namespace resolves to that *Namespace.
func (n *Namespace) Resolve(path string) (any, bool) {
	parts := strings.Split(path, ".")
	cur := n
	for _, p := range parts[:len(parts)-1] {
		next, ok := cur.Child(p)
		if !ok {
			return nil, false
		}
		cur = next
	}
	last := parts[len(parts)-1]
	if v, ok := cur.Lookup(last); ok {
		return v, true
	}
	if c, ok := cur.Child(last); ok {
		return c, true
	}

	return nil, false
}

// Names returns the symbol names in definition order.
func (n *Namespace) Names() []string {
	n.mu.RLock()
	defer n.mu.RUnlock()

	return slices.Clone(n.names)
}

// Len returns the number of symbols, not counting children.
func (n *Namespace) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()

	return len(n.names)
}

// Children returns the child namespaces in the order they were added.
func (n *Namespace) Children() []*Namespace {
	n.mu.RLock()
	defer n.mu.RUnlock()

	return slices.Clone(n.children)
}

// Freeze makes n and every child it owns read-only. Children first attached elsewhere are
// shared, not owned, and keep their state.
func (n *Namespace) Freeze() {
	n.mu.Lock()
	n.frozen = true
	children := slices.Clone(n.children)
	n.mu.Unlock()

	for _, c := range children {
		if c.owner() == n {
			c.Freeze()
		}
	}
}

// Frozen reports whether Freeze has been called.
func (n *Namespace) Frozen() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()

	return n.frozen
}

// Walk calls fn for every symbol, depth first: a namespace's own symbols in order, then each
// child. path is relative to n. Walk stops at the first error.
func (n *Namespace) Walk(fn func(path string, value any) error) error {
	return n.walk("", fn)
}

func (n *Namespace) walk(prefix string, fn func(path string, value any) error) error {
	for _, name := range n.Names() {
		v, _ := n.Lookup(name)
		if err := fn(prefix+name, v); err != nil {
			return err
		}
	}
	for _, c := range n.Children() {
		if err := c.walk(prefix+c.name+".", fn); err != nil {
			return err
		}
	}

	return nil
}

// SameSymbol reports whether a and b are the same object: pointers, maps, channels and
// functions by address, slices by backing array and length, namespaces by identity, and other
// comparable values with ==.
//
// Functions compare by code pointer, so two closures created from the same function literal
// count as the same symbol. Namespaces only hold top-level functions and method values bound
// once, where this is exact.
func SameSymbol(a, b any) bool {
	if isNil(a) || isNil(b) {
		return isNil(a) && isNil(b)
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}

	switch va.Kind() {
	case reflect.Func, reflect.Pointer, reflect.Map, reflect.Chan, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	default:
		if va.Comparable() {
			return va.Equal(vb)
		}

		return false
	}
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Func, reflect.Pointer, reflect.Map, reflect.Chan, reflect.Slice, reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	default:
		return false
	}
}
