package warnings

import (
	"errors"
	"fmt"
	"sync"
	"unicode"
)

// Category classifies a warning. Categories form a tree rooted at Warning; a filter registered
// for a category also applies to all of its descendants.
type Category struct {
	name   string
	parent *Category
}

// Built-in categories.
var (
	Warning                   = &Category{name: "Warning"}
	UserWarning               = &Category{name: "UserWarning", parent: Warning}
	DeprecationWarning        = &Category{name: "DeprecationWarning", parent: Warning}
	PendingDeprecationWarning = &Category{name: "PendingDeprecationWarning", parent: Warning}
	SyntaxWarning             = &Category{name: "SyntaxWarning", parent: Warning}
	RuntimeWarning            = &Category{name: "RuntimeWarning", parent: Warning}
	FutureWarning             = &Category{name: "FutureWarning", parent: Warning}
	ImportWarning             = &Category{name: "ImportWarning", parent: Warning}
	UnicodeWarning            = &Category{name: "UnicodeWarning", parent: Warning}
	BytesWarning              = &Category{name: "BytesWarning", parent: Warning}
	ResourceWarning           = &Category{name: "ResourceWarning", parent: Warning}
)

var categories = struct {
	mu     sync.RWMutex
	byName map[string]*Category
}{
	byName: map[string]*Category{},
}

func init() {
	for _, c := range []*Category{
		Warning, UserWarning, DeprecationWarning, PendingDeprecationWarning, SyntaxWarning,
		RuntimeWarning, FutureWarning, ImportWarning, UnicodeWarning, BytesWarning, ResourceWarning,
	} {
		categories.byName[c.name] = c
	}
}

// NewCategory defines a custom category below parent and makes it resolvable by name through
// LookupCategory. The name must be a non-empty identifier that is not already taken.
func NewCategory(name string, parent *Category) (*Category, error) {
	if !isIdentifier(name) {
		return nil, &ConfigurationError{Field: "category", Value: name, Err: errors.New("category name must be an identifier")}
	}
	if parent == nil {
		return nil, &ConfigurationError{Field: "category", Value: name, Err: fmt.Errorf("category %q has no parent", name)}
	}

	categories.mu.Lock()
	defer categories.mu.Unlock()

	if _, ok := categories.byName[name]; ok {
		return nil, &ConfigurationError{Field: "category", Value: name, Err: fmt.Errorf("category %q already defined", name)}
	}
	c := &Category{name: name, parent: parent}
	categories.byName[name] = c

	return c, nil
}

// MustNewCategory is like NewCategory but panics on error.
func MustNewCategory(name string, parent *Category) *Category {
	c, err := NewCategory(name, parent)
	if err != nil {
		panic(err)
	}

	return c
}

// LookupCategory resolves a category by name.
func LookupCategory(name string) (*Category, bool) {
	categories.mu.RLock()
	defer categories.mu.RUnlock()

	c, ok := categories.byName[name]

	return c, ok
}

// Name returns the category name.
func (c *Category) Name() string {
	if c == nil {
		return ""
	}

	return c.name
}

// Parent returns the parent category, or nil for Warning.
func (c *Category) Parent() *Category {
	if c == nil {
		return nil
	}

	return c.parent
}

func (c *Category) String() string { return c.Name() }

// IsSubclassOf reports whether c is other or a descendant of other.
func (c *Category) IsSubclassOf(other *Category) bool {
	if other == nil {
		return false
	}
	for x := c; x != nil; x = x.parent {
		if x == other {
			return true
		}
	}

	return false
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}

		return false
	}

	return true
}
