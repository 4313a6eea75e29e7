package opset

import (
	"fmt"
	"slices"
	"sync"

	"github.com/ovbind/ovbind/namespace"
)

// Opset is a numbered, immutable collection of operation versions.
type Opset struct {
	version int
	ops     map[string]*Op
	names   []string

	nsOnce sync.Once
	ns     *namespace.Namespace
}

var opsets = sync.OnceValue(func() []*Opset {
	// one *Op per (name, since) pair, shared by all op-sets that select it
	versions := make(map[string][]*Op, len(catalog))
	for name, since := range catalog {
		for _, v := range since {
			versions[name] = append(versions[name], &Op{name: name, since: v})
		}
	}

	sets := make([]*Opset, Latest)
	for n := 1; n <= Latest; n++ {
		s := &Opset{version: n, ops: map[string]*Op{}}
		for name, ops := range versions {
			var chosen *Op
			for _, op := range ops {
				if op.since <= n {
					chosen = op
				}
			}
			if chosen != nil {
				s.ops[name] = chosen
				s.names = append(s.names, name)
			}
		}
		slices.Sort(s.names)
		sets[n-1] = s
	}

	return sets
})

// Get returns op-set n, 1 through Latest.
func Get(n int) (*Opset, error) {
	if n < 1 || n > Latest {
		return nil, fmt.Errorf("opset%d does not exist: versions are 1 to %d", n, Latest)
	}

	return opsets()[n-1], nil
}

// MustGet is like Get but panics on error.
func MustGet(n int) *Opset {
	s, err := Get(n)
	if err != nil {
		panic(err)
	}

	return s
}

// All returns every op-set in version order.
func All() []*Opset {
	return slices.Clone(opsets())
}

// Version returns the op-set number.
func (s *Opset) Version() int { return s.version }

// Name returns "opset<N>".
func (s *Opset) Name() string { return fmt.Sprintf("opset%d", s.version) }

// Op returns the operation called name.
func (s *Opset) Op(name string) (*Op, bool) {
	op, ok := s.ops[name]

	return op, ok
}

// Ops returns the operations sorted by name.
func (s *Opset) Ops() []*Op {
	ops := make([]*Op, len(s.names))
	for i, name := range s.names {
		ops[i] = s.ops[name]
	}

	return ops
}

// Len returns the number of operations.
func (s *Opset) Len() int { return len(s.names) }

// Namespace returns the op-set as a frozen namespace named "opset<N>" that binds each
// operation name to its *Op. Repeated calls return the same namespace.
func (s *Opset) Namespace() *namespace.Namespace {
	s.nsOnce.Do(func() {
		ns := namespace.New(s.Name())
		for _, name := range s.names {
			ns.MustDefine(name, s.ops[name])
		}
		ns.Freeze()
		s.ns = ns
	})

	return s.ns
}
