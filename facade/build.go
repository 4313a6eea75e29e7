package facade

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/ovbind/ovbind/namespace"
)

// Build constructs the legacy namespace described by spec from canonical. It is all or
// nothing: when any expected symbol is absent, it returns a *MissingSymbolError naming all of
// them and no namespace. The returned namespace is frozen and shares every symbol and child
// with canonical.
func Build(canonical *namespace.Namespace, spec *Spec) (*namespace.Namespace, error) {
	if missing := Verify(canonical, spec); len(missing) > 0 {
		return nil, &MissingSymbolError{Namespace: spec.Name, Canonical: canonical.Path(), Missing: missing}
	}

	ns := namespace.New(spec.Name)
	for _, e := range spec.Exports {
		if _, ok := ns.Lookup(e.Name); ok {
			continue
		}
		v, _ := canonical.Lookup(e.SourceName())
		if err := ns.Define(e.Name, v); err != nil {
			return nil, fmt.Errorf("failed to bind %s.%s: %w", spec.Name, e.Name, err)
		}
	}

	children := slices.Clone(spec.Children)
	for _, v := range opsetVersions(canonical, spec.OpsetPrefix) {
		name := spec.OpsetPrefix + strconv.Itoa(v)
		children = append(children, ChildExport{Name: name})
	}
	for _, c := range children {
		if _, ok := ns.Child(c.Name); ok {
			continue
		}
		child, _ := canonical.Child(c.SourceName())
		if err := ns.AddChild(child); err != nil {
			return nil, fmt.Errorf("failed to bind %s.%s: %w", spec.Name, c.Name, err)
		}
	}

	ns.Freeze()

	return ns, nil
}

// Verify returns the canonical names spec expects but canonical lacks, in manifest order.
// Missing op-set versions are reported by child name.
func Verify(canonical *namespace.Namespace, spec *Spec) []string {
	var missing []string
	for _, e := range spec.Exports {
		if _, ok := canonical.Lookup(e.SourceName()); !ok {
			missing = append(missing, e.SourceName())
		}
	}
	for _, c := range spec.Children {
		if _, ok := canonical.Child(c.SourceName()); !ok {
			missing = append(missing, c.SourceName())
		}
	}

	if spec.OpsetPrefix == "" {
		return missing
	}
	versions := opsetVersions(canonical, spec.OpsetPrefix)
	want := max(spec.OpsetLatest, 1)
	if len(versions) > 0 {
		want = max(want, versions[len(versions)-1])
	}
	for v := 1; v <= want; v++ {
		if _, found := slices.BinarySearch(versions, v); !found {
			missing = append(missing, spec.OpsetPrefix+strconv.Itoa(v))
		}
	}

	return missing
}

// opsetVersions returns the sorted versions of canonical children named <prefix><N>.
func opsetVersions(canonical *namespace.Namespace, prefix string) []int {
	if prefix == "" {
		return nil
	}
	var versions []int
	for _, c := range canonical.Children() {
		rest, ok := strings.CutPrefix(c.Name(), prefix)
		if !ok {
			continue
		}
		v, err := strconv.Atoi(rest)
		if err != nil || v < 1 || strconv.Itoa(v) != rest {
			continue
		}
		versions = append(versions, v)
	}
	slices.Sort(versions)

	return slices.Compact(versions)
}
