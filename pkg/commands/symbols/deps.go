package symbols

import (
	"github.com/ovbind/ovbind/facade"
	"github.com/ovbind/ovbind/legacy/manifest"
	"github.com/ovbind/ovbind/namespace"
	"github.com/ovbind/ovbind/ov/binding"
)

// CanonicalFunc returns the canonical namespace.
type CanonicalFunc func() *namespace.Namespace

// ManifestLoaderFunc loads a facade manifest. An empty path means the built-in ovruntime
// manifest.
type ManifestLoaderFunc func(path string) (*facade.Spec, error)

// defaultManifestLoader reads path, or returns the embedded manifest.
func defaultManifestLoader(path string) (*facade.Spec, error) {
	if path == "" {
		return manifest.Spec()
	}

	return facade.LoadSpec(path)
}

// Deps holds the injectable dependencies for symbols commands.
// All fields are optional; nil values will use production defaults.
type Deps struct {
	// Canonical returns the canonical namespace.
	// Default: binding.Namespace
	Canonical CanonicalFunc

	// ManifestLoader loads facade manifests.
	// Default: the embedded ovruntime manifest, or facade.LoadSpec for a path
	ManifestLoader ManifestLoaderFunc
}

// applyDefaults fills in nil dependencies with production defaults.
func (d *Deps) applyDefaults() {
	if d.Canonical == nil {
		d.Canonical = binding.Namespace
	}
	if d.ManifestLoader == nil {
		d.ManifestLoader = defaultManifestLoader
	}
}
