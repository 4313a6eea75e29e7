// Package manifest holds the re-export table of the deprecated ovruntime namespace. It is
// separate from package ovruntime so tools can inspect the table without loading the
// namespace and triggering its deprecation notice.
package manifest

import (
	_ "embed"
	"sync"

	"github.com/ovbind/ovbind/facade"
)

//go:embed exports.yaml
var exportsYAML []byte

// Raw returns the manifest as written.
func Raw() []byte { return exportsYAML }

var parsed = sync.OnceValues(func() (*facade.Spec, error) {
	return facade.ParseSpec(exportsYAML)
})

// Spec returns the parsed manifest.
func Spec() (*facade.Spec, error) {
	return parsed()
}
