package ovruntime

import (
	"os"
	"os/exec"
	"reflect"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ovbind/ovbind/legacy/manifest"
	"github.com/ovbind/ovbind/namespace"
	"github.com/ovbind/ovbind/ov"
	"github.com/ovbind/ovbind/ov/binding"
	"github.com/ovbind/ovbind/ov/opset"
	"github.com/ovbind/ovbind/warnings"
)

// helperEnv makes the test binary act as a program importing this package; see
// TestHelperProcess.
const helperEnv = "OVRUNTIME_HELPER_LOADS"

func TestCoreIsCanonicalCore(t *testing.T) {
	t.Parallel()

	var core *Core = ov.NewCore()
	assert.NotNil(t, core)
	assert.Equal(t, reflect.TypeFor[ov.Core](), reflect.TypeFor[Core]())

	legacyCore, ok := Namespace().Lookup("Core")
	require.True(t, ok)
	canonicalCore, ok := binding.Namespace().Lookup("Core")
	require.True(t, ok)
	assert.True(t, namespace.SameSymbol(canonicalCore, legacyCore))
}

func TestEverySymbolIsCanonical(t *testing.T) {
	t.Parallel()

	spec, err := manifest.Spec()
	require.NoError(t, err)

	sources := map[string]string{}
	for _, e := range spec.Exports {
		sources[e.Name] = e.SourceName()
	}

	canonical := binding.Namespace()
	err = Namespace().Walk(func(path string, value any) error {
		source := path
		if s, ok := sources[path]; ok {
			source = s
		}
		want, ok := canonical.Resolve(source)
		if assert.True(t, ok, "%s has no canonical %s", path, source) {
			assert.True(t, namespace.SameSymbol(want, value), path)
		}

		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, len(spec.Exports), Namespace().Len())
}

func TestFunctionsAreCanonical(t *testing.T) {
	t.Parallel()

	assert.True(t, namespace.SameSymbol(ov.GetBatch, GetBatch))
	assert.True(t, namespace.SameSymbol(ov.SetBatch, SetBatch))
	assert.True(t, namespace.SameSymbol(ov.Shutdown, Shutdown))
	assert.Equal(t, ov.GetVersion(), VersionString)

	getBatch, ok := Namespace().Lookup("GetBatch")
	require.True(t, ok)
	assert.True(t, namespace.SameSymbol(GetBatch, getBatch))
}

func TestOpset(t *testing.T) {
	t.Parallel()

	for n := 1; n <= opset.Latest; n++ {
		ns, err := Opset(n)
		require.NoError(t, err)
		assert.Same(t, opset.MustGet(n).Namespace(), ns)
	}

	_, err := Opset(opset.Latest + 1)
	require.Error(t, err)

	gather, ok := Namespace().Resolve("opset8.Gather")
	require.True(t, ok)
	want, _ := opset.MustGet(8).Op("Gather")
	assert.Same(t, want, gather)
}

func TestNamespaceIsFrozen(t *testing.T) {
	t.Parallel()

	assert.True(t, Namespace().Frozen())
	require.ErrorIs(t, Namespace().Define("Extra", 1), namespace.ErrFrozen)
}

func TestFilterInstalled(t *testing.T) {
	t.Parallel()

	var found bool
	for _, f := range warnings.Default().Filters() {
		if f.Category == warnings.DeprecationWarning && f.Module == `github\.com/ovbind/ovbind/legacy/ovruntime` {
			found = true
			assert.Equal(t, warnings.ActionOnce, f.Action)
		}
	}
	assert.True(t, found)
}

func TestImport_EmitsOneNotice(t *testing.T) {
	t.Parallel()

	stderr := runHelper(t, 3, nil)

	notices := strings.Count(stderr, "DeprecationWarning")
	assert.Equal(t, 1, notices, stderr)
	assert.Contains(t, stderr, "deprecated")
	assert.Contains(t, stderr, "2026.0")
	assert.Contains(t, stderr, "github.com/ovbind/ovbind/legacy/ovruntime: DeprecationWarning: ")
}

func TestImport_AlwaysFromEnvironment(t *testing.T) {
	t.Parallel()

	stderr := runHelper(t, 3, []string{
		"OVBIND_WARNINGS=always::DeprecationWarning:github.com/ovbind/ovbind/legacy/ovruntime",
	})

	// one notice from the import itself and one per extra load attempt
	assert.Equal(t, 4, strings.Count(stderr, "DeprecationWarning"), stderr)
}

func TestImport_IgnoreFromEnvironment(t *testing.T) {
	t.Parallel()

	stderr := runHelper(t, 3, []string{"OV_WARNINGS=ignore::DeprecationWarning"})
	assert.NotContains(t, stderr, "DeprecationWarning")
}

func TestImport_InvalidEnvironmentIsReported(t *testing.T) {
	t.Parallel()

	stderr := runHelper(t, 0, []string{"OVBIND_WARNINGS=shout::DeprecationWarning"})
	assert.Contains(t, stderr, "RuntimeWarning: ignoring invalid warnings configuration")
	assert.Equal(t, 1, strings.Count(stderr, "DeprecationWarning: The"), stderr)
}

// runHelper runs TestHelperProcess in a fresh process, which imports this package, then makes
// loads more load attempts through the package's loader.
func runHelper(t *testing.T, loads int, env []string) string {
	t.Helper()

	cmd := exec.Command(os.Args[0], "-test.run=^TestHelperProcess$")
	cmd.Env = append(cleanEnv(), append(env, helperEnv+"="+strconv.Itoa(loads))...)

	var stderr strings.Builder
	cmd.Stderr = &stderr
	require.NoError(t, cmd.Run(), stderr.String())

	return stderr.String()
}

func cleanEnv() []string {
	var env []string
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, "OVBIND_") || strings.HasPrefix(kv, "OV_WARNINGS=") {
			continue
		}
		env = append(env, kv)
	}

	return env
}

func TestHelperProcess(t *testing.T) {
	loads, ok := os.LookupEnv(helperEnv)
	if !ok {
		t.Skip("helper process only")
	}
	n, err := strconv.Atoi(loads)
	require.NoError(t, err)

	spec, err := manifest.Spec()
	require.NoError(t, err)
	for range n {
		ns, err := loader.Load(binding.Namespace(), spec)
		require.NoError(t, err)
		assert.Same(t, Namespace().Children()[0], ns.Children()[0])
	}

	again, err := loader.LoadOnce(binding.Namespace(), spec)
	require.NoError(t, err)
	assert.Same(t, Namespace(), again)
}
