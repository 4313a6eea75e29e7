package facade

import (
	"errors"
	"slices"
	"strconv"
	"sync"
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/ovbind/ovbind/namespace"
	"github.com/ovbind/ovbind/pkg/logger"
	"github.com/ovbind/ovbind/warnings"
)

type core struct{ devices []string }

type anyValue struct{ value any }

func getBatch() int { return 1 }

// newCanonical builds a frozen canonical namespace with op-sets 1 to opsets.
func newCanonical(t *testing.T, opsets int, skip ...string) *namespace.Namespace {
	t.Helper()

	ns := newOpenCanonical(t, opsets, skip...)
	ns.Freeze()

	return ns
}

// newOpenCanonical is newCanonical without freezing.
func newOpenCanonical(t *testing.T, opsets int, skip ...string) *namespace.Namespace {
	t.Helper()

	ns := namespace.New("canon")
	symbols := map[string]any{
		"Core":     &core{},
		"GetBatch": getBatch,
		"Any":      &anyValue{},
	}
	for _, name := range []string{"Core", "GetBatch", "Any"} {
		if !slices.Contains(skip, name) {
			require.NoError(t, ns.Define(name, symbols[name]))
		}
	}
	if !slices.Contains(skip, "utils") {
		utils := namespace.New("utils")
		require.NoError(t, utils.Define("Parse", strconv.Itoa))
		require.NoError(t, ns.AddChild(utils))
	}
	for v := 1; v <= opsets; v++ {
		name := "opset" + strconv.Itoa(v)
		if slices.Contains(skip, name) {
			continue
		}
		opset := namespace.New(name)
		require.NoError(t, opset.Define("Version", v))
		require.NoError(t, ns.AddChild(opset))
	}

	return ns
}

func newSpec(t *testing.T) *Spec {
	t.Helper()

	spec, err := LoadSpec("testdata/legacy.yaml")
	require.NoError(t, err)

	return spec
}

func newLoader(t *testing.T, opts ...LoaderOption) (*Loader, *warnings.Registry, *warnings.RecordingEmitter) {
	t.Helper()

	rec := warnings.NewRecordingEmitter()
	reg := warnings.NewRegistry(warnings.WithEmitter(rec))
	opts = append([]LoaderOption{WithRegistry(reg), WithLogger(logger.Test(t))}, opts...)

	return NewLoader(opts...), reg, rec
}

func TestBuild_PreservesIdentity(t *testing.T) {
	t.Parallel()

	canonical := newCanonical(t, 4)
	ns, err := Build(canonical, newSpec(t))
	require.NoError(t, err)
	assert.True(t, ns.Frozen())

	for _, name := range []string{"Core", "GetBatch"} {
		want, _ := canonical.Lookup(name)
		got, ok := ns.Lookup(name)
		require.True(t, ok, name)
		assert.True(t, namespace.SameSymbol(want, got), name)
	}

	wantAny, _ := canonical.Lookup("Any")
	gotAny, ok := ns.Lookup("OVAny")
	require.True(t, ok)
	assert.Same(t, wantAny, gotAny)
	_, ok = ns.Lookup("Any")
	assert.False(t, ok)

	utils, ok := ns.Child("utils")
	require.True(t, ok)
	canonUtils, _ := canonical.Child("utils")
	assert.Same(t, canonUtils, utils)

	var children []string
	for _, c := range ns.Children() {
		children = append(children, c.Name())
	}
	assert.Equal(t, []string{"utils", "opset1", "opset2", "opset3", "opset4"}, children)

	opset2, ok := ns.Resolve("opset2.Version")
	require.True(t, ok)
	assert.Equal(t, 2, opset2)
}

func TestBuild_LeavesCanonicalChildrenWritable(t *testing.T) {
	t.Parallel()

	canonical := newOpenCanonical(t, 3)
	ns, err := Build(canonical, newSpec(t))
	require.NoError(t, err)
	assert.True(t, ns.Frozen())

	assert.False(t, canonical.Frozen())
	for _, name := range []string{"utils", "opset1", "opset2", "opset3"} {
		child, ok := canonical.Child(name)
		require.True(t, ok, name)
		assert.False(t, child.Frozen(), name)
	}

	utils, _ := canonical.Child("utils")
	require.NoError(t, utils.Define("New", 1))
	got, ok := ns.Resolve("utils.New")
	require.True(t, ok)
	assert.Equal(t, 1, got)
}

func TestBuild_AllOrNothing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		opsets      int
		skip        []string
		wantMissing []string
	}{
		{name: "missing export", opsets: 3, skip: []string{"Core"}, wantMissing: []string{"Core"}},
		{name: "missing renamed export", opsets: 3, skip: []string{"Any"}, wantMissing: []string{"Any"}},
		{name: "missing child", opsets: 3, skip: []string{"utils"}, wantMissing: []string{"utils"}},
		{name: "opset gap", opsets: 4, skip: []string{"opset2"}, wantMissing: []string{"opset2"}},
		{name: "opset below latest", opsets: 2, wantMissing: []string{"opset3"}},
		{
			name:        "everything missing is reported",
			opsets:      3,
			skip:        []string{"GetBatch", "utils", "opset1"},
			wantMissing: []string{"GetBatch", "utils", "opset1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			canonical := newCanonical(t, tt.opsets, tt.skip...)
			spec := newSpec(t)

			assert.Equal(t, tt.wantMissing, Verify(canonical, spec))

			ns, err := Build(canonical, spec)
			require.ErrorIs(t, err, ErrMissingSymbol)
			assert.Nil(t, ns)

			var missingErr *MissingSymbolError
			require.ErrorAs(t, err, &missingErr)
			assert.Equal(t, tt.wantMissing, missingErr.Missing)
			assert.Equal(t, "legacy", missingErr.Namespace)
			assert.Equal(t, "canon", missingErr.Canonical)
		})
	}
}

func TestLoader_FirstLoadWarnsOnce(t *testing.T) {
	t.Parallel()

	canonical := newCanonical(t, 3)
	loader, _, rec := newLoader(t)

	ns, err := loader.Load(canonical, newSpec(t))
	require.NoError(t, err)

	require.Equal(t, 1, rec.Len())
	ev := rec.Events()[0]
	assert.Contains(t, ev.Message, "deprecated")
	assert.Contains(t, ev.Message, "2026.0")
	assert.Same(t, warnings.DeprecationWarning, ev.Category)
	assert.Equal(t, "example.com/app/legacy", ev.SourceModule)

	for range 5 {
		_, err = loader.Load(canonical, newSpec(t))
		require.NoError(t, err)
	}
	assert.Equal(t, 1, rec.Len())

	got, _ := ns.Lookup("Core")
	want, _ := canonical.Lookup("Core")
	assert.Same(t, want, got)
}

func TestLoader_AlwaysFilterWarnsEveryAttempt(t *testing.T) {
	t.Parallel()

	canonical := newCanonical(t, 3)
	loader, reg, rec := newLoader(t)
	spec := newSpec(t)
	require.NoError(t, reg.RegisterFilter(warnings.DeprecationWarning, spec.modulePattern(), warnings.ActionAlways))

	const attempts = 7
	for range attempts {
		_, err := loader.Load(canonical, spec)
		require.NoError(t, err)
	}

	assert.Equal(t, attempts, rec.Len())
	require.Len(t, reg.Filters(), 1)
	assert.Equal(t, warnings.ActionAlways, reg.Filters()[0].Action)
}

func TestLoader_OverrideAfterFirstLoad(t *testing.T) {
	t.Parallel()

	canonical := newCanonical(t, 3)
	loader, reg, rec := newLoader(t)
	spec := newSpec(t)

	_, err := loader.Load(canonical, spec)
	require.NoError(t, err)
	require.NoError(t, reg.RegisterFilter(warnings.DeprecationWarning, spec.modulePattern(), warnings.ActionAlways))

	for range 3 {
		_, err = loader.Load(canonical, spec)
		require.NoError(t, err)
	}
	assert.Equal(t, 4, rec.Len())
}

func TestLoader_WarnsBeforeBinding(t *testing.T) {
	t.Parallel()

	canonical := newCanonical(t, 3, "Core")
	loader, _, rec := newLoader(t)

	ns, err := loader.Load(canonical, newSpec(t))
	require.ErrorIs(t, err, ErrMissingSymbol)
	assert.Nil(t, ns)
	assert.Equal(t, 1, rec.Len())
}

func TestLoader_EscalatedWarningAbortsLoad(t *testing.T) {
	t.Parallel()

	canonical := newCanonical(t, 3)
	loader, reg, rec := newLoader(t)
	require.NoError(t, reg.SimpleFilter(warnings.ActionError, warnings.DeprecationWarning))

	ns, err := loader.Load(canonical, newSpec(t))
	require.ErrorIs(t, err, warnings.ErrEscalatedWarning)
	assert.Nil(t, ns)
	assert.Equal(t, 0, rec.Len())
	assert.Contains(t, err.Error(), "failed to load legacy")
}

type failingEmitter struct{}

func (failingEmitter) Emit(warnings.Event) error { return errors.New("stderr closed") }

func TestLoader_EmitterFailureStillLoads(t *testing.T) {
	t.Parallel()

	canonical := newCanonical(t, 3)
	reg := warnings.NewRegistry(warnings.WithEmitter(failingEmitter{}))
	lggr, logs := logger.TestObserved(t, zapcore.WarnLevel)
	loader := NewLoader(WithRegistry(reg), WithLogger(lggr))
	spec := newSpec(t)

	ns, err := loader.LoadOnce(canonical, spec)
	require.NoError(t, err)
	require.NotNil(t, ns)
	assert.Equal(t, 1, logs.FilterMessage("Failed to emit deprecation notice").Len())

	// the notice was never shown, so the next attempt that reaches the registry shows it
	rec := warnings.NewRecordingEmitter()
	reg.SetEmitter(rec)
	_, err = loader.Load(canonical, spec)
	require.NoError(t, err)
	assert.Equal(t, 1, rec.Len())
}

func TestLoader_IgnoreStillLoads(t *testing.T) {
	t.Parallel()

	canonical := newCanonical(t, 3)
	loader, reg, rec := newLoader(t)
	require.NoError(t, reg.SimpleFilter(warnings.ActionIgnore, warnings.Warning))

	ns, err := loader.Load(canonical, newSpec(t))
	require.NoError(t, err)
	assert.NotNil(t, ns)
	assert.Equal(t, 0, rec.Len())
}

func TestLoader_RemovedIn(t *testing.T) {
	t.Parallel()

	canonical := newCanonical(t, 3)

	loader, _, _ := newLoader(t, WithRuntimeVersion(semver.MustParse("2025.2.0")))
	_, err := loader.Load(canonical, newSpec(t))
	require.NoError(t, err)

	loader, _, rec := newLoader(t, WithRuntimeVersion(semver.MustParse("2026.0.0")))
	_, err = loader.Load(canonical, newSpec(t))
	require.ErrorIs(t, err, ErrRemoved)
	assert.Equal(t, 1, rec.Len())
}

func TestLoader_LoadOnce(t *testing.T) {
	t.Parallel()

	canonical := newCanonical(t, 3)
	rec := warnings.NewRecordingEmitter()
	reg := warnings.NewRegistry(warnings.WithEmitter(rec))
	lggr, logs := logger.TestObserved(t, zapcore.InfoLevel)
	loader := NewLoader(WithRegistry(reg), WithLogger(lggr))
	spec := newSpec(t)

	// always would show a notice per attempt, so a single notice means a single attempt
	require.NoError(t, reg.RegisterFilter(warnings.DeprecationWarning, spec.modulePattern(), warnings.ActionAlways))

	var (
		mu      sync.Mutex
		results []*namespace.Namespace
		g       errgroup.Group
	)
	for range 16 {
		g.Go(func() error {
			ns, err := loader.LoadOnce(canonical, spec)
			if err != nil {
				return err
			}
			mu.Lock()
			results = append(results, ns)
			mu.Unlock()

			return nil
		})
	}
	require.NoError(t, g.Wait())

	require.Len(t, results, 16)
	for _, ns := range results {
		assert.Same(t, results[0], ns)
	}
	assert.Equal(t, 1, rec.Len())
	assert.Equal(t, 1, logs.FilterMessage("Loaded legacy namespace").Len())
}

func TestLoader_LoadOnceCachesFailure(t *testing.T) {
	t.Parallel()

	canonical := newCanonical(t, 3, "GetBatch")
	loader, _, _ := newLoader(t)

	_, err := loader.LoadOnce(canonical, newSpec(t))
	require.ErrorIs(t, err, ErrMissingSymbol)

	_, err = loader.LoadOnce(newCanonical(t, 3), newSpec(t))
	require.ErrorIs(t, err, ErrMissingSymbol)
}
