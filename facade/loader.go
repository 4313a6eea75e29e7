package facade

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Masterminds/semver/v3"

	"github.com/ovbind/ovbind/namespace"
	"github.com/ovbind/ovbind/pkg/logger"
	"github.com/ovbind/ovbind/warnings"
)

// Loader loads legacy namespaces: it installs the deprecation filter, issues the notice, and
// only then binds symbols.
type Loader struct {
	registry       *warnings.Registry
	lggr           logger.Logger
	runtimeVersion *semver.Version

	mu     sync.Mutex
	loaded map[string]*loadResult
}

type loadResult struct {
	once sync.Once
	ns   *namespace.Namespace
	err  error
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithRegistry sets the warning registry notices go through. The default is warnings.Default().
func WithRegistry(r *warnings.Registry) LoaderOption {
	return func(l *Loader) {
		l.registry = r
	}
}

// WithLogger sets the logger. The default discards output.
func WithLogger(lggr logger.Logger) LoaderOption {
	return func(l *Loader) {
		l.lggr = lggr
	}
}

// WithRuntimeVersion enables the removal check: namespaces whose removed_in version is at or
// below v fail to load with ErrRemoved.
func WithRuntimeVersion(v *semver.Version) LoaderOption {
	return func(l *Loader) {
		l.runtimeVersion = v
	}
}

// NewLoader creates a Loader.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{loaded: map[string]*loadResult{}}
	for _, opt := range opts {
		opt(l)
	}
	if l.registry == nil {
		l.registry = warnings.Default()
	}
	if l.lggr == nil {
		l.lggr = logger.Nop()
	}
	l.lggr = l.lggr.Named("facade")

	return l
}

// Load performs one load attempt. Every call reaches the warning registry, so the number of
// notices shown is decided by the filter for the namespace's module. A warning escalated to an
// error aborts the load before any symbol is bound.
func (l *Loader) Load(canonical *namespace.Namespace, spec *Spec) (*namespace.Namespace, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if err := l.notify(spec); err != nil {
		l.lggr.Errorw("Deprecation notice escalated", "namespace", spec.Name, "err", err)
		return nil, fmt.Errorf("failed to load %s: %w", spec.Name, err)
	}
	if err := l.checkRemoved(spec); err != nil {
		return nil, err
	}

	ns, err := Build(canonical, spec)
	if err != nil {
		l.lggr.Errorw("Failed to build legacy namespace", "namespace", spec.Name, "err", err)
		return nil, err
	}
	l.lggr.Debugw("Bound legacy namespace",
		"namespace", spec.Name,
		"canonical", canonical.Path(),
		"symbols", ns.Len(),
		"children", len(ns.Children()),
	)

	return ns, nil
}

// LoadOnce loads spec at most once per Loader, keyed by spec name. Later calls return the
// first result, error included, without issuing another notice.
func (l *Loader) LoadOnce(canonical *namespace.Namespace, spec *Spec) (*namespace.Namespace, error) {
	l.mu.Lock()
	res, ok := l.loaded[spec.Name]
	if !ok {
		res = &loadResult{}
		l.loaded[spec.Name] = res
	}
	l.mu.Unlock()

	res.once.Do(func() {
		res.ns, res.err = l.Load(canonical, spec)
		if res.err == nil {
			l.lggr.Infow("Loaded legacy namespace", "namespace", spec.Name)
		}
	})

	return res.ns, res.err
}

func (l *Loader) notify(spec *Spec) error {
	if err := spec.EnsureFilter(l.registry); err != nil {
		return err
	}
	category, _ := spec.Deprecation.category()

	err := l.registry.WarnEvent(warnings.Event{
		Message:      spec.Deprecation.Message,
		Category:     category,
		SourceModule: spec.Package,
		StackDepth:   1,
	})
	if err == nil || errors.Is(err, warnings.ErrEscalatedWarning) {
		return err
	}
	// Only escalation aborts a load; a notice that could not be written does not.
	l.lggr.Warnw("Failed to emit deprecation notice", "namespace", spec.Name, "err", err)

	return nil
}

func (l *Loader) checkRemoved(spec *Spec) error {
	removedIn, err := spec.Deprecation.RemovedInVersion()
	if err != nil || removedIn == nil || l.runtimeVersion == nil {
		return err
	}
	if !l.runtimeVersion.LessThan(removedIn) {
		return fmt.Errorf("%w: %s was removed in %s, runtime is %s", ErrRemoved, spec.Name, removedIn, l.runtimeVersion)
	}

	return nil
}
