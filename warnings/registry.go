package warnings

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"sync"
)

// Registry holds a filter chain, a default action, and the record of which warnings have
// already been shown. All methods are safe for concurrent use.
type Registry struct {
	mu sync.RWMutex

	// filters is scanned in registration order; the first match wins.
	filters []Filter

	// defaultAction applies to warnings no filter matches.
	defaultAction Action

	// seen records shown warnings for the deduplicating actions. LoadOrStore on it is the
	// test-and-set that makes concurrent first warnings print exactly once.
	seen *sync.Map

	emitter Emitter
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithEmitter sets where shown warnings are written. The default is stderr.
func WithEmitter(e Emitter) RegistryOption {
	return func(r *Registry) {
		r.emitter = e
	}
}

// WithDefaultAction sets the action for warnings that match no filter.
func WithDefaultAction(a Action) RegistryOption {
	return func(r *Registry) {
		r.defaultAction = a
	}
}

// NewRegistry creates an empty Registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		defaultAction: ActionDefault,
		seen:          &sync.Map{},
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.emitter == nil {
		r.emitter = NewWriterEmitter(os.Stderr)
	}
	if !r.defaultAction.Valid() {
		r.defaultAction = ActionDefault
	}

	return r
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the process-wide Registry. It is created on first use and lives for the
// rest of the process.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})

	return defaultRegistry
}

// RegisterFilter installs a filter, or updates the action of the existing filter with the same
// (category, module pattern, message pattern) key without moving it in the chain.
func (r *Registry) RegisterFilter(category *Category, modulePattern string, action Action, opts ...FilterOption) error {
	f, err := NewFilter(action, category, modulePattern, opts...)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.addLocked(f)

	return nil
}

// MustRegisterFilter is like RegisterFilter but panics on a configuration error.
func (r *Registry) MustRegisterFilter(category *Category, modulePattern string, action Action, opts ...FilterOption) {
	if err := r.RegisterFilter(category, modulePattern, action, opts...); err != nil {
		panic(fmt.Errorf("register warning filter: %w", err))
	}
}

// EnsureFilter installs a filter unless one with the same key is already registered, in which
// case the registered action is kept. It reports whether the filter was added.
func (r *Registry) EnsureFilter(category *Category, modulePattern string, action Action, opts ...FilterOption) (bool, error) {
	f, err := NewFilter(action, category, modulePattern, opts...)
	if err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	k := f.key()
	for i := range r.filters {
		if r.filters[i].key() == k {
			return false, nil
		}
	}
	r.filters = append(r.filters, f)

	return true, nil
}

// SimpleFilter installs a filter for category that matches every module and message.
func (r *Registry) SimpleFilter(action Action, category *Category) error {
	return r.RegisterFilter(category, "", action)
}

func (r *Registry) addLocked(f Filter) {
	k := f.key()
	for i := range r.filters {
		if r.filters[i].key() == k {
			r.filters[i] = f
			return
		}
	}
	r.filters = append(r.filters, f)
}

// Filters returns the filter chain in match order.
func (r *Registry) Filters() []Filter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.filters)
}

// SetDefaultAction changes the action applied to unmatched warnings.
func (r *Registry) SetDefaultAction(a Action) error {
	if !a.Valid() {
		return &ConfigurationError{Field: "action", Value: string(a), Err: errors.New("unknown default action")}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.defaultAction = a

	return nil
}

// DefaultAction returns the action applied to unmatched warnings.
func (r *Registry) DefaultAction() Action {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.defaultAction
}

// SetEmitter replaces the output for shown warnings.
func (r *Registry) SetEmitter(e Emitter) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.emitter = e
}

// Reset removes all filters, forgets every shown warning, and restores ActionDefault.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.filters = nil
	r.defaultAction = ActionDefault
	r.seen = &sync.Map{}
}

// Snapshot is a saved filter chain and default action.
type Snapshot struct {
	filters       []Filter
	defaultAction Action
}

// Snapshot saves the current filter chain so it can be put back with Restore.
func (r *Registry) Snapshot() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return Snapshot{filters: slices.Clone(r.filters), defaultAction: r.defaultAction}
}

// Restore replaces the filter chain and default action with a snapshot. The record of shown
// warnings is kept.
func (r *Registry) Restore(s Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.filters = slices.Clone(s.filters)
	r.defaultAction = s.defaultAction
	if !r.defaultAction.Valid() {
		r.defaultAction = ActionDefault
	}
}

// Resolve returns the action that would handle ev and the filter that decided it. The filter
// is nil when the default action applies.
func (r *Registry) Resolve(ev Event) (Action, *Filter) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.resolveLocked(ev)
}

func (r *Registry) resolveLocked(ev Event) (Action, *Filter) {
	for i := range r.filters {
		if r.filters[i].Matches(ev) {
			f := r.filters[i]
			return f.Action, &f
		}
	}

	return r.defaultAction, nil
}

// Warn issues a warning attributed to the caller stackDepth frames up, where 1 is the function
// calling Warn. A nil category means UserWarning.
//
// It returns a *WarningError when the matching filter's action is ActionError, and any error
// from the emitter. A warning the emitter failed to write is not recorded as shown.
func (r *Registry) Warn(message string, category *Category, stackDepth int) error {
	return r.WarnEvent(newEvent(message, category, stackDepth, 1))
}

type seenKey struct {
	action   Action
	category *Category
	module   string
	message  string
	location string
}

// WarnEvent issues a prepared warning.
func (r *Registry) WarnEvent(ev Event) error {
	if ev.Category == nil {
		ev.Category = UserWarning
	}

	r.mu.RLock()
	action, f := r.resolveLocked(ev)
	emitter := r.emitter
	seen := r.seen
	r.mu.RUnlock()

	switch action {
	case ActionIgnore:
		return nil
	case ActionError:
		return &WarningError{Event: ev}
	case ActionAlways:
		return emit(emitter, ev)
	}

	key := seenKey{action: action, category: ev.Category, module: ev.SourceModule}
	switch action {
	case ActionOnce:
		if f != nil && f.Module != "" {
			key.module = f.Module
		}
	case ActionModule:
		key.message = ev.Message
	default:
		key.message = ev.Message
		key.location = ev.Location()
	}

	if _, loaded := seen.LoadOrStore(key, struct{}{}); loaded {
		return nil
	}
	if err := emit(emitter, ev); err != nil {
		// Not shown, so a later warning for the key may still be.
		seen.Delete(key)
		return err
	}

	return nil
}

func emit(e Emitter, ev Event) error {
	if e == nil {
		return nil
	}
	if err := e.Emit(ev); err != nil {
		return fmt.Errorf("emit %s: %w", ev.Category.Name(), err)
	}

	return nil
}

// RegisterFilter installs a filter on the Default registry.
func RegisterFilter(category *Category, modulePattern string, action Action, opts ...FilterOption) error {
	return Default().RegisterFilter(category, modulePattern, action, opts...)
}

// SimpleFilter installs a module-agnostic filter on the Default registry.
func SimpleFilter(action Action, category *Category) error {
	return Default().SimpleFilter(action, category)
}

// Warn issues a warning on the Default registry, attributed like Registry.Warn.
func Warn(message string, category *Category, stackDepth int) error {
	return Default().WarnEvent(newEvent(message, category, stackDepth, 1))
}
