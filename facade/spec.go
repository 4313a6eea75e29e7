package facade

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/ovbind/ovbind/warnings"
)

// Spec describes a legacy namespace as a table of re-exports from a canonical namespace.
type Spec struct {
	// Name is the legacy namespace name, e.g. "ovruntime".
	Name string `yaml:"name"`
	// Package is the import path warnings from this namespace are attributed to.
	Package string `yaml:"package"`
	// Canonical names the namespace symbols are re-exported from.
	Canonical   string        `yaml:"canonical"`
	Deprecation Deprecation   `yaml:"deprecation"`
	Exports     []Export      `yaml:"exports"`
	Children    []ChildExport `yaml:"children"`
	// OpsetPrefix re-exports every canonical child named <prefix><N>. Versions must be
	// contiguous from 1, and reach OpsetLatest when it is set.
	OpsetPrefix string `yaml:"opset_prefix"`
	OpsetLatest int    `yaml:"opset_latest"`
}

// Deprecation is the notice shown when the namespace is loaded.
type Deprecation struct {
	Message string `yaml:"message"`
	// Category defaults to DeprecationWarning.
	Category string `yaml:"category"`
	// Module is the filter's module pattern. It defaults to the quoted Package.
	Module string `yaml:"module"`
	// Action is the filter installed for the notice. It defaults to "once".
	Action string `yaml:"action"`
	// RemovedIn is the runtime version from which the namespace no longer loads.
	RemovedIn string `yaml:"removed_in"`
}

// Export re-exports one canonical symbol. In YAML it is either a bare name or a
// {name, source} mapping.
type Export struct {
	Name   string `yaml:"name"`
	Source string `yaml:"source"`
}

// ChildExport re-exports a canonical child namespace. Same YAML forms as Export.
type ChildExport Export

// SourceName returns the canonical name, defaulting to Name.
func (e Export) SourceName() string {
	if e.Source == "" {
		return e.Name
	}

	return e.Source
}

// SourceName returns the canonical child name, defaulting to Name.
func (c ChildExport) SourceName() string { return Export(c).SourceName() }

// UnmarshalYAML implements the yaml.Unmarshaler interface for Export.
func (e *Export) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		*e = Export{Name: value.Value}
		return nil
	}

	type plain Export
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	*e = Export(p)

	return nil
}

// UnmarshalYAML implements the yaml.Unmarshaler interface for ChildExport.
func (c *ChildExport) UnmarshalYAML(value *yaml.Node) error {
	var e Export
	if err := e.UnmarshalYAML(value); err != nil {
		return err
	}
	*c = ChildExport(e)

	return nil
}

// ParseSpec decodes and validates a YAML manifest.
func ParseSpec(data []byte) (*Spec, error) {
	var spec Spec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal facade manifest YAML: %w", err)
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("failed to validate facade manifest: %w", err)
	}

	return &spec, nil
}

// LoadSpec reads a manifest from disk.
func LoadSpec(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read facade manifest: %w", err)
	}

	return ParseSpec(data)
}

// Validate checks the manifest. Listing the same legacy name twice is allowed only when both
// entries name the same source.
func (s *Spec) Validate() error {
	var errs []error
	if s.Name == "" {
		errs = append(errs, errors.New("name is required"))
	}
	if s.Canonical == "" {
		errs = append(errs, errors.New("canonical is required"))
	}
	if s.Package == "" {
		errs = append(errs, errors.New("package is required"))
	}
	if s.Deprecation.Message == "" {
		errs = append(errs, errors.New("deprecation.message is required"))
	}
	if _, err := s.Deprecation.category(); err != nil {
		errs = append(errs, err)
	}
	if _, err := s.Deprecation.action(); err != nil {
		errs = append(errs, err)
	}
	if _, err := s.Deprecation.RemovedInVersion(); err != nil {
		errs = append(errs, err)
	}
	if s.OpsetLatest < 0 || (s.OpsetLatest > 0 && s.OpsetPrefix == "") {
		errs = append(errs, errors.New("opset_latest needs opset_prefix and must be positive"))
	}

	sources := map[string]string{}
	check := func(kind, name, source string) {
		if name == "" {
			errs = append(errs, fmt.Errorf("%s with empty name", kind))
			return
		}
		if prev, ok := sources[name]; ok && prev != source {
			errs = append(errs, fmt.Errorf("%s %q is exported from both %q and %q", kind, name, prev, source))
			return
		}
		sources[name] = source
	}
	for _, e := range s.Exports {
		check("export", e.Name, e.SourceName())
	}
	for _, c := range s.Children {
		check("child", c.Name, "child:"+c.SourceName())
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w %q: %w", ErrInvalidSpec, s.Name, err)
	}

	return nil
}

func (d Deprecation) category() (*warnings.Category, error) {
	if d.Category == "" {
		return warnings.DeprecationWarning, nil
	}
	c, ok := warnings.LookupCategory(d.Category)
	if !ok {
		return nil, fmt.Errorf("unknown deprecation category %q", d.Category)
	}

	return c, nil
}

func (d Deprecation) action() (warnings.Action, error) {
	if d.Action == "" {
		return warnings.ActionOnce, nil
	}

	return warnings.ParseAction(d.Action)
}

// RemovedInVersion parses RemovedIn. It returns nil when no removal version is set.
func (d Deprecation) RemovedInVersion() (*semver.Version, error) {
	if d.RemovedIn == "" {
		return nil, nil
	}
	v, err := semver.NewVersion(d.RemovedIn)
	if err != nil {
		return nil, fmt.Errorf("invalid removed_in %q: %w", d.RemovedIn, err)
	}

	return v, nil
}

// EnsureFilter installs the deprecation filter for the namespace's module in r. A filter the
// user already registered for the same category and module is left as is.
func (s *Spec) EnsureFilter(r *warnings.Registry) error {
	category, err := s.Deprecation.category()
	if err != nil {
		return err
	}
	action, err := s.Deprecation.action()
	if err != nil {
		return err
	}
	_, err = r.EnsureFilter(category, s.modulePattern(), action)

	return err
}

// modulePattern is the filter pattern matching warnings attributed to the namespace.
func (s *Spec) modulePattern() string {
	if s.Deprecation.Module != "" {
		return s.Deprecation.Module
	}

	return regexp.QuoteMeta(s.Package)
}
