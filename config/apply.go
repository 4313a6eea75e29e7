package config

import (
	"fmt"
	"os"
	"sync"

	"github.com/ovbind/ovbind/pkg/logger"
	"github.com/ovbind/ovbind/warnings"
)

// Apply installs cfg into r: the default action, then the filters in order, then the output.
// lggr receives warnings when the output is "log" or "both". Nothing is changed when cfg does
// not validate.
func Apply(cfg *Config, r *warnings.Registry, lggr logger.Logger) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("failed to validate config: %w", err)
	}

	if cfg.Warnings.DefaultAction != "" {
		action, _ := warnings.ParseAction(cfg.Warnings.DefaultAction)
		if err := r.SetDefaultAction(action); err != nil {
			return err
		}
	}

	specs, _ := cfg.FilterSpecs()
	if err := r.Apply(specs...); err != nil {
		return err
	}

	if e := emitter(cfg.Warnings, lggr); e != nil {
		r.SetEmitter(e)
	}

	return nil
}

func emitter(cfg WarningsConfig, lggr logger.Logger) warnings.Emitter {
	var opts []warnings.WriterOption
	switch cfg.Color {
	case ColorAlways:
		opts = append(opts, warnings.WithColor(true))
	case ColorNever:
		opts = append(opts, warnings.WithColor(false))
	}

	switch cfg.Output {
	case OutputLog:
		return warnings.NewLoggerEmitter(lggr.Named("warnings"))
	case OutputBoth:
		return warnings.MultiEmitter{
			warnings.NewWriterEmitter(os.Stderr, opts...),
			warnings.NewLoggerEmitter(lggr.Named("warnings")),
		}
	default:
		if len(opts) == 0 {
			return nil
		}

		return warnings.NewWriterEmitter(os.Stderr, opts...)
	}
}

var configureOnce sync.Once

// ConfigureDefault applies the environment configuration to warnings.Default() once per
// process. A configuration that cannot be loaded or applied is reported as a RuntimeWarning
// and otherwise ignored.
func ConfigureDefault() {
	configureOnce.Do(func() {
		r := warnings.Default()
		if err := configure(r); err != nil {
			_ = r.WarnEvent(warnings.Event{
				Message:      fmt.Sprintf("ignoring invalid warnings configuration: %v", err),
				Category:     warnings.RuntimeWarning,
				SourceModule: "github.com/ovbind/ovbind/config",
				StackDepth:   1,
			})
		}
	})
}

func configure(r *warnings.Registry) error {
	cfg, err := LoadEnv()
	if err != nil {
		return err
	}
	if err = cfg.Validate(); err != nil {
		return err
	}

	lggr := logger.Nop()
	if cfg.Warnings.Output == OutputLog || cfg.Warnings.Output == OutputBoth {
		if lggr, err = cfg.Logger(); err != nil {
			return err
		}
	}

	return Apply(cfg, r, lggr)
}
