package warnings

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"sync"

	"github.com/fatih/color"

	"github.com/ovbind/ovbind/pkg/logger"
)

// Emitter writes a shown warning to the diagnostic output.
type Emitter interface {
	Emit(ev Event) error
}

// WriterEmitter writes one "location: Category: message" line per warning.
type WriterEmitter struct {
	mu    sync.Mutex
	w     io.Writer
	label *color.Color
}

// WriterOption configures a WriterEmitter.
type WriterOption func(*WriterEmitter)

// WithColor forces the category label to be colored or plain. Without it, color follows
// whether the process output is a terminal.
func WithColor(enabled bool) WriterOption {
	return func(e *WriterEmitter) {
		if enabled {
			e.label.EnableColor()
		} else {
			e.label.DisableColor()
		}
	}
}

// NewWriterEmitter returns an Emitter writing to w.
func NewWriterEmitter(w io.Writer, opts ...WriterOption) *WriterEmitter {
	e := &WriterEmitter{
		w:     w,
		label: color.New(color.FgYellow, color.Bold),
	}
	for _, opt := range opts {
		opt(e)
	}

	return e
}

func (e *WriterEmitter) Emit(ev Event) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	_, err := fmt.Fprintf(e.w, "%s: %s: %s\n", ev.Location(), e.label.Sprint(ev.Category.Name()), ev.Message)

	return err
}

// LoggerEmitter routes warnings to a structured logger at warn level.
type LoggerEmitter struct {
	lggr logger.Logger
}

// NewLoggerEmitter returns an Emitter logging to lggr.
func NewLoggerEmitter(lggr logger.Logger) *LoggerEmitter {
	return &LoggerEmitter{lggr: lggr}
}

func (e *LoggerEmitter) Emit(ev Event) error {
	e.lggr.Warnw(ev.Message,
		"category", ev.Category.Name(),
		"module", ev.SourceModule,
		"location", ev.Location(),
	)

	return nil
}

// MultiEmitter fans a warning out to several emitters and joins their errors.
type MultiEmitter []Emitter

func (m MultiEmitter) Emit(ev Event) error {
	var errs []error
	for _, e := range m {
		if err := e.Emit(ev); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// RecordingEmitter keeps every shown warning in memory.
type RecordingEmitter struct {
	mu     sync.Mutex
	events []Event
}

// NewRecordingEmitter returns an empty RecordingEmitter.
func NewRecordingEmitter() *RecordingEmitter {
	return &RecordingEmitter{}
}

func (e *RecordingEmitter) Emit(ev Event) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.events = append(e.events, ev)

	return nil
}

// Events returns the recorded warnings in emission order.
func (e *RecordingEmitter) Events() []Event {
	e.mu.Lock()
	defer e.mu.Unlock()

	return slices.Clone(e.events)
}

// Len returns the number of recorded warnings.
func (e *RecordingEmitter) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return len(e.events)
}
