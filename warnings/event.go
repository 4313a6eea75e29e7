package warnings

import (
	"fmt"
	"runtime"
	"strings"
)

// Event is a single warning occurrence.
type Event struct {
	Message  string
	Category *Category
	// SourceModule is the import path of the package the warning is attributed to.
	SourceModule string
	// StackDepth is how many frames above the Warn call the warning was attributed to.
	StackDepth int
	File       string
	Line       int
}

// Location is "file:line" when known, otherwise the source module.
func (e Event) Location() string {
	if e.File != "" {
		return fmt.Sprintf("%s:%d", e.File, e.Line)
	}
	if e.SourceModule != "" {
		return e.SourceModule
	}

	return "<unknown>"
}

func (e Event) String() string {
	return fmt.Sprintf("%s: %s: %s", e.Location(), e.Category.Name(), e.Message)
}

// newEvent attributes a warning to the frame stackDepth levels above the public Warn entry
// point. skip is the number of frames between newEvent and that entry point.
func newEvent(message string, category *Category, stackDepth, skip int) Event {
	if stackDepth < 1 {
		stackDepth = 1
	}
	if category == nil {
		category = UserWarning
	}
	ev := Event{
		Message:    message,
		Category:   category,
		StackDepth: stackDepth,
	}

	pc, file, line, ok := runtime.Caller(skip + stackDepth)
	if !ok {
		ev.SourceModule = "sys"

		return ev
	}
	ev.File = file
	ev.Line = line
	if fn := runtime.FuncForPC(pc); fn != nil {
		ev.SourceModule = packagePath(fn.Name())
	}

	return ev
}

// packagePath extracts the import path from a fully qualified function name such as
// "github.com/acme/pkg.(*T).Method" or "main.init.0". The linker escapes dots in the last
// path element as %2e.
func packagePath(funcName string) string {
	lastSlash := strings.LastIndex(funcName, "/")
	if lastSlash < 0 {
		lastSlash = 0
	}
	path := funcName
	if dot := strings.Index(funcName[lastSlash:], "."); dot >= 0 {
		path = funcName[:lastSlash+dot]
	}

	return strings.ReplaceAll(path, "%2e", ".")
}
