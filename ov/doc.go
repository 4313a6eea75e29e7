/*
Package ov is the canonical binding surface of the inference runtime: element types, shapes,
layouts, graph handles, and the runtime handles (Core, CompiledModel, InferRequest,
AsyncInferQueue) that callers program against.

Model compilation and inference execution are provided by device plugins; this package only
owns the handles and their metadata. Operations that need a plugin return ErrNotSupported.

The package is also exposed as a flat symbol table through package ov/binding, which the
deprecated legacy namespace re-exports.
*/
package ov
