// Package opset exposes the versioned operation sets of the runtime. Op-set N contains every
// operation introduced at or before version N, each at its newest version not above N.
package opset
