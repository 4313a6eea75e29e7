// Package ovruntime is the deprecated name of package ov.
//
// Deprecated: import github.com/ovbind/ovbind/ov instead. This package will be removed in the
// 2026.0 release. Importing it prints a DeprecationWarning once per process; set
// OVBIND_WARNINGS (see package config) to silence it, repeat it, or turn it into an error.
package ovruntime

import (
	"fmt"

	"github.com/ovbind/ovbind/config"
	"github.com/ovbind/ovbind/facade"
	"github.com/ovbind/ovbind/legacy/manifest"
	"github.com/ovbind/ovbind/namespace"
	"github.com/ovbind/ovbind/ov"
	"github.com/ovbind/ovbind/ov/binding"
	"github.com/ovbind/ovbind/ov/opset"
)

// Runtime handles.
type (
	Core            = ov.Core
	CompiledModel   = ov.CompiledModel
	InferRequest    = ov.InferRequest
	AsyncInferQueue = ov.AsyncInferQueue
	Extension       = ov.Extension
	ProfilingInfo   = ov.ProfilingInfo
	Version         = ov.Version
)

// Graph and shape types.
type (
	Model            = ov.Model
	Node             = ov.Node
	Input            = ov.Input
	Output           = ov.Output
	ConstOutput      = ov.ConstOutput
	Tensor           = ov.Tensor
	RTMap            = ov.RTMap
	OVAny            = ov.Any
	DiscreteTypeInfo = ov.DiscreteTypeInfo
	Type             = ov.Type
	Dimension        = ov.Dimension
	PartialShape     = ov.PartialShape
	Shape            = ov.Shape
	Strides          = ov.Strides
	Coordinate       = ov.Coordinate
	CoordinateDiff   = ov.CoordinateDiff
	AxisSet          = ov.AxisSet
	AxisVector       = ov.AxisVector
	Layout           = ov.Layout
	Symbol           = ov.Symbol
)

// Functions.
var (
	GetVersion     = ov.GetVersion
	GetBatch       = ov.GetBatch
	SetBatch       = ov.SetBatch
	Serialize      = ov.Serialize
	SaveModel      = ov.SaveModel
	Shutdown       = ov.Shutdown
	TensorFromFile = ov.TensorFromFile
	CompileModel   = ov.CompileModel
)

// VersionString is the runtime build number.
var VersionString = ov.GetVersion()

var (
	loader = facade.NewLoader(facade.WithRuntimeVersion(ov.RuntimeVersion()))
	legacy *namespace.Namespace
)

func init() {
	config.ConfigureDefault()

	spec, err := manifest.Spec()
	if err != nil {
		panic(fmt.Errorf("ovruntime: %w", err))
	}
	legacy, err = loader.LoadOnce(binding.Namespace(), spec)
	if err != nil {
		panic(fmt.Errorf("ovruntime: %w", err))
	}
}

// Namespace returns the legacy namespace. Every symbol in it is the canonical object.
func Namespace() *namespace.Namespace { return legacy }

// Opset returns op-set n of the legacy namespace.
func Opset(n int) (*namespace.Namespace, error) {
	if _, err := opset.Get(n); err != nil {
		return nil, err
	}
	ns, ok := legacy.Child(fmt.Sprintf("opset%d", n))
	if !ok {
		return nil, fmt.Errorf("ovruntime: opset%d is not re-exported", n)
	}

	return ns, nil
}
