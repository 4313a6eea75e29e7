// Package binding assembles the canonical runtime namespace: every public type, function and
// error of package ov, plus the op-set and helper sub-namespaces. Types are bound as their
// reflect.Type, functions and errors as themselves.
package binding

import (
	"reflect"
	"sync"

	"github.com/ovbind/ovbind/namespace"
	"github.com/ovbind/ovbind/ov"
	"github.com/ovbind/ovbind/ov/opset"
)

// Name is the name of the canonical root namespace.
const Name = "ov"

// Namespace returns the canonical namespace. It is built on first use and frozen.
func Namespace() *namespace.Namespace {
	return canonical()
}

var canonical = sync.OnceValue(func() *namespace.Namespace {
	root := namespace.New(Name)
	defineAll(root, rootSymbols())

	root.MustAddChild(child("op", []symbol{
		{"Op", reflect.TypeFor[opset.Op]()},
		{"Parameter", opset.Parameter},
		{"Result", opset.Result},
		{"Constant", opset.Constant},
	}))
	for _, s := range opset.All() {
		root.MustAddChild(s.Namespace())
	}
	root.MustAddChild(child("utils", []symbol{
		{"ParseType", ov.ParseType},
		{"ParseDimension", ov.ParseDimension},
		{"ParsePartialShape", ov.ParsePartialShape},
		{"ParseLayout", ov.ParseLayout},
		{"NewAxisSet", ov.NewAxisSet},
		{"NewSymbol", ov.NewSymbol},
	}))
	root.MustAddChild(child("opset_utils", []symbol{
		{"Get", opset.Get},
		{"All", opset.All},
		{"Latest", opset.Latest},
		{"Opset", reflect.TypeFor[opset.Opset]()},
	}))
	root.MustAddChild(child("exceptions", []symbol{
		{"ErrNotSupported", ov.ErrNotSupported},
		{"ErrDynamicShape", ov.ErrDynamicShape},
		{"ErrInvalidLayout", ov.ErrInvalidLayout},
		{"ErrUnknownDevice", ov.ErrUnknownDevice},
		{"ErrNoBatchDimension", ov.ErrNoBatchDimension},
	}))
	root.MustAddChild(child("properties", []symbol{
		{"PerformanceHint", ov.PropertyPerformanceHint},
		{"NumStreams", ov.PropertyNumStreams},
		{"InferencePrecision", ov.PropertyInferencePrecision},
		{"CacheDir", ov.PropertyCacheDir},
		{"EnableProfiling", ov.PropertyEnableProfiling},
		{"DevicePriorities", ov.PropertyDevicePriorities},
		{"HintLatency", ov.HintLatency},
		{"HintThroughput", ov.HintThroughput},
		{"HintCumulativeThroughput", ov.HintCumulativeThroughput},
	}))
	root.MustAddChild(child("layout_helpers", []symbol{
		{"GetLayout", ov.GetLayout},
		{"SetLayout", ov.SetLayout},
		{"BatchIdx", ov.BatchIdx},
		{"ChannelsIdx", ov.ChannelsIdx},
		{"HeightIdx", ov.HeightIdx},
		{"WidthIdx", ov.WidthIdx},
	}))

	root.Freeze()

	return root
})

type symbol struct {
	name  string
	value any
}

func rootSymbols() []symbol {
	return []symbol{
		// runtime handles
		{"Core", reflect.TypeFor[ov.Core]()},
		{"CompiledModel", reflect.TypeFor[ov.CompiledModel]()},
		{"InferRequest", reflect.TypeFor[ov.InferRequest]()},
		{"AsyncInferQueue", reflect.TypeFor[ov.AsyncInferQueue]()},
		{"Properties", reflect.TypeFor[ov.Properties]()},
		{"Extension", reflect.TypeFor[ov.Extension]()},
		{"ProfilingInfo", reflect.TypeFor[ov.ProfilingInfo]()},
		{"Version", reflect.TypeFor[ov.Version]()},

		// graph
		{"Model", reflect.TypeFor[ov.Model]()},
		{"Node", reflect.TypeFor[ov.Node]()},
		{"Input", reflect.TypeFor[ov.Input]()},
		{"Output", reflect.TypeFor[ov.Output]()},
		{"ConstOutput", reflect.TypeFor[ov.ConstOutput]()},
		{"Tensor", reflect.TypeFor[ov.Tensor]()},
		{"RTMap", reflect.TypeFor[ov.RTMap]()},
		{"Any", reflect.TypeFor[ov.Any]()},
		{"DiscreteTypeInfo", reflect.TypeFor[ov.DiscreteTypeInfo]()},

		// shapes
		{"Type", reflect.TypeFor[ov.Type]()},
		{"Dimension", reflect.TypeFor[ov.Dimension]()},
		{"PartialShape", reflect.TypeFor[ov.PartialShape]()},
		{"Shape", reflect.TypeFor[ov.Shape]()},
		{"Strides", reflect.TypeFor[ov.Strides]()},
		{"Coordinate", reflect.TypeFor[ov.Coordinate]()},
		{"CoordinateDiff", reflect.TypeFor[ov.CoordinateDiff]()},
		{"AxisSet", reflect.TypeFor[ov.AxisSet]()},
		{"AxisVector", reflect.TypeFor[ov.AxisVector]()},
		{"Layout", reflect.TypeFor[ov.Layout]()},
		{"Symbol", reflect.TypeFor[ov.Symbol]()},

		// functions
		{"NewCore", ov.NewCore},
		{"NewModel", ov.NewModel},
		{"NewTensor", ov.NewTensor},
		{"NewTensorFromData", ov.NewTensorFromData},
		{"NewAsyncInferQueue", ov.NewAsyncInferQueue},
		{"NewAny", ov.NewAny},
		{"GetVersion", ov.GetVersion},
		{"GetBatch", ov.GetBatch},
		{"SetBatch", ov.SetBatch},
		{"Serialize", ov.Serialize},
		{"SaveModel", ov.SaveModel},
		{"Shutdown", ov.Shutdown},
		{"TensorFromFile", ov.TensorFromFile},
		{"CompileModel", ov.CompileModel},
		{"VersionString", ov.GetVersion()},
	}
}

func child(name string, symbols []symbol) *namespace.Namespace {
	ns := namespace.New(name)
	defineAll(ns, symbols)

	return ns
}

func defineAll(ns *namespace.Namespace, symbols []symbol) {
	for _, s := range symbols {
		ns.MustDefine(s.name, s.value)
	}
}
