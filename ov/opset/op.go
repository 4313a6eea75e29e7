package opset

import (
	"fmt"

	"github.com/ovbind/ovbind/ov"
)

// Op creates nodes of one version of an operation. An Op is shared by every op-set it belongs
// to, so the same *Op is reachable from opset8 and opset16 when the operation did not change
// in between.
type Op struct {
	name  string
	since int
}

// Name returns the operation type name, e.g. "Gather".
func (o *Op) Name() string { return o.name }

// Since returns the op-set version that introduced this version of the operation.
func (o *Op) Since() int { return o.since }

// TypeInfo returns the type info stamped on nodes created by o.
func (o *Op) TypeInfo() ov.DiscreteTypeInfo {
	return ov.DiscreteTypeInfo{Name: o.name, VersionID: fmt.Sprintf("opset%d", o.since)}
}

// New creates a node. With no output descriptions the node mirrors its first input.
func (o *Op) New(inputs []ov.Output, attrs map[string]any, outputs ...ov.PortDesc) *ov.Node {
	return ov.NewNode(o.TypeInfo(), inputs, attrs, outputs...)
}

func (o *Op) String() string { return o.TypeInfo().String() }

// Parameter creates a model input. It is the node factory behind every op-set's Parameter.
func Parameter(t ov.Type, ps ov.PartialShape) *ov.Node {
	return ov.NewParameter(t, ps)
}

// Result creates a model output.
func Result(out ov.Output) *ov.Node {
	return ov.NewResult(out)
}

// Constant creates a constant node holding value.
func Constant(t ov.Type, shape ov.Shape, value any) *ov.Node {
	return ov.NewNode(
		ov.DiscreteTypeInfo{Name: "Constant", VersionID: "opset1"},
		nil,
		map[string]any{"value": value},
		ov.PortDesc{ElementType: t, Shape: shape.ToPartialShape()},
	)
}
