package ov

import (
	"errors"
	"fmt"
	"slices"
)

// Model is a graph of nodes between parameters and results.
type Model struct {
	name    string
	params  []*Node
	results []*Node
	rt      RTMap
}

// NewParameter creates a model input node.
func NewParameter(t Type, ps PartialShape) *Node {
	return NewNode(DiscreteTypeInfo{Name: "Parameter", VersionID: "opset1"}, nil, nil, PortDesc{ElementType: t, Shape: ps})
}

// NewResult creates a model output node fed by out.
func NewResult(out Output) *Node {
	return NewNode(DiscreteTypeInfo{Name: "Result", VersionID: "opset1"}, []Output{out}, nil)
}

// NewModel creates a model. Each result output that is not produced by a Result node gets one.
func NewModel(results []Output, params []*Node, name string) (*Model, error) {
	if len(results) == 0 {
		return nil, errors.New("model needs at least one result")
	}
	for _, p := range params {
		if p.TypeName() != "Parameter" {
			return nil, fmt.Errorf("model input %s is not a Parameter", p)
		}
	}

	m := &Model{name: name, params: slices.Clone(params), rt: RTMap{}}
	for _, out := range results {
		if out.Node().TypeName() == "Result" {
			m.results = append(m.results, out.Node())
			continue
		}
		m.results = append(m.results, NewResult(out))
	}

	return m, nil
}

// Name returns the model name.
func (m *Model) Name() string { return m.name }

// Parameters returns the input nodes.
func (m *Model) Parameters() []*Node { return slices.Clone(m.params) }

// Results returns the output nodes.
func (m *Model) Results() []*Node { return slices.Clone(m.results) }

// Inputs returns the outputs of the Parameter nodes.
func (m *Model) Inputs() []Output {
	outs := make([]Output, len(m.params))
	for i, p := range m.params {
		outs[i] = p.Output(0)
	}

	return outs
}

// Outputs returns the ports feeding the Result nodes.
func (m *Model) Outputs() []Output {
	outs := make([]Output, len(m.results))
	for i, r := range m.results {
		outs[i] = r.Input(0).SourceOutput()
	}

	return outs
}

// IsDynamic reports whether any input has a dynamic shape.
func (m *Model) IsDynamic() bool {
	for _, in := range m.Inputs() {
		if !in.PartialShape().IsStatic() {
			return true
		}
	}

	return false
}

// RTInfo returns the model-level runtime information.
func (m *Model) RTInfo() RTMap { return m.rt }

const layoutRTKey = "layout"

// SetLayout attaches a layout to a port's producing node.
func SetLayout(out Output, l Layout) {
	out.Node().SetRTInfo(layoutRTKey, NewAny(l))
}

// GetLayout returns the layout attached with SetLayout, or an empty layout.
func GetLayout(out Output) Layout {
	v, ok := out.Node().RTInfo()[layoutRTKey]
	if !ok {
		return Layout{}
	}
	l, _ := As[Layout](v)

	return l
}

// GetBatch returns the batch dimension of the first model input whose layout has an "N" axis.
func GetBatch(m *Model) (Dimension, error) {
	for _, p := range m.params {
		out := p.Output(0)
		idx, ok := BatchIdx(GetLayout(out))
		ps := out.PartialShape()
		if !ok || idx >= ps.Rank() {
			continue
		}

		return ps[idx], nil
	}

	return Dimension{}, fmt.Errorf("get batch of %q: %w", m.name, ErrNoBatchDimension)
}

// SetBatch sets the batch dimension of every model input whose layout has an "N" axis.
func SetBatch(m *Model, batch Dimension) error {
	var updated bool
	for _, p := range m.params {
		out := p.Output(0)
		idx, ok := BatchIdx(GetLayout(out))
		ps := out.PartialShape()
		if !ok || idx >= ps.Rank() {
			continue
		}
		ps = slices.Clone(ps)
		ps[idx] = batch
		p.setOutputShape(0, ps)
		updated = true
	}
	if !updated {
		return fmt.Errorf("set batch of %q: %w", m.name, ErrNoBatchDimension)
	}

	return nil
}

// Serialize writes a model as IR xml and bin files.
func Serialize(m *Model, xmlPath, binPath string) error {
	return fmt.Errorf("serialize %q to %s: %w", m.name, xmlPath, ErrNotSupported)
}

// SaveModel writes a model in the runtime's native format, optionally compressing weights.
func SaveModel(m *Model, path string, compressToFP16 bool) error {
	return fmt.Errorf("save %q to %s: %w", m.name, path, ErrNotSupported)
}
