package ov

import (
	"fmt"
	"maps"
	"sync"
)

// DiscreteTypeInfo identifies an operation type and the op-set it belongs to.
type DiscreteTypeInfo struct {
	Name      string
	VersionID string
}

func (i DiscreteTypeInfo) String() string {
	return fmt.Sprintf("%s(%s)", i.Name, i.VersionID)
}

// Any is a type-erased runtime attribute value.
type Any struct {
	value any
}

// NewAny wraps v.
func NewAny(v any) Any { return Any{value: v} }

// Value returns the wrapped value.
func (a Any) Value() any { return a.value }

// As returns the wrapped value as T.
func As[T any](a Any) (T, bool) {
	v, ok := a.value.(T)

	return v, ok
}

// RTMap is per-node runtime information.
type RTMap map[string]Any

// PortDesc describes the element type and shape flowing through an output port.
type PortDesc struct {
	ElementType Type
	Shape       PartialShape
}

// Node is an operation instance in a model graph.
type Node struct {
	mu sync.RWMutex

	typeInfo     DiscreteTypeInfo
	friendlyName string
	inputs       []Output
	attrs        map[string]any
	outputs      []PortDesc
	rt           RTMap
}

// NewNode creates a node with the given inputs, attributes and output ports. With no output
// ports, a single port inheriting the first input's element type and shape is created.
func NewNode(info DiscreteTypeInfo, inputs []Output, attrs map[string]any, outputs ...PortDesc) *Node {
	if len(outputs) == 0 {
		out := PortDesc{ElementType: Dynamic}
		if len(inputs) > 0 {
			out = inputs[0].desc()
		}
		outputs = []PortDesc{out}
	}

	return &Node{
		typeInfo: info,
		inputs:   append([]Output(nil), inputs...),
		attrs:    maps.Clone(attrs),
		outputs:  outputs,
		rt:       RTMap{},
	}
}

// TypeInfo returns the operation type.
func (n *Node) TypeInfo() DiscreteTypeInfo { return n.typeInfo }

// TypeName returns the operation type name, e.g. "Add".
func (n *Node) TypeName() string { return n.typeInfo.Name }

// FriendlyName returns the user-visible node name, defaulting to the type name.
func (n *Node) FriendlyName() string {
	n.mu.RLock()
	defer n.mu.RUnlock()

	if n.friendlyName == "" {
		return n.typeInfo.Name
	}

	return n.friendlyName
}

// SetFriendlyName sets the user-visible node name.
func (n *Node) SetFriendlyName(name string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.friendlyName = name
}

// Attr returns an attribute value.
func (n *Node) Attr(name string) (any, bool) {
	v, ok := n.attrs[name]

	return v, ok
}

// Input returns input port i.
func (n *Node) Input(i int) Input { return Input{node: n, index: i} }

// InputCount returns the number of inputs.
func (n *Node) InputCount() int { return len(n.inputs) }

// Output returns output port i.
func (n *Node) Output(i int) Output { return Output{node: n, index: i} }

// OutputCount returns the number of outputs.
func (n *Node) OutputCount() int { return len(n.outputs) }

// Outputs returns every output port.
func (n *Node) Outputs() []Output {
	outs := make([]Output, len(n.outputs))
	for i := range n.outputs {
		outs[i] = n.Output(i)
	}

	return outs
}

// RTInfo returns the node's runtime information.
func (n *Node) RTInfo() RTMap {
	n.mu.RLock()
	defer n.mu.RUnlock()

	return maps.Clone(n.rt)
}

// SetRTInfo stores a runtime information entry.
func (n *Node) SetRTInfo(key string, v Any) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.rt[key] = v
}

func (n *Node) setOutputShape(i int, ps PartialShape) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.outputs[i].Shape = ps
}

func (n *Node) String() string {
	return fmt.Sprintf("%s %s", n.typeInfo, n.FriendlyName())
}

// Output is an output port of a node.
type Output struct {
	node  *Node
	index int
}

// ConstOutput is an output port used in read-only contexts such as CompiledModel inputs.
type ConstOutput = Output

// Node returns the producing node.
func (o Output) Node() *Node { return o.node }

// Index returns the port index.
func (o Output) Index() int { return o.index }

// ElementType returns the port element type.
func (o Output) ElementType() Type { return o.desc().ElementType }

// PartialShape returns the port shape.
func (o Output) PartialShape() PartialShape { return o.desc().Shape }

// AnyName returns the producing node's friendly name.
func (o Output) AnyName() string { return o.node.FriendlyName() }

func (o Output) desc() PortDesc {
	o.node.mu.RLock()
	defer o.node.mu.RUnlock()

	return o.node.outputs[o.index]
}

// Input is an input port of a node.
type Input struct {
	node  *Node
	index int
}

// Node returns the consuming node.
func (i Input) Node() *Node { return i.node }

// Index returns the port index.
func (i Input) Index() int { return i.index }

// SourceOutput returns the output feeding this input.
func (i Input) SourceOutput() Output { return i.node.inputs[i.index] }
