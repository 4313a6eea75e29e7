package ov

import (
	"errors"
	"fmt"
	"os"
)

// Tensor is a host memory buffer with an element type and a static shape.
type Tensor struct {
	elemType Type
	shape    Shape
	data     []byte
}

// NewTensor allocates a zeroed tensor.
func NewTensor(t Type, shape Shape) (*Tensor, error) {
	if t.IsDynamic() || t.Bitwidth() == 0 {
		return nil, fmt.Errorf("cannot allocate tensor of element type %s", t)
	}

	return &Tensor{elemType: t, shape: shape, data: make([]byte, t.ByteSize(shape.Size()))}, nil
}

// NewTensorFromData wraps data without copying. The buffer must hold exactly the tensor.
func NewTensorFromData(t Type, shape Shape, data []byte) (*Tensor, error) {
	if want := t.ByteSize(shape.Size()); uint64(len(data)) != want {
		return nil, fmt.Errorf("tensor %s%s needs %d bytes, got %d", t, shape, want, len(data))
	}

	return &Tensor{elemType: t, shape: shape, data: data}, nil
}

// ElementType returns the element type.
func (t *Tensor) ElementType() Type { return t.elemType }

// Shape returns the shape.
func (t *Tensor) Shape() Shape { return t.shape }

// Size returns the number of elements.
func (t *Tensor) Size() uint64 { return t.shape.Size() }

// ByteSize returns the buffer size in bytes.
func (t *Tensor) ByteSize() uint64 { return uint64(len(t.data)) }

// Data returns the underlying buffer.
func (t *Tensor) Data() []byte { return t.data }

// SetShape changes the shape, reallocating when the new shape needs more memory.
func (t *Tensor) SetShape(shape Shape) {
	need := t.elemType.ByteSize(shape.Size())
	if need > uint64(cap(t.data)) {
		t.data = make([]byte, need)
	} else {
		t.data = t.data[:need]
	}
	t.shape = shape
}

// Strides returns row-major byte strides. Sub-byte element types have no byte strides.
func (t *Tensor) Strides() (Strides, error) {
	if t.elemType.Bitwidth()%8 != 0 {
		return nil, errors.New("strides are undefined for sub-byte element types")
	}
	strides := make(Strides, len(t.shape))
	step := uint64(t.elemType.Bitwidth() / 8)
	for i := len(t.shape) - 1; i >= 0; i-- {
		strides[i] = step
		step *= t.shape[i]
	}

	return strides, nil
}

// TensorFromFile reads a file into a one-dimensional u8 tensor.
func TensorFromFile(path string) (*Tensor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tensor file: %w", err)
	}

	return NewTensorFromData(U8, Shape{uint64(len(data))}, data)
}
