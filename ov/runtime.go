package ov

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"
)

// Properties are device configuration key/value pairs.
type Properties map[string]Any

// Core is the entry point to the runtime: it knows the devices and their properties.
type Core struct {
	mu         sync.RWMutex
	devices    []string
	props      map[string]Properties
	extensions []*Extension
}

// CoreOption configures a Core.
type CoreOption func(*Core)

// WithDevices overrides the device list. The default is CPU only.
func WithDevices(devices ...string) CoreOption {
	return func(c *Core) {
		c.devices = slices.Clone(devices)
	}
}

// NewCore creates a Core.
func NewCore(opts ...CoreOption) *Core {
	c := &Core{
		devices: []string{"CPU"},
		props:   map[string]Properties{},
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// AvailableDevices returns the devices the Core can compile for.
func (c *Core) AvailableDevices() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return slices.Clone(c.devices)
}

func (c *Core) hasDevice(device string) bool {
	return slices.Contains(c.devices, device)
}

// SetProperty stores a property for device.
func (c *Core) SetProperty(device, key string, value Any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.hasDevice(device) {
		return fmt.Errorf("set property %s on %s: %w", key, device, ErrUnknownDevice)
	}
	if c.props[device] == nil {
		c.props[device] = Properties{}
	}
	c.props[device][key] = value

	return nil
}

// GetProperty returns a property previously set for device.
func (c *Core) GetProperty(device, key string) (Any, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.hasDevice(device) {
		return Any{}, fmt.Errorf("get property %s on %s: %w", key, device, ErrUnknownDevice)
	}
	v, ok := c.props[device][key]
	if !ok {
		return Any{}, fmt.Errorf("property %s is not set on %s", key, device)
	}

	return v, nil
}

// AddExtension registers an extension with the Core.
func (c *Core) AddExtension(ext *Extension) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.extensions = append(c.extensions, ext)
}

// Extensions returns the registered extensions.
func (c *Core) Extensions() []*Extension {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return slices.Clone(c.extensions)
}

// ReadModel loads a model from disk.
func (c *Core) ReadModel(path string) (*Model, error) {
	return nil, fmt.Errorf("read model %s: %w", path, ErrNotSupported)
}

// CompileModel binds a model to a device. The device's properties are captured at compile time.
func (c *Core) CompileModel(m *Model, device string) (*CompiledModel, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.hasDevice(device) {
		return nil, fmt.Errorf("compile %q for %s: %w", m.Name(), device, ErrUnknownDevice)
	}

	return &CompiledModel{
		model:  m,
		device: device,
		props:  maps.Clone(c.props[device]),
	}, nil
}

// CompiledModel is a model bound to a device.
type CompiledModel struct {
	model  *Model
	device string
	props  Properties
}

// Device returns the target device.
func (cm *CompiledModel) Device() string { return cm.device }

// Inputs returns the model inputs.
func (cm *CompiledModel) Inputs() []Output { return cm.model.Inputs() }

// Outputs returns the model outputs.
func (cm *CompiledModel) Outputs() []Output { return cm.model.Outputs() }

// Property returns a property captured at compile time.
func (cm *CompiledModel) Property(key string) (Any, bool) {
	v, ok := cm.props[key]
	return v, ok
}

// CreateInferRequest creates a request with no tensors bound.
func (cm *CompiledModel) CreateInferRequest() *InferRequest {
	return &InferRequest{compiled: cm, tensors: map[string]*Tensor{}}
}

// InferRequest holds the tensors of one inference.
type InferRequest struct {
	mu       sync.Mutex
	compiled *CompiledModel
	tensors  map[string]*Tensor
}

// CompiledModel returns the model this request belongs to.
func (r *InferRequest) CompiledModel() *CompiledModel { return r.compiled }

// SetTensor binds a tensor to a port by name.
func (r *InferRequest) SetTensor(name string, t *Tensor) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tensors[name] = t
}

// GetTensor returns the tensor bound to a port.
func (r *InferRequest) GetTensor(name string) (*Tensor, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tensors[name]

	return t, ok
}

// Infer runs the request synchronously.
func (r *InferRequest) Infer(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return fmt.Errorf("infer on %s: %w", r.compiled.device, ErrNotSupported)
}

// ProfilingInfo returns per-node execution statistics of the last inference.
func (r *InferRequest) ProfilingInfo() []ProfilingInfo { return nil }

// AsyncInferQueue is a pool of infer requests.
type AsyncInferQueue struct {
	requests []*InferRequest
}

// NewAsyncInferQueue creates a queue of jobs requests, at least one.
func NewAsyncInferQueue(cm *CompiledModel, jobs int) *AsyncInferQueue {
	q := &AsyncInferQueue{requests: make([]*InferRequest, max(jobs, 1))}
	for i := range q.requests {
		q.requests[i] = cm.CreateInferRequest()
	}

	return q
}

// Len returns the number of requests in the queue.
func (q *AsyncInferQueue) Len() int { return len(q.requests) }

// StartAsync submits inputs to an idle request.
func (q *AsyncInferQueue) StartAsync(ctx context.Context, inputs map[string]*Tensor) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return fmt.Errorf("start async: %w", ErrNotSupported)
}

// WaitAll blocks until every request is idle.
func (q *AsyncInferQueue) WaitAll(ctx context.Context) error { return ctx.Err() }

// Extension adds custom operations to a Core.
type Extension struct {
	Name string
	Path string
}

// ProfilingInfo describes how a node executed.
type ProfilingInfo struct {
	NodeName string
	NodeType string
	ExecType string
	Status   string
}

// Shutdown releases process-wide runtime resources. It is safe to call more than once.
func Shutdown() {}

// CompileModel compiles m for device on a fresh Core.
func CompileModel(m *Model, device string) (*CompiledModel, error) {
	return NewCore().CompileModel(m, device)
}
