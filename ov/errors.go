package ov

import "errors"

var (
	// ErrNotSupported is returned by operations that require a device plugin.
	ErrNotSupported = errors.New("operation requires a device plugin")

	// ErrDynamicShape is returned when a static shape is required but a dimension is dynamic.
	ErrDynamicShape = errors.New("shape is dynamic")

	// ErrInvalidLayout is returned for layout strings that cannot be parsed.
	ErrInvalidLayout = errors.New("invalid layout")

	// ErrUnknownDevice is returned when a device name is not available in Core.
	ErrUnknownDevice = errors.New("unknown device")

	// ErrNoBatchDimension is returned by GetBatch and SetBatch when no model input has a
	// layout with an "N" dimension.
	ErrNoBatchDimension = errors.New("no input has a batch dimension in its layout")
)
