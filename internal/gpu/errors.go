//go:build !nogpu

package gpu

import "errors"

var (
	// ErrNoGPU is returned when no GPU backend or adapter is available.
	ErrNoGPU = errors.New("gpu: no compatible GPU found")

	// ErrNoAdapter is returned when a backend enumerates no adapters.
	ErrNoAdapter = errors.New("gpu: no GPU adapter found")

	// ErrUnsupported is returned when the device lacks a capability the
	// simulation needs (compute, storage buffers, workgroup size).
	ErrUnsupported = errors.New("gpu: required capability not supported")

	// ErrProvider is returned when a device provider does not expose HAL types.
	ErrProvider = errors.New("gpu: device provider does not expose HAL device")

	// ErrResourceCreation is returned when a buffer, shader, pipeline or
	// bind group cannot be created.
	ErrResourceCreation = errors.New("gpu: resource creation failed")

	// ErrSubmit is returned when the queue rejects a frame submission.
	ErrSubmit = errors.New("gpu: submission failed")

	// ErrFenceTimeout is returned when the previous frame does not finish in time.
	ErrFenceTimeout = errors.New("gpu: timed out waiting for previous frame")

	// ErrSchedulerFailed is returned by every tick after a fatal frame error.
	ErrSchedulerFailed = errors.New("gpu: scheduler stopped after a failed frame")

	// ErrNilTarget is returned when a frame is requested without a target view.
	ErrNilTarget = errors.New("gpu: render target is nil")

	// ErrClosed is returned when operating on a closed simulation.
	ErrClosed = errors.New("gpu: simulation closed")

	// ErrAlreadyStarted is returned when loading state after the first tick.
	ErrAlreadyStarted = errors.New("gpu: simulation already started")
)
