//go:build !nogpu

// Package gpu runs the Game of Life simulation on a WebGPU device through
// the gogpu/wgpu HAL (Pure Go, zero CGO; Vulkan, Metal or DX12 depending
// on the platform).
//
// # Architecture
//
//	Simulation
//	  +-- Device        hal.Device + hal.Queue (standalone or shared from a host)
//	  +-- StateStore    two u32 cell-state storage buffers + grid uniform
//	  +-- quad buffer   6 vertices, one cell quad, drawn once per instance
//	  +-- pipeline layout shared by both pipelines (one bind group layout)
//	  +-- ComputeStage  computeMain, tile x tile workgroups
//	  +-- RenderStage   vertexMain / fragmentMain, instanced draw
//	  +-- BindingSetPair [A->B, B->A] bind groups, selected by step parity
//	  +-- Scheduler     owns the step counter; encodes and submits frames
//
// # Frame protocol
//
// One Tick records, in a single command encoder:
//
//  1. a compute pass bound to pair[step%2] that reads buffer step%2 and
//     writes buffer (step+1)%2;
//  2. step++;
//  3. a render pass bound to pair[step%2], whose input is the buffer the
//     compute pass just wrote;
//
// and submits it as one unit, so queue ordering makes the draw observe the
// dispatch. A tick waits for the previous submission before encoding, so
// two frames never use the buffers at the same time.
//
// # Bind group layout
//
//	binding 0  uniform          vec2<f32> grid size   vertex | fragment | compute
//	binding 1  read-only storage array<u32> state-in  vertex | compute
//	binding 2  storage          array<u32> state-out  compute
//
// # Errors
//
// Device and resource errors (ErrNoGPU, ErrUnsupported, ErrResourceCreation)
// are fatal at startup. A rejected submission (ErrSubmit) is fatal to the
// session: the scheduler records it and every later tick returns
// ErrSchedulerFailed. Nothing is retried.
package gpu
