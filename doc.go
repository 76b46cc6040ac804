// Package life runs Conway's Game of Life on the GPU.
//
// The simulation keeps two cell-state storage buffers on the device and
// alternates their roles every step ("ping-pong" buffering). Each frame
// records a compute pass that advances the generation and a render pass that
// draws one instanced quad per cell, and submits both as a single unit of
// work. The GPU implementation lives in internal/gpu and is built on
// gogpu/wgpu (zero CGO, Vulkan/Metal/DX12 via the HAL).
//
// This package holds the device-independent model shared by every stage:
//
//   - [Grid]: grid dimensions and the toroidal [Grid.Index] mapping
//   - [NextCell] and [NextState]: the life rule as pure functions
//   - [FramePlan]: which buffer each half of a frame reads and writes
//   - [Config]: recognized options (grid size, interval, tile size, ...)
//   - [Reference]: a CPU executor that walks the same workgroup tile grid
//     as the compute dispatch, used to verify GPU output
//   - [Pacer]: tick-or-redraw decisions for hosts that present every vsync
//   - [Snapshot]: a CPU rendering of a generation for PNG output
//
// # Usage
//
// Inside this module (cmd/golgpu does the same):
//
//	cfg, err := life.NewConfig(life.WithGridSize(64, 64), life.WithInterval(100*time.Millisecond))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	sim, err := gpu.NewStandaloneSimulation(cfg, gpu.DefaultTargetFormat)
//	...
//	for range ticker.C {
//	    if err := sim.Tick(target.View()); err != nil {
//	        log.Fatal(err) // submission failures end the session
//	    }
//	}
//
// # Logging
//
// By default the package produces no log output. Call [SetLogger] to route
// diagnostics to any [log/slog] handler.
//
// # Small grids
//
// Neighbors are summed with a fixed list of eight offsets. On grids narrower
// than three cells in either dimension, offsets alias (x-1 and x+1 name the
// same column) and the same cell is counted more than once. This matches
// the compute shader exactly and is kept on purpose.
package life
