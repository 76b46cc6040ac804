//go:build !nogpu

package gpu

import (
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/life"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

// createNoopDevice creates a noop device and queue for testing.
// Returns the device, queue, and a cleanup function.
func createNoopDevice(t *testing.T) (hal.Device, hal.Queue, func()) {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	cleanup := func() {
		openDev.Device.Destroy()
		instance.Destroy()
	}
	return openDev.Device, openDev.Queue, cleanup
}

// newTestSimulation builds a simulation on a noop device with a 32x32
// offscreen target. Everything is released when the test ends.
func newTestSimulation(t *testing.T, opts ...life.Option) (*Simulation, *Target) {
	t.Helper()
	device, queue, cleanup := createNoopDevice(t)
	t.Cleanup(cleanup)

	cfg, err := life.NewConfig(append([]life.Option{life.WithSeed(1)}, opts...)...)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	sim, err := NewSimulation(WrapDevice(device, queue), cfg, DefaultTargetFormat)
	if err != nil {
		t.Fatalf("NewSimulation: %v", err)
	}
	target, err := NewTarget(device, 32, 32, DefaultTargetFormat)
	if err != nil {
		_ = sim.Close()
		t.Fatalf("NewTarget: %v", err)
	}
	t.Cleanup(func() {
		_ = sim.Close()
		target.Destroy()
	})
	return sim, target
}
