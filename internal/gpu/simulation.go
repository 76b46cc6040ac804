//go:build !nogpu

package gpu

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/life"
	"github.com/gogpu/wgpu/hal"
)

// Simulation ties the state store, both pipelines, the binding pair and
// the scheduler together on one device. Methods are safe for concurrent
// use, but frames are serialized.
type Simulation struct {
	mu sync.Mutex

	cfg        life.Config
	dev        *Device
	ownsDevice bool

	layout   *sharedLayout
	store    *StateStore
	compute  *ComputeStage
	render   *RenderStage
	bindings *BindingSetPair
	sched    *Scheduler

	closed bool
}

// NewSimulation builds every GPU resource for cfg on dev and uploads the
// initial generation: buffer A random, buffer B odd cells alive. Rendering
// targets views of the given format.
func NewSimulation(dev *Device, cfg life.Config, format gputypes.TextureFormat) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := checkLimits(dev.Limits(), cfg); err != nil {
		return nil, err
	}
	device, queue := dev.HAL()
	if device == nil || queue == nil {
		return nil, ErrNoGPU
	}

	s := &Simulation{cfg: cfg, dev: dev}
	ok := false
	defer func() {
		if !ok {
			s.destroy()
		}
	}()

	var err error
	if s.layout, err = newSharedLayout(device); err != nil {
		return nil, err
	}
	seedA := life.SeedRandom(cfg.Grid, life.NewRand(cfg))
	seedB := life.SeedOdd(cfg.Grid)
	if s.store, err = NewStateStore(device, queue, cfg.Grid, seedA, seedB); err != nil {
		return nil, err
	}
	if s.compute, err = newComputeStage(device, s.layout, cfg); err != nil {
		return nil, err
	}
	if s.render, err = newRenderStage(device, queue, s.layout, cfg, format); err != nil {
		return nil, err
	}
	if s.bindings, err = newBindingSetPair(device, s.layout, s.store); err != nil {
		return nil, err
	}
	if s.sched, err = newScheduler(device, queue, s.store, s.compute, s.render, s.bindings, cfg.FenceTimeout); err != nil {
		return nil, err
	}
	ok = true

	slogger().Info("life: simulation ready",
		"device", dev.Name(), "grid", cfg.Grid.String(), "tile", cfg.TileSize,
		"population", life.Population(seedA), "spirv", cfg.PrecompileSPIRV)
	return s, nil
}

// NewStandaloneSimulation opens its own device with [OpenDevice]. Close
// releases the device too.
func NewStandaloneSimulation(cfg life.Config, format gputypes.TextureFormat) (*Simulation, error) {
	dev, err := OpenDevice()
	if err != nil {
		return nil, err
	}
	s, err := NewSimulation(dev, cfg, format)
	if err != nil {
		dev.Destroy()
		return nil, err
	}
	s.ownsDevice = true
	return s, nil
}

// Config returns the configuration the simulation was built with.
func (s *Simulation) Config() life.Config { return s.cfg }

// Device returns the device the simulation runs on.
func (s *Simulation) Device() *Device { return s.dev }

// Format returns the color format render targets must have.
func (s *Simulation) Format() gputypes.TextureFormat { return s.render.Format() }

// Workgroups returns the compute dispatch size.
func (s *Simulation) Workgroups() (x, y uint32) { return s.compute.Workgroups() }

// SetObserver installs an observer for scheduler events.
func (s *Simulation) SetObserver(o Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sched != nil {
		s.sched.SetObserver(o)
	}
}

// Step returns the number of generations computed so far.
func (s *Simulation) Step() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sched == nil {
		return 0
	}
	return s.sched.Step()
}

// Load replaces the current generation before the first tick.
func (s *Simulation) Load(cells []uint32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if s.sched.Step() != 0 {
		return ErrAlreadyStarted
	}
	return s.store.Upload(life.Parity(0), cells)
}

// Tick computes the next generation and draws it into target.
func (s *Simulation) Tick(target hal.TextureView) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	return s.sched.Tick(target)
}

// Redraw draws the current generation into target.
func (s *Simulation) Redraw(target hal.TextureView) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	return s.sched.Redraw(target)
}

// ReadState returns a copy of the current generation.
func (s *Simulation) ReadState() ([]uint32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}
	return s.sched.ReadState()
}

// Run ticks into target every cfg.Interval until generations ticks have
// been submitted or ctx is done. generations <= 0 runs until ctx is done.
// It returns ctx.Err() when stopped by the context.
func (s *Simulation) Run(ctx context.Context, target hal.TextureView, generations int) error {
	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for done := 0; generations <= 0 || done < generations; done++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
		if err := s.Tick(target); err != nil {
			return fmt.Errorf("generation %d: %w", done+1, err)
		}
	}
	return nil
}

// Close waits for the last frame and releases every resource. Safe to
// call multiple times.
func (s *Simulation) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	s.destroy()
	slogger().Debug("life: simulation closed")
	return nil
}

// destroy releases resources in reverse creation order.
func (s *Simulation) destroy() {
	if s.sched != nil {
		s.sched.destroy()
	}
	if s.bindings != nil {
		s.bindings.destroy()
	}
	if s.render != nil {
		s.render.destroy()
	}
	if s.compute != nil {
		s.compute.destroy()
	}
	if s.store != nil {
		s.store.Destroy()
	}
	if s.layout != nil {
		s.layout.destroy()
	}
	if s.ownsDevice {
		s.dev.Destroy()
	}
}
