//go:build !nogpu

package gpu

import (
	"fmt"
	"time"

	"github.com/gogpu/life"
	"github.com/gogpu/wgpu/hal"
)

// Observer receives scheduler events. Implementations must be fast; they
// run on the ticking goroutine.
type Observer interface {
	// TickSubmitted is called after a tick is submitted. step is the
	// counter after the increment and d the time spent encoding and
	// submitting.
	TickSubmitted(step uint64, d time.Duration)
	// FrameRedrawn is called after a render-only frame is submitted.
	FrameRedrawn()
	// TickFailed is called once with the error that stopped the scheduler.
	// Readback submissions share the scheduler's fence, so a failed
	// ReadState stops the scheduler and is reported here too.
	TickFailed(err error)
}

// Scheduler owns the step counter and turns each tick into one command
// buffer: compute pass, step increment, render pass, single submit.
//
// Submissions are serialized on one fence. Before encoding, a frame waits
// for the previous submission to finish, so the state buffers are never
// used by two frames at once. A failed submission stops the scheduler.
type Scheduler struct {
	device   hal.Device
	queue    hal.Queue
	store    *StateStore
	compute  *ComputeStage
	render   *RenderStage
	bindings *BindingSetPair

	fence     hal.Fence
	submitted uint64
	inflight  hal.CommandBuffer
	timeout   time.Duration

	step     uint64
	err      error
	observer Observer
}

func newScheduler(device hal.Device, queue hal.Queue, store *StateStore, compute *ComputeStage,
	render *RenderStage, bindings *BindingSetPair, timeout time.Duration,
) (*Scheduler, error) {
	fence, err := device.CreateFence()
	if err != nil {
		return nil, fmt.Errorf("%w: fence: %w", ErrResourceCreation, err)
	}
	return &Scheduler{
		device:   device,
		queue:    queue,
		store:    store,
		compute:  compute,
		render:   render,
		bindings: bindings,
		fence:    fence,
		timeout:  timeout,
	}, nil
}

// SetObserver installs o, or removes the observer when o is nil.
func (s *Scheduler) SetObserver(o Observer) { s.observer = o }

// Step returns the number of generations computed so far.
func (s *Scheduler) Step() uint64 { return s.step }

// Err returns the error that stopped the scheduler, if any.
func (s *Scheduler) Err() error { return s.err }

// Tick computes one generation and draws it into target.
func (s *Scheduler) Tick(target hal.TextureView) error {
	if err := s.ready(target); err != nil {
		return err
	}
	start := time.Now()

	encoder, err := s.begin("life_tick")
	if err != nil {
		return s.fail(err)
	}
	// The render pass binds the configuration after the increment, whose
	// input is the buffer the compute pass writes.
	plan := life.FramePlan(s.step)
	s.compute.record(encoder, s.bindings.Select(s.step))
	s.render.record(encoder, target, s.bindings.Select(plan.NextStep))

	if err := s.submit(encoder); err != nil {
		return s.fail(err)
	}
	s.step = plan.NextStep
	d := time.Since(start)
	slogger().Debug("life: tick submitted", "step", s.step, "render_buffer", plan.RenderIn, "took", d)
	if s.observer != nil {
		s.observer.TickSubmitted(s.step, d)
	}
	return nil
}

// Redraw draws the current generation into target without advancing it.
func (s *Scheduler) Redraw(target hal.TextureView) error {
	if err := s.ready(target); err != nil {
		return err
	}
	encoder, err := s.begin("life_redraw")
	if err != nil {
		return s.fail(err)
	}
	s.render.record(encoder, target, s.bindings.Select(s.step))
	if err := s.submit(encoder); err != nil {
		return s.fail(err)
	}
	if s.observer != nil {
		s.observer.FrameRedrawn()
	}
	return nil
}

func (s *Scheduler) ready(target hal.TextureView) error {
	if s.err != nil {
		return fmt.Errorf("%w: %w", ErrSchedulerFailed, s.err)
	}
	if s.fence == nil {
		return ErrClosed
	}
	if target == nil {
		return ErrNilTarget
	}
	return nil
}

// begin waits for the previous submission and opens a command encoder.
func (s *Scheduler) begin(label string) (hal.CommandEncoder, error) {
	if err := s.waitIdle(); err != nil {
		return nil, err
	}
	encoder, err := s.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: label})
	if err != nil {
		return nil, fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding(label); err != nil {
		encoder.DiscardEncoding()
		return nil, fmt.Errorf("begin encoding: %w", err)
	}
	return encoder, nil
}

// submit ends encoding and submits the command buffer as one unit,
// signalling the fence with the next submission value.
func (s *Scheduler) submit(encoder hal.CommandEncoder) error {
	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		encoder.DiscardEncoding()
		return fmt.Errorf("end encoding: %w", err)
	}
	next := s.submitted + 1
	if err := s.queue.Submit([]hal.CommandBuffer{cmdBuf}, s.fence, next); err != nil {
		s.device.FreeCommandBuffer(cmdBuf)
		return fmt.Errorf("%w: %w", ErrSubmit, err)
	}
	s.submitted = next
	s.inflight = cmdBuf
	return nil
}

// waitIdle blocks until the last submission has finished and frees its
// command buffer.
func (s *Scheduler) waitIdle() error {
	if s.inflight == nil {
		return nil
	}
	ok, err := s.device.Wait(s.fence, s.submitted, s.timeout)
	if err != nil {
		return fmt.Errorf("wait for frame %d: %w", s.submitted, err)
	}
	if !ok {
		return fmt.Errorf("%w: frame %d after %v", ErrFenceTimeout, s.submitted, s.timeout)
	}
	s.device.FreeCommandBuffer(s.inflight)
	s.inflight = nil
	return nil
}

// fail records err as fatal and reports it to the observer.
func (s *Scheduler) fail(err error) error {
	s.err = err
	slogger().Error("life: frame failed, scheduler stopped", "step", s.step, "err", err)
	if s.observer != nil {
		s.observer.TickFailed(err)
	}
	return err
}

// destroy drains the last submission and releases the fence.
func (s *Scheduler) destroy() {
	if s.fence == nil {
		return
	}
	if err := s.waitIdle(); err != nil {
		slogger().Warn("life: draining last frame", "err", err)
	}
	s.device.DestroyFence(s.fence)
	s.fence = nil
}
