//go:build !nogpu

package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/life"
	"github.com/gogpu/wgpu/hal"
)

// ReadState copies the current generation (buffer step%2) to a staging
// buffer and returns it. It waits for every earlier frame first.
func (s *Scheduler) ReadState() ([]uint32, error) {
	if s.err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSchedulerFailed, s.err)
	}
	if s.fence == nil {
		return nil, ErrClosed
	}
	size := s.store.Size()
	staging, err := s.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "life_state_staging",
		Size:  size,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: staging buffer: %w", ErrResourceCreation, err)
	}
	defer s.device.DestroyBuffer(staging)

	encoder, err := s.begin("life_readback")
	if err != nil {
		return nil, s.fail(err)
	}
	current := life.Parity(s.step)
	encoder.CopyBufferToBuffer(s.store.Buffer(current), staging, []hal.BufferCopy{
		{SrcOffset: 0, DstOffset: 0, Size: size},
	})
	if err := s.submit(encoder); err != nil {
		return nil, s.fail(err)
	}
	if err := s.waitIdle(); err != nil {
		return nil, s.fail(err)
	}

	data := make([]byte, size)
	if err := s.queue.ReadBuffer(staging, 0, data); err != nil {
		return nil, fmt.Errorf("readback: %w", err)
	}
	slogger().Debug("life: state read back", "step", s.step, "buffer", current)
	return bytesToCells(data), nil
}
