//go:build !nogpu

package gpu

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/life"
	"github.com/gogpu/wgpu/hal"
)

// gridUniformSize is the byte size of the vec2<f32> grid uniform.
const gridUniformSize = 8

// StateStore owns the two cell-state storage buffers (A and B) and the
// grid uniform. After the initial upload only compute dispatches write to
// the state buffers.
type StateStore struct {
	device hal.Device
	queue  hal.Queue
	grid   life.Grid

	state   [2]hal.Buffer
	uniform hal.Buffer
	size    uint64
}

// NewStateStore allocates both state buffers and the uniform, then uploads
// seedA into buffer A, seedB into buffer B and the grid dimensions into the
// uniform. Each seed must hold exactly grid.Cells() values.
func NewStateStore(device hal.Device, queue hal.Queue, grid life.Grid, seedA, seedB []uint32) (*StateStore, error) {
	n := grid.Cells()
	if len(seedA) != n || len(seedB) != n {
		return nil, fmt.Errorf("%w: seeds have %d and %d cells, want %d", life.ErrStateSize, len(seedA), len(seedB), n)
	}
	s := &StateStore{
		device: device,
		queue:  queue,
		grid:   grid,
		size:   uint64(n) * 4, //nolint:gosec // grid validated to fit uint32
	}

	uniform, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: "life_grid_uniform",
		Size:  gridUniformSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: grid uniform: %w", ErrResourceCreation, err)
	}
	s.uniform = uniform

	labels := [2]string{"life_state_a", "life_state_b"}
	for i := range s.state {
		buf, err := device.CreateBuffer(&hal.BufferDescriptor{
			Label: labels[i],
			Size:  s.size,
			Usage: gputypes.BufferUsageStorage | gputypes.BufferUsageCopyDst | gputypes.BufferUsageCopySrc,
		})
		if err != nil {
			s.Destroy()
			return nil, fmt.Errorf("%w: %s: %w", ErrResourceCreation, labels[i], err)
		}
		s.state[i] = buf
	}

	queue.WriteBuffer(s.uniform, 0, gridUniformBytes(grid))
	queue.WriteBuffer(s.state[0], 0, cellsToBytes(seedA))
	queue.WriteBuffer(s.state[1], 0, cellsToBytes(seedB))

	slogger().Debug("life: state buffers created", "grid", grid.String(), "bytes", s.size)
	return s, nil
}

// Upload replaces the content of state buffer index (0 = A, 1 = B).
func (s *StateStore) Upload(index int, cells []uint32) error {
	if index != 0 && index != 1 {
		return fmt.Errorf("%w: state buffer index %d", life.ErrInvalidConfig, index)
	}
	if len(cells) != s.grid.Cells() {
		return fmt.Errorf("%w: got %d cells for grid %v", life.ErrStateSize, len(cells), s.grid)
	}
	if s.state[index] == nil {
		return ErrClosed
	}
	s.queue.WriteBuffer(s.state[index], 0, cellsToBytes(cells))
	return nil
}

// Buffer returns state buffer index (0 = A, 1 = B).
func (s *StateStore) Buffer(index int) hal.Buffer { return s.state[index] }

// Uniform returns the grid uniform buffer.
func (s *StateStore) Uniform() hal.Buffer { return s.uniform }

// Size returns the byte size of one state buffer.
func (s *StateStore) Size() uint64 { return s.size }

// Grid returns the grid the buffers were sized for.
func (s *StateStore) Grid() life.Grid { return s.grid }

// Destroy releases all buffers. Safe to call multiple times.
func (s *StateStore) Destroy() {
	for i := range s.state {
		if s.state[i] != nil {
			s.device.DestroyBuffer(s.state[i])
			s.state[i] = nil
		}
	}
	if s.uniform != nil {
		s.device.DestroyBuffer(s.uniform)
		s.uniform = nil
	}
}

// gridUniformBytes encodes the grid as vec2<f32>(width, height).
func gridUniformBytes(g life.Grid) []byte {
	buf := make([]byte, gridUniformSize)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(float32(g.Width)))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(float32(g.Height)))
	return buf
}

// cellsToBytes encodes cells as little-endian u32 words.
func cellsToBytes(cells []uint32) []byte {
	buf := make([]byte, len(cells)*4)
	for i, c := range cells {
		binary.LittleEndian.PutUint32(buf[i*4:], c)
	}
	return buf
}

// bytesToCells decodes little-endian u32 words.
func bytesToCells(data []byte) []uint32 {
	cells := make([]uint32, len(data)/4)
	for i := range cells {
		cells[i] = binary.LittleEndian.Uint32(data[i*4:])
	}
	return cells
}
