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

// quadVertexStride is the byte stride per vertex: one vec2<f32> position
// at location 0.
const quadVertexStride = 8

// newQuadBuffer uploads the cell quad into an immutable vertex buffer.
func newQuadBuffer(device hal.Device, queue hal.Queue, scale float32) (hal.Buffer, error) {
	verts := life.QuadVertices(scale)
	data := make([]byte, len(verts)*4)
	for i, v := range verts {
		binary.LittleEndian.PutUint32(data[i*4:], math.Float32bits(v))
	}
	buf, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: "life_quad_vertices",
		Size:  uint64(len(data)),
		Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: quad vertex buffer: %w", ErrResourceCreation, err)
	}
	queue.WriteBuffer(buf, 0, data)
	return buf, nil
}

// quadVertexLayout returns the vertex buffer layout for the cell pipeline.
func quadVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: quadVertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0}, // position
			},
		},
	}
}
