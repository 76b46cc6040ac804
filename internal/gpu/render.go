//go:build !nogpu

package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/life"
	"github.com/gogpu/wgpu/hal"
)

// DefaultTargetFormat is the color format of window surfaces in gogpu.
const DefaultTargetFormat = gputypes.TextureFormatBGRA8Unorm

// RenderStage draws one quad instance per cell. Dead cells collapse to a
// degenerate quad in the vertex stage.
type RenderStage struct {
	device   hal.Device
	shader   hal.ShaderModule
	pipeline hal.RenderPipeline
	quad     hal.Buffer

	instances uint32
	clear     gputypes.Color
	format    gputypes.TextureFormat
}

func newRenderStage(device hal.Device, queue hal.Queue, layout *sharedLayout, cfg life.Config, format gputypes.TextureFormat) (*RenderStage, error) {
	quad, err := newQuadBuffer(device, queue, cfg.CellScale)
	if err != nil {
		return nil, err
	}
	shader, err := createShaderModule(device, "life_cell", cellShaderSource, cfg.PrecompileSPIRV)
	if err != nil {
		device.DestroyBuffer(quad)
		return nil, err
	}
	pipeline, err := device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "life_cell_pipeline",
		Layout: layout.pipeLayout,
		Vertex: hal.VertexState{
			Module:     shader,
			EntryPoint: vertexEntryPoint,
			Buffers:    quadVertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     shader,
			EntryPoint: fragmentEntryPoint,
			Targets: []gputypes.ColorTargetState{
				{
					Format:    format,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		device.DestroyShaderModule(shader)
		device.DestroyBuffer(quad)
		return nil, fmt.Errorf("%w: render pipeline: %w", ErrResourceCreation, err)
	}
	c := cfg.ClearColor
	return &RenderStage{
		device:    device,
		shader:    shader,
		pipeline:  pipeline,
		quad:      quad,
		instances: uint32(cfg.Grid.Cells()), //nolint:gosec // grid validated to fit uint32
		clear:     gputypes.Color{R: c.R, G: c.G, B: c.B, A: c.A},
		format:    format,
	}, nil
}

// Format returns the color target format the pipeline was built for.
func (r *RenderStage) Format() gputypes.TextureFormat { return r.format }

// record encodes one render pass that clears view and draws every cell
// from the state buffer bg reads.
func (r *RenderStage) record(encoder hal.CommandEncoder, view hal.TextureView, bg hal.BindGroup) {
	pass := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "life_render_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: r.clear,
		}},
	})
	pass.SetPipeline(r.pipeline)
	pass.SetBindGroup(0, bg, nil)
	pass.SetVertexBuffer(0, r.quad, 0)
	pass.Draw(life.QuadVertexCount, r.instances, 0, 0)
	pass.End()
}

func (r *RenderStage) destroy() {
	if r.pipeline != nil {
		r.device.DestroyRenderPipeline(r.pipeline)
		r.pipeline = nil
	}
	if r.shader != nil {
		r.device.DestroyShaderModule(r.shader)
		r.shader = nil
	}
	if r.quad != nil {
		r.device.DestroyBuffer(r.quad)
		r.quad = nil
	}
}
