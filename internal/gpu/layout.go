//go:build !nogpu

package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// sharedLayout is the single bind group layout and pipeline layout used by
// both the compute and the render pipeline, so either binding
// configuration can be bound to either pass.
type sharedLayout struct {
	device     hal.Device
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
}

func newSharedLayout(device hal.Device) (*sharedLayout, error) {
	bindLayout, err := device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "life_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment | gputypes.ShaderStageCompute,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageCompute,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeReadOnlyStorage},
			},
			{
				Binding:    2,
				Visibility: gputypes.ShaderStageCompute,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeStorage},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: bind group layout: %w", ErrResourceCreation, err)
	}
	pipeLayout, err := device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "life_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{bindLayout},
	})
	if err != nil {
		device.DestroyBindGroupLayout(bindLayout)
		return nil, fmt.Errorf("%w: pipeline layout: %w", ErrResourceCreation, err)
	}
	return &sharedLayout{device: device, bindLayout: bindLayout, pipeLayout: pipeLayout}, nil
}

func (l *sharedLayout) destroy() {
	if l.pipeLayout != nil {
		l.device.DestroyPipelineLayout(l.pipeLayout)
		l.pipeLayout = nil
	}
	if l.bindLayout != nil {
		l.device.DestroyBindGroupLayout(l.bindLayout)
		l.bindLayout = nil
	}
}
