//go:build !nogpu

package gpu

import (
	"fmt"

	"github.com/gogpu/life"
	"github.com/gogpu/wgpu/hal"
)

// ComputeStage advances the grid by one generation. It runs computeMain
// with tile x tile workgroups over ceil(W/tile) x ceil(H/tile) groups.
type ComputeStage struct {
	device   hal.Device
	shader   hal.ShaderModule
	pipeline hal.ComputePipeline

	groupsX, groupsY uint32
}

func newComputeStage(device hal.Device, layout *sharedLayout, cfg life.Config) (*ComputeStage, error) {
	shader, err := createShaderModule(device, "life_simulation", simulationShaderSource(cfg.TileSize), cfg.PrecompileSPIRV)
	if err != nil {
		return nil, err
	}
	pipeline, err := device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label:  "life_simulation_pipeline",
		Layout: layout.pipeLayout,
		Compute: hal.ComputeState{
			Module:     shader,
			EntryPoint: computeEntryPoint,
		},
	})
	if err != nil {
		device.DestroyShaderModule(shader)
		return nil, fmt.Errorf("%w: compute pipeline: %w", ErrResourceCreation, err)
	}
	c := &ComputeStage{
		device:   device,
		shader:   shader,
		pipeline: pipeline,
		groupsX:  uint32(life.WorkgroupCount(cfg.Grid.Width, cfg.TileSize)),  //nolint:gosec // bounded by checkLimits
		groupsY:  uint32(life.WorkgroupCount(cfg.Grid.Height, cfg.TileSize)), //nolint:gosec // bounded by checkLimits
	}
	slogger().Debug("life: compute pipeline created", "tile", cfg.TileSize, "groups_x", c.groupsX, "groups_y", c.groupsY)
	return c, nil
}

// Workgroups returns the dispatch size.
func (c *ComputeStage) Workgroups() (x, y uint32) { return c.groupsX, c.groupsY }

// record encodes one compute pass reading and writing through bg.
func (c *ComputeStage) record(encoder hal.CommandEncoder, bg hal.BindGroup) {
	pass := encoder.BeginComputePass(&hal.ComputePassDescriptor{Label: "life_simulation_pass"})
	pass.SetPipeline(c.pipeline)
	pass.SetBindGroup(0, bg, nil)
	pass.Dispatch(c.groupsX, c.groupsY, 1)
	pass.End()
}

func (c *ComputeStage) destroy() {
	if c.pipeline != nil {
		c.device.DestroyComputePipeline(c.pipeline)
		c.pipeline = nil
	}
	if c.shader != nil {
		c.device.DestroyShaderModule(c.shader)
		c.shader = nil
	}
}
