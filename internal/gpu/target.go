//go:build !nogpu

package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Target is an offscreen color texture used as the render target when no
// window surface exists (headless runs, tests).
type Target struct {
	device  hal.Device
	texture hal.Texture
	view    hal.TextureView

	width, height uint32
}

// NewTarget creates a width x height render target in format.
func NewTarget(device hal.Device, width, height uint32, format gputypes.TextureFormat) (*Target, error) {
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("%w: target size %dx%d", ErrResourceCreation, width, height)
	}
	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         "life_offscreen",
		Size:          hal.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        format,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: offscreen texture: %w", ErrResourceCreation, err)
	}
	view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label: "life_offscreen_view",
	})
	if err != nil {
		device.DestroyTexture(tex)
		return nil, fmt.Errorf("%w: offscreen view: %w", ErrResourceCreation, err)
	}
	return &Target{device: device, texture: tex, view: view, width: width, height: height}, nil
}

// View returns the texture view to render into.
func (t *Target) View() hal.TextureView { return t.view }

// Size returns the target dimensions in pixels.
func (t *Target) Size() (width, height uint32) { return t.width, t.height }

// Destroy releases the texture and its view. Safe to call multiple times.
func (t *Target) Destroy() {
	if t.view != nil {
		t.device.DestroyTextureView(t.view)
		t.view = nil
	}
	if t.texture != nil {
		t.device.DestroyTexture(t.texture)
		t.texture = nil
	}
}
