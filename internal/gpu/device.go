//go:build !nogpu

package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/life"
	"github.com/gogpu/wgpu/hal"

	// Register the Vulkan backend for standalone devices.
	_ "github.com/gogpu/wgpu/hal/vulkan"
)

// Device is an opened HAL device and its queue.
//
// A Device is either standalone (opened by [OpenDevice], owns its instance
// and is destroyed by [Device.Destroy]) or shared (obtained from a host
// such as a gogpu window, where Destroy leaves the device alone).
type Device struct {
	instance hal.Instance
	device   hal.Device
	queue    hal.Queue
	limits   gputypes.Limits
	name     string
	external bool
}

// OpenDevice opens a standalone Vulkan device, preferring a discrete or
// integrated GPU over software adapters.
func OpenDevice() (*Device, error) {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, fmt.Errorf("%w: vulkan backend not available", ErrNoGPU)
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("%w: create instance: %w", ErrNoGPU, err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, ErrNoAdapter
	}
	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}
	limits := gputypes.DefaultLimits()
	openDev, err := selected.Adapter.Open(gputypes.Features(0), limits)
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("%w: open device: %w", ErrNoGPU, err)
	}
	slogger().Info("life: GPU device opened", "adapter", selected.Info.Name)
	return &Device{
		instance: instance,
		device:   openDev.Device,
		queue:    openDev.Queue,
		limits:   limits,
		name:     selected.Info.Name,
	}, nil
}

// NewDeviceFromProvider wraps the device shared by a host. The provider
// must implement HalDevice() any and HalQueue() any returning hal.Device
// and hal.Queue, as gogpu's GPUContextProvider does.
func NewDeviceFromProvider(provider any) (*Device, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrProvider
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrProvider)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrProvider)
	}
	limits := gputypes.DefaultLimits()
	if lp, ok := provider.(interface{ Limits() gputypes.Limits }); ok {
		limits = lp.Limits()
	}
	slogger().Debug("life: using shared GPU device")
	return WrapDeviceWithLimits(device, queue, limits), nil
}

// WrapDevice wraps an existing device and queue. The caller keeps
// ownership; Destroy does not release them.
//
// The HAL does not report the limits a device was opened with, so
// WrapDevice assumes gputypes.DefaultLimits. Use WrapDeviceWithLimits when
// the host knows the real ones.
func WrapDevice(device hal.Device, queue hal.Queue) *Device {
	return WrapDeviceWithLimits(device, queue, gputypes.DefaultLimits())
}

// WrapDeviceWithLimits is WrapDevice with the limits the host opened the
// device with. NewSimulation checks its configuration against them.
func WrapDeviceWithLimits(device hal.Device, queue hal.Queue, limits gputypes.Limits) *Device {
	return &Device{
		device:   device,
		queue:    queue,
		limits:   limits,
		name:     "shared",
		external: true,
	}
}

// SurfaceFormat returns the output format a host prefers, read from a
// provider implementing SurfaceFormat() gputypes.TextureFormat. It falls
// back to DefaultTargetFormat when the provider has none.
func SurfaceFormat(provider any) gputypes.TextureFormat {
	fp, ok := provider.(interface{ SurfaceFormat() gputypes.TextureFormat })
	if !ok {
		return DefaultTargetFormat
	}
	if f := fp.SurfaceFormat(); f != gputypes.TextureFormatUndefined {
		return f
	}
	return DefaultTargetFormat
}

// HAL returns the underlying device and queue.
func (d *Device) HAL() (hal.Device, hal.Queue) { return d.device, d.queue }

// Name returns the adapter name, or "shared" for wrapped devices.
func (d *Device) Name() string { return d.name }

// Limits returns the limits the device was opened with.
func (d *Device) Limits() gputypes.Limits { return d.limits }

// Destroy releases a standalone device and its instance. Safe to call
// multiple times; a no-op for shared devices.
func (d *Device) Destroy() {
	if d.external {
		return
	}
	if d.device != nil {
		d.device.Destroy()
		d.device = nil
		d.queue = nil
	}
	if d.instance != nil {
		d.instance.Destroy()
		d.instance = nil
	}
}

// checkLimits reports whether limits allow the simulation described by cfg.
func checkLimits(limits gputypes.Limits, cfg life.Config) error {
	tile := uint64(cfg.TileSize) //nolint:gosec // validated positive
	stateBytes := uint64(cfg.Grid.Cells()) * 4

	switch {
	case tile > uint64(limits.MaxComputeWorkgroupSizeX) || tile > uint64(limits.MaxComputeWorkgroupSizeY):
		return fmt.Errorf("%w: workgroup edge %d exceeds %dx%d",
			ErrUnsupported, tile, limits.MaxComputeWorkgroupSizeX, limits.MaxComputeWorkgroupSizeY)
	case tile*tile > uint64(limits.MaxComputeInvocationsPerWorkgroup):
		return fmt.Errorf("%w: %d invocations per workgroup exceed %d",
			ErrUnsupported, tile*tile, limits.MaxComputeInvocationsPerWorkgroup)
	case uint64(limits.MaxStorageBuffersPerShaderStage) < 2:
		return fmt.Errorf("%w: need 2 storage buffers per stage, have %d",
			ErrUnsupported, limits.MaxStorageBuffersPerShaderStage)
	case stateBytes > uint64(limits.MaxStorageBufferBindingSize):
		return fmt.Errorf("%w: state buffer of %d bytes exceeds binding limit %d",
			ErrUnsupported, stateBytes, limits.MaxStorageBufferBindingSize)
	case stateBytes > uint64(limits.MaxBufferSize):
		return fmt.Errorf("%w: state buffer of %d bytes exceeds buffer limit %d",
			ErrUnsupported, stateBytes, limits.MaxBufferSize)
	}
	dispatch := uint64(life.WorkgroupCount(max(cfg.Grid.Width, cfg.Grid.Height), cfg.TileSize)) //nolint:gosec // positive
	if dispatch > uint64(limits.MaxComputeWorkgroupsPerDimension) {
		return fmt.Errorf("%w: %d workgroups per dimension exceed %d",
			ErrUnsupported, dispatch, limits.MaxComputeWorkgroupsPerDimension)
	}
	return nil
}
