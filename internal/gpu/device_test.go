//go:build !nogpu

package gpu

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/life"
)

type testProvider struct {
	device, queue any
}

func (p testProvider) HalDevice() any { return p.device }
func (p testProvider) HalQueue() any  { return p.queue }

func TestNewDeviceFromProvider(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	dev, err := NewDeviceFromProvider(testProvider{device: device, queue: queue})
	if err != nil {
		t.Fatalf("NewDeviceFromProvider: %v", err)
	}
	d, q := dev.HAL()
	if d != device || q != queue {
		t.Error("provider device/queue not stored")
	}
	if dev.Name() != "shared" {
		t.Errorf("Name() = %q, want shared", dev.Name())
	}

	// Shared devices are owned by the host.
	dev.Destroy()
	if d, _ := dev.HAL(); d == nil {
		t.Error("Destroy released a shared device")
	}
}

func TestNewDeviceFromProviderInvalid(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	tests := []struct {
		name     string
		provider any
	}{
		{"not a provider", struct{}{}},
		{"wrong device type", testProvider{device: "device", queue: queue}},
		{"wrong queue type", testProvider{device: device, queue: 42}},
		{"nil values", testProvider{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDeviceFromProvider(tt.provider)
			if !errors.Is(err, ErrProvider) {
				t.Errorf("err = %v, want ErrProvider", err)
			}
		})
	}
}

// limitedProvider also reports the limits and surface format the host
// opened the device with.
type limitedProvider struct {
	testProvider
	limits gputypes.Limits
	format gputypes.TextureFormat
}

func (p limitedProvider) Limits() gputypes.Limits               { return p.limits }
func (p limitedProvider) SurfaceFormat() gputypes.TextureFormat { return p.format }

func TestNewDeviceFromProviderLimits(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	limits := gputypes.DefaultLimits()
	limits.MaxComputeWorkgroupSizeX = 4
	dev, err := NewDeviceFromProvider(limitedProvider{
		testProvider: testProvider{device: device, queue: queue},
		limits:       limits,
	})
	if err != nil {
		t.Fatalf("NewDeviceFromProvider: %v", err)
	}
	if got := dev.Limits().MaxComputeWorkgroupSizeX; got != 4 {
		t.Errorf("MaxComputeWorkgroupSizeX = %d, want the host's 4", got)
	}

	cfg, err := life.NewConfig(life.WithTileSize(8))
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	if _, err := NewSimulation(dev, cfg, DefaultTargetFormat); !errors.Is(err, ErrUnsupported) {
		t.Errorf("NewSimulation err = %v, want ErrUnsupported under host limits", err)
	}

	plain, err := NewDeviceFromProvider(testProvider{device: device, queue: queue})
	if err != nil {
		t.Fatalf("NewDeviceFromProvider: %v", err)
	}
	if plain.Limits() != gputypes.DefaultLimits() {
		t.Error("provider without Limits() should get default limits")
	}
}

func TestSurfaceFormat(t *testing.T) {
	tests := []struct {
		name     string
		provider any
		want     gputypes.TextureFormat
	}{
		{"no format method", testProvider{}, DefaultTargetFormat},
		{"undefined", limitedProvider{format: gputypes.TextureFormatUndefined}, DefaultTargetFormat},
		{"srgb", limitedProvider{format: gputypes.TextureFormatBGRA8UnormSrgb}, gputypes.TextureFormatBGRA8UnormSrgb},
		{"rgba", limitedProvider{format: gputypes.TextureFormatRGBA8Unorm}, gputypes.TextureFormatRGBA8Unorm},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SurfaceFormat(tt.provider); got != tt.want {
				t.Errorf("SurfaceFormat() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCheckLimits(t *testing.T) {
	limits := gputypes.DefaultLimits()

	tests := []struct {
		name    string
		opts    []life.Option
		limits  func(*gputypes.Limits)
		wantErr bool
	}{
		{name: "default"},
		{name: "max tile", opts: []life.Option{life.WithTileSize(life.MaxTileSize)}},
		{name: "rectangular", opts: []life.Option{life.WithGridSize(100, 7)}},
		{
			name:    "small workgroup limit",
			limits:  func(l *gputypes.Limits) { l.MaxComputeWorkgroupSizeX = 4 },
			wantErr: true,
		},
		{
			name:    "few invocations",
			limits:  func(l *gputypes.Limits) { l.MaxComputeInvocationsPerWorkgroup = 32 },
			wantErr: true,
		},
		{
			name:    "one storage buffer",
			limits:  func(l *gputypes.Limits) { l.MaxStorageBuffersPerShaderStage = 1 },
			wantErr: true,
		},
		{
			name:    "small storage binding",
			limits:  func(l *gputypes.Limits) { l.MaxStorageBufferBindingSize = 1024 },
			wantErr: true,
		},
		{
			name:    "few workgroups",
			limits:  func(l *gputypes.Limits) { l.MaxComputeWorkgroupsPerDimension = 2 },
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := life.NewConfig(tt.opts...)
			if err != nil {
				t.Fatalf("NewConfig: %v", err)
			}
			l := limits
			if tt.limits != nil {
				tt.limits(&l)
			}
			err = checkLimits(l, cfg)
			if tt.wantErr && !errors.Is(err, ErrUnsupported) {
				t.Errorf("err = %v, want ErrUnsupported", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
