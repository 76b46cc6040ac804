package life

import (
	"fmt"
	"time"
)

// Defaults for the recognized configuration options.
const (
	DefaultWidth        = 32
	DefaultHeight       = 32
	DefaultInterval     = 200 * time.Millisecond
	DefaultTileSize     = 8
	DefaultCellScale    = 0.8
	DefaultFenceTimeout = 5 * time.Second

	// MaxTileSize bounds the workgroup edge so that TileSize*TileSize stays
	// within the WebGPU default of 256 invocations per workgroup.
	MaxTileSize = 16
)

// Color is a linear RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float64
}

// DefaultClearColor is the dark blue background behind the cells.
var DefaultClearColor = Color{R: 0, G: 0, B: 0.4, A: 1}

// Config holds the simulation settings. Build one with [NewConfig] or start
// from [DefaultConfig] and validate with [Config.Validate].
type Config struct {
	// Grid is the fixed simulation size.
	Grid Grid

	// Interval is the wall-clock time between ticks.
	Interval time.Duration

	// TileSize is the workgroup edge length of the compute dispatch.
	// It changes dispatch partitioning only, never simulation results.
	TileSize int

	// CellScale is the half-extent of a cell quad relative to the cell,
	// in (0, 1). Values below 1 leave a visible gap between cells.
	CellScale float32

	// ClearColor is the render pass background.
	ClearColor Color

	// Seed seeds the random initial generation when Seeded is true.
	// Otherwise a seed is drawn from the process-wide random source.
	Seed   uint64
	Seeded bool

	// PrecompileSPIRV compiles the WGSL shaders to SPIR-V with naga before
	// handing them to the device.
	PrecompileSPIRV bool

	// FenceTimeout bounds how long a tick waits for the previous submission.
	FenceTimeout time.Duration
}

// Option configures a Config.
type Option func(*Config)

// DefaultConfig returns the reference configuration: a 32x32 grid stepped
// every 200ms with 8x8 workgroups.
func DefaultConfig() Config {
	return Config{
		Grid:         Grid{Width: DefaultWidth, Height: DefaultHeight},
		Interval:     DefaultInterval,
		TileSize:     DefaultTileSize,
		CellScale:    DefaultCellScale,
		ClearColor:   DefaultClearColor,
		FenceTimeout: DefaultFenceTimeout,
	}
}

// NewConfig applies opts over DefaultConfig and validates the result.
func NewConfig(opts ...Option) (Config, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// WithGridSize sets the grid dimensions.
func WithGridSize(width, height int) Option {
	return func(c *Config) {
		c.Grid = Grid{Width: width, Height: height}
	}
}

// WithInterval sets the time between ticks.
func WithInterval(d time.Duration) Option {
	return func(c *Config) {
		c.Interval = d
	}
}

// WithTileSize sets the compute workgroup edge length.
func WithTileSize(n int) Option {
	return func(c *Config) {
		c.TileSize = n
	}
}

// WithCellScale sets the quad half-extent relative to one cell.
func WithCellScale(s float32) Option {
	return func(c *Config) {
		c.CellScale = s
	}
}

// WithClearColor sets the render pass background color.
func WithClearColor(col Color) Option {
	return func(c *Config) {
		c.ClearColor = col
	}
}

// WithSeed makes the random initial generation reproducible.
func WithSeed(seed uint64) Option {
	return func(c *Config) {
		c.Seed = seed
		c.Seeded = true
	}
}

// WithSPIRV enables naga WGSL-to-SPIR-V precompilation.
func WithSPIRV(enabled bool) Option {
	return func(c *Config) {
		c.PrecompileSPIRV = enabled
	}
}

// WithFenceTimeout sets how long a tick may wait for the previous one.
func WithFenceTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.FenceTimeout = d
	}
}

// Validate reports whether every field is within range.
func (c Config) Validate() error {
	if err := c.Grid.Validate(); err != nil {
		return err
	}
	if c.Interval <= 0 {
		return fmt.Errorf("%w: interval %v must be positive", ErrInvalidConfig, c.Interval)
	}
	if c.TileSize <= 0 || c.TileSize > MaxTileSize {
		return fmt.Errorf("%w: tile size %d not in [1, %d]", ErrInvalidConfig, c.TileSize, MaxTileSize)
	}
	if c.CellScale <= 0 || c.CellScale >= 1 {
		return fmt.Errorf("%w: cell scale %v not in (0, 1)", ErrInvalidConfig, c.CellScale)
	}
	if c.FenceTimeout <= 0 {
		return fmt.Errorf("%w: fence timeout %v must be positive", ErrInvalidConfig, c.FenceTimeout)
	}
	return nil
}
