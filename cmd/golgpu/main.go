// Command golgpu runs Conway's Game of Life on the GPU.
//
// By default it opens a gogpu window and draws every generation into the
// window surface; Space pauses and resumes. With -headless it runs on a
// standalone device into an offscreen texture, which is how -verify
// (compare against the CPU reference) and -snapshot (write a PNG) work.
//
//	golgpu -width 64 -height 64 -interval 100ms
//	golgpu -headless -generations 100 -verify -snapshot life.png
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/gogpu/gogpu"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/wgpu/hal"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/gogpu/life"
	"github.com/gogpu/life/internal/gpu"
	"github.com/gogpu/life/internal/metrics"
)

type options struct {
	cfg         life.Config
	headless    bool
	generations int
	verify      bool
	snapshot    string
	scale       int
	windowSize  int
	metricsAddr string
}

func main() {
	var (
		width       = flag.Int("width", life.DefaultWidth, "grid width in cells")
		height      = flag.Int("height", life.DefaultHeight, "grid height in cells")
		interval    = flag.Duration("interval", life.DefaultInterval, "time between generations")
		tile        = flag.Int("tile", life.DefaultTileSize, "compute workgroup edge length")
		seed        = flag.Int64("seed", -1, "random seed for the first generation (-1 picks one)")
		headless    = flag.Bool("headless", false, "run without a window on a standalone device")
		generations = flag.Int("generations", 0, "stop after this many generations (headless, 0 = until interrupted)")
		verify      = flag.Bool("verify", false, "compare the GPU result with the CPU reference (headless)")
		snapshot    = flag.String("snapshot", "", "write the final generation to this PNG file (headless)")
		scale       = flag.Int("scale", 16, "snapshot pixels per cell")
		windowSize  = flag.Int("size", 512, "window and offscreen target size in pixels")
		metricsAddr = flag.String("metrics-addr", "", "serve Prometheus metrics on this address")
		spirv       = flag.Bool("spirv", false, "precompile shaders to SPIR-V with naga")
		debug       = flag.Bool("debug", false, "enable debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	life.SetLogger(logger)

	opts := []life.Option{
		life.WithGridSize(*width, *height),
		life.WithInterval(*interval),
		life.WithTileSize(*tile),
		life.WithSPIRV(*spirv),
	}
	if *seed >= 0 {
		opts = append(opts, life.WithSeed(uint64(*seed)))
	}
	cfg, err := life.NewConfig(opts...)
	if err != nil {
		logger.Error("invalid configuration", "err", err)
		os.Exit(2)
	}

	o := options{
		cfg:         cfg,
		headless:    *headless,
		generations: *generations,
		verify:      *verify,
		snapshot:    *snapshot,
		scale:       *scale,
		windowSize:  *windowSize,
		metricsAddr: *metricsAddr,
	}
	if (o.verify || o.snapshot != "") && !o.headless {
		logger.Error("-verify and -snapshot require -headless")
		os.Exit(2)
	}

	if err := run(o); err != nil {
		logger.Error("golgpu failed", "err", err)
		os.Exit(1)
	}
}

func run(o options) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var collector *metrics.Collector
	if o.metricsAddr != "" {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		collector = metrics.New(reg)
		go func() {
			if err := metrics.Serve(ctx, o.metricsAddr, reg); err != nil {
				life.Logger().Warn("metrics endpoint stopped", "err", err)
			}
		}()
	}

	if o.headless {
		return runHeadless(ctx, o, collector)
	}
	return runWindow(o, collector)
}

func runHeadless(ctx context.Context, o options, collector *metrics.Collector) error {
	sim, err := gpu.NewStandaloneSimulation(o.cfg, gpu.DefaultTargetFormat)
	if err != nil {
		return err
	}
	defer func() { _ = sim.Close() }()
	if collector != nil {
		sim.SetObserver(collector)
	}

	dev, _ := sim.Device().HAL()
	size := uint32(o.windowSize) //nolint:gosec // flag value
	target, err := gpu.NewTarget(dev, size, size, sim.Format())
	if err != nil {
		return err
	}
	defer target.Destroy()

	var initial []uint32
	if o.verify {
		if initial, err = sim.ReadState(); err != nil {
			return fmt.Errorf("read initial generation: %w", err)
		}
	}

	err = sim.Run(ctx, target.View(), o.generations)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	life.Logger().Info("simulation stopped", "generations", sim.Step())

	if !o.verify && o.snapshot == "" && collector == nil {
		return nil
	}
	final, err := sim.ReadState()
	if err != nil {
		return fmt.Errorf("read final generation: %w", err)
	}
	if collector != nil {
		collector.ObservePopulation(final)
	}
	if o.verify {
		if err := verify(o.cfg, initial, final, sim.Step()); err != nil {
			return err
		}
	}
	if o.snapshot != "" {
		img, err := life.Snapshot(final, o.cfg.Grid, o.cfg.ClearColor)
		if err != nil {
			return err
		}
		if err := life.SavePNG(o.snapshot, life.Upscale(img, o.scale)); err != nil {
			return fmt.Errorf("write snapshot: %w", err)
		}
		life.Logger().Info("snapshot saved", "path", o.snapshot, "population", life.Population(final))
	}
	return nil
}

// verify replays steps generations from initial on the CPU and compares
// the result with the GPU's.
func verify(cfg life.Config, initial, final []uint32, steps uint64) error {
	ref, err := life.NewReference(cfg, 0)
	if err != nil {
		return err
	}
	defer ref.Close()

	want, err := ref.Run(initial, int(steps)) //nolint:gosec // bounded by -generations
	if err != nil {
		return fmt.Errorf("reference: %w", err)
	}
	if !slices.Equal(want, final) {
		diff := 0
		for i := range want {
			if want[i] != final[i] {
				diff++
			}
		}
		return fmt.Errorf("verify: GPU and CPU disagree on %d of %d cells after %d generations", diff, len(want), steps)
	}
	life.Logger().Info("verify: GPU matches CPU reference", "generations", steps, "population", life.Population(final))
	return nil
}

func runWindow(o options, collector *metrics.Collector) error {
	app := gogpu.NewApp(gogpu.DefaultConfig().
		WithTitle(fmt.Sprintf("Game of Life %s", o.cfg.Grid)).
		WithSize(o.windowSize, o.windowSize).
		WithContinuousRender(false))

	var (
		sim       *gpu.Simulation
		animToken *gogpu.AnimationToken
		failed    bool
	)
	pacer := life.NewPacer(o.cfg.Interval)

	app.OnDraw(func(dc *gogpu.Context) {
		if failed || dc.Width() <= 0 || dc.Height() <= 0 {
			return
		}
		if sim == nil {
			var err error
			if sim, err = newWindowSimulation(app, o.cfg); err != nil {
				life.Logger().Error("cannot start simulation", "err", err)
				failed = true
				app.Quit()
				return
			}
			if collector != nil {
				sim.SetObserver(collector)
			}
			animToken = app.StartAnimation()
			life.Logger().Info("simulation started (Space to pause/resume)")
		}

		view, err := surfaceTarget(dc.SurfaceView())
		if err != nil {
			life.Logger().Error("cannot draw to surface", "err", err)
			failed = true
			app.Quit()
			return
		}
		if view == nil {
			return
		}
		if pacer.Due(time.Now()) {
			err = sim.Tick(view)
		} else {
			err = sim.Redraw(view)
		}
		if err != nil {
			life.Logger().Error("frame failed", "step", sim.Step(), "err", err)
			failed = true
			app.Quit()
		}
	})

	app.EventSource().OnKeyPress(func(key gpucontext.Key, _ gpucontext.Modifiers) {
		if key != gpucontext.KeySpace {
			return
		}
		pacer.Toggle()
		life.Logger().Info("pause toggled", "paused", pacer.Paused())
	})

	app.OnClose(func() {
		if animToken != nil {
			animToken.Stop()
		}
		if sim != nil {
			_ = sim.Close()
		}
	})

	if err := app.Run(); err != nil {
		return err
	}
	if failed {
		return errors.New("simulation stopped after an error")
	}
	return nil
}

// surfaceTarget converts the host's surface view to a HAL texture view.
// A nil view means no surface this frame and is not an error.
func surfaceTarget(surface any) (hal.TextureView, error) {
	if surface == nil {
		return nil, nil
	}
	view, ok := surface.(hal.TextureView)
	if !ok {
		return nil, fmt.Errorf("surface view %T is not a hal.TextureView", surface)
	}
	return view, nil
}

func newWindowSimulation(app *gogpu.App, cfg life.Config) (*gpu.Simulation, error) {
	provider := app.GPUContextProvider()
	if provider == nil {
		return nil, gpu.ErrNoGPU
	}
	dev, err := gpu.NewDeviceFromProvider(provider)
	if err != nil {
		return nil, err
	}
	format := gpu.SurfaceFormat(provider)
	life.Logger().Debug("surface format", "format", format)
	return gpu.NewSimulation(dev, cfg, format)
}
