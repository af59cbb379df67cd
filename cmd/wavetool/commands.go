package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/oceanwaves/internal/config"
	"github.com/Faultbox/oceanwaves/internal/heightfield"
	"github.com/Faultbox/oceanwaves/internal/logger"
	"github.com/Faultbox/oceanwaves/internal/stream"
	"github.com/Faultbox/oceanwaves/internal/surface"
	"github.com/Faultbox/oceanwaves/internal/wave"
)

func cmdInit(args []string, out io.Writer) error {
	fs, c := newFlagSet("init")
	n := fs.Int("n", 0, "Number of waves (0 = config value)")
	force := fs.Bool("force", false, "Overwrite existing wave files")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	cfg, store, err := c.load()
	if err != nil {
		return err
	}
	count := cfg.Simulation.Waves
	if *n > 0 {
		if *n < count {
			return fmt.Errorf("%w: -n %d is below simulation.waves %d, later loads would fail",
				errUsage, *n, count)
		}
		count = *n
	}

	if !*force {
		if _, err := os.Stat(store.FilePath(0)); err == nil {
			return fmt.Errorf("%s already exists, use -force to overwrite", store.FilePath(0))
		}
	}

	set := wave.NewSet(count)
	for i, w := range wave.DefaultWaves(count) {
		set.Replace(i, w)
	}
	if err := set.Save(store); err != nil {
		return err
	}
	logger.Info("wave files written", zap.String("dir", store.Path), zap.Int("count", count))
	fmt.Fprintf(out, "Wrote %d waves to %s\n", count, store.Path)
	return nil
}

func cmdConfig(args []string, out io.Writer) error {
	fs, c := newFlagSet("config")
	path := fs.String("o", "", "Write the resolved config to this file")
	save := fs.Bool("save", false, "Write the resolved config to the user config directory")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	cfg, _, err := c.load()
	if err != nil {
		return err
	}

	switch {
	case *save:
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Fprintf(out, "Wrote %s\n", filepath.Join(config.ConfigDir(), "config.yaml"))
	case *path != "":
		if err := cfg.SaveTo(*path); err != nil {
			return err
		}
		fmt.Fprintf(out, "Wrote %s\n", *path)
	default:
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	}
	return nil
}

func cmdShow(args []string, out io.Writer) error {
	fs, c := newFlagSet("show")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	_, sim, err := c.simulation()
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "wave\tamplitude\tdir_x\tdir_y\tfrequency\tphase\t")
	for i, w := range sim.Waves() {
		fmt.Fprintf(tw, "%d\t%g\t%g\t%g\t%g\t%g\t\n",
			i+1, w.Amplitude, w.Direction.X(), w.Direction.Y(), w.Frequency, w.Phase)
	}
	return tw.Flush()
}

func cmdSet(args []string, out io.Writer) error {
	fs, c := newFlagSet("set")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() != 3 {
		return fmt.Errorf("%w: wavetool set <wave> <field> <value>", errUsage)
	}

	n, err := strconv.Atoi(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("wave number %q: %w", fs.Arg(0), err)
	}
	field, err := wave.ParseField(fs.Arg(1))
	if err != nil {
		return err
	}
	v, err := strconv.ParseFloat(fs.Arg(2), 32)
	if err != nil {
		return fmt.Errorf("value %q: %w", fs.Arg(2), err)
	}

	_, sim, err := c.simulation()
	if err != nil {
		return err
	}
	if err := sim.SetWave(n, field, float32(v)); err != nil {
		return err
	}
	if err := sim.Save(); err != nil {
		return err
	}
	fmt.Fprintf(out, "wave %d %s = %g\n", n, field, float32(v))
	return nil
}

func cmdSample(args []string, out io.Writer) error {
	fs, c := newFlagSet("sample")
	frame := fs.Int("frame", 0, "Frame number")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("%w: wavetool sample [-frame F] <x> <z>", errUsage)
	}
	x, errX := strconv.Atoi(fs.Arg(0))
	z, errZ := strconv.Atoi(fs.Arg(1))
	if err := errors.Join(errX, errZ); err != nil {
		return fmt.Errorf("grid point: %w", err)
	}

	cfg, sim, err := c.simulation()
	if err != nil {
		return err
	}
	size := cfg.Simulation.GridSize
	if x < 0 || x >= size || z < 0 || z >= size {
		return fmt.Errorf("grid point (%d, %d) outside 0..%d", x, z, size-1)
	}

	dt := cfg.Simulation.TimeStep
	waves := sim.Waves()
	for i, w := range waves {
		fmt.Fprintf(out, "wave %d: %+.6f\n", i+1, heightfield.Contribution(w, x, z, *frame, dt))
	}
	fmt.Fprintf(out, "height(%d, %d) @ frame %d = %+.6f\n", x, z, *frame,
		heightfield.WaveHeight(waves, x, z, *frame, dt))
	return nil
}

func cmdMesh(args []string, out io.Writer) error {
	fs, c := newFlagSet("mesh")
	frame := fs.Int("frame", 0, "Frame number")
	quad := fs.Int("quad", -1, "Print the vertices of this quad")
	workers := fs.Int("workers", 0, "Mesh rebuild goroutines")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	cfg, store, err := c.load()
	if err != nil {
		return err
	}
	oc := cfg.OceanConfig()

	set := wave.NewSet(oc.Waves)
	if err := set.Load(store); err != nil {
		return err
	}
	field, err := heightfield.New(oc.GridSize)
	if err != nil {
		return err
	}
	mesher, err := surface.NewMesher(oc.Resolution, oc.GridSize, oc.TimeStep, surface.WithWorkers(*workers))
	if err != nil {
		return err
	}

	start := time.Now()
	field.Recompute(set, *frame, oc.TimeStep)
	m := mesher.Rebuild(field)
	elapsed := time.Since(start)

	lo, hi := field.Range()
	fmt.Fprintf(out, "frame:     %d\n", *frame)
	fmt.Fprintf(out, "quads:     %d (%dx%d)\n", m.QuadCount(), m.Resolution, m.Resolution)
	fmt.Fprintf(out, "vertices:  %d\n", len(m.Vertices))
	fmt.Fprintf(out, "indices:   %d\n", len(m.Indices))
	fmt.Fprintf(out, "heights:   %.4f .. %.4f\n", lo, hi)
	fmt.Fprintf(out, "rebuild:   %s\n", elapsed)

	if *quad >= 0 {
		if *quad >= m.QuadCount() {
			return fmt.Errorf("quad %d outside 0..%d", *quad, m.QuadCount()-1)
		}
		for i, v := range m.Quad(*quad) {
			fmt.Fprintf(out, "v%d pos(%.3f, %.4f, %.3f) n(%.4f, %.4f, %.4f) uv(%.3f, %.3f)\n", i,
				v.Position.X(), v.Position.Y(), v.Position.Z(),
				v.Normal.X(), v.Normal.Y(), v.Normal.Z(),
				v.UV.X(), v.UV.Y())
		}
	}
	return nil
}

func cmdServe(ctx context.Context, args []string, out io.Writer) error {
	fs, c := newFlagSet("serve")
	addr := fs.String("addr", "", "Listen address (default from config)")
	every := fs.Int("every", 0, "Send every Nth frame (default from config)")
	fps := fs.Int("fps", 30, "Simulation ticks per second")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if *fps < 1 {
		return fmt.Errorf("%w: -fps must be positive", errUsage)
	}

	cfg, sim, err := c.simulation()
	if err != nil {
		return err
	}
	if *addr != "" {
		cfg.Stream.Addr = *addr
	}
	if *every > 0 {
		cfg.Stream.Every = *every
	}

	hub := stream.NewHub(cfg.Stream.Every, sim, logger.Named("stream"))
	fmt.Fprintf(out, "Streaming on ws://%s%s\n", cfg.Stream.Addr, cfg.Stream.Path)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return hub.ListenAndServe(ctx, cfg.Stream.Addr, cfg.Stream.Path)
	})
	g.Go(func() error {
		return sim.Run(ctx, time.Second/time.Duration(*fps), hub)
	})

	err = g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
