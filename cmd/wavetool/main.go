// wavetool is a CLI utility for inspecting and editing ocean wave parameters.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/Faultbox/oceanwaves/internal/config"
	"github.com/Faultbox/oceanwaves/internal/logger"
	"github.com/Faultbox/oceanwaves/internal/ocean"
	"github.com/Faultbox/oceanwaves/internal/wavestore"
)

var errUsage = errors.New("usage")

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(1)
	}

	err := run(os.Args[1], os.Args[2:], os.Stdout)
	if errors.Is(err, errUsage) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(command string, args []string, out io.Writer) error {
	switch command {
	case "init":
		return cmdInit(args, out)
	case "config":
		return cmdConfig(args, out)
	case "show", "ls":
		return cmdShow(args, out)
	case "set":
		return cmdSet(args, out)
	case "sample":
		return cmdSample(args, out)
	case "mesh":
		return cmdMesh(args, out)
	case "serve":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return cmdServe(ctx, args, out)
	case "help", "-h", "--help":
		printUsage(out)
		return nil
	default:
		printUsage(os.Stderr)
		return fmt.Errorf("%w: unknown command %q", errUsage, command)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `wavetool - ocean wave parameter utility

Usage:
  wavetool <command> [options]

Commands:
  init   [-n N] [-force]            Write a seed set of N wave files
  config [-o FILE] [-save]          Print the resolved config, or write it out
  show                              Print every wave's parameters
  set    <wave> <field> <value>     Change one parameter and save
  sample [-frame F] <x> <z>         Print the height and per-wave terms at a grid point
  mesh   [-frame F] [-quad K]       Rebuild the mesh and print its summary
  serve  [-addr A] [-every N] [-fps F]
                                    Run headless and stream heights over websocket

Common options:
  -config <file>   Config file (default: ./config.yaml or user config dir)
  -waves <dir>     Wave directory (overrides config)
  -debug           Debug logging

Fields: amplitude (amp), direction.x (dx), direction.y (dy), frequency (freq), phase

Examples:
  wavetool init -n 8
  wavetool set 2 amp 1.5
  wavetool sample -frame 10 3 4
  wavetool serve -addr :8080`)
}

// common holds the options every command accepts.
type common struct {
	configPath string
	waveDir    string
	debug      bool
}

func newFlagSet(name string) (*flag.FlagSet, *common) {
	c := &common{}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&c.configPath, "config", "", "Path to config file")
	fs.StringVar(&c.waveDir, "waves", "", "Directory holding per-wave parameter files")
	fs.BoolVar(&c.debug, "debug", false, "Enable debug logging")
	return fs, c
}

// load resolves the config, initialises logging and opens the wave store.
func (c *common) load() (*config.Config, *wavestore.Dir, error) {
	cfg, err := config.LoadFile(c.configPath)
	if err != nil {
		return nil, nil, err
	}
	if c.waveDir != "" {
		cfg.Simulation.WaveDir = c.waveDir
	}
	level := cfg.Logging.Level
	if c.debug {
		level = "debug"
	}
	if err := logger.Init(level, cfg.Logging.LogFile); err != nil {
		return nil, nil, err
	}
	return cfg, wavestore.NewDir(cfg.Simulation.WaveDir), nil
}

// simulation builds a simulation over the configured wave directory.
func (c *common) simulation() (*config.Config, *ocean.Simulation, error) {
	cfg, store, err := c.load()
	if err != nil {
		return nil, nil, err
	}
	sim, err := ocean.New(cfg.OceanConfig(), store, ocean.WithLogger(logger.Named("ocean")))
	if err != nil {
		return nil, nil, err
	}
	return cfg, sim, nil
}
