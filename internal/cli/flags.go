// Package cli holds the command line options shared by the entry points.
package cli

import (
	"flag"
	"io"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/simulation"
	golog "github.com/tochemey/goakt/v3/log"
)

// Options are the flags common to every frontend. A flag given on the
// command line wins over the config file, which wins over the defaults.
type Options struct {
	ConfigFile   string
	Boids        int
	MaxSpeed     float64
	MinSpeed     float64
	VisibleRange float64
	Debug        bool

	fs *flag.FlagSet
}

// Register declares the common flags on fs.
func Register(fs *flag.FlagSet) *Options {
	d := simulation.DefaultConfig()
	o := &Options{fs: fs}
	fs.StringVar(&o.ConfigFile, "config", "", "path to a .json or .toml configuration file")
	fs.IntVar(&o.Boids, "boids", d.BoidCount, "number of boids")
	fs.Float64Var(&o.MaxSpeed, "max-speed", d.MaxSpeed, "maximum boid speed")
	fs.Float64Var(&o.MinSpeed, "min-speed", d.MinSpeed, "minimum boid speed")
	fs.Float64Var(&o.VisibleRange, "visible-range", d.VisibleRange, "how far a boid sees its neighbours")
	fs.BoolVar(&o.Debug, "debug", false, "log at debug level")
	return o
}

// Config loads the config file if any, then applies the flags set explicitly.
func (o *Options) Config() (*simulation.Config, error) {
	cfg := simulation.DefaultConfig()
	if o.ConfigFile != "" {
		var err error
		if cfg, err = simulation.LoadConfig(o.ConfigFile); err != nil {
			return nil, err
		}
	}
	o.fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "boids":
			cfg.BoidCount = o.Boids
		case "max-speed":
			cfg.MaxSpeed = o.MaxSpeed
		case "min-speed":
			cfg.MinSpeed = o.MinSpeed
		case "visible-range":
			cfg.VisibleRange = o.VisibleRange
		}
	})
	return cfg, nil
}

// Logger returns the goakt logger writing to w at the requested level.
func (o *Options) Logger(w io.Writer) golog.Logger {
	level := golog.InfoLevel
	if o.Debug {
		level = golog.DebugLevel
	}
	return golog.New(level, w)
}
