package config

import (
	"flag"
)

// Flags binds the shared command-line overrides. Only flags that were set
// explicitly override values from the config file.
type Flags struct {
	fs *flag.FlagSet

	path      *string
	count     *int
	colors    *int
	dt        *float64
	rMax      *float64
	friction  *float64
	force     *float64
	radius    *float64
	seed      *int64
	placement *string
	workers   *int
	rules     *string
	width     *int
	height    *int
	tps       *int
}

// BindFlags registers the flags on fs with defaults from Default.
func BindFlags(fs *flag.FlagSet) *Flags {
	d := Default()
	return &Flags{
		fs:        fs,
		path:      fs.String("config", "", "Config file (.toml, .ini, .cfg, .conf or .gcfg)"),
		count:     fs.Int("n", d.Simulation.Count, "Number of particles"),
		colors:    fs.Int("m", d.Simulation.Colors, "Number of particle colors"),
		dt:        fs.Float64("dt", d.Simulation.DT, "Integration time step"),
		rMax:      fs.Float64("rmax", d.Simulation.RMax, "Interaction radius (normalized)"),
		friction:  fs.Float64("friction", d.Simulation.FrictionHalfLife, "Friction half-life"),
		force:     fs.Float64("force", d.Simulation.ForceFactor, "Force factor"),
		radius:    fs.Float64("radius", d.Simulation.Radius, "Particle render radius"),
		seed:      fs.Int64("seed", d.Simulation.Seed, "Random seed (0 = clock)"),
		placement: fs.String("placement", d.Simulation.Placement, "Initial placement: uniform or perlin"),
		workers:   fs.Int("workers", d.Simulation.Workers, "Goroutines for the force phase"),
		rules:     fs.String("rules", d.Simulation.Rules, "Rule matrix JSON file"),
		width:     fs.Int("width", d.View.Width, "Window width"),
		height:    fs.Int("height", d.View.Height, "Window height"),
		tps:       fs.Int("tps", d.View.TPS, "Simulation ticks per second"),
	}
}

// Resolve loads the config file, if any, and applies explicitly set flags.
// It must be called after fs.Parse.
func (fl *Flags) Resolve() (*File, error) {
	f := Default()
	if *fl.path != "" {
		var err error
		if f, err = Load(*fl.path); err != nil {
			return nil, err
		}
	}

	fl.fs.Visit(func(set *flag.Flag) {
		switch set.Name {
		case "n":
			f.Simulation.Count = *fl.count
		case "m":
			f.Simulation.Colors = *fl.colors
		case "dt":
			f.Simulation.DT = *fl.dt
		case "rmax":
			f.Simulation.RMax = *fl.rMax
		case "friction":
			f.Simulation.FrictionHalfLife = *fl.friction
		case "force":
			f.Simulation.ForceFactor = *fl.force
		case "radius":
			f.Simulation.Radius = *fl.radius
		case "seed":
			f.Simulation.Seed = *fl.seed
		case "placement":
			f.Simulation.Placement = *fl.placement
		case "workers":
			f.Simulation.Workers = *fl.workers
		case "rules":
			f.Simulation.Rules = *fl.rules
		case "width":
			f.View.Width = *fl.width
		case "height":
			f.View.Height = *fl.height
		case "tps":
			f.View.TPS = *fl.tps
		}
	})
	return f, nil
}
