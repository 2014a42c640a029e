// Package config loads simulation and viewer settings from INI (gcfg) or
// TOML files. Keys missing from a file keep their default values.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/gcfg.v1"

	"github.com/olivierh59500/particles/rules"
	"github.com/olivierh59500/particles/sim"
)

// ErrFormat is returned for files whose extension is not recognized.
var ErrFormat = errors.New("unsupported config format")

// Simulation mirrors sim.Config plus an optional rule matrix file.
type Simulation struct {
	Count            int     `toml:"count" gcfg:"count"`
	DT               float64 `toml:"dt" gcfg:"dt"`
	FrictionHalfLife float64 `toml:"friction-half-life" gcfg:"friction-half-life"`
	RMax             float64 `toml:"rmax" gcfg:"rmax"`
	Colors           int     `toml:"colors" gcfg:"colors"`
	ForceFactor      float64 `toml:"force-factor" gcfg:"force-factor"`
	Radius           float64 `toml:"radius" gcfg:"radius"`
	Seed             int64   `toml:"seed" gcfg:"seed"`
	Placement        string  `toml:"placement" gcfg:"placement"`
	Workers          int     `toml:"workers" gcfg:"workers"`

	// Rules names a JSON matrix written by rules.Matrix.Save.
	Rules string `toml:"rules" gcfg:"rules"`
}

// View holds window and terminal viewer settings.
type View struct {
	Width  int `toml:"width" gcfg:"width"`
	Height int `toml:"height" gcfg:"height"`
	TPS    int `toml:"tps" gcfg:"tps"`
}

// File is the top-level layout of a config file.
type File struct {
	Simulation Simulation `toml:"simulation"`
	View       View       `toml:"view"`
}

// Default returns the settings used when no file is given.
func Default() *File {
	d := sim.DefaultConfig()
	return &File{
		Simulation: Simulation{
			Count:            d.Count,
			DT:               d.DT,
			FrictionHalfLife: d.FrictionHalfLife,
			RMax:             d.RMax,
			Colors:           d.Colors,
			ForceFactor:      d.ForceFactor,
			Radius:           d.Radius,
			Seed:             d.Seed,
			Placement:        d.Placement,
			Workers:          d.Workers,
		},
		View: View{
			Width:  800,
			Height: 800,
			TPS:    60,
		},
	}
}

// Load reads path over Default. The format is chosen by extension: .toml
// for TOML, .ini, .cfg, .conf or .gcfg for git-config style INI.
func Load(path string) (*File, error) {
	f := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		md, err := toml.DecodeFile(path, f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("%s: unknown keys %v", path, undecoded)
		}
	case ".ini", ".cfg", ".conf", ".gcfg":
		if err := gcfg.ReadFileInto(f, path); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrFormat, path)
	}
	return f, nil
}

// SimConfig converts the simulation section.
func (f *File) SimConfig() sim.Config {
	s := f.Simulation
	return sim.Config{
		Count:            s.Count,
		DT:               s.DT,
		FrictionHalfLife: s.FrictionHalfLife,
		RMax:             s.RMax,
		Colors:           s.Colors,
		ForceFactor:      s.ForceFactor,
		Radius:           s.Radius,
		Seed:             s.Seed,
		Placement:        s.Placement,
		Workers:          s.Workers,
	}
}

// SimOptions returns the construction options implied by the file, loading
// the rule matrix when one is named.
func (f *File) SimOptions() ([]sim.Option, error) {
	if f.Simulation.Rules == "" {
		return nil, nil
	}
	mx, err := rules.Load(f.Simulation.Rules)
	if err != nil {
		return nil, err
	}
	return []sim.Option{sim.WithRules(mx)}, nil
}
