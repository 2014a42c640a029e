package main

import (
	"fmt"
	"log"
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/olivierh59500/particles/packed"
	"github.com/olivierh59500/particles/palette"
	"github.com/olivierh59500/particles/sim"
)

// View constants
const (
	MinZoom   = 0.1 // Limit zoom out to prevent excessive tiling
	ZoomStep  = 0.1
	RulesFile = "rules.json"
)

// Simulation wraps a particle system as an Ebitengine game. It steps the
// system once per tick and draws from the packed buffer only.
type Simulation struct {
	Width, Height  float64
	System         *sim.System
	Config         sim.Config
	Palette        palette.Palette
	Zoom           float64
	CamX, CamY     float64 // Camera pan
	PrevMX, PrevMY float64 // Previous mouse position for drag
	rng            *rand.Rand
	logger         *log.Logger
}

// NewSimulation builds the system and starts it.
func NewSimulation(width, height float64, cfg sim.Config, opts []sim.Option, logger *log.Logger) (*Simulation, error) {
	opts = append(opts, sim.WithLogger(logger))
	system, err := sim.New(cfg, opts...)
	if err != nil {
		return nil, err
	}
	system.Start()

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}
	return &Simulation{
		Width:   width,
		Height:  height,
		System:  system,
		Config:  system.Config(),
		Palette: palette.New(system.Colors()),
		Zoom:    1.0,
		rng:     rand.New(rand.NewSource(seed)),
		logger:  logger,
	}, nil
}

// Update is called each tick by Ebitengine
func (s *Simulation) Update() error {
	if err := s.handleInput(); err != nil {
		return err
	}
	s.System.Step()
	return nil
}

// Draw is called each frame by Ebitengine
func (s *Simulation) Draw(screen *ebiten.Image) {
	screenWidth := float64(screen.Bounds().Dx())
	screenHeight := float64(screen.Bounds().Dy())

	// Calculate visible world range
	visibleMinX := s.CamX
	visibleMaxX := s.CamX + screenWidth/s.Zoom
	visibleMinY := s.CamY
	visibleMaxY := s.CamY + screenHeight/s.Zoom

	// Calculate tile ranges
	dxFrom := math.Floor(visibleMinX / s.Width)
	dxTo := math.Ceil(visibleMaxX / s.Width)
	dyFrom := math.Floor(visibleMinY / s.Height)
	dyTo := math.Ceil(visibleMaxY / s.Height)

	buf := s.System.Buffer()
	floats, ints := buf.Floats(), buf.Ints()
	stride := buf.Stride()

	for dx := dxFrom; dx < dxTo; dx++ {
		for dy := dyFrom; dy < dyTo; dy++ {
			offsetX := dx * s.Width
			offsetY := dy * s.Height
			for base := 0; base < buf.Len(); base += stride {
				wx := packed.Wrap(floats[base+packed.OffsetX])*s.Width + offsetX
				wy := packed.Wrap(floats[base+packed.OffsetY])*s.Height + offsetY
				r := float64(floats[base+packed.OffsetRadius]) * s.Zoom
				sx := s.worldToScreenX(wx)
				sy := s.worldToScreenY(wy)
				if sx >= -r && sx <= screenWidth+r && sy >= -r && sy <= screenHeight+r {
					col := s.Palette.At(ints[base+packed.OffsetColor])
					vector.DrawFilledCircle(screen, float32(sx), float32(sy), float32(r), col, true)
				}
			}
		}
	}

	state := "paused"
	if s.System.Running() {
		state = "running"
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf("TPS %.0f  FPS %.0f\n%d particles, %d colors\ntick %d (%s)\nSPACE pause  R reseed  S save rules",
		ebiten.ActualTPS(), ebiten.ActualFPS(), s.System.Count(), s.System.Colors(), s.System.Ticks(), state))
}

// Layout returns the screen size
func (s *Simulation) Layout(outsideWidth, outsideHeight int) (int, int) {
	return int(s.Width), int(s.Height)
}

// handleInput processes keyboard and mouse input
func (s *Simulation) handleInput() error {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		s.toggle()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := s.reseed(); err != nil {
			return err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		s.saveRules(RulesFile)
	}

	// Zoom
	_, wheelY := ebiten.Wheel()
	s.Zoom += wheelY * ZoomStep
	if s.Zoom < MinZoom {
		s.Zoom = MinZoom
	}

	// Pan (drag)
	mx, my := ebiten.CursorPosition()
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		s.CamX -= (float64(mx) - s.PrevMX) / s.Zoom
		s.CamY -= (float64(my) - s.PrevMY) / s.Zoom
	}
	s.PrevMX = float64(mx)
	s.PrevMY = float64(my)
	return nil
}

// toggle flips between running and paused
func (s *Simulation) toggle() {
	if s.System.Running() {
		s.System.Pause()
	} else {
		s.System.Start()
	}
}

// reseed replaces the system with a fresh random population and rule
// matrix, keeping every other parameter and the running state.
func (s *Simulation) reseed() error {
	cfg := s.Config
	cfg.Seed = s.rng.Int63()
	system, err := sim.New(cfg, sim.WithLogger(s.logger))
	if err != nil {
		return err
	}
	if s.System.Running() {
		system.Start()
	}
	s.System = system
	s.logger.Printf("reseeded with seed %d", cfg.Seed)
	return nil
}

// saveRules writes the current rule matrix to filename
func (s *Simulation) saveRules(filename string) {
	if err := s.System.Rules().Save(filename); err != nil {
		s.logger.Printf("saving rules: %v", err)
		return
	}
	s.logger.Printf("rules saved to %s", filename)
}

// worldToScreenX/Y for camera
func (s *Simulation) worldToScreenX(wx float64) float64 {
	return (wx - s.CamX) * s.Zoom
}
func (s *Simulation) worldToScreenY(wy float64) float64 {
	return (wy - s.CamY) * s.Zoom
}
