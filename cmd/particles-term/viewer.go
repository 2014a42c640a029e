package main

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/gdamore/tcell/v2"

	"github.com/olivierh59500/particles/packed"
	"github.com/olivierh59500/particles/palette"
	"github.com/olivierh59500/particles/sim"
)

// glyphs by particle count in a cell
var glyphs = []rune{' ', '·', '•', '●'}

// Viewer draws a system's packed buffer onto a terminal screen, one cell per
// particle, wrapping positions onto the visible area.
type Viewer struct {
	screen  tcell.Screen
	system  *sim.System
	cfg     sim.Config
	palette palette.Palette
	rng     *rand.Rand
	logger  *log.Logger

	width, height int
	counts        []int
	colors        []uint32
}

// NewViewer wraps an initialized screen.
func NewViewer(screen tcell.Screen, system *sim.System, logger *log.Logger, seed int64) *Viewer {
	v := &Viewer{
		screen:  screen,
		system:  system,
		cfg:     system.Config(),
		palette: palette.New(system.Colors()),
		rng:     rand.New(rand.NewSource(seed)),
		logger:  logger,
	}
	v.handleResize()
	return v
}

func (v *Viewer) handleResize() {
	v.width, v.height = v.screen.Size()
	// last row is the status line
	cells := v.width * max(v.height-1, 0)
	v.counts = make([]int, cells)
	v.colors = make([]uint32, cells)
	v.screen.Sync()
}

// cellFor maps a buffer position to a cell of a w×h grid.
func cellFor(x, y float32, w, h int) (int, int) {
	cx := int(packed.Wrap(x) * float64(w))
	cy := int(packed.Wrap(y) * float64(h))
	return min(cx, w-1), min(cy, h-1)
}

func (v *Viewer) draw() {
	v.screen.Clear()
	rows := v.height - 1
	if v.width <= 0 || rows <= 0 {
		v.screen.Show()
		return
	}

	clear(v.counts)
	buf := v.system.Buffer()
	floats, ints := buf.Floats(), buf.Ints()
	for base := 0; base < buf.Len(); base += buf.Stride() {
		cx, cy := cellFor(floats[base+packed.OffsetX], floats[base+packed.OffsetY], v.width, rows)
		i := cy*v.width + cx
		v.counts[i]++
		v.colors[i] = ints[base+packed.OffsetColor]
	}

	for i, n := range v.counts {
		if n == 0 {
			continue
		}
		r, g, b := v.palette.RGB(v.colors[i])
		style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
		v.screen.SetContent(i%v.width, i/v.width, glyphs[min(n, len(glyphs)-1)], nil, style)
	}

	state := "paused"
	if v.system.Running() {
		state = "running"
	}
	status := fmt.Sprintf(" %d particles  tick %d  %s  [space] pause  [r] reseed  [q] quit", v.system.Count(), v.system.Ticks(), state)
	for x, ch := range []rune(status) {
		if x >= v.width {
			break
		}
		v.screen.SetContent(x, rows, ch, nil, tcell.StyleDefault.Reverse(true))
	}
	v.screen.Show()
}

// handleInput returns false when the viewer should exit.
func (v *Viewer) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune {
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				if v.system.Running() {
					v.system.Pause()
				} else {
					v.system.Start()
				}
			case 'r':
				v.reseed()
			}
		}

	case *tcell.EventResize:
		v.handleResize()
	}
	return true
}

func (v *Viewer) reseed() {
	cfg := v.cfg
	cfg.Seed = v.rng.Int63()
	system, err := sim.New(cfg, sim.WithLogger(v.logger))
	if err != nil {
		v.logger.Printf("reseed: %v", err)
		return
	}
	if v.system.Running() {
		system.Start()
	}
	v.system = system
	v.logger.Printf("reseeded with seed %d", cfg.Seed)
}
