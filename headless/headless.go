// Package headless runs a particle system without a window and reports
// energy statistics decoded from its packed buffer.
package headless

import (
	"context"
	"fmt"
	"io"
	"log"
	"math"

	"github.com/guptarohit/asciigraph"

	"github.com/olivierh59500/particles/packed"
	"github.com/olivierh59500/particles/sim"
)

// historyLimit caps the kinetic energy samples kept for the exit chart.
const historyLimit = 2000

// Stats summarizes one frame decoded from a packed buffer.
type Stats struct {
	MeanSpeed     float64
	KineticEnergy float64 // unit mass per particle
}

// Measure decodes velocities from the buffer without touching the system.
func Measure(buf *packed.Buffer) Stats {
	floats := buf.Floats()
	var st Stats
	var speed float64
	for base := 0; base < buf.Len(); base += buf.Stride() {
		vx := float64(floats[base+packed.OffsetVX])
		vy := float64(floats[base+packed.OffsetVY])
		v2 := vx*vx + vy*vy
		st.KineticEnergy += 0.5 * v2
		speed += math.Sqrt(v2)
	}
	if n := buf.Count(); n > 0 {
		st.MeanSpeed = speed / float64(n)
	}
	return st
}

// Run steps the system until maxTicks (0 = until ctx is done),
// logging every logEvery ticks, then plots the kinetic energy to out.
func Run(ctx context.Context, system *sim.System, maxTicks, logEvery int, logger *log.Logger, out io.Writer) []float64 {
	system.Start()
	history := make([]float64, 0, min(max(maxTicks, 1), historyLimit))

	for tick := 1; maxTicks == 0 || tick <= maxTicks; tick++ {
		if ctx.Err() != nil {
			logger.Printf("interrupted after %d ticks", tick-1)
			break
		}
		system.Step()

		st := Measure(system.Buffer())
		if len(history) == historyLimit {
			history = append(history[:0], history[1:]...)
		}
		history = append(history, st.KineticEnergy)

		if logEvery > 0 && tick%logEvery == 0 {
			logger.Printf("tick %d: mean speed %.6f, kinetic energy %.6f", tick, st.MeanSpeed, st.KineticEnergy)
		}
	}

	if len(history) > 1 {
		fmt.Fprintln(out, asciigraph.Plot(history,
			asciigraph.Height(10),
			asciigraph.Width(60),
			asciigraph.Caption(fmt.Sprintf("kinetic energy, %d particles", system.Count()))))
	}
	return history
}
