package headless

import (
	"bytes"
	"context"
	"log"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olivierh59500/particles/packed"
	"github.com/olivierh59500/particles/sim"
)

func TestMeasure(t *testing.T) {
	buf := packed.New(2)
	buf.Put(0, packed.Record{VX: 3, VY: 4})
	buf.Put(1, packed.Record{VX: 0, VY: -1})

	st := Measure(buf)
	assert.InDelta(t, 3.0, st.MeanSpeed, 1e-9)
	assert.InDelta(t, 0.5*25+0.5*1, st.KineticEnergy, 1e-9)
}

func TestMeasureEmpty(t *testing.T) {
	st := Measure(packed.New(0))
	assert.Zero(t, st.MeanSpeed)
	assert.Zero(t, st.KineticEnergy)
}

func newSystem(t *testing.T, count int) *sim.System {
	t.Helper()
	cfg := sim.DefaultConfig()
	cfg.Count = count
	cfg.Seed = 5
	s, err := sim.New(cfg)
	require.NoError(t, err)
	return s
}

func TestRunStepsAndReports(t *testing.T) {
	s := newSystem(t, 60)
	var logs, out bytes.Buffer

	history := Run(context.Background(), s, 25, 10, log.New(&logs, "", 0), &out)

	assert.Len(t, history, 25)
	assert.Equal(t, uint64(25), s.Ticks())
	assert.True(t, s.Running())
	for _, e := range history {
		assert.False(t, math.IsNaN(e))
		assert.GreaterOrEqual(t, e, 0.0)
	}
	assert.Contains(t, logs.String(), "tick 10:")
	assert.Contains(t, logs.String(), "tick 20:")
	assert.NotContains(t, logs.String(), "tick 25:")
	assert.Contains(t, out.String(), "kinetic energy, 60 particles")
}

func TestRunStopsOnCancel(t *testing.T) {
	s := newSystem(t, 10)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var logs, out bytes.Buffer
	history := Run(ctx, s, 0, 0, log.New(&logs, "", 0), &out)

	assert.Empty(t, history)
	assert.Zero(t, s.Ticks())
	assert.Contains(t, logs.String(), "interrupted after 0 ticks")
	assert.Empty(t, out.String())
}

func TestRunKeepsBoundedHistory(t *testing.T) {
	s := newSystem(t, 3)
	var out bytes.Buffer
	history := Run(context.Background(), s, historyLimit+50, 0, log.New(&bytes.Buffer{}, "", 0), &out)
	assert.Len(t, history, historyLimit)
}
