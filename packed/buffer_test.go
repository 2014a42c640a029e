package packed

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutTable(t *testing.T) {
	seen := make(map[int]string)
	for _, f := range Layout {
		assert.GreaterOrEqual(t, f.Offset, 0, f.Name)
		assert.Less(t, f.Offset, ParticleSize, f.Name)
		if prev, ok := seen[f.Offset]; ok {
			t.Errorf("offset %d used by both %s and %s", f.Offset, prev, f.Name)
		}
		seen[f.Offset] = f.Name
	}
	assert.Len(t, Layout, ParticleSize)

	for name, want := range map[string]Field{
		"x":      {"x", 0, Float},
		"y":      {"y", 1, Float},
		"radius": {"radius", 6, Float},
		"color":  {"color", 7, Uint},
		"id":     {"id", 8, Uint},
	} {
		got, ok := Lookup(name)
		require.True(t, ok, name)
		assert.Equal(t, want, got)
	}
	_, ok := Lookup("mass")
	assert.False(t, ok)
}

func TestBufferLength(t *testing.T) {
	for _, n := range []int{0, 1, 5, 1000} {
		b := New(n)
		assert.Equal(t, n, b.Count())
		assert.Equal(t, ParticleSize, b.Stride())
		assert.Equal(t, n*ParticleSize, b.Len())
		assert.Len(t, b.Floats(), b.Len())
		assert.Len(t, b.Ints(), b.Len())
		assert.Len(t, b.Bytes(), b.Len()*4)
	}
}

func TestNewNegativePanics(t *testing.T) {
	assert.Panics(t, func() { New(-1) })
}

func TestPutWritesPublishedOffsets(t *testing.T) {
	b := New(3)
	r := Record{X: 0.25, Y: 0.75, VX: -0.5, VY: 0.125, Radius: 3, Color: 4, ID: 17}
	b.Put(2, r)

	base := 2 * ParticleSize
	f := b.Floats()
	w := b.Ints()
	assert.Equal(t, float32(0.25), f[base+OffsetX])
	assert.Equal(t, float32(0.75), f[base+OffsetY])
	assert.Equal(t, float32(-0.5), f[base+OffsetVX])
	assert.Equal(t, float32(0.125), f[base+OffsetVY])
	assert.Equal(t, float32(3), f[base+OffsetRadius])
	assert.Equal(t, uint32(4), w[base+OffsetColor])
	assert.Equal(t, uint32(17), w[base+OffsetID])
	assert.Equal(t, r, b.Record(2))

	// neighbours untouched
	assert.Equal(t, Record{}, b.Record(1))
}

func TestViewsAlias(t *testing.T) {
	b := New(1)
	floats, ints, raw := b.Floats(), b.Ints(), b.Bytes()

	b.Put(0, Record{X: 1.5, Color: 0xdeadbeef})

	assert.Equal(t, math.Float32bits(1.5), ints[OffsetX])
	assert.Equal(t, float32(1.5), floats[OffsetX])
	word := binary.NativeEndian.Uint32(raw[OffsetColor*4:])
	assert.Equal(t, uint32(0xdeadbeef), word)

	// a view taken earlier sees later writes
	b.Put(0, Record{X: -2})
	assert.Equal(t, float32(-2), floats[OffsetX])
}

func TestPutClearsReservedSlots(t *testing.T) {
	b := New(1)
	b.Floats()[OffsetAX] = 9
	b.Floats()[OffsetAY] = 9
	b.Put(0, Record{})
	assert.Zero(t, b.Floats()[OffsetAX])
	assert.Zero(t, b.Floats()[OffsetAY])
}

func TestWrap(t *testing.T) {
	tests := []struct {
		in   float32
		want float64
	}{
		{0, 0},
		{0.25, 0.25},
		{1.25, 0.25},
		{-0.25, 0.75},
		{-2, 0},
		{3, 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, Wrap(tt.in), 1e-6, "in=%g", tt.in)
	}
}
