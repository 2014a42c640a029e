package packed

import (
	"fmt"
	"math"
	"unsafe"
)

// Record is the decoded form of one particle slot range.
type Record struct {
	X, Y   float32
	VX, VY float32
	Radius float32
	Color  uint32
	ID     uint32
}

// Buffer is a single allocation of Count()*ParticleSize words with float,
// integer and byte views aliasing the same memory. It is written in place
// and never reallocated, so views obtained once stay current.
type Buffer struct {
	words  []uint32
	floats []float32
	bytes  []byte
	count  int
}

// New allocates a zeroed buffer for count particles.
func New(count int) *Buffer {
	if count < 0 {
		panic(fmt.Sprintf("packed: negative particle count %d", count))
	}
	b := &Buffer{
		words: make([]uint32, count*ParticleSize),
		count: count,
	}
	if len(b.words) > 0 {
		base := unsafe.Pointer(unsafe.SliceData(b.words))
		b.floats = unsafe.Slice((*float32)(base), len(b.words))
		b.bytes = unsafe.Slice((*byte)(base), len(b.words)*4)
	} else {
		b.floats = []float32{}
		b.bytes = []byte{}
	}
	return b
}

// Count returns the number of records.
func (b *Buffer) Count() int { return b.count }

// Stride returns the record size in slots.
func (b *Buffer) Stride() int { return ParticleSize }

// Len returns the total number of slots.
func (b *Buffer) Len() int { return len(b.words) }

// Floats returns the float32 view.
func (b *Buffer) Floats() []float32 { return b.floats }

// Ints returns the uint32 view.
func (b *Buffer) Ints() []uint32 { return b.words }

// Bytes returns the raw bytes in native byte order.
func (b *Buffer) Bytes() []byte { return b.bytes }

// Put encodes r as record i.
func (b *Buffer) Put(i int, r Record) {
	base := i * ParticleSize
	f := b.floats[base : base+ParticleSize : base+ParticleSize]
	f[OffsetX] = r.X
	f[OffsetY] = r.Y
	f[OffsetVX] = r.VX
	f[OffsetVY] = r.VY
	f[OffsetAX] = 0
	f[OffsetAY] = 0
	f[OffsetRadius] = r.Radius
	w := b.words[base : base+ParticleSize : base+ParticleSize]
	w[OffsetColor] = r.Color
	w[OffsetID] = r.ID
}

// Record decodes record i.
func (b *Buffer) Record(i int) Record {
	base := i * ParticleSize
	f := b.floats[base : base+ParticleSize : base+ParticleSize]
	w := b.words[base : base+ParticleSize : base+ParticleSize]
	return Record{
		X:      f[OffsetX],
		Y:      f[OffsetY],
		VX:     f[OffsetVX],
		VY:     f[OffsetVY],
		Radius: f[OffsetRadius],
		Color:  w[OffsetColor],
		ID:     w[OffsetID],
	}
}

// Wrap folds a coordinate into [0, 1) for display on a torus. Positions in
// the buffer are not wrapped.
func Wrap(v float32) float64 {
	w := math.Mod(float64(v), 1)
	if w < 0 {
		w++
	}
	return w
}
