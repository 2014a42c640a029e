// Package packed defines the fixed-stride particle buffer shared between a
// simulation and its renderers.
//
// Every particle occupies ParticleSize consecutive 32-bit slots. Continuous
// fields are read through the float view, discrete fields through the
// integer view of the same memory. Readers must only rely on the offsets
// published here; changing them requires bumping LayoutVersion.
package packed

// LayoutVersion identifies the slot table below.
const LayoutVersion = 1

// ParticleSize is the record stride in 32-bit slots.
const ParticleSize = 9

// Slot offsets within one record.
const (
	OffsetX      = 0
	OffsetY      = 1
	OffsetVX     = 2
	OffsetVY     = 3
	OffsetAX     = 4 // reserved, zero after every step
	OffsetAY     = 5 // reserved, zero after every step
	OffsetRadius = 6
	OffsetColor  = 7
	OffsetID     = 8
)

// Kind tells which view a slot must be read through.
type Kind int

const (
	Float Kind = iota
	Uint
)

func (k Kind) String() string {
	switch k {
	case Float:
		return "float32"
	case Uint:
		return "uint32"
	default:
		return "unknown"
	}
}

// Field is one entry of the published layout table.
type Field struct {
	Name   string
	Offset int
	Kind   Kind
}

// Layout is the published slot table for LayoutVersion.
var Layout = []Field{
	{"x", OffsetX, Float},
	{"y", OffsetY, Float},
	{"vx", OffsetVX, Float},
	{"vy", OffsetVY, Float},
	{"ax", OffsetAX, Float},
	{"ay", OffsetAY, Float},
	{"radius", OffsetRadius, Float},
	{"color", OffsetColor, Uint},
	{"id", OffsetID, Uint},
}

// Lookup returns the layout entry with the given name.
func Lookup(name string) (Field, bool) {
	for _, f := range Layout {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}
