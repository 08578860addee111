package pairing

import (
	"math/bits"
	"unicode/utf16"
)

// Generator is a small seeded PRNG. Each attempt gets its own Generator, so
// nothing is shared between shuffles.
type Generator struct {
	state uint32
}

func NewGenerator(seed string) *Generator {
	// The seed is hashed as UTF-16 code units, not bytes.
	n := 0
	for _, r := range seed {
		n += utf16.RuneLen(r)
	}
	h := uint32(1779033703) ^ uint32(n)
	for _, r := range seed {
		if utf16.RuneLen(r) == 2 {
			hi, lo := utf16.EncodeRune(r)
			h = mix(h, uint32(hi))
			h = mix(h, uint32(lo))
			continue
		}
		h = mix(h, uint32(r))
	}
	return &Generator{state: h}
}

func mix(h, c uint32) uint32 {
	return bits.RotateLeft32((h^c)*3432918353, 13)
}

// Uint32 advances the state and returns the mixed value.
func (g *Generator) Uint32() uint32 {
	h := g.state
	h = (h ^ h>>16) * 2246822507
	h = (h ^ h>>13) * 3266489909
	h ^= h >> 16
	g.state = h
	return h
}

// Float64 returns a value in [0, 1).
func (g *Generator) Float64() float64 {
	return float64(g.Uint32()) / 4294967296
}
