package pairing

import "math"

// Shuffle returns a Fisher-Yates permutation of names driven by a fresh
// Generator for seed. names is not modified.
func Shuffle(names []string, seed string) []string {
	rng := NewGenerator(seed)
	out := append([]string(nil), names...)
	for i := len(out) - 1; i > 0; i-- {
		j := int(math.Floor(rng.Float64() * float64(i+1)))
		out[i], out[j] = out[j], out[i]
	}
	return out
}
