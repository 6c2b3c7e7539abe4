package domain

import "math/rand/v2"

// Sample draws min(n, len(accidents)) accidents without replacement. The
// same seed and input always yield the same sample, in draw order.
func Sample(accidents []Accident, n int, seed uint64) []Accident {
	if n <= 0 || len(accidents) == 0 {
		return nil
	}
	if n > len(accidents) {
		n = len(accidents)
	}

	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	idx := make([]int, len(accidents))
	for i := range idx {
		idx[i] = i
	}
	// Partial Fisher-Yates: only the first n positions are shuffled.
	out := make([]Accident, n)
	for i := 0; i < n; i++ {
		j := i + rng.IntN(len(idx)-i)
		idx[i], idx[j] = idx[j], idx[i]
		out[i] = accidents[idx[i]]
	}
	return out
}

// DefaultSeed derives a sample seed from the package clock.
func DefaultSeed() uint64 {
	return uint64(clock.Now().UnixNano())
}
