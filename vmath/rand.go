package vmath

import "math"

// FastRand is a xorshift64 generator
// Not safe for concurrent use; each owner keeps its own instance
type FastRand struct {
	state uint64
}

// NewFastRand seeds through a splitmix64 step so nearby seeds diverge immediately
func NewFastRand(seed uint64) *FastRand {
	z := seed + 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	z ^= z >> 31
	if z == 0 {
		z = 1
	}
	return &FastRand{state: z}
}

func (r *FastRand) Next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

// Intn returns a uniform value in [0, n), rejection sampling removes modulo bias
func (r *FastRand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	bound := uint64(n)
	limit := math.MaxUint64 - math.MaxUint64%bound
	for {
		v := r.Next()
		if v < limit {
			return int(v % bound)
		}
	}
}

// Float64 returns a value in [0, 1)
func (r *FastRand) Float64() float64 {
	return float64(r.Next()>>11) / (1 << 53)
}

// Range returns a value in [lo, hi)
func (r *FastRand) Range(lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// Shuffle is an in-place Fisher-Yates permutation over n elements
func (r *FastRand) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		swap(i, j)
	}
}

// Read fills p with generator output, satisfying io.Reader for ID entropy
func (r *FastRand) Read(p []byte) (int, error) {
	for i := 0; i < len(p); i += 8 {
		v := r.Next()
		for j := 0; j < 8 && i+j < len(p); j++ {
			p[i+j] = byte(v >> (8 * j))
		}
	}
	return len(p), nil
}
