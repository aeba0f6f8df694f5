package core

// Random is the source of randomness consumed by the spawn queue and the
// power-up table. SimpleRNG implements it; tests substitute fixed values.
type Random interface {
	// Float returns a value in [0, 1).
	Float() float64
	// Intn returns a value in [0, n).
	Intn(n int) int
}

// SimpleRNG is a deterministic pseudo-random number generator (xorshift64).
type SimpleRNG struct {
	state uint64
}

// NewRNG creates a new RNG with the given seed.
func NewRNG(seed uint64) *SimpleRNG {
	if seed == 0 {
		seed = 88172645463325252 // Default seed
	}
	return &SimpleRNG{state: seed}
}

// Next returns the next random uint64.
func (r *SimpleRNG) Next() uint64 {
	r.state ^= r.state << 13
	r.state ^= r.state >> 7
	r.state ^= r.state << 17
	return r.state
}

// Float returns a random float64 in [0, 1).
func (r *SimpleRNG) Float() float64 {
	return unitFloat(r.Next())
}

// unitFloat maps x onto [0, 1) using its top 53 bits, which a float64
// holds exactly, so the result never rounds up to 1.
func unitFloat(x uint64) float64 {
	return float64(x>>11) / (1 << 53)
}

// Intn returns a random int in [0, n).
func (r *SimpleRNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}
