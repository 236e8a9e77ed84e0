package solver

// PCG32 is a small, fast PCG-XSH-RR generator with 64-bit state and 32-bit
// output. The traverser embeds one per worker for action sampling so that
// the hottest loop draws uniforms without indirection or allocation; deck
// and suit sampling, which run once per iteration, use math/rand/v2 instead.
type PCG32 struct {
	state uint64
}

// NewPCG32 creates a generator from the given seed.
func NewPCG32(seed int64) *PCG32 {
	return &PCG32{state: uint64(seed)*2 + 1}
}

// Uint32 generates the next 32-bit output.
func (r *PCG32) Uint32() uint32 {
	oldstate := r.state
	r.state = oldstate*6364136223846793005 + 1442695040888963407
	xorshifted := uint32(((oldstate >> 18) ^ oldstate) >> 27)
	rot := uint32(oldstate >> 59)
	return (xorshifted >> rot) | (xorshifted << ((-rot) & 31))
}

// Float64 returns a uniform variate in [0,1).
func (r *PCG32) Float64() float64 {
	return float64(r.Uint32()) / (1 << 32)
}
