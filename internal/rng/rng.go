package rng

const (
	// Modulus is the Mersenne prime 2^31-1.
	Modulus int64 = 2147483647
	// Multiplier is the Park–Miller "minimal standard" multiplier.
	Multiplier int64 = 16807
)

// Float64er is the draw interface every generator stage consumes.
type Float64er interface {
	Float64() float64
}

// Source is a Park–Miller multiplicative linear congruential generator.
// A Source is not safe for concurrent use; each generation owns its own.
type Source struct {
	state int64
	draws int
}

// New returns a Source seeded from any 32-bit integer. Negative and zero
// seeds are folded into [1, Modulus-1] so the generator never sits on the
// zero fixed point.
func New(seed int32) *Source {
	state := int64(seed) % Modulus
	if state <= 0 {
		state += Modulus
	}
	if state == Modulus {
		state = 1
	}
	return &Source{state: state}
}

// Float64 advances the generator and returns the next value in (0, 1).
func (s *Source) Float64() float64 {
	s.state = (s.state * Multiplier) % Modulus
	s.draws++
	return float64(s.state) / float64(Modulus)
}

// Draws reports how many values have been drawn from s.
func (s *Source) Draws() int {
	return s.draws
}

// Range maps the next draw onto [min, max).
func Range(src Float64er, min, max float64) float64 {
	// The explicit conversion keeps the product rounded before the add;
	// without it the compiler may emit a fused multiply-add on some targets.
	return float64(src.Float64()*(max-min)) + min
}
