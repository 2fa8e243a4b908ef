package reveal

import (
	"math"
	"math/rand/v2"
	"time"
)

// Rand is the randomness source of one session. Generators and steppers
// draw from it exclusively, so a session seeded with WithSeed schedules the
// same paint operations on every run.
type Rand struct {
	r        *rand.Rand
	spare    float64
	hasSpare bool
}

// NewRand returns a source seeded with seed.
func NewRand(seed uint64) *Rand {
	return &Rand{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// clockSeed derives a seed from the wall clock. Installations run unseeded
// and are meant to look different on every start.
func clockSeed() uint64 {
	return uint64(time.Now().UnixNano()) //nolint:gosec // visual randomness only
}

// Float64 returns a uniform value in [0, 1).
func (r *Rand) Float64() float64 { return r.r.Float64() }

// Uniform returns a uniform value in [lo, hi).
func (r *Rand) Uniform(lo, hi float64) float64 {
	return lo + (hi-lo)*r.r.Float64()
}

// IntRange returns a uniform integer in [lo, hi].
func (r *Rand) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.r.IntN(hi-lo+1)
}

// Angle returns a uniform angle in [0, 2π).
func (r *Rand) Angle() float64 { return r.r.Float64() * 2 * math.Pi }

// Sign returns -1 or 1 with equal probability.
func (r *Rand) Sign() float64 {
	if r.r.IntN(2) == 0 {
		return -1
	}
	return 1
}

// Gauss returns a normally distributed value using the Box–Muller
// transform. The second value of each pair is kept for the next call.
func (r *Rand) Gauss(mean, sd float64) float64 {
	if r.hasSpare {
		r.hasSpare = false
		return mean + sd*r.spare
	}
	u1 := 1 - r.r.Float64() // (0, 1]
	u2 := r.r.Float64()
	mag := math.Sqrt(-2 * math.Log(u1))
	r.spare = mag * math.Sin(2*math.Pi*u2)
	r.hasSpare = true
	return mean + sd*mag*math.Cos(2*math.Pi*u2)
}

// GaussIn returns a Gaussian sample clamped into [lo, hi].
func (r *Rand) GaussIn(mean, sd, lo, hi float64) float64 {
	return clamp(r.Gauss(mean, sd), lo, hi)
}

// Range is a closed interval of floats, used for alpha ranges in profiles.
type Range struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
}

// Sample draws a uniform value from the range.
func (rg Range) Sample(r *Rand) float64 {
	if rg.Max <= rg.Min {
		return rg.Min
	}
	return r.Uniform(rg.Min, rg.Max)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

// smoothstep eases t in [0, 1] with zero slope at both ends.
func smoothstep(t float64) float64 {
	t = clamp(t, 0, 1)
	return t * t * (3 - 2*t)
}
