package reveal

import "math"

// blobVertices is the number of polygon vertices sampled around a blob.
const blobVertices = 36

// minBlobRadius is the smallest radius a blob vertex may have, in mask pixels.
const minBlobRadius = 2

// Harmonic is one sinusoidal term of a blob outline.
type Harmonic struct {
	Amp   float64
	Freq  int
	Phase float64
}

// Blob is an organic closed shape: a circle of radius R whose outline is
// perturbed by up to three harmonics and per-vertex jitter.
type Blob struct {
	Center Point
	R      float64
	H      [3]Harmonic
}

// NewBlob returns a blob with random harmonics whose amplitudes sum to at
// most wobble.
func NewBlob(r *Rand, c Point, radius, wobble float64) Blob {
	b := Blob{Center: c, R: radius}
	for i := range b.H {
		b.H[i] = Harmonic{
			Amp:   r.Uniform(0, wobble/3),
			Freq:  r.IntRange(2, 6),
			Phase: r.Angle(),
		}
	}
	return b
}

// radius returns the outline radius at angle theta before jitter.
func (b Blob) radius(theta float64) float64 {
	k := 1.0
	for _, h := range b.H {
		k += h.Amp * math.Sin(float64(h.Freq)*theta+h.Phase)
	}
	return b.R * k
}

// outline samples the blob polygon. Jitter is drawn from r, Gaussian and
// clamped to ±5% of R; vertex radii never drop below minBlobRadius.
func (b Blob) outline(r *Rand, pts *[blobVertices]Point) {
	lim := 0.05 * b.R
	for i := range pts {
		theta := 2 * math.Pi * float64(i) / blobVertices
		rad := b.radius(theta)
		if r != nil {
			rad += r.GaussIn(0, lim/2, -lim, lim)
		}
		rad = max(rad, minBlobRadius)
		pts[i] = b.Center.Add(Polar(theta, rad))
	}
}
