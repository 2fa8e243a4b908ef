package reveal

import "maps"

// SessionOption configures a Session during creation.
//
// Example:
//
//	// Default brush-reveal profile, clock-seeded, no brushes
//	s := reveal.NewSession(vp, bg)
//
//	// Reproducible run with procedural brushes
//	s := reveal.NewSession(vp, bg,
//	    reveal.WithSeed(42),
//	    reveal.WithBrushes(reveal.NewBrushSet(reveal.ProceduralBrushes(1, 4, 96)...)))
type SessionOption func(*sessionOptions)

// sessionOptions holds optional configuration for Session creation.
type sessionOptions struct {
	profile  Profile
	seed     uint64
	seeded   bool
	brushes  *BrushSet
	overlays []Overlay
	paper    string
}

// defaultSessionOptions returns the default session options.
func defaultSessionOptions() sessionOptions {
	return sessionOptions{
		profile: DefaultProfile(),
	}
}

// WithProfile sets the animation profile. The profile is copied, tuning
// included, so later changes by the caller do not reach the session.
func WithProfile(p Profile) SessionOption {
	p.Tuning = maps.Clone(p.Tuning)
	return func(o *sessionOptions) {
		o.profile = p
	}
}

// WithSeed seeds the session's random source. Sessions are clock-seeded
// otherwise; a seed makes the schedule reproducible for tests and
// offline renders.
func WithSeed(seed uint64) SessionOption {
	return func(o *sessionOptions) {
		o.seed = seed
		o.seeded = true
	}
}

// WithBrushes sets the brush set stamped by the painters. The set may
// still be loading; painters fall back to blobs until it is filled.
func WithBrushes(bs *BrushSet) SessionOption {
	return func(o *sessionOptions) {
		o.brushes = bs
	}
}

// WithOverlays adds layers multiplied over the revealed image.
func WithOverlays(layers ...Overlay) SessionOption {
	return func(o *sessionOptions) {
		o.overlays = append(o.overlays, layers...)
	}
}

// WithPaper overrides the profile's paper colour (hex, e.g. "#f6f1e7").
func WithPaper(hex string) SessionOption {
	return func(o *sessionOptions) {
		o.paper = hex
	}
}
