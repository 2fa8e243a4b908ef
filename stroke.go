package reveal

import "math"

const (
	strokePasses = 5
	sweepPasses  = 4

	// oobTurn is the heading change applied when a walker leaves the mask.
	oobTurn = math.Pi * 0.35
	// centerPull is the blend weight pulling a walker's heading toward the
	// mask centre on every step.
	centerPull = 0.01
	// velocitySmoothing is the lerp factor from the current velocity to the
	// target velocity.
	velocitySmoothing = 0.07
)

// Stroke is an inertial random walk painted as a soft tapered line. A
// sweep is a broader, straighter stroke with fewer passes per step.
type Stroke struct {
	actorBase
	sweep bool

	pos     Point
	heading float64
	// vel is nil until the first step.
	vel     *Point
	stepLen float64
	jitter  float64
}

// Kind implements Actor.
func (s *Stroke) Kind() Kind {
	if s.sweep {
		return KindSweep
	}
	return KindStroke
}

func (s *Stroke) passes() int {
	if s.sweep {
		return sweepPasses
	}
	return strokePasses
}

// UnitCost is the number of passes plus the perpendicular closer.
func (s *Stroke) UnitCost() int { return s.passes() + 1 }

// Position returns the current pen position.
func (s *Stroke) Position() Point { return s.pos }

// Velocity returns the smoothed velocity and whether it has been
// initialised.
func (s *Stroke) Velocity() (Point, bool) {
	if s.vel == nil {
		return Point{}, false
	}
	return *s.vel, true
}

func (s *Stroke) step(sf *Surface, maxSteps, allowed int, fp FrameParams) int {
	spent := 0
	lay := sf.layout
	for n := 0; n < maxSteps && !s.done(); n++ {
		if !lay.Inside(s.pos, lay.Margin()) {
			if spent+1 > allowed {
				break
			}
			s.heading += oobTurn
			s.walk(sf, fp)
			s.cursor++
			spent++
			continue
		}

		cost := s.UnitCost()
		if spent+cost > allowed {
			break
		}
		prev := s.pos
		s.walk(sf, fp)
		s.paint(sf, prev, fp)
		s.cursor++
		spent += cost
	}
	return spent
}

// walk advances heading, velocity and position by one step.
func (s *Stroke) walk(sf *Surface, fp FrameParams) {
	s.heading += sf.rng.Gauss(0, s.jitter)
	toCenter := sf.layout.Center().Sub(s.pos).Angle()
	s.heading += centerPull * angleDiff(toCenter, s.heading)

	target := Polar(s.heading, s.stepLen*fp.MotionScale*0.7)
	if s.vel == nil {
		v := target
		s.vel = &v
	} else {
		*s.vel = s.vel.Lerp(target, velocitySmoothing)
	}
	s.pos = s.pos.Add(*s.vel)
}

// paint renders one logical step between prev and the current position.
func (s *Stroke) paint(sf *Surface, prev Point, fp FrameParams) {
	f := float64(s.cursor) / float64(max(s.steps, 1))
	taper := 0.35 + 0.65*math.Sin(math.Pi*f)
	width := s.style.Width * fp.SizeMul * taper
	passes := s.passes()

	for i := range passes {
		t := smoothstep(float64(i+1) / float64(passes))
		at := prev.Lerp(s.pos, t)
		scale := lerp(0.85, 1, t)
		alpha := s.style.Alpha * lerp(0.6, 1, t)
		sf.dab(at, width*scale/2, s.heading, alpha)
	}

	// Perpendicular closer across the end of the step.
	perp := Polar(s.heading+math.Pi/2, width*0.35)
	if b := sf.brush(); b != nil {
		sf.Stamp(b, s.pos, 0.6*width/float64(b.Size()), s.heading+math.Pi/2, s.style.Alpha*0.7)
		return
	}
	sf.Line(s.pos.Sub(perp), s.pos.Add(perp), width*0.4, s.style.Alpha*0.7)
}

// angleDiff returns a-b wrapped into (-π, π].
func angleDiff(a, b float64) float64 {
	d := math.Mod(a-b, 2*math.Pi)
	if d > math.Pi {
		d -= 2 * math.Pi
	} else if d <= -math.Pi {
		d += 2 * math.Pi
	}
	return d
}
