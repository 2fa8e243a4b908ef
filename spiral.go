package reveal

import "math"

// Spiral paints dabs along an outward spiral around a fixed centre.
type Spiral struct {
	actorBase
	center  Point
	angle   float64
	radius  float64
	dAngle  float64
	dRadius float64
}

func (s *Spiral) Kind() Kind    { return KindSpiral }
func (s *Spiral) UnitCost() int { return 1 }

// Angle returns the current angle around the centre.
func (s *Spiral) Angle() float64 { return s.angle }

// Radius returns the current distance from the centre.
func (s *Spiral) Radius() float64 { return s.radius }

func (s *Spiral) step(sf *Surface, maxSteps, allowed int, fp FrameParams) int {
	spent := 0
	for n := 0; n < maxSteps && spent < allowed && !s.done(); n++ {
		s.angle += s.dAngle
		s.radius += s.dRadius * fp.MotionScale
		at := s.center.Add(Polar(s.angle, s.radius))

		// Thin toward the inside, full width on the outer turns.
		f := float64(s.cursor+1) / float64(s.steps)
		w := s.style.Width * fp.SizeMul * (0.5 + 0.5*f)
		sf.dab(at, w/2, s.angle+math.Copysign(math.Pi/2, s.dAngle), s.style.Alpha)

		s.cursor++
		spent++
	}
	return spent
}
