package reveal

// Radiant paints a fan of rays from a centre, one ray segment per step.
type Radiant struct {
	actorBase
	center Point
	rays   []float64
	length float64
	segs   int

	// CurrentRay is the index of the ray being drawn.
	CurrentRay int
	// Seg is the next segment of the current ray.
	Seg int
}

func (r *Radiant) Kind() Kind    { return KindRadiant }
func (r *Radiant) UnitCost() int { return 1 }

func (r *Radiant) step(sf *Surface, maxSteps, allowed int, fp FrameParams) int {
	spent := 0
	for n := 0; n < maxSteps && spent < allowed && !r.done(); n++ {
		angle := r.rays[r.CurrentRay]
		t0 := float64(r.Seg) / float64(r.segs)
		t1 := float64(r.Seg+1) / float64(r.segs)
		a := r.center.Add(Polar(angle, r.length*t0*fp.MotionScale))
		b := r.center.Add(Polar(angle, r.length*t1*fp.MotionScale))
		w := r.style.Width * fp.SizeMul * (1 - 0.6*t0)

		if br := sf.brush(); br != nil {
			sf.Stamp(br, a.Lerp(b, 0.5), w/float64(br.Size()), angle, r.style.Alpha)
		} else {
			sf.Line(a, b, w, r.style.Alpha)
		}

		r.Seg++
		if r.Seg == r.segs {
			r.Seg = 0
			r.CurrentRay++
		}
		r.cursor++
		spent++
	}
	return spent
}
