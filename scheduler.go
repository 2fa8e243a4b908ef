package reveal

import "math"

// scheduleFrame spends one frame budget across c at global progress p and
// returns the units spent. Kinds are visited in priority order; once the
// budget is exhausted every remaining actor waits for the next frame.
func scheduleFrame(c *Collections, sf *Surface, p float64, prof *Profile) int {
	budget := prof.MaxUnitsPerFrame
	fp := FrameParams{SizeMul: SizeMultiplier(p), MotionScale: prof.MotionScale}
	spent := 0

	for _, k := range Kinds() {
		tune := prof.TuningFor(k)
		for _, a := range c.Of(k) {
			if budget <= 0 {
				return spent
			}
			win := a.Window()
			if p < win.Start {
				continue
			}
			needed := win.Target(p, a.Steps()) - a.Cursor()
			if needed <= 0 {
				continue
			}
			allow := min(needed, int(math.Floor(float64(budget)*tune.Factor)), tune.Cap)
			allow = max(allow, 1)
			units := min(costOf(a, allow), budget)

			used := a.step(sf, allow, units, fp)
			budget -= used
			spent += used
		}
	}
	return spent
}

// stepCoster is implemented by actors whose steps do not all cost the same.
type stepCoster interface {
	costOf(steps int) int
}

// costOf returns the units a needs for n more steps.
func costOf(a Actor, n int) int {
	if sc, ok := a.(stepCoster); ok {
		return sc.costOf(n)
	}
	return n * a.UnitCost()
}
