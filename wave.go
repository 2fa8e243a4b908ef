package reveal

import "math"

// Wave is a random walk whose painted path oscillates sideways.
type Wave struct {
	actorBase
	base    Point
	last    Point
	heading float64
	turn    float64
	stepLen float64
	amp     float64
	freq    float64
	phase   float64
}

func (w *Wave) Kind() Kind { return KindWave }

// UnitCost covers the two dabs painted per step.
func (w *Wave) UnitCost() int { return 2 }

// Phase returns the current oscillation phase.
func (w *Wave) Phase() float64 { return w.phase }

func (w *Wave) step(sf *Surface, maxSteps, allowed int, fp FrameParams) int {
	spent := 0
	lay := sf.layout
	for n := 0; n < maxSteps && !w.done(); n++ {
		out := !lay.Inside(w.base, lay.Margin())
		cost := w.UnitCost()
		if out {
			cost = 1
		}
		if spent+cost > allowed {
			break
		}

		if out {
			w.heading += oobTurn
		}
		w.turn = lerp(w.turn, sf.rng.Gauss(0, 0.08), 0.1)
		w.heading += w.turn
		w.heading += centerPull * angleDiff(lay.Center().Sub(w.base).Angle(), w.heading)
		w.base = w.base.Add(Polar(w.heading, w.stepLen*fp.MotionScale))
		w.phase += w.freq

		at := w.base.Add(Polar(w.heading+math.Pi/2, w.amp*math.Sin(w.phase)))
		if !out {
			r := w.style.Width * fp.SizeMul / 2
			sf.dab(w.last.Lerp(at, 0.5), r*0.9, w.heading, w.style.Alpha*0.8)
			sf.dab(at, r, w.heading, w.style.Alpha)
		}
		w.last = at
		w.cursor++
		spent += cost
	}
	return spent
}
