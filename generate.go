package reveal

import "math"

// Collections holds every actor of a session, grouped by kind.
type Collections struct {
	lists [kindCount][]Actor
}

// Of returns the actors of kind k in scheduling order.
func (c *Collections) Of(k Kind) []Actor {
	if k >= kindCount {
		return nil
	}
	return c.lists[k]
}

// Len returns the population of kind k. Point sets count their marks.
func (c *Collections) Len(k Kind) int {
	if k >= KindWash {
		n := 0
		for _, a := range c.Of(k) {
			n += a.Steps()
		}
		return n
	}
	return len(c.Of(k))
}

// PointSet returns the point set of kind k, or nil when there is none.
func (c *Collections) PointSet(k Kind) *PointSet {
	for _, a := range c.Of(k) {
		if ps, ok := a.(*PointSet); ok {
			return ps
		}
	}
	return nil
}

// Finished reports whether the wash, seal and corner seal sets are fully
// drawn.
func (c *Collections) Finished() bool {
	for _, k := range []Kind{KindWash, KindSeal, KindCornerSeal} {
		for _, a := range c.Of(k) {
			if a.Cursor() < a.Steps() {
				return false
			}
		}
	}
	return true
}

// Generate creates fresh actor collections for layout. Every kind except
// corner seals is non-empty; corner seals exist only when the profile
// enables them.
func Generate(layout Layout, rng *Rand, p *Profile) *Collections {
	c := &Collections{}
	c.lists[KindStroke] = generateStrokes(layout, rng, false)
	c.lists[KindDroplet] = generateDroplets(layout, rng)
	c.lists[KindSpiral] = generateSpirals(layout, rng)
	c.lists[KindRadiant] = generateRadiants(layout, rng)
	c.lists[KindWave] = generateWaves(layout, rng)
	c.lists[KindConnector] = generateConnectors(layout, rng)
	c.lists[KindSweep] = generateStrokes(layout, rng, true)
	c.lists[KindWash] = []Actor{generateWash(layout, rng, p)}
	c.lists[KindSeal] = []Actor{generateSeal(layout, rng, p)}
	if p.CornerSeals {
		c.lists[KindCornerSeal] = []Actor{generateCornerSeals(layout, rng, p)}
	}
	return c
}

// randomWindow returns a window starting uniformly in [lo, hi) whose
// length is Gaussian around dur.
func randomWindow(r *Rand, lo, hi, dur, sd float64) Window {
	start := r.Uniform(lo, hi)
	return NewWindow(start, start+r.GaussIn(dur, sd, dur/3, dur*2))
}

func generateStrokes(l Layout, r *Rand, sweep bool) []Actor {
	u := l.Unit
	var n int
	if sweep {
		n = countFor(l.Viewport, 28, 16, 40)
	} else {
		n = countFor(l.Viewport, 320, 240, 450)
	}
	out := make([]Actor, 0, n)
	for range n {
		s := &Stroke{sweep: sweep, pos: l.RandomPoint(r), heading: r.Angle()}
		if sweep {
			s.win = randomWindow(r, 0.25, 0.7, 0.22, 0.05)
			s.steps = int(r.GaussIn(18, 5, 8, 30))
			s.style = Style{Width: r.GaussIn(42, 10, 24, 70) * u, Alpha: r.Uniform(0.25, 0.45)}
			s.stepLen = r.Uniform(18, 30) * u
			s.jitter = r.Uniform(0.02, 0.06)
		} else {
			s.win = randomWindow(r, 0, 0.55, 0.3, 0.1)
			s.steps = int(r.GaussIn(26, 8, 12, 44))
			s.style = Style{Width: r.GaussIn(18, 5, 8, 32) * u, Alpha: r.GaussIn(0.55, 0.12, 0.3, 0.85)}
			s.stepLen = r.Uniform(10, 18) * u
			s.jitter = r.Uniform(0.08, 0.22)
		}
		out = append(out, s)
	}
	return out
}

func generateDroplets(l Layout, r *Rand) []Actor {
	u := l.Unit
	n := countFor(l.Viewport, 40, 24, 60)
	out := make([]Actor, 0, n)
	for i := range n {
		radius := r.GaussIn(38, 12, 16, 70) * u
		d := &Droplet{
			shape: NewBlob(r, l.RandomPoint(r), radius, 0.3),
			grow:  r.IntRange(6, 12),
		}
		d.start = radius * r.Uniform(0.15, 0.3)
		d.win = randomWindow(r, 0.05, 0.7, 0.14, 0.04)
		d.style = Style{Width: radius * 2, Alpha: r.Uniform(0.35, 0.6)}

		// Rim around where the body settles after drifting.
		settled := d.shape
		settled.Center = settled.Center.Add(Point{Y: 0.04 * radius * float64(d.grow) * 0.6})
		rn := r.IntRange(36, 84)
		d.rim = make([]RimPoint, rn)
		for j := range d.rim {
			theta := 2 * math.Pi * float64(j) / float64(rn)
			d.rim[j] = RimPoint{
				Droplet: i,
				At:      settled.Center.Add(Polar(theta, settled.radius(theta))),
				R:       radius * r.Uniform(0.08, 0.15),
			}
		}
		d.di = ceilDiv(rn, rimChunks)
		d.steps = d.grow + ceilDiv(rn, d.di)
		out = append(out, d)
	}
	return out
}

func generateSpirals(l Layout, r *Rand) []Actor {
	u := l.Unit
	n := countFor(l.Viewport, 18, 10, 28)
	out := make([]Actor, 0, n)
	for range n {
		s := &Spiral{
			center:  l.RandomPoint(r),
			angle:   r.Angle(),
			radius:  r.Uniform(2, 6) * u,
			dAngle:  r.Uniform(0.18, 0.32) * r.Sign(),
			dRadius: r.Uniform(0.8, 1.6) * u,
		}
		s.steps = r.IntRange(40, 90)
		s.win = randomWindow(r, 0.1, 0.6, 0.22, 0.05)
		s.style = Style{Width: r.GaussIn(14, 4, 6, 24) * u, Alpha: r.Uniform(0.35, 0.6)}
		out = append(out, s)
	}
	return out
}

func generateRadiants(l Layout, r *Rand) []Actor {
	u := l.Unit
	n := countFor(l.Viewport, 10, 6, 16)
	out := make([]Actor, 0, n)
	for range n {
		rd := &Radiant{
			center: l.RandomPoint(r),
			length: r.Uniform(60, 140) * u,
			segs:   r.IntRange(5, 9),
		}
		rays := r.IntRange(5, 9)
		offset := r.Angle()
		rd.rays = make([]float64, rays)
		for j := range rd.rays {
			rd.rays[j] = offset + 2*math.Pi*float64(j)/float64(rays) + r.Gauss(0, 0.12)
		}
		rd.steps = rays * rd.segs
		rd.win = randomWindow(r, 0.15, 0.65, 0.18, 0.05)
		rd.style = Style{Width: r.GaussIn(12, 3, 6, 20) * u, Alpha: r.Uniform(0.3, 0.55)}
		out = append(out, rd)
	}
	return out
}

func generateWaves(l Layout, r *Rand) []Actor {
	u := l.Unit
	n := countFor(l.Viewport, 24, 14, 36)
	out := make([]Actor, 0, n)
	for range n {
		w := &Wave{
			base:    l.RandomPoint(r),
			heading: r.Angle(),
			stepLen: r.Uniform(10, 16) * u,
			amp:     r.Uniform(10, 26) * u,
			freq:    r.Uniform(0.25, 0.5),
			phase:   r.Angle(),
		}
		w.last = w.base
		w.steps = r.IntRange(30, 60)
		w.win = randomWindow(r, 0.2, 0.7, 0.22, 0.05)
		w.style = Style{Width: r.GaussIn(16, 4, 8, 26) * u, Alpha: r.Uniform(0.3, 0.55)}
		out = append(out, w)
	}
	return out
}

func generateConnectors(l Layout, r *Rand) []Actor {
	u := l.Unit
	n := countFor(l.Viewport, 30, 16, 44)
	out := make([]Actor, 0, n)
	for range n {
		a := l.RandomPoint(r)
		b := a.Add(Polar(r.Angle(), r.Uniform(120, 320)*u))
		b.X = clamp(b.X, 0, float64(l.W))
		b.Y = clamp(b.Y, 0, float64(l.H))
		c := &Connector{A: a, B: b}
		c.steps = min(60, max(6, int(math.Round(b.Sub(a).Length()/(8*u)))))
		c.win = randomWindow(r, 0.3, 0.75, 0.14, 0.04)
		c.style = Style{Width: r.GaussIn(10, 3, 5, 18) * u, Alpha: r.Uniform(0.3, 0.5)}
		out = append(out, c)
	}
	return out
}

// gridDims returns the number of grid cells along each side for the
// given spacing, never fewer than minX × minY.
func gridDims(l Layout, spacing float64, minX, minY int) (int, int) {
	spacing = math.Max(spacing, 1e-6)
	nx := max(minX, int(math.Ceil(float64(l.W)/spacing)))
	ny := max(minY, int(math.Ceil(float64(l.H)/spacing)))
	return nx, ny
}

func generateWash(l Layout, r *Rand, p *Profile) *PointSet {
	nx, ny := gridDims(l, p.WashSpacing*l.Unit, 4, 3)
	cw, ch := float64(l.W)/float64(nx), float64(l.H)/float64(ny)
	marks := make([]Mark, 0, nx*ny)
	for y := range ny {
		for x := range nx {
			c := Point{X: (float64(x) + 0.5) * cw, Y: (float64(y) + 0.5) * ch}
			c = c.Add(Point{X: r.Gauss(0, 0.15*cw), Y: r.Gauss(0, 0.15*ch)})
			marks = append(marks, Mark{At: c, R: 0.85 * math.Max(cw, ch), Alpha: p.WashAlpha.Sample(r)})
		}
	}
	shuffleMarks(r, marks)
	return &PointSet{kind: KindWash, win: NewWindow(p.WashStart, 1), marks: marks}
}

// generateSeal covers the mask with overlapping blobs. Centre jitter and
// blob wobble are bounded so that every pixel lies inside some blob.
func generateSeal(l Layout, r *Rand, p *Profile) *PointSet {
	nx, ny := gridDims(l, p.SealSpacing*l.Unit, 6, 4)
	cw, ch := float64(l.W)/float64(nx), float64(l.H)/float64(ny)
	j := 0.05 * math.Min(cw, ch)
	radius := 1.05 * math.Max(cw, ch)
	marks := make([]Mark, 0, nx*ny)
	for y := range ny {
		for x := range nx {
			c := Point{X: (float64(x) + 0.5) * cw, Y: (float64(y) + 0.5) * ch}
			c = c.Add(Point{X: r.Uniform(-j, j), Y: r.Uniform(-j, j)})
			marks = append(marks, Mark{At: c, R: radius, Alpha: p.SealAlpha.Sample(r)})
		}
	}
	shuffleMarks(r, marks)
	return &PointSet{kind: KindSeal, win: NewWindow(p.SealStart, 1), marks: marks, blobOnly: true}
}

func generateCornerSeals(l Layout, r *Rand, p *Profile) *PointSet {
	w, h := float64(l.W), float64(l.H)
	radius := 0.12 * math.Min(w, h)
	at := []Point{
		{0, 0}, {w, 0}, {w, h}, {0, h},
		{w / 2, 0}, {w, h / 2}, {w / 2, h}, {0, h / 2},
	}
	marks := make([]Mark, len(at))
	for i, c := range at {
		marks[i] = Mark{At: c, R: radius, Alpha: p.SealAlpha.Max}
	}
	return &PointSet{kind: KindCornerSeal, win: NewWindow(p.CornerSealStart, 1), marks: marks, blobOnly: true}
}

func shuffleMarks(r *Rand, m []Mark) {
	for i := len(m) - 1; i > 0; i-- {
		j := r.IntRange(0, i)
		m[i], m[j] = m[j], m[i]
	}
}

// CensusRow summarises one actor kind.
type CensusRow struct {
	Kind  Kind `json:"kind"`
	Count int  `json:"count"`
	Steps int  `json:"steps"`
	Units int  `json:"units"`
}

// Census returns one row per kind with its population, total steps and
// the nominal units its remaining steps cost.
func Census(c *Collections) []CensusRow {
	rows := make([]CensusRow, 0, kindCount)
	for _, k := range Kinds() {
		row := CensusRow{Kind: k, Count: c.Len(k)}
		for _, a := range c.Of(k) {
			row.Steps += a.Steps()
			row.Units += costOf(a, a.Steps()-a.Cursor())
		}
		rows = append(rows, row)
	}
	return rows
}
