package reveal

// rimChunks is the number of chunks a droplet rim is stamped in.
const rimChunks = 28

// RimPoint is a small mark on a droplet's edge. It refers to its droplet
// by index within the droplet collection.
type RimPoint struct {
	Droplet int
	At      Point
	R       float64
}

// Droplet grows as a stack of irregular blobs drifting slightly downward,
// then stamps its rim in chunks.
type Droplet struct {
	actorBase
	shape Blob
	drift Point
	start float64
	grow  int
	rim   []RimPoint
	// rimDone is the number of rim points stamped so far.
	rimDone int
	// di is the rim chunk size.
	di int
}

func (d *Droplet) Kind() Kind { return KindDroplet }

// UnitCost is the cost of the next step: 1 while growing, a full rim chunk
// afterwards.
func (d *Droplet) UnitCost() int {
	if d.cursor < d.grow {
		return 1
	}
	return max(d.di, 1)
}

// costOf returns the units n further steps cost. A rim chunk already
// started costs only its remaining points.
func (d *Droplet) costOf(n int) int {
	growing := min(n, max(d.grow-d.cursor, 0))
	rimSteps := n - growing
	if rimSteps == 0 {
		return growing
	}
	di := max(d.di, 1)
	left := len(d.rim) - d.rimDone
	return growing + min(rimSteps*di-d.rimDone%di, left)
}

// Rim returns the rim points.
func (d *Droplet) Rim() []RimPoint { return d.rim }

// RimStamped returns the number of rim points stamped so far.
func (d *Droplet) RimStamped() int { return d.rimDone }

// ChunkSize returns the number of rim points per logical rim step.
func (d *Droplet) ChunkSize() int { return d.di }

func (d *Droplet) step(sf *Surface, maxSteps, allowed int, fp FrameParams) int {
	spent := 0
	limit := d.cursor + maxSteps
	sizeK := 0.5 + 0.5*fp.SizeMul

	for d.cursor < limit && spent < allowed && d.cursor < d.grow {
		k := float64(d.cursor+1) / float64(d.grow)
		d.drift = d.drift.Lerp(Point{Y: 0.04 * d.shape.R}, 0.2)
		b := d.shape
		b.Center = b.Center.Add(d.drift.Mul(float64(d.cursor)))
		b.R = lerp(d.start, d.shape.R, k) * sizeK
		// Droplet bodies are always blobs, layered at partial alpha.
		sf.FillBlob(b, d.style.Alpha*0.55)
		d.cursor++
		spent++
	}

	n := len(d.rim)
	for d.cursor < limit && spent < allowed && d.rimDone < n {
		chunk := min(d.di-d.rimDone%d.di, allowed-spent, n-d.rimDone)
		for _, rp := range d.rim[d.rimDone : d.rimDone+chunk] {
			sf.Dab(rp.At, rp.R*sizeK, d.style.Alpha)
		}
		d.rimDone += chunk
		spent += chunk
		d.cursor = d.grow + d.rimSteps()
	}
	return spent
}

// rimSteps returns the number of completed rim steps. The final partial
// chunk counts once the whole rim is stamped.
func (d *Droplet) rimSteps() int {
	if d.rimDone >= len(d.rim) {
		return ceilDiv(len(d.rim), d.di)
	}
	return d.rimDone / d.di
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
