package reveal

// Connector paints a straight stroke from A to B.
type Connector struct {
	actorBase
	A, B Point
}

func (c *Connector) Kind() Kind    { return KindConnector }
func (c *Connector) UnitCost() int { return 1 }

func (c *Connector) step(sf *Surface, maxSteps, allowed int, fp FrameParams) int {
	spent := 0
	heading := c.B.Sub(c.A).Angle()
	for n := 0; n < maxSteps && spent < allowed && !c.done(); n++ {
		from := c.A.Lerp(c.B, float64(c.cursor)/float64(c.steps))
		to := c.A.Lerp(c.B, float64(c.cursor+1)/float64(c.steps))
		w := c.style.Width * fp.SizeMul

		if br := sf.brush(); br != nil {
			sf.Stamp(br, to, w/float64(br.Size()), heading, c.style.Alpha)
		} else {
			sf.Line(from, to, w, c.style.Alpha)
		}
		c.cursor++
		spent++
	}
	return spent
}
