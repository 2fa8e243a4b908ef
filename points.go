package reveal

// Mark is a single static stamp of a point set.
type Mark struct {
	At    Point
	R     float64
	Alpha float64
}

// PointSet is a collection of static marks drawn once each, in order, during
// a late phase of the animation. Its cursor is the number of marks drawn.
type PointSet struct {
	kind  Kind
	win   Window
	marks []Mark
	drawn int
	// blobOnly forces blob rendering so coverage does not depend on which
	// brushes are loaded.
	blobOnly bool
}

func (ps *PointSet) Kind() Kind     { return ps.kind }
func (ps *PointSet) Window() Window { return ps.win }
func (ps *PointSet) Steps() int     { return len(ps.marks) }
func (ps *PointSet) Cursor() int    { return ps.drawn }
func (ps *PointSet) UnitCost() int  { return 1 }

// Marks returns the marks of the set.
func (ps *PointSet) Marks() []Mark { return ps.marks }

// Done reports whether every mark has been drawn.
func (ps *PointSet) Done() bool { return ps.drawn >= len(ps.marks) }

func (ps *PointSet) step(sf *Surface, maxSteps, allowed int, _ FrameParams) int {
	spent := 0
	for n := 0; n < maxSteps && spent < allowed && !ps.Done(); n++ {
		m := ps.marks[ps.drawn]
		if ps.blobOnly {
			sf.FillBlob(NewBlob(sf.rng, m.At, m.R, 0.12), m.Alpha)
		} else {
			sf.Dab(m.At, m.R, m.Alpha)
		}
		ps.drawn++
		spent++
	}
	return spent
}
