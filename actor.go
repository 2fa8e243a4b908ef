package reveal

import (
	"fmt"
	"math"
)

// Kind identifies an actor variant. Kinds are declared in the scheduler's
// priority order.
type Kind uint8

const (
	KindStroke Kind = iota
	KindDroplet
	KindSpiral
	KindRadiant
	KindWave
	KindConnector
	KindSweep
	KindWash
	KindSeal
	KindCornerSeal

	kindCount
)

var kindNames = [kindCount]string{
	"stroke", "droplet", "spiral", "radiant", "wave",
	"connector", "sweep", "wash", "seal", "corner-seal",
}

// Kinds returns every kind in priority order.
func Kinds() []Kind {
	ks := make([]Kind, kindCount)
	for i := range ks {
		ks[i] = Kind(i)
	}
	return ks
}

// String returns the kind name used in profiles and reports.
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// ParseKind resolves a kind by name.
func ParseKind(s string) (Kind, error) {
	for i, n := range kindNames {
		if n == s {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown actor kind %q", s)
}

// MarshalText implements encoding.TextMarshaler so kinds can key YAML maps.
func (k Kind) MarshalText() ([]byte, error) {
	if k >= kindCount {
		return nil, fmt.Errorf("invalid actor kind %d", uint8(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	v, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// Window is the [Start, End] span of global progress during which an actor
// draws. Both ends are fractions of the total duration.
type Window struct {
	Start, End float64
}

// NewWindow returns a window clamped into [0, 1] with Start ≤ End.
func NewWindow(start, end float64) Window {
	start = clamp(start, 0, 1)
	end = clamp(end, 0, 1)
	if end < start {
		end = start
	}
	return Window{Start: start, End: end}
}

// Local maps global progress p to progress within the window.
// A zero-length window jumps from 0 to 1 at Start.
func (w Window) Local(p float64) float64 {
	if p < w.Start {
		return 0
	}
	if w.End <= w.Start {
		return 1
	}
	return clamp((p-w.Start)/(w.End-w.Start), 0, 1)
}

// Target is the number of steps that should have been drawn at p.
func (w Window) Target(p float64, steps int) int {
	if p < w.Start || steps <= 0 {
		return 0
	}
	return min(steps, int(math.Floor(float64(steps)*w.Local(p))))
}

// FrameParams carries per-frame values shared by every stepper.
type FrameParams struct {
	// SizeMul scales paint size; it grows with progress.
	SizeMul float64
	// MotionScale scales step lengths.
	MotionScale float64
}

// SizeMultiplier returns the paint size multiplier at progress p.
func SizeMultiplier(p float64) float64 {
	return 0.2 + (1-math.Exp(-2.8*clamp(p, 0, 1)))*1.4
}

// Actor is a time-windowed procedural painter. Each variant keeps only its
// own path state; the scheduler drives all of them through this interface.
type Actor interface {
	Kind() Kind
	Window() Window
	// Steps is the total number of logical steps the actor will emit.
	Steps() int
	// Cursor is the number of steps emitted so far.
	Cursor() int
	// UnitCost is the nominal cost of one step in work units.
	UnitCost() int

	// step emits at most maxSteps steps while spending at most
	// allowedUnits, and returns the units spent.
	step(sf *Surface, maxSteps, allowedUnits int, fp FrameParams) int
}

// Style is the paint style shared by all actor variants.
type Style struct {
	Width float64
	Alpha float64
}

// actorBase holds the bookkeeping common to all actors.
type actorBase struct {
	win    Window
	steps  int
	cursor int
	style  Style
}

func (b *actorBase) Window() Window { return b.win }
func (b *actorBase) Steps() int     { return b.steps }
func (b *actorBase) Cursor() int    { return b.cursor }

// Style returns the paint style.
func (b *actorBase) Style() Style { return b.style }

func (b *actorBase) done() bool { return b.cursor >= b.steps }
