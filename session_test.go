package reveal

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Unix(1_700_000_000, 0)

func uniformImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Rect, &image.Uniform{C: c}, image.Point{}, draw.Src)
	return img
}

func TestSessionStartKickstart(t *testing.T) {
	s := NewSession(Viewport{W: 640, H: 360}, nil, WithSeed(1))
	require.Equal(t, StateIdle, s.State())
	require.Zero(t, s.Mask().Coverage(1), "idle session must not paint")

	res := s.Start(epoch)
	require.NotNil(t, res.Frame)
	assert.Equal(t, StateRunning, res.State)
	assert.Equal(t, 0, res.Index)
	assert.Zero(t, res.Progress)

	l := s.Layout()
	c := l.Center()
	assert.Greater(t, s.Mask().CoverageWithin(c.X, c.Y, 3, RevealThreshold), 0.99,
		"centre must be revealed on the first frame")
}

func TestSessionRevealMonotonic(t *testing.T) {
	s := NewSession(Viewport{W: 480, H: 270}, nil, WithSeed(2))
	s.Start(epoch)

	prev := s.Mask().Clone()
	for i := 1; i <= 120; i++ {
		res := s.Advance(epoch.Add(time.Duration(i) * 100 * time.Millisecond))
		require.LessOrEqual(t, res.Units, s.Profile().MaxUnitsPerFrame)
		require.True(t, s.Mask().Dominates(prev), "mask decreased at frame %d", i)
		prev = s.Mask().Clone()
	}
}

func TestSessionFullReveal(t *testing.T) {
	if testing.Short() {
		t.Skip("full animation run")
	}
	s := NewSession(Viewport{W: 1280, H: 720}, nil, WithSeed(3))

	res, err := s.Simulate(16*time.Millisecond, 5000, nil)
	require.NoError(t, err)
	require.NotNil(t, res.Frame)
	assert.Equal(t, StateFinished, s.State())
	assert.Equal(t, 1.0, s.Progress())
	assert.GreaterOrEqual(t, s.Mask().Coverage(RevealThreshold), 0.99)

	st := s.Stats()
	assert.Zero(t, st.Paint.Stamps, "no brushes were loaded")
	assert.Positive(t, st.Paint.Blobs)
	assert.GreaterOrEqual(t, st.FinishedAt, s.Profile().Duration.Seconds())
	assert.LessOrEqual(t, st.PeakUnits, s.Profile().MaxUnitsPerFrame)

	// Finished sessions keep rendering without painting.
	again := s.Tick(epoch)
	assert.Equal(t, StateFinished, again.State)
	assert.Zero(t, again.Units)
}

func TestSessionSeededIsReproducible(t *testing.T) {
	run := func() []uint8 {
		s := NewSession(Viewport{W: 320, H: 180}, nil, WithSeed(99))
		s.Start(epoch)
		for i := 1; i <= 60; i++ {
			s.Advance(epoch.Add(time.Duration(i) * 200 * time.Millisecond))
		}
		return s.Mask().Data()
	}
	assert.Equal(t, run(), run())
}

func TestSessionIdleTickDoesNotPaint(t *testing.T) {
	s := NewSession(Viewport{W: 320, H: 180}, nil, WithSeed(4))
	res := s.Tick(epoch)
	assert.Equal(t, StateIdle, res.State)
	assert.Zero(t, res.Units)
	assert.NotNil(t, res.Frame)
	assert.Zero(t, s.Mask().Coverage(1))
}

func TestSessionResize(t *testing.T) {
	vp := Viewport{W: 800, H: 450}
	s := NewSession(vp, nil, WithSeed(5))
	s.Start(epoch)
	mid := epoch.Add(s.Profile().Duration / 2)
	s.Advance(mid)

	res := s.Resize(vp, mid)
	assert.Equal(t, StateRunning, res.State)
	assert.InDelta(t, 0.5, res.Progress, 1e-9)
	require.NotNil(t, res.Frame)

	// Catch-up brings every actor to its target at the current progress.
	for _, k := range Kinds() {
		for _, a := range s.Collections().Of(k) {
			require.Equal(t, a.Window().Target(0.5, a.Steps()), a.Cursor(), "%s not caught up", k)
		}
	}
	first := Census(s.Collections())

	s.Resize(vp, mid)
	second := Census(s.Collections())
	for i := range first {
		assert.Equal(t, first[i].Count, second[i].Count, "%s count changed", first[i].Kind)
	}

	st := s.Stats()
	assert.Equal(t, 2, st.Resizes)
	assert.Positive(t, st.CatchUp)
}

func TestSessionResizeChangesLayout(t *testing.T) {
	s := NewSession(Viewport{W: 640, H: 360}, nil, WithSeed(6))
	res := s.Resize(Viewport{W: 1920, H: 1080}, epoch)
	assert.Equal(t, StateIdle, res.State)
	assert.Equal(t, 960, s.Layout().W)
	assert.Equal(t, 540, s.Layout().H)
	assert.Equal(t, 1920, res.Frame.Width())
	assert.Equal(t, 1080, res.Frame.Height())
	assert.Equal(t, 450, s.Collections().Len(KindStroke))
}

func TestSessionRestart(t *testing.T) {
	s := NewSession(Viewport{W: 320, H: 180}, nil, WithSeed(7))
	s.Start(epoch)
	s.Advance(epoch.Add(5 * time.Second))
	require.Positive(t, s.Progress())

	later := epoch.Add(time.Minute)
	res := s.Restart(later)
	assert.Equal(t, StateRunning, res.State)
	assert.Zero(t, s.Progress())
	assert.Equal(t, 1, s.Stats().Restarts)

	for _, k := range Kinds() {
		for _, a := range s.Collections().Of(k) {
			assert.Zero(t, a.Cursor())
		}
	}
	next := s.Advance(later.Add(time.Second))
	assert.InDelta(t, 1/s.Profile().Duration.Seconds(), next.Progress, 1e-9)
}

func TestSessionSimulateFrameLimit(t *testing.T) {
	s := NewSession(Viewport{W: 320, H: 180}, nil, WithSeed(8))
	res, err := s.Simulate(16*time.Millisecond, 3, nil)
	require.ErrorIs(t, err, ErrFrameLimit)
	assert.NotNil(t, res.Frame)
	assert.Equal(t, StateRunning, s.State())
	assert.Equal(t, 4, s.Stats().Frames)

	_, err = s.Simulate(0, 0, nil)
	assert.Error(t, err)
}

func TestSessionSimulatePresent(t *testing.T) {
	prof := DefaultProfile()
	prof.Duration = time.Second
	s := NewSession(Viewport{W: 160, H: 90}, nil, WithSeed(9), WithProfile(prof))

	var frames []int
	stop := errors.New("stop")
	_, err := s.Simulate(100*time.Millisecond, 0, func(r FrameResult) error {
		require.NotNil(t, r.Frame)
		frames = append(frames, r.Index)
		if len(frames) == 5 {
			return stop
		}
		return nil
	})
	require.ErrorIs(t, err, stop)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, frames)
}

func TestSessionPlayCancel(t *testing.T) {
	s := NewSession(Viewport{W: 160, H: 90}, nil, WithSeed(10))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := s.Play(ctx, time.Hour, func(FrameResult) error {
		calls++
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls, "only the start frame is presented")
	assert.Equal(t, StateRunning, s.State())
}

func TestSessionPlayFinishes(t *testing.T) {
	prof := DefaultProfile()
	prof.Duration = 50 * time.Millisecond
	s := NewSession(Viewport{W: 64, H: 36}, nil, WithSeed(11), WithProfile(prof))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	var last FrameResult
	err := s.Play(ctx, time.Millisecond, func(r FrameResult) error {
		last = r
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, StateFinished, last.State)
}

func TestSessionInvalidProfileFallsBack(t *testing.T) {
	s := NewSession(Viewport{W: 64, H: 36}, nil, WithProfile(Profile{Name: "broken"}))
	assert.Equal(t, DefaultProfileName, s.Profile().Name)
}

func TestSessionRendersBackground(t *testing.T) {
	bg := uniformImage(64, 64, color.RGBA{R: 200, A: 255})
	s := NewSession(Viewport{W: 128, H: 72}, bg, WithSeed(12), WithPaper("#0000ff"))
	res := s.Start(epoch)

	c := res.Frame.RGBAAt(64, 36)
	assert.Greater(t, c.R, c.B, "centre should show the background")
	corner := res.Frame.RGBAAt(0, 0)
	assert.Equal(t, color.RGBA{B: 255, A: 255}, corner, "corner should show paper")
}
