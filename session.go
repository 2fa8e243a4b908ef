package reveal

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// ErrFrameLimit is returned by Simulate when the frame limit is reached
// before the animation finishes.
var ErrFrameLimit = errors.New("frame limit reached before the reveal finished")

// maxCatchUpPasses bounds the budgeted passes run after a resize.
const maxCatchUpPasses = 4096

// State is the lifecycle state of a session.
type State uint8

const (
	StateIdle State = iota
	StateRunning
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateFinished:
		return "finished"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// FrameResult is the outcome of one tick.
type FrameResult struct {
	Index    int     `json:"index"`
	Progress float64 `json:"progress"`
	Units    int     `json:"units"`
	State    State   `json:"state"`
	// Frame is the composited frame; nil for ticks that only schedule.
	// It is owned by the session and overwritten by the next render.
	Frame *Frame `json:"-"`
}

// Stats accumulates counters over the life of a session.
type Stats struct {
	Frames     int        `json:"frames"`
	Units      int        `json:"units"`
	PeakUnits  int        `json:"peak_units"`
	Resizes    int        `json:"resizes"`
	Restarts   int        `json:"restarts"`
	CatchUp    int        `json:"catch_up_passes"`
	Paint      PaintStats `json:"paint"`
	FinishedAt float64    `json:"finished_at_seconds"`
}

// Session owns every piece of mutable state of one reveal animation: the
// mask, the actor collections, the random source and the compositor.
// Sessions are independent of each other. A Session is not safe for
// concurrent use.
type Session struct {
	id      uuid.UUID
	log     *slog.Logger
	opts    sessionOptions
	profile Profile
	rng     *Rand

	layout  Layout
	surface *Surface
	coll    *Collections
	comp    *compositor

	state     State
	startedAt time.Time
	lastNow   time.Time
	progress  float64
	phase     string
	stats     Stats
	paintBase PaintStats
}

// NewSession creates an idle session for the given viewport. background
// may be nil, in which case only the paper colour is shown.
func NewSession(vp Viewport, background image.Image, opts ...SessionOption) *Session {
	o := defaultSessionOptions()
	for _, opt := range opts {
		opt(&o)
	}

	s := &Session{
		id:   uuid.Must(uuid.NewV7()),
		opts: o,
	}
	s.log = Logger().With("session", s.id.String())

	s.profile = o.profile
	if err := s.profile.Validate(); err != nil {
		s.log.Warn("invalid profile, using default", "profile", s.profile.Name, "error", err)
		s.profile = DefaultProfile()
	}
	if o.paper != "" {
		s.profile.Paper = o.paper
	}

	seed := o.seed
	if !o.seeded {
		seed = clockSeed()
	}
	s.rng = NewRand(seed)

	s.layout = NewLayout(vp, s.profile.MaskScale)
	s.surface = NewSurface(s.layout, o.brushes, s.rng)
	s.coll = Generate(s.layout, s.rng, &s.profile)
	s.comp = newCompositor(s.log, vp, background, o.overlays, s.profile.PaperColor())
	return s
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID { return s.id }

// Profile returns the profile in effect.
func (s *Session) Profile() Profile { return s.profile }

// Layout returns the current mask geometry.
func (s *Session) Layout() Layout { return s.layout }

// State returns the lifecycle state.
func (s *Session) State() State { return s.state }

// Progress returns the global progress of the last tick.
func (s *Session) Progress() float64 { return s.progress }

// Mask returns the reveal mask.
func (s *Session) Mask() *Mask { return s.surface.mask }

// Frame returns the last rendered frame.
func (s *Session) Frame() *Frame { return s.comp.frame }

// Collections returns the live actor collections.
func (s *Session) Collections() *Collections { return s.coll }

// Stats returns the session counters.
func (s *Session) Stats() Stats {
	st := s.stats
	ps := s.surface.Stats()
	st.Paint = PaintStats{
		Blobs:  s.paintBase.Blobs + ps.Blobs,
		Lines:  s.paintBase.Lines + ps.Lines,
		Stamps: s.paintBase.Stamps + ps.Stamps,
	}
	return st
}

// Start begins the animation at now: the mask is cleared, a kickstart mark
// is painted at the centre, collections are regenerated and the first
// frame is rendered.
func (s *Session) Start(now time.Time) FrameResult {
	s.startedAt = now
	s.lastNow = now
	s.progress = 0
	s.phase = ""
	s.reset(s.layout)
	s.state = StateRunning
	s.log.Info("session started",
		"profile", s.profile.Name,
		"viewport", fmt.Sprintf("%dx%d", s.layout.Viewport.W, s.layout.Viewport.H),
		"mask", fmt.Sprintf("%dx%d", s.layout.W, s.layout.H),
		"duration", s.profile.Duration)

	units := s.drawProgress(0)
	return s.finishTick(units, true)
}

// Restart starts the animation over at now.
func (s *Session) Restart(now time.Time) FrameResult {
	s.stats.Restarts++
	s.log.Info("session restarted")
	return s.Start(now)
}

// Tick advances the animation to now, paints within the frame budget and
// renders. Ticks on an idle or finished session render without painting.
func (s *Session) Tick(now time.Time) FrameResult {
	return s.tick(now, true)
}

// Advance is Tick without rendering. Headless drivers use it to run the
// schedule cheaply and render only the frames they need.
func (s *Session) Advance(now time.Time) FrameResult {
	return s.tick(now, false)
}

func (s *Session) tick(now time.Time, render bool) FrameResult {
	if s.state != StateRunning {
		res := FrameResult{Index: s.stats.Frames, Progress: s.progress, State: s.state}
		if render {
			res.Frame = s.comp.render(s.surface.mask)
		}
		return res
	}
	s.lastNow = now
	s.progress = s.progressAt(now)
	units := s.drawProgress(s.progress)
	return s.finishTick(units, render)
}

// Render composites the current mask without advancing the animation.
func (s *Session) Render() *Frame {
	return s.comp.render(s.surface.mask)
}

func (s *Session) finishTick(units int, render bool) FrameResult {
	s.stats.Frames++
	s.stats.Units += units
	s.stats.PeakUnits = max(s.stats.PeakUnits, units)

	if s.state == StateRunning && s.progress >= 1 && s.coll.Finished() {
		s.state = StateFinished
		s.stats.FinishedAt = s.lastNow.Sub(s.startedAt).Seconds()
		s.log.Info("session finished",
			"frames", s.stats.Frames,
			"units", s.stats.Units,
			"coverage", s.surface.mask.Coverage(RevealThreshold))
	}

	res := FrameResult{
		Index:    s.stats.Frames - 1,
		Progress: s.progress,
		Units:    units,
		State:    s.state,
	}
	if render {
		res.Frame = s.comp.render(s.surface.mask)
	}
	return res
}

func (s *Session) progressAt(now time.Time) float64 {
	elapsed := now.Sub(s.startedAt)
	return clamp(float64(elapsed)/float64(s.profile.Duration), 0, 1)
}

// drawProgress spends one frame budget at progress p.
func (s *Session) drawProgress(p float64) int {
	s.notePhase(p)
	return scheduleFrame(s.coll, s.surface, p, &s.profile)
}

func (s *Session) notePhase(p float64) {
	phase := "paint"
	switch {
	case s.profile.CornerSeals && p >= s.profile.CornerSealStart:
		phase = "corner-seal"
	case p >= s.profile.SealStart:
		phase = "seal"
	case p >= s.profile.WashStart:
		phase = "wash"
	}
	if phase != s.phase {
		s.phase = phase
		s.log.Debug("phase", "name", phase, "progress", p)
	}
}

// reset replaces the surface and collections for layout and paints the
// kickstart mark.
func (s *Session) reset(l Layout) {
	ps := s.surface.Stats()
	s.paintBase.Blobs += ps.Blobs
	s.paintBase.Lines += ps.Lines
	s.paintBase.Stamps += ps.Stamps

	s.layout = l
	s.surface = NewSurface(l, s.opts.brushes, s.rng)
	s.kickstart()
	s.coll = Generate(l, s.rng, &s.profile)
}

// kickstart paints a blob at the centre so the first frame is never blank.
func (s *Session) kickstart() {
	l := s.layout
	r := max(kickstartRadius*float64(min(l.W, l.H)), minKickstartRadius)
	s.surface.FillBlob(NewBlob(s.rng, l.Center(), r, 0.15), s.profile.KickstartAlpha)
}

// Kickstart mark geometry.
const (
	kickstartRadius    = 0.06
	minKickstartRadius = 4
)

// Resize switches the session to a new viewport. Collections are
// regenerated from scratch and, for a running or finished session,
// painted up to the current progress so the picture does not start over.
func (s *Session) Resize(vp Viewport, now time.Time) FrameResult {
	s.stats.Resizes++
	s.comp.resize(vp)
	s.reset(NewLayout(vp, s.profile.MaskScale))
	s.log.Info("session resized",
		"viewport", fmt.Sprintf("%dx%d", vp.W, vp.H),
		"mask", fmt.Sprintf("%dx%d", s.layout.W, s.layout.H))

	if s.state == StateIdle {
		return FrameResult{State: s.state, Frame: s.comp.render(s.surface.mask)}
	}

	if s.state == StateRunning {
		s.lastNow = now
		s.progress = s.progressAt(now)
	}
	passes := 0
	for passes < maxCatchUpPasses {
		if s.drawProgress(s.progress) == 0 {
			break
		}
		passes++
	}
	s.stats.CatchUp += passes
	s.log.Debug("resize catch-up", "passes", passes, "progress", s.progress)

	if s.progress >= 1 && s.coll.Finished() {
		s.state = StateFinished
	} else {
		s.state = StateRunning
	}
	return FrameResult{
		Index:    max(s.stats.Frames-1, 0),
		Progress: s.progress,
		State:    s.state,
		Frame:    s.comp.render(s.surface.mask),
	}
}

// Play drives the session in real time, calling present after every
// rendered frame. An idle session is started first. Play returns nil once
// the animation finishes, the context error on cancellation, or the first
// error returned by present.
func (s *Session) Play(ctx context.Context, interval time.Duration, present func(FrameResult) error) error {
	if s.state == StateIdle {
		if err := present(s.Start(time.Now())); err != nil {
			return err
		}
	}
	if s.state == StateFinished {
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			res := s.Tick(now)
			if err := present(res); err != nil {
				return err
			}
			if res.State == StateFinished {
				return nil
			}
		}
	}
}

// Simulate drives the session on a virtual clock advancing by step per
// frame, for at most maxFrames frames (0 means no limit). An idle session
// is started at the Unix epoch. When present is nil, frames are only
// scheduled and the final frame is rendered once.
func (s *Session) Simulate(step time.Duration, maxFrames int, present func(FrameResult) error) (FrameResult, error) {
	if step <= 0 {
		return FrameResult{}, fmt.Errorf("simulate: step must be positive, got %s", step)
	}
	var res FrameResult
	now := s.startedAt
	if s.state == StateIdle {
		now = time.Unix(0, 0)
		res = s.Start(now)
		if present != nil {
			if err := present(res); err != nil {
				return res, err
			}
		}
	} else {
		now = s.startedAt.Add(time.Duration(s.progress * float64(s.profile.Duration)))
	}

	for n := 0; s.state == StateRunning; n++ {
		if maxFrames > 0 && n >= maxFrames {
			res.Frame = s.Render()
			return res, ErrFrameLimit
		}
		now = now.Add(step)
		if present == nil {
			res = s.Advance(now)
			continue
		}
		res = s.Tick(now)
		if err := present(res); err != nil {
			return res, err
		}
	}
	if res.Frame == nil {
		res.Frame = s.Render()
	}
	return res, nil
}

// RevealThreshold is the mask value from which a pixel counts as revealed
// in reports.
const RevealThreshold = 8
