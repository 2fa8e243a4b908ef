package cli

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	reveal "github.com/mpalenque/brush-sub000"
)

// Report summarises a finished (or abandoned) headless run.
type Report struct {
	Session    string            `json:"session"`
	Profile    string            `json:"profile"`
	Viewport   string            `json:"viewport"`
	Mask       string            `json:"mask"`
	State      reveal.State      `json:"state"`
	Frames     int               `json:"frames"`
	Units      int               `json:"units"`
	PeakUnits  int               `json:"peak_units"`
	Coverage   float64           `json:"coverage"`
	FinishedAt float64           `json:"finished_at_seconds,omitempty"`
	Paint      reveal.PaintStats `json:"paint"`
	Elapsed    time.Duration     `json:"elapsed_ns"`

	Output        string `json:"output,omitempty"`
	FramesWritten int    `json:"frames_written,omitempty"`
}

func newReport(s *reveal.Session, elapsed time.Duration) Report {
	st := s.Stats()
	l := s.Layout()
	return Report{
		Session:    s.ID().String(),
		Profile:    s.Profile().Name,
		Viewport:   fmt.Sprintf("%dx%d", l.Viewport.W, l.Viewport.H),
		Mask:       fmt.Sprintf("%dx%d", l.W, l.H),
		State:      s.State(),
		Frames:     st.Frames,
		Units:      st.Units,
		PeakUnits:  st.PeakUnits,
		Coverage:   s.Mask().Coverage(reveal.RevealThreshold),
		FinishedAt: st.FinishedAt,
		Paint:      st.Paint,
		Elapsed:    elapsed,
	}
}

// String renders the report as aligned text with grouped digits.
func (r Report) String() string {
	p := message.NewPrinter(language.English)
	var b strings.Builder
	line := func(key, format string, args ...any) {
		p.Fprintf(&b, "%-14s "+format+"\n", append([]any{key}, args...)...)
	}
	line("session", "%s", r.Session)
	line("profile", "%s", r.Profile)
	line("viewport", "%s (mask %s)", r.Viewport, r.Mask)
	line("state", "%s", r.State)
	line("frames", "%d", r.Frames)
	line("units", "%d", r.Units)
	line("peak units", "%d", r.PeakUnits)
	line("coverage", "%.2f%%", r.Coverage*100)
	if r.FinishedAt > 0 {
		line("finished at", "%.2fs", r.FinishedAt)
	}
	line("paint", "%d blobs, %d lines, %d stamps", r.Paint.Blobs, r.Paint.Lines, r.Paint.Stamps)
	line("elapsed", "%s", r.Elapsed.Round(time.Millisecond))
	if r.Output != "" {
		line("output", "%s", r.Output)
	}
	if r.FramesWritten > 0 {
		line("frames written", "%d", r.FramesWritten)
	}
	return strings.TrimRight(b.String(), "\n")
}
