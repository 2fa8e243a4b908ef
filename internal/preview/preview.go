// Package preview plays a reveal session in the terminal. Every cell shows
// two vertically stacked frame pixels using the upper half block glyph.
package preview

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/gdamore/tcell/v2"

	reveal "github.com/mpalenque/brush-sub000"
)

const (
	// DefaultInterval is the frame period of the preview (~60 FPS).
	DefaultInterval = 16 * time.Millisecond
	// DefaultCellPixels is the number of viewport pixels per half cell.
	DefaultCellPixels = 4

	upperHalf = '▀'
)

// Options configures a preview.
type Options struct {
	Background image.Image
	Session    []reveal.SessionOption
	Interval   time.Duration
	CellPixels int
}

// Preview drives one session on a tcell screen.
type Preview struct {
	screen  tcell.Screen
	opts    Options
	session *reveal.Session

	cols, rows int
}

// New creates a preview on an initialised screen. The session is created
// for the current screen size.
func New(screen tcell.Screen, opts Options) *Preview {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.CellPixels <= 0 {
		opts.CellPixels = DefaultCellPixels
	}
	p := &Preview{screen: screen, opts: opts}
	p.cols, p.rows = screen.Size()
	p.session = reveal.NewSession(p.viewport(), opts.Background, opts.Session...)
	return p
}

// Session returns the session being previewed.
func (p *Preview) Session() *reveal.Session { return p.session }

// viewport maps the screen, minus the status line, to frame pixels.
func (p *Preview) viewport() reveal.Viewport {
	px := p.opts.CellPixels
	return reveal.Viewport{
		W: max(p.cols, 1) * px,
		H: max(p.rows-1, 1) * 2 * px,
	}
}

// Run plays the session until the user quits or ctx is done. The
// animation keeps its last frame on screen once finished.
func (p *Preview) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	go p.screen.ChannelEvents(events, quit)
	defer close(quit)

	ticker := time.NewTicker(p.opts.Interval)
	defer ticker.Stop()

	p.draw(p.session.Start(time.Now()))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if p.handle(ev, time.Now()) {
				return nil
			}
		case now := <-ticker.C:
			if p.session.State() == reveal.StateFinished {
				continue
			}
			p.draw(p.session.Tick(now))
		}
	}
}

// handle processes one terminal event and reports whether to quit.
func (p *Preview) handle(ev tcell.Event, now time.Time) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
			return true
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			return true
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'r':
			p.draw(p.session.Restart(now))
		}
	case *tcell.EventResize:
		cols, rows := ev.Size()
		if cols == p.cols && rows == p.rows {
			return false
		}
		p.cols, p.rows = cols, rows
		p.screen.Sync()
		p.draw(p.session.Resize(p.viewport(), now))
	}
	return false
}

// draw paints res.Frame and the status line.
func (p *Preview) draw(res reveal.FrameResult) {
	p.screen.Clear()
	if f := res.Frame; f != nil {
		px := p.opts.CellPixels
		for y := 0; y < p.rows-1; y++ {
			for x := 0; x < p.cols; x++ {
				top := f.RGBAAt(x*px+px/2, 2*y*px+px/2)
				bot := f.RGBAAt(x*px+px/2, (2*y+1)*px+px/2)
				style := tcell.StyleDefault.
					Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
					Background(tcell.NewRGBColor(int32(bot.R), int32(bot.G), int32(bot.B)))
				p.screen.SetContent(x, y, upperHalf, nil, style)
			}
		}
	}

	status := fmt.Sprintf(" %s  %3.0f%%  %s  units %d  [r]estart [q]uit",
		p.session.Profile().Name, res.Progress*100, res.State, res.Units)
	for i, r := range []rune(status) {
		if i >= p.cols {
			break
		}
		p.screen.SetContent(i, p.rows-1, r, nil, tcell.StyleDefault.Reverse(true))
	}
	p.screen.Show()
}
