// Package reveal implements a watercolor-brush reveal animation for
// signage displays.
//
// # Overview
//
// A background image is hidden behind paper and revealed through a
// grayscale mask that procedural painters fill in over a fixed duration.
// Painters (strokes, sweeps, droplets, spirals, radiants, connectors and
// waves) each own a time window; a wash pass evens out the tone and a seal
// pass closes every remaining gap, so the image is fully revealed when the
// animation ends.
//
// # Quick Start
//
//	import "github.com/mpalenque/brush-sub000"
//
//	s := reveal.NewSession(reveal.Viewport{W: 1920, H: 1080}, background)
//	res := s.Start(time.Now())
//	for res.State != reveal.StateFinished {
//	    res = s.Tick(time.Now())
//	    present(res.Frame)
//	}
//
// Session.Play drives the same loop from a ticker and Session.Simulate
// drives it on a virtual clock for headless rendering.
//
// # Frame Budget
//
// Every tick spends at most Profile.MaxUnitsPerFrame paint units. Kinds are
// served in a fixed priority order and each actor may claim a share of the
// remaining budget, so late work is deferred rather than dropped.
//
// # Brushes
//
// Painters stamp brush rasters when a BrushSet has brushes loaded and fall
// back to organic blobs and anti-aliased lines otherwise. Droplet bodies and
// seal marks always use blobs.
//
// # Coordinate System
//
// Mask coordinates are in mask pixels (device pixels times the profile's
// mask scale):
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - Angles in radians, 0 is right, increases clockwise on screen
//
// # Logging
//
// The package is silent unless SetLogger installs a slog.Logger.
package reveal

// Version information
const (
	// Version is the current version of the module
	Version = "0.3.0"
)
