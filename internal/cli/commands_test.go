package cli

import (
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	reveal "github.com/mpalenque/brush-sub000"
)

func writeTestPNG(t *testing.T, path string, c color.RGBA) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
}

func TestProfilesList(t *testing.T) {
	out, err := execute(t, "profiles")
	require.NoError(t, err)
	for _, name := range reveal.ProfileNames() {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, "14s")

	out, err = execute(t, "profiles", "--format", "json")
	require.NoError(t, err)
	var resp struct {
		Status string           `json:"status"`
		Data   []ProfileSummary `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Data, 3)
	assert.Equal(t, "brush-reveal", resp.Data[0].Name)
	assert.Equal(t, 250, resp.Data[0].MaxUnitsPerFrame)
}

func TestProfilesDump(t *testing.T) {
	out, err := execute(t, "profiles", "--dump", "full-reveal")
	require.NoError(t, err)
	assert.Contains(t, out, "name: full-reveal")
	assert.Contains(t, out, "duration: 30s")

	// The dump is a valid profile file.
	p, err := reveal.ParseProfile([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, 400, p.MaxUnitsPerFrame)

	_, err = execute(t, "profiles", "--dump", "missing")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.ErrorIs(t, err, reveal.ErrUnknownProfile)
}

func TestCensus(t *testing.T) {
	out, err := execute(t, "census", "--width", "1280", "--height", "720", "--seed", "1", "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Data CensusResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "1280x720", resp.Data.Viewport)
	assert.Equal(t, "640x360", resp.Data.Mask)
	require.Len(t, resp.Data.Rows, len(reveal.Kinds()))
	assert.Equal(t, reveal.KindStroke, resp.Data.Rows[0].Kind)
	assert.Equal(t, 320, resp.Data.Rows[0].Count)

	out, err = execute(t, "census", "--width", "640", "--height", "360")
	require.NoError(t, err)
	assert.Contains(t, out, "viewport 640x360, mask 320x180")
	assert.Contains(t, out, "corner-seal")
	assert.Contains(t, out, "total")
}

func TestCensusProfileFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.yaml")
	require.NoError(t, os.WriteFile(path, []byte("base: pattern-reveal\nname: custom\n"), 0o600))

	out, err := execute(t, "census", "--profile", path, "--format", "json")
	require.NoError(t, err)
	var resp struct {
		Data CensusResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	last := resp.Data.Rows[len(resp.Data.Rows)-1]
	assert.Equal(t, reveal.KindCornerSeal, last.Kind)
	assert.Equal(t, 8, last.Count)
}

func TestCommandInputErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		args []string
	}{
		{"unknown profile", []string{"census", "--profile", "nope"}},
		{"invalid viewport", []string{"simulate", "--width", "0"}},
		{"missing background", []string{"simulate", "--background", filepath.Join(dir, "bg.png")}},
		{"missing brushes", []string{"simulate", "--brushes", filepath.Join(dir, "brushes")}},
		{"bad overlay opacity", []string{"simulate", "--overlay", "x.png:3"}},
		{"bad fps", []string{"render", "--fps", "0"}},
		{"bad every", []string{"render", "--every", "0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
		})
	}
}

func TestSimulate(t *testing.T) {
	out, err := execute(t, "simulate", "--width", "160", "--height", "90", "--seed", "3", "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string `json:"status"`
		Data   Report `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	r := resp.Data
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, reveal.StateFinished, r.State)
	assert.Equal(t, "160x90", r.Viewport)
	assert.GreaterOrEqual(t, r.Coverage, 0.99)
	assert.GreaterOrEqual(t, r.Frames, 14*60)
	assert.LessOrEqual(t, r.PeakUnits, 250)
	assert.Positive(t, r.Units)
}

func TestSimulateFrameLimit(t *testing.T) {
	out, err := execute(t, "simulate", "--width", "160", "--height", "90", "--seed", "3", "--max-frames", "10")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.ErrorIs(t, err, reveal.ErrFrameLimit)
	assert.Contains(t, out, "running")
	assert.Contains(t, out, "frames")
}

func TestRender(t *testing.T) {
	dir := t.TempDir()
	bg := filepath.Join(dir, "bg.png")
	overlay := filepath.Join(dir, "paper.png")
	writeTestPNG(t, bg, color.RGBA{R: 200, G: 30, B: 30, A: 255})
	writeTestPNG(t, overlay, color.RGBA{R: 240, G: 240, B: 240, A: 255})

	outPNG := filepath.Join(dir, "out.png")
	frames := filepath.Join(dir, "frames")
	out, err := execute(t, "render",
		"--width", "160", "--height", "90", "--seed", "4",
		"--fps", "30", "--background", bg, "--overlay", overlay+":0.5",
		"--procedural-brushes", "2",
		"--out", outPNG, "--frames-dir", frames, "--every", "100",
		"--format", "json")
	require.NoError(t, err)

	var resp struct {
		Data Report `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, outPNG, resp.Data.Output)
	assert.Positive(t, resp.Data.Paint.Stamps)

	f, err := os.Open(outPNG)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 160, 90), img.Bounds())

	entries, err := os.ReadDir(frames)
	require.NoError(t, err)
	assert.Equal(t, resp.Data.FramesWritten, len(entries))
	assert.GreaterOrEqual(t, len(entries), 5)
	assert.Equal(t, "frame_00000.png", entries[0].Name())
}

func TestParseOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "o.png")
	writeTestPNG(t, path, color.RGBA{A: 255})

	o, err := parseOverlay(path)
	require.NoError(t, err)
	assert.Equal(t, 1.0, o.Opacity)

	o, err = parseOverlay(path + ":0.25")
	require.NoError(t, err)
	assert.Equal(t, 0.25, o.Opacity)

	_, err = parseOverlay(path + ":1.5")
	assert.Error(t, err)
	_, err = parseOverlay(filepath.Join(dir, "missing.png"))
	assert.Error(t, err)
}
