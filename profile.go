package reveal

import (
	"errors"
	"fmt"
	"image/color"
	"maps"
	"os"
	"slices"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// Profile errors.
var (
	ErrUnknownProfile = errors.New("unknown profile")
	ErrInvalidProfile = errors.New("invalid profile")
)

// DefaultProfileName is the profile used when none is given.
const DefaultProfileName = "brush-reveal"

// Tuning apportions the frame budget to one actor kind.
type Tuning struct {
	// Factor is the share of the remaining budget one actor may claim, in steps.
	Factor float64 `yaml:"factor" json:"factor"`
	// Cap is the maximum number of steps one actor may take per frame.
	Cap int `yaml:"cap" json:"cap"`
}

// Profile is a named set of animation constants.
type Profile struct {
	Name string `yaml:"name" json:"name"`
	// Base names the profile a file overlays. Only used when loading.
	Base string `yaml:"base,omitempty" json:"base,omitempty"`

	Duration         time.Duration `yaml:"duration" json:"duration"`
	MaskScale        float64       `yaml:"mask_scale" json:"mask_scale"`
	MaxUnitsPerFrame int           `yaml:"max_units_per_frame" json:"max_units_per_frame"`

	WashStart       float64 `yaml:"wash_start" json:"wash_start"`
	SealStart       float64 `yaml:"seal_start" json:"seal_start"`
	CornerSealStart float64 `yaml:"corner_seal_start" json:"corner_seal_start"`
	CornerSeals     bool    `yaml:"corner_seals" json:"corner_seals"`

	WashAlpha   Range   `yaml:"wash_alpha" json:"wash_alpha"`
	SealAlpha   Range   `yaml:"seal_alpha" json:"seal_alpha"`
	WashSpacing float64 `yaml:"wash_spacing" json:"wash_spacing"`
	SealSpacing float64 `yaml:"seal_spacing" json:"seal_spacing"`

	KickstartAlpha float64 `yaml:"kickstart_alpha" json:"kickstart_alpha"`
	MotionScale    float64 `yaml:"motion_scale" json:"motion_scale"`
	// Paper is the hex colour shown where the mask is empty.
	Paper string `yaml:"paper" json:"paper"`

	Tuning map[string]Tuning `yaml:"tuning" json:"tuning"`
}

func defaultTuning() map[string]Tuning {
	return map[string]Tuning{
		KindStroke.String():     {Factor: 0.35, Cap: 4},
		KindDroplet.String():    {Factor: 0.2, Cap: 3},
		KindSpiral.String():     {Factor: 0.2, Cap: 6},
		KindRadiant.String():    {Factor: 0.15, Cap: 6},
		KindWave.String():       {Factor: 0.15, Cap: 4},
		KindConnector.String():  {Factor: 0.10, Cap: 6},
		KindSweep.String():      {Factor: 0.3, Cap: 3},
		KindWash.String():       {Factor: 0.25, Cap: 8},
		KindSeal.String():       {Factor: 0.4, Cap: 24},
		KindCornerSeal.String(): {Factor: 0.1, Cap: 8},
	}
}

func brushReveal() Profile {
	return Profile{
		Name:             "brush-reveal",
		Duration:         14 * time.Second,
		MaskScale:        0.5,
		MaxUnitsPerFrame: 250,
		WashStart:        0.78,
		SealStart:        0.88,
		CornerSealStart:  0.95,
		WashAlpha:        Range{Min: 0.12, Max: 0.22},
		SealAlpha:        Range{Min: 0.45, Max: 0.7},
		WashSpacing:      120,
		SealSpacing:      64,
		KickstartAlpha:   0.6,
		MotionScale:      1,
		Paper:            "#ffffff",
		Tuning:           defaultTuning(),
	}
}

func fullReveal() Profile {
	p := brushReveal()
	p.Name = "full-reveal"
	p.Duration = 30 * time.Second
	p.MaxUnitsPerFrame = 400
	p.WashStart = 0.8
	p.SealStart = 0.9
	p.MotionScale = 0.9
	return p
}

func patternReveal() Profile {
	p := brushReveal()
	p.Name = "pattern-reveal"
	p.Duration = 35 * time.Second
	p.MaskScale = 0.6
	p.MaxUnitsPerFrame = 600
	p.WashStart = 0.8
	p.SealStart = 0.9
	p.CornerSeals = true
	p.MotionScale = 0.85
	return p
}

var namedProfiles = map[string]func() Profile{
	"brush-reveal":   brushReveal,
	"full-reveal":    fullReveal,
	"pattern-reveal": patternReveal,
}

// ProfileNames returns the names of the built-in profiles, sorted.
func ProfileNames() []string {
	return slices.Sorted(maps.Keys(namedProfiles))
}

// NamedProfile returns a copy of a built-in profile.
func NamedProfile(name string) (Profile, error) {
	f, ok := namedProfiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q", ErrUnknownProfile, name)
	}
	return f(), nil
}

// DefaultProfile returns the brush-reveal profile.
func DefaultProfile() Profile {
	return brushReveal()
}

// ParseProfile decodes a YAML profile. Fields missing from data keep the
// values of the profile named by its base key, or of the default profile.
func ParseProfile(data []byte) (Profile, error) {
	var head struct {
		Base string `yaml:"base"`
	}
	if err := yaml.Unmarshal(data, &head); err != nil {
		return Profile{}, fmt.Errorf("parse profile: %w", err)
	}
	if head.Base == "" {
		head.Base = DefaultProfileName
	}
	p, err := NamedProfile(head.Base)
	if err != nil {
		return Profile{}, fmt.Errorf("profile base: %w", err)
	}

	base := p.Tuning
	p.Tuning = nil
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("parse profile: %w", err)
	}
	p.Tuning = mergeTuning(base, p.Tuning)
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// LoadProfile reads and parses a YAML profile file.
func LoadProfile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("read profile: %w", err)
	}
	return ParseProfile(data)
}

// mergeTuning overlays partial entries of over onto base.
func mergeTuning(base, over map[string]Tuning) map[string]Tuning {
	out := maps.Clone(base)
	for k, t := range over {
		b := out[k]
		if t.Factor != 0 {
			b.Factor = t.Factor
		}
		if t.Cap != 0 {
			b.Cap = t.Cap
		}
		out[k] = b
	}
	return out
}

// TuningFor returns the budget tuning of kind k.
func (p *Profile) TuningFor(k Kind) Tuning {
	if t, ok := p.Tuning[k.String()]; ok {
		return t
	}
	return defaultTuning()[k.String()]
}

// PaperColor returns the paper colour, white if Paper does not parse.
func (p *Profile) PaperColor() color.RGBA {
	c, err := colorful.Hex(p.Paper)
	if err != nil {
		return color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// Validate reports every configuration error in p.
func (p *Profile) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidProfile}, args...)...))
	}

	if p.Duration <= 0 {
		bad("duration must be positive, got %s", p.Duration)
	}
	if p.MaskScale <= 0 || p.MaskScale > 2 {
		bad("mask_scale must be in (0, 2], got %g", p.MaskScale)
	}
	if p.MaxUnitsPerFrame < strokePasses+1 {
		bad("max_units_per_frame must be at least %d, got %d", strokePasses+1, p.MaxUnitsPerFrame)
	}
	fractions := []struct {
		name string
		v    float64
	}{
		{"wash_start", p.WashStart},
		{"seal_start", p.SealStart},
		{"corner_seal_start", p.CornerSealStart},
		{"kickstart_alpha", p.KickstartAlpha},
	}
	for _, f := range fractions {
		if f.v < 0 || f.v > 1 {
			bad("%s must be in [0, 1], got %g", f.name, f.v)
		}
	}
	if r := p.WashAlpha; r.Min < 0 || r.Max > 1 || r.Min > r.Max {
		bad("wash_alpha must satisfy 0 <= min <= max <= 1, got [%g, %g]", r.Min, r.Max)
	}
	if r := p.SealAlpha; r.Min <= 0 || r.Max > 1 || r.Min > r.Max {
		bad("seal_alpha must satisfy 0 < min <= max <= 1, got [%g, %g]", r.Min, r.Max)
	}
	if p.WashSpacing <= 0 || p.SealSpacing <= 0 {
		bad("wash_spacing and seal_spacing must be positive")
	}
	if p.MotionScale <= 0 {
		bad("motion_scale must be positive, got %g", p.MotionScale)
	}
	if _, err := colorful.Hex(p.Paper); err != nil {
		bad("paper %q is not a hex colour", p.Paper)
	}
	for _, name := range slices.Sorted(maps.Keys(p.Tuning)) {
		t := p.Tuning[name]
		if _, err := ParseKind(name); err != nil {
			bad("tuning: %v", err)
			continue
		}
		if t.Factor <= 0 || t.Factor > 1 {
			bad("tuning %s: factor must be in (0, 1], got %g", name, t.Factor)
		}
		if t.Cap < 1 {
			bad("tuning %s: cap must be at least 1, got %d", name, t.Cap)
		}
	}
	return errors.Join(errs...)
}

// YAML encodes the profile.
func (p Profile) YAML() ([]byte, error) {
	return yaml.Marshal(p)
}
