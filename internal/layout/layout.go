// Package layout describes where text lines are expected on a label and the
// tolerances line reconstruction applies to OCR geometry.
//
// A Layout carries two variants: the default label and the buyer label. The
// buyer variant is chosen whenever a fragment reads exactly Layout.BuyerMarker.
// Both variants share the right-edge column thresholds (Ends).
package layout

import (
	"fmt"
	"image"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/ironsheep/label-extract/internal/annotation"
	"github.com/ironsheep/label-extract/internal/geometry"
)

// Profile is one label variant.
type Profile struct {
	Name string `yaml:"name"`
	// Bands are the y positions around which meaningful lines sit.
	Bands []int `yaml:"bands"`
	// ExpectedLines is the number of value lines, not counting the header.
	ExpectedLines int `yaml:"expected_lines"`
}

// Want is the number of fragments a successful reconstruction ends with:
// every value line plus the section header.
func (p Profile) Want() int {
	return p.ExpectedLines + 1
}

// CropWindow positions the reference crop relative to a value line.
type CropWindow struct {
	Width        int `yaml:"width"`
	Height       int `yaml:"height"`
	OffsetX      int `yaml:"offset_x"`
	OffsetY      int `yaml:"offset_y"`
	ScalePercent int `yaml:"scale_percent"`
}

// Region places the window for a value line: its top-left corner sits at
// (Right - OffsetX, Bottom - OffsetY). Coordinates may be negative.
func (c CropWindow) Region(b geometry.BoundingBox) image.Rectangle {
	x := b.Right() - c.OffsetX
	y := b.Bottom() - c.OffsetY
	return image.Rect(x, y, x+c.Width, y+c.Height)
}

// Layout is the full set of reconstruction parameters.
type Layout struct {
	Default     Profile `yaml:"default"`
	Buyer       Profile `yaml:"buyer"`
	BuyerMarker string  `yaml:"buyer_marker"`

	// Ends are the right-edge x positions of the label's text columns.
	Ends []int `yaml:"ends"`

	MaxWidth       int      `yaml:"max_width"`
	BandTolerance  int      `yaml:"band_tolerance"`
	NoiseTokens    []string `yaml:"noise_tokens"`
	OrderTolerance int      `yaml:"order_tolerance"`
	MergeRise      int      `yaml:"merge_rise"`
	MergeGap       int      `yaml:"merge_gap"`
	JoinGap        int      `yaml:"join_gap"`
	MaxLength      int      `yaml:"max_length"`
	EndTolerance   int      `yaml:"end_tolerance"`

	Crop CropWindow `yaml:"crop"`
}

// Standard returns the layout of the surface texture label family.
func Standard() *Layout {
	return &Layout{
		Default: Profile{
			Name:          "default",
			Bands:         []int{1130, 1480, 2550, 2900, 3970, 4300, 4420, 4790},
			ExpectedLines: 9,
		},
		Buyer: Profile{
			Name:          "buyer",
			Bands:         []int{1450, 3190, 4420},
			ExpectedLines: 6,
		},
		BuyerMarker:    "BUYER",
		Ends:           []int{450, 940, 1220, 1980, 2280, 3025, 3160},
		MaxWidth:       500,
		BandTolerance:  200,
		NoiseTokens:    []string{"Supplier", "No", ":", "|", ".", "Mr", "lo"},
		OrderTolerance: 50,
		MergeRise:      100,
		MergeGap:       100,
		JoinGap:        10,
		MaxLength:      50,
		EndTolerance:   200,
		Crop: CropWindow{
			Width:        960,
			Height:       1100,
			OffsetX:      850,
			OffsetY:      1160,
			ScalePercent: 25,
		},
	}
}

// Select picks the buyer profile when any fragment reads BuyerMarker exactly.
func (l *Layout) Select(fragments []annotation.Annotation) Profile {
	if annotation.HasDescription(fragments, l.BuyerMarker) {
		return l.Buyer
	}
	return l.Default
}

// IsNoise reports whether text is one of the stray tokens dropped outright.
func (l *Layout) IsNoise(text string) bool {
	return slices.Contains(l.NoiseTokens, text)
}

// Validate checks the layout is usable.
func (l *Layout) Validate() error {
	for _, p := range []Profile{l.Default, l.Buyer} {
		if len(p.Bands) == 0 {
			return fmt.Errorf("profile %q has no bands", p.Name)
		}
		if p.ExpectedLines <= 0 {
			return fmt.Errorf("profile %q expects %d lines", p.Name, p.ExpectedLines)
		}
	}
	if len(l.Ends) == 0 {
		return fmt.Errorf("no column ends configured")
	}
	if l.Crop.Width <= 0 || l.Crop.Height <= 0 {
		return fmt.Errorf("invalid crop size %dx%d", l.Crop.Width, l.Crop.Height)
	}
	if l.Crop.ScalePercent <= 0 {
		return fmt.Errorf("invalid crop scale %d%%", l.Crop.ScalePercent)
	}
	return nil
}

// Load reads a YAML layout file on top of Standard. Keys absent from the file
// keep their standard values.
func Load(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML layout data on top of Standard.
func Parse(data []byte) (*Layout, error) {
	l := Standard()
	if err := yaml.Unmarshal(data, l); err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}
	if err := l.Validate(); err != nil {
		return nil, fmt.Errorf("invalid layout: %w", err)
	}
	return l, nil
}

// Marshal encodes l as YAML.
func (l *Layout) Marshal() ([]byte, error) {
	return yaml.Marshal(l)
}
