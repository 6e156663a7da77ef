package reconstruct

import (
	"strings"

	"github.com/ironsheep/label-extract/internal/annotation"
	"github.com/ironsheep/label-extract/internal/geometry"
)

// frag builds an axis-aligned fragment.
func frag(text string, left, bottom, right, top int) annotation.Annotation {
	return annotation.Annotation{
		Locale:       annotation.DefaultLocale,
		Description:  text,
		BoundingPoly: geometry.NewBox(left, bottom, right, top),
	}
}

// onRow builds a fragment of height 50 whose top is top and right edge is right.
func onRow(text string, top, right int) annotation.Annotation {
	return frag(text, right-300, top-50, right, top)
}

func texts(frags []annotation.Annotation) []string {
	out := make([]string, len(frags))
	for i, f := range frags {
		out[i] = f.Description
	}
	return out
}

// buyerLabel is a clean buyer-variant label: six values, one header and some
// fragments every filter should remove.
func buyerLabel() []annotation.Annotation {
	return []annotation.Annotation{
		frag("BUYER", 100, 4300, 300, 4350),
		onRow("Surface", 4420, 3160),
		frag("Hand", 2100, 3140, 2180, 3190),
		onRow("Natural Oak", 1450, 440),
		frag("painted Elm", 2185, 3140, 2280, 3190),
		onRow("Smoked Walnut", 1450, 930),
		onRow("Stardust", 3190, 1980),
		frag("Ash Grey", 1100, 1400, 1220, 1450),
		onRow("Maple", 3190, 3025),
		// filtered
		onRow("No", 1450, 2280),
		onRow("AB1234", 3190, 450),
		frag("Wide strip of text", 400, 4370, 1000, 4420),
		onRow("Floating", 2300, 1220),
	}
}

var buyerLines = []string{
	"Surface - Natural Oak",
	"Surface - Smoked Walnut",
	"Surface - Ash Grey",
	"Surface - Stardust",
	"Surface - Handpainted Elm",
	"Surface - Maple",
}

// defaultLabel is a default-variant label with nine values and a header.
// extra fragments are appended as additional survivors.
func defaultLabel(extra ...annotation.Annotation) []annotation.Annotation {
	names := []string{
		"Red Oak", "White Ash", "Black Walnut",
		"Cherry", "Birch", "Beech",
		"Pine", "Cedar", "Teak",
	}
	rows := []int{1130, 2550, 3970}
	ends := []int{450, 1980, 3160}

	var frags []annotation.Annotation
	for i, name := range names {
		frags = append(frags, onRow(name, rows[i/3], ends[i%3]))
	}
	frags = append(frags, onRow("Wood", 4790, 3160))
	return append(frags, extra...)
}

type recordingLexicon struct {
	known map[string]bool
	calls int
	err   error
}

func newRecordingLexicon(words ...string) *recordingLexicon {
	l := &recordingLexicon{known: map[string]bool{}}
	for _, w := range words {
		l.known[strings.ToLower(w)] = true
	}
	return l
}

func (l *recordingLexicon) FullyKnown(text string) (bool, error) {
	l.calls++
	if l.err != nil {
		return false, l.err
	}
	for _, w := range strings.Fields(text) {
		if !l.known[strings.ToLower(w)] {
			return false, nil
		}
	}
	return true, nil
}
