package reconstruct

import (
	"slices"
	"unicode"

	"github.com/ironsheep/label-extract/internal/annotation"
	"github.com/ironsheep/label-extract/internal/layout"
)

// Lexicon decides whether text is made only of known words.
type Lexicon interface {
	FullyKnown(text string) (bool, error)
}

// TolerantCompare orders a and b numerically, except that values within tol
// of each other compare equal.
func TolerantCompare(a, b, tol int) int {
	d := a - b
	switch {
	case abs(d) <= tol:
		return 0
	case d < 0:
		return -1
	default:
		return 1
	}
}

// FilterBands keeps fragments that are narrow enough, sit near one of the
// profile's bands, and are neither boilerplate nor noise. A fragment whose
// right edge lies left of its left edge is never narrow enough.
func FilterBands(frags []annotation.Annotation, l *layout.Layout, p layout.Profile) []annotation.Annotation {
	out := make([]annotation.Annotation, 0, len(frags))
	for _, f := range frags {
		b := f.Box()
		if w := b.Width(); w < 0 || w > l.MaxWidth {
			continue
		}
		if !near(b.Top(), p.Bands, l.BandTolerance) {
			continue
		}
		if IsBoilerplate(f.Description) || l.IsNoise(f.Description) {
			continue
		}
		out = append(out, f)
	}
	return out
}

// IsBoilerplate reports whether text has only uppercase letters and digits,
// as stamped codes do. Empty text counts as boilerplate.
func IsBoilerplate(text string) bool {
	for _, r := range text {
		if !unicode.IsUpper(r) && !unicode.IsNumber(r) {
			return false
		}
	}
	return true
}

// Order sorts a copy of frags by left edge and then, stably, by top edge,
// both with tolerance tol.
func Order(frags []annotation.Annotation, tol int) []annotation.Annotation {
	out := slices.Clone(frags)
	slices.SortStableFunc(out, func(a, b annotation.Annotation) int {
		return TolerantCompare(a.Box().Left(), b.Box().Left(), tol)
	})
	slices.SortStableFunc(out, func(a, b annotation.Annotation) int {
		return TolerantCompare(a.Box().Top(), b.Box().Top(), tol)
	})
	return out
}

// Pair describes one neighbour comparison made by Coalesce.
type Pair struct {
	A, B   annotation.Annotation
	Rise   int
	Gap    int
	Merged bool
}

// Coalesce merges each fragment into its predecessor when both sit on the
// same row and the horizontal gap between them is small. A merged fragment
// can absorb the next one too. trace, when non-nil, sees every comparison.
func Coalesce(frags []annotation.Annotation, l *layout.Layout, trace func(Pair)) []annotation.Annotation {
	out := make([]annotation.Annotation, 0, len(frags))
	for _, f := range frags {
		if n := len(out); n > 0 {
			merged, pair := join(out[n-1], f, l)
			if trace != nil {
				trace(pair)
			}
			if pair.Merged {
				out[n-1] = merged
				continue
			}
		}
		out = append(out, f)
	}
	return out
}

func join(a, b annotation.Annotation, l *layout.Layout) (annotation.Annotation, Pair) {
	ab, bb := a.Box(), b.Box()
	pair := Pair{
		A:    a,
		B:    b,
		Rise: abs(ab.Top() - bb.Top()),
		Gap:  abs(bb.Left() - ab.Right()),
	}
	if pair.Rise > l.MergeRise || pair.Gap > l.MergeGap {
		return annotation.Annotation{}, pair
	}
	pair.Merged = true

	sep := " "
	if pair.Gap <= l.JoinGap {
		sep = ""
	}
	return annotation.Annotation{
		Locale:       a.Locale,
		Description:  a.Description + sep + b.Description,
		BoundingPoly: ab.Merge(bb),
	}, pair
}

// FilterColumns keeps short fragments whose right edge is near a column end.
func FilterColumns(frags []annotation.Annotation, l *layout.Layout) []annotation.Annotation {
	out := make([]annotation.Annotation, 0, len(frags))
	for _, f := range frags {
		if len(f.Description) > l.MaxLength {
			continue
		}
		if !near(f.Box().Right(), l.Ends, l.EndTolerance) {
			continue
		}
		out = append(out, f)
	}
	return out
}

// FilterKnown keeps fragments whose every word is in lex.
func FilterKnown(frags []annotation.Annotation, lex Lexicon) ([]annotation.Annotation, error) {
	out := make([]annotation.Annotation, 0, len(frags))
	for _, f := range frags {
		ok, err := lex.FullyKnown(f.Description)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, f)
		}
	}
	return out, nil
}

// Finalize splits exactly p.Want() fragments into header and values. It
// reports false when the count does not match.
func Finalize(frags []annotation.Annotation, p layout.Profile) (header annotation.Annotation, values []annotation.Annotation, ok bool) {
	if len(frags) != p.Want() {
		return annotation.Annotation{}, nil, false
	}
	sorted := slices.Clone(frags)
	slices.SortStableFunc(sorted, func(a, b annotation.Annotation) int {
		return a.Box().Left() - b.Box().Left()
	})
	slices.SortStableFunc(sorted, func(a, b annotation.Annotation) int {
		return a.Box().Top() - b.Box().Top()
	})
	return sorted[p.ExpectedLines], sorted[:p.ExpectedLines], true
}

func near(v int, targets []int, tol int) bool {
	for _, t := range targets {
		if abs(t-v) <= tol {
			return true
		}
	}
	return false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
