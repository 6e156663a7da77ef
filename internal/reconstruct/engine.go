package reconstruct

import (
	"fmt"

	"github.com/ironsheep/label-extract/internal/annotation"
	"github.com/ironsheep/label-extract/internal/layout"
	"github.com/ironsheep/label-extract/internal/logging"
)

// Engine runs the reconstruction pipeline with one layout and word list.
// It holds no per-document state and is safe for concurrent use when its
// Lexicon is.
type Engine struct {
	Layout  *layout.Layout
	Lexicon Lexicon
	Log     *logging.Logger
}

// New creates an engine. log may be nil.
func New(l *layout.Layout, lex Lexicon, log *logging.Logger) *Engine {
	return &Engine{Layout: l, Lexicon: lex, Log: log}
}

// Result is the outcome of reconstructing one document.
type Result struct {
	Profile layout.Profile
	// Candidates are the fragments left after the last filter that ran.
	Candidates []annotation.Annotation
	// FallbackApplied is set when the dictionary filter had to run.
	FallbackApplied bool
	// Conclusive is set when Candidates matched the expected count.
	Conclusive bool

	Header annotation.Annotation
	Values []annotation.Annotation
}

// Lines renders "<header> - <value>" for every value, in order.
func (r *Result) Lines() []string {
	lines := make([]string, len(r.Values))
	for i, v := range r.Values {
		lines[i] = FormatLine(r.Header.Description, v.Description)
	}
	return lines
}

// FormatLine joins a section header and a value.
func FormatLine(header, value string) string {
	return fmt.Sprintf("%s - %s", header, value)
}

// Reconstruct rebuilds the header and value lines of one label from its
// OCR fragments.
//
// Parameters:
//   - frags: Fragments in any order. The slice is not modified.
//
// Returns:
//   - *Result: The selected profile, the surviving candidates and, when the
//     count matches the profile, the header and values. Conclusive reports
//     whether the count matched.
//   - error: Non-nil only when the word list is needed and cannot be loaded.
//
// The lexicon is consulted only when the geometric stages leave the wrong
// number of candidates. A count that still does not match is not an error.
//
// # Errors
//
//   - Returns a dictionary-unavailable failure from the lexicon
func (e *Engine) Reconstruct(frags []annotation.Annotation) (*Result, error) {
	l := e.Layout
	p := l.Select(frags)

	if e.Log.DebugEnabled() {
		for _, f := range frags {
			e.Log.Debug("fragment", "text", f.String())
		}
	}

	kept := FilterBands(frags, l, p)
	ordered := Order(kept, l.OrderTolerance)
	merged := Coalesce(ordered, l, e.trace)
	candidates := FilterColumns(merged, l)

	res := &Result{Profile: p}
	if len(candidates) != p.Want() {
		e.Log.Debug("count mismatch, applying dictionary filter",
			"profile", p.Name, "found", len(candidates), "want", p.Want())
		known, err := FilterKnown(candidates, e.Lexicon)
		if err != nil {
			return nil, err
		}
		candidates = known
		res.FallbackApplied = true
	}
	res.Candidates = candidates

	header, values, ok := Finalize(candidates, p)
	if !ok {
		return res, nil
	}
	res.Conclusive = true
	res.Header = header
	res.Values = values
	return res, nil
}

func (e *Engine) trace(p Pair) {
	if !e.Log.DebugEnabled() {
		return
	}
	e.Log.Debug("coalesce", "a", p.A.String(), "b", p.B.String(),
		"rise", p.Rise, "gap", p.Gap, "merged", p.Merged)
}
