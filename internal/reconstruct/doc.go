// Package reconstruct turns the unordered fragments of one OCR document into
// the ordered value lines of a label.
//
// # Pipeline
//
// Each stage is a pure function over a fragment slice and never modifies its
// input:
//
//  1. FilterBands: drop wide fragments, fragments outside every expected
//     band, all-caps/digit boilerplate and noise tokens.
//  2. Order: tolerant sort by left edge, then stable tolerant sort by top
//     edge, giving row-major reading order that ignores small OCR jitter.
//  3. Coalesce: merge neighbours on the same row whose horizontal gap is
//     small, joining their text with a space (or nothing when they touch).
//  4. FilterColumns: drop long strings and fragments whose right edge is
//     not near a known column end.
//  5. FilterKnown: only when the count is wrong, keep fragments made of
//     dictionary words.
//  6. Finalize: with exactly ExpectedLines+1 survivors, exact sort by left
//     then top; the last one is the section header, the rest are values.
//
// A count that never matches is not an error: the Result is simply not
// Conclusive.
package reconstruct
