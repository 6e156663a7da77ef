// Package ocr produces text fragments by running Tesseract on a label photo.
//
// TesseractSource is an annotation.Source for labels that have no
// pre-computed annotation file. It reads "<root>/<identifier>.rot.png",
// cleans the photo up (grayscale plus a contrast boost) and reports every
// recognized word as one fragment with its bounding box.
//
// # Prerequisites
//
// Tesseract must be installed on the system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr tesseract-ocr-eng
//   - macOS: brew install tesseract
//
// # Coordinates
//
// Tesseract reports rectangles in image pixels with y growing downward. Each
// word rectangle becomes a box whose sw corner is the rectangle's minimum
// point and whose ne corner is its maximum point, so Bottom is the visual top
// edge of the word. The reconstruction stages only compare fragments with one
// another, which makes this orientation consistent for a whole label.
package ocr
