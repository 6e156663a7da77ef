package ocr

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/imgio"
	"github.com/otiai10/gosseract/v2"

	"github.com/ironsheep/label-extract/internal/annotation"
	"github.com/ironsheep/label-extract/internal/failure"
	"github.com/ironsheep/label-extract/internal/geometry"
	"github.com/ironsheep/label-extract/internal/logging"
)

const (
	// DefaultLanguage is the Tesseract language used when none is configured.
	DefaultLanguage = "eng"

	// DefaultContrast is the bild contrast change applied before recognition.
	DefaultContrast = 0.3
)

// Word is one recognized word and its pixel rectangle.
type Word struct {
	Text       string
	Confidence float64
	Box        image.Rectangle
}

// TesseractSource implements annotation.Source by running OCR.
type TesseractSource struct {
	Root     string
	Language string
	Contrast float64
	Log      *logging.Logger
}

// NewTesseractSource creates a source reading photos under root.
func NewTesseractSource(root string, log *logging.Logger) *TesseractSource {
	return &TesseractSource{
		Root:     root,
		Language: DefaultLanguage,
		Contrast: DefaultContrast,
		Log:      log,
	}
}

// ImagePath returns the photo path for identifier.
func (s *TesseractSource) ImagePath(identifier string) string {
	return filepath.Join(s.Root, identifier+annotation.ImageSuffix)
}

// Fragments implements annotation.Source by running Tesseract over the
// identifier's label photo.
//
// The photo is converted to grayscale and contrast-adjusted into a temporary
// PNG first; the temporary file is removed before returning.
//
// # Errors
//
//   - Kind input-malformed if the photo does not exist
//   - Kind collaborator-failure if preprocessing or recognition fails
func (s *TesseractSource) Fragments(ctx context.Context, identifier string) ([]annotation.Annotation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := s.ImagePath(identifier)
	if _, err := os.Stat(path); err != nil {
		return nil, failure.New(failure.InputMalformed, "failed to open label photo", err)
	}

	prepared, err := Preprocess(path, s.Contrast)
	if err != nil {
		return nil, failure.New(failure.Collaborator, "failed to preprocess label photo", err)
	}
	defer os.Remove(prepared)

	lang := s.Language
	if lang == "" {
		lang = DefaultLanguage
	}

	words, err := Recognize(prepared, lang)
	if err != nil {
		return nil, failure.New(failure.Collaborator, "tesseract failed", err)
	}
	s.Log.Debug("recognized words", "identifier", identifier, "count", len(words))

	return WordsToAnnotations(words), nil
}

// Preprocess writes a grayscale, contrast-adjusted copy of the image at path
// to a temporary PNG and returns its path. The caller removes the file.
func Preprocess(path string, contrast float64) (string, error) {
	img, err := imgio.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to load image: %w", err)
	}

	var out image.Image = effect.Grayscale(img)
	if contrast != 0 {
		out = adjust.Contrast(out, contrast)
	}

	tmp, err := os.CreateTemp("", "label-ocr-*.png")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()

	if err := imgio.Save(tmpPath, out, imgio.PNGEncoder()); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to save preprocessed image: %w", err)
	}
	return tmpPath, nil
}

// Recognize runs word-level OCR on the image at path.
func Recognize(path, language string) ([]Word, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(language); err != nil {
		return nil, fmt.Errorf("failed to set language: %w", err)
	}

	if err := client.SetImage(path); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("failed to get word boxes: %w", err)
	}

	words := make([]Word, 0, len(boxes))
	for _, box := range boxes {
		words = append(words, Word{
			Text:       box.Word,
			Confidence: float64(box.Confidence) / 100.0,
			Box:        box.Box,
		})
	}
	return words, nil
}

// WordsToAnnotations converts recognized words to fragments. Empty words are
// dropped.
func WordsToAnnotations(words []Word) []annotation.Annotation {
	frags := make([]annotation.Annotation, 0, len(words))
	for _, w := range words {
		if w.Text == "" {
			continue
		}
		frags = append(frags, annotation.Annotation{
			Locale:       annotation.DefaultLocale,
			Description:  w.Text,
			BoundingPoly: geometry.NewBox(w.Box.Min.X, w.Box.Min.Y, w.Box.Max.X, w.Box.Max.Y),
		})
	}
	return frags
}
