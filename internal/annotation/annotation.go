// Package annotation holds the OCR document model: the flat list of detected
// text fragments the extractor works on, and the full-page layout tree that
// accompanies it in cloud OCR output.
package annotation

import (
	"encoding/json"
	"fmt"

	"github.com/ironsheep/label-extract/internal/geometry"
)

// DefaultLocale is assigned to fragments that omit a locale.
const DefaultLocale = "en"

// Document is one OCR response for a photographed label.
type Document struct {
	TextAnnotations    []Annotation        `json:"textAnnotations"`
	FullTextAnnotation *FullTextAnnotation `json:"fullTextAnnotation,omitempty"`
}

// Annotation is a single detected text fragment.
type Annotation struct {
	Locale       string               `json:"locale"`
	Description  string               `json:"description"`
	BoundingPoly geometry.BoundingBox `json:"boundingPoly"`
}

// UnmarshalJSON applies DefaultLocale when the locale is absent.
func (a *Annotation) UnmarshalJSON(data []byte) error {
	type plain Annotation
	p := plain{Locale: DefaultLocale}
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*a = Annotation(p)
	return nil
}

// Box returns the fragment's bounding box.
func (a Annotation) Box() geometry.BoundingBox {
	return a.BoundingPoly
}

// String renders the fragment for diagnostics as its text followed by the
// (left, top) and (right, bottom) edges.
func (a Annotation) String() string {
	b := a.BoundingPoly
	return fmt.Sprintf("%-25s (%4d, %4d) (%4d, %4d)",
		a.Description, b.Left(), b.Top(), b.Right(), b.Bottom())
}

// FullTextAnnotation is the page layout tree. It is parsed for completeness
// and not used by line reconstruction.
type FullTextAnnotation struct {
	Text  string `json:"text"`
	Pages []Page `json:"pages"`
}

// Page is one page of the layout tree.
type Page struct {
	Width    int      `json:"width"`
	Height   int      `json:"height"`
	Property Property `json:"property"`
	Blocks   []Block  `json:"blocks"`
}

// Block is a region of a page.
type Block struct {
	BlockType   BlockType            `json:"blockType"`
	Property    Property             `json:"property"`
	BoundingBox geometry.BoundingBox `json:"boundingBox"`
	Paragraphs  []Paragraph          `json:"paragraphs"`
}

// Paragraph groups words inside a block.
type Paragraph struct {
	Property    Property             `json:"property"`
	BoundingBox geometry.BoundingBox `json:"boundingBox"`
	Words       []Word               `json:"words"`
}

// Word groups symbols inside a paragraph.
type Word struct {
	BoundingBox geometry.BoundingBox `json:"boundingBox"`
	Symbols     []Symbol             `json:"symbols"`
}

// Symbol is a single recognized character.
type Symbol struct {
	Property    Property             `json:"property"`
	BoundingBox geometry.BoundingBox `json:"boundingBox"`
	Text        string               `json:"text"`
}

// Property carries detected languages.
type Property struct {
	DetectedLanguages []Language `json:"detectedLanguages"`
}

// Language is a detected language code.
type Language struct {
	LanguageCode string `json:"languageCode"`
}

// BlockType classifies a layout block.
type BlockType string

const (
	BlockUnknown BlockType = "UNKNOWN"
	BlockText    BlockType = "TEXT"
	BlockTable   BlockType = "TABLE"
	BlockPicture BlockType = "PICTURE"
	BlockRuler   BlockType = "RULER"
	BlockBarcode BlockType = "BARCODE"
)

// UnmarshalJSON rejects block types outside the known set.
func (t *BlockType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch bt := BlockType(s); bt {
	case BlockUnknown, BlockText, BlockTable, BlockPicture, BlockRuler, BlockBarcode:
		*t = bt
		return nil
	default:
		return fmt.Errorf("unknown block type %q", s)
	}
}

// HasDescription reports whether any fragment's text equals s exactly.
func HasDescription(fragments []Annotation, s string) bool {
	for _, f := range fragments {
		if f.Description == s {
			return true
		}
	}
	return false
}
