package annotation

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ironsheep/label-extract/internal/failure"
)

const sampleDocument = `{
  "textAnnotations": [
    {"locale": "fr", "description": "Chêne", "boundingPoly": {"vertices": {
      "sw": {"x": 100, "y": 1100}, "se": {"x": 300, "y": 1100},
      "ne": {"x": 300, "y": 1150}, "nw": {"x": 100, "y": 1150}}}},
    {"description": "Oak", "boundingPoly": {"vertices": {
      "sw": {"y": 1000}, "se": {"x": 80, "y": 1000}, "ne": {"x": 80, "y": 1040}, "nw": {"y": 1040}}}}
  ],
  "fullTextAnnotation": {
    "text": "Chêne\nOak",
    "pages": [{
      "width": 3000, "height": 5000,
      "property": {"detectedLanguages": [{"languageCode": "fr"}]},
      "blocks": [{"blockType": "TEXT", "paragraphs": [{"words": [{"symbols": [{"text": "O"}]}]}]}]
    }]
  }
}`

func TestDecode(t *testing.T) {
	doc, err := Decode(strings.NewReader(sampleDocument))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if len(doc.TextAnnotations) != 2 {
		t.Fatalf("annotations: got %d, want 2", len(doc.TextAnnotations))
	}

	first, second := doc.TextAnnotations[0], doc.TextAnnotations[1]
	if first.Locale != "fr" {
		t.Errorf("explicit locale: got %q, want fr", first.Locale)
	}
	if second.Locale != DefaultLocale {
		t.Errorf("default locale: got %q, want %q", second.Locale, DefaultLocale)
	}
	if second.BoundingPoly.Left() != 0 || second.BoundingPoly.Right() != 80 {
		t.Errorf("missing coordinates should default to zero: left=%d right=%d",
			second.BoundingPoly.Left(), second.BoundingPoly.Right())
	}

	if doc.FullTextAnnotation == nil || len(doc.FullTextAnnotation.Pages) != 1 {
		t.Fatal("full text annotation not parsed")
	}
	if got := doc.FullTextAnnotation.Pages[0].Blocks[0].BlockType; got != BlockText {
		t.Errorf("block type: got %s, want %s", got, BlockText)
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"not json", `textAnnotations`},
		{"missing annotations", `{"fullTextAnnotation": {"text": ""}}`},
		{"bad block type", `{"textAnnotations": [], "fullTextAnnotation": {"pages": [{"blocks": [{"blockType": "STAMP"}]}]}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(strings.NewReader(tt.json)); err == nil {
				t.Error("Decode should fail")
			}
		})
	}
}

func TestAnnotation_String(t *testing.T) {
	doc, err := Decode(strings.NewReader(sampleDocument))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	got := doc.TextAnnotations[1].String()
	want := "Oak                       (   0, 1040) (  80, 1000)"
	if got != want {
		t.Errorf("String:\n got %q\nwant %q", got, want)
	}
}

func TestHasDescription(t *testing.T) {
	frags := []Annotation{{Description: "Buyer"}, {Description: "BUYER"}}
	if !HasDescription(frags, "BUYER") {
		t.Error("exact match should be found")
	}
	if HasDescription(frags[:1], "BUYER") {
		t.Error("match must be case-sensitive")
	}
}

func TestFileSource(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "0230_017.txt"), []byte(sampleDocument), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "broken.txt"), []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}

	src := &FileSource{Root: root}

	frags, err := src.Fragments(context.Background(), "0230_017")
	if err != nil {
		t.Fatalf("Fragments failed: %v", err)
	}
	if len(frags) != 2 {
		t.Errorf("fragments: got %d, want 2", len(frags))
	}

	for _, id := range []string{"missing", "broken"} {
		t.Run(id, func(t *testing.T) {
			_, err := src.Fragments(context.Background(), id)
			var fe *failure.Error
			if !errors.As(err, &fe) || fe.Kind != failure.InputMalformed {
				t.Errorf("expected %s failure, got %v", failure.InputMalformed, err)
			}
		})
	}
}
