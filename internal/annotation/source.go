package annotation

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ironsheep/label-extract/internal/failure"
)

const (
	// Extension is the file extension of annotation documents in the content tree.
	Extension = ".txt"
	// ImageSuffix names the label photo that sits next to an annotation document.
	ImageSuffix = ".rot.png"
)

// Source produces the fragments for one identifier.
type Source interface {
	Fragments(ctx context.Context, identifier string) ([]Annotation, error)
}

// FileSource reads "<Root>/<identifier>.txt" JSON documents.
type FileSource struct {
	Root string
}

// Path returns the annotation document path for identifier.
func (s *FileSource) Path(identifier string) string {
	return filepath.Join(s.Root, identifier+Extension)
}

// Load parses the annotation document for identifier.
func (s *FileSource) Load(identifier string) (*Document, error) {
	path := s.Path(identifier)
	f, err := os.Open(path)
	if err != nil {
		return nil, failure.New(failure.InputMalformed, "failed to open annotations", err)
	}
	defer f.Close()

	doc, err := Decode(f)
	if err != nil {
		return nil, failure.New(failure.InputMalformed, fmt.Sprintf("failed to parse %s", path), err)
	}
	return doc, nil
}

// Fragments implements Source.
func (s *FileSource) Fragments(_ context.Context, identifier string) ([]Annotation, error) {
	doc, err := s.Load(identifier)
	if err != nil {
		return nil, err
	}
	return doc.TextAnnotations, nil
}

// Decode parses an annotation document. The textAnnotations array is required.
func Decode(r io.Reader) (*Document, error) {
	var raw struct {
		Document
		TextAnnotations *[]Annotation `json:"textAnnotations"`
	}
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, err
	}
	if raw.TextAnnotations == nil {
		return nil, fmt.Errorf("missing textAnnotations")
	}
	doc := raw.Document
	doc.TextAnnotations = *raw.TextAnnotations
	return &doc, nil
}
