// Package extract turns one identifier into a transcript and reference crops.
package extract

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ironsheep/label-extract/internal/annotation"
	"github.com/ironsheep/label-extract/internal/failure"
	"github.com/ironsheep/label-extract/internal/imaging"
	"github.com/ironsheep/label-extract/internal/logging"
	"github.com/ironsheep/label-extract/internal/reconstruct"
)

// TranscriptSuffix names batch transcripts: "<identifier>.extract.txt".
const TranscriptSuffix = ".extract.txt"

// TranscriptPath returns the batch transcript path for identifier under dir.
func TranscriptPath(dir, identifier string) string {
	return filepath.Join(dir, identifier+TranscriptSuffix)
}

// Extractor processes single identifiers. It is safe for concurrent use when
// its Source, Engine and Cropper are.
type Extractor struct {
	Source  annotation.Source
	Engine  *reconstruct.Engine
	Cropper imaging.Cropper

	// PhotoRoot holds "<identifier>.rot.png" label photos.
	PhotoRoot string
	// OutputDir receives crops and debug overlays.
	OutputDir string

	// Overlay writes "<identifier>.debug.png" outlining the candidates.
	Overlay bool

	// Stdout receives the transcript when no output path is given.
	Stdout io.Writer
	Log    *logging.Logger
}

// PhotoPath returns the label photo for identifier.
func (x *Extractor) PhotoPath(identifier string) string {
	return filepath.Join(x.PhotoRoot, identifier+annotation.ImageSuffix)
}

// CropPath returns the path of crop i for identifier.
func (x *Extractor) CropPath(identifier string, i int) string {
	return filepath.Join(x.OutputDir, fmt.Sprintf("%s.crop.%d.png", identifier, i))
}

// OverlayPath returns the debug overlay path for identifier.
func (x *Extractor) OverlayPath(identifier string) string {
	return filepath.Join(x.OutputDir, identifier+".debug.png")
}

// Extract reconstructs identifier's lines, writes them to outPath and crops
// the photo once per line.
//
// Parameters:
//   - ctx: Passed to the annotation source and checked before every line.
//   - identifier: The item name; annotations and photo are resolved from it.
//   - outPath: Transcript destination. Empty writes to Stdout instead.
//
// Returns:
//   - *reconstruct.Result: Non-nil whenever reconstruction ran, including when
//     the item later failed. Servers use it to report candidates.
//   - error: Nil only when every line was written and cropped.
//
// Lines are written in order and line i is cropped to CropPath(identifier, i)
// right after it is written, so a crop failure leaves later lines uncropped.
//
// # Errors
//
//   - Kind input-malformed when the annotations are missing or unreadable
//   - Kind reconstruction-inconclusive when the line count does not match the
//     selected layout profile
//   - Kind collaborator-failure when a crop fails or the transcript cannot be written
//   - Kind dictionary-unavailable when the word list cannot be loaded
//
// On any failure the transcript file at outPath is removed. A removal error is
// joined to the returned error.
func (x *Extractor) Extract(ctx context.Context, identifier, outPath string) (res *reconstruct.Result, err error) {
	x.Log.Info("Extracting " + identifier)

	var out io.Writer = x.Stdout
	if out == nil {
		out = os.Stdout
	}

	if outPath != "" {
		f, createErr := os.Create(outPath)
		if createErr != nil {
			return nil, failure.New(failure.Collaborator, "failed to create transcript", createErr)
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil && err == nil {
				err = failure.New(failure.Collaborator, "failed to close transcript", closeErr)
			}
			if err != nil {
				if rmErr := os.Remove(outPath); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
					err = errors.Join(err, failure.New(failure.Collaborator, "failed to remove partial transcript", rmErr))
				}
			}
		}()
		out = f
	}

	return x.run(ctx, identifier, out)
}

func (x *Extractor) run(ctx context.Context, identifier string, out io.Writer) (*reconstruct.Result, error) {
	frags, err := x.Source.Fragments(ctx, identifier)
	if err != nil {
		return nil, err
	}

	res, err := x.Engine.Reconstruct(frags)
	if err != nil {
		return nil, err
	}

	photo := x.PhotoPath(identifier)
	if r, ok := x.Cropper.(imaging.Releaser); ok {
		defer r.Release(photo)
	}

	if x.Overlay {
		x.writeOverlay(identifier, res)
	}

	if !res.Conclusive {
		return res, failure.Newf(failure.Inconclusive,
			"found %d candidate lines for the %s layout, want %d",
			len(res.Candidates), res.Profile.Name, res.Profile.Want())
	}

	crop := x.Engine.Layout.Crop
	w := bufio.NewWriter(out)
	for i, v := range res.Values {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		if _, err := fmt.Fprintln(w, reconstruct.FormatLine(res.Header.Description, v.Description)); err != nil {
			return res, failure.New(failure.Collaborator, "failed to write transcript", err)
		}

		req := imaging.CropRequest{
			Source:       photo,
			Region:       crop.Region(v.Box()),
			ScalePercent: crop.ScalePercent,
			Dest:         x.CropPath(identifier, i),
		}
		if err := x.Cropper.Crop(ctx, req); err != nil {
			return res, failure.New(failure.Collaborator, fmt.Sprintf("failed to crop line %d", i), err)
		}
	}

	if err := w.Flush(); err != nil {
		return res, failure.New(failure.Collaborator, "failed to write transcript", err)
	}
	return res, nil
}

// writeOverlay is best effort; a missing photo only produces a warning. The
// photo is decoded through the cropper when it can load images, so the crops
// that follow reuse the same decode.
func (x *Extractor) writeOverlay(identifier string, res *reconstruct.Result) {
	boxes := make([]imaging.OverlayBox, len(res.Candidates))
	for i, c := range res.Candidates {
		boxes[i] = imaging.OverlayBox{Rect: c.Box().Rect(), Label: i}
	}

	load, _ := x.Cropper.(imaging.Loader)
	dest := x.OverlayPath(identifier)
	if err := imaging.RenderOverlay(load, x.PhotoPath(identifier), dest, boxes); err != nil {
		x.Log.Warn("failed to write debug overlay", "identifier", identifier, "error", err)
		return
	}
	x.Log.Debug("wrote debug overlay", "identifier", identifier, "path", dest)
}
