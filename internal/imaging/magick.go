package imaging

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// DefaultGraphicsMagick is the GraphicsMagick binary looked up on PATH.
const DefaultGraphicsMagick = "gm"

// GraphicsMagickCropper crops by running "gm convert".
type GraphicsMagickCropper struct {
	// Path is the gm binary; empty means DefaultGraphicsMagick.
	Path string
}

// Args returns the command line arguments for req, without the binary.
func (g *GraphicsMagickCropper) Args(req CropRequest) []string {
	return []string{
		"convert",
		req.Source,
		"-crop", req.Geometry(),
		"-resize", fmt.Sprintf("%d%%", req.ScalePercent),
		req.Dest,
	}
}

// Crop implements Cropper. The subprocess runs to completion; its combined
// output is attached to the error on failure.
func (g *GraphicsMagickCropper) Crop(ctx context.Context, req CropRequest) error {
	bin := g.Path
	if bin == "" {
		bin = DefaultGraphicsMagick
	}

	cmd := exec.CommandContext(ctx, bin, g.Args(req)...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("graphicsmagick failed: %w, output: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}
