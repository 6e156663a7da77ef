package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strconv"

	"github.com/disintegration/imaging"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// OverlayBox is one outlined region of a debug overlay.
type OverlayBox struct {
	Rect  image.Rectangle
	Label int
}

// Overlay outlines every box on a copy of img in its own color and stamps
// the box label in its corner.
func Overlay(img image.Image, boxes []OverlayBox, thickness int) *image.RGBA {
	bounds := img.Bounds()
	result := image.NewRGBA(bounds)
	draw.Draw(result, bounds, img, bounds.Min, draw.Src)

	if len(boxes) == 0 {
		return result
	}
	if thickness < 1 {
		thickness = 1
	}

	palette := colorful.FastHappyPalette(len(boxes))
	for i, b := range boxes {
		r, g, bl := palette[i].RGB255()
		c := color.RGBA{R: r, G: g, B: bl, A: 255}
		outline(result, b.Rect, thickness, c)
		drawLabel(result, b.Rect.Min.X+thickness+1, b.Rect.Min.Y+thickness+1,
			strconv.Itoa(b.Label), color.RGBA{255, 255, 255, 255}, c)
	}
	return result
}

// SaveOverlay writes Overlay(img, boxes) to path. The format follows the extension.
func SaveOverlay(path string, img image.Image, boxes []OverlayBox) error {
	if err := imaging.Save(Overlay(img, boxes, 4), path); err != nil {
		return fmt.Errorf("failed to save overlay: %w", err)
	}
	return nil
}

// Loader decodes the image at a path. ImageCache and NativeCropper implement it.
type Loader interface {
	Load(path string) (image.Image, error)
}

// RenderOverlay loads the image at source and writes its overlay to dest.
// A nil load decodes source directly from disk.
func RenderOverlay(load Loader, source, dest string, boxes []OverlayBox) error {
	var (
		img image.Image
		err error
	)
	if load != nil {
		img, err = load.Load(source)
	} else {
		img, err = imaging.Open(source)
	}
	if err != nil {
		return fmt.Errorf("failed to open image: %w", err)
	}
	return SaveOverlay(dest, img, boxes)
}

func outline(img *image.RGBA, r image.Rectangle, thickness int, c color.RGBA) {
	r = r.Canon()
	edges := []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+thickness),
		image.Rect(r.Min.X, r.Max.Y-thickness, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y, r.Min.X+thickness, r.Max.Y),
		image.Rect(r.Max.X-thickness, r.Min.Y, r.Max.X, r.Max.Y),
	}
	src := image.NewUniform(c)
	for _, e := range edges {
		e = e.Intersect(img.Bounds())
		if !e.Empty() {
			draw.Draw(img, e, src, image.Point{}, draw.Src)
		}
	}
}

// drawLabel draws digits with a 3x5 pixel font on a filled background.
func drawLabel(img *image.RGBA, x, y int, text string, fg, bg color.RGBA) {
	glyphs := map[rune][]string{
		'0': {"111", "101", "101", "101", "111"},
		'1': {"010", "110", "010", "010", "111"},
		'2': {"111", "001", "111", "100", "111"},
		'3': {"111", "001", "111", "001", "111"},
		'4': {"101", "101", "111", "001", "001"},
		'5': {"111", "100", "111", "001", "111"},
		'6': {"111", "100", "111", "101", "111"},
		'7': {"111", "001", "001", "001", "001"},
		'8': {"111", "101", "111", "101", "111"},
		'9': {"111", "101", "111", "001", "111"},
	}

	bounds := img.Bounds()
	set := func(px, py int, c color.RGBA) {
		if image.Pt(px, py).In(bounds) {
			img.SetRGBA(px, py, c)
		}
	}

	const charWidth, labelHeight = 4, 7
	for dy := -1; dy < labelHeight; dy++ {
		for dx := -1; dx < len(text)*charWidth; dx++ {
			set(x+dx, y+dy, bg)
		}
	}

	cx := x
	for _, ch := range text {
		for row, line := range glyphs[ch] {
			for col, pixel := range line {
				if pixel == '1' {
					set(cx+col, y+row, fg)
				}
			}
		}
		cx += charWidth
	}
}
