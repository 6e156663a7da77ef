package imaging

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
)

func TestOverlay(t *testing.T) {
	src := createInMemoryImage(100, 100, color.Black)
	boxes := []OverlayBox{
		{Rect: image.Rect(10, 10, 60, 40), Label: 0},
		{Rect: image.Rect(20, 50, 90, 90), Label: 12},
	}

	out := Overlay(src, boxes, 2)

	if out.Bounds() != src.Bounds() {
		t.Fatalf("bounds = %v, want %v", out.Bounds(), src.Bounds())
	}

	// Bottom-right corner of each outline is painted, interior is untouched.
	for _, b := range boxes {
		edge := out.RGBAAt(b.Rect.Max.X-1, b.Rect.Max.Y-1)
		if edge == (color.RGBA{0, 0, 0, 255}) {
			t.Errorf("outline of %v not drawn", b.Rect)
		}
		inner := out.RGBAAt(b.Rect.Max.X-10, b.Rect.Max.Y-10)
		if inner != (color.RGBA{0, 0, 0, 255}) {
			t.Errorf("interior of %v painted: %v", b.Rect, inner)
		}
	}

	// Source is not modified.
	if r, g, b, _ := src.At(10, 10).RGBA(); r|g|b != 0 {
		t.Error("Overlay modified its source image")
	}
}

func TestOverlay_NoBoxes(t *testing.T) {
	src := createInMemoryImage(10, 10, color.White)
	out := Overlay(src, nil, 2)
	if got := out.RGBAAt(5, 5); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("pixel = %v, want white", got)
	}
}

func TestOverlay_BoxPastEdge(t *testing.T) {
	src := createInMemoryImage(20, 20, color.Black)
	// Must not panic.
	Overlay(src, []OverlayBox{{Rect: image.Rect(-10, -10, 500, 500), Label: 3}}, 0)
}

func TestSaveOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "label.debug.png")
	src := createInMemoryImage(40, 30, color.Black)

	if err := SaveOverlay(path, src, []OverlayBox{{Rect: image.Rect(5, 5, 35, 25), Label: 1}}); err != nil {
		t.Fatalf("SaveOverlay failed: %v", err)
	}

	img, err := imaging.Open(path)
	if err != nil {
		t.Fatalf("failed to reopen overlay: %v", err)
	}
	if img.Bounds().Dx() != 40 || img.Bounds().Dy() != 30 {
		t.Errorf("overlay size = %v, want 40x30", img.Bounds())
	}
}

func TestRenderOverlay(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "label.rot.png")
	if err := imaging.Save(createInMemoryImage(40, 30, color.Black), source); err != nil {
		t.Fatal(err)
	}
	boxes := []OverlayBox{{Rect: image.Rect(5, 5, 35, 25), Label: 0}}
	shared, cropperCache := NewImageCache(), NewImageCache()

	tests := []struct {
		name     string
		load     Loader
		cache    *ImageCache
		wantSize int
	}{
		{"from disk", nil, nil, 0},
		{"through cache", shared, shared, 1},
		{"through cropper", NewNativeCropper(cropperCache), cropperCache, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dest := filepath.Join(dir, tt.name+".debug.png")
			if err := RenderOverlay(tt.load, source, dest, boxes); err != nil {
				t.Fatalf("RenderOverlay failed: %v", err)
			}
			if _, err := imaging.Open(dest); err != nil {
				t.Errorf("overlay unreadable: %v", err)
			}
			if tt.cache != nil && tt.cache.Len() != tt.wantSize {
				t.Errorf("cache holds %d images, want %d", tt.cache.Len(), tt.wantSize)
			}
		})
	}
}

func TestRenderOverlay_MissingSource(t *testing.T) {
	dir := t.TempDir()
	err := RenderOverlay(NewImageCache(), filepath.Join(dir, "absent.png"), filepath.Join(dir, "out.png"), nil)
	if err == nil {
		t.Fatal("expected an error for a missing source")
	}
}
