package imaging

import (
	"context"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// CropRequest asks for Region of Source, scaled to ScalePercent, written to Dest.
type CropRequest struct {
	Source       string
	Region       image.Rectangle
	ScalePercent int
	Dest         string
}

// Geometry renders the region as a "WxH+X+Y" geometry string. Offsets keep
// their sign, so a negative X renders as "-X".
func (r CropRequest) Geometry() string {
	return fmt.Sprintf("%dx%d%+d%+d", r.Region.Dx(), r.Region.Dy(), r.Region.Min.X, r.Region.Min.Y)
}

// Cropper writes cropped reference images.
type Cropper interface {
	Crop(ctx context.Context, req CropRequest) error
}

// Releaser is implemented by croppers that hold per-source state.
type Releaser interface {
	Release(source string)
}

// NativeCropper crops in-process.
type NativeCropper struct {
	cache *ImageCache
}

// NewNativeCropper creates a cropper backed by cache. A nil cache gets a
// private one.
func NewNativeCropper(cache *ImageCache) *NativeCropper {
	if cache == nil {
		cache = NewImageCache()
	}
	return &NativeCropper{cache: cache}
}

// Crop implements Cropper.
func (c *NativeCropper) Crop(ctx context.Context, req CropRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	img, err := c.cache.Load(req.Source)
	if err != nil {
		return err
	}

	cropped, err := CropImage(img, req.Region, req.ScalePercent)
	if err != nil {
		return err
	}

	if err := imaging.Save(cropped, req.Dest); err != nil {
		return fmt.Errorf("failed to save crop: %w", err)
	}
	return nil
}

// Load returns the decoded image at path through the cropper's cache.
func (c *NativeCropper) Load(path string) (image.Image, error) {
	return c.cache.Load(path)
}

// Release drops the cached decode of source.
func (c *NativeCropper) Release(source string) {
	c.cache.Evict(source)
}

// CropImage cuts region out of img and scales the result.
//
// Parameters:
//   - img: The source image. It is not modified.
//   - region: The window in img's coordinates. Parts outside the image are
//     clipped away, as GraphicsMagick does.
//   - scalePercent: Output size as a percentage of the clipped window. Each
//     side is at least one pixel.
//
// Returns:
//   - image.Image: A new *image.NRGBA whose bounds start at (0,0).
//   - error: Non-nil if no crop can be made.
//
// Resizing uses the Lanczos filter.
//
// # Errors
//
//   - Returns error if region is empty or scalePercent is not positive
//   - Returns error if region does not overlap the image
func CropImage(img image.Image, region image.Rectangle, scalePercent int) (image.Image, error) {
	if region.Empty() {
		return nil, fmt.Errorf("invalid crop region %v", region)
	}
	if scalePercent <= 0 {
		return nil, fmt.Errorf("invalid scale %d%%", scalePercent)
	}

	clipped := region.Intersect(img.Bounds())
	if clipped.Empty() {
		return nil, fmt.Errorf("crop region %v outside image bounds %v", region, img.Bounds())
	}

	var cropped image.Image = imaging.Crop(img, clipped)

	if scalePercent != 100 {
		w := max(1, cropped.Bounds().Dx()*scalePercent/100)
		h := max(1, cropped.Bounds().Dy()*scalePercent/100)
		cropped = imaging.Resize(cropped, w, h, imaging.Lanczos)
	}

	return cropped, nil
}
