// Package imaging produces the reference crops that accompany each
// extracted label line, and the optional debug overlay.
//
// # Croppers
//
// A Cropper cuts a window out of a source photo, scales it and writes it as
// a new file. Two implementations exist:
//
//   - GraphicsMagickCropper runs "gm convert" as a subprocess. A non-zero exit
//     status is a failure.
//   - NativeCropper does the same work in-process with disintegration/imaging,
//     decoding each source photo once through an ImageCache.
//
// # Coordinate System
//
// Crop windows are expressed in source pixels with (0,0) at the top-left
// corner. A window may extend past the image edges, including to negative
// coordinates; only the part inside the image is kept, as GraphicsMagick does.
//
// # Thread Safety
//
// ImageCache and both croppers are safe for concurrent use. Once a source is
// cached, later crops of it reuse the decoded image.
package imaging
