package geometry

import "image"

// Vertex is one corner of a bounding polygon. Missing coordinates decode as zero.
type Vertex struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Vertices holds the four named corners of a bounding polygon.
type Vertices struct {
	SW Vertex `json:"sw"`
	SE Vertex `json:"se"`
	NE Vertex `json:"ne"`
	NW Vertex `json:"nw"`
}

// BoundingBox is the polygon OCR reports around a text fragment.
type BoundingBox struct {
	Vertices Vertices `json:"vertices"`
}

// NewBox builds a box whose corners sit on the given edges.
func NewBox(left, bottom, right, top int) BoundingBox {
	return BoundingBox{Vertices: Vertices{
		SW: Vertex{X: left, Y: bottom},
		SE: Vertex{X: right, Y: bottom},
		NE: Vertex{X: right, Y: top},
		NW: Vertex{X: left, Y: top},
	}}
}

// Left is the smaller x of the western corners.
func (b BoundingBox) Left() int {
	return min(b.Vertices.SW.X, b.Vertices.NW.X)
}

// Right is the larger x of the eastern corners.
func (b BoundingBox) Right() int {
	return max(b.Vertices.SE.X, b.Vertices.NE.X)
}

// Top is the larger y of the northern corners.
func (b BoundingBox) Top() int {
	return max(b.Vertices.NE.Y, b.Vertices.NW.Y)
}

// Bottom is the smaller y of the southern corners.
func (b BoundingBox) Bottom() int {
	return min(b.Vertices.SW.Y, b.Vertices.SE.Y)
}

// Width returns Right - Left.
func (b BoundingBox) Width() int {
	return b.Right() - b.Left()
}

// Height returns Top - Bottom.
func (b BoundingBox) Height() int {
	return b.Top() - b.Bottom()
}

// Area returns Width * Height.
func (b BoundingBox) Area() int {
	return b.Width() * b.Height()
}

// Merge combines b with other corner by corner.
//
//   - sw: min x, min y
//   - se: max x, min y
//   - ne: max x, max y
//   - nw: min x, max y
func (b BoundingBox) Merge(other BoundingBox) BoundingBox {
	a, o := b.Vertices, other.Vertices
	return BoundingBox{Vertices: Vertices{
		SW: Vertex{X: min(a.SW.X, o.SW.X), Y: min(a.SW.Y, o.SW.Y)},
		SE: Vertex{X: max(a.SE.X, o.SE.X), Y: min(a.SE.Y, o.SE.Y)},
		NE: Vertex{X: max(a.NE.X, o.NE.X), Y: max(a.NE.Y, o.NE.Y)},
		NW: Vertex{X: min(a.NW.X, o.NW.X), Y: max(a.NW.Y, o.NW.Y)},
	}}
}

// Rect converts the derived edges to an image rectangle spanning
// (Left, Bottom)-(Right, Top). The result is canonicalized.
func (b BoundingBox) Rect() image.Rectangle {
	return image.Rect(b.Left(), b.Bottom(), b.Right(), b.Top())
}
