// Package geometry models the quadrilateral bounding boxes attached to OCR
// text fragments.
//
// A box is stored only as its four corners, named by compass position
// (southwest, southeast, northeast, northwest). Edges, extents and area are
// always derived from the corners and never cached, because the corners of a
// detected polygon need not form an axis-aligned rectangle:
//
//   - Left   = min(sw.x, nw.x)
//   - Right  = max(se.x, ne.x)
//   - Top    = max(ne.y, nw.y)
//   - Bottom = min(sw.y, se.y)
//
// # Merging
//
// Merge combines two boxes corner by corner rather than computing a true
// envelope. The result is asymmetric in its southeast and northwest corners
// (each takes the max of one axis and the min of the other), which is the
// behavior the line reconstruction thresholds were tuned against.
package geometry
