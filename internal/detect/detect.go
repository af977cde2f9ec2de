// Package detect holds the detection data model and the latest-snapshot store
// shared between the inference callback and the aggregation engine.
package detect

// BoundingBox is a pixel-space box on the camera frame.
type BoundingBox struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// Clamp constrains the box to the frame bounds. Negative origins are moved to
// zero and the extent is shrunk so the box never reaches past the frame edge.
func (b BoundingBox) Clamp(frameW, frameH int) BoundingBox {
	if b.X < 0 {
		b.W += b.X
		b.X = 0
	}
	if b.Y < 0 {
		b.H += b.Y
		b.Y = 0
	}
	if b.X > frameW {
		b.X = frameW
	}
	if b.Y > frameH {
		b.Y = frameH
	}
	if b.W < 0 {
		b.W = 0
	}
	if b.H < 0 {
		b.H = 0
	}
	if b.X+b.W > frameW {
		b.W = frameW - b.X
	}
	if b.Y+b.H > frameH {
		b.H = frameH - b.Y
	}
	return b
}

// Detection is one observed object instance in one frame. The inference
// source guarantees the confidence already passed the acceptance threshold;
// the category index is validated against the label catalog downstream.
type Detection struct {
	Category   int         `json:"category"`
	Confidence float64     `json:"confidence"`
	BBox       BoundingBox `json:"bbox"`
}
