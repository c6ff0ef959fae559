package provider

import "context"

// FaceDetector is the capability contract for the external face model: given
// encoded image bytes, return every face it finds, each with a bounding box
// and a fixed-length embedding. An image without faces is an empty slice,
// not an error; errors mean the model itself failed. The embedding length is
// fixed by the model and constant across all detections it produces.
type FaceDetector interface {
	Detect(ctx context.Context, image []byte) ([]Detection, error)
}

// Detection is one face candidate located in an image.
type Detection struct {
	Box        BoundingBox
	Embedding  []float64
	Confidence float64
}

// BoundingBox is the face area in pixel space.
type BoundingBox struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Options are the detector tunables forwarded to the model on every call.
type Options struct {
	InputSize     int
	MinConfidence float64
	MaxDetections int
}
