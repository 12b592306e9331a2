package annotation

import "context"

// Annotator defines the interface for image-understanding providers.
// The engine never sees raw image bytes; it hands the provider a storage
// reference and receives structured detections back.
type Annotator interface {
	// Annotate analyzes the referenced image and returns detected labels,
	// logos and dominant colors. Providers must return empty slices for
	// sections they cannot produce, not an error.
	Annotate(ctx context.Context, ref ImageRef) (*Payload, error)
}

// ImageRef locates a stored photo by bucket and object path
type ImageRef struct {
	Bucket string `json:"bucket"`
	Path   string `json:"path"`
}

// Label is a detected semantic category
type Label struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"` // 0.0 to 1.0
}

// Logo is a detected brand mark
type Logo struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"` // 0.0 to 1.0
}

// ColorSwatch is a dominant color of the image
type ColorSwatch struct {
	Red       int     `json:"red"`   // channel value, typically 0-255
	Green     int     `json:"green"`
	Blue      int     `json:"blue"`
	Dominance float64 `json:"dominance"` // 0.0 to 1.0
}

// Payload is the full annotation result for one image
type Payload struct {
	Labels []Label       `json:"labels"`
	Logos  []Logo        `json:"logos"`
	Colors []ColorSwatch `json:"colors"`
}
