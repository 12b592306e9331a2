package mock

import (
	"context"

	"github.com/RolandoRobles12/registro-aviva-sub002/internal/annotation"
)

// Annotator implements annotation.Annotator for tests and local development.
// It returns a fixed payload resembling a compliant check-in photo: a person
// wearing a polo shirt in an office, with a dominant green swatch.
type Annotator struct{}

// New creates a new mock annotator
func New() *Annotator {
	return &Annotator{}
}

var _ annotation.Annotator = (*Annotator)(nil)

// Annotate returns the canned payload. Output is deterministic for any
// image reference.
func (a *Annotator) Annotate(ctx context.Context, ref annotation.ImageRef) (*annotation.Payload, error) {
	return &annotation.Payload{
		Labels: []annotation.Label{
			{Name: "Person", Confidence: 0.98},
			{Name: "Polo Shirt", Confidence: 0.82},
			{Name: "Office Building", Confidence: 0.71},
		},
		Logos: []annotation.Logo{},
		Colors: []annotation.ColorSwatch{
			{Red: 24, Green: 180, Blue: 60, Dominance: 0.42},
			{Red: 240, Green: 240, Blue: 238, Dominance: 0.31},
		},
	}, nil
}
