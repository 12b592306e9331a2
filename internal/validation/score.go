package validation

// CategoryConfidences carries the per-category confidence values fed into
// aggregation
type CategoryConfidences struct {
	Person     float64
	Uniform    float64
	Logo       float64
	Location   float64
	BrandColor float64
}

// Aggregate combines per-category confidences into a single overall score
// as the weighted sum over all five categories. With weights summing to 1.0
// and confidences in [0,1], the result stays in [0,1].
func Aggregate(c CategoryConfidences, w Weights) float64 {
	return c.Person*w.Person +
		c.Uniform*w.Uniform +
		c.Logo*w.Logo +
		c.Location*w.Location +
		c.BrandColor*w.BrandColor
}
