package validation

import (
	"fmt"

	"github.com/RolandoRobles12/registro-aviva-sub002/internal/annotation"
)

// ChannelRange is an inclusive numeric range for one RGB channel
type ChannelRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Contains reports whether v falls inside the range, boundaries included
func (r ChannelRange) Contains(v int) bool {
	return v >= r.Min && v <= r.Max
}

// ColorRange describes the expected brand color as a per-channel range
type ColorRange struct {
	Red   ChannelRange `json:"red"`
	Green ChannelRange `json:"green"`
	Blue  ChannelRange `json:"blue"`
}

// Matches reports whether all three channels of the swatch fall in range
func (r ColorRange) Matches(c annotation.ColorSwatch) bool {
	return r.Red.Contains(c.Red) && r.Green.Contains(c.Green) && r.Blue.Contains(c.Blue)
}

// Weights are the relative importance of each signal category when
// aggregating the overall confidence. They must sum to 1.0; this is a
// documented invariant asserted by tests, not enforced at runtime.
type Weights struct {
	Person     float64 `json:"person"`
	Uniform    float64 `json:"uniform"`
	Logo       float64 `json:"logo"`
	Location   float64 `json:"location"`
	BrandColor float64 `json:"brand_color"`
}

// Sum returns the total of all five weights
func (w Weights) Sum() float64 {
	return w.Person + w.Uniform + w.Logo + w.Location + w.BrandColor
}

// Thresholds calibrate the classifier. All values are in [0,1].
type Thresholds struct {
	// AutoApprove is the minimum aggregated confidence for automatic
	// approval (inclusive)
	AutoApprove float64 `json:"auto_approve"`
	// AutoReject is the maximum aggregated confidence for automatic
	// rejection (inclusive). The band strictly between AutoReject and
	// AutoApprove always routes to human review.
	AutoReject float64 `json:"auto_reject"`
	// MinPersonConfidence is the hard gate: below it the photo is
	// rejected regardless of the aggregated score
	MinPersonConfidence float64 `json:"min_person_confidence"`
}

// Vocabulary lists the label/logo terms matched per category.
// Matching is case-insensitive substring, so broad terms like "shirt"
// also catch "Polo Shirt".
type Vocabulary struct {
	Person   []string `json:"person"`
	Uniform  []string `json:"uniform"`
	Location []string `json:"location"`
	Logo     []string `json:"logo"`
}

// Config is the full injectable scoring configuration: weights, thresholds,
// vocabularies and the brand color range. Operators retune behavior by
// supplying a different Config, never by a code change.
type Config struct {
	Weights    Weights    `json:"weights"`
	Thresholds Thresholds `json:"thresholds"`
	Vocabulary Vocabulary `json:"vocabulary"`
	BrandColor ColorRange `json:"brand_color"`
}

// Scoring profile names accepted by ProfileConfig
const (
	ProfileBalanced    = "balanced"
	ProfilePersonColor = "person_color"
)

func defaultVocabulary() Vocabulary {
	return Vocabulary{
		Person:   []string{"person", "human", "man", "woman", "people"},
		Uniform:  []string{"shirt", "polo", "uniform", "clothing", "apparel", "vest"},
		Location: []string{"office", "building", "store", "shop", "workplace", "desk", "warehouse"},
		Logo:     []string{"aviva"},
	}
}

// Corporate green uniform color
func defaultBrandColor() ColorRange {
	return ColorRange{
		Red:   ChannelRange{Min: 0, Max: 90},
		Green: ChannelRange{Min: 120, Max: 255},
		Blue:  ChannelRange{Min: 0, Max: 110},
	}
}

// BalancedConfig weighs all five signals equally
func BalancedConfig() Config {
	return Config{
		Weights: Weights{
			Person:     0.20,
			Uniform:    0.20,
			Logo:       0.20,
			Location:   0.20,
			BrandColor: 0.20,
		},
		Thresholds: Thresholds{
			AutoApprove:         0.75,
			AutoReject:          0.30,
			MinPersonConfidence: 0.50,
		},
		Vocabulary: defaultVocabulary(),
		BrandColor: defaultBrandColor(),
	}
}

// PersonColorConfig heavily favors presence-of-person and the brand color
// over the generic clothing and context signals
func PersonColorConfig() Config {
	return Config{
		Weights: Weights{
			Person:     0.40,
			BrandColor: 0.30,
			Uniform:    0.15,
			Location:   0.10,
			Logo:       0.05,
		},
		Thresholds: Thresholds{
			AutoApprove:         0.70,
			AutoReject:          0.25,
			MinPersonConfidence: 0.60,
		},
		Vocabulary: defaultVocabulary(),
		BrandColor: defaultBrandColor(),
	}
}

// ProfileConfig resolves a named scoring profile
func ProfileConfig(name string) (Config, error) {
	switch name {
	case ProfileBalanced:
		return BalancedConfig(), nil
	case ProfilePersonColor:
		return PersonColorConfig(), nil
	default:
		return Config{}, fmt.Errorf("unknown scoring profile: %q", name)
	}
}
