package validation

import (
	"strings"

	"github.com/RolandoRobles12/registro-aviva-sub002/internal/annotation"
)

// Entry is a textual detection with its confidence, the common shape of
// labels and logos fed into category extraction
type Entry struct {
	Text       string
	Confidence float64
}

// LabelEntries converts annotation labels into extractor entries
func LabelEntries(labels []annotation.Label) []Entry {
	entries := make([]Entry, 0, len(labels))
	for _, l := range labels {
		entries = append(entries, Entry{Text: l.Name, Confidence: l.Confidence})
	}
	return entries
}

// LogoEntries converts annotation logos into extractor entries
func LogoEntries(logos []annotation.Logo) []Entry {
	entries := make([]Entry, 0, len(logos))
	for _, l := range logos {
		entries = append(entries, Entry{Text: l.Name, Confidence: l.Confidence})
	}
	return entries
}

// CategoryDetection reports whether a signal category was found and with
// what confidence. Invariant: Confidence > 0 iff Detected.
type CategoryDetection struct {
	Detected   bool
	Confidence float64
}

// DetectCategory scans entries for any vocabulary term, matching
// case-insensitively on substrings so that broad vocabulary terms catch
// specific annotations (e.g. "shirt" matches "Polo Shirt"). The result
// confidence is the maximum over all matching entries; entries with empty
// text never match.
func DetectCategory(entries []Entry, vocabulary []string) CategoryDetection {
	best := 0.0

	for _, entry := range entries {
		if entry.Text == "" {
			continue
		}

		text := strings.ToLower(entry.Text)
		for _, term := range vocabulary {
			if term == "" {
				continue
			}
			if strings.Contains(text, strings.ToLower(term)) {
				if entry.Confidence > best {
					best = entry.Confidence
				}
				break
			}
		}
	}

	return CategoryDetection{
		Detected:   best > 0,
		Confidence: best,
	}
}

// DetectBrandColor checks each dominant color swatch against the configured
// per-channel range. A swatch whose three channels all fall in range is a
// candidate; the result confidence is the maximum dominance among candidates.
func DetectBrandColor(colors []annotation.ColorSwatch, rng ColorRange) CategoryDetection {
	best := 0.0

	for _, swatch := range colors {
		if !rng.Matches(swatch) {
			continue
		}
		if swatch.Dominance > best {
			best = swatch.Dominance
		}
	}

	return CategoryDetection{
		Detected:   best > 0,
		Confidence: best,
	}
}
