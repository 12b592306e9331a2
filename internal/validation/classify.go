package validation

import (
	"strings"

	"github.com/RolandoRobles12/registro-aviva-sub002/internal/domain"
)

// reasonNoPerson is the fixed reason for the non-negotiable person gate
const reasonNoPerson = "no person clearly visible"

// Detections bundles the per-category extraction results for one photo
type Detections struct {
	Person     CategoryDetection
	Uniform    CategoryDetection
	Logo       CategoryDetection
	Location   CategoryDetection
	BrandColor CategoryDetection
}

// Confidences returns the per-category confidence values for aggregation
func (d Detections) Confidences() CategoryConfidences {
	return CategoryConfidences{
		Person:     d.Person.Confidence,
		Uniform:    d.Uniform.Confidence,
		Logo:       d.Logo.Confidence,
		Location:   d.Location.Confidence,
		BrandColor: d.BrandColor.Confidence,
	}
}

// Disposition is the classifier's verdict. RejectionReason is non-empty
// iff the status is rejecting.
type Disposition struct {
	Status          domain.ValidationStatus
	RejectionReason string
}

// Classify applies the ordered disposition policy; the first matching rule
// wins:
//
//  1. Missing or low-confidence person detection rejects outright. No
//     aggregate score can override this gate.
//  2. Aggregated confidence at or above AutoApprove approves.
//  3. Aggregated confidence at or below AutoReject rejects, with a reason
//     listing the missing secondary signals.
//  4. Anything in between needs a human decision.
func Classify(det Detections, aggregated float64, t Thresholds) Disposition {
	if !det.Person.Detected || det.Person.Confidence < t.MinPersonConfidence {
		return Disposition{
			Status:          domain.StatusRejected,
			RejectionReason: reasonNoPerson,
		}
	}

	if aggregated >= t.AutoApprove {
		return Disposition{Status: domain.StatusAutoApproved}
	}

	if aggregated <= t.AutoReject {
		return Disposition{
			Status:          domain.StatusRejected,
			RejectionReason: lowConfidenceReason(det),
		}
	}

	return Disposition{Status: domain.StatusNeedsReview}
}

// lowConfidenceReason composes a human-readable reason naming the secondary
// categories that were not detected
func lowConfidenceReason(det Detections) string {
	var missing []string
	if !det.Uniform.Detected {
		missing = append(missing, "company uniform")
	}
	if !det.BrandColor.Detected {
		missing = append(missing, "brand color")
	}
	if !det.Logo.Detected {
		missing = append(missing, "company logo")
	}
	if !det.Location.Detected {
		missing = append(missing, "work location")
	}

	if len(missing) == 0 {
		return "overall confidence too low"
	}

	return "confidence too low: " + humanJoin(missing) + " not detected"
}

// humanJoin renders a list as "a", "a and b" or "a, b and c"
func humanJoin(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
	}
}
