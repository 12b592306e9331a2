package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RolandoRobles12/registro-aviva-sub002/internal/domain"
)

func detected(confidence float64) CategoryDetection {
	return CategoryDetection{Detected: true, Confidence: confidence}
}

func TestClassify_PersonGate(t *testing.T) {
	thresholds := Thresholds{AutoApprove: 0.70, AutoReject: 0.25, MinPersonConfidence: 0.60}

	t.Run("no person detected rejects regardless of score", func(t *testing.T) {
		det := Detections{
			Uniform:    detected(1),
			Logo:       detected(1),
			Location:   detected(1),
			BrandColor: detected(1),
		}

		// Even a perfect aggregated score cannot pass the gate
		got := Classify(det, 1.0, thresholds)
		assert.Equal(t, domain.StatusRejected, got.Status)
		assert.Equal(t, "no person clearly visible", got.RejectionReason)
	})

	t.Run("person below minimum confidence rejects", func(t *testing.T) {
		det := Detections{
			Person:     detected(0.59),
			Uniform:    detected(1),
			BrandColor: detected(1),
		}

		got := Classify(det, 0.9, thresholds)
		assert.Equal(t, domain.StatusRejected, got.Status)
		assert.Equal(t, "no person clearly visible", got.RejectionReason)
	})

	t.Run("person exactly at minimum confidence passes the gate", func(t *testing.T) {
		det := Detections{Person: detected(0.60)}

		got := Classify(det, 0.9, thresholds)
		assert.Equal(t, domain.StatusAutoApproved, got.Status)
	})
}

func TestClassify_Thresholds(t *testing.T) {
	thresholds := Thresholds{AutoApprove: 0.70, AutoReject: 0.25, MinPersonConfidence: 0.60}
	det := Detections{
		Person:     detected(0.9),
		Uniform:    detected(0.5),
		BrandColor: detected(0.3),
	}

	tests := []struct {
		name       string
		aggregated float64
		wantStatus domain.ValidationStatus
	}{
		{"above auto-approve", 0.80, domain.StatusAutoApproved},
		{"exactly at auto-approve", 0.70, domain.StatusAutoApproved},
		{"just below auto-approve", 0.699, domain.StatusNeedsReview},
		{"middle of the dead zone", 0.50, domain.StatusNeedsReview},
		{"just above auto-reject", 0.251, domain.StatusNeedsReview},
		{"exactly at auto-reject", 0.25, domain.StatusRejected},
		{"below auto-reject", 0.10, domain.StatusRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(det, tt.aggregated, thresholds)
			assert.Equal(t, tt.wantStatus, got.Status)

			if tt.wantStatus == domain.StatusRejected {
				assert.NotEmpty(t, got.RejectionReason)
			} else {
				assert.Empty(t, got.RejectionReason)
			}
		})
	}
}

func TestClassify_LowConfidenceReason(t *testing.T) {
	thresholds := Thresholds{AutoApprove: 0.70, AutoReject: 0.25, MinPersonConfidence: 0.10}

	tests := []struct {
		name string
		det  Detections
		want string
	}{
		{
			name: "all secondary signals missing",
			det:  Detections{Person: detected(0.9)},
			want: "confidence too low: company uniform, brand color, company logo and work location not detected",
		},
		{
			name: "one missing signal",
			det: Detections{
				Person:     detected(0.9),
				Uniform:    detected(0.1),
				BrandColor: detected(0.1),
				Logo:       detected(0.1),
			},
			want: "confidence too low: work location not detected",
		},
		{
			name: "two missing signals",
			det: Detections{
				Person:   detected(0.9),
				Uniform:  detected(0.1),
				Location: detected(0.1),
			},
			want: "confidence too low: brand color and company logo not detected",
		},
		{
			name: "all signals present but weak",
			det: Detections{
				Person:     detected(0.9),
				Uniform:    detected(0.05),
				BrandColor: detected(0.05),
				Logo:       detected(0.05),
				Location:   detected(0.05),
			},
			want: "overall confidence too low",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.det, 0.1, thresholds)
			require.Equal(t, domain.StatusRejected, got.Status)
			assert.Equal(t, tt.want, got.RejectionReason)
		})
	}
}

func TestDetectionsConfidences(t *testing.T) {
	det := Detections{
		Person:     detected(0.1),
		Uniform:    detected(0.2),
		Logo:       detected(0.3),
		Location:   detected(0.4),
		BrandColor: detected(0.5),
	}

	c := det.Confidences()
	assert.Equal(t, 0.1, c.Person)
	assert.Equal(t, 0.2, c.Uniform)
	assert.Equal(t, 0.3, c.Logo)
	assert.Equal(t, 0.4, c.Location)
	assert.Equal(t, 0.5, c.BrandColor)
}

func TestHumanJoin(t *testing.T) {
	assert.Equal(t, "", humanJoin(nil))
	assert.Equal(t, "a", humanJoin([]string{"a"}))
	assert.Equal(t, "a and b", humanJoin([]string{"a", "b"}))
	assert.Equal(t, "a, b and c", humanJoin([]string{"a", "b", "c"}))
}
