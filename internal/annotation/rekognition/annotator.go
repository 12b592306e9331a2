package rekognition

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
	"github.com/aws/smithy-go"

	"github.com/RolandoRobles12/registro-aviva-sub002/internal/annotation"
	"github.com/RolandoRobles12/registro-aviva-sub002/internal/audit"
)

const (
	errCodeAccessDenied    = "AccessDeniedException"
	errCodeInvalidS3Object = "InvalidS3ObjectException"
	errCodeThrottling      = "ProvisionedThroughputExceededException"

	// Rekognition reports label confidence and color dominance on a 0-100
	// scale; the engine works in [0,1]
	confidenceScale = 100.0

	// DetectLabels category under which brand marks are reported
	logoCategory = "Logos and Symbols"
)

// API is the subset of the Rekognition client used by the annotator
type API interface {
	DetectLabels(ctx context.Context, params *rekognition.DetectLabelsInput, optFns ...func(*rekognition.Options)) (*rekognition.DetectLabelsOutput, error)
}

// Annotator implements annotation.Annotator using AWS Rekognition DetectLabels
// with the GENERAL_LABELS and IMAGE_PROPERTIES features. Images are referenced
// by S3 bucket and object path; bytes never pass through this process.
type Annotator struct {
	api         API
	cfg         Config
	auditLogger audit.Logger
}

// Option defines optional configuration for Annotator
type Option func(*Annotator)

// WithAuditLogger sets the audit logger for the annotator
func WithAuditLogger(logger audit.Logger) Option {
	return func(a *Annotator) {
		a.auditLogger = logger
	}
}

// Ensure Annotator implements annotation.Annotator at compile time
var _ annotation.Annotator = (*Annotator)(nil)

// New creates a Rekognition-backed annotator using the AWS default
// credential chain
func New(ctx context.Context, cfg Config, opts ...Option) (*Annotator, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	return NewWithAPI(rekognition.NewFromConfig(awsCfg), cfg, opts...), nil
}

// NewWithAPI creates an annotator around an existing Rekognition client
func NewWithAPI(api API, cfg Config, opts ...Option) *Annotator {
	a := &Annotator{
		api: api,
		cfg: cfg,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// logAudit logs an audit event if an audit logger is configured.
// Audit failure does not affect the operation (fire-and-forget).
func (a *Annotator) logAudit(ctx context.Context, success bool, err error, metadata map[string]string) {
	if a.auditLogger == nil {
		return
	}

	event := audit.Event{
		EventType: audit.EventPhotoAnnotated,
		Provider:  "rekognition",
		Success:   success,
		Metadata:  metadata,
	}

	if err != nil {
		event.Error = err.Error()
	}

	_ = a.auditLogger.Log(ctx, event)
}

// Annotate runs DetectLabels against the referenced S3 object and converts
// the response into the provider-neutral payload. Sections Rekognition did
// not return come back as empty slices.
func (a *Annotator) Annotate(ctx context.Context, ref annotation.ImageRef) (*annotation.Payload, error) {
	if ref.Bucket == "" || ref.Path == "" {
		return nil, ErrInvalidImageRef
	}

	start := time.Now()

	input := &rekognition.DetectLabelsInput{
		Image: &types.Image{
			S3Object: &types.S3Object{
				Bucket: aws.String(ref.Bucket),
				Name:   aws.String(ref.Path),
			},
		},
		MaxLabels: aws.Int32(a.cfg.MaxLabels),
		Features: []types.DetectLabelsFeatureName{
			types.DetectLabelsFeatureNameGeneralLabels,
			types.DetectLabelsFeatureNameImageProperties,
		},
		Settings: &types.DetectLabelsSettings{
			ImageProperties: &types.DetectLabelsImagePropertiesSettings{
				MaxDominantColors: a.cfg.MaxColors,
			},
		},
	}

	output, err := a.api.DetectLabels(ctx, input)
	if err != nil {
		parsed := parseAPIError(err)
		a.logAudit(ctx, false, parsed, map[string]string{
			"bucket": ref.Bucket,
			"path":   ref.Path,
		})
		return nil, fmt.Errorf("detect labels %s/%s: %w", ref.Bucket, ref.Path, parsed)
	}

	payload := convertOutput(output)

	a.logAudit(ctx, true, nil, map[string]string{
		"bucket":      ref.Bucket,
		"path":        ref.Path,
		"labels":      strconv.Itoa(len(payload.Labels)),
		"logos":       strconv.Itoa(len(payload.Logos)),
		"colors":      strconv.Itoa(len(payload.Colors)),
		"duration_ms": strconv.FormatInt(time.Since(start).Milliseconds(), 10),
	})

	return payload, nil
}

// convertOutput maps the DetectLabels response into the neutral payload.
// Labels categorized as brand marks are additionally surfaced as logos,
// since Rekognition has no dedicated logo detection API.
func convertOutput(output *rekognition.DetectLabelsOutput) *annotation.Payload {
	payload := &annotation.Payload{
		Labels: make([]annotation.Label, 0, len(output.Labels)),
		Logos:  []annotation.Logo{},
		Colors: []annotation.ColorSwatch{},
	}

	for _, label := range output.Labels {
		if label.Name == nil {
			continue
		}

		confidence := 0.0
		if label.Confidence != nil {
			confidence = float64(*label.Confidence) / confidenceScale
		}

		payload.Labels = append(payload.Labels, annotation.Label{
			Name:       *label.Name,
			Confidence: confidence,
		})

		if hasCategory(label.Categories, logoCategory) {
			payload.Logos = append(payload.Logos, annotation.Logo{
				Name:       *label.Name,
				Confidence: confidence,
			})
		}
	}

	if output.ImageProperties != nil {
		for _, color := range output.ImageProperties.DominantColors {
			swatch := annotation.ColorSwatch{}
			if color.Red != nil {
				swatch.Red = int(*color.Red)
			}
			if color.Green != nil {
				swatch.Green = int(*color.Green)
			}
			if color.Blue != nil {
				swatch.Blue = int(*color.Blue)
			}
			if color.PixelPercent != nil {
				swatch.Dominance = float64(*color.PixelPercent) / confidenceScale
			}
			payload.Colors = append(payload.Colors, swatch)
		}
	}

	return payload
}

func hasCategory(categories []types.LabelCategory, name string) bool {
	for _, c := range categories {
		if c.Name != nil && *c.Name == name {
			return true
		}
	}
	return false
}

// parseAPIError maps AWS API error codes onto package sentinel errors
func parseAPIError(err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case errCodeInvalidS3Object:
			return fmt.Errorf("%w: %s", ErrImageNotFound, apiErr.ErrorMessage())
		case errCodeAccessDenied:
			return ErrInvalidCredentials
		case errCodeThrottling:
			return ErrThrottled
		}
	}
	return err
}
