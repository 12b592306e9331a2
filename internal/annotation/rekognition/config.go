package rekognition

// Config holds configuration for the AWS Rekognition annotator
type Config struct {
	// Region is the AWS region where Rekognition will be called (e.g., "us-east-1")
	Region string

	// MaxLabels caps how many labels DetectLabels returns
	MaxLabels int32

	// MaxColors caps how many dominant colors the image-properties
	// feature returns
	MaxColors int32
}

// DefaultConfig returns a Config with default values
func DefaultConfig() Config {
	return Config{
		Region:    "us-east-1",
		MaxLabels: 20,
		MaxColors: 10,
	}
}
