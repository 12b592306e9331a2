package rekognition

import "errors"

var (
	// ErrInvalidImageRef indicates the bucket/path reference is empty or malformed
	ErrInvalidImageRef = errors.New("invalid image reference")

	// ErrImageNotFound indicates the referenced object does not exist in S3
	ErrImageNotFound = errors.New("image not found in bucket")

	// ErrInvalidCredentials indicates the AWS credentials lack Rekognition access
	ErrInvalidCredentials = errors.New("invalid AWS credentials or insufficient permissions")

	// ErrThrottled indicates Rekognition rejected the call due to rate limiting
	ErrThrottled = errors.New("rekognition request throttled")
)
