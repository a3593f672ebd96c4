package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/mentorhub/mentorhub-api/pkg/logger"
	"github.com/mentorhub/mentorhub-api/pkg/metrics"
	"go.uber.org/zap"
)

const maxImageSize = 10 * 1024 * 1024 // 10MB

// Client represents an S3-compatible object storage client used for
// mentor profile pictures.
type Client struct {
	s3Client   *s3.Client
	bucketName string
	endpoint   string
}

// ClientInterface is the surface consumed by services (mockable in tests)
type ClientInterface interface {
	UploadImage(ctx context.Context, imageData, key, contentType string) (string, error)
	GenerateFileName(mentorID, originalFileName string) string
	ValidateImageType(contentType string) error
	ValidateImageSize(imageData string) error
}

// NewClient creates a new object storage client using the S3 SDK
func NewClient(accessKeyID, secretAccessKey, bucketName, endpoint, region string) (*Client, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("storage endpoint is required")
	}
	if region == "" {
		region = "us-east-1"
	}

	s3Client := s3.New(s3.Options{
		Region:       region,
		BaseEndpoint: aws.String(endpoint),
		Credentials: credentials.NewStaticCredentialsProvider(
			accessKeyID,
			secretAccessKey,
			"", // session token not needed
		),
	})

	logger.Info("Object storage client initialized",
		zap.String("bucket", bucketName),
		zap.String("endpoint", endpoint),
		zap.String("region", region),
	)

	return &Client{
		s3Client:   s3Client,
		bucketName: bucketName,
		endpoint:   endpoint,
	}, nil
}

// UploadImage uploads a base64-encoded image and returns its public URL.
// Accepts both raw base64 and data URI payloads (data:image/png;base64,...).
func (c *Client) UploadImage(ctx context.Context, imageData, key, contentType string) (string, error) {
	start := time.Now()
	operation := "uploadImage"

	imageBytes, err := decodeImage(imageData)
	if err != nil {
		metrics.StorageRequestDuration.WithLabelValues(operation, "error").Observe(metrics.MeasureDuration(start))
		metrics.StorageRequestTotal.WithLabelValues(operation, "error").Inc()
		return "", fmt.Errorf("failed to decode base64 image: %w", err)
	}

	_, err = c.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(imageBytes),
		ContentType: aws.String(contentType),
	})

	duration := metrics.MeasureDuration(start)

	if err != nil {
		metrics.StorageRequestDuration.WithLabelValues(operation, "error").Observe(duration)
		metrics.StorageRequestTotal.WithLabelValues(operation, "error").Inc()
		logger.LogAPICall(ctx, "object_storage", operation, "error", duration,
			zap.Error(err),
			zap.String("key", key),
		)
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	metrics.StorageRequestDuration.WithLabelValues(operation, "success").Observe(duration)
	metrics.StorageRequestTotal.WithLabelValues(operation, "success").Inc()
	logger.LogAPICall(ctx, "object_storage", operation, "success", duration,
		zap.String("key", key),
		zap.Int("size_bytes", len(imageBytes)),
	)

	// Public URL format: {endpoint}/{bucket}/{key}
	return fmt.Sprintf("%s/%s/%s", c.endpoint, c.bucketName, key), nil
}

// GenerateFileName builds a collision-free object key for a mentor picture
func (c *Client) GenerateFileName(mentorID, originalFileName string) string {
	ext := strings.ToLower(filepath.Ext(originalFileName))
	if ext == "" {
		ext = ".jpg"
	}
	return fmt.Sprintf("mentors/%s/%d%s", mentorID, time.Now().UnixNano(), ext)
}

// ValidateImageType validates the image content type
func (c *Client) ValidateImageType(contentType string) error {
	validTypes := map[string]bool{
		"image/jpeg": true,
		"image/jpg":  true,
		"image/png":  true,
		"image/webp": true,
	}

	if !validTypes[strings.ToLower(contentType)] {
		return fmt.Errorf("invalid file type: %s. Allowed types: jpeg, jpg, png, webp", contentType)
	}

	return nil
}

// ValidateImageSize validates the decoded image size (max 10MB)
func (c *Client) ValidateImageSize(imageData string) error {
	imageBytes, err := decodeImage(imageData)
	if err != nil {
		return fmt.Errorf("failed to decode base64 image: %w", err)
	}

	if len(imageBytes) > maxImageSize {
		return fmt.Errorf("image too large: %d bytes (max %d)", len(imageBytes), maxImageSize)
	}

	return nil
}

func decodeImage(imageData string) ([]byte, error) {
	// Handle data URI format (data:image/png;base64,...)
	if strings.HasPrefix(imageData, "data:") {
		parts := strings.SplitN(imageData, ",", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid data URI format")
		}
		imageData = parts[1]
	}
	return base64.StdEncoding.DecodeString(imageData)
}
