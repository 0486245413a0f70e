package s3

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"post-composer/pkg/config"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

type Client struct {
	s3Client   *s3.S3
	uploader   *s3manager.Uploader
	bucket     string
	presignTTL time.Duration
}

func NewClient(cfg *config.Config) (*Client, error) {
	awsConfig := &aws.Config{
		Region: aws.String(cfg.AWSRegion),
		Credentials: credentials.NewStaticCredentials(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			"",
		),
	}

	// Support MinIO for local development
	if cfg.AWSEndpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.AWSEndpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
		if cfg.S3UseSSL == "false" {
			awsConfig.DisableSSL = aws.Bool(true)
		}
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	s3Client := s3.New(sess)
	client := &Client{
		s3Client:   s3Client,
		uploader:   s3manager.NewUploaderWithClient(s3Client),
		bucket:     cfg.S3BucketName,
		presignTTL: time.Duration(cfg.S3PresignTTLMinutes) * time.Minute,
	}

	// Ensure bucket exists (for MinIO)
	_, err = client.s3Client.HeadBucket(&s3.HeadBucketInput{
		Bucket: aws.String(cfg.S3BucketName),
	})
	if err != nil {
		// An existing bucket owned by someone else surfaces on the first upload
		_, _ = client.s3Client.CreateBucket(&s3.CreateBucketInput{
			Bucket: aws.String(cfg.S3BucketName),
		})
	}

	return client, nil
}

// PutObject stores body under key, replacing any object already there, and
// returns the key as the handle for PublicURL. Body is streamed, large files
// go up as a multipart upload.
func (c *Client) PutObject(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	_, err := c.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file to S3: %w", err)
	}

	return key, nil
}

// PublicURL resolves a URL the browser can load the object from. With a
// presign TTL configured the URL carries a time-limited signature.
func (c *Client) PublicURL(ctx context.Context, key string) (string, error) {
	if c.presignTTL > 0 {
		req, _ := c.s3Client.GetObjectRequest(&s3.GetObjectInput{
			Bucket: aws.String(c.bucket),
			Key:    aws.String(key),
		})
		req.SetContext(ctx)
		signed, err := req.Presign(c.presignTTL)
		if err != nil {
			return "", fmt.Errorf("failed to presign object URL: %w", err)
		}
		return signed, nil
	}

	secure := c.s3Client.Config.DisableSSL == nil || !*c.s3Client.Config.DisableSSL
	return objectURL(
		aws.StringValue(c.s3Client.Config.Endpoint),
		secure,
		aws.StringValue(c.s3Client.Config.Region),
		c.bucket,
		key,
	), nil
}

func objectURL(endpoint string, secure bool, region, bucket, key string) string {
	escapedKey := (&url.URL{Path: key}).EscapedPath()

	if endpoint != "" && !strings.Contains(endpoint, "amazonaws.com") {
		// MinIO URL format
		protocol := "http"
		if secure {
			protocol = "https"
		}
		endpoint = strings.TrimPrefix(endpoint, "http://")
		endpoint = strings.TrimPrefix(endpoint, "https://")
		endpoint = strings.TrimSuffix(endpoint, "/")
		return fmt.Sprintf("%s://%s/%s/%s", protocol, endpoint, bucket, escapedKey)
	}

	// AWS S3 URL format
	if region == "" {
		region = "us-east-1"
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucket, region, escapedKey)
}
