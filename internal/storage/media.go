// ===============================
// internal/storage/media.go - S3-Compatible Media Store Client
// ===============================

package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"videohub/internal/config"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

type Client struct {
	client     *s3.S3
	bucketName string
	publicURL  string
}

func NewClient(cfg config.StorageConfig) (*Client, error) {
	sess, err := session.NewSession(&aws.Config{
		Region:           aws.String(cfg.Region),
		Endpoint:         aws.String(cfg.Endpoint),
		Credentials:      credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""),
		S3ForcePathStyle: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage session: %w", err)
	}

	return &Client{
		client:     s3.New(sess),
		bucketName: cfg.BucketName,
		publicURL:  strings.TrimRight(cfg.PublicURL, "/"),
	}, nil
}

func (c *Client) Upload(ctx context.Context, key string, file io.Reader, contentType string) error {
	_, err := c.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucketName),
		Key:         aws.String(key),
		Body:        aws.ReadSeekCloser(file),
		ContentType: aws.String(contentType),
		ACL:         aws.String("public-read"),
	})

	if err != nil {
		return fmt.Errorf("failed to upload media file: %w", err)
	}

	return nil
}

func (c *Client) Delete(ctx context.Context, key string) error {
	_, err := c.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(key),
	})

	if err != nil {
		return fmt.Errorf("failed to delete media file: %w", err)
	}

	return nil
}

// DeletePrefix removes every object under the prefix, batching through
// list pages. Used when a video or account is torn down.
func (c *Client) DeletePrefix(ctx context.Context, prefix string) error {
	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(c.bucketName),
		Prefix: aws.String(prefix),
	}

	for {
		page, err := c.client.ListObjectsV2WithContext(ctx, input)
		if err != nil {
			return fmt.Errorf("failed to list media folder: %w", err)
		}

		if len(page.Contents) == 0 {
			return nil
		}

		objects := make([]*s3.ObjectIdentifier, 0, len(page.Contents))
		for _, obj := range page.Contents {
			objects = append(objects, &s3.ObjectIdentifier{Key: obj.Key})
		}

		_, err = c.client.DeleteObjectsWithContext(ctx, &s3.DeleteObjectsInput{
			Bucket: aws.String(c.bucketName),
			Delete: &s3.Delete{Objects: objects, Quiet: aws.Bool(true)},
		})
		if err != nil {
			return fmt.Errorf("failed to delete media folder: %w", err)
		}

		if page.IsTruncated == nil || !*page.IsTruncated {
			return nil
		}
		input.ContinuationToken = page.NextContinuationToken
	}
}

func (c *Client) PublicURL(key string) string {
	return fmt.Sprintf("%s/%s", c.publicURL, key)
}

// KeyFromURL extracts the object key from a public URL produced by
// PublicURL. Returns false for URLs outside this bucket.
func (c *Client) KeyFromURL(url string) (string, bool) {
	prefix := c.publicURL + "/"
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	key := strings.TrimPrefix(url, prefix)
	if key == "" {
		return "", false
	}
	return key, true
}

func (c *Client) FileExists(ctx context.Context, key string) (bool, error) {
	_, err := c.client.HeadObjectWithContext(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(key),
	})

	if err != nil {
		if aerr, ok := err.(awserr.Error); ok {
			if aerr.Code() == "NotFound" {
				return false, nil
			}
		}
		return false, err
	}

	return true, nil
}
