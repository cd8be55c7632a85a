// Package storage uploads catalogue and garage images to an S3-compatible
// bucket and hands back public URLs. Works with AWS S3, MinIO, Cloudflare
// R2 and DigitalOcean Spaces.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/trottiparts/trottiparts-api/internal/config"
)

type ImageStore struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

func NewImageStore(conf *config.StorageConfig) (*ImageStore, error) {
	if conf.Bucket == "" {
		return nil, fmt.Errorf("storage: bucket is not configured")
	}

	opts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(conf.Region),
	}
	if conf.Key != "" && conf.Secret != "" {
		opts = append(opts, awscfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(conf.Key, conf.Secret, ""),
		))
	}

	awsConf, err := awscfg.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("awscfg.LoadDefaultConfig -> %w", err)
	}

	clientOpts := []func(*s3.Options){}
	if conf.Endpoint != "" {
		clientOpts = append(clientOpts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(conf.Endpoint)
			o.UsePathStyle = true // required for MinIO
		})
	}

	baseURL := strings.TrimRight(conf.PublicURL, "/")
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", conf.Bucket, conf.Region)
	}

	return &ImageStore{
		client:  s3.NewFromConfig(awsConf, clientOpts...),
		bucket:  conf.Bucket,
		baseURL: baseURL,
	}, nil
}

// Upload stores the image under a generated key inside the given folder
// ("parts", "scooters", "garage") and returns its public URL.
func (s *ImageStore) Upload(ctx context.Context, folder, filename, contentType string, body io.Reader) (string, error) {
	key := path.Join(folder, uuid.NewString()+path.Ext(filename))

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("s3.PutObject -> %w", err)
	}

	return s.baseURL + "/" + key, nil
}

// Delete removes an object by its public URL. Unknown URLs are ignored.
func (s *ImageStore) Delete(ctx context.Context, publicURL string) error {
	if !strings.HasPrefix(publicURL, s.baseURL+"/") {
		return nil
	}
	key := strings.TrimPrefix(publicURL, s.baseURL+"/")

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("s3.DeleteObject -> %w", err)
	}
	return nil
}
