// Package storage uploads item pictures to an S3-compatible bucket and
// hands back a public URL for the catalog to store.
package storage

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/h2non/bimg"
)

// Pictures wider than this get downscaled before upload.
const maxPictureWidth = 1600

type Config struct {
	AccountID       string
	AccessKeyID     string
	AccessKeySecret string
	Bucket          string
	PublicURL       string
}

type Uploader struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

// NewUploader builds an S3 client against the account's storage
// endpoint.
func NewUploader(ctx context.Context, cfg Config) (*Uploader, error) {
	tr := &http.Transport{
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
			MaxVersion: tls.VersionTLS13,
		},
	}
	httpClient := &http.Client{Transport: tr}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithHTTPClient(httpClient),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.AccessKeySecret, "")),
		awsconfig.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("loading storage config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID))
	})

	return &Uploader{client: client, bucket: cfg.Bucket, publicURL: cfg.PublicURL}, nil
}

// Upload stores a picture under catalog/<userID>/<uuid>_<filename> and
// returns its public URL. Oversized images are downscaled first.
func (u *Uploader) Upload(ctx context.Context, userID uint, filename, contentType string, data []byte) (string, error) {
	if resized, err := downscale(data); err == nil {
		data = resized
	}

	key := fmt.Sprintf("catalog/%d/%s_%s", userID, uuid.NewString(), filename)

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("uploading picture: %w", err)
	}

	return strings.TrimSuffix(u.publicURL, "/") + "/" + key, nil
}

func downscale(data []byte) ([]byte, error) {
	img := bimg.NewImage(data)
	size, err := img.Size()
	if err != nil {
		return nil, err
	}
	if size.Width <= maxPictureWidth {
		return data, nil
	}
	return img.Resize(maxPictureWidth, size.Height*maxPictureWidth/size.Width)
}
