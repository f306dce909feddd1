package screenshot

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/gravitational/trace"
)

// NewS3 returns a store uploading into the bucket and prefix given as s3://bucket/prefix.
// Credentials are resolved through the default AWS credential chain.
func NewS3(dir, region string) (*S3Store, error) {
	bucket, prefix, err := parseS3URL(dir)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	cfg := aws.NewConfig()
	if region != "" {
		cfg = cfg.WithRegion(region)
	}
	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	client := s3.New(sess)
	return &S3Store{
		bucket:   bucket,
		prefix:   prefix,
		client:   client,
		uploader: s3manager.NewUploaderWithClient(client),
	}, nil
}

// S3Store saves screenshots as objects of an S3 bucket
type S3Store struct {
	bucket   string
	prefix   string
	client   s3iface.S3API
	uploader *s3manager.Uploader
}

// Dir returns the s3:// URL of the store
func (r *S3Store) Dir() string {
	return fmt.Sprintf("%v%v/%v", s3Scheme, r.bucket, r.prefix)
}

// Save uploads the image and returns its s3:// URL
func (r *S3Store) Save(ctx context.Context, name string, data []byte) (string, error) {
	key := r.key(name)
	_, err := r.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(r.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("image/png"),
	})
	if err != nil {
		return "", trace.Wrap(err, "failed to upload %v", key)
	}
	return fmt.Sprintf("%v%v/%v", s3Scheme, r.bucket, key), nil
}

// Exists checks whether the object is present in the bucket
func (r *S3Store) Exists(ctx context.Context, name string) (bool, error) {
	_, err := r.client.HeadObjectWithContext(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(r.key(name)),
	})
	if err == nil {
		return true, nil
	}
	if aerr, ok := err.(awserr.RequestFailure); ok && aerr.StatusCode() == 404 {
		return false, nil
	}
	return false, trace.Wrap(err)
}

func (r *S3Store) key(name string) string {
	return strings.TrimPrefix(path.Join(r.prefix, name), "/")
}

func parseS3URL(dir string) (bucket, prefix string, err error) {
	u, err := url.Parse(dir)
	if err != nil {
		return "", "", trace.BadParameter("invalid screenshot location %q: %v", dir, err)
	}
	if u.Scheme != "s3" || u.Host == "" {
		return "", "", trace.BadParameter("expected s3://bucket/prefix, got %q", dir)
	}
	return u.Host, strings.Trim(u.Path, "/"), nil
}

const s3Scheme = "s3://"
