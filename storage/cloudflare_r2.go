package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type CloudflareR2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	PublicBaseURL   string
	// KeyPrefix отделяет объекты коллекций от загруженных файлов в том же бакете.
	KeyPrefix string
	// Endpoint переопределяет https://<account>.r2.cloudflarestorage.com (S3-совместимые стенды).
	Endpoint string
}

// s3API - подмножество *s3.Client, которое нам нужно.
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// CloudflareR2Store is both a KVStore (one JSON object per collection key) and
// a FileUploader for tournament banners.
type CloudflareR2Store struct {
	client        s3API
	bucketName    string
	publicBaseURL string
	keyPrefix     string
}

var (
	_ KVStore      = (*CloudflareR2Store)(nil)
	_ FileUploader = (*CloudflareR2Store)(nil)
)

func NewCloudflareR2Store(ctx context.Context, cfg CloudflareR2Config) (*CloudflareR2Store, error) {
	if cfg.AccountID == "" || cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" || cfg.BucketName == "" {
		return nil, errors.New("invalid Cloudflare R2 configuration: account id, access key, secret and bucket are required")
	}

	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID)
	}

	sdkCfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
		config.WithRegion("auto"), // R2 требует регион "auto"
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS SDK config for R2: %w", err)
	}

	client := s3.NewFromConfig(sdkCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = cfg.Endpoint != ""
	})

	return newCloudflareR2Store(client, cfg), nil
}

func newCloudflareR2Store(client s3API, cfg CloudflareR2Config) *CloudflareR2Store {
	return &CloudflareR2Store{
		client:        client,
		bucketName:    cfg.BucketName,
		publicBaseURL: cfg.PublicBaseURL,
		keyPrefix:     cfg.KeyPrefix,
	}
}

func (u *CloudflareR2Store) objectKey(key string) string {
	return u.keyPrefix + key + ".json"
}

func (u *CloudflareR2Store) Get(ctx context.Context, key string) (string, bool, error) {
	out, err := u.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(u.bucketName),
		Key:    aws.String(u.objectKey(key)),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("%w: failed to read object from R2 (key: %s): %v", ErrUnavailable, key, err)
	}
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return "", false, fmt.Errorf("%w: failed to read R2 object body (key: %s): %v", ErrUnavailable, key, err)
	}
	return string(body), true, nil
}

func (u *CloudflareR2Store) Set(ctx context.Context, key, value string) error {
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucketName),
		Key:         aws.String(u.objectKey(key)),
		Body:        strings.NewReader(value),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("%w: failed to write object to R2 (key: %s): %v", ErrUnavailable, key, err)
	}
	return nil
}

func (u *CloudflareR2Store) Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error) {
	result, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucketName),
		Key:         aws.String(key),
		Body:        reader,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload object to R2 (key: %s): %w", key, err)
	}

	etag := ""
	if result.ETag != nil {
		// ETag приходит в двойных кавычках.
		etag = strings.Trim(*result.ETag, "\"")
	}

	return &UploadResult{
		Key:      key,
		Location: u.GetPublicURL(key),
		ETag:     etag,
	}, nil
}

func (u *CloudflareR2Store) Delete(ctx context.Context, key string) error {
	_, err := u.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(u.bucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object from R2 (key: %s): %w", key, err)
	}
	return nil
}

func (u *CloudflareR2Store) GetPublicURL(key string) string {
	if u.publicBaseURL == "" || key == "" {
		return ""
	}

	baseURL, err := url.Parse(u.publicBaseURL)
	if err != nil {
		return ""
	}
	if !strings.HasSuffix(baseURL.Path, "/") {
		baseURL.Path += "/"
	}

	pathURL, err := url.Parse(strings.TrimPrefix(key, "/"))
	if err != nil {
		return ""
	}
	return baseURL.ResolveReference(pathURL).String()
}
