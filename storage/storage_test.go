package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, ok, err := store.Get(ctx, KeyTournaments)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, KeyTournaments, "[]"))
	v, ok, err := store.Get(ctx, KeyTournaments)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", v)

	require.NoError(t, store.Set(ctx, KeyTournaments, `[{"id":"t1"}]`))
	v, _, _ = store.Get(ctx, KeyTournaments)
	assert.Equal(t, `[{"id":"t1"}]`, v)
}

// fakeS3 keeps objects in memory and mimics NoSuchKey.
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
	failPut error
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: make(map[string][]byte)}
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.failPut != nil {
		return nil, f.failPut
	}
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.objects[aws.ToString(in.Key)] = body
	f.mu.Unlock()
	return &s3.PutObjectOutput{ETag: aws.String(`"etag-1"`)}, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	body, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{Message: aws.String("not found")}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(body))}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.mu.Lock()
	delete(f.objects, aws.ToString(in.Key))
	f.mu.Unlock()
	return &s3.DeleteObjectOutput{}, nil
}

func TestCloudflareR2Store_KV(t *testing.T) {
	ctx := context.Background()
	fake := newFakeS3()
	store := newCloudflareR2Store(fake, CloudflareR2Config{BucketName: "bucket", KeyPrefix: "grindzone/"})

	_, ok, err := store.Get(ctx, KeyPayments)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, KeyPayments, `[{"id":"p1"}]`))
	assert.Contains(t, fake.objects, "grindzone/payments.json")

	v, ok, err := store.Get(ctx, KeyPayments)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"p1"}]`, v)
}

func TestCloudflareR2Store_SetFailureIsUnavailable(t *testing.T) {
	fake := newFakeS3()
	fake.failPut = errors.New("network down")
	store := newCloudflareR2Store(fake, CloudflareR2Config{BucketName: "bucket"})

	err := store.Set(context.Background(), KeyPayments, "[]")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestCloudflareR2Store_UploadAndDelete(t *testing.T) {
	ctx := context.Background()
	fake := newFakeS3()
	store := newCloudflareR2Store(fake, CloudflareR2Config{BucketName: "bucket", PublicBaseURL: "https://cdn.example.com/media"})

	res, err := store.Upload(ctx, "banners/t1.png", "image/png", bytes.NewReader([]byte("png")))
	require.NoError(t, err)
	assert.Equal(t, "etag-1", res.ETag)
	assert.Equal(t, "https://cdn.example.com/media/banners/t1.png", res.Location)

	require.NoError(t, store.Delete(ctx, "banners/t1.png"))
	assert.NotContains(t, fake.objects, "banners/t1.png")
}

func TestCloudflareR2Store_GetPublicURL(t *testing.T) {
	store := newCloudflareR2Store(newFakeS3(), CloudflareR2Config{PublicBaseURL: "https://cdn.example.com/"})
	assert.Equal(t, "https://cdn.example.com/a/b.png", store.GetPublicURL("/a/b.png"))
	assert.Equal(t, "", store.GetPublicURL(""))

	noBase := newCloudflareR2Store(newFakeS3(), CloudflareR2Config{})
	assert.Equal(t, "", noBase.GetPublicURL("a.png"))
}
