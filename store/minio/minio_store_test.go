package minio

import (
	"context"
	"io"
	"testing"

	"github.com/arloliu/alx/store"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/require"
)

// TestMinioStore_Integration requires a running MinIO instance.
// Skip if not available.
func TestMinioStore_Integration(t *testing.T) {
	client, err := minio.New("localhost:9000", &minio.Options{
		Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
		Secure: false,
	})
	if err != nil {
		t.Skipf("MinIO client creation failed: %v", err)
	}

	ctx := context.Background()
	if _, err := client.ListBuckets(ctx); err != nil {
		t.Skipf("MinIO not available: %v", err)
	}

	bucket := "test-alx"
	exists, err := client.BucketExists(ctx, bucket)
	require.NoError(t, err)
	if !exists {
		require.NoError(t, client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}))
	}

	s := NewStore(client, bucket, "disc/")
	data := []byte("enemy container bytes")
	require.NoError(t, s.WriteFile(ctx, "field/a099a_ep.enp", data))

	size, err := s.Size(ctx, "field/a099a_ep.enp")
	require.NoError(t, err)
	require.Equal(t, int64(len(data)), size)

	got, err := s.ReadFile(ctx, "field/a099a_ep.enp")
	require.NoError(t, err)
	require.Equal(t, data, got)

	buf := make([]byte, 9)
	n, err := s.ReadAt(ctx, "field/a099a_ep.enp", buf, 6)
	require.NoError(t, err)
	require.Equal(t, 9, n)
	require.Equal(t, "container", string(buf))

	tail := make([]byte, 10)
	n, err = s.ReadAt(ctx, "field/a099a_ep.enp", tail, int64(len(data)-3))
	require.ErrorIs(t, err, io.EOF)
	require.Equal(t, 3, n)

	names, err := s.List(ctx, "_ep.enp")
	require.NoError(t, err)
	require.Contains(t, names, "field/a099a_ep.enp")

	_, err = s.ReadFile(ctx, "missing.enp")
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.Size(ctx, "missing.enp")
	require.ErrorIs(t, err, store.ErrNotFound)
}
