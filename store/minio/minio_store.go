package minio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"slices"
	"strings"

	"github.com/arloliu/alx/store"
	"github.com/minio/minio-go/v7"
)

// Store implements store.Store for MinIO and S3-compatible storage.
type Store struct {
	client *minio.Client
	bucket string
	prefix string
}

var _ store.Store = (*Store)(nil)

// NewStore creates a store on bucket. rootPrefix is prepended to every
// object key (e.g. "discs/ntsc-u/").
func NewStore(client *minio.Client, bucket, rootPrefix string) *Store {
	return &Store{
		client: client,
		bucket: bucket,
		prefix: rootPrefix,
	}
}

func (s *Store) key(name string) string {
	return path.Join(s.prefix, name)
}

func isNotFound(err error) bool {
	code := minio.ToErrorResponse(err).Code

	return code == "NoSuchKey" || code == "NotFound"
}

func (s *Store) wrap(name string, err error) error {
	if isNotFound(err) {
		return fmt.Errorf("%s: %w", name, store.ErrNotFound)
	}

	return fmt.Errorf("%s: %w", name, err)
}

// List returns the object names below the root prefix containing substr,
// sorted.
func (s *Store) List(ctx context.Context, substr string) ([]string, error) {
	var names []string
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    s.prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, obj.Err
		}

		name := strings.TrimPrefix(obj.Key, s.prefix)
		name = strings.TrimPrefix(name, "/")
		if name != "" && strings.Contains(name, substr) {
			names = append(names, name)
		}
	}
	slices.Sort(names)

	return names, nil
}

// ReadAt reads a byte range of name.
func (s *Store) ReadAt(ctx context.Context, name string, p []byte, off int64) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	size, err := s.Size(ctx, name)
	if err != nil {
		return 0, err
	}
	if off >= size {
		return 0, io.EOF
	}

	end := min(off+int64(len(p)), size) - 1
	opts := minio.GetObjectOptions{}
	if err := opts.SetRange(off, end); err != nil {
		return 0, err
	}

	obj, err := s.client.GetObject(ctx, s.bucket, s.key(name), opts)
	if err != nil {
		return 0, s.wrap(name, err)
	}
	defer obj.Close()

	n, err := io.ReadFull(obj, p[:end-off+1])
	if err != nil {
		return n, s.wrap(name, err)
	}
	if n < len(p) {
		return n, io.EOF
	}

	return n, nil
}

// ReadFile downloads the whole object.
func (s *Store) ReadFile(ctx context.Context, name string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, s.key(name), minio.GetObjectOptions{})
	if err != nil {
		return nil, s.wrap(name, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, s.wrap(name, err)
	}

	return data, nil
}

// Size returns the object size.
func (s *Store) Size(ctx context.Context, name string) (int64, error) {
	info, err := s.client.StatObject(ctx, s.bucket, s.key(name), minio.StatObjectOptions{})
	if err != nil {
		return 0, s.wrap(name, err)
	}

	return info.Size, nil
}

// WriteFile uploads data as name, replacing any existing object.
func (s *Store) WriteFile(ctx context.Context, name string, data []byte) error {
	_, err := s.client.PutObject(ctx, s.bucket, s.key(name), bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{})
	if err != nil {
		return s.wrap(name, err)
	}

	return nil
}
