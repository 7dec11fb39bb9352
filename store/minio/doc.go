// Package minio implements store.Store on MinIO and other S3-compatible
// object stores, for disc images kept in a bucket.
package minio
