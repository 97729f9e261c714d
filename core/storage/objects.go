package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/minio/minio-go/v7"
)

// Object is a downloaded object held in memory.
type Object struct {
	Key  string
	Data []byte
}

// Name returns the last path segment of the key.
func (o Object) Name() string {
	if i := strings.LastIndex(o.Key, "/"); i >= 0 {
		return o.Key[i+1:]
	}
	return o.Key
}

// Reader returns a fresh reader over the object data.
func (o Object) Reader() io.Reader {
	return bytes.NewReader(o.Data)
}

// ReadObject downloads key fully.
func ReadObject(ctx context.Context, client Client, bucket, key string) (Object, error) {
	rc, err := client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return Object{}, fmt.Errorf("failed to get object %s: %w", key, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return Object{}, fmt.Errorf("failed to read object %s: %w", key, err)
	}
	return Object{Key: key, Data: data}, nil
}

// ListKeys returns the keys under prefix ending in suffix (case-insensitive),
// sorted. Folder markers are skipped.
func ListKeys(ctx context.Context, client Client, bucket, prefix, suffix string) ([]string, error) {
	opts := minio.ListObjectsOptions{Prefix: prefix, Recursive: true}
	suffix = strings.ToLower(suffix)

	var keys []string
	for obj := range client.ListObjects(ctx, bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", prefix, obj.Err)
		}
		if strings.HasSuffix(obj.Key, "/") {
			continue
		}
		if suffix != "" && !strings.HasSuffix(strings.ToLower(obj.Key), suffix) {
			continue
		}
		keys = append(keys, obj.Key)
	}
	sort.Strings(keys)
	return keys, nil
}

// PutBytes uploads data under key.
func PutBytes(ctx context.Context, client Client, bucket, key string, data []byte, contentType string) error {
	_, err := client.PutObject(ctx, bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("failed to put object %s: %w", key, err)
	}
	return nil
}
