// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind the Client interface so the exports
// bucket can be mocked in tests (see core/storage/mocks). Both AWS S3 and
// self-hosted MinIO are supported.
//
// # Helpers
//
//   - ReadObject: downloads an export into memory.
//   - ListKeys: lists the exports under a prefix, filtered by extension.
//   - PutBytes: uploads a generated report.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	keys, err := storage.ListKeys(ctx, client, cfg.Storage.Bucket, "exports/tiendas/", ".csv")
package storage
