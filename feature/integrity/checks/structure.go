package checks

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"stock-reconciler/core/reconcile"
	"stock-reconciler/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// RequiredFolders returns the bucket folders the reconciler reads from and
// writes to: the inventory folder, the sessions prefix and the reports prefix.
func RequiredFolders(cfg reconcile.Config) []string {
	candidates := []string{
		path.Dir(cfg.InventoryObject),
		cfg.SessionsPrefix,
		cfg.ReportsPrefix,
	}

	var folders []string
	seen := make(map[string]bool)
	for _, c := range candidates {
		c = strings.Trim(c, "/")
		if c == "" || c == "." || seen[c] {
			continue
		}
		seen[c] = true
		folders = append(folders, c)
	}
	return folders
}

// CheckStructure returns the folders missing from the bucket.
func CheckStructure(ctx context.Context, client storage.Client, bucket string, folders []string) ([]string, error) {
	var missing []string

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", bucket)
	}

	for _, folder := range folders {
		opts := minio.ListObjectsOptions{
			Prefix:    folder + "/",
			Recursive: false,
			MaxKeys:   1,
		}

		// Only the first entry matters; cancelling stops the lister.
		listCtx, cancel := context.WithCancel(ctx)
		found := false
		for obj := range client.ListObjects(listCtx, bucket, opts) {
			found = obj.Err == nil
			break
		}
		cancel()

		if !found {
			missing = append(missing, folder)
		}
	}

	return missing, nil
}

// FixStructure creates a folder marker for each missing folder.
func FixStructure(ctx context.Context, client storage.Client, bucket string, logger *zap.Logger, missing []string) error {
	for _, folder := range missing {
		marker := strings.TrimSuffix(folder, "/") + "/"

		_, err := client.PutObject(ctx, bucket, marker, bytes.NewReader(nil), 0, minio.PutObjectOptions{})
		if err != nil {
			logger.Error("Failed to create folder", zap.String("folder", folder), zap.Error(err))
			return err
		}
		logger.Info("Created missing folder", zap.String("folder", folder))
	}
	return nil
}
