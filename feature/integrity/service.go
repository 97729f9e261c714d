package integrity

import (
	"context"
	"errors"

	"stock-reconciler/core/reconcile"
	"stock-reconciler/core/storage"
	"stock-reconciler/feature/integrity/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrNoDatabase is returned by the server check when no database is configured.
var ErrNoDatabase = errors.New("no database connection")

// Service handles integrity checks.
type Service struct {
	client storage.Client
	bucket string
	cfg    reconcile.Config
	logger *zap.Logger
	db     *gorm.DB
}

// NewService creates a new integrity service. db may be nil.
func NewService(client storage.Client, bucket string, cfg reconcile.Config, logger *zap.Logger, db *gorm.DB) *Service {
	return &Service{
		client: client,
		bucket: bucket,
		cfg:    cfg,
		logger: logger,
		db:     db,
	}
}

// CheckStructure returns the missing bucket folders.
func (s *Service) CheckStructure(ctx context.Context) ([]string, error) {
	return checks.CheckStructure(ctx, s.client, s.bucket, checks.RequiredFolders(s.cfg))
}

// FixStructure creates the missing folders.
func (s *Service) FixStructure(ctx context.Context, missing []string) error {
	return checks.FixStructure(ctx, s.client, s.bucket, s.logger, missing)
}

// CheckExports validates the exports waiting in the bucket.
func (s *Service) CheckExports(ctx context.Context) (*checks.ExportsReport, error) {
	return checks.CheckExports(ctx, s.client, s.bucket, s.cfg)
}

// CheckServer validates the mapping table schema.
func (s *Service) CheckServer() (*checks.ServerReport, error) {
	if s.db == nil {
		return nil, ErrNoDatabase
	}
	return checks.CheckServerIntegrity(s.db)
}
