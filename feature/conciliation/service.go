package conciliation

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"stock-reconciler/core/reconcile"
	"stock-reconciler/core/report"
	"stock-reconciler/core/storage"
	"stock-reconciler/core/tabular"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrNoSessions is returned when a run has no session export.
var ErrNoSessions = errors.New("at least one sessions file is required")

// maxConcurrentDownloads bounds parallel GetObject calls.
const maxConcurrentDownloads = 4

// File is a named export.
type File struct {
	Name   string
	Reader io.Reader
}

// Request describes one reconciliation run.
type Request struct {
	Inventory File
	Sessions  []File
	// Mapping overrides the stored mapping for the stores it names.
	Mapping reconcile.StoreMapping
	// Stores restricts the run to these stores when not empty.
	Stores []string
}

// StorageRequest describes a run over the exports in the bucket. Empty
// locations fall back to the configured ones.
type StorageRequest struct {
	InventoryObject string                 `json:"inventory_object"`
	SessionsPrefix  string                 `json:"sessions_prefix"`
	Mapping         reconcile.StoreMapping `json:"mapping"`
	Stores          []string               `json:"stores"`
	Upload          bool                   `json:"upload"`
}

// StorageResult is the outcome of a run over stored exports.
type StorageResult struct {
	Report    *reconcile.Report `json:"report"`
	Inventory string            `json:"inventory"`
	Sessions  []string          `json:"sessions"`
	ReportKey string            `json:"report_key,omitempty"`
}

// MappingSource provides the effective store mapping.
type MappingSource interface {
	Mapping(ctx context.Context) (reconcile.StoreMapping, error)
}

// Service runs reconciliations.
type Service struct {
	client   storage.Client
	bucket   string
	cfg      reconcile.Config
	mappings MappingSource
	logger   *zap.Logger
	now      func() time.Time
}

// NewService creates a new conciliation service. client and mappings may be nil.
func NewService(client storage.Client, bucket string, cfg reconcile.Config, mappings MappingSource, logger *zap.Logger) *Service {
	return &Service{
		client:   client,
		bucket:   bucket,
		cfg:      cfg,
		mappings: mappings,
		logger:   logger,
		now:      time.Now,
	}
}

// Run decodes the exports and reconciles them. Decode errors name the file;
// a *tabular.MissingColumnsError stays reachable with errors.As.
func (s *Service) Run(ctx context.Context, req Request) (*reconcile.Report, error) {
	if len(req.Sessions) == 0 {
		return nil, ErrNoSessions
	}

	inventory, err := tabular.DecodeInventory(req.Inventory.Reader)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", req.Inventory.Name, err)
	}

	var sessions []reconcile.SessionRecord
	for _, f := range req.Sessions {
		records, err := tabular.DecodeSessions(f.Reader)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.Name, err)
		}
		sessions = append(sessions, records...)
	}

	mapping, err := s.resolveMapping(ctx, req.Mapping, req.Stores)
	if err != nil {
		return nil, err
	}
	if len(mapping) == 0 {
		s.logger.Warn("No store is mapped to a warehouse, every session row will be skipped")
	}

	rep := reconcile.ReconcileWithSummary(reconcile.Input{
		SourceRows:       inventory,
		ComparisonRows:   sessions,
		StoreToWarehouse: mapping,
	})

	fields := []zap.Field{
		zap.Int("inventory_rows", rep.Summary.Source.Rows),
		zap.Int("session_rows", rep.Summary.Comparison.Rows),
		zap.Int("keys", rep.Summary.KeysCompared),
		zap.Int("discrepancies", rep.Summary.Discrepancies),
	}
	if len(rep.Summary.Comparison.UnmappedStores) > 0 {
		s.logger.Warn("Session rows from unmapped stores were skipped",
			zap.Strings("stores", rep.Summary.Comparison.UnmappedStores),
			zap.Int("rows", rep.Summary.Comparison.SkippedUnmapped))
	}
	if rep.NoDifferences() {
		s.logger.Info("Reconciliation finished with no differences", fields...)
	} else {
		s.logger.Info("Reconciliation finished", fields...)
	}
	return rep, nil
}

// resolveMapping layers override over the stored mapping and applies the
// stores filter.
func (s *Service) resolveMapping(ctx context.Context, override reconcile.StoreMapping, stores []string) (reconcile.StoreMapping, error) {
	var base reconcile.StoreMapping
	if s.mappings != nil {
		m, err := s.mappings.Mapping(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve store mapping: %w", err)
		}
		base = m
	}
	mapping := base.Merge(override)
	if len(stores) > 0 {
		mapping = mapping.Subset(stores)
	}
	return mapping, nil
}

// RunFromStorage reconciles the inventory object against every .csv under the
// sessions prefix, optionally uploading the spreadsheet.
func (s *Service) RunFromStorage(ctx context.Context, req StorageRequest) (*StorageResult, error) {
	if s.client == nil {
		return nil, errors.New("storage is not configured")
	}
	inventoryKey := req.InventoryObject
	if inventoryKey == "" {
		inventoryKey = s.cfg.InventoryObject
	}
	prefix := req.SessionsPrefix
	if prefix == "" {
		prefix = s.cfg.SessionsPrefix
	}

	keys, err := storage.ListKeys(ctx, s.client, s.bucket, prefix, ".csv")
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("%w: nothing under %s", ErrNoSessions, prefix)
	}

	inventory, sessions, err := s.download(ctx, inventoryKey, keys)
	if err != nil {
		return nil, err
	}

	files := make([]File, len(sessions))
	for i, obj := range sessions {
		files[i] = File{Name: obj.Key, Reader: obj.Reader()}
	}
	rep, err := s.Run(ctx, Request{
		Inventory: File{Name: inventory.Key, Reader: inventory.Reader()},
		Sessions:  files,
		Mapping:   req.Mapping,
		Stores:    req.Stores,
	})
	if err != nil {
		return nil, err
	}

	result := &StorageResult{Report: rep, Inventory: inventoryKey, Sessions: keys}
	if req.Upload {
		key, err := s.UploadReport(ctx, rep)
		if err != nil {
			return nil, err
		}
		result.ReportKey = key
	}
	return result, nil
}

// download fetches the inventory and the session objects concurrently.
// Sessions keep the order of keys.
func (s *Service) download(ctx context.Context, inventoryKey string, keys []string) (storage.Object, []storage.Object, error) {
	var inventory storage.Object
	sessions := make([]storage.Object, len(keys))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentDownloads)

	g.Go(func() error {
		obj, err := storage.ReadObject(gctx, s.client, s.bucket, inventoryKey)
		inventory = obj
		return err
	})
	for i, key := range keys {
		i, key := i, key
		g.Go(func() error {
			obj, err := storage.ReadObject(gctx, s.client, s.bucket, key)
			sessions[i] = obj
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return storage.Object{}, nil, err
	}
	return inventory, sessions, nil
}

// UploadReport stores rep as a spreadsheet under the reports prefix and
// returns its key.
func (s *Service) UploadReport(ctx context.Context, rep *reconcile.Report) (string, error) {
	if s.client == nil {
		return "", errors.New("storage is not configured")
	}
	var buf bytes.Buffer
	if err := report.WriteXLSX(&buf, rep); err != nil {
		return "", err
	}

	key := s.cfg.ReportsPrefix + "conciliacion-" + s.now().Format("20060102-150405") + ".xlsx"
	if err := storage.PutBytes(ctx, s.client, s.bucket, key, buf.Bytes(), report.ContentType); err != nil {
		return "", err
	}
	s.logger.Info("Report uploaded", zap.String("key", key))
	return key, nil
}
