package warehouses

import (
	"time"

	"stock-reconciler/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
	repo    *Repository
}

// NewFeature creates the warehouses feature. db may be nil.
func NewFeature(db *gorm.DB, fallback reconcile.StoreMapping, ttl time.Duration, logger *zap.Logger) *Feature {
	repo := NewRepository(db)
	svc := NewService(repo, fallback, ttl, logger)
	return &Feature{service: svc, handler: NewHandler(svc), repo: repo}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "warehouses"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Service exposes the mapping service to other features.
func (f *Feature) Service() *Service {
	return f.service
}

// Load migrates the table when a database is attached and registers the routes.
func (f *Feature) Load(app fiber.Router) error {
	if f.repo.Available() {
		if err := f.repo.AutoMigrate(); err != nil {
			return err
		}
	}
	f.handler.RegisterRoutes(app)
	return nil
}
