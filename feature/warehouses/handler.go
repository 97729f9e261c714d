package warehouses

import (
	"errors"

	"stock-reconciler/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the store mapping.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the warehouse routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/warehouses")
	group.Get("/", h.HandleList)
	group.Put("/:store", h.HandleSet)
	group.Delete("/:store", h.HandleDelete)
}

// setRequest is the body of PUT /warehouses/:store.
type setRequest struct {
	Warehouse string `json:"warehouse"`
}

// HandleList returns the stored rows and the effective mapping.
// @Summary List Store Mapping
// @Description Returns the stored store to warehouse rows and the effective mapping, configured defaults included.
// @Tags warehouses
// @Produce json
// @Success 200 {object} map[string]interface{} "Mapping"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /warehouses [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	rows, err := h.service.List(c.Context())
	if err != nil {
		l.Error("Listing warehouses failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	effective, err := h.service.Mapping(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if rows == nil {
		rows = []StoreWarehouse{}
	}

	return c.JSON(fiber.Map{
		"stored":    rows,
		"effective": effective,
	})
}

// HandleSet maps a store to a warehouse.
// @Summary Set Store Warehouse
// @Tags warehouses
// @Accept json
// @Produce json
// @Param store path string true "Store number or name"
// @Param body body setRequest true "Warehouse code"
// @Success 200 {object} map[string]string "Saved"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 503 {object} map[string]string "No database"
// @Router /warehouses/{store} [put]
func (h *Handler) HandleSet(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	store := c.Params("store")

	var req setRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	if err := h.service.Set(c.Context(), store, req.Warehouse); err != nil {
		switch {
		case errors.Is(err, ErrInvalidMapping):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, ErrNoDatabase):
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
		}
		l.Error("Saving warehouse failed", zap.String("store", store), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"store": store, "warehouse": req.Warehouse})
}

// HandleDelete removes a stored mapping.
// @Summary Remove Store Warehouse
// @Tags warehouses
// @Produce json
// @Param store path string true "Store number or name"
// @Success 204 "Removed"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 503 {object} map[string]string "No database"
// @Router /warehouses/{store} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	store := c.Params("store")

	found, err := h.service.Remove(c.Context(), store)
	if err != nil {
		if errors.Is(err, ErrNoDatabase) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
		}
		l.Error("Removing warehouse failed", zap.String("store", store), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "store not mapped"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
