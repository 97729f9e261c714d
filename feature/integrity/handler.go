package integrity

import (
	"stock-reconciler/core/logger"
	"stock-reconciler/feature/integrity/checks"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	// Force import for Swagger
	var _ = checks.ServerReport{}
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/", h.HandleIntegrityCheck)
	group.Get("/structure", h.HandleStructureCheck)
	group.Get("/exports", h.HandleExportsCheck)
	group.Get("/server", h.HandleServerCheck)
}

func errorEntry(err error) fiber.Map {
	return fiber.Map{"status": "error", "error": err.Error()}
}

// HandleIntegrityCheck triggers all integrity checks.
// @Summary Run All Integrity Checks
// @Description Performs all available integrity checks (Structure, Exports, Server).
// @Tags integrity
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Combined Report"
// @Router /integrity [get]
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all integrity checks")

	ctx := c.Context()
	report := make(fiber.Map)

	if missing, err := h.service.CheckStructure(ctx); err != nil {
		report["structure"] = errorEntry(err)
	} else {
		report["structure"] = fiber.Map{"status": "ok", "missing": missing}
	}

	if exports, err := h.service.CheckExports(ctx); err != nil {
		report["exports"] = errorEntry(err)
	} else {
		report["exports"] = exports
	}

	if srvReport, err := h.service.CheckServer(); err != nil {
		report["server"] = errorEntry(err)
	} else {
		report["server"] = srvReport
	}

	return c.JSON(report)
}

// HandleStructureCheck checks and optionally fixes structure.
// @Summary Check Structure
// @Description Checks if the export and report folders exist in the storage bucket. Optionally fixes missing folders.
// @Tags integrity
// @Accept json
// @Produce json
// @Param fix query boolean false "Fix missing folders"
// @Success 200 {object} map[string]interface{} "Structure Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/structure [get]
func (h *Handler) HandleStructureCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	fix := c.Query("fix") == "true"

	missing, err := h.service.CheckStructure(c.Context())
	if err != nil {
		l.Error("Structure check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if len(missing) > 0 {
		l.Warn("Missing folders detected", zap.Strings("missing", missing))

		if fix {
			l.Info("Attempting to fix missing folders")
			if err := h.service.FixStructure(c.Context(), missing); err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error":   "Failed to fix structure",
					"details": err.Error(),
					"missing": missing,
				})
			}
			return c.JSON(fiber.Map{
				"status": "fixed",
				"fixed":  missing,
			})
		}
	}

	return c.JSON(fiber.Map{
		"status":  "checked",
		"missing": missing,
	})
}

// HandleExportsCheck validates the exports in the bucket.
// @Summary Check Exports
// @Description Verifies that the inventory and session exports exist and carry the required columns.
// @Tags integrity
// @Produce json
// @Success 200 {object} checks.ExportsReport "Exports Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/exports [get]
func (h *Handler) HandleExportsCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckExports(c.Context())
	if err != nil {
		l.Error("Exports check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if !report.Ready {
		l.Warn("Exports are not ready for reconciliation",
			zap.Bool("inventory_found", report.InventoryFound),
			zap.Int("sessions", len(report.Sessions)),
			zap.Int("invalid", len(report.Invalid)))
	}
	return c.JSON(report)
}

// HandleServerCheck checks the database schema.
// @Summary Check Server Schema
// @Description Checks if the mapping table matches the expected model.
// @Tags integrity
// @Accept json
// @Produce json
// @Success 200 {object} checks.ServerReport "Server Check Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/server [get]
func (h *Handler) HandleServerCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Starting server schema check")

	report, err := h.service.CheckServer()
	if err != nil {
		l.Error("Server schema check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(report)
}
