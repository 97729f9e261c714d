package conciliation

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"stock-reconciler/core/logger"
	"stock-reconciler/core/reconcile"
	"stock-reconciler/core/report"
	"stock-reconciler/core/tabular"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for reconciliation runs.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the conciliation routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/conciliation")
	group.Post("/", h.HandleUpload)
	group.Post("/storage", h.HandleStorage)
}

// response is the JSON body of a run.
type response struct {
	NoDifferences bool              `json:"no_differences"`
	Summary       reconcile.Summary `json:"summary"`
	Lines         []reconcile.Line  `json:"lines"`
	Inventory     string            `json:"inventory,omitempty"`
	Sessions      []string          `json:"sessions,omitempty"`
	ReportKey     string            `json:"report_key,omitempty"`
}

func newResponse(rep *reconcile.Report) response {
	lines := rep.Lines
	if lines == nil {
		lines = []reconcile.Line{}
	}
	return response{NoDifferences: rep.NoDifferences(), Summary: rep.Summary, Lines: lines}
}

// HandleUpload reconciles uploaded exports.
// @Summary Reconcile Uploaded Exports
// @Description Reconciles an inventory export against one or more store session exports. Use format=xlsx to download a spreadsheet.
// @Tags conciliation
// @Accept multipart/form-data
// @Produce json
// @Param inventory formData file true "Inventory export"
// @Param sessions formData file true "Session exports (repeatable)"
// @Param mapping formData string false "Store mapping override, e.g. 3=34,Ayala=34"
// @Param stores formData string false "Comma separated stores to reconcile"
// @Param format query string false "json (default) or xlsx"
// @Success 200 {object} response "Reconciliation"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /conciliation [post]
func (h *Handler) HandleUpload(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "expected a multipart form"})
	}

	inventoryFiles := form.File["inventory"]
	if len(inventoryFiles) != 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "exactly one inventory file is required"})
	}
	inventory, err := openFile(inventoryFiles[0])
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	req := Request{Inventory: inventory}
	for _, fh := range form.File["sessions"] {
		f, err := openFile(fh)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		req.Sessions = append(req.Sessions, f)
	}

	if v := formValue(form, "mapping"); v != "" {
		if req.Mapping, err = reconcile.ParseMapping(v); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
	}
	req.Stores = splitList(formValue(form, "stores"))

	l.Info("Reconciling uploaded exports",
		zap.String("inventory", inventory.Name),
		zap.Int("sessions", len(req.Sessions)))

	rep, err := h.service.Run(c.Context(), req)
	if err != nil {
		return h.fail(c, l, err)
	}

	if c.Query("format") == "xlsx" {
		var buf bytes.Buffer
		if err := report.WriteXLSX(&buf, rep); err != nil {
			return h.fail(c, l, err)
		}
		c.Attachment("conciliacion.xlsx")
		c.Set(fiber.HeaderContentType, report.ContentType)
		return c.Send(buf.Bytes())
	}
	return c.JSON(newResponse(rep))
}

// HandleStorage reconciles the exports stored in the bucket.
// @Summary Reconcile Stored Exports
// @Description Reconciles the inventory object against every session export under the sessions prefix. Optionally uploads the spreadsheet.
// @Tags conciliation
// @Accept json
// @Produce json
// @Param body body StorageRequest false "Locations and mapping override"
// @Success 200 {object} response "Reconciliation"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /conciliation/storage [post]
func (h *Handler) HandleStorage(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req StorageRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
		}
	}

	result, err := h.service.RunFromStorage(c.Context(), req)
	if err != nil {
		return h.fail(c, l, err)
	}

	resp := newResponse(result.Report)
	resp.Inventory = result.Inventory
	resp.Sessions = result.Sessions
	resp.ReportKey = result.ReportKey
	return c.JSON(resp)
}

// fail maps a run error to a response. Schema and input errors are the
// caller's fault and are returned verbatim.
func (h *Handler) fail(c *fiber.Ctx, l *zap.Logger, err error) error {
	var missing *tabular.MissingColumnsError
	switch {
	case errors.As(err, &missing), errors.Is(err, tabular.ErrEmptyInput), errors.Is(err, ErrNoSessions):
		l.Warn("Rejected reconciliation input", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	l.Error("Reconciliation failed", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}

func openFile(fh *multipart.FileHeader) (File, error) {
	f, err := fh.Open()
	if err != nil {
		return File{}, fmt.Errorf("failed to open %s: %w", fh.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return File{}, fmt.Errorf("failed to read %s: %w", fh.Filename, err)
	}
	return File{Name: fh.Filename, Reader: bytes.NewReader(data)}, nil
}

func formValue(form *multipart.Form, key string) string {
	if v := form.Value[key]; len(v) > 0 {
		return strings.TrimSpace(v[0])
	}
	return ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
