package trips

import (
	"triprecord/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the trips feature.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the trips routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/trips")
	group.Post("/reconcile", h.HandleReconcile)
	group.Get("/reconcile/analysis", h.HandleAnalyze)
	group.Get("/reconcile/reports", h.HandleListReports)
	group.Get("/reconcile/reports/+", h.HandleGetReport)
}

// HandleReconcile runs a full charge-to-trip reconciliation and returns its
// summary. The operation takes no input.
func (h *Handler) HandleReconcile(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.Reconcile(c.Context())
	if err != nil {
		l.Error("Reconciliation failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(report)
}

// HandleAnalyze runs the read-only orphan analysis and returns the breakdown.
func (h *Handler) HandleAnalyze(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.Analyze(c.Context())
	if err != nil {
		l.Error("Orphan analysis failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(report)
}

// HandleListReports lists archived run reports.
func (h *Handler) HandleListReports(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	names, err := h.service.ListReports(c.Context())
	if err != nil {
		l.Error("Report listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if names == nil {
		names = []string{}
	}
	return c.JSON(fiber.Map{"reports": names})
}

// HandleGetReport returns one archived run report by object name.
func (h *Handler) HandleGetReport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	name := "reports/" + c.Params("+")

	data, err := h.service.GetReport(c.Context(), name)
	if err != nil {
		l.Error("Report fetch failed", zap.String("object", name), zap.Error(err))
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(data)
}
