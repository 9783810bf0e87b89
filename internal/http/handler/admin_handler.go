package handler

import (
	"bytes"
	"context"
	"crypto/subtle"
	"time"

	"github.com/Azis2405/wpdev-copy-button/internal/analytics"
	"github.com/Azis2405/wpdev-copy-button/internal/app/repository"
	"github.com/Azis2405/wpdev-copy-button/internal/app/service"
	"github.com/Azis2405/wpdev-copy-button/internal/http/view"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const adminKeyHeader = "X-Admin-Key"

// purgeConfirmWord must be typed verbatim before the purge runs.
const purgeConfirmWord = "DELETE"

// AdminDeps groups dependencies required by the admin surface.
type AdminDeps struct {
	Logger      *zap.Logger
	Listing     *service.ListingService
	Aggregation *service.AggregationService
	Export      *service.ExportService
	Events      repository.CopyEventRepository
	AdminKey    string
}

// AdminHandler implements the dashboard and its JSON/CSV endpoints.
type AdminHandler struct {
	logger      *zap.Logger
	listing     *service.ListingService
	aggregation *service.AggregationService
	export      *service.ExportService
	events      repository.CopyEventRepository
	adminKey    string
}

// NewAdminHandler creates an admin handler with the provided dependencies.
func NewAdminHandler(deps AdminDeps) *AdminHandler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminHandler{
		logger:      logger,
		listing:     deps.Listing,
		aggregation: deps.Aggregation,
		export:      deps.Export,
		events:      deps.Events,
		adminKey:    deps.AdminKey,
	}
}

// Register wires admin routes onto the provided router.
func (h *AdminHandler) Register(router fiber.Router) {
	admin := router.Group("/admin", h.requireKey)
	{
		admin.Get("/", h.Dashboard)
		admin.Get("/api/events", h.ListEvents)
		admin.Get("/api/charts", h.Charts)
		admin.Get("/export.csv", h.ExportCSV)
		admin.Post("/purge", h.Purge)
	}
}

// requireKey gates every admin route on the configured key, supplied via
// header or query parameter. An unconfigured key locks the surface shut.
func (h *AdminHandler) requireKey(c *fiber.Ctx) error {
	provided := c.Get(adminKeyHeader)
	if provided == "" {
		provided = c.Query("key")
	}
	if h.adminKey == "" ||
		subtle.ConstantTimeCompare([]byte(provided), []byte(h.adminKey)) != 1 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "invalid admin key",
		})
	}
	return c.Next()
}

// Dashboard handles GET /admin and serves the analytics page.
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	html, err := view.RenderDashboard(view.DashboardData{
		Title:     "Copy Analytics",
		AdminKey:  c.Get(adminKeyHeader, c.Query("key")),
		EventsURL: "/admin/api/events",
		ChartsURL: "/admin/api/charts",
		ExportURL: "/admin/export.csv",
		PurgeURL:  "/admin/purge",
	})
	if err != nil {
		h.logger.Error("failed to render dashboard", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to render dashboard",
		})
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(html)
}

// ListEvents handles GET /admin/api/events.
func (h *AdminHandler) ListEvents(c *fiber.Ctx) error {
	filter := filterFromQuery(c)
	sortBy := analytics.ParseSortColumn(c.Query("sort_by"))
	dir := analytics.ParseSortDirection(c.Query("sort_dir"))
	page := c.QueryInt("page", 1)

	ctx := c.UserContext()
	if ctx == nil {
		ctx = context.Background()
	}

	result, err := h.listing.ListEvents(ctx, filter, sortBy, dir, page)
	if err != nil {
		h.logger.Error("failed to list events", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to list events",
		})
	}

	return c.JSON(result)
}

// Charts handles GET /admin/api/charts and returns all four aggregations.
func (h *AdminHandler) Charts(c *fiber.Ctx) error {
	filter := filterFromQuery(c)

	ctx := c.UserContext()
	if ctx == nil {
		ctx = context.Background()
	}

	pages, err := h.aggregation.TopPages(ctx, filter)
	if err != nil {
		return h.chartError(c, err)
	}
	groups, err := h.aggregation.TopUserGroups(ctx, filter)
	if err != nil {
		return h.chartError(c, err)
	}
	taxonomies, err := h.aggregation.TopTaxonomies(ctx, filter)
	if err != nil {
		return h.chartError(c, err)
	}
	devices, err := h.aggregation.DeviceMix(ctx, filter)
	if err != nil {
		return h.chartError(c, err)
	}

	return c.JSON(fiber.Map{
		"top_pages":       pages,
		"top_user_groups": groups,
		"top_taxonomies":  taxonomies,
		"device_mix":      devices,
	})
}

func (h *AdminHandler) chartError(c *fiber.Ctx, err error) error {
	h.logger.Error("failed to compute charts", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "failed to compute charts",
	})
}

// ExportCSV handles GET /admin/export.csv. The export honors the same
// filters as the listing but is never paginated.
func (h *AdminHandler) ExportCSV(c *fiber.Ctx) error {
	filter := filterFromQuery(c)

	ctx := c.UserContext()
	if ctx == nil {
		ctx = context.Background()
	}

	var buf bytes.Buffer
	if err := h.export.WriteCSV(ctx, filter, &buf); err != nil {
		h.logger.Error("failed to export events", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to export events",
		})
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition,
		`attachment; filename="`+h.export.Filename(time.Now())+`"`)
	return c.Send(buf.Bytes())
}

// PurgeRequest represents the purge confirmation body.
type PurgeRequest struct {
	Confirm string `json:"confirm"`
}

// Purge handles POST /admin/purge. It truncates the event store and
// resets its identity counter. The confirmation word is required.
func (h *AdminHandler) Purge(c *fiber.Ctx) error {
	var req PurgeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	if req.Confirm != purgeConfirmWord {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "confirmation word mismatch",
		})
	}

	ctx := c.UserContext()
	if ctx == nil {
		ctx = context.Background()
	}

	if err := h.events.DeleteAll(ctx); err != nil {
		h.logger.Error("failed to purge events", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to purge events",
		})
	}

	h.logger.Warn("all copy events purged", zap.String("ip", c.IP()))
	return c.JSON(fiber.Map{"status": "purged"})
}

func filterFromQuery(c *fiber.Ctx) analytics.Filter {
	return analytics.NewFilter(
		c.Query("date_from"),
		c.Query("date_to"),
		c.Query("target_id"),
		c.Query("page_url"),
	)
}
