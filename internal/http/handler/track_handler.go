package handler

import (
	"context"
	"strings"
	"time"

	"github.com/Azis2405/wpdev-copy-button/config"
	"github.com/Azis2405/wpdev-copy-button/internal/analytics"
	"github.com/Azis2405/wpdev-copy-button/internal/app/service"
	httpUtil "github.com/Azis2405/wpdev-copy-button/internal/http/util"
	"github.com/Azis2405/wpdev-copy-button/internal/http/view"
	"github.com/Azis2405/wpdev-copy-button/internal/infra/prometheus"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const (
	trackTokenTTL    = 12 * time.Hour
	trackTokenAction = "copy-track"
	healthTimeout    = 2 * time.Second
)

// Headers the CMS front sets after authenticating the visitor. Requests
// arriving without them are treated as guests.
const (
	headerUserEmail = "X-User-Email"
	headerUserRoles = "X-User-Roles"
	headerUserGroup = "X-User-Group"
)

// TrackDeps groups dependencies required by the public tracking surface.
type TrackDeps struct {
	Logger   *zap.Logger
	Tracking *service.TrackingService
	Postgres *pgxpool.Pool
	Secret   []byte
	App      config.AppConfig
	BaseURL  string
}

// TrackHandler serves the button snippet, the client script, and the
// tracking endpoint.
type TrackHandler struct {
	logger   *zap.Logger
	tracking *service.TrackingService
	postgres *pgxpool.Pool
	tokens   *httpUtil.TokenSigner
	app      config.AppConfig
	baseURL  string
}

// NewTrackHandler creates a tracking handler with the provided dependencies.
func NewTrackHandler(deps TrackDeps) *TrackHandler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TrackHandler{
		logger:   logger,
		tracking: deps.Tracking,
		postgres: deps.Postgres,
		tokens:   httpUtil.NewTokenSigner(deps.Secret, trackTokenTTL),
		app:      deps.App,
		baseURL:  strings.TrimRight(deps.BaseURL, "/"),
	}
}

// Register wires tracking routes onto the provided router. rateLimit is
// applied to the tracking endpoint only.
func (h *TrackHandler) Register(router fiber.Router, rateLimit fiber.Handler) {
	router.Get("/health", h.Health)
	router.Get("/embed/button", h.EmbedButton)
	router.Get("/assets/copy-handler.js", h.CopyHandlerJS)
	if rateLimit != nil {
		router.Post("/track", rateLimit, h.Track)
	} else {
		router.Post("/track", h.Track)
	}
}

// Health reports service liveness and database reachability.
func (h *TrackHandler) Health(c *fiber.Ctx) error {
	status := "ok"
	dbStatus := "ok"

	if h.postgres != nil {
		ctx, cancel := context.WithTimeout(c.Context(), healthTimeout)
		defer cancel()
		if err := h.postgres.Ping(ctx); err != nil {
			h.logger.Error("health: postgres ping failed", zap.Error(err))
			status = "degraded"
			dbStatus = "unreachable"
		}
	}

	return c.JSON(fiber.Map{
		"service":  "copy-button",
		"status":   status,
		"database": dbStatus,
		"time":     time.Now().UTC().Format(time.RFC3339),
	})
}

// EmbedButton handles GET /embed/button. It returns the HTML snippet the
// CMS drops into a rendered page. An empty target selector or a disabled
// deployment yields an empty body.
func (h *TrackHandler) EmbedButton(c *fiber.Ctx) error {
	targetID := c.Query("target_id")
	if targetID == "" || !h.app.Enabled {
		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return c.SendString("")
	}

	token, err := h.tokens.Issue(trackTokenAction)
	if err != nil {
		h.logger.Error("failed to issue tracking token", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to render button",
		})
	}

	html, err := view.RenderCopyButton(view.CopyButtonData{
		TargetID:      targetID,
		Text:          c.Query("text"),
		Icon:          c.Query("icon"),
		ScriptURL:     h.baseURL + "/assets/copy-handler.js",
		TrackURL:      h.baseURL + "/track",
		Token:         token,
		PageURL:       c.Query("page_url"),
		SuccessMS:     h.app.SuccessDuration,
		DisableOnCopy: h.app.DisableOnCopy,
	})
	if err != nil {
		h.logger.Error("failed to render button", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to render button",
		})
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(html)
}

// CopyHandlerJS handles GET /assets/copy-handler.js.
func (h *TrackHandler) CopyHandlerJS(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "application/javascript; charset=utf-8")
	c.Set(fiber.HeaderCacheControl, "public, max-age=3600")
	return c.SendString(view.CopyHandlerJS)
}

// TrackRequest represents the tracking request body sent by the client script.
type TrackRequest struct {
	TargetID string `json:"target_id"`
	PageURL  string `json:"page_url"`
	Token    string `json:"token"`
}

// Track handles POST /track. Token failures are terminal; storage
// failures are logged but never surfaced to the visitor.
func (h *TrackHandler) Track(c *fiber.Ctx) error {
	var req TrackRequest
	if err := c.BodyParser(&req); err != nil {
		prometheus.CopyEventsRejected.WithLabelValues("bad_body").Inc()
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	if err := h.tokens.Validate(trackTokenAction, req.Token); err != nil {
		prometheus.CopyEventsRejected.WithLabelValues("bad_token").Inc()
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "invalid tracking token",
		})
	}

	ctx := c.UserContext()
	if ctx == nil {
		ctx = context.Background()
	}

	agent := c.Get(fiber.HeaderUserAgent)
	input := service.RecordEventInput{
		TargetID:  req.TargetID,
		PageURL:   req.PageURL,
		UserAgent: agent,
		ClientIP:  c.IP(),
		User:      actingUserFromHeaders(c),
	}

	if err := h.tracking.RecordEvent(ctx, input); err != nil {
		h.logger.Error("failed to record copy event",
			zap.Error(err),
			zap.String("target_id", req.TargetID))
	} else {
		prometheus.CopyEventsRecorded.
			WithLabelValues(string(analytics.ClassifyDevice(agent))).Inc()
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// actingUserFromHeaders builds the user identity from the trusted headers
// set by the CMS front. No headers means a guest.
func actingUserFromHeaders(c *fiber.Ctx) *service.ActingUser {
	email := c.Get(headerUserEmail)
	roles := c.Get(headerUserRoles)
	group := c.Get(headerUserGroup)
	if email == "" && roles == "" && group == "" {
		return nil
	}

	user := &service.ActingUser{
		Email: email,
		Group: group,
	}
	for _, role := range strings.Split(roles, ",") {
		if role = strings.TrimSpace(role); role != "" {
			user.Roles = append(user.Roles, role)
		}
	}
	return user
}
