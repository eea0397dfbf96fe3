package joins

import (
	"errors"

	"datajoin/core/join"
	"datajoin/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for joins and join sessions.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, l *zap.Logger) *Handler {
	return &Handler{service: service, logger: l}
}

// RegisterRoutes registers the joins routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/joins")
	group.Post("/", h.HandleJoin)
	group.Post("/sessions", h.HandleCreateSession)
	group.Get("/sessions/:id", h.HandleGetSession)
	group.Delete("/sessions/:id", h.HandleDeleteSession)
	group.Post("/sessions/:id/passes", h.HandleApplyPass)
	group.Post("/sessions/:id/sync", h.HandleSyncSession)
}

// HandleJoin computes a stateless keyed join.
// @Summary Keyed join
// @Description Partition a new collection against an old one into entering, updating, and exiting sets.
// @Tags joins
// @Accept json
// @Produce json
// @Param request body JoinRequest true "Old and new collections plus the key field"
// @Success 200 {object} JoinResponse "Partition"
// @Failure 422 {object} map[string]string "Duplicate key"
// @Router /joins [post]
func (h *Handler) HandleJoin(c *fiber.Ctx) error {
	l := logger.WithRequestID(h.logger, c)

	var req JoinRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}

	resp, err := h.service.Join(req)
	if err != nil {
		return h.joinError(c, l, err)
	}
	return c.JSON(resp)
}

// HandleCreateSession creates a server-held join session.
// @Summary Create session
// @Tags joins
// @Accept json
// @Produce json
// @Param request body CreateSessionRequest true "Session settings"
// @Success 201 {object} SessionInfo "Session"
// @Failure 429 {object} map[string]string "Session limit reached"
// @Router /joins/sessions [post]
func (h *Handler) HandleCreateSession(c *fiber.Ctx) error {
	l := logger.WithRequestID(h.logger, c)

	var req CreateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}

	info, err := h.service.CreateSession(req)
	if err != nil {
		if errors.Is(err, ErrSessionLimit) {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": err.Error()})
		}
		l.Error("Session create failed", zap.Error(err))
		return internalError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(info)
}

// HandleGetSession returns a session's info and bound set.
// @Summary Get session
// @Tags joins
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} SessionInfo "Session"
// @Failure 404 {object} map[string]string "Unknown session"
// @Router /joins/sessions/{id} [get]
func (h *Handler) HandleGetSession(c *fiber.Ctx) error {
	info, err := h.service.GetSession(c.Params("id"))
	if err != nil {
		return h.sessionError(c, err)
	}
	return c.JSON(info)
}

// HandleDeleteSession disposes a session.
// @Summary Delete session
// @Tags joins
// @Produce json
// @Param id path string true "Session ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Unknown session"
// @Router /joins/sessions/{id} [delete]
func (h *Handler) HandleDeleteSession(c *fiber.Ctx) error {
	if err := h.service.DeleteSession(c.Params("id")); err != nil {
		return h.sessionError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleApplyPass applies a pushed snapshot to a session.
// @Summary Apply pass
// @Description Join a pushed snapshot against the session's bound set.
// @Tags joins
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body PassRequest true "New snapshot"
// @Success 200 {object} PassResponse "Pass outcome"
// @Failure 404 {object} map[string]string "Unknown session"
// @Failure 422 {object} map[string]string "Duplicate key"
// @Router /joins/sessions/{id}/passes [post]
func (h *Handler) HandleApplyPass(c *fiber.Ctx) error {
	l := logger.WithRequestID(h.logger, c)

	var req PassRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}

	resp, err := h.service.ApplyPass(c.Params("id"), req.Data)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return h.sessionError(c, err)
		}
		return h.joinError(c, l, err)
	}
	return c.JSON(resp)
}

// HandleSyncSession pulls a snapshot from the configured source and
// applies it to the session.
// @Summary Sync session
// @Tags joins
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} PassResponse "Pass outcome"
// @Failure 404 {object} map[string]string "Unknown session"
// @Failure 409 {object} map[string]string "Push-mode session"
// @Router /joins/sessions/{id}/sync [post]
func (h *Handler) HandleSyncSession(c *fiber.Ctx) error {
	l := logger.WithRequestID(h.logger, c)

	resp, err := h.service.SyncSession(c.Context(), c.Params("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrSessionNotFound):
			return h.sessionError(c, err)
		case errors.Is(err, ErrPushSession):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		default:
			return h.joinError(c, l, err)
		}
	}
	return c.JSON(resp)
}

// joinError maps join failures: duplicate keys are the caller's data
// problem (422), everything else is server-side.
func (h *Handler) joinError(c *fiber.Ctx, l *zap.Logger, err error) error {
	var dup *join.DuplicateKeyError[string]
	if errors.As(err, &dup) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":     dup.Error(),
			"key":       dup.Key,
			"positions": []int{dup.First, dup.Second},
			"in":        string(dup.In),
		})
	}
	l.Error("Join failed", zap.Error(err))
	return internalError(c, err)
}

func (h *Handler) sessionError(c *fiber.Ctx, err error) error {
	if errors.Is(err, ErrSessionNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	return internalError(c, err)
}

func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
}

func internalError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
