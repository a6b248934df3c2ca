package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fincount/counting-api/internal/api/metrics"
	"github.com/fincount/counting-api/internal/core/ports"
)

// SessionHandler handles HTTP requests for counting sessions. List and
// Create are unauthenticated: the mobile client syncs offline-collected
// counts without a token.
type SessionHandler struct {
	service ports.SessionService
}

func NewSessionHandler(service ports.SessionService) *SessionHandler {
	return &SessionHandler{service: service}
}

// List handles GET /api/sessions — all sessions system-wide.
//
// @Summary      List all counting sessions
// @Tags         sessions
// @Produce      json
// @Success      200  {object}  sessionListResponse
// @Router       /api/sessions [get]
func (h *SessionHandler) List(c echo.Context) error {
	list, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSessionListResponse(list))
}

// Create handles POST /api/sessions — ingests one counting session,
// auto-creating the parent batch when needed. An optional Idempotency-Key
// header makes retries safe for the offline-first client.
//
// @Summary      Ingest a counting session
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header    string                false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      createSessionRequest  true   "Session fields"
// @Success      201              {object}  sessionCreateResponse
// @Failure      400              {object}  errorResponse
// @Failure      404              {object}  errorResponse
// @Router       /api/sessions [post]
func (h *SessionHandler) Create(c echo.Context) error {
	var req createSessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	idempotencyKey := c.Request().Header.Get("Idempotency-Key")

	session, err := h.service.Create(c.Request().Context(), toCreateSessionInput(req, idempotencyKey))
	if err != nil {
		return err
	}

	metrics.SessionsCreatedTotal.WithLabelValues(string(session.Species)).Inc()
	return c.JSON(http.StatusCreated, sessionCreateResponse{
		Success: true,
		Data:    toSessionResponse(session),
		Message: "Session created successfully",
	})
}

// GetByBatch handles GET /api/sessions/batch/:batchId.
//
// @Summary      List sessions under a batch
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Param        batchId  path   string  true  "Batch id"
// @Success      200  {array}   sessionResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/sessions/batch/{batchId} [get]
func (h *SessionHandler) GetByBatch(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	sessions, err := h.service.GetByBatch(c.Request().Context(), userID, c.Param("batchId"))
	if err != nil {
		return err
	}

	items := make([]sessionResponse, len(sessions))
	for i, s := range sessions {
		items[i] = toSessionResponse(s)
	}
	return c.JSON(http.StatusOK, items)
}

// Update handles PUT /api/sessions/:id. Only fields present in the body
// are applied.
//
// @Summary      Update a session
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Session id"
// @Param        body  body      updateSessionRequest  true  "Fields to update"
// @Success      200   {object}  sessionResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/sessions/{id} [put]
func (h *SessionHandler) Update(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req updateSessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	session, err := h.service.Update(c.Request().Context(), userID, c.Param("id"), toUpdateSessionInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSessionResponse(session))
}

// Delete handles DELETE /api/sessions/:id.
//
// @Summary      Delete a session
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Session id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/sessions/{id} [delete]
func (h *SessionHandler) Delete(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Session deleted successfully"})
}
