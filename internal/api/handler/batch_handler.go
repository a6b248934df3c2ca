package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fincount/counting-api/internal/api/metrics"
	"github.com/fincount/counting-api/internal/core/ports"
)

// BatchHandler handles HTTP requests for batch operations. Every route is
// behind the Auth middleware and scoped to the token's subject.
type BatchHandler struct {
	service ports.BatchService
}

func NewBatchHandler(service ports.BatchService) *BatchHandler {
	return &BatchHandler{service: service}
}

// List handles GET /api/batches.
//
// @Summary      List the current user's batches
// @Tags         batches
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  batchListResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/batches [get]
func (h *BatchHandler) List(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	batches, err := h.service.List(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBatchListResponse(batches))
}

// Create handles POST /api/batches.
//
// @Summary      Create a batch
// @Tags         batches
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createBatchRequest  true  "Batch fields"
// @Success      201   {object}  batchResponse
// @Failure      400   {object}  errorResponse
// @Router       /api/batches [post]
func (h *BatchHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req createBatchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	batch, err := h.service.Create(c.Request().Context(), userID, ports.CreateBatchInput{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return err
	}

	metrics.BatchesCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, toBatchResponse(batch))
}

// Get handles GET /api/batches/:id.
//
// @Summary      Get a batch by id
// @Tags         batches
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Batch id"
// @Success      200  {object}  batchResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/batches/{id} [get]
func (h *BatchHandler) Get(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	batch, err := h.service.Get(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBatchResponse(batch))
}

// Update handles PUT /api/batches/:id. Only fields present in the body are
// applied.
//
// @Summary      Update a batch
// @Tags         batches
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Batch id"
// @Param        body  body      updateBatchRequest  true  "Fields to update"
// @Success      200   {object}  batchResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/batches/{id} [put]
func (h *BatchHandler) Update(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req updateBatchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	batch, err := h.service.Update(c.Request().Context(), userID, c.Param("id"), ports.UpdateBatchInput{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBatchResponse(batch))
}

// Delete handles DELETE /api/batches/:id. Sessions under the batch are
// removed with it.
//
// @Summary      Delete a batch and its sessions
// @Tags         batches
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Batch id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/batches/{id} [delete]
func (h *BatchHandler) Delete(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Batch deleted successfully"})
}
