package request

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	requestsvc "shareit/service/request"
	"shareit/util/apperr"
)

type Controller struct {
	Svc requestsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /requests
// @Summary      Post a request for a missing item
// @Tags         requests
// @Accept       json
// @Produce      json
// @Param        X-Sharer-User-Id  header  int  true  "requestor"
// @Param        payload  body  CreateRequestReq  true  "Request payload"
// @Success      201  {object}  model.ItemRequest
// @Failure      400  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /requests [post]
func (h *Controller) Create(c echo.Context) error {
	var req CreateRequestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	uid, _ := c.Get("user_id").(int64)

	out, err := h.Svc.Create(c.Request().Context(), uid, req.Description)
	if err != nil {
		return h.respondErr(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

// GET /requests — the caller's own requests, newest first.
func (h *Controller) ListOwn(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)

	out, err := h.Svc.ListOwn(c.Request().Context(), uid)
	if err != nil {
		return h.respondErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// GET /requests/all?from=0&size=10 — everyone else's requests.
func (h *Controller) ListOthers(c echo.Context) error {
	q := pageQuery{From: 0, Size: 10}
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid paging"})
	}
	if err := h.V.Struct(q); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	uid, _ := c.Get("user_id").(int64)

	out, err := h.Svc.ListOthers(c.Request().Context(), uid, q.From, q.Size)
	if err != nil {
		return h.respondErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// GET /requests/:id
func (h *Controller) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	uid, _ := c.Get("user_id").(int64)

	out, err := h.Svc.Get(c.Request().Context(), uid, id)
	if err != nil {
		return h.respondErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Controller) respondErr(c echo.Context, err error) error {
	switch {
	case apperr.IsNotFound(err):
		return c.JSON(http.StatusNotFound, echo.Map{"message": err.Error()})
	case apperr.IsValidation(err):
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	default:
		h.Log.Error("request op failed", "err", err, "path", c.Path(), "req_id", c.Response().Header().Get(echo.HeaderXRequestID))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
}
