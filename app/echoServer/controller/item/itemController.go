package item

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"shareit/model"
	itemsvc "shareit/service/item"
	"shareit/util/apperr"
)

type Controller struct {
	Svc itemsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /items
// @Summary      List a new item
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        X-Sharer-User-Id  header  int  true  "owner"
// @Param        payload  body  CreateItemReq  true  "Item payload"
// @Success      201  {object}  model.Item
// @Failure      400  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /items [post]
func (h *Controller) Create(c echo.Context) error {
	var req CreateItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	uid, _ := c.Get("user_id").(int64)

	it, err := h.Svc.Create(c.Request().Context(), uid, req.Name, req.Description, *req.Available, req.RequestID)
	if err != nil {
		return h.respondErr(c, err)
	}
	return c.JSON(http.StatusCreated, it)
}

// PATCH /items/:id
func (h *Controller) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req UpdateItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	uid, _ := c.Get("user_id").(int64)

	it, err := h.Svc.Update(c.Request().Context(), uid, id, model.ItemPatch{
		Name:        req.Name,
		Description: req.Description,
		Available:   req.Available,
		RequestID:   req.RequestID,
	})
	if err != nil {
		return h.respondErr(c, err)
	}
	return c.JSON(http.StatusOK, it)
}

// GET /items/:id
func (h *Controller) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	uid, _ := c.Get("user_id").(int64)

	d, err := h.Svc.Get(c.Request().Context(), uid, id)
	if err != nil {
		return h.respondErr(c, err)
	}
	return c.JSON(http.StatusOK, d)
}

// GET /items?from=0&size=10 — the caller's own items with booking info.
func (h *Controller) List(c echo.Context) error {
	q, err := h.pageParams(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	uid, _ := c.Get("user_id").(int64)

	items, err := h.Svc.ListByOwner(c.Request().Context(), uid, q.From, q.Size)
	if err != nil {
		return h.respondErr(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// GET /items/search?text=&from=0&size=10
func (h *Controller) Search(c echo.Context) error {
	q, err := h.pageParams(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	items, err := h.Svc.Search(c.Request().Context(), c.QueryParam("text"), q.From, q.Size)
	if err != nil {
		return h.respondErr(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// POST /items/:id/comment
func (h *Controller) AddComment(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req CreateCommentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	uid, _ := c.Get("user_id").(int64)

	comment, err := h.Svc.AddComment(c.Request().Context(), uid, id, req.Text)
	if err != nil {
		return h.respondErr(c, err)
	}
	return c.JSON(http.StatusCreated, comment)
}

func (h *Controller) pageParams(c echo.Context) (pageQuery, error) {
	q := pageQuery{From: 0, Size: 10}
	if err := c.Bind(&q); err != nil {
		return q, err
	}
	if err := h.V.Struct(q); err != nil {
		return q, err
	}
	return q, nil
}

func (h *Controller) respondErr(c echo.Context, err error) error {
	switch {
	case apperr.IsNotFound(err):
		return c.JSON(http.StatusNotFound, echo.Map{"message": err.Error()})
	case apperr.IsValidation(err):
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	default:
		h.Log.Error("item request failed", "err", err, "path", c.Path(), "req_id", c.Response().Header().Get(echo.HeaderXRequestID))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
}
