package booking

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	bookingsvc "shareit/service/booking"
	"shareit/util/apperr"
)

type Controller struct {
	Svc bookingsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /bookings
// @Summary      Book an item for a date range
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        X-Sharer-User-Id  header  int  true  "acting user"
// @Param        payload  body  CreateBookingReq  true  "Booking payload"
// @Success      201  {object}  BookingResp
// @Failure      400  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /bookings [post]
func (h *Controller) Create(c echo.Context) error {
	var req CreateBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	uid, _ := c.Get("user_id").(int64)

	b, err := h.Svc.Create(c.Request().Context(), uid, req.ItemID, req.Start, req.End)
	if err != nil {
		return h.respondErr(c, err)
	}
	return c.JSON(http.StatusCreated, toBookingResp(*b))
}

// PATCH /bookings/:id?approved=true|false
func (h *Controller) UpdateStatus(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	approved, err := strconv.ParseBool(c.QueryParam("approved"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "approved must be true or false"})
	}
	uid, _ := c.Get("user_id").(int64)

	b, err := h.Svc.UpdateStatus(c.Request().Context(), uid, id, approved)
	if err != nil {
		return h.respondErr(c, err)
	}
	return c.JSON(http.StatusOK, toBookingResp(*b))
}

// GET /bookings/:id
func (h *Controller) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	uid, _ := c.Get("user_id").(int64)

	b, err := h.Svc.Get(c.Request().Context(), uid, id)
	if err != nil {
		return h.respondErr(c, err)
	}
	return c.JSON(http.StatusOK, toBookingResp(*b))
}

// GET /bookings?state=ALL&from=0&size=10
func (h *Controller) ListByBooker(c echo.Context) error {
	q, err := h.pageParams(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	uid, _ := c.Get("user_id").(int64)

	bookings, err := h.Svc.ListByBooker(c.Request().Context(), uid, q.State, q.From, q.Size)
	if err != nil {
		return h.respondErr(c, err)
	}
	return c.JSON(http.StatusOK, toBookingResps(bookings))
}

// GET /bookings/owner?state=ALL&from=0&size=10
func (h *Controller) ListByOwner(c echo.Context) error {
	q, err := h.pageParams(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	uid, _ := c.Get("user_id").(int64)

	bookings, err := h.Svc.ListByOwner(c.Request().Context(), uid, q.State, q.From, q.Size)
	if err != nil {
		return h.respondErr(c, err)
	}
	return c.JSON(http.StatusOK, toBookingResps(bookings))
}

func (h *Controller) pageParams(c echo.Context) (pageQuery, error) {
	q := pageQuery{State: "ALL", From: 0, Size: 10}
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
		h.Log.Error("booking request failed", "err", err, "path", c.Path(), "req_id", c.Response().Header().Get(echo.HeaderXRequestID))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
}
