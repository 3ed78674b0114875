package echoServer

import (
	"github.com/labstack/echo/v4"

	bookingctrl "shareit/app/echoServer/controller/booking"
	itemctrl "shareit/app/echoServer/controller/item"
	requestctrl "shareit/app/echoServer/controller/request"
	userctrl "shareit/app/echoServer/controller/user"
)

type C struct {
	User    *userctrl.Controller
	Item    *itemctrl.Controller
	Booking *bookingctrl.Controller
	Request *requestctrl.Controller
}

func Register(e *echo.Echo, c C) {
	// User admin endpoints work without the sharer header.
	e.POST("/users", c.User.Create)
	e.GET("/users", c.User.List)
	e.GET("/users/:id", c.User.Get)
	e.PATCH("/users/:id", c.User.Update)
	e.DELETE("/users/:id", c.User.Delete)

	// Everything else acts on behalf of the user in X-Sharer-User-Id.
	items := e.Group("/items", SharerID())
	items.POST("", c.Item.Create)
	items.GET("", c.Item.List)
	items.GET("/search", c.Item.Search)
	items.GET("/:id", c.Item.Get)
	items.PATCH("/:id", c.Item.Update)
	items.POST("/:id/comment", c.Item.AddComment)

	bookings := e.Group("/bookings", SharerID())
	bookings.POST("", c.Booking.Create)
	bookings.GET("", c.Booking.ListByBooker)
	bookings.GET("/owner", c.Booking.ListByOwner)
	bookings.GET("/:id", c.Booking.Get)
	bookings.PATCH("/:id", c.Booking.UpdateStatus)

	requests := e.Group("/requests", SharerID())
	requests.POST("", c.Request.Create)
	requests.GET("", c.Request.ListOwn)
	requests.GET("/all", c.Request.ListOthers)
	requests.GET("/:id", c.Request.Get)
}
