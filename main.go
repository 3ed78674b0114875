// Package main shareit API.
//
// @title           ShareIt API
// @version         1.0
// @description     peer-to-peer item sharing: users list items, book them for date ranges and request items they miss.
// @BasePath        /
// @schemes         http
package main

import (
	"context"
	"log/slog"
	"os"

	bookingctrl "shareit/app/echoServer/controller/booking"
	itemctrl "shareit/app/echoServer/controller/item"
	requestctrl "shareit/app/echoServer/controller/request"
	userctrl "shareit/app/echoServer/controller/user"

	"shareit/app/echoServer"
	"shareit/app/echoServer/validation"
	"shareit/config"
	bookingrepo "shareit/repository/booking"
	commentrepo "shareit/repository/comment"
	itemrepo "shareit/repository/item"
	requestrepo "shareit/repository/request"
	userrepo "shareit/repository/user"
	bookingsvc "shareit/service/booking"
	itemsvc "shareit/service/item"
	requestsvc "shareit/service/request"
	usersvc "shareit/service/user"
	"shareit/util/clock"
	"shareit/util/database"
	"shareit/util/logging"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	log := logging.New(cfg.Env)
	slog.SetDefault(log)

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	// repos
	ur := userrepo.New(db)
	ir := itemrepo.New(db)
	br := bookingrepo.New(db)
	rr := requestrepo.New(db)
	cr := commentrepo.New(db)

	// services
	clk := clock.Real()
	us := usersvc.New(ur)
	is := itemsvc.New(ir, ur, br, cr, clk)
	bs := bookingsvc.New(br, ur, ir, clk)
	rs := requestsvc.New(rr, ur, ir, clk)

	// controllers
	v := validator.New()
	userC := &userctrl.Controller{Svc: us, V: v, Log: log}
	itemC := &itemctrl.Controller{Svc: is, V: v, Log: log}
	bookingC := &bookingctrl.Controller{Svc: bs, V: v, Log: log}
	requestC := &requestctrl.Controller{Svc: rs, V: v, Log: log}

	e := echo.New()
	e.HideBanner = true
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		User:    userC,
		Item:    itemC,
		Booking: bookingC,
		Request: requestC,
	})

	log.Info("starting server", "port", cfg.Port, "env", cfg.Env)
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
