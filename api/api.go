package api

import (
	"context"
	"fmt"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/matchd-cloud/matchd/api/rest/bind"
	cachectrl "github.com/matchd-cloud/matchd/api/rest/controller/cache"
	eventctrl "github.com/matchd-cloud/matchd/api/rest/controller/event"
	jobctrl "github.com/matchd-cloud/matchd/api/rest/controller/job"
	cachesvc "github.com/matchd-cloud/matchd/api/rest/service/cache"
	jobsvc "github.com/matchd-cloud/matchd/api/rest/service/job"
	rest "github.com/matchd-cloud/matchd/api/rest/v1"
	"github.com/matchd-cloud/matchd/internal/event"
	"github.com/matchd-cloud/matchd/pkg/env"
)

// Dependencies carries the service handles the API binds. They are
// constructed once at startup and passed in explicitly.
type Dependencies struct {
	Jobs  *jobsvc.Service
	Cache *cachesvc.Service
	Bus   event.Bus
}

var e *echo.Echo

// Start launches matchd's API.
func Start(deps Dependencies) error {
	e = echo.New()
	e.HideBanner = true
	e.HidePort = true

	// health
	e.GET("/health", Health)

	// metrics
	e.Use(echoprometheus.NewMiddleware("matchd"))
	e.GET("/metrics", echoprometheus.NewHandler())

	// REST
	rest.Bind(e.Group("/v1"), bind.Controllers{
		Job:   jobctrl.New(deps.Jobs),
		Cache: cachectrl.New(deps.Cache),
		Event: eventctrl.New(deps.Bus),
	})

	return e.Start(fmt.Sprintf(":%v", env.Variables().Port))
}

// Shutdown stops the API listener.
func Shutdown() error {
	if e == nil {
		return nil
	}

	return e.Shutdown(context.Background())
}
