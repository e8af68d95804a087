package bind

import (
	"github.com/labstack/echo/v4"
	cachectrl "github.com/matchd-cloud/matchd/api/rest/controller/cache"
	eventctrl "github.com/matchd-cloud/matchd/api/rest/controller/event"
	jobctrl "github.com/matchd-cloud/matchd/api/rest/controller/job"
)

// Controllers groups everything the REST surface binds.
type Controllers struct {
	Job   *jobctrl.Controller
	Cache *cachectrl.Controller
	Event *eventctrl.Controller
}

func All(g *echo.Group, ctrl Controllers) {
	// jobs
	{
		g.GET("/jobs", ctrl.Job.List)
		g.POST("/jobs", ctrl.Job.Post)
		g.GET("/jobs/:id", ctrl.Job.Get)
		g.GET("/jobs/:id/details", ctrl.Job.Details)
		g.GET("/jobs/:id/results", ctrl.Job.Results)
		g.GET("/jobs/:id/download/:format", ctrl.Job.Download)
		g.DELETE("/jobs/:id", ctrl.Job.Delete)
	}

	// cache
	{
		g.POST("/cache/clear", ctrl.Cache.Clear)
		g.GET("/cache/stats", ctrl.Cache.Stats)
	}

	// events
	{
		g.GET("/events", ctrl.Event.Stream)
	}
}
