package cache

import (
	"net/http"

	"github.com/labstack/echo/v4"
	svc "github.com/matchd-cloud/matchd/api/rest/service/cache"
)

// Controller binds the cache maintenance endpoints.
type Controller struct {
	svc *svc.Service
}

func New(service *svc.Service) *Controller {
	return &Controller{svc: service}
}

func (ctrl *Controller) Clear(c echo.Context) error {
	return c.JSON(http.StatusOK, ctrl.svc.Clear())
}

func (ctrl *Controller) Stats(c echo.Context) error {
	return c.JSON(http.StatusOK, ctrl.svc.Stats())
}
