package job

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (ctrl *Controller) List(c echo.Context) error {
	return c.JSON(http.StatusOK, ctrl.svc.List())
}
