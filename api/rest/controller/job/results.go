package job

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	svc "github.com/matchd-cloud/matchd/api/rest/service/job"
	"github.com/pkg/errors"
)

func (ctrl *Controller) Results(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.ErrBadRequest.SetInternal(err)
	}

	result, err := ctrl.svc.Results(id)
	if err != nil {
		if errors.Is(err, svc.ErrNotFound) || errors.Is(err, svc.ErrNotCompleted) {
			return echo.ErrNotFound.SetInternal(err)
		}

		return echo.ErrInternalServerError.SetInternal(err)
	}

	return c.JSON(http.StatusOK, result)
}
