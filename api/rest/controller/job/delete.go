package job

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	svc "github.com/matchd-cloud/matchd/api/rest/service/job"
	"github.com/pkg/errors"
)

func (ctrl *Controller) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.ErrBadRequest.SetInternal(err)
	}

	if err := ctrl.svc.Delete(id); err != nil {
		if errors.Is(err, svc.ErrNotFound) {
			return echo.ErrNotFound
		}

		return echo.ErrInternalServerError.SetInternal(err)
	}

	return c.NoContent(http.StatusAccepted)
}
