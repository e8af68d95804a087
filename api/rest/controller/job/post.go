package job

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/matchd-cloud/matchd/internal/scheduler"
	"github.com/matchd-cloud/matchd/pkg/log"
	"github.com/pkg/errors"
)

func (ctrl *Controller) Post(c echo.Context) error {
	req := &scheduler.Batch{}

	if err := c.Bind(req); err != nil {
		return err
	}

	j, err := ctrl.svc.Submit(req)
	if err != nil {
		if errors.Is(err, scheduler.ErrEmptyBatch) || errors.Is(err, scheduler.ErrInvalidItem) {
			return echo.ErrBadRequest.SetInternal(err)
		}

		log.Error("failed to submit job", "error", err)
		return echo.ErrInternalServerError.SetInternal(err)
	}

	return c.JSON(http.StatusCreated, j)
}
