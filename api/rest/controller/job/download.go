package job

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	svc "github.com/matchd-cloud/matchd/api/rest/service/job"
	"github.com/matchd-cloud/matchd/internal/render"
	"github.com/pkg/errors"
)

func (ctrl *Controller) Download(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.ErrBadRequest.SetInternal(err)
	}

	data, renderer, err := ctrl.svc.Download(id, c.Param("format"))
	if err != nil {
		switch {
		case errors.Is(err, render.ErrUnsupportedFormat):
			return echo.ErrBadRequest.SetInternal(err)
		case errors.Is(err, svc.ErrNotFound), errors.Is(err, svc.ErrNotCompleted):
			return echo.ErrNotFound.SetInternal(err)
		default:
			return echo.ErrInternalServerError.SetInternal(err)
		}
	}

	filename := fmt.Sprintf("results_%s.%s", id, renderer.Extension())
	c.Response().Header().Set(
		echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", filename),
	)

	return c.Blob(http.StatusOK, renderer.ContentType(), data)
}
