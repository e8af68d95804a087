package rest

import (
	"github.com/labstack/echo/v4"
	"github.com/matchd-cloud/matchd/api/rest/bind"
)

// Bind the REST endpoints to the versioned endpoint group.
func Bind(group *echo.Group, ctrl bind.Controllers) {
	bind.All(group, ctrl)
}
