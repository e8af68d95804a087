package render

import (
	"encoding/json"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type jsonRenderer struct{}

func (jsonRenderer) Render(result *Result) ([]byte, error) {
	data, err := json.MarshalIndent(result, "", "    ")
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal result")
	}
	return data, nil
}

func (jsonRenderer) ContentType() string {
	return echo.MIMEApplicationJSON
}

func (jsonRenderer) Extension() string {
	return "json"
}
