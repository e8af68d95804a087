package job

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	svc "github.com/matchd-cloud/matchd/api/rest/service/job"
	"github.com/matchd-cloud/matchd/internal/cache"
	"github.com/matchd-cloud/matchd/internal/executor"
	"github.com/matchd-cloud/matchd/internal/match"
	"github.com/matchd-cloud/matchd/internal/registry"
	"github.com/matchd-cloud/matchd/internal/scheduler"
	"github.com/matchd-cloud/matchd/internal/worker"
	"github.com/stretchr/testify/require"
)

func newController() (*Controller, *svc.Service) {
	reg := registry.New()

	computer := match.ComputerFunc(func(_ context.Context, primaryID int64, subIDs []string) (*match.Record, error) {
		return &match.Record{
			PrimaryID: primaryID,
			Matches:   []match.Match{{QueryID: subIDs[0], MatchID: "M", Score: 0.8}},
		}, nil
	})

	exec := executor.New(reg, cache.New(), computer)
	sched := scheduler.New(context.Background(), reg, worker.NewPool(2), exec)
	service := svc.New(sched, reg)

	return New(service), service
}

func jsonRequest(method, target, body string) (*http.Request, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	return req, httptest.NewRecorder()
}

func completedJob(t *testing.T, service *svc.Service) uuid.UUID {
	t.Helper()

	created, err := service.Submit(&scheduler.Batch{
		Items: []scheduler.Item{{PrimaryID: 1, SubIDs: []string{"A"}}},
	})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		j, err := service.Status(created.ID)
		return err == nil && j.Status == registry.StatusCompleted
	}, 5*time.Second, 5*time.Millisecond)

	return created.ID
}

func TestPostCreatesJob(t *testing.T) {
	ctrl, _ := newController()
	e := echo.New()

	req, rec := jsonRequest(http.MethodPost, "/v1/jobs",
		`{"items": [{"primary_id": 1, "sub_ids": ["A", "B"]}], "refresh": false}`)

	require.NoError(t, ctrl.Post(e.NewContext(req, rec)))
	require.Equal(t, http.StatusCreated, rec.Code)

	var job registry.Job
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &job))
	require.NotEqual(t, uuid.Nil, job.ID)
	require.Equal(t, registry.StatusPending, job.Status)
}

func TestPostEmptyBatchIsBadRequest(t *testing.T) {
	ctrl, _ := newController()
	e := echo.New()

	req, rec := jsonRequest(http.MethodPost, "/v1/jobs", `{"items": []}`)

	err := ctrl.Post(e.NewContext(req, rec))
	require.Error(t, err)

	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestGetUnknownJobIsNotFound(t *testing.T) {
	ctrl, _ := newController()
	e := echo.New()

	req, rec := jsonRequest(http.MethodGet, "/", "")
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(uuid.NewString())

	err := ctrl.Get(c)
	require.ErrorIs(t, err, echo.ErrNotFound)
}

func TestDownloadUnsupportedFormatIsBadRequest(t *testing.T) {
	ctrl, service := newController()
	e := echo.New()

	id := completedJob(t, service)

	req, rec := jsonRequest(http.MethodGet, "/", "")
	c := e.NewContext(req, rec)
	c.SetParamNames("id", "format")
	c.SetParamValues(id.String(), "csv")

	err := ctrl.Download(c)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestDownloadJSONSetsAttachment(t *testing.T) {
	ctrl, service := newController()
	e := echo.New()

	id := completedJob(t, service)

	req, rec := jsonRequest(http.MethodGet, "/", "")
	c := e.NewContext(req, rec)
	c.SetParamNames("id", "format")
	c.SetParamValues(id.String(), "json")

	require.NoError(t, ctrl.Download(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "results_"+id.String()+".json")
	require.NotEmpty(t, rec.Body.Bytes())
}

func TestDeleteLifecycle(t *testing.T) {
	ctrl, service := newController()
	e := echo.New()

	id := completedJob(t, service)

	req, rec := jsonRequest(http.MethodDelete, "/", "")
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	require.NoError(t, ctrl.Delete(c))
	require.Equal(t, http.StatusAccepted, rec.Code)

	req, rec = jsonRequest(http.MethodDelete, "/", "")
	c = e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	require.ErrorIs(t, ctrl.Delete(c), echo.ErrNotFound)
}
