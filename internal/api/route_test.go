package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"Upstat/internal/api/handler"
	"Upstat/internal/job"
	"Upstat/internal/model"
	"Upstat/internal/pkg/cron"
	"Upstat/internal/repository"
	"Upstat/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()
	root := t.TempDir()
	now := func() time.Time { return time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC) }

	seriesRepo := repository.NewSeriesRepo(filepath.Join(root, "A"), time.UTC)
	rosterRepo := repository.NewRosterRepo("", filepath.Join(root, "a.json"), "", now)
	forecastRepo := repository.NewForecastRepo(filepath.Join(root, "P"))

	require.NoError(t, seriesRepo.Save(ctx, 1, []model.SeriesRow{
		{Time: now().Add(-time.Hour), PlayNum: 10, FanNum: 1, ChargeNum: 0},
		{Time: now(), PlayNum: 20, FanNum: 2, ChargeNum: 0},
	}))
	_, err := rosterRepo.Save(ctx, []model.RosterEntry{
		{UID: 1, Face: "f1", ChannelValue: 5},
		{UID: 2, Face: "f2", ChannelValue: 50},
	})
	require.NoError(t, err)
	_, err = forecastRepo.Save(ctx, 1, []model.ForecastPoint{{Time: 1, FanNum: 2, PlayNum: 3, ChannelValue: 4}})
	require.NoError(t, err)

	querySvc := service.NewQueryService(seriesRepo, rosterRepo, forecastRepo)
	pipeline := job.NewPipelineJob(nil, nil, nil, nil)
	cronMgr := cron.NewCronManager("@every 1h", false, pipeline)

	return SetupRouter(&HandlersGroup{
		RosterHandler: handler.NewRosterHandler(querySvc),
		SeriesHandler: handler.NewSeriesHandler(querySvc),
		StatusHandler: handler.NewStatusHandler(cronMgr, pipeline),
	})
}

func get(t *testing.T, r *gin.Engine, path string) envelope {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Trace-ID"))

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestRosterEndpoints(t *testing.T) {
	r := newTestRouter(t)

	env := get(t, r, "/api/roster?limit=1")
	require.Equal(t, 200, env.Code)
	var entries []model.RosterEntry
	require.NoError(t, json.Unmarshal(env.Data, &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, int64(2), entries[0].UID)

	env = get(t, r, "/api/roster/faces")
	require.Equal(t, 200, env.Code)
	var faces []model.FaceEntry
	require.NoError(t, json.Unmarshal(env.Data, &faces))
	assert.Equal(t, []model.FaceEntry{{UID: 1, Face: "f1"}, {UID: 2, Face: "f2"}}, faces)

	env = get(t, r, "/api/roster/1")
	require.Equal(t, 200, env.Code)
	assert.Contains(t, string(env.Data), `"Face":"f1"`)

	env = get(t, r, "/api/roster/3")
	assert.Equal(t, service.NotFound, env.Code)

	env = get(t, r, "/api/roster/abc")
	assert.Equal(t, service.BadRequest, env.Code)

	env = get(t, r, "/api/roster?limit=-1")
	assert.Equal(t, service.BadRequest, env.Code)
}

func TestSeriesAndForecastEndpoints(t *testing.T) {
	r := newTestRouter(t)

	env := get(t, r, "/api/series/1")
	require.Equal(t, 200, env.Code)
	assert.Contains(t, string(env.Data), `"Time":"2024-06-15 12:00:00"`)

	env = get(t, r, "/api/series/9")
	assert.Equal(t, service.NotFound, env.Code)

	env = get(t, r, "/api/forecast/1")
	require.Equal(t, 200, env.Code)
	assert.Contains(t, string(env.Data), `"FanNum":2`)
}

func TestStatusEndpoint(t *testing.T) {
	r := newTestRouter(t)
	env := get(t, r, "/api/status")
	require.Equal(t, 200, env.Code)
	assert.Contains(t, string(env.Data), `"spec":"@every 1h"`)
	assert.Contains(t, string(env.Data), `"runs":0`)
}
