package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridironhq/lineupiq/internal/lineup"
	"github.com/gridironhq/lineupiq/pkg/config"
)

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	cfg := &config.Config{Env: "test", ReportCacheTTL: time.Hour}
	h := NewEfficiencyHandler(nil, nil, cfg, log)

	router := gin.New()
	router.POST("/api/v1/lineup/optimal", h.ComputeOptimal)
	router.POST("/api/v1/lineup/efficiency", h.ComputeEfficiency)
	return router
}

func pts(v float64) *float64 { return &v }

func postJSON(t *testing.T, router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestComputeOptimal(t *testing.T) {
	router := testRouter()

	body := LineupRequest{Lines: []lineup.PlayerWeekLine{
		{PlayerID: 1, Name: "RB A", Slot: lineup.SlotRB, Position: lineup.PositionRB, PointsActual: pts(20)},
		{PlayerID: 2, Name: "RB B", Slot: lineup.SlotBench, Position: lineup.PositionRB, PointsActual: pts(15)},
	}}

	w := postJSON(t, router, "/api/v1/lineup/optimal", body)
	require.Equal(t, http.StatusOK, w.Code)

	var result lineup.OptimalLineupResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.InDelta(t, 35.0, result.OptimalScore, 1e-9)
	assert.Len(t, result.Assignments, 2)
}

func TestComputeOptimal_InvalidRoster(t *testing.T) {
	router := testRouter()

	body := LineupRequest{Lines: []lineup.PlayerWeekLine{
		{PlayerID: 1, Name: "Mystery", Slot: lineup.SlotBench, Position: "LB", PointsActual: pts(5)},
	}}

	w := postJSON(t, router, "/api/v1/lineup/optimal", body)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_ROSTER", resp.Code)
	assert.Contains(t, resp.Details["validation_error"], "unknown position")
}

func TestComputeOptimal_MalformedJSON(t *testing.T) {
	router := testRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/lineup/optimal", bytes.NewReader([]byte("{")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_REQUEST", resp.Code)
}

func TestComputeEfficiency(t *testing.T) {
	router := testRouter()

	body := LineupRequest{Lines: []lineup.PlayerWeekLine{
		{PlayerID: 1, Name: "QB", Slot: lineup.SlotQB, Position: lineup.PositionQB, PointsActual: pts(20)},
		{PlayerID: 2, Name: "RB Start", Slot: lineup.SlotRB, Position: lineup.PositionRB, PointsActual: pts(4)},
		{PlayerID: 3, Name: "RB Bench", Slot: lineup.SlotBench, Position: lineup.PositionRB, PointsActual: pts(11)},
	}}

	w := postJSON(t, router, "/api/v1/lineup/efficiency", body)
	require.Equal(t, http.StatusOK, w.Code)

	var report lineup.EfficiencyReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.InDelta(t, 24.0, report.ActualScore, 1e-9)
	assert.InDelta(t, 35.0, report.OptimalScore, 1e-9)
	require.Len(t, report.Mistakes, 1)
	assert.InDelta(t, 7.0, report.Mistakes[0].PointsLost, 1e-9)
	assert.GreaterOrEqual(t, report.PointsLeftOnBench, 0.0)
}

func TestComputeEfficiency_EmptyRoster(t *testing.T) {
	router := testRouter()

	w := postJSON(t, router, "/api/v1/lineup/efficiency", LineupRequest{Lines: []lineup.PlayerWeekLine{}})
	require.Equal(t, http.StatusOK, w.Code)

	var report lineup.EfficiencyReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Zero(t, report.OptimalScore)
	assert.Zero(t, report.Efficiency)
}
