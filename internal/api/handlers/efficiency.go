package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/gridironhq/lineupiq/internal/analytics"
	"github.com/gridironhq/lineupiq/internal/lineup"
	"github.com/gridironhq/lineupiq/pkg/cache"
	"github.com/gridironhq/lineupiq/pkg/config"
)

// ErrorResponse is the standard error payload.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Code    string            `json:"code,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// LineupRequest carries an ad-hoc roster posted directly to the API,
// bypassing the stored weekly lines. An empty roster is legal and yields an
// empty report.
type LineupRequest struct {
	Lines []lineup.PlayerWeekLine `json:"lines"`
}

// EfficiencyHandler serves lineup optimization and manager-efficiency
// endpoints.
type EfficiencyHandler struct {
	season *analytics.Service
	cache  *cache.ReportCacheService
	config *config.Config
	logger *logrus.Logger
}

func NewEfficiencyHandler(
	season *analytics.Service,
	cache *cache.ReportCacheService,
	config *config.Config,
	logger *logrus.Logger,
) *EfficiencyHandler {
	return &EfficiencyHandler{
		season: season,
		cache:  cache,
		config: config,
		logger: logger,
	}
}

// ComputeOptimal handles POST /api/v1/lineup/optimal: the best legal lineup
// for a posted roster.
func (h *EfficiencyHandler) ComputeOptimal(c *gin.Context) {
	var req LineupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid request format",
			Code:  "INVALID_REQUEST",
			Details: map[string]string{
				"validation_error": err.Error(),
			},
		})
		return
	}

	result, err := lineup.ComputeOptimalLineup(req.Lines)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error: "Invalid roster line",
			Code:  "INVALID_ROSTER",
			Details: map[string]string{
				"validation_error": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

// ComputeEfficiency handles POST /api/v1/lineup/efficiency: the full
// efficiency report for a posted roster.
func (h *EfficiencyHandler) ComputeEfficiency(c *gin.Context) {
	var req LineupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid request format",
			Code:  "INVALID_REQUEST",
			Details: map[string]string{
				"validation_error": err.Error(),
			},
		})
		return
	}

	report, err := h.analyze(req.Lines)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error: "Invalid roster line",
			Code:  "INVALID_ROSTER",
			Details: map[string]string{
				"validation_error": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, report)
}

// TeamWeekEfficiency handles GET /api/v1/teams/:team_id/weeks/:week/efficiency
// over the stored roster lines, with a redis-cached result.
func (h *EfficiencyHandler) TeamWeekEfficiency(c *gin.Context) {
	teamID, week, ok := h.teamWeekParams(c)
	if !ok {
		return
	}

	requestID := uuid.New().String()
	log := h.logger.WithFields(logrus.Fields{
		"request_id": requestID,
		"team_id":    teamID,
		"week":       week,
	})

	if cached, err := h.cache.GetReport(c.Request.Context(), teamID, week); err != nil {
		log.WithError(err).Warn("Report cache lookup failed")
	} else if cached != nil {
		log.Debug("Serving cached efficiency report")
		c.JSON(http.StatusOK, cached)
		return
	}

	report, err := h.season.WeekReport(c.Request.Context(), teamID, week)
	if err != nil {
		log.WithError(err).Error("Failed to compute efficiency report")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "Failed to compute efficiency report",
			Code:  "REPORT_ERROR",
			Details: map[string]string{
				"error": err.Error(),
			},
		})
		return
	}

	if err := h.cache.SetReport(c.Request.Context(), teamID, week, report, h.config.ReportCacheTTL); err != nil {
		log.WithError(err).Warn("Failed to cache efficiency report")
	}

	c.JSON(http.StatusOK, report)
}

// SeasonEfficiency handles GET /api/v1/teams/:team_id/efficiency.
func (h *EfficiencyHandler) SeasonEfficiency(c *gin.Context) {
	teamID, err := strconv.Atoi(c.Param("team_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "team_id must be an integer",
			Code:  "INVALID_REQUEST",
		})
		return
	}

	season, err := h.season.SeasonReport(c.Request.Context(), teamID)
	if err != nil {
		h.logger.WithError(err).WithField("team_id", teamID).Error("Failed to compute season report")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "Failed to compute season report",
			Code:  "REPORT_ERROR",
			Details: map[string]string{
				"error": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, season)
}

func (h *EfficiencyHandler) analyze(lines []lineup.PlayerWeekLine) (*lineup.EfficiencyReport, error) {
	optimal, err := lineup.ComputeOptimalLineup(lines)
	if err != nil {
		return nil, err
	}
	return lineup.AnalyzeLineup(lines, optimal)
}

func (h *EfficiencyHandler) teamWeekParams(c *gin.Context) (teamID, week int, ok bool) {
	teamID, err := strconv.Atoi(c.Param("team_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "team_id must be an integer",
			Code:  "INVALID_REQUEST",
		})
		return 0, 0, false
	}
	week, err = strconv.Atoi(c.Param("week"))
	if err != nil || week < 1 || week > 18 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "week must be an integer between 1 and 18",
			Code:  "INVALID_REQUEST",
		})
		return 0, 0, false
	}
	return teamID, week, true
}
