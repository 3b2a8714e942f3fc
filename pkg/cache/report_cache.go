package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/gridironhq/lineupiq/internal/lineup"
)

// ReportCacheService caches computed efficiency reports so repeated
// dashboard loads for the same team-week skip the database round trip.
type ReportCacheService struct {
	client *redis.Client
	logger *logrus.Logger
}

func NewReportCacheService(client *redis.Client, logger *logrus.Logger) *ReportCacheService {
	return &ReportCacheService{
		client: client,
		logger: logger,
	}
}

func reportKey(teamID, week int) string {
	return fmt.Sprintf("efficiency:team:%d:week:%d", teamID, week)
}

// SetReport stores an efficiency report for a team-week.
func (c *ReportCacheService) SetReport(ctx context.Context, teamID, week int, report *lineup.EfficiencyReport, expiration time.Duration) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal efficiency report: %w", err)
	}

	key := reportKey(teamID, week)
	if err := c.client.Set(ctx, key, data, expiration).Err(); err != nil {
		return fmt.Errorf("failed to cache efficiency report: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"cache_key":  key,
		"expiration": expiration,
	}).Debug("Cached efficiency report")

	return nil
}

// GetReport retrieves a cached efficiency report. A miss returns
// (nil, nil).
func (c *ReportCacheService) GetReport(ctx context.Context, teamID, week int) (*lineup.EfficiencyReport, error) {
	key := reportKey(teamID, week)
	data, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read efficiency report from cache: %w", err)
	}

	var report lineup.EfficiencyReport
	if err := json.Unmarshal([]byte(data), &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached efficiency report: %w", err)
	}

	c.logger.WithField("cache_key", key).Debug("Efficiency report cache hit")

	return &report, nil
}

// InvalidateTeamWeek drops the cached report for a team-week, called after
// a sync rewrites the underlying lines.
func (c *ReportCacheService) InvalidateTeamWeek(ctx context.Context, teamID, week int) error {
	if err := c.client.Del(ctx, reportKey(teamID, week)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cached report: %w", err)
	}
	return nil
}
