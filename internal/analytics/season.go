// Package analytics aggregates weekly efficiency reports into season-level
// manager metrics.
package analytics

import (
	"context"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"

	"github.com/gridironhq/lineupiq/internal/lineup"
)

// LineStore supplies persisted roster lines. Satisfied by
// storage.Repository.
type LineStore interface {
	TeamWeek(ctx context.Context, teamID, week int) ([]lineup.PlayerWeekLine, error)
	SeasonWeeks(ctx context.Context, teamID int) ([]int, error)
}

// WeekEfficiency is one week's entry in the season series.
type WeekEfficiency struct {
	Week              int     `json:"week"`
	ActualScore       float64 `json:"actual_score"`
	OptimalScore      float64 `json:"optimal_score"`
	Efficiency        float64 `json:"efficiency"`
	PointsLeftOnBench float64 `json:"points_left_on_bench"`
	MistakeCount      int     `json:"mistake_count"`
}

// SeasonReport summarizes a manager's lineup-setting quality across every
// stored week.
type SeasonReport struct {
	TeamID                 int              `json:"team_id"`
	Weeks                  []WeekEfficiency `json:"weeks"`
	MeanEfficiency         float64          `json:"mean_efficiency"`
	EfficiencyStdDev       float64          `json:"efficiency_std_dev"`
	TotalPointsLeftOnBench float64          `json:"total_points_left_on_bench"`
	TotalMistakes          int              `json:"total_mistakes"`
	BestWeek               int              `json:"best_week"`
	WorstWeek              int              `json:"worst_week"`
}

// Service computes season reports from stored lines.
type Service struct {
	store  LineStore
	logger *logrus.Entry
}

func NewService(store LineStore) *Service {
	return &Service{
		store:  store,
		logger: logrus.WithField("component", "season_analytics"),
	}
}

// WeekReport runs the engine for a single stored team-week.
func (s *Service) WeekReport(ctx context.Context, teamID, week int) (*lineup.EfficiencyReport, error) {
	lines, err := s.store.TeamWeek(ctx, teamID, week)
	if err != nil {
		return nil, err
	}
	optimal, err := lineup.ComputeOptimalLineup(lines)
	if err != nil {
		return nil, fmt.Errorf("team %d week %d: %w", teamID, week, err)
	}
	report, err := lineup.AnalyzeLineup(lines, optimal)
	if err != nil {
		return nil, fmt.Errorf("team %d week %d: %w", teamID, week, err)
	}
	return report, nil
}

// SeasonReport analyzes every stored week for a team. Weeks where the
// optimal score is zero (nothing played) are kept in the series but excluded
// from the mean and spread, which would otherwise be dragged down by bye-
// heavy weeks with no signal about the manager.
func (s *Service) SeasonReport(ctx context.Context, teamID int) (*SeasonReport, error) {
	weeks, err := s.store.SeasonWeeks(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if len(weeks) == 0 {
		return nil, fmt.Errorf("no stored weeks for team %d", teamID)
	}

	season := &SeasonReport{TeamID: teamID}
	var efficiencies []float64
	bestEff, worstEff := math.Inf(-1), math.Inf(1)

	for _, week := range weeks {
		report, err := s.WeekReport(ctx, teamID, week)
		if err != nil {
			return nil, err
		}

		entry := WeekEfficiency{
			Week:              week,
			ActualScore:       report.ActualScore,
			OptimalScore:      report.OptimalScore,
			Efficiency:        report.Efficiency,
			PointsLeftOnBench: report.PointsLeftOnBench,
			MistakeCount:      len(report.Mistakes),
		}
		season.Weeks = append(season.Weeks, entry)
		season.TotalPointsLeftOnBench += report.PointsLeftOnBench
		season.TotalMistakes += len(report.Mistakes)

		if report.OptimalScore > 0 {
			efficiencies = append(efficiencies, report.Efficiency)
			if report.Efficiency > bestEff {
				bestEff = report.Efficiency
				season.BestWeek = week
			}
			if report.Efficiency < worstEff {
				worstEff = report.Efficiency
				season.WorstWeek = week
			}
		}
	}

	if len(efficiencies) > 0 {
		season.MeanEfficiency = stat.Mean(efficiencies, nil)
	}
	if len(efficiencies) > 1 {
		season.EfficiencyStdDev = stat.StdDev(efficiencies, nil)
	}

	s.logger.WithFields(logrus.Fields{
		"team_id":         teamID,
		"weeks":           len(season.Weeks),
		"mean_efficiency": season.MeanEfficiency,
		"total_mistakes":  season.TotalMistakes,
	}).Debug("Computed season report")

	return season, nil
}
