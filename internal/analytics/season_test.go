package analytics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridironhq/lineupiq/internal/lineup"
)

type fakeStore struct {
	lines map[int][]lineup.PlayerWeekLine
}

func (f *fakeStore) TeamWeek(_ context.Context, _, week int) ([]lineup.PlayerWeekLine, error) {
	return f.lines[week], nil
}

func (f *fakeStore) SeasonWeeks(_ context.Context, _ int) ([]int, error) {
	weeks := make([]int, 0, len(f.lines))
	for w := 1; w <= 18; w++ {
		if _, ok := f.lines[w]; ok {
			weeks = append(weeks, w)
		}
	}
	return weeks, nil
}

func pts(v float64) *float64 { return &v }

// weekLines builds a roster where QB and the two RB slots are set correctly
// and the FLEX starter and a bench RB vary by week.
func weekLines(flexPts, benchPts float64) []lineup.PlayerWeekLine {
	return []lineup.PlayerWeekLine{
		{PlayerID: 1, Name: "QB", Slot: lineup.SlotQB, Position: lineup.PositionQB, PointsActual: pts(20)},
		{PlayerID: 2, Name: "RB A", Slot: lineup.SlotRB, Position: lineup.PositionRB, PointsActual: pts(15)},
		{PlayerID: 3, Name: "RB B", Slot: lineup.SlotRB, Position: lineup.PositionRB, PointsActual: pts(10)},
		{PlayerID: 4, Name: "Flex RB", Slot: lineup.SlotFlex, Position: lineup.PositionRB, PointsActual: pts(flexPts)},
		{PlayerID: 5, Name: "Bench RB", Slot: lineup.SlotBench, Position: lineup.PositionRB, PointsActual: pts(benchPts)},
	}
}

func TestSeasonReport(t *testing.T) {
	store := &fakeStore{lines: map[int][]lineup.PlayerWeekLine{
		1: weekLines(8, 2),   // bench RB is worst on the roster: perfect week
		2: weekLines(13, 12), // bench RB outscored the second started RB
		3: nil,               // nothing played
	}}

	svc := NewService(store)
	season, err := svc.SeasonReport(context.Background(), 7)
	require.NoError(t, err)

	require.Len(t, season.Weeks, 3)
	assert.Equal(t, 7, season.TeamID)

	// Week 1: actual lineup is already the optimal one.
	assert.InDelta(t, 100.0, season.Weeks[0].Efficiency, 1e-9)
	assert.Zero(t, season.Weeks[0].MistakeCount)
	assert.Zero(t, season.Weeks[0].PointsLeftOnBench)

	// Week 2: the 12-point bench RB belongs in the lineup ahead of RB B.
	// Actual 58 vs optimal 60.
	assert.InDelta(t, 58.0, season.Weeks[1].ActualScore, 1e-9)
	assert.InDelta(t, 60.0, season.Weeks[1].OptimalScore, 1e-9)
	assert.Equal(t, 1, season.Weeks[1].MistakeCount)
	assert.InDelta(t, 2.0, season.Weeks[1].PointsLeftOnBench, 1e-9)

	// Week 3 has no optimal score and must not drag the mean down.
	assert.Zero(t, season.Weeks[2].OptimalScore)
	assert.Greater(t, season.MeanEfficiency, season.Weeks[1].Efficiency)
	assert.Less(t, season.MeanEfficiency, 100.0)
	assert.Greater(t, season.EfficiencyStdDev, 0.0)

	assert.Equal(t, 1, season.BestWeek)
	assert.Equal(t, 2, season.WorstWeek)
	assert.Equal(t, 1, season.TotalMistakes)
	assert.InDelta(t, 2.0, season.TotalPointsLeftOnBench, 1e-9)
}

func TestSeasonReport_NoWeeks(t *testing.T) {
	svc := NewService(&fakeStore{lines: map[int][]lineup.PlayerWeekLine{}})
	season, err := svc.SeasonReport(context.Background(), 7)
	assert.Error(t, err)
	assert.Nil(t, season)
}

func TestWeekReport(t *testing.T) {
	store := &fakeStore{lines: map[int][]lineup.PlayerWeekLine{
		5: weekLines(13, 12),
	}}

	svc := NewService(store)
	report, err := svc.WeekReport(context.Background(), 7, 5)
	require.NoError(t, err)

	assert.InDelta(t, 58.0, report.ActualScore, 1e-9)
	assert.InDelta(t, 60.0, report.OptimalScore, 1e-9)
	require.Len(t, report.Mistakes, 1)
	assert.Equal(t, "Bench RB", report.Mistakes[0].BenchedFor.Name)
	assert.Equal(t, "RB B", report.Mistakes[0].Starter.Name)
	assert.InDelta(t, 2.0, report.Mistakes[0].PointsLost, 1e-9)
}
