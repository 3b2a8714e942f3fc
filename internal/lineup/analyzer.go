package lineup

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
)

// scoreEpsilon absorbs float addition ordering differences when checking
// that the actual score never exceeds the optimal score.
const scoreEpsilon = 1e-9

// AnalyzeLineup scores the manager's actual lineup against the optimal one
// computed from the same roster and reports efficiency, points left on the
// bench, and a ranked list of the concrete substitutions that would have
// scored more.
//
// Mistakes are independent pairwise suggestions evaluated against the
// originally started lineup, not a combined multi-swap plan: a sat player
// eligible for more than one starting slot can appear in several entries,
// and applying them all at once is not guaranteed to be legal.
//
// Both scores derive from the same input set, so ActualScore can never
// legitimately exceed OptimalScore; a violation is an internal-consistency
// fault and is returned as an error rather than clamped to 100%.
func AnalyzeLineup(lines []PlayerWeekLine, optimal *OptimalLineupResult) (*EfficiencyReport, error) {
	if err := ValidateLines(lines); err != nil {
		return nil, err
	}
	if optimal == nil {
		return nil, fmt.Errorf("optimal lineup result is required")
	}

	report := &EfficiencyReport{
		OptimalScore: optimal.OptimalScore,
	}

	for _, line := range lines {
		if line.Slot.IsStarting() {
			report.ActualScore += line.Points()
		}
		if !line.Played() {
			report.DidNotPlay = append(report.DidNotPlay, line)
		}
	}

	if report.ActualScore > report.OptimalScore+scoreEpsilon {
		return nil, fmt.Errorf("inconsistent scores: actual %.2f exceeds optimal %.2f for the same roster",
			report.ActualScore, report.OptimalScore)
	}

	if report.OptimalScore > 0 {
		report.Efficiency = report.ActualScore / report.OptimalScore * 100
	}
	report.PointsLeftOnBench = report.OptimalScore - report.ActualScore
	if report.PointsLeftOnBench < 0 {
		report.PointsLeftOnBench = 0 // only reachable within epsilon of zero
	}

	report.Mistakes = findMistakes(lines, optimal)

	logrus.WithFields(logrus.Fields{
		"component":            "lineup_analyzer",
		"actual_score":         report.ActualScore,
		"optimal_score":        report.OptimalScore,
		"efficiency":           report.Efficiency,
		"points_left_on_bench": report.PointsLeftOnBench,
		"mistakes":             len(report.Mistakes),
	}).Debug("Analyzed lineup")

	return report, nil
}

// findMistakes pairs every sat player the optimizer selected with every
// actual starter they were eligible to replace and outscored. Eligibility
// reconciles the two taxonomies: the sat player's natural position must
// match the starter's fixed slot, or be RB/WR/TE when the starter occupied
// FLEX. The list is sorted by points lost, largest first.
func findMistakes(lines []PlayerWeekLine, optimal *OptimalLineupResult) []Mistake {
	var sat, starters []PlayerWeekLine
	for _, line := range lines {
		if line.Slot.IsStarting() {
			starters = append(starters, line)
		} else if optimal.Contains(line.PlayerID) {
			sat = append(sat, line)
		}
	}

	var mistakes []Mistake
	for _, benched := range sat {
		for _, starter := range starters {
			if !CanFillSlot(benched.Position, starter.Slot) {
				continue
			}
			if benched.Points() <= starter.Points() {
				continue
			}
			mistakes = append(mistakes, Mistake{
				Starter:    starter,
				BenchedFor: benched,
				Slot:       starter.Slot,
				PointsLost: benched.Points() - starter.Points(),
			})
		}
	}

	sort.SliceStable(mistakes, func(i, j int) bool {
		return mistakes[i].PointsLost > mistakes[j].PointsLost
	})

	return mistakes
}
