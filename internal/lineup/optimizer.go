package lineup

import (
	"sort"

	"github.com/sirupsen/logrus"
)

// ComputeOptimalLineup selects the highest-scoring legal lineup obtainable
// from a team's full set of weekly roster lines. Every line is a candidate
// regardless of where the manager actually started the player: the question
// answered is "what is the best lineup that could have been set," not "what
// was set."
//
// The selection is exact, not heuristic. Each single-eligibility slot (QB,
// K, DST) takes the best player of its position. The fixed RB/WR/TE quotas
// take the top players of each position, and FLEX takes the best remaining
// candidate across RB, WR and TE. Because FLEX is the only slot shared
// between position pools and the fixed quotas are locally maximal, no
// exchange between a fixed slot and FLEX can improve the total.
//
// Ties are broken deterministically: a player who recorded a stat line wins
// over one who did not, and otherwise the first-seen line in the input wins.
//
// An empty roster yields an empty result with score zero. The only error is
// a validation failure on malformed input.
func ComputeOptimalLineup(lines []PlayerWeekLine) (*OptimalLineupResult, error) {
	if err := ValidateLines(lines); err != nil {
		return nil, err
	}

	byPosition := partitionByPosition(lines)

	ordinal := make(map[int]int, len(lines))
	for i, line := range lines {
		if _, seen := ordinal[line.PlayerID]; !seen {
			ordinal[line.PlayerID] = i
		}
	}

	result := &OptimalLineupResult{}
	used := make(map[int]bool)

	for _, slot := range LegalLineup() {
		if slot.Slot == SlotFlex {
			continue // filled after the fixed quotas
		}
		pool := byPosition[slot.Eligible[0]]
		taken := 0
		for _, line := range pool {
			if taken == slot.Count {
				break
			}
			result.Assignments = append(result.Assignments, SlotAssignment{Slot: slot.Slot, Line: line})
			result.OptimalScore += line.Points()
			used[line.PlayerID] = true
			taken++
		}
		// An unfilled quota is left empty; it is never backfilled from
		// another position's pool.
	}

	if flex, ok := bestFlexCandidate(byPosition, used, ordinal); ok {
		result.Assignments = append(result.Assignments, SlotAssignment{Slot: SlotFlex, Line: flex})
		result.OptimalScore += flex.Points()
	}

	logrus.WithFields(logrus.Fields{
		"component":     "lineup_optimizer",
		"roster_size":   len(lines),
		"slots_filled":  len(result.Assignments),
		"optimal_score": result.OptimalScore,
	}).Debug("Computed optimal lineup")

	return result, nil
}

// partitionByPosition groups lines by natural position, each group stably
// sorted by points descending so that equal scores keep input order. Within
// a tie a recorded stat line outranks a did-not-play line.
func partitionByPosition(lines []PlayerWeekLine) map[Position][]PlayerWeekLine {
	byPosition := make(map[Position][]PlayerWeekLine)
	for _, line := range lines {
		byPosition[line.Position] = append(byPosition[line.Position], line)
	}
	for pos := range byPosition {
		pool := byPosition[pos]
		sort.SliceStable(pool, func(i, j int) bool {
			if pool[i].Points() != pool[j].Points() {
				return pool[i].Points() > pool[j].Points()
			}
			return pool[i].Played() && !pool[j].Played()
		})
	}
	return byPosition
}

// bestFlexCandidate picks the FLEX starter from the next-best unused player
// in each of RB, WR and TE. Ties across pools fall back to the same policy
// as the per-position sort: a recorded stat line beats a did-not-play line,
// then the line supplied earliest in the input wins.
func bestFlexCandidate(byPosition map[Position][]PlayerWeekLine, used map[int]bool, ordinal map[int]int) (PlayerWeekLine, bool) {
	var best PlayerWeekLine
	found := false

	for _, pos := range []Position{PositionRB, PositionWR, PositionTE} {
		for _, line := range byPosition[pos] {
			if used[line.PlayerID] {
				continue
			}
			// First unused player is this pool's candidate.
			if !found || flexOutranks(line, best, ordinal) {
				best = line
				found = true
			}
			break
		}
	}

	return best, found
}

func flexOutranks(a, b PlayerWeekLine, ordinal map[int]int) bool {
	if a.Points() != b.Points() {
		return a.Points() > b.Points()
	}
	if a.Played() != b.Played() {
		return a.Played()
	}
	return ordinal[a.PlayerID] < ordinal[b.PlayerID]
}
