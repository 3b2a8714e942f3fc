package lineup

import (
	"fmt"
)

// Position is a player's natural position, independent of where the manager
// started them for the week.
type Position string

const (
	PositionQB  Position = "QB"
	PositionRB  Position = "RB"
	PositionWR  Position = "WR"
	PositionTE  Position = "TE"
	PositionK   Position = "K"
	PositionDST Position = "DST"
)

// RosterSlot is the slot a manager actually placed a player in for the week.
// It is a separate taxonomy from Position: an RB can be started in FLEX.
type RosterSlot string

const (
	SlotQB    RosterSlot = "QB"
	SlotRB    RosterSlot = "RB"
	SlotWR    RosterSlot = "WR"
	SlotTE    RosterSlot = "TE"
	SlotFlex  RosterSlot = "FLEX"
	SlotK     RosterSlot = "K"
	SlotDST   RosterSlot = "DST"
	SlotBench RosterSlot = "BENCH"
	SlotIR    RosterSlot = "IR"
)

var validPositions = map[Position]bool{
	PositionQB:  true,
	PositionRB:  true,
	PositionWR:  true,
	PositionTE:  true,
	PositionK:   true,
	PositionDST: true,
}

var validSlots = map[RosterSlot]bool{
	SlotQB:    true,
	SlotRB:    true,
	SlotWR:    true,
	SlotTE:    true,
	SlotFlex:  true,
	SlotK:     true,
	SlotDST:   true,
	SlotBench: true,
	SlotIR:    true,
}

// IsStarting reports whether the slot counts toward the actual lineup score.
func (s RosterSlot) IsStarting() bool {
	return s != SlotBench && s != SlotIR
}

// PlayerWeekLine is one player's performance in one team's lineup for one
// week. PointsActual is nil when the player did not play; the optimizer
// treats a nil value as zero points but the did-not-play status is reported
// separately.
type PlayerWeekLine struct {
	PlayerID        int        `json:"player_id"`
	Name            string     `json:"name"`
	Slot            RosterSlot `json:"roster_slot"`
	Position        Position   `json:"position"`
	PointsActual    *float64   `json:"points_actual,omitempty"`
	PointsProjected *float64   `json:"points_projected,omitempty"`
}

// Points returns the scoring value used for optimization. A player who did
// not play counts as zero.
func (l PlayerWeekLine) Points() float64 {
	if l.PointsActual == nil {
		return 0
	}
	return *l.PointsActual
}

// Played reports whether a stat line was recorded for the player.
func (l PlayerWeekLine) Played() bool {
	return l.PointsActual != nil
}

// Validate rejects lines outside the known slot and position enumerations.
// Silent exclusion of a malformed record would corrupt the optimality
// guarantee, so the whole input is refused instead.
func (l PlayerWeekLine) Validate() error {
	if !validPositions[l.Position] {
		return fmt.Errorf("player %d (%s): unknown position %q", l.PlayerID, l.Name, l.Position)
	}
	if !validSlots[l.Slot] {
		return fmt.Errorf("player %d (%s): unknown roster slot %q", l.PlayerID, l.Name, l.Slot)
	}
	return nil
}

// ValidateLines validates every line in a roster.
func ValidateLines(lines []PlayerWeekLine) error {
	for _, l := range lines {
		if err := l.Validate(); err != nil {
			return fmt.Errorf("invalid roster line: %w", err)
		}
	}
	return nil
}

// LineupSlot is one entry in the legal lineup template: a slot name, the
// natural positions eligible to fill it, and how many players it takes.
type LineupSlot struct {
	Slot     RosterSlot
	Eligible []Position
	Count    int
}

// LegalLineup returns the slot template a team must fill each week:
// 1 QB, 2 RB, 2 WR, 1 TE, 1 FLEX (RB/WR/TE), 1 K, 1 DST.
func LegalLineup() []LineupSlot {
	return []LineupSlot{
		{Slot: SlotQB, Eligible: []Position{PositionQB}, Count: 1},
		{Slot: SlotRB, Eligible: []Position{PositionRB}, Count: 2},
		{Slot: SlotWR, Eligible: []Position{PositionWR}, Count: 2},
		{Slot: SlotTE, Eligible: []Position{PositionTE}, Count: 1},
		{Slot: SlotFlex, Eligible: []Position{PositionRB, PositionWR, PositionTE}, Count: 1},
		{Slot: SlotK, Eligible: []Position{PositionK}, Count: 1},
		{Slot: SlotDST, Eligible: []Position{PositionDST}, Count: 1},
	}
}

// FlexEligible reports whether a natural position may fill the FLEX slot.
func FlexEligible(p Position) bool {
	return p == PositionRB || p == PositionWR || p == PositionTE
}

// CanFillSlot reports whether a player of the given natural position is
// eligible for a starting slot.
func CanFillSlot(p Position, slot RosterSlot) bool {
	switch slot {
	case SlotFlex:
		return FlexEligible(p)
	case SlotQB, SlotRB, SlotWR, SlotTE, SlotK, SlotDST:
		return Position(slot) == p
	default:
		return false
	}
}

// SlotAssignment is one chosen player in the optimal lineup, tagged with the
// slot they fill.
type SlotAssignment struct {
	Slot RosterSlot     `json:"slot"`
	Line PlayerWeekLine `json:"player"`
}

// OptimalLineupResult is the optimizer's output: the chosen players in
// template order and the aggregate score. A slot with no eligible candidate
// simply has no assignment.
type OptimalLineupResult struct {
	Assignments  []SlotAssignment `json:"assignments"`
	OptimalScore float64          `json:"optimal_score"`
}

// Contains reports whether a player was selected into the optimal lineup.
func (r *OptimalLineupResult) Contains(playerID int) bool {
	for _, a := range r.Assignments {
		if a.Line.PlayerID == playerID {
			return true
		}
	}
	return false
}

// Mistake is a single proposed substitution: a sat player the optimizer
// would have started, the actual starter they should have replaced, and the
// points given up by not making the swap. PointsLost is always positive.
type Mistake struct {
	Starter    PlayerWeekLine `json:"starter"`
	BenchedFor PlayerWeekLine `json:"should_have_started"`
	Slot       RosterSlot     `json:"slot"`
	PointsLost float64        `json:"points_lost"`
}

// EfficiencyReport is the analyzer's output for one team-week.
type EfficiencyReport struct {
	ActualScore       float64          `json:"actual_score"`
	OptimalScore      float64          `json:"optimal_score"`
	Efficiency        float64          `json:"efficiency"`
	PointsLeftOnBench float64          `json:"points_left_on_bench"`
	Mistakes          []Mistake        `json:"mistakes"`
	DidNotPlay        []PlayerWeekLine `json:"did_not_play,omitempty"`
}
