// Package roster maps the external provider's numeric lineup-slot and
// position codes onto the canonical enumerations used by the lineup engine.
// The engine itself never sees provider codes; everything crossing into it
// is decoded here first.
package roster

import (
	"fmt"

	"github.com/gridironhq/lineupiq/internal/lineup"
)

// Provider lineup-slot codes (ESPN taxonomy).
var slotCodes = map[int]lineup.RosterSlot{
	0:  lineup.SlotQB,
	2:  lineup.SlotRB,
	4:  lineup.SlotWR,
	6:  lineup.SlotTE,
	23: lineup.SlotFlex,
	17: lineup.SlotK,
	16: lineup.SlotDST,
	20: lineup.SlotBench,
	21: lineup.SlotIR,
}

// Provider default-position codes (ESPN taxonomy).
var positionCodes = map[int]lineup.Position{
	1:  lineup.PositionQB,
	2:  lineup.PositionRB,
	3:  lineup.PositionWR,
	4:  lineup.PositionTE,
	5:  lineup.PositionK,
	16: lineup.PositionDST,
}

// DecodeSlot converts a provider lineup-slot code to the canonical slot.
func DecodeSlot(code int) (lineup.RosterSlot, error) {
	slot, ok := slotCodes[code]
	if !ok {
		return "", fmt.Errorf("unknown lineup slot code %d", code)
	}
	return slot, nil
}

// DecodePosition converts a provider position code to the canonical
// position.
func DecodePosition(code int) (lineup.Position, error) {
	pos, ok := positionCodes[code]
	if !ok {
		return "", fmt.Errorf("unknown position code %d", code)
	}
	return pos, nil
}
