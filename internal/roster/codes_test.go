package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridironhq/lineupiq/internal/lineup"
)

func TestDecodeSlot(t *testing.T) {
	slot, err := DecodeSlot(23)
	require.NoError(t, err)
	assert.Equal(t, lineup.SlotFlex, slot)

	slot, err = DecodeSlot(20)
	require.NoError(t, err)
	assert.Equal(t, lineup.SlotBench, slot)

	_, err = DecodeSlot(99)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown lineup slot code 99")
}

func TestDecodePosition(t *testing.T) {
	pos, err := DecodePosition(2)
	require.NoError(t, err)
	assert.Equal(t, lineup.PositionRB, pos)

	pos, err = DecodePosition(16)
	require.NoError(t, err)
	assert.Equal(t, lineup.PositionDST, pos)

	_, err = DecodePosition(7)
	assert.Error(t, err)
}

func TestDecodedValuesPassEngineValidation(t *testing.T) {
	for code := range slotCodes {
		slot, err := DecodeSlot(code)
		require.NoError(t, err)
		l := lineup.PlayerWeekLine{PlayerID: 1, Slot: slot, Position: lineup.PositionRB}
		assert.NoError(t, l.Validate(), "slot code %d decodes to a value the engine accepts", code)
	}
	for code := range positionCodes {
		pos, err := DecodePosition(code)
		require.NoError(t, err)
		l := lineup.PlayerWeekLine{PlayerID: 1, Slot: lineup.SlotBench, Position: pos}
		assert.NoError(t, l.Validate(), "position code %d decodes to a value the engine accepts", code)
	}
}
