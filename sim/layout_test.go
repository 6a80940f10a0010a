package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sixAcross(t *testing.T, rows int) *Layout {
	t.Helper()
	l, err := NewLayout(LayoutConfig{
		Rows:        rows,
		Columns:     []string{"A", "B", "C", "D", "E", "F"},
		AisleIndex:  3,
		BinCapacity: 6,
	})
	require.NoError(t, err)
	return l
}

func TestLayoutConfig_Validate_Rejections(t *testing.T) {
	base := DefaultLayoutConfig()

	noRows := base
	noRows.Rows = 0
	assert.Error(t, noRows.Validate())

	badAisle := base
	badAisle.AisleIndex = 0
	assert.Error(t, badAisle.Validate())

	dup := base
	dup.Columns = []string{"A", "A", "B", "C"}
	assert.Error(t, dup.Validate())

	negBin := base
	negBin.BinCapacity = -1
	assert.Error(t, negBin.Validate())
}

func TestLayout_SeatOccupancy_SingleOwner(t *testing.T) {
	l := sixAcross(t, 3)

	require.True(t, l.OccupySeat(2, 0, 7))
	assert.Equal(t, 7, l.SeatOccupant(2, 0))

	// a second passenger cannot take the same seat
	assert.False(t, l.OccupySeat(2, 0, 8))
	assert.Equal(t, 7, l.SeatOccupant(2, 0))
}

func TestLayout_AisleCells_SingleOwner(t *testing.T) {
	l := sixAcross(t, 3)

	require.True(t, l.EnterAisle(0, 1))
	assert.False(t, l.EnterAisle(0, 2))

	// blocked move leaves both cells untouched
	require.True(t, l.EnterAisle(1, 2))
	assert.False(t, l.MoveAisle(0, 1, 1))
	assert.Equal(t, 1, l.AisleOccupant(0))
	assert.Equal(t, 2, l.AisleOccupant(1))

	l.LeaveAisle(1)
	assert.True(t, l.MoveAisle(0, 1, 1))
	assert.Equal(t, 0, l.AisleOccupant(0))
	assert.Equal(t, 1, l.AisleOccupant(1))
}

func TestLayout_BinCapacity_MonotonicUntilReset(t *testing.T) {
	// GIVEN a row with 6 bin units
	l := sixAcross(t, 3)
	require.Equal(t, 6, l.BinRemaining(1))

	// WHEN carry-ons are stowed
	require.True(t, l.ConsumeBin(1, CarryLarge)) // 4 left
	require.True(t, l.ConsumeBin(1, CarryLarge)) // 2 left
	require.True(t, l.ConsumeBin(1, CarrySmall)) // 1 left
	require.True(t, l.ConsumeBin(1, CarrySmall)) // 0 left

	// THEN an oversize consume fails without going negative
	assert.False(t, l.ConsumeBin(1, CarrySmall))
	assert.Equal(t, 0, l.BinRemaining(1))

	// none-size always fits
	assert.True(t, l.HasBinSpace(1, CarryNone))
	assert.True(t, l.ConsumeBin(1, CarryNone))
	assert.Equal(t, 0, l.BinRemaining(1))

	// AND Reset restores the configured capacity
	l.Reset()
	assert.Equal(t, 6, l.BinRemaining(1))
}

func TestLayout_NearestBinRow_PrefersFrontAtEqualRadius(t *testing.T) {
	// GIVEN row 5 full and rows 4 and 6 open
	l := sixAcross(t, 10)
	for l.ConsumeBin(5, CarrySmall) {
	}

	// WHEN searching from row 5
	row, ok := l.NearestBinRow(5, CarrySmall)

	// THEN row-offset is checked before row+offset
	require.True(t, ok)
	assert.Equal(t, 4, row)
}

func TestLayout_NearestBinRow_NoneFound(t *testing.T) {
	l := sixAcross(t, 3)
	for r := 1; r <= 3; r++ {
		for l.ConsumeBin(r, CarrySmall) {
		}
	}
	_, ok := l.NearestBinRow(2, CarryLarge)
	assert.False(t, ok)
}

func TestLayout_BlockingSeats_LeftSide(t *testing.T) {
	// GIVEN row 1 with B and C occupied (left of the aisle)
	l := sixAcross(t, 1)
	l.OccupySeat(1, 1, 10) // B
	l.OccupySeat(1, 2, 11) // C

	// WHEN the target is the window seat A
	got := l.BlockingSeats(1, 0)

	// THEN both are reported aisle-outward, target excluded
	assert.Equal(t, []int{2, 1}, got)

	// a passenger heading for C itself is not blocked by C
	assert.Empty(t, l.BlockingSeats(1, 2))
}

func TestLayout_BlockingSeats_RightSide(t *testing.T) {
	l := sixAcross(t, 1)
	l.OccupySeat(1, 3, 20) // D, aisle seat on the right

	assert.Equal(t, []int{3}, l.BlockingSeats(1, 5)) // window F
	assert.Equal(t, []int{3}, l.BlockingSeats(1, 4)) // middle E
	assert.Empty(t, l.BlockingSeats(1, 3))           // D itself
}

func TestLayoutConfig_SeatClassAndSeatsToPass(t *testing.T) {
	cfg := DefaultLayoutConfig()

	cases := []struct {
		colIdx int
		class  SeatClass
		pass   int
	}{
		{0, SeatWindow, 2}, // A
		{1, SeatMiddle, 1}, // B
		{2, SeatAisle, 0},  // C
		{3, SeatAisle, 0},  // D
		{4, SeatMiddle, 1}, // E
		{5, SeatWindow, 2}, // F
	}
	for _, tc := range cases {
		assert.Equal(t, tc.class, cfg.SeatClassOf(tc.colIdx), "class of col %d", tc.colIdx)
		assert.Equal(t, tc.pass, cfg.SeatsToPassOf(tc.colIdx), "seats-to-pass of col %d", tc.colIdx)
	}
}
