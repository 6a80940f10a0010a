package sim

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePassengers_UniqueSeatsSequentialIDs(t *testing.T) {
	// GIVEN the default cabin and a seeded sequence
	cfg := DefaultLayoutConfig()
	seq := NewSequence(42)

	// WHEN a full manifest is generated
	passengers, err := GeneratePassengers(150, cfg, seq)
	require.NoError(t, err)
	require.Len(t, passengers, 150)

	// THEN ids run 1..N in assignment order and no seat is duplicated
	seats := map[string]bool{}
	for i, p := range passengers {
		assert.Equal(t, i+1, p.ID)
		key := fmt.Sprintf("%d%s", p.Row, p.Column)
		assert.False(t, seats[key], "seat %s assigned twice", key)
		seats[key] = true

		assert.GreaterOrEqual(t, p.Row, 1)
		assert.LessOrEqual(t, p.Row, cfg.Rows)
		assert.Equal(t, cfg.Columns[p.ColIdx], p.Column)
	}
}

func TestGeneratePassengers_SameSeedSameManifest(t *testing.T) {
	cfg := DefaultLayoutConfig()

	a, err := GeneratePassengers(60, cfg, NewSequence(7))
	require.NoError(t, err)
	b, err := GeneratePassengers(60, cfg, NewSequence(7))
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestGeneratePassengers_CountBounds(t *testing.T) {
	cfg := DefaultLayoutConfig() // 180 seats

	_, err := GeneratePassengers(0, cfg, NewSequence(1))
	assert.Error(t, err)

	_, err = GeneratePassengers(181, cfg, NewSequence(1))
	assert.Error(t, err)

	full, err := GeneratePassengers(180, cfg, NewSequence(1))
	require.NoError(t, err)
	assert.Len(t, full, 180)
}

func TestGeneratePassengers_AttributeClassesFromWeightedLists(t *testing.T) {
	cfg := DefaultLayoutConfig()
	passengers, err := GeneratePassengers(180, cfg, NewSequence(13))
	require.NoError(t, err)

	speeds := map[WalkSpeed]int{}
	for _, p := range passengers {
		speeds[p.WalkSpeed]++
	}
	// normal is weighted 3x; with 180 samples it must dominate
	assert.Greater(t, speeds[WalkNormal], speeds[WalkSlow])
	assert.Greater(t, speeds[WalkNormal], speeds[WalkFast])
}

func TestCarryOn_Units(t *testing.T) {
	assert.Equal(t, 0, CarryNone.Units())
	assert.Equal(t, 1, CarrySmall.Units())
	assert.Equal(t, 2, CarryLarge.Units())
}
