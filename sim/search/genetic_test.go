package search

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boarding-sim/boarding-sim/sim"
)

// smallOptions keeps test runs fast: a short cabin, few passengers, and a
// compact population. The search semantics are identical to the defaults.
func smallOptions() Options {
	opts := DefaultOptions()
	opts.PopulationSize = 8
	opts.Generations = 4
	opts.ElitismCount = 2
	opts.PassengerCount = 30
	opts.Layout = sim.LayoutConfig{
		Rows:        10,
		Columns:     []string{"A", "B", "C", "D", "E", "F"},
		AisleIndex:  3,
		BinCapacity: 6,
	}
	opts.ScenarioSeeds = []int64{11, 22, 33}
	return opts
}

func TestOptimize_RejectsParameterlessContract(t *testing.T) {
	// GIVEN the random preset, which declares no numeric parameters
	c, err := sim.LookupContract("random")
	require.NoError(t, err)

	// WHEN optimization is requested
	_, err = Optimize(context.Background(), c, smallOptions(), nil)

	// THEN it is rejected before any population is built
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoParameters))
}

func TestOptimize_BestFitnessNonIncreasing(t *testing.T) {
	c, err := sim.LookupContract("back-to-front")
	require.NoError(t, err)

	var fitnesses []float64
	result, err := Optimize(context.Background(), c, smallOptions(), func(p Progress) {
		fitnesses = append(fitnesses, p.BestFitness)
	})
	require.NoError(t, err)
	require.Len(t, fitnesses, 4)

	// tracked best never gets worse generation over generation
	for i := 1; i < len(fitnesses); i++ {
		assert.LessOrEqual(t, fitnesses[i], fitnesses[i-1],
			"generation %d best %v worse than %v", i+1, fitnesses[i], fitnesses[i-1])
	}
	assert.Equal(t, fitnesses[len(fitnesses)-1], result.BestFitness)
}

func TestOptimize_GenomeWithinDeclaredBounds(t *testing.T) {
	c, err := sim.LookupContract("window-middle-aisle")
	require.NoError(t, err)

	result, err := Optimize(context.Background(), c, smallOptions(), nil)
	require.NoError(t, err)
	require.Len(t, result.BestGenome, len(c.Params))

	for name, v := range result.BestGenome {
		p := c.Params[name]
		assert.GreaterOrEqual(t, v, p.Min, "gene %s below min", name)
		assert.LessOrEqual(t, v, p.Max, "gene %s above max", name)
	}
	assert.Greater(t, result.BestFitness, 0.0)
}

func TestOptimize_DeterministicForFixedSeeds(t *testing.T) {
	c, err := sim.LookupContract("back-to-front")
	require.NoError(t, err)

	a, err := Optimize(context.Background(), c, smallOptions(), nil)
	require.NoError(t, err)
	b, err := Optimize(context.Background(), c, smallOptions(), nil)
	require.NoError(t, err)

	assert.Equal(t, a.BestFitness, b.BestFitness)
	assert.Equal(t, a.BestGenome, b.BestGenome)
}

func TestOptimize_CancellationBetweenGenerations(t *testing.T) {
	// GIVEN a context cancelled during the first progress checkpoint
	c, err := sim.LookupContract("back-to-front")
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())

	generations := 0
	result, err := Optimize(ctx, c, smallOptions(), func(p Progress) {
		generations++
		cancel()
	})

	// THEN the search stops after that generation, returning the best so far
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 1, generations)
	require.NotNil(t, result)
	assert.Equal(t, 1, result.Generations)
	assert.NotEmpty(t, result.BestGenome)
}

func TestGenome_CloneIsIndependent(t *testing.T) {
	g := Genome{"blocks": 4}
	clone := g.Clone()
	clone["blocks"] = 9
	assert.Equal(t, 4.0, g["blocks"])
}

func TestMutate_ClampsAndRounds(t *testing.T) {
	c, err := sim.LookupContract("back-to-front")
	require.NoError(t, err)
	seq := sim.NewSequence(5)
	names := []string{"blocks"}

	for i := 0; i < 200; i++ {
		g := Genome{"blocks": 9.7} // near the declared max of 10
		mutate(g, c, names, seq)
		v := g["blocks"]
		assert.GreaterOrEqual(t, v, 1.0)
		assert.LessOrEqual(t, v, 10.0)
		assert.Equal(t, v, float64(int(v)), "mutated gene must be integral")
	}
}
