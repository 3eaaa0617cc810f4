package change

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/vending-machine-service/internal/coins"
	"github.com/fairyhunter13/vending-machine-service/internal/model"
)

func stocked(t *testing.T, counts map[model.Denomination]int) *coins.Inventory {
	t.Helper()
	inv := coins.NewInventory()
	for d, n := range counts {
		require.NoError(t, inv.Restock(d, n))
	}
	return inv
}

func newPlanner(t *testing.T) *Planner {
	t.Helper()
	p, err := NewPlanner(model.Dollar)
	require.NoError(t, err)
	return p
}

func TestNewPlannerRequiresFixedAllowedSet(t *testing.T) {
	_, err := NewPlanner(model.Dollar)
	assert.NoError(t, err)
	_, err = NewPlanner()
	assert.Error(t, err, "without exclusions the dollar stays allowed")
	_, err = NewPlanner(model.Dollar, model.Nickel)
	assert.Error(t, err)
	_, err = NewPlanner(model.Denomination(3))
	assert.ErrorIs(t, err, model.ErrInvalidDenomination)
}

func TestPlanGreedyLargestFirst(t *testing.T) {
	p := newPlanner(t)
	inv := stocked(t, map[model.Denomination]int{
		model.Quarter: 10, model.Dime: 10, model.Nickel: 10,
	})
	plan, err := p.Plan(35, inv)
	require.NoError(t, err)
	assert.Equal(t, []model.Denomination{model.Quarter, model.Dime}, plan)

	plan, err = p.Plan(90, inv)
	require.NoError(t, err)
	assert.Equal(t, []model.Denomination{model.Quarter, model.Quarter, model.Quarter, model.Dime, model.Nickel}, plan)
}

func TestPlanNeverUsesDollar(t *testing.T) {
	p := newPlanner(t)
	inv := stocked(t, map[model.Denomination]int{
		model.Dollar: 50, model.Quarter: 8,
	})
	plan, err := p.Plan(100, inv)
	require.NoError(t, err)
	for _, d := range plan {
		assert.NotEqual(t, model.Dollar, d)
	}
	var sum model.Cents
	for _, d := range plan {
		sum += d.Cents()
	}
	assert.Equal(t, model.Cents(100), sum)
}

func TestPlanZeroAmount(t *testing.T) {
	p := newPlanner(t)
	inv := coins.NewInventory()
	plan, err := p.Plan(0, inv)
	require.NoError(t, err)
	assert.Empty(t, plan)
}

func TestPlanFallsBackToSmallerCoins(t *testing.T) {
	p := newPlanner(t)
	inv := stocked(t, map[model.Denomination]int{
		model.Quarter: 0, model.Dime: 3, model.Nickel: 1,
	})
	plan, err := p.Plan(35, inv)
	require.NoError(t, err)
	assert.Equal(t, []model.Denomination{model.Dime, model.Dime, model.Dime, model.Nickel}, plan)
}

func TestPlanInsufficientStock(t *testing.T) {
	p := newPlanner(t)
	inv := stocked(t, map[model.Denomination]int{
		model.Quarter: 1, model.Dime: 0, model.Nickel: 0,
	})
	_, err := p.Plan(35, inv)
	assert.ErrorIs(t, err, ErrExactChangeUnavailable)
}

func TestPlanUnrepresentableAmount(t *testing.T) {
	p := newPlanner(t)
	inv := stocked(t, map[model.Denomination]int{
		model.Quarter: 99, model.Dime: 99, model.Nickel: 99,
	})
	_, err := p.Plan(3, inv)
	assert.ErrorIs(t, err, ErrExactChangeUnavailable)
}

func TestPlanRejectsNegativeAmount(t *testing.T) {
	p := newPlanner(t)
	_, err := p.Plan(-5, coins.NewInventory())
	assert.Error(t, err)
}
