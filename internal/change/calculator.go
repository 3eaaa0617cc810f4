// Package change computes exact change plans from the machine's coin stock.
package change

import (
	"errors"
	"fmt"

	"github.com/fairyhunter13/vending-machine-service/internal/model"
)

// ErrExactChangeUnavailable is returned when the owed amount cannot be
// decomposed exactly from the allowed denominations and available stock.
var ErrExactChangeUnavailable = errors.New("exact change unavailable")

// StockView is the read-only view of the machine stock the planner consumes.
type StockView interface {
	MachineCount(model.Denomination) int
}

// Planner builds greedy largest-first change plans over the allowed
// denomination subset.
//
// Greedy decomposition is exact for the {0.25, 0.10, 0.05} set but is not a
// general coin-change solver; NewPlanner enforces that precondition rather
// than trusting arbitrary exclusion policies.
type Planner struct {
	allowed []model.Denomination
}

// NewPlanner derives the allowed set by removing the excluded denominations
// from the accepted set. The remaining set must be exactly
// {0.25, 0.10, 0.05}, the only configuration greedy decomposition is exact
// for.
func NewPlanner(excluded ...model.Denomination) (*Planner, error) {
	skip := make(map[model.Denomination]bool, len(excluded))
	for _, d := range excluded {
		if !d.Valid() {
			return nil, fmt.Errorf("%w: %s", model.ErrInvalidDenomination, model.Cents(d))
		}
		skip[d] = true
	}
	var allowed []model.Denomination
	for _, d := range model.Denominations {
		if !skip[d] {
			allowed = append(allowed, d)
		}
	}
	if len(allowed) != 3 || allowed[0] != model.Quarter || allowed[1] != model.Dime || allowed[2] != model.Nickel {
		return nil, fmt.Errorf("greedy change planning requires the allowed set {0.25, 0.10, 0.05}, got %v", allowed)
	}
	return &Planner{allowed: allowed}, nil
}

// Plan returns the coins to hand back for the owed amount, largest first.
// It only plans; withdrawing the coins from stock is the caller's commit step.
func (p *Planner) Plan(amount model.Cents, stock StockView) ([]model.Denomination, error) {
	if amount < 0 {
		return nil, fmt.Errorf("negative change amount %s", amount)
	}
	plan := []model.Denomination{}
	remaining := amount
	for _, d := range p.allowed {
		if remaining == 0 {
			break
		}
		n := int(remaining / d.Cents())
		if avail := stock.MachineCount(d); n > avail {
			n = avail
		}
		for i := 0; i < n; i++ {
			plan = append(plan, d)
		}
		remaining -= d.Cents() * model.Cents(n)
	}
	if remaining != 0 {
		if amount%model.Cents(model.Nickel) != 0 {
			return nil, fmt.Errorf("%w: %s is not representable", ErrExactChangeUnavailable, amount)
		}
		return nil, fmt.Errorf("%w: coin stock cannot cover %s", ErrExactChangeUnavailable, amount)
	}
	return plan, nil
}
