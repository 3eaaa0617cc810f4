// Package coins tracks the machine's coin stock and the customer pocket.
package coins

import (
	"errors"
	"fmt"

	"github.com/fairyhunter13/vending-machine-service/internal/model"
)

// ErrInsufficientStock is returned when a withdrawal exceeds the machine's
// stock for a denomination. It never surfaces from a purchase; the
// orchestrator folds it into the exact-change failure.
var ErrInsufficientStock = errors.New("insufficient coin stock")

// Inventory holds the machine stock and the current customer pocket.
// It carries no lock of its own: all access runs under the dispatcher's
// aggregate lock, together with the catalog.
type Inventory struct {
	machine map[model.Denomination]int
	pocket  map[model.Denomination]int
}

// CoinCount is one denomination's stock count.
type CoinCount struct {
	Value  model.Denomination `json:"value"`
	Amount int                `json:"amount"`
}

// NewInventory returns an empty inventory.
func NewInventory() *Inventory {
	return &Inventory{
		machine: make(map[model.Denomination]int),
		pocket:  make(map[model.Denomination]int),
	}
}

// InsertCoin adds one coin to the pocket.
func (v *Inventory) InsertCoin(d model.Denomination) error {
	if !d.Valid() {
		return fmt.Errorf("%w: %s", model.ErrInvalidDenomination, model.Cents(d))
	}
	v.pocket[d]++
	return nil
}

// PocketTotal returns the summed value of the pocket.
func (v *Inventory) PocketTotal() model.Cents {
	var total model.Cents
	for d, n := range v.pocket {
		total += d.Cents() * model.Cents(n)
	}
	return total
}

// PocketCoins lists the pocket's coins, largest first.
func (v *Inventory) PocketCoins() []model.Denomination {
	return expand(v.pocket)
}

// ReturnPocket empties the pocket and returns its coins. Returning an empty
// pocket yields an empty list.
func (v *Inventory) ReturnPocket() []model.Denomination {
	out := expand(v.pocket)
	v.pocket = make(map[model.Denomination]int)
	return out
}

// DepositPocketToMachine moves all pocket coins into the machine stock.
func (v *Inventory) DepositPocketToMachine() {
	for d, n := range v.pocket {
		v.machine[d] += n
	}
	v.pocket = make(map[model.Denomination]int)
}

// WithdrawFromMachine removes count coins of one denomination from the
// machine stock.
func (v *Inventory) WithdrawFromMachine(d model.Denomination, count int) error {
	if count < 0 {
		return fmt.Errorf("%w: negative count %d", model.ErrInvalidAmount, count)
	}
	if v.machine[d] < count {
		return fmt.Errorf("%w: %s have %d want %d", ErrInsufficientStock, d, v.machine[d], count)
	}
	v.machine[d] -= count
	return nil
}

// Restock sets the machine stock count for one denomination.
func (v *Inventory) Restock(d model.Denomination, amount int) error {
	if !d.Valid() {
		return fmt.Errorf("%w: %s", model.ErrInvalidDenomination, model.Cents(d))
	}
	if err := model.ValidateAmount(amount); err != nil {
		return err
	}
	v.machine[d] = amount
	return nil
}

// MachineCount returns the machine stock count for one denomination.
func (v *Inventory) MachineCount(d model.Denomination) int { return v.machine[d] }

// MachineTotal returns the summed value of the machine stock.
func (v *Inventory) MachineTotal() model.Cents {
	var total model.Cents
	for d, n := range v.machine {
		total += d.Cents() * model.Cents(n)
	}
	return total
}

// MachineSnapshot lists machine stock per denomination, largest first,
// including zero counts.
func (v *Inventory) MachineSnapshot() []CoinCount {
	out := make([]CoinCount, 0, len(model.Denominations))
	for _, d := range model.Denominations {
		out = append(out, CoinCount{Value: d, Amount: v.machine[d]})
	}
	return out
}

// expand flattens denomination counts into a coin list, largest first.
func expand(counts map[model.Denomination]int) []model.Denomination {
	out := []model.Denomination{}
	for _, d := range model.Denominations {
		for i := 0; i < counts[d]; i++ {
			out = append(out, d)
		}
	}
	return out
}
