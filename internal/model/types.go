// Package model defines domain types used by the service.
package model

// Item represents one product slot in the machine.
type Item struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Price  Cents  `json:"price"`
	Amount int    `json:"amount"`
}

// Validate checks the price and amount bounds.
func (i Item) Validate() error {
	if err := ValidatePrice(i.Price); err != nil {
		return err
	}
	return ValidateAmount(i.Amount)
}
