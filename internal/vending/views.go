package vending

import (
	"github.com/fairyhunter13/vending-machine-service/internal/coins"
	"github.com/fairyhunter13/vending-machine-service/internal/model"
)

// CoinStatusView reports the pocket: total money and the inserted coins,
// largest first.
type CoinStatusView struct {
	Money model.Cents          `json:"money"`
	Coins []model.Denomination `json:"coins"`
}

// Purchase is the outcome of a successful buy: the item's name and the change
// coins handed back.
type Purchase struct {
	Item   string               `json:"item"`
	Change []model.Denomination `json:"change"`
}

// ItemView is one catalog row in status payloads.
type ItemView struct {
	Item   string      `json:"item"`
	Price  model.Cents `json:"price"`
	Amount int         `json:"amount"`
}

// MachineView reports the machine coin stock.
type MachineView struct {
	Total model.Cents       `json:"total"`
	Coins []coins.CoinCount `json:"coins"`
}

// StatusView is the full service projection: pocket, machine stock, items.
type StatusView struct {
	Pocket  CoinStatusView `json:"pocket"`
	Machine MachineView    `json:"machine"`
	Items   []ItemView     `json:"items"`
}

func itemView(it model.Item) ItemView {
	return ItemView{Item: it.Name, Price: it.Price, Amount: it.Amount}
}
