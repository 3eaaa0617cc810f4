package vending

import "github.com/fairyhunter13/vending-machine-service/internal/model"

// Commands. Each carries a fixed, validated payload and maps to exactly one
// handler on the dispatcher.

type insertCoinCmd struct{ Coin model.Denomination }

func (insertCoinCmd) CommandName() string { return "vending.coin_insert" }

type returnCoinsCmd struct{}

func (returnCoinsCmd) CommandName() string { return "vending.coin_return" }

type buyItemCmd struct{ Name string }

func (buyItemCmd) CommandName() string { return "vending.item_buy" }

type updateItemCmd struct {
	Name   string
	Price  *model.Cents
	Amount *int
}

func (updateItemCmd) CommandName() string { return "vending.service_item_update" }

type restockCoinCmd struct {
	Coin   model.Denomination
	Amount int
}

func (restockCoinCmd) CommandName() string { return "vending.service_coin_update" }

type flushCmd struct{}

func (flushCmd) CommandName() string { return "vending.flush" }

// Queries.

type coinStatusQry struct{}

func (coinStatusQry) QueryName() string { return "vending.coin_status" }

type itemStatusQry struct{}

func (itemStatusQry) QueryName() string { return "vending.item_status" }

type machineStatusQry struct{}

func (machineStatusQry) QueryName() string { return "vending.service_status" }
