package vending

import (
	"context"
	"fmt"

	"github.com/fairyhunter13/vending-machine-service/internal/bus"
	"github.com/fairyhunter13/vending-machine-service/internal/catalog"
	"github.com/fairyhunter13/vending-machine-service/internal/coins"
	"github.com/fairyhunter13/vending-machine-service/internal/model"
	"github.com/fairyhunter13/vending-machine-service/internal/obs"
)

// Handlers run under the dispatcher's aggregate lock. Every failure path
// returns before any mutation, or after none took effect, so a failed command
// leaves the machine exactly as it was.

func (s *Service) handleInsertCoin(ctx context.Context, c bus.Command) (any, error) {
	cmd := c.(insertCoinCmd)
	if err := s.inv.InsertCoin(cmd.Coin); err != nil {
		return nil, err
	}
	obs.Logger.Info("coin_inserted", "coin", cmd.Coin.String(), "pocket_total", s.inv.PocketTotal().String())
	return nil, nil
}

func (s *Service) handleReturnCoins(ctx context.Context, c bus.Command) (any, error) {
	returned := s.inv.ReturnPocket()
	obs.Logger.Info("coins_returned", "count", len(returned))
	return returned, nil
}

// handleBuyItem runs the six-step purchase sequence. Steps 1-5 only validate
// and plan; the commit in step 6 starts after nothing can fail anymore.
func (s *Service) handleBuyItem(ctx context.Context, c bus.Command) (any, error) {
	cmd := c.(buyItemCmd)

	item, err := s.catalog.FindByName(cmd.Name)
	if err != nil {
		return nil, err
	}
	if item.Amount == 0 {
		return nil, fmt.Errorf("%w: %s", catalog.ErrOutOfStock, item.Name)
	}
	pocket := s.inv.PocketTotal()
	if pocket < item.Price {
		return nil, fmt.Errorf("%w: have %s, need %s", ErrInsufficientFunds, pocket, item.Price)
	}
	owed := pocket - item.Price
	plan, err := s.planner.Plan(owed, s.inv)
	if err != nil {
		return nil, err
	}

	if err := s.catalog.DecrementAmount(item.Name); err != nil {
		return nil, err
	}
	s.inv.DepositPocketToMachine()
	for _, d := range plan {
		if err := s.inv.WithdrawFromMachine(d, 1); err != nil {
			// Cannot happen: the plan was computed against this stock under
			// the same lock and the deposit only added coins.
			return nil, fmt.Errorf("withdraw planned coin %s: %w", d, err)
		}
	}

	obs.Logger.Info("item_bought",
		"item", item.Name,
		"price", item.Price.String(),
		"change", owed.String(),
		"coins_returned", len(plan),
	)
	s.persist(ctx)
	return Purchase{Item: item.Name, Change: plan}, nil
}

func (s *Service) handleUpdateItem(ctx context.Context, c bus.Command) (any, error) {
	cmd := c.(updateItemCmd)
	if cmd.Price == nil && cmd.Amount == nil {
		return nil, fmt.Errorf("%w: price or amount required", ErrInvalidRequest)
	}
	// Validate both fields before applying either, so a bad amount cannot
	// leave a half-applied price behind.
	if cmd.Price != nil {
		if err := model.ValidatePrice(*cmd.Price); err != nil {
			return nil, err
		}
	}
	if cmd.Amount != nil {
		if err := model.ValidateAmount(*cmd.Amount); err != nil {
			return nil, err
		}
	}
	item, err := s.catalog.FindByName(cmd.Name)
	if err != nil {
		return nil, err
	}
	if cmd.Price != nil {
		if item, err = s.catalog.UpdatePrice(cmd.Name, *cmd.Price); err != nil {
			return nil, err
		}
	}
	if cmd.Amount != nil {
		if item, err = s.catalog.UpdateAmount(cmd.Name, *cmd.Amount); err != nil {
			return nil, err
		}
	}
	obs.Logger.Info("item_updated", "item", item.Name, "price", item.Price.String(), "amount", item.Amount)
	s.persist(ctx)
	return itemView(item), nil
}

func (s *Service) handleRestockCoin(ctx context.Context, c bus.Command) (any, error) {
	cmd := c.(restockCoinCmd)
	if err := s.inv.Restock(cmd.Coin, cmd.Amount); err != nil {
		return nil, err
	}
	obs.Logger.Info("coin_restocked", "coin", cmd.Coin.String(), "amount", cmd.Amount)
	s.persist(ctx)
	return coins.CoinCount{Value: cmd.Coin, Amount: cmd.Amount}, nil
}

func (s *Service) handleFlush(ctx context.Context, c bus.Command) (any, error) {
	s.persist(ctx)
	return nil, nil
}

func (s *Service) handleCoinStatus(ctx context.Context, q bus.Query) (any, error) {
	return CoinStatusView{Money: s.inv.PocketTotal(), Coins: s.inv.PocketCoins()}, nil
}

func (s *Service) handleItemStatus(ctx context.Context, q bus.Query) (any, error) {
	items := []ItemView{}
	for it := range s.catalog.All() {
		items = append(items, itemView(it))
	}
	return items, nil
}

func (s *Service) handleMachineStatus(ctx context.Context, q bus.Query) (any, error) {
	items := []ItemView{}
	for it := range s.catalog.All() {
		items = append(items, itemView(it))
	}
	return StatusView{
		Pocket:  CoinStatusView{Money: s.inv.PocketTotal(), Coins: s.inv.PocketCoins()},
		Machine: MachineView{Total: s.inv.MachineTotal(), Coins: s.inv.MachineSnapshot()},
		Items:   items,
	}, nil
}
