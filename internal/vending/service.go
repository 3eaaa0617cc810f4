// Package vending implements the machine's transaction orchestrator: it owns
// the catalog, the coin inventory, and the change planner, and executes every
// operation as a command or query on the dispatcher so that mutation is
// serialized across the whole aggregate.
package vending

import (
	"context"
	"errors"
	"fmt"

	"github.com/fairyhunter13/vending-machine-service/internal/bus"
	"github.com/fairyhunter13/vending-machine-service/internal/catalog"
	"github.com/fairyhunter13/vending-machine-service/internal/change"
	"github.com/fairyhunter13/vending-machine-service/internal/coins"
	"github.com/fairyhunter13/vending-machine-service/internal/model"
	"github.com/fairyhunter13/vending-machine-service/internal/obs"
)

var (
	// ErrInsufficientFunds is returned when the pocket does not cover the
	// item's price. Nothing is mutated before this check passes.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrInvalidRequest is returned for service updates that carry no fields.
	ErrInvalidRequest = errors.New("invalid request")
)

// Snapshot is the persisted machine state: the catalog and the machine coin
// stock. The pocket is session state and is not persisted.
type Snapshot struct {
	Items []model.Item
	Coins map[model.Denomination]int
}

// Repository persists machine snapshots. Load returns (nil, nil) when the
// store is empty.
type Repository interface {
	Load(ctx context.Context) (*Snapshot, error)
	Save(ctx context.Context, s Snapshot) error
}

// seedItems is the catalog installed into an empty machine.
var seedItems = []struct {
	name  string
	price model.Cents
}{
	{"WATER", 65},
	{"SODA", 150},
	{"JUICE", 100},
}

const seedItemAmount = 10

// Service is the transaction orchestrator.
type Service struct {
	bus     *bus.Dispatcher
	inv     *coins.Inventory
	catalog *catalog.Catalog
	planner *change.Planner
	repo    Repository
}

// New builds a Service and registers one handler per operation on a fresh
// dispatcher. The repository may be nil to run without persistence.
func New(repo Repository) (*Service, error) {
	planner, err := change.NewPlanner(model.Dollar)
	if err != nil {
		return nil, err
	}
	s := &Service{
		bus:     bus.New(),
		inv:     coins.NewInventory(),
		catalog: catalog.New(),
		planner: planner,
		repo:    repo,
	}
	if err := s.register(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Service) register() error {
	regs := []error{
		s.bus.RegisterCommand(insertCoinCmd{}.CommandName(), s.handleInsertCoin),
		s.bus.RegisterCommand(returnCoinsCmd{}.CommandName(), s.handleReturnCoins),
		s.bus.RegisterCommand(buyItemCmd{}.CommandName(), s.handleBuyItem),
		s.bus.RegisterCommand(updateItemCmd{}.CommandName(), s.handleUpdateItem),
		s.bus.RegisterCommand(restockCoinCmd{}.CommandName(), s.handleRestockCoin),
		s.bus.RegisterCommand(flushCmd{}.CommandName(), s.handleFlush),
		s.bus.RegisterQuery(coinStatusQry{}.QueryName(), s.handleCoinStatus),
		s.bus.RegisterQuery(itemStatusQry{}.QueryName(), s.handleItemStatus),
		s.bus.RegisterQuery(machineStatusQry{}.QueryName(), s.handleMachineStatus),
	}
	return errors.Join(regs...)
}

// Init loads the persisted snapshot, or seeds the default catalog and the
// configured machine coin count when the store is empty.
func (s *Service) Init(ctx context.Context, seedCoinCount int) error {
	if s.repo != nil {
		snap, err := s.repo.Load(ctx)
		if err != nil {
			return fmt.Errorf("load snapshot: %w", err)
		}
		if snap != nil {
			if err := s.restore(*snap); err != nil {
				return fmt.Errorf("restore snapshot: %w", err)
			}
			obs.Logger.Info("state_restored", "items", len(snap.Items))
			return nil
		}
	}
	for _, it := range seedItems {
		if _, err := s.catalog.Create(it.name, it.price, seedItemAmount); err != nil {
			return fmt.Errorf("seed item %s: %w", it.name, err)
		}
	}
	for _, d := range model.Denominations {
		if err := s.inv.Restock(d, seedCoinCount); err != nil {
			return fmt.Errorf("seed coin %s: %w", d, err)
		}
	}
	obs.Logger.Info("state_seeded", "items", s.catalog.Len(), "coins_per_denomination", seedCoinCount)
	s.persist(ctx)
	return nil
}

func (s *Service) restore(snap Snapshot) error {
	if err := s.catalog.Restore(snap.Items); err != nil {
		return err
	}
	for _, d := range model.Denominations {
		if err := s.inv.Restock(d, snap.Coins[d]); err != nil {
			return err
		}
	}
	return nil
}

// persist writes the current snapshot at the edge of the locked region.
// Snapshot failures do not roll back the committed in-memory state; they are
// logged and the operation still succeeds.
func (s *Service) persist(ctx context.Context) {
	if s.repo == nil {
		return
	}
	snap := Snapshot{Coins: make(map[model.Denomination]int, len(model.Denominations))}
	for it := range s.catalog.All() {
		snap.Items = append(snap.Items, it)
	}
	for _, d := range model.Denominations {
		snap.Coins[d] = s.inv.MachineCount(d)
	}
	if err := s.repo.Save(ctx, snap); err != nil {
		obs.Logger.Warn("snapshot_save_failed", "error", err)
	}
}

// InsertCoin adds one coin to the customer pocket.
func (s *Service) InsertCoin(ctx context.Context, d model.Denomination) error {
	_, err := s.bus.Dispatch(ctx, insertCoinCmd{Coin: d})
	return err
}

// ReturnCoins refunds and empties the pocket.
func (s *Service) ReturnCoins(ctx context.Context) ([]model.Denomination, error) {
	res, err := s.bus.Dispatch(ctx, returnCoinsCmd{})
	if err != nil {
		return nil, err
	}
	return res.([]model.Denomination), nil
}

// CoinStatus reports the pocket total and coins.
func (s *Service) CoinStatus(ctx context.Context) (CoinStatusView, error) {
	res, err := s.bus.Ask(ctx, coinStatusQry{})
	if err != nil {
		return CoinStatusView{}, err
	}
	return res.(CoinStatusView), nil
}

// BuyItem purchases one unit of the named item with the pocket's funds and
// returns the item name with the change coins.
func (s *Service) BuyItem(ctx context.Context, name string) (Purchase, error) {
	res, err := s.bus.Dispatch(ctx, buyItemCmd{Name: name})
	if err != nil {
		return Purchase{}, err
	}
	return res.(Purchase), nil
}

// ItemStatus lists all items with price and remaining amount.
func (s *Service) ItemStatus(ctx context.Context) ([]ItemView, error) {
	res, err := s.bus.Ask(ctx, itemStatusQry{})
	if err != nil {
		return nil, err
	}
	return res.([]ItemView), nil
}

// ServiceItemUpdate sets the item's price and/or amount. At least one field
// must be present.
func (s *Service) ServiceItemUpdate(ctx context.Context, name string, price *model.Cents, amount *int) (ItemView, error) {
	res, err := s.bus.Dispatch(ctx, updateItemCmd{Name: name, Price: price, Amount: amount})
	if err != nil {
		return ItemView{}, err
	}
	return res.(ItemView), nil
}

// ServiceCoinUpdate sets the machine stock count for one denomination.
func (s *Service) ServiceCoinUpdate(ctx context.Context, d model.Denomination, amount int) (coins.CoinCount, error) {
	res, err := s.bus.Dispatch(ctx, restockCoinCmd{Coin: d, Amount: amount})
	if err != nil {
		return coins.CoinCount{}, err
	}
	return res.(coins.CoinCount), nil
}

// ServiceStatus reports pocket, machine stock, and catalog in one consistent
// snapshot.
func (s *Service) ServiceStatus(ctx context.Context) (StatusView, error) {
	res, err := s.bus.Ask(ctx, machineStatusQry{})
	if err != nil {
		return StatusView{}, err
	}
	return res.(StatusView), nil
}

// Flush persists the current snapshot, used on clean shutdown.
func (s *Service) Flush(ctx context.Context) error {
	_, err := s.bus.Dispatch(ctx, flushCmd{})
	return err
}

// Metrics exposes the dispatcher counters.
func (s *Service) Metrics() (dispatched, failed, queried uint64) {
	return s.bus.Metrics()
}
