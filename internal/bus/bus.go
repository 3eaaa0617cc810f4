// Package bus routes typed commands and queries to their single registered
// handler and serializes all mutation against one aggregate.
package bus

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
)

var (
	// ErrHandlerExists is returned when registering a second handler for a
	// message name.
	ErrHandlerExists = errors.New("handler already registered")
	// ErrNoHandler is returned when dispatching a message nobody handles.
	ErrNoHandler = errors.New("no handler registered")
)

// Command is a mutation message. Its name identifies the handler.
type Command interface {
	CommandName() string
}

// Query is a read-only message. Its name identifies the handler.
type Query interface {
	QueryName() string
}

// CommandHandler executes one command under the aggregate's exclusive lock.
type CommandHandler func(ctx context.Context, c Command) (any, error)

// QueryHandler answers one query under the aggregate's shared lock. It must
// not mutate aggregate state.
type QueryHandler func(ctx context.Context, q Query) (any, error)

// Dispatcher owns the aggregate lock. Commands run exclusively; queries run
// concurrently with each other and observe a consistent snapshot. Dispatch is
// synchronous: the call returns only when the handler has finished. There is
// no queueing and no retry.
type Dispatcher struct {
	mu       sync.RWMutex
	commands map[string]CommandHandler
	queries  map[string]QueryHandler

	dispatched atomic.Uint64
	failed     atomic.Uint64
	queried    atomic.Uint64
}

// New returns a Dispatcher with no handlers registered.
func New() *Dispatcher {
	return &Dispatcher{
		commands: make(map[string]CommandHandler),
		queries:  make(map[string]QueryHandler),
	}
}

// RegisterCommand binds a handler to a command name. Exactly one handler per
// name is allowed.
func (d *Dispatcher) RegisterCommand(name string, h CommandHandler) error {
	if _, ok := d.commands[name]; ok {
		return fmt.Errorf("%w: command %s", ErrHandlerExists, name)
	}
	d.commands[name] = h
	return nil
}

// RegisterQuery binds a handler to a query name.
func (d *Dispatcher) RegisterQuery(name string, h QueryHandler) error {
	if _, ok := d.queries[name]; ok {
		return fmt.Errorf("%w: query %s", ErrHandlerExists, name)
	}
	d.queries[name] = h
	return nil
}

// Dispatch runs the command's handler under the exclusive lock.
// Registration must be complete before the first Dispatch.
func (d *Dispatcher) Dispatch(ctx context.Context, c Command) (any, error) {
	h, ok := d.commands[c.CommandName()]
	if !ok {
		return nil, fmt.Errorf("%w: command %s", ErrNoHandler, c.CommandName())
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.dispatched.Add(1)
	res, err := h(ctx, c)
	if err != nil {
		d.failed.Add(1)
	}
	return res, err
}

// Ask runs the query's handler under the shared lock.
func (d *Dispatcher) Ask(ctx context.Context, q Query) (any, error) {
	h, ok := d.queries[q.QueryName()]
	if !ok {
		return nil, fmt.Errorf("%w: query %s", ErrNoHandler, q.QueryName())
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	d.queried.Add(1)
	return h(ctx, q)
}

// Metrics returns counters for observability.
func (d *Dispatcher) Metrics() (dispatched, failed, queried uint64) {
	return d.dispatched.Load(), d.failed.Load(), d.queried.Load()
}
