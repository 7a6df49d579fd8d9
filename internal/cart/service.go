package cart

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/electronicsstore/storefront/internal/catalog"
	pkgerrors "github.com/electronicsstore/storefront/pkg/errors"
)

const (
	OpAdd    = "add"
	OpRemove = "remove"
	OpUpdate = "update"
	OpClear  = "clear"
)

type productLookup interface {
	GetByID(ctx context.Context, id int64) (catalog.Product, error)
}

type transitionRecorder interface {
	CartTransition(op string)
}

// Snapshot is the cart plus totals recomputed right after a transition.
type Snapshot struct {
	Lines  State  `json:"lines"`
	Totals Totals `json:"totals"`
}

// NewSnapshot derives totals for state.
func NewSnapshot(state State) Snapshot {
	if state == nil {
		state = State{}
	}
	return Snapshot{Lines: state, Totals: ComputeTotals(state)}
}

// Empty reports whether the cart has no lines.
func (s Snapshot) Empty() bool {
	return len(s.Lines) == 0
}

// Service applies cart transitions to session-scoped carts.
type Service interface {
	Get(ctx context.Context, sessionID string) (Snapshot, error)
	Add(ctx context.Context, sessionID string, productID int64) (Snapshot, error)
	Remove(ctx context.Context, sessionID string, productID int64) (Snapshot, error)
	UpdateQuantity(ctx context.Context, sessionID string, productID int64, quantity int) (Snapshot, error)
	Clear(ctx context.Context, sessionID string) (Snapshot, error)
}

type service struct {
	store    Store
	products productLookup
	metrics  transitionRecorder
	locks    *sessionLocks
}

// NewService builds a cart service. metrics may be nil.
func NewService(store Store, products productLookup, metrics transitionRecorder) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if products == nil {
		return nil, fmt.Errorf("product lookup required")
	}
	return &service{
		store:    store,
		products: products,
		metrics:  metrics,
		locks:    newSessionLocks(),
	}, nil
}

func (s *service) Get(ctx context.Context, sessionID string) (Snapshot, error) {
	if err := validateSession(sessionID); err != nil {
		return Snapshot{}, err
	}
	state, err := s.load(ctx, sessionID)
	if err != nil {
		return Snapshot{}, err
	}
	return NewSnapshot(state), nil
}

func (s *service) Add(ctx context.Context, sessionID string, productID int64) (Snapshot, error) {
	if err := validateSession(sessionID); err != nil {
		return Snapshot{}, err
	}
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return Snapshot{}, err
	}
	return s.apply(ctx, sessionID, OpAdd, func(state State) State {
		return AddToCart(state, product)
	})
}

func (s *service) Remove(ctx context.Context, sessionID string, productID int64) (Snapshot, error) {
	if err := validateSession(sessionID); err != nil {
		return Snapshot{}, err
	}
	return s.apply(ctx, sessionID, OpRemove, func(state State) State {
		return RemoveFromCart(state, productID)
	})
}

func (s *service) UpdateQuantity(ctx context.Context, sessionID string, productID int64, quantity int) (Snapshot, error) {
	if err := validateSession(sessionID); err != nil {
		return Snapshot{}, err
	}
	return s.apply(ctx, sessionID, OpUpdate, func(state State) State {
		return UpdateQuantity(state, productID, quantity)
	})
}

func (s *service) Clear(ctx context.Context, sessionID string) (Snapshot, error) {
	if err := validateSession(sessionID); err != nil {
		return Snapshot{}, err
	}
	unlock := s.locks.lock(sessionID)
	defer unlock()

	if err := s.store.Delete(ctx, sessionID); err != nil {
		return Snapshot{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}
	s.record(OpClear)
	return NewSnapshot(nil), nil
}

// apply runs one transition under the session lock so events land in
// dispatch order.
func (s *service) apply(ctx context.Context, sessionID, op string, transition func(State) State) (Snapshot, error) {
	unlock := s.locks.lock(sessionID)
	defer unlock()

	state, err := s.load(ctx, sessionID)
	if err != nil {
		return Snapshot{}, err
	}
	next := transition(state)
	if err := s.store.Save(ctx, sessionID, next); err != nil {
		return Snapshot{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart")
	}
	s.record(op)
	return NewSnapshot(next), nil
}

func (s *service) load(ctx context.Context, sessionID string) (State, error) {
	state, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	return state, nil
}

func (s *service) record(op string) {
	if s.metrics != nil {
		s.metrics.CartTransition(op)
	}
}

func validateSession(sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	return nil
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

// sessionLocks hands out one mutex per session and forgets it once idle.
type sessionLocks struct {
	mu    sync.Mutex
	locks map[string]*sessionLock
}

func newSessionLocks() *sessionLocks {
	return &sessionLocks{locks: map[string]*sessionLock{}}
}

func (l *sessionLocks) lock(sessionID string) func() {
	l.mu.Lock()
	entry, ok := l.locks[sessionID]
	if !ok {
		entry = &sessionLock{}
		l.locks[sessionID] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()
		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, sessionID)
		}
		l.mu.Unlock()
	}
}
