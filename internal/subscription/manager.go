// Package subscription bridges the remote store's push updates into a page's
// view model. One Manager lives per page; tearing the page down tears down
// every live query it opened before the next page opens its own.
package subscription

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Gide-1400/fast-shipment-world/internal/remote"
	"github.com/Gide-1400/fast-shipment-world/internal/viewmodel"
	"go.uber.org/zap"
)

// ErrMissingOwnerScope guards against the one bug this layer exists to make
// impossible: a shipments/offers/notifications query without an owner filter
// would leak other users' records, because the backend store enforces no
// authorization of its own.
var ErrMissingOwnerScope = errors.New("subscription missing owner scope")

type Manager struct {
	client remote.Client
	store  *viewmodel.Store
	log    *zap.Logger

	// mu guards cancels and closed. Pushes arrive on backend goroutines
	// (change streams, LISTEN loops), so the single-owner discipline of the
	// view model is enforced here rather than assumed.
	mu sync.Mutex

	// cancels is keyed by collection: re-subscribing a collection first
	// cancels the previous live query, so a page can re-scope after an auth
	// change without leaking subscriptions.
	cancels map[string]*liveQuery
	closed  bool
}

// liveQuery tracks one open subscription. cancelled is flipped under the
// manager lock before the backend cancel runs, so a delivery already in
// flight from the old query can never reach the store once a replacement
// exists.
type liveQuery struct {
	cancel    remote.CancelFunc
	cancelled bool
}

func NewManager(client remote.Client, store *viewmodel.Store, log *zap.Logger) *Manager {
	return &Manager{
		client:  client,
		store:   store,
		log:     log,
		cancels: make(map[string]*liveQuery),
	}
}

// Subscribe opens one owner-scoped live query and feeds every push into the
// view model as a wholesale replace. ownerField/ownerID form the mandatory
// owner predicate; an empty ownerID is rejected outright.
func (m *Manager) Subscribe(ctx context.Context, collection, ownerField, ownerID string, extra ...remote.Predicate) error {
	if ownerField == "" || ownerID == "" {
		return fmt.Errorf("%w: collection %q", ErrMissingOwnerScope, collection)
	}
	preds := append([]remote.Predicate{remote.Eq(ownerField, ownerID)}, extra...)
	return m.open(ctx, remote.Query{
		Collection: collection,
		Predicates: preds,
		Order:      &remote.OrderBy{Field: "createdAt", Desc: true},
	})
}

// SubscribePublic opens a live query without owner scoping. Only the landing
// page counters use this; dashboard data always goes through Subscribe.
func (m *Manager) SubscribePublic(ctx context.Context, collection string, preds ...remote.Predicate) error {
	return m.open(ctx, remote.Query{
		Collection: collection,
		Predicates: preds,
		Order:      &remote.OrderBy{Field: "createdAt", Desc: true},
	})
}

func (m *Manager) open(ctx context.Context, q remote.Query) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return fmt.Errorf("subscription manager already torn down (collection %q)", q.Collection)
	}
	if prev, ok := m.cancels[q.Collection]; ok {
		prev.cancelled = true
		delete(m.cancels, q.Collection)
		m.mu.Unlock()
		prev.cancel()
	} else {
		m.mu.Unlock()
	}

	collection := q.Collection
	lq := &liveQuery{}
	cancel, err := m.client.Subscribe(ctx, q, func(docs []remote.Document) {
		// A push that races teardown, or a delivery still in flight from
		// this query after a re-subscribe replaced it, must not touch the
		// store: the data may belong to a previous owner scope.
		m.mu.Lock()
		dead := m.closed || lq.cancelled
		m.mu.Unlock()
		if dead {
			return
		}
		m.store.ReplaceCollection(collection, docs)
	})
	if err != nil {
		// Recoverable: the page shows an empty state plus a notice. The
		// classified error is kept so the renderer knows which notice.
		err = remote.Classify(err)
		m.store.SetCollectionError(collection, err)
		m.log.Warn("live query failed to open",
			zap.String("collection", collection), zap.Error(err))
		return err
	}

	m.mu.Lock()
	if m.closed {
		// Teardown won the race; drop the fresh subscription immediately.
		lq.cancelled = true
		m.mu.Unlock()
		cancel()
		return nil
	}
	lq.cancel = cancel
	m.cancels[collection] = lq
	m.mu.Unlock()
	m.log.Debug("live query opened", zap.String("collection", collection))
	return nil
}

// UnsubscribeAll cancels every live query. Idempotent. After it returns, no
// late push from the backend can mutate the view model.
func (m *Manager) UnsubscribeAll() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	cancels := make([]remote.CancelFunc, 0, len(m.cancels))
	for collection, lq := range m.cancels {
		lq.cancelled = true
		cancels = append(cancels, lq.cancel)
		delete(m.cancels, collection)
	}
	m.mu.Unlock()

	for _, cancel := range cancels {
		cancel()
	}
	m.log.Debug("all live queries cancelled")
}

// Active reports the number of open subscriptions. Teardown tests assert it
// reaches zero.
func (m *Manager) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.cancels)
}
