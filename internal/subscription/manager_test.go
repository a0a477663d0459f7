package subscription

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Gide-1400/fast-shipment-world/internal/remote"
	"github.com/Gide-1400/fast-shipment-world/internal/viewmodel"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

// fakeClient records queries and lets tests push to registered callbacks.
type fakeClient struct {
	mu        sync.Mutex
	queries   []remote.Query
	callbacks map[string]func([]remote.Document)
	openErr   error
	cancelled []string
}

func newFakeClient() *fakeClient {
	return &fakeClient{callbacks: make(map[string]func([]remote.Document))}
}

func (f *fakeClient) GetAll(ctx context.Context, q remote.Query) ([]remote.Document, error) {
	return nil, nil
}

func (f *fakeClient) Subscribe(ctx context.Context, q remote.Query, fn func([]remote.Document)) (remote.CancelFunc, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.openErr != nil {
		return nil, f.openErr
	}
	f.queries = append(f.queries, q)
	f.callbacks[q.Collection] = fn
	return func() {
		f.mu.Lock()
		f.cancelled = append(f.cancelled, q.Collection)
		delete(f.callbacks, q.Collection)
		f.mu.Unlock()
	}, nil
}

func (f *fakeClient) Insert(ctx context.Context, collection string, doc remote.Document) (string, error) {
	return "", errors.New("not implemented")
}

func (f *fakeClient) Update(ctx context.Context, collection, id string, fields remote.Document) error {
	return errors.New("not implemented")
}

func (f *fakeClient) push(collection string, docs []remote.Document) {
	f.mu.Lock()
	fn := f.callbacks[collection]
	f.mu.Unlock()
	if fn != nil {
		fn(docs)
	}
}

func TestSubscribeRequiresOwnerScope(t *testing.T) {
	m := NewManager(newFakeClient(), viewmodel.NewStore(), zap.NewNop())

	err := m.Subscribe(context.Background(), "shipments", "senderId", "")
	if !errors.Is(err, ErrMissingOwnerScope) {
		t.Fatalf("err = %v, want ErrMissingOwnerScope", err)
	}
	err = m.Subscribe(context.Background(), "shipments", "", "u1")
	if !errors.Is(err, ErrMissingOwnerScope) {
		t.Fatalf("err = %v, want ErrMissingOwnerScope", err)
	}
}

func TestSubscribeAddsOwnerPredicateAndOrder(t *testing.T) {
	client := newFakeClient()
	m := NewManager(client, viewmodel.NewStore(), zap.NewNop())

	if err := m.Subscribe(context.Background(), "shipments", "senderId", "u1"); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	if len(client.queries) != 1 {
		t.Fatalf("got %d queries, want 1", len(client.queries))
	}
	q := client.queries[0]
	if len(q.Predicates) == 0 || q.Predicates[0].Field != "senderId" || q.Predicates[0].Value != "u1" {
		t.Errorf("owner predicate missing or wrong: %+v", q.Predicates)
	}
	if q.Order == nil || q.Order.Field != "createdAt" || !q.Order.Desc {
		t.Errorf("ordering = %+v, want createdAt desc", q.Order)
	}
}

func TestPushReplacesCollection(t *testing.T) {
	client := newFakeClient()
	store := viewmodel.NewStore()
	m := NewManager(client, store, zap.NewNop())

	if err := m.Subscribe(context.Background(), "shipments", "senderId", "u1"); err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	client.push("shipments", []remote.Document{{"id": "a"}})
	client.push("shipments", []remote.Document{{"id": "b"}, {"id": "c"}})

	snap := store.Get("shipments")
	if len(snap.Docs) != 2 {
		t.Fatalf("got %d docs, want the latest full set of 2", len(snap.Docs))
	}
}

func TestResubscribeCancelsPrevious(t *testing.T) {
	client := newFakeClient()
	m := NewManager(client, viewmodel.NewStore(), zap.NewNop())

	ctx := context.Background()
	if err := m.Subscribe(ctx, "shipments", "senderId", "u1"); err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if err := m.Subscribe(ctx, "shipments", "senderId", "u2"); err != nil {
		t.Fatalf("re-subscribe: %v", err)
	}

	if len(client.cancelled) != 1 || client.cancelled[0] != "shipments" {
		t.Errorf("previous subscription not cancelled: %v", client.cancelled)
	}
	if m.Active() != 1 {
		t.Errorf("Active = %d, want 1", m.Active())
	}
}

func TestResubscribeDiscardsStalePush(t *testing.T) {
	client := newFakeClient()
	store := viewmodel.NewStore()
	m := NewManager(client, store, zap.NewNop())

	ctx := context.Background()
	if err := m.Subscribe(ctx, "shipments", "senderId", "u1"); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	// a delivery from u1's query is in flight when the owner changes
	client.mu.Lock()
	stale := client.callbacks["shipments"]
	client.mu.Unlock()

	if err := m.Subscribe(ctx, "shipments", "senderId", "u2"); err != nil {
		t.Fatalf("re-subscribe: %v", err)
	}
	client.push("shipments", []remote.Document{{"id": "b", "senderId": "u2"}})

	stale([]remote.Document{{"id": "a", "senderId": "u1"}})

	snap := store.Get("shipments")
	if len(snap.Docs) != 1 || snap.Docs[0]["senderId"] != "u2" {
		t.Fatalf("stale delivery overwrote the re-scoped collection: %v", snap.Docs)
	}
}

func TestFailedOpenDegradesToStoreError(t *testing.T) {
	client := newFakeClient()
	client.openErr = errors.New("connection refused")
	store := viewmodel.NewStore()
	m := NewManager(client, store, zap.NewNop())

	err := m.Subscribe(context.Background(), "shipments", "senderId", "u1")
	if err == nil {
		t.Fatal("expected open error to surface")
	}
	snap := store.Get("shipments")
	if snap.Err == nil {
		t.Error("failed open not recorded on the collection")
	}
	if snap.Loaded {
		t.Error("failed open must not mark the collection loaded")
	}
}

func TestUnsubscribeAll(t *testing.T) {
	defer goleak.VerifyNone(t)

	client := newFakeClient()
	store := viewmodel.NewStore()
	m := NewManager(client, store, zap.NewNop())

	ctx := context.Background()
	if err := m.Subscribe(ctx, "shipments", "senderId", "u1"); err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if err := m.Subscribe(ctx, "offers", "shipmentOwnerId", "u1"); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	client.push("shipments", []remote.Document{{"id": "a"}})
	before := store.Version()

	// captured before teardown so the push bypasses the fake's own cleanup
	// and exercises the manager's guard
	client.mu.Lock()
	late := client.callbacks["shipments"]
	client.mu.Unlock()

	m.UnsubscribeAll()
	m.UnsubscribeAll() // idempotent

	if m.Active() != 0 {
		t.Errorf("Active = %d after teardown, want 0", m.Active())
	}
	if len(client.cancelled) != 2 {
		t.Errorf("cancelled %d subscriptions, want 2", len(client.cancelled))
	}

	// a push racing teardown is discarded
	late([]remote.Document{{"id": "late"}})
	if store.Version() != before {
		t.Error("late push mutated the store after teardown")
	}

	// and no new subscription may open on a dead manager
	if err := m.Subscribe(ctx, "shipments", "senderId", "u1"); err == nil {
		t.Error("subscribe succeeded after teardown")
	}
}
