package remote

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryClient is an in-memory Client. It backs the tests and the demo
// binary, and doubles as the reference semantics for the real stores: every
// mutation pushes the full re-evaluated result set to each live subscription.
type MemoryClient struct {
	mu          sync.RWMutex
	collections map[string]map[string]Document
	subs        map[int]*memSub
	nextSubID   int
}

type memSub struct {
	query     Query
	fn        func([]Document)
	cancelled bool
}

func NewMemoryClient() *MemoryClient {
	return &MemoryClient{
		collections: make(map[string]map[string]Document),
		subs:        make(map[int]*memSub),
	}
}

func (m *MemoryClient) GetAll(ctx context.Context, q Query) ([]Document, error) {
	select {
	case <-ctx.Done():
		return nil, Classify(ctx.Err())
	default:
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.evaluate(q), nil
}

// Subscribe registers a live query. The current matching set is delivered
// once before Subscribe returns, then again after every mutation that touches
// the collection. Delivery is synchronous with the mutating call, which keeps
// test ordering deterministic.
func (m *MemoryClient) Subscribe(ctx context.Context, q Query, fn func([]Document)) (CancelFunc, error) {
	select {
	case <-ctx.Done():
		return nil, Classify(ctx.Err())
	default:
	}
	m.mu.Lock()
	id := m.nextSubID
	m.nextSubID++
	sub := &memSub{query: q, fn: fn}
	m.subs[id] = sub
	initial := m.evaluate(q)
	m.mu.Unlock()

	fn(initial)

	cancel := func() {
		m.mu.Lock()
		sub.cancelled = true
		delete(m.subs, id)
		m.mu.Unlock()
	}
	return cancel, nil
}

func (m *MemoryClient) Insert(ctx context.Context, collection string, doc Document) (string, error) {
	select {
	case <-ctx.Done():
		return "", Classify(ctx.Err())
	default:
	}
	m.mu.Lock()
	id, _ := doc["id"].(string)
	if id == "" {
		id = uuid.NewString()
	}
	stored := copyDoc(doc)
	stored["id"] = id
	if _, ok := stored["createdAt"]; !ok {
		stored["createdAt"] = time.Now().UTC()
	}
	coll := m.collections[collection]
	if coll == nil {
		coll = make(map[string]Document)
		m.collections[collection] = coll
	}
	coll[id] = stored
	deliveries := m.pending(collection)
	m.mu.Unlock()

	dispatch(deliveries)
	return id, nil
}

func (m *MemoryClient) Update(ctx context.Context, collection, id string, fields Document) error {
	select {
	case <-ctx.Done():
		return Classify(ctx.Err())
	default:
	}
	m.mu.Lock()
	coll := m.collections[collection]
	existing, ok := coll[id]
	if !ok {
		m.mu.Unlock()
		return fmt.Errorf("%w: %s/%s", ErrNotFound, collection, id)
	}
	for k, v := range fields {
		existing[k] = v
	}
	deliveries := m.pending(collection)
	m.mu.Unlock()

	dispatch(deliveries)
	return nil
}

type delivery struct {
	fn   func([]Document)
	docs []Document
}

// pending re-evaluates every live query on the collection. Caller holds the
// write lock; the callbacks run after it is released.
func (m *MemoryClient) pending(collection string) []delivery {
	var out []delivery
	ids := make([]int, 0, len(m.subs))
	for id := range m.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		sub := m.subs[id]
		if sub.cancelled || sub.query.Collection != collection {
			continue
		}
		out = append(out, delivery{fn: sub.fn, docs: m.evaluate(sub.query)})
	}
	return out
}

func dispatch(deliveries []delivery) {
	for _, d := range deliveries {
		d.fn(d.docs)
	}
}

func (m *MemoryClient) evaluate(q Query) []Document {
	var out []Document
	for _, doc := range m.collections[q.Collection] {
		if matches(doc, q.Predicates) {
			out = append(out, copyDoc(doc))
		}
	}
	sortDocs(out, q.Order)
	return out
}

func matches(doc Document, preds []Predicate) bool {
	for _, p := range preds {
		if !matchOne(doc, p) {
			return false
		}
	}
	return true
}

func matchOne(doc Document, p Predicate) bool {
	got, ok := doc[p.Field]
	if !ok {
		return false
	}
	switch p.Op {
	case OpEq:
		return fmt.Sprint(got) == fmt.Sprint(p.Value)
	case OpGte:
		return compareValues(got, p.Value) >= 0
	case OpLte:
		return compareValues(got, p.Value) <= 0
	case OpIn:
		values, _ := p.Value.([]string)
		for _, v := range values {
			if fmt.Sprint(got) == v {
				return true
			}
		}
		return false
	}
	return false
}

func compareValues(a, b any) int {
	if at, ok := a.(time.Time); ok {
		if bt, ok := b.(time.Time); ok {
			return at.Compare(bt)
		}
	}
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	if aok && bok {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		}
		return 0
	}
	as, bs := fmt.Sprint(a), fmt.Sprint(b)
	switch {
	case as < bs:
		return -1
	case as > bs:
		return 1
	}
	return 0
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// sortDocs orders by the requested field with id as tie-breaker so result
// order is stable between pushes.
func sortDocs(docs []Document, order *OrderBy) {
	if order == nil {
		sort.SliceStable(docs, func(i, j int) bool {
			return fmt.Sprint(docs[i]["id"]) < fmt.Sprint(docs[j]["id"])
		})
		return
	}
	sort.SliceStable(docs, func(i, j int) bool {
		c := compareValues(docs[i][order.Field], docs[j][order.Field])
		if c == 0 {
			return fmt.Sprint(docs[i]["id"]) < fmt.Sprint(docs[j]["id"])
		}
		if order.Desc {
			return c > 0
		}
		return c < 0
	})
}

func copyDoc(doc Document) Document {
	out := make(Document, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}
