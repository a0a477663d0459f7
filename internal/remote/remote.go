// Package remote abstracts the backend document store. The rest of the client
// only ever sees this interface; whether records live in MongoDB, Postgres or
// an in-memory map is a wiring decision made in main.
package remote

import "context"

// Document is one raw record as the backend delivers it.
type Document = map[string]any

// Op is a predicate operator. Predicates are conjunctive: a query matches a
// document only when every predicate holds.
type Op string

const (
	OpEq  Op = "=="
	OpGte Op = ">="
	OpLte Op = "<="
	OpIn  Op = "in"
)

type Predicate struct {
	Field string
	Op    Op
	Value any
}

// Eq is shorthand for the equality predicate, by far the most common.
func Eq(field string, value any) Predicate {
	return Predicate{Field: field, Op: OpEq, Value: value}
}

// In matches documents whose field equals any of the given values.
func In(field string, values ...string) Predicate {
	return Predicate{Field: field, Op: OpIn, Value: values}
}

// OrderBy orders a result set by a single field. The dashboards always order
// by createdAt descending; the stores must honour that so filtering layers
// never have to re-sort.
type OrderBy struct {
	Field string
	Desc  bool
}

// Query is one live or one-shot query against a named collection.
type Query struct {
	Collection string
	Predicates []Predicate
	Order      *OrderBy
}

// CancelFunc tears down one live subscription. Calling it more than once is
// harmless. A delivery already in flight when cancel is called may still
// invoke the callback; callers that must not observe it guard the callback
// themselves, the way the subscription manager does.
type CancelFunc func()

// Client is the backend document store surface.
//
// Subscribe delivers the FULL current matching set on every underlying
// change, not a diff, starting with one immediate delivery of the current
// state. Errors returned from any method are already classified into the
// taxonomy in errors.go.
type Client interface {
	GetAll(ctx context.Context, q Query) ([]Document, error)
	Subscribe(ctx context.Context, q Query, fn func([]Document)) (CancelFunc, error)
	Insert(ctx context.Context, collection string, doc Document) (string, error)
	Update(ctx context.Context, collection, id string, fields Document) error
}
