package remote

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

// PostgresClient stores every collection in a single JSONB documents table
// and builds the live-query push on LISTEN/NOTIFY: a row trigger notifies the
// collection name, and each notification re-runs the affected queries.
type PostgresClient struct {
	db       *sql.DB
	listener *pq.Listener
	log      *zap.Logger

	mu        sync.Mutex
	subs      map[int]*pgSub
	nextSubID int
	closed    bool
}

type pgSub struct {
	query Query
	fn    func([]Document)
}

const pgNotifyChannel = "documents_changed"

const pgSchema = `
CREATE TABLE IF NOT EXISTS documents (
    collection TEXT NOT NULL,
    id         TEXT NOT NULL,
    doc        JSONB NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    PRIMARY KEY (collection, id)
);

CREATE OR REPLACE FUNCTION documents_notify() RETURNS trigger AS $$
BEGIN
    PERFORM pg_notify('documents_changed', NEW.collection);
    RETURN NEW;
END;
$$ LANGUAGE plpgsql;

DROP TRIGGER IF EXISTS documents_changed_trigger ON documents;
CREATE TRIGGER documents_changed_trigger
AFTER INSERT OR UPDATE ON documents
FOR EACH ROW EXECUTE FUNCTION documents_notify();
`

func NewPostgresClient(connStr string, log *zap.Logger) (*PostgresClient, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, classifyPG(err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, classifyPG(err)
	}

	c := &PostgresClient{
		db:   db,
		log:  log,
		subs: make(map[int]*pgSub),
	}

	c.listener = pq.NewListener(connStr, time.Second, time.Minute, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			log.Warn("postgres listener event", zap.Int("event", int(ev)), zap.Error(err))
		}
	})
	if err := c.listener.Listen(pgNotifyChannel); err != nil {
		db.Close()
		return nil, classifyPG(err)
	}
	go c.notifyLoop()
	return c, nil
}

// EnsureSchema creates the documents table and change trigger.
func (c *PostgresClient) EnsureSchema(ctx context.Context) error {
	if _, err := c.db.ExecContext(ctx, pgSchema); err != nil {
		return classifyPG(err)
	}
	return nil
}

func (c *PostgresClient) Close() error {
	c.mu.Lock()
	c.closed = true
	c.subs = make(map[int]*pgSub)
	c.mu.Unlock()
	c.listener.Close()
	return c.db.Close()
}

// notifyLoop services LISTEN notifications. A nil notification means the
// connection was re-established; every live query refreshes in that case
// because changes may have been missed while disconnected.
func (c *PostgresClient) notifyLoop() {
	for n := range c.listener.Notify {
		collection := ""
		if n != nil {
			collection = n.Extra
		}
		c.refresh(collection)
	}
}

// refresh re-runs every live query on the named collection (all collections
// when empty) and delivers the full result sets.
func (c *PostgresClient) refresh(collection string) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	ids := make([]int, 0, len(c.subs))
	for id := range c.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	targets := make([]*pgSub, 0, len(ids))
	for _, id := range ids {
		sub := c.subs[id]
		if collection == "" || sub.query.Collection == collection {
			targets = append(targets, sub)
		}
	}
	c.mu.Unlock()

	for _, sub := range targets {
		docs, err := c.GetAll(context.Background(), sub.query)
		if err != nil {
			c.log.Warn("live query refresh failed",
				zap.String("collection", sub.query.Collection), zap.Error(err))
			continue
		}
		sub.fn(docs)
	}
}

func (c *PostgresClient) GetAll(ctx context.Context, q Query) ([]Document, error) {
	var (
		where = []string{"collection = $1"}
		args  = []any{q.Collection}
	)
	for _, p := range q.Predicates {
		switch p.Op {
		case OpEq:
			args = append(args, pgValue(p.Value))
			where = append(where, fmt.Sprintf("doc->>'%s' = $%d", p.Field, len(args)))
		case OpGte:
			args = append(args, pgValue(p.Value))
			where = append(where, fmt.Sprintf("doc->>'%s' >= $%d", p.Field, len(args)))
		case OpLte:
			args = append(args, pgValue(p.Value))
			where = append(where, fmt.Sprintf("doc->>'%s' <= $%d", p.Field, len(args)))
		case OpIn:
			values, _ := p.Value.([]string)
			args = append(args, pq.Array(values))
			where = append(where, fmt.Sprintf("doc->>'%s' = ANY($%d)", p.Field, len(args)))
		}
	}

	query := "SELECT doc FROM documents WHERE " + strings.Join(where, " AND ")
	if q.Order != nil {
		col := fmt.Sprintf("doc->>'%s'", q.Order.Field)
		if q.Order.Field == "createdAt" {
			col = "created_at" // indexed column, not the JSON copy
		}
		dir := "ASC"
		if q.Order.Desc {
			dir = "DESC"
		}
		query += fmt.Sprintf(" ORDER BY %s %s, id ASC", col, dir)
	}

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classifyPG(err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, classifyPG(err)
		}
		var doc Document
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, classifyPG(err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyPG(err)
	}
	return docs, nil
}

func (c *PostgresClient) Subscribe(ctx context.Context, q Query, fn func([]Document)) (CancelFunc, error) {
	initial, err := c.GetAll(ctx, q)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	id := c.nextSubID
	c.nextSubID++
	c.subs[id] = &pgSub{query: q, fn: fn}
	c.mu.Unlock()

	fn(initial)

	cancel := func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
	return cancel, nil
}

func (c *PostgresClient) Insert(ctx context.Context, collection string, doc Document) (string, error) {
	id, _ := doc["id"].(string)
	if id == "" {
		id = uuid.NewString()
	}
	stored := copyDoc(doc)
	stored["id"] = id
	createdAt, ok := stored["createdAt"].(time.Time)
	if !ok {
		createdAt = time.Now().UTC()
		stored["createdAt"] = createdAt
	}
	raw, err := json.Marshal(stored)
	if err != nil {
		return "", classifyPG(err)
	}
	_, err = c.db.ExecContext(ctx,
		`INSERT INTO documents (collection, id, doc, created_at) VALUES ($1, $2, $3, $4)`,
		collection, id, raw, createdAt)
	if err != nil {
		return "", classifyPG(err)
	}
	return id, nil
}

func (c *PostgresClient) Update(ctx context.Context, collection, id string, fields Document) error {
	raw, err := json.Marshal(fields)
	if err != nil {
		return classifyPG(err)
	}
	res, err := c.db.ExecContext(ctx,
		`UPDATE documents SET doc = doc || $3::jsonb WHERE collection = $1 AND id = $2`,
		collection, id, raw)
	if err != nil {
		return classifyPG(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return classifyPG(err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s/%s", ErrNotFound, collection, id)
	}
	return nil
}

// pgValue renders a predicate value the way JSONB text extraction does, so
// the SQL comparison matches the in-memory semantics.
func pgValue(v any) string {
	if t, ok := v.(time.Time); ok {
		return t.UTC().Format(time.RFC3339Nano)
	}
	return fmt.Sprint(v)
}

func classifyPG(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch {
		case pqErr.Code == "42501": // insufficient_privilege
			return fmt.Errorf("%w: %v", ErrPermissionDenied, err)
		case pqErr.Code.Class() == "28": // invalid authorization
			return fmt.Errorf("%w: %v", ErrUnauthenticated, err)
		case pqErr.Code.Class() == "08": // connection exception
			return fmt.Errorf("%w: %v", ErrNetworkUnavailable, err)
		}
	}
	return Classify(err)
}
