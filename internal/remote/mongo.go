package remote

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoClient is the production Client: one MongoDB database where each
// marketplace collection is a Mongo collection of schemaless documents.
// Live queries ride on change streams; every change event triggers a full
// re-query so subscribers always receive the complete matching set.
type MongoClient struct {
	client *mongo.Client
	db     *mongo.Database
	log    *zap.Logger
}

func NewMongoClient(ctx context.Context, uri, database string, log *zap.Logger) (*MongoClient, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, classifyMongo(err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, classifyMongo(err)
	}
	return &MongoClient{client: client, db: client.Database(database), log: log}, nil
}

func (c *MongoClient) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}

func (c *MongoClient) GetAll(ctx context.Context, q Query) ([]Document, error) {
	filter := mongoFilter(q.Predicates)
	opts := options.Find()
	if q.Order != nil {
		dir := 1
		if q.Order.Desc {
			dir = -1
		}
		opts.SetSort(bson.D{{Key: q.Order.Field, Value: dir}})
	}
	cursor, err := c.db.Collection(q.Collection).Find(ctx, filter, opts)
	if err != nil {
		return nil, classifyMongo(err)
	}
	defer cursor.Close(ctx)

	var raw []bson.M
	if err := cursor.All(ctx, &raw); err != nil {
		return nil, classifyMongo(err)
	}
	docs := make([]Document, len(raw))
	for i, m := range raw {
		docs[i] = normalizeBSON(m)
	}
	return docs, nil
}

// Subscribe opens a change stream on the collection and re-runs the query on
// every event. The driver resumes dropped streams on its own; this layer only
// reports the error and keeps the last delivered set in place.
func (c *MongoClient) Subscribe(ctx context.Context, q Query, fn func([]Document)) (CancelFunc, error) {
	stream, err := c.db.Collection(q.Collection).Watch(ctx, mongo.Pipeline{})
	if err != nil {
		return nil, classifyMongo(err)
	}

	initial, err := c.GetAll(ctx, q)
	if err != nil {
		stream.Close(context.Background())
		return nil, err
	}
	fn(initial)

	streamCtx, cancelStream := context.WithCancel(ctx)
	go func() {
		defer stream.Close(context.Background())
		for stream.Next(streamCtx) {
			docs, err := c.GetAll(streamCtx, q)
			if err != nil {
				if streamCtx.Err() != nil {
					return
				}
				c.log.Warn("live query refresh failed",
					zap.String("collection", q.Collection), zap.Error(err))
				continue
			}
			fn(docs)
		}
	}()

	return func() { cancelStream() }, nil
}

func (c *MongoClient) Insert(ctx context.Context, collection string, doc Document) (string, error) {
	id, _ := doc["id"].(string)
	if id == "" {
		id = uuid.NewString()
	}
	stored := copyDoc(doc)
	stored["id"] = id
	stored["_id"] = id
	if _, ok := stored["createdAt"]; !ok {
		stored["createdAt"] = time.Now().UTC()
	}
	if _, err := c.db.Collection(collection).InsertOne(ctx, stored); err != nil {
		return "", classifyMongo(err)
	}
	return id, nil
}

func (c *MongoClient) Update(ctx context.Context, collection, id string, fields Document) error {
	res, err := c.db.Collection(collection).UpdateOne(ctx,
		bson.M{"_id": id}, bson.M{"$set": bson.M(fields)})
	if err != nil {
		return classifyMongo(err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: %s/%s", ErrNotFound, collection, id)
	}
	return nil
}

func mongoFilter(preds []Predicate) bson.M {
	filter := bson.M{}
	for _, p := range preds {
		switch p.Op {
		case OpEq:
			filter[p.Field] = p.Value
		case OpGte:
			filter[p.Field] = bson.M{"$gte": p.Value}
		case OpLte:
			filter[p.Field] = bson.M{"$lte": p.Value}
		case OpIn:
			filter[p.Field] = bson.M{"$in": p.Value}
		}
	}
	return filter
}

// normalizeBSON flattens driver-specific types so the rest of the client sees
// plain Go values regardless of which store produced the document.
func normalizeBSON(m bson.M) Document {
	out := make(Document, len(m))
	for k, v := range m {
		if k == "_id" {
			continue
		}
		out[k] = normalizeValue(v)
	}
	return out
}

func normalizeValue(v any) any {
	switch t := v.(type) {
	case primitive.DateTime:
		return t.Time().UTC()
	case primitive.ObjectID:
		return t.Hex()
	case primitive.A:
		arr := make([]any, len(t))
		for i, e := range t {
			arr[i] = normalizeValue(e)
		}
		return arr
	case bson.M:
		return normalizeBSON(t)
	default:
		return v
	}
}

// Mongo "Unauthorized" and "AuthenticationFailed" server codes.
const (
	mongoCodeUnauthorized = 13
	mongoCodeAuthFailed   = 18
)

func classifyMongo(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		switch cmdErr.Code {
		case mongoCodeUnauthorized:
			return fmt.Errorf("%w: %v", ErrPermissionDenied, err)
		case mongoCodeAuthFailed:
			return fmt.Errorf("%w: %v", ErrUnauthenticated, err)
		}
	}
	if mongo.IsTimeout(err) || mongo.IsNetworkError(err) {
		return fmt.Errorf("%w: %v", ErrNetworkUnavailable, err)
	}
	return Classify(err)
}
