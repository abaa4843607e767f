package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Mongo is a Repository over one MongoDB collection. The "id" column is
// stored as the document _id.
type Mongo struct {
	coll   *mongo.Collection
	unique []string
}

// MongoOption configures a Mongo repository.
type MongoOption func(*Mongo)

// WithUniqueIndex declares columns that EnsureIndexes backs with unique
// indexes. Duplicate key errors surface as ErrConflict.
func WithUniqueIndex(columns ...string) MongoOption {
	return func(m *Mongo) {
		m.unique = append(m.unique, columns...)
	}
}

func NewMongo(coll *mongo.Collection, opts ...MongoOption) *Mongo {
	m := &Mongo{coll: coll}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// EnsureIndexes creates the unique indexes and the created_at index used
// for ordering. It is idempotent.
func (m *Mongo) EnsureIndexes(ctx context.Context) error {
	models := []mongo.IndexModel{{Keys: bson.D{{Key: colCreatedAt, Value: 1}}}}
	for _, col := range m.unique {
		models = append(models, mongo.IndexModel{
			Keys:    bson.D{{Key: col, Value: 1}},
			Options: options.Index().SetUnique(true),
		})
	}
	if _, err := m.coll.Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("failed to create indexes on %s: %w", m.coll.Name(), err)
	}
	return nil
}

func (m *Mongo) FindBy(ctx context.Context, column string, value any) ([]Record, error) {
	return m.find(ctx, bson.D{{Key: field(column), Value: value}})
}

func (m *Mongo) FindIn(ctx context.Context, column string, values []any) ([]Record, error) {
	if len(values) == 0 {
		return nil, nil
	}
	return m.find(ctx, bson.D{{Key: field(column), Value: bson.D{{Key: "$in", Value: values}}}})
}

func (m *Mongo) Get(ctx context.Context, id string) (Record, error) {
	var doc bson.M
	err := m.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&doc)
	if err != nil {
		return nil, classifyMongo(err)
	}
	return fromDocument(doc), nil
}

func (m *Mongo) List(ctx context.Context) ([]Record, error) {
	return m.find(ctx, bson.D{})
}

func (m *Mongo) Insert(ctx context.Context, rec Record) error {
	doc, err := toDocument(rec)
	if err != nil {
		return err
	}
	if _, err := m.coll.InsertOne(ctx, doc); err != nil {
		return classifyMongo(err)
	}
	return nil
}

func (m *Mongo) Update(ctx context.Context, id string, changes Record) (Record, error) {
	set := bson.M{}
	for k, v := range withoutID(changes) {
		set[k] = v
	}

	var doc bson.M
	err := m.coll.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$set", Value: set}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return nil, classifyMongo(err)
	}
	return fromDocument(doc), nil
}

func (m *Mongo) Delete(ctx context.Context, id string) error {
	res, err := m.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return classifyMongo(err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *Mongo) find(ctx context.Context, filter bson.D) ([]Record, error) {
	cur, err := m.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: colCreatedAt, Value: 1}}))
	if err != nil {
		return nil, classifyMongo(err)
	}

	var docs []bson.M
	if err := cur.All(ctx, &docs); err != nil {
		return nil, classifyMongo(err)
	}

	out := make([]Record, len(docs))
	for i, doc := range docs {
		out[i] = fromDocument(doc)
	}
	return out, nil
}

const colCreatedAt = "created_at"

func field(column string) string {
	if column == "id" {
		return "_id"
	}
	return column
}

func toDocument(rec Record) (bson.M, error) {
	id, ok := rec["id"].(string)
	if !ok || id == "" {
		return nil, ErrMissingID
	}

	doc := bson.M{"_id": id}
	for k, v := range withoutID(rec) {
		doc[k] = v
	}
	return doc, nil
}

func fromDocument(doc bson.M) Record {
	rec := make(Record, len(doc))
	for k, v := range doc {
		if k == "_id" {
			k = "id"
		}
		rec[k] = fromBSON(v)
	}
	return rec
}

// fromBSON converts driver types to the plain Go values the validator and
// the use-cases expect.
func fromBSON(v any) any {
	switch t := v.(type) {
	case bson.D:
		out := make(map[string]any, len(t))
		for _, e := range t {
			out[e.Key] = fromBSON(e.Value)
		}
		return out
	case bson.M:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = fromBSON(item)
		}
		return out
	case bson.A:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = fromBSON(item)
		}
		return out
	case bson.DateTime:
		return t.Time().UTC()
	case int32:
		return int64(t)
	default:
		return v
	}
}

func classifyMongo(err error) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return errors.Join(ErrConflict, err)
	default:
		return err
	}
}
