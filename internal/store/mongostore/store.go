package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"finboard/internal/core"
	"finboard/internal/store"
)

// collection is the subset of *mongo.Collection the store uses.
type collection interface {
	Find(ctx context.Context, filter any, opts ...*options.FindOptions) (*mongo.Cursor, error)
	InsertOne(ctx context.Context, document any, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
	FindOneAndUpdate(ctx context.Context, filter any, update any, opts ...*options.FindOneAndUpdateOptions) *mongo.SingleResult
	DeleteOne(ctx context.Context, filter any, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error)
}

type (
	transactionDoc struct {
		ID          primitive.ObjectID `bson:"_id,omitempty"`
		Amount      float64            `bson:"amount"`
		Description string             `bson:"description"`
		Category    string             `bson:"category"`
		Type        string             `bson:"type"`
		Date        string             `bson:"date"`
		CreatedAt   time.Time          `bson:"createdAt"`
		UpdatedAt   time.Time          `bson:"updatedAt"`
	}

	budgetDoc struct {
		ID        primitive.ObjectID `bson:"_id,omitempty"`
		Category  string             `bson:"category"`
		Month     string             `bson:"month"`
		Amount    float64            `bson:"amount"`
		CreatedAt time.Time          `bson:"createdAt"`
		UpdatedAt time.Time          `bson:"updatedAt"`
	}
)

func (d transactionDoc) toCore() core.Transaction {
	return core.Transaction{
		ID:          d.ID.Hex(),
		Amount:      core.MoneyFromFloat(d.Amount),
		Description: d.Description,
		Category:    d.Category,
		Type:        core.TransactionType(d.Type),
		Date:        d.Date,
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
}

func (d budgetDoc) toCore() core.Budget {
	return core.Budget{
		ID:        d.ID.Hex(),
		Category:  d.Category,
		Month:     d.Month,
		Amount:    core.MoneyFromFloat(d.Amount),
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

// Store implements store.Store on top of the transactions and budgets
// collections.
type Store struct {
	acc         *Accessor
	collections func(ctx context.Context) (transactions, budgets collection, err error)
}

func New(acc *Accessor) *Store {
	return &Store{
		acc: acc,
		collections: func(ctx context.Context) (collection, collection, error) {
			db, err := acc.Database(ctx)
			if err != nil {
				return nil, nil, err
			}
			return db.Collection(TransactionsCollection), db.Collection(BudgetsCollection), nil
		},
	}
}

func (s *Store) Ping(ctx context.Context) error { return s.acc.Ping(ctx) }

func (s *Store) transactions(ctx context.Context) (collection, error) {
	c, _, err := s.collections(ctx)
	return c, err
}

func (s *Store) budgets(ctx context.Context) (collection, error) {
	_, c, err := s.collections(ctx)
	return c, err
}

// objectID parses id; malformed ids cannot match any record.
func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, store.ErrNotFound
	}
	return oid, nil
}

func (s *Store) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	coll, err := s.transactions(ctx)
	if err != nil {
		return nil, err
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "createdAt", Value: -1}})
	cur, err := coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find transactions: %w", err)
	}
	var docs []transactionDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode transactions: %w", err)
	}
	out := make([]core.Transaction, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toCore())
	}
	return out, nil
}

func (s *Store) InsertTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	coll, err := s.transactions(ctx)
	if err != nil {
		return core.Transaction{}, err
	}
	doc := transactionDoc{
		ID:          primitive.NewObjectID(),
		Amount:      t.Amount.Float64(),
		Description: t.Description,
		Category:    t.Category,
		Type:        string(t.Type),
		Date:        t.Date,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if _, err := coll.InsertOne(ctx, doc); err != nil {
		return core.Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}
	t.ID = doc.ID.Hex()
	return t, nil
}

func (s *Store) ReplaceTransaction(ctx context.Context, id string, t core.Transaction) (core.Transaction, error) {
	oid, err := objectID(id)
	if err != nil {
		return core.Transaction{}, err
	}
	coll, err := s.transactions(ctx)
	if err != nil {
		return core.Transaction{}, err
	}
	update := bson.M{"$set": bson.M{
		"amount":      t.Amount.Float64(),
		"description": t.Description,
		"category":    t.Category,
		"type":        string(t.Type),
		"date":        t.Date,
		"updatedAt":   t.UpdatedAt,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc transactionDoc
	err = coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return core.Transaction{}, store.ErrNotFound
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("update transaction %s: %w", id, err)
	}
	return doc.toCore(), nil
}

func (s *Store) DeleteTransaction(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	coll, err := s.transactions(ctx)
	if err != nil {
		return err
	}
	res, err := coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete transaction %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) ListBudgets(ctx context.Context, month string) ([]core.Budget, error) {
	coll, err := s.budgets(ctx)
	if err != nil {
		return nil, err
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := coll.Find(ctx, bson.M{"month": month}, opts)
	if err != nil {
		return nil, fmt.Errorf("find budgets: %w", err)
	}
	var docs []budgetDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode budgets: %w", err)
	}
	out := make([]core.Budget, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toCore())
	}
	return out, nil
}

// UpsertBudget is a single atomic findOneAndUpdate keyed on (category, month).
func (s *Store) UpsertBudget(ctx context.Context, b core.Budget) (core.Budget, error) {
	coll, err := s.budgets(ctx)
	if err != nil {
		return core.Budget{}, err
	}
	filter := bson.M{"category": b.Category, "month": b.Month}
	update := bson.M{
		"$set":         bson.M{"amount": b.Amount.Float64(), "updatedAt": b.UpdatedAt},
		"$setOnInsert": bson.M{"createdAt": b.CreatedAt},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var doc budgetDoc
	if err := coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		return core.Budget{}, fmt.Errorf("upsert budget %s/%s: %w", b.Category, b.Month, err)
	}
	return doc.toCore(), nil
}
