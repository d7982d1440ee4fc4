// Package mongostore persists transactions and budgets in MongoDB.
package mongostore

import (
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	TransactionsCollection = "transactions"
	BudgetsCollection      = "budgets"
	DefaultDatabase        = "finance_tracker"
)

// Accessor owns the process-wide client. The connection is opened on first
// use and reused afterwards.
type Accessor struct {
	uri    string
	dbName string

	once   sync.Once
	client *mongo.Client
	err    error
}

func NewAccessor(uri, dbName string) *Accessor {
	if dbName == "" {
		dbName = DefaultDatabase
	}
	return &Accessor{uri: uri, dbName: dbName}
}

func (a *Accessor) connect(ctx context.Context) (*mongo.Client, error) {
	a.once.Do(func() {
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(a.uri))
		if err != nil {
			a.err = fmt.Errorf("connect to mongodb: %w", err)
			return
		}
		a.client = client
	})
	return a.client, a.err
}

// Database returns the configured database handle.
func (a *Accessor) Database(ctx context.Context) (*mongo.Database, error) {
	client, err := a.connect(ctx)
	if err != nil {
		return nil, err
	}
	return client.Database(a.dbName), nil
}

func (a *Accessor) Ping(ctx context.Context) error {
	client, err := a.connect(ctx)
	if err != nil {
		return err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("ping mongodb: %w", err)
	}
	return nil
}

// EnsureIndexes creates the indexes backing the list sort and the budget
// natural key. It is safe to call repeatedly.
func (a *Accessor) EnsureIndexes(ctx context.Context) error {
	db, err := a.Database(ctx)
	if err != nil {
		return err
	}
	_, err = db.Collection(TransactionsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "date", Value: -1}, {Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("create transactions index: %w", err)
	}
	_, err = db.Collection(BudgetsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "category", Value: 1}, {Key: "month", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create budgets index: %w", err)
	}
	return nil
}

// Close disconnects the client if it was ever opened.
func (a *Accessor) Close(ctx context.Context) error {
	if a.client == nil {
		return nil
	}
	return a.client.Disconnect(ctx)
}
