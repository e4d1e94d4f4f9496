package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names shared with the existing Atlas data.
const (
	ColUsers       = "users"
	ColPackages    = "packages"
	ColPurchases   = "myPackage"
	ColBookmarks   = "bookmark"
	ColReviews     = "reviews"
	ColPayments    = "payments"
	ColExperiences = "experiences"
)

// Store owns the MongoDB client for the lifetime of the process. It is created once in
// main and handed to every repository.
type Store struct {
	client       *mongo.Client
	db           *mongo.Database
	transactions bool
}

func Connect(ctx context.Context, mongoURI, dbName string) (*Store, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(mongoURI)
	clientOptions.SetServerSelectionTimeout(10 * time.Second)
	clientOptions.SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))

	client, err := mongo.Connect(connectCtx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	pingCtx, pingCancel := context.WithTimeout(ctx, 10*time.Second)
	defer pingCancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	s := &Store{client: client, db: client.Database(dbName)}
	s.transactions = s.detectTransactions(pingCtx)
	return s, nil
}

// detectTransactions reports whether the deployment is a replica set or mongos;
// multi-document transactions are rejected by standalone servers.
func (s *Store) detectTransactions(ctx context.Context) bool {
	var hello struct {
		SetName string `bson:"setName"`
		Msg     string `bson:"msg"`
	}
	if err := s.client.Database("admin").RunCommand(ctx, bson.D{{Key: "hello", Value: 1}}).Decode(&hello); err != nil {
		slog.Warn("mongo hello failed; payment writes will not use transactions", "error", err)
		return false
	}
	return hello.SetName != "" || hello.Msg == "isdbgrid"
}

func (s *Store) SupportsTransactions() bool { return s.transactions }

func (s *Store) Collection(name string) *mongo.Collection {
	return s.db.Collection(name)
}

func (s *Store) Database() *mongo.Database { return s.db }

func (s *Store) Disconnect(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// EnsureIndexes creates the indexes the service relies on, including the unique keys
// that replace check-then-insert for users, purchases, bookmarks and payments. Every
// index is attempted; failures are returned together so one bad collection does not
// leave the others unprotected.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	type idx struct {
		col    string
		keys   bson.D
		unique bool
	}

	indexes := []idx{
		{ColUsers, bson.D{{Key: "email", Value: 1}}, true},

		{ColPurchases, bson.D{{Key: "userEmail", Value: 1}, {Key: "packageId", Value: 1}}, true},
		{ColPurchases, bson.D{{Key: "createdAt", Value: -1}}, false},

		{ColBookmarks, bson.D{{Key: "userEmail", Value: 1}, {Key: "packageId", Value: 1}}, true},
		{ColBookmarks, bson.D{{Key: "createdAt", Value: -1}}, false},

		{ColReviews, bson.D{{Key: "packageId", Value: 1}, {Key: "createdAt", Value: -1}}, false},
		{ColReviews, bson.D{{Key: "userEmail", Value: 1}}, false},

		{ColPayments, bson.D{{Key: "transactionId", Value: 1}}, true},
		{ColPayments, bson.D{{Key: "email", Value: 1}, {Key: "paidAt", Value: -1}}, false},
		{ColPayments, bson.D{{Key: "paidAt", Value: -1}}, false},

		{ColExperiences, bson.D{{Key: "createdAt", Value: -1}}, false},
	}

	var errs []error
	for _, i := range indexes {
		model := mongo.IndexModel{Keys: i.keys}
		if i.unique {
			model.Options = options.Index().SetUnique(true)
		}
		if _, err := s.Collection(i.col).Indexes().CreateOne(ctx, model); err != nil {
			errs = append(errs, fmt.Errorf("create index on %s: %w", i.col, err))
		}
	}
	return errors.Join(errs...)
}
