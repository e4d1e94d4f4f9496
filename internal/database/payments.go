package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/AnshRaj112/goexplore-backend/internal/common"
	"github.com/AnshRaj112/goexplore-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PaymentRepository struct {
	store     *Store
	payments  *mongo.Collection
	purchases *mongo.Collection
	now       func() time.Time
}

func NewPaymentRepository(s *Store) *PaymentRepository {
	return &PaymentRepository{
		store:     s,
		payments:  s.Collection(ColPayments),
		purchases: s.Collection(ColPurchases),
		now:       time.Now,
	}
}

// List returns payments newest first. An empty email lists every payment.
func (r *PaymentRepository) List(ctx context.Context, email string) ([]models.Payment, error) {
	filter := bson.M{}
	if email != "" {
		filter["email"] = email
	}
	return findAll[models.Payment](ctx, r.payments, filter, bson.D{{Key: "paidAt", Value: -1}})
}

// unpaid matches the purchase only while it has not been paid yet, so a repeated
// request modifies nothing.
func unpaid(purchaseID primitive.ObjectID) bson.M {
	return bson.M{"_id": purchaseID, "payment_status": bson.M{"$ne": models.PaymentStatusPaid}}
}

var markPaid = bson.M{"$set": bson.M{"payment_status": models.PaymentStatusPaid}}

// RecordForPurchase flips the purchase to paid and inserts p. Both writes commit
// together: inside a transaction when the deployment supports one, otherwise
// sequentially with the status flip reverted if the insert fails.
//
// It returns common.ErrNotFound when the purchase is missing or already paid and
// common.ErrConflict when p.TransactionID was used before.
func (r *PaymentRepository) RecordForPurchase(ctx context.Context, purchaseID primitive.ObjectID, p *models.Payment) (models.RecordResult, error) {
	p.ID = primitive.NewObjectID()
	p.PaidAt = r.now()

	if r.store.SupportsTransactions() {
		return r.recordInTransaction(ctx, purchaseID, p)
	}
	return r.recordSequential(ctx, purchaseID, p)
}

func (r *PaymentRepository) recordInTransaction(ctx context.Context, purchaseID primitive.ObjectID, p *models.Payment) (models.RecordResult, error) {
	session, err := r.store.client.StartSession()
	if err != nil {
		return models.RecordResult{}, fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	out, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		res, err := r.purchases.UpdateOne(sc, unpaid(purchaseID), markPaid)
		if err != nil {
			return nil, err
		}
		if res.ModifiedCount == 0 {
			return nil, common.ErrNotFound
		}
		if _, err := r.payments.InsertOne(sc, p); err != nil {
			return nil, mapErr(err)
		}
		return updateResult(res), nil
	})
	if err != nil {
		return models.RecordResult{}, err
	}
	return models.RecordResult{InsertedID: p.ID, Update: out.(models.UpdateResult)}, nil
}

func (r *PaymentRepository) recordSequential(ctx context.Context, purchaseID primitive.ObjectID, p *models.Payment) (models.RecordResult, error) {
	var before models.Purchase
	err := r.purchases.FindOneAndUpdate(ctx, unpaid(purchaseID), markPaid,
		options.FindOneAndUpdate().SetReturnDocument(options.Before),
	).Decode(&before)
	if err != nil {
		return models.RecordResult{}, mapErr(err)
	}

	if _, err := r.payments.InsertOne(ctx, p); err != nil {
		r.revertStatus(ctx, purchaseID, before.PaymentStatus)
		return models.RecordResult{}, mapErr(err)
	}
	return models.RecordResult{
		InsertedID: p.ID,
		Update:     models.UpdateResult{MatchedCount: 1, ModifiedCount: 1},
	}, nil
}

// revertStatus restores the purchase status captured before the flip. It runs even
// if the request context was cancelled.
func (r *PaymentRepository) revertStatus(ctx context.Context, purchaseID primitive.ObjectID, previous string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	update := bson.M{"$unset": bson.M{"payment_status": ""}}
	if previous != "" {
		update = bson.M{"$set": bson.M{"payment_status": previous}}
	}
	if _, err := r.purchases.UpdateOne(ctx, bson.M{"_id": purchaseID}, update); err != nil {
		slog.Error("failed to revert purchase payment status", "purchase_id", purchaseID.Hex(), "error", err)
	}
}

// UpdateStatus sets the status of a payment and returns the updated record.
func (r *PaymentRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Payment, error) {
	var p models.Payment
	err := r.payments.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&p)
	if err != nil {
		return nil, mapErr(err)
	}
	return &p, nil
}
