package database

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/AnshRaj112/goexplore-backend/internal/common"
	"github.com/AnshRaj112/goexplore-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// testStore connects to MONGO_TEST_URI (or localhost) using a throwaway database.
// Tests are skipped when no server is reachable.
func testStore(t *testing.T) *Store {
	t.Helper()

	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	s, err := Connect(ctx, uri, "goexplore_test")
	if err != nil {
		t.Skipf("MongoDB not available: %v", err)
	}

	bg := context.Background()
	require.NoError(t, s.Database().Drop(bg))
	require.NoError(t, s.EnsureIndexes(bg))

	t.Cleanup(func() {
		_ = s.Database().Drop(context.Background())
		_ = s.Disconnect(context.Background())
	})
	return s
}

func TestUserCreateIfAbsent(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	users := NewUserRepository(s)

	u := &models.User{Email: "a@example.com", Name: "A", Role: models.RoleUser, CreatedAt: time.Now()}
	id, created, err := users.CreateIfAbsent(ctx, u)
	require.NoError(t, err)
	assert.True(t, created)
	assert.False(t, id.IsZero())

	_, created, err = users.CreateIfAbsent(ctx, &models.User{Email: "a@example.com", Name: "Other", Role: models.RoleAdmin})
	require.NoError(t, err)
	assert.False(t, created)

	got, err := users.FindByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, "A", got.Name)
	assert.Equal(t, models.RoleUser, got.Role)
	assert.False(t, got.EmailVerified)

	all, err := users.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestUserUpsertFederated(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	users := NewUserRepository(s)

	_, created, err := users.UpsertFederated(ctx, &models.User{Email: "g@example.com", Name: "G", Role: models.RoleUser, CreatedAt: time.Now()})
	require.NoError(t, err)
	assert.True(t, created)

	_, created, err = users.UpsertFederated(ctx, &models.User{Email: "g@example.com", Name: "G2", PhotoURL: "p.png", Role: models.RoleUser})
	require.NoError(t, err)
	assert.False(t, created)

	got, err := users.FindByEmail(ctx, "g@example.com")
	require.NoError(t, err)
	assert.Equal(t, "G2", got.Name)
	assert.True(t, got.EmailVerified)
	assert.NotNil(t, got.LastLogin)

	res, err := users.SetRole(ctx, got.ID, models.RoleAdmin)
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.ModifiedCount)

	_, err = users.FindByEmail(ctx, "missing@example.com")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestPurchaseUniqueness(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	purchases := NewPurchaseRepository(s)

	_, err := purchases.Create(ctx, &models.Purchase{UserEmail: "a@example.com", PackageID: "p1", CreatedAt: time.Now()})
	require.NoError(t, err)

	_, err = purchases.Create(ctx, &models.Purchase{UserEmail: "a@example.com", PackageID: "p1", CreatedAt: time.Now()})
	assert.ErrorIs(t, err, common.ErrConflict)

	exists, err := purchases.Exists(ctx, "a@example.com", "p1")
	require.NoError(t, err)
	assert.True(t, exists)

	n, err := purchases.Count(ctx, "a@example.com")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestRecordForPurchase(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	purchases := NewPurchaseRepository(s)
	payments := NewPaymentRepository(s)

	purchaseID, err := purchases.Create(ctx, &models.Purchase{UserEmail: "a@example.com", PackageID: "p1", CreatedAt: time.Now()})
	require.NoError(t, err)

	_, err = payments.RecordForPurchase(ctx, primitive.NewObjectID(), &models.Payment{Email: "a@example.com", TransactionID: "tx-0"})
	assert.ErrorIs(t, err, common.ErrNotFound)

	res, err := payments.RecordForPurchase(ctx, purchaseID, &models.Payment{
		PackageID: purchaseID.Hex(), Email: "a@example.com", Amount: 120, PaymentMethod: "card", TransactionID: "tx-1",
	})
	require.NoError(t, err)
	assert.False(t, res.InsertedID.IsZero())
	assert.EqualValues(t, 1, res.Update.ModifiedCount)

	p, err := purchases.Get(ctx, purchaseID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, p.PaymentStatus)

	_, err = payments.RecordForPurchase(ctx, purchaseID, &models.Payment{Email: "a@example.com", TransactionID: "tx-2"})
	assert.ErrorIs(t, err, common.ErrNotFound)

	list, err := payments.List(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestRecordForPurchaseReusedTransactionID(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	purchases := NewPurchaseRepository(s)
	payments := NewPaymentRepository(s)

	first, err := purchases.Create(ctx, &models.Purchase{UserEmail: "a@example.com", PackageID: "p1", CreatedAt: time.Now()})
	require.NoError(t, err)
	second, err := purchases.Create(ctx, &models.Purchase{UserEmail: "a@example.com", PackageID: "p2", CreatedAt: time.Now()})
	require.NoError(t, err)

	_, err = payments.RecordForPurchase(ctx, first, &models.Payment{Email: "a@example.com", TransactionID: "tx-1"})
	require.NoError(t, err)

	_, err = payments.RecordForPurchase(ctx, second, &models.Payment{Email: "a@example.com", TransactionID: "tx-1"})
	assert.ErrorIs(t, err, common.ErrConflict)

	p, err := purchases.Get(ctx, second)
	require.NoError(t, err)
	assert.Empty(t, p.PaymentStatus)
}

func TestReviewAverage(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	reviews := NewReviewRepository(s)

	empty, err := reviews.Average(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, models.RatingSummary{}, empty)

	for _, rating := range []int{4, 5, 5} {
		_, err := reviews.Create(ctx, &models.Review{PackageID: "p1", UserEmail: "a@example.com", Rating: rating, CreatedAt: time.Now()})
		require.NoError(t, err)
	}

	sum, err := reviews.Average(ctx, "p1")
	require.NoError(t, err)
	assert.InDelta(t, 14.0/3.0, sum.AvgRating, 1e-9)
	assert.EqualValues(t, 3, sum.TotalReviews)

	list, err := reviews.List(ctx, "p1", "")
	require.NoError(t, err)
	require.Len(t, list, 3)

	updated, err := reviews.Update(ctx, list[0].ID, "changed", 1)
	require.NoError(t, err)
	assert.Equal(t, "changed", updated.Comment)

	deleted, err := reviews.Delete(ctx, list[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "p1", deleted.PackageID)

	_, err = reviews.Delete(ctx, list[0].ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestExperienceUpdateIgnoresUnknownFields(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	experiences := NewExperienceRepository(s)

	id, err := experiences.Create(ctx, &models.Experience{Title: "Alps", Image: "alps.png", CreatedAt: time.Now()})
	require.NoError(t, err)

	res, err := experiences.Update(ctx, id, map[string]interface{}{"title": "Dolomites", "_id": "ignored", "admin": true})
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.ModifiedCount)

	got, err := experiences.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Dolomites", got.Title)
	assert.Equal(t, id, got.ID)
}

func TestEnsureIndexesReportsEveryFailure(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	require.NoError(t, s.Database().Drop(ctx))

	users := s.Collection(ColUsers)
	for i := 0; i < 2; i++ {
		_, err := users.InsertOne(ctx, models.User{ID: primitive.NewObjectID(), Email: "dup@example.com"})
		require.NoError(t, err)
	}

	err := s.EnsureIndexes(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ColUsers)

	// Indexes after the failing one are still in place.
	purchases := NewPurchaseRepository(s)
	_, err = purchases.Create(ctx, &models.Purchase{UserEmail: "a@example.com", PackageID: "p1", CreatedAt: time.Now()})
	require.NoError(t, err)
	_, err = purchases.Create(ctx, &models.Purchase{UserEmail: "a@example.com", PackageID: "p1", CreatedAt: time.Now()})
	assert.ErrorIs(t, err, common.ErrConflict)
}

func TestRecordForPurchaseRevertsWithoutTransactions(t *testing.T) {
	s := testStore(t)
	s.transactions = false
	ctx := context.Background()
	purchases := NewPurchaseRepository(s)
	payments := NewPaymentRepository(s)

	first, err := purchases.Create(ctx, &models.Purchase{UserEmail: "a@example.com", PackageID: "p1", CreatedAt: time.Now()})
	require.NoError(t, err)
	second, err := purchases.Create(ctx, &models.Purchase{UserEmail: "a@example.com", PackageID: "p2", CreatedAt: time.Now()})
	require.NoError(t, err)

	res, err := payments.RecordForPurchase(ctx, first, &models.Payment{Email: "a@example.com", TransactionID: "tx-1"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.Update.ModifiedCount)

	_, err = payments.RecordForPurchase(ctx, second, &models.Payment{Email: "a@example.com", TransactionID: "tx-1"})
	assert.ErrorIs(t, err, common.ErrConflict)

	p, err := purchases.Get(ctx, second)
	require.NoError(t, err)
	assert.Empty(t, p.PaymentStatus)

	var raw bson.M
	require.NoError(t, s.Collection(ColPurchases).FindOne(ctx, bson.M{"_id": second}).Decode(&raw))
	assert.NotContains(t, raw, "payment_status")

	_, err = payments.RecordForPurchase(ctx, first, &models.Payment{Email: "a@example.com", TransactionID: "tx-2"})
	assert.ErrorIs(t, err, common.ErrNotFound)

	list, err := payments.List(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
