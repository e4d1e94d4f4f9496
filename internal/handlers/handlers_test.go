package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/AnshRaj112/goexplore-backend/internal/handlers"
	"github.com/AnshRaj112/goexplore-backend/internal/models"
	"github.com/AnshRaj112/goexplore-backend/internal/routes"
	"github.com/AnshRaj112/goexplore-backend/internal/services"
	"github.com/AnshRaj112/goexplore-backend/internal/services/memstore"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type testServer struct {
	t        *testing.T
	store    *memstore.Store
	sessions *services.SessionManager
	router   http.Handler
}

func newTestServer(t *testing.T, adminOnlyCatalog bool) *testServer {
	t.Helper()
	return newTestServerWithSessions(t, adminOnlyCatalog, services.NewSessionManager("test-secret", 0, false, nil))
}

func newTestServerWithSessions(t *testing.T, adminOnlyCatalog bool, sessions *services.SessionManager) *testServer {
	t.Helper()
	return buildTestServer(t, adminOnlyCatalog, sessions, nil)
}

func newTestServerWithIntents(t *testing.T, intents services.PaymentIntents) *testServer {
	t.Helper()
	return buildTestServer(t, false, services.NewSessionManager("test-secret", 0, false, nil), intents)
}

func buildTestServer(t *testing.T, adminOnlyCatalog bool, sessions *services.SessionManager, intents services.PaymentIntents) *testServer {
	t.Helper()
	store := memstore.New()
	cache := services.NewCacheService(nil, 0)

	h := handlers.New(handlers.Deps{
		Sessions:  sessions,
		Users:     store.Users(),
		Catalog:   services.NewCatalogService(store.Packages(), cache),
		Purchases: store.Purchases(),
		Bookmarks: store.Bookmarks(),
		Reviews:   services.NewReviewService(store.Reviews(), cache),
		Payments: services.NewPaymentService(services.PaymentDeps{
			Users:    store.Users(),
			Payments: store.Payments(),
			Intents:  intents,
		}),
		Experiences: store.Experiences(),
	})

	r := chi.NewRouter()
	r.Get("/health", h.Health)
	routes.SetupRoutes(r, h, adminOnlyCatalog)
	return &testServer{t: t, store: store, sessions: sessions, router: r}
}

func (s *testServer) token(email string) string {
	s.t.Helper()
	token, err := s.sessions.Issue(email)
	require.NoError(s.t, err)
	return token
}

func (s *testServer) addUser(email string, role models.Role) primitive.ObjectID {
	s.t.Helper()
	id, created, err := s.store.Users().CreateIfAbsent(context.Background(), &models.User{Email: email, Role: role})
	require.NoError(s.t, err)
	require.True(s.t, created)
	return id
}

func (s *testServer) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: services.SessionCookieName, Value: token})
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst))
}

func messageOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	decode(t, rec, &body)
	return body.Message
}

func TestIssueSession(t *testing.T) {
	s := newTestServer(t, false)

	rec := s.do(http.MethodPost, "/jwt", "", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Email required", messageOf(t, rec))

	rec = s.do(http.MethodPost, "/jwt", "", map[string]string{"email": "a@example.com"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, services.SessionCookieName, c.Name)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, c.SameSite)

	p, err := s.sessions.Parse(c.Value)
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", p.Email)
}

func TestLogoutClearsCookie(t *testing.T) {
	s := newTestServer(t, false)

	rec := s.do(http.MethodPost, "/logout", s.token("a@example.com"), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, services.SessionCookieName, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestLogoutRevokesToken(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	sessions := services.NewSessionManager("test-secret", 0, false, services.NewRedisRevocationStore(client))
	s := newTestServerWithSessions(t, false, sessions)
	s.addUser("a@example.com", models.RoleUser)
	token := s.token("a@example.com")

	rec := s.do(http.MethodGet, "/payments?email=a@example.com", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodPost, "/logout", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/payments?email=a@example.com", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid token", messageOf(t, rec))
}

func TestSessionGate(t *testing.T) {
	s := newTestServer(t, false)

	rec := s.do(http.MethodGet, "/payments?email=a@example.com", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Unauthorized", messageOf(t, rec))

	forged, err := services.NewSessionManager("wrong-secret", 0, false, nil).Issue("a@example.com")
	require.NoError(t, err)
	rec = s.do(http.MethodGet, "/payments?email=a@example.com", forged, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid token", messageOf(t, rec))
}

func TestCreateUserOnce(t *testing.T) {
	s := newTestServer(t, false)
	body := map[string]string{"email": "new@example.com", "name": "New"}

	rec := s.do(http.MethodPost, "/users", "", body)
	require.Equal(t, http.StatusOK, rec.Code)
	var created struct {
		InsertedID string `json:"insertedId"`
	}
	decode(t, rec, &created)
	assert.NotEmpty(t, created.InsertedID)

	rec = s.do(http.MethodPost, "/users", "", body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "User already exists", messageOf(t, rec))

	users, err := s.store.Users().List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, models.RoleUser, users[0].Role)
	assert.False(t, users[0].EmailVerified)
}

func TestGoogleUserUpsert(t *testing.T) {
	s := newTestServer(t, false)
	body := map[string]string{"email": "g@example.com", "name": "First"}

	rec := s.do(http.MethodPost, "/users/google", "", body)
	require.Equal(t, http.StatusOK, rec.Code)

	body["name"] = "Second"
	rec = s.do(http.MethodPost, "/users/google", "", body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Google user updated", messageOf(t, rec))

	u, err := s.store.Users().FindByEmail(context.Background(), "g@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Second", u.Name)
	assert.True(t, u.EmailVerified)
}

func TestUserUpdatesValidateInput(t *testing.T) {
	s := newTestServer(t, false)
	id := s.addUser("u@example.com", models.RoleUser)

	rec := s.do(http.MethodPatch, "/users/not-an-id", "", map[string]string{"coverImage": "c.png"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid user ID", messageOf(t, rec))

	rec = s.do(http.MethodPatch, "/users/"+id.Hex(), "", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Nothing updated", messageOf(t, rec))

	rec = s.do(http.MethodPatch, "/users/"+id.Hex(), "", map[string]string{"coverImage": "c.png"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodPut, "/users/verify", "", map[string]string{"email": "missing@example.com"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	token := s.token("u@example.com")
	rec = s.do(http.MethodPatch, "/users/role/"+id.Hex(), token, map[string]string{"role": "owner"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid role value", messageOf(t, rec))

	rec = s.do(http.MethodPatch, "/users/role/"+primitive.NewObjectID().Hex(), token, map[string]string{"role": "admin"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodPatch, "/users/role/"+id.Hex(), token, map[string]string{"role": "admin"})
	require.Equal(t, http.StatusOK, rec.Code)
	u, err := s.store.Users().FindByEmail(context.Background(), "u@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, u.Role)
}

func TestPaymentsVisibility(t *testing.T) {
	s := newTestServer(t, false)
	s.addUser("a@example.com", models.RoleUser)
	s.addUser("admin@example.com", models.RoleAdmin)

	now := time.Now()
	s.store.Payments().Seed(models.Payment{Email: "a@example.com", TransactionID: "t1", PaidAt: now.Add(-2 * time.Hour)})
	s.store.Payments().Seed(models.Payment{Email: "b@example.com", TransactionID: "t2", PaidAt: now.Add(-time.Hour)})
	s.store.Payments().Seed(models.Payment{Email: "a@example.com", TransactionID: "t3", PaidAt: now})

	userToken := s.token("a@example.com")

	rec := s.do(http.MethodGet, "/payments?email=b@example.com", userToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Forbidden access", messageOf(t, rec))

	rec = s.do(http.MethodGet, "/payments?email=a@example.com", userToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var own []models.Payment
	decode(t, rec, &own)
	require.Len(t, own, 2)
	assert.Equal(t, "t3", own[0].TransactionID)
	assert.Equal(t, "t1", own[1].TransactionID)

	rec = s.do(http.MethodGet, "/payments", s.token("admin@example.com"), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var all []models.Payment
	decode(t, rec, &all)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"t3", "t2", "t1"}, []string{all[0].TransactionID, all[1].TransactionID, all[2].TransactionID})

	rec = s.do(http.MethodGet, "/payments?email=ghost@example.com", s.token("ghost@example.com"), nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRecordPayment(t *testing.T) {
	s := newTestServer(t, false)
	token := s.token("a@example.com")
	ctx := context.Background()

	purchaseID, err := s.store.Purchases().Create(ctx, &models.Purchase{UserEmail: "a@example.com", PackageID: "pkg-1"})
	require.NoError(t, err)

	payment := func(id, txn string) map[string]interface{} {
		return map[string]interface{}{
			"packageId":     id,
			"email":         "a@example.com",
			"amount":        120.5,
			"paymentMethod": "card",
			"transactionId": txn,
		}
	}

	rec := s.do(http.MethodPost, "/payments", token, map[string]interface{}{"email": "a@example.com"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var invalid handlers.ErrorResponse
	decode(t, rec, &invalid)
	assert.ElementsMatch(t, []string{"packageId", "amount", "paymentMethod", "transactionId"}, invalid.Fields)

	rec = s.do(http.MethodPost, "/payments", token, payment(primitive.NewObjectID().Hex(), "pi_missing"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	none, err := s.store.Payments().List(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, none)

	rec = s.do(http.MethodPost, "/payments", token, payment(purchaseID.Hex(), "pi_1"))
	require.Equal(t, http.StatusOK, rec.Code)
	var res handlers.RecordPaymentResponse
	decode(t, rec, &res)
	assert.Equal(t, "Payment recorded successfully", res.Message)
	assert.False(t, res.InsertedID.IsZero())
	assert.Equal(t, res.InsertedID, res.PaymentResult.InsertedID)
	assert.Equal(t, int64(1), res.UpdateResult.ModifiedCount)

	purchase, err := s.store.Purchases().Get(ctx, purchaseID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, purchase.PaymentStatus)

	rec = s.do(http.MethodPost, "/payments", token, payment(purchaseID.Hex(), "pi_2"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Package not found or already paid", messageOf(t, rec))

	payments, err := s.store.Payments().List(ctx, "")
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, res.InsertedID, payments[0].ID)
}

func TestUpdatePaymentStatus(t *testing.T) {
	s := newTestServer(t, false)
	token := s.token("a@example.com")
	id := s.store.Payments().Seed(models.Payment{Email: "a@example.com", TransactionID: "t1", Status: "paid"})

	rec := s.do(http.MethodPatch, "/payments/bad", token, map[string]string{"status": "refunded"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPatch, "/payments/"+id.Hex(), token, map[string]string{"status": "refunded"})
	require.Equal(t, http.StatusOK, rec.Code)
	var p models.Payment
	decode(t, rec, &p)
	assert.Equal(t, "refunded", p.Status)
}

func TestPaymentIntentWithoutProcessor(t *testing.T) {
	s := newTestServer(t, false)

	rec := s.do(http.MethodPost, "/create-payment-intent", s.token("a@example.com"), map[string]int{"amountInCents": 1000})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

type intentsFunc func(ctx context.Context, amountCents int64) (string, error)

func (f intentsFunc) CreateIntent(ctx context.Context, amountCents int64) (string, error) {
	return f(ctx, amountCents)
}

func TestPaymentIntent(t *testing.T) {
	s := newTestServerWithIntents(t, intentsFunc(func(_ context.Context, amountCents int64) (string, error) {
		return fmt.Sprintf("pi_%d_secret", amountCents), nil
	}))
	token := s.token("a@example.com")

	rec := s.do(http.MethodPost, "/create-payment-intent", token, map[string]int{"amountInCents": 1000})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"clientSecret":"pi_1000_secret"}`, rec.Body.String())

	rec = s.do(http.MethodPost, "/create-payment-intent", token, map[string]int{"amountInCents": 0})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPaymentIntentProcessorFailureIsNotExposed(t *testing.T) {
	s := newTestServerWithIntents(t, intentsFunc(func(context.Context, int64) (string, error) {
		return "", errors.New("connection to api.stripe.com reset; key sk_live_XXXX rejected")
	}))

	rec := s.do(http.MethodPost, "/create-payment-intent", s.token("a@example.com"), map[string]int{"amountInCents": 1000})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to create payment intent", messageOf(t, rec))
	assert.NotContains(t, rec.Body.String(), "sk_live")
	assert.NotContains(t, rec.Body.String(), "stripe")
}

func TestPurchaseIsUniquePerUserAndPackage(t *testing.T) {
	s := newTestServer(t, false)
	token := s.token("a@example.com")
	body := map[string]string{"userEmail": "a@example.com", "packageId": "pkg-1", "packageTitle": "Bali"}

	rec := s.do(http.MethodPost, "/myPackage", token, body)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodPost, "/myPackage", token, body)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Already added", messageOf(t, rec))

	rec = s.do(http.MethodGet, "/myPackage/check?email=a@example.com&packageId=pkg-1", "", nil)
	assert.JSONEq(t, `{"exists":true}`, rec.Body.String())

	rec = s.do(http.MethodGet, "/myPackage/count/a@example.com", token, nil)
	assert.JSONEq(t, `{"count":1}`, rec.Body.String())

	rec = s.do(http.MethodGet, "/myPackage", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Email is required", messageOf(t, rec))
}

func TestBookmarkIsUniquePerUserAndPackage(t *testing.T) {
	s := newTestServer(t, false)
	token := s.token("a@example.com")
	body := map[string]string{"userEmail": "a@example.com", "packageId": "pkg-1"}

	require.Equal(t, http.StatusOK, s.do(http.MethodPost, "/bookmark", token, body).Code)
	rec := s.do(http.MethodPost, "/bookmark", token, body)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Already bookmarked", messageOf(t, rec))

	rec = s.do(http.MethodPost, "/bookmark", token, map[string]string{"userEmail": "a@example.com"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestInvalidIDsAreRejected(t *testing.T) {
	s := newTestServer(t, false)
	token := s.token("a@example.com")

	for _, tc := range []struct {
		method, path string
	}{
		{http.MethodGet, "/packages/xyz"},
		{http.MethodGet, "/myPackage/xyz"},
		{http.MethodGet, "/experiences/xyz"},
		{http.MethodDelete, "/myPackage/xyz"},
		{http.MethodDelete, "/bookmark/xyz"},
		{http.MethodPut, "/reviews/xyz"},
		{http.MethodDelete, "/reviews/xyz"},
		{http.MethodDelete, "/packages/xyz"},
	} {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rec := s.do(tc.method, tc.path, token, map[string]string{})
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}

	rec := s.do(http.MethodGet, "/packages/"+primitive.NewObjectID().Hex(), "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Package not found", messageOf(t, rec))
}

func TestReviewsFlow(t *testing.T) {
	s := newTestServer(t, false)
	review := func(rating int) map[string]interface{} {
		return map[string]interface{}{
			"packageId":    "pkg-1",
			"packageImage": "p.png",
			"userName":     "A",
			"userEmail":    "a@example.com",
			"userImage":    "a.png",
			"comment":      "Lovely",
			"rating":       rating,
		}
	}

	rec := s.do(http.MethodGet, "/reviews/average/pkg-1", "", nil)
	assert.JSONEq(t, `{"avgRating":0,"totalReviews":0}`, rec.Body.String())

	for _, bad := range []int{0, 6} {
		rec = s.do(http.MethodPost, "/reviews", "", review(bad))
		assert.Equal(t, http.StatusBadRequest, rec.Code, "rating %d", bad)
	}

	rec = s.do(http.MethodPost, "/reviews", "", review(3))
	require.Equal(t, http.StatusOK, rec.Code)
	var created handlers.InsertResponse
	decode(t, rec, &created)
	assert.True(t, created.Success)

	rec = s.do(http.MethodGet, "/reviews/average/pkg-1", "", nil)
	assert.JSONEq(t, `{"avgRating":3,"totalReviews":1}`, rec.Body.String())

	rec = s.do(http.MethodPost, "/reviews", "", review(4))
	require.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(http.MethodPost, "/reviews", "", review(4))
	require.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(http.MethodGet, "/reviews/average/pkg-1", "", nil)
	assert.JSONEq(t, `{"avgRating":3.7,"totalReviews":3}`, rec.Body.String())

	rec = s.do(http.MethodPut, "/reviews/"+created.InsertedID.Hex(), "", map[string]interface{}{"comment": "Meh", "rating": 9})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodDelete, "/reviews/"+created.InsertedID.Hex(), "", nil)
	assert.JSONEq(t, `{"deletedCount":1}`, rec.Body.String())
	rec = s.do(http.MethodDelete, "/reviews/"+created.InsertedID.Hex(), "", nil)
	assert.JSONEq(t, `{"deletedCount":0}`, rec.Body.String())
}

func TestCatalogWritesRequireAdminWhenEnabled(t *testing.T) {
	body := map[string]interface{}{"title": "Bali", "price": 999}

	open := newTestServer(t, false)
	open.addUser("a@example.com", models.RoleUser)
	rec := open.do(http.MethodPost, "/packages", open.token("a@example.com"), body)
	assert.Equal(t, http.StatusOK, rec.Code)

	guarded := newTestServer(t, true)
	guarded.addUser("a@example.com", models.RoleUser)
	guarded.addUser("admin@example.com", models.RoleAdmin)
	rec = guarded.do(http.MethodPost, "/packages", guarded.token("a@example.com"), body)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = guarded.do(http.MethodPost, "/packages", guarded.token("admin@example.com"), body)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = guarded.do(http.MethodPost, "/packages", guarded.token("admin@example.com"), map[string]interface{}{"price": 1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid package data", messageOf(t, rec))
}

func TestExperiences(t *testing.T) {
	s := newTestServer(t, false)
	token := s.token("a@example.com")

	rec := s.do(http.MethodPost, "/experiences", token, map[string]string{"title": "Hike"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing required fields", messageOf(t, rec))

	rec = s.do(http.MethodPost, "/experiences", token, map[string]string{"title": "Hike", "image": "h.png"})
	require.Equal(t, http.StatusOK, rec.Code)
	var created handlers.InsertResponse
	decode(t, rec, &created)

	other := primitive.NewObjectID().Hex()
	rec = s.do(http.MethodPatch, "/experiences/"+created.InsertedID.Hex(), token, map[string]string{"_id": other, "title": "Summit"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/experiences/"+created.InsertedID.Hex(), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var e models.Experience
	decode(t, rec, &e)
	assert.Equal(t, "Summit", e.Title)
	assert.Equal(t, created.InsertedID, e.ID)

	rec = s.do(http.MethodGet, "/experiences/"+other, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Experience not found", messageOf(t, rec))
}

func TestAdminOnlyRoutes(t *testing.T) {
	s := newTestServer(t, false)
	s.addUser("a@example.com", models.RoleUser)
	s.addUser("admin@example.com", models.RoleAdmin)

	rec := s.do(http.MethodGet, "/payments/stats", s.token("a@example.com"), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(http.MethodGet, "/payments/stats", s.token("admin@example.com"), nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHealthAndRoot(t *testing.T) {
	s := newTestServer(t, false)

	rec := s.do(http.MethodGet, "/", "", nil)
	assert.Equal(t, "Server side is running....", rec.Body.String())

	rec = s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, "OK", rec.Body.String())
}
