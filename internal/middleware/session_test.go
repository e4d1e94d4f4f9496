package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AnshRaj112/goexplore-backend/internal/models"
	"github.com/AnshRaj112/goexplore-backend/internal/services"
	"github.com/AnshRaj112/goexplore-backend/internal/services/memstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(h http.Handler, token string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		r.AddCookie(&http.Cookie{Name: services.SessionCookieName, Value: token})
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	return rec
}

func message(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["message"].(string)
}

func TestRequireSession(t *testing.T) {
	sessions := services.NewSessionManager("secret", 0, false, nil)
	var seen string
	h := RequireSession(sessions)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, _ := services.PrincipalFromContext(r.Context())
		seen = p.Email
	}))

	rec := serve(h, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Unauthorized", message(t, rec))

	rec = serve(h, "garbage")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid token", message(t, rec))

	token, err := sessions.Issue("a@example.com")
	require.NoError(t, err)
	rec = serve(h, token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "a@example.com", seen)
}

func TestRequireAdmin(t *testing.T) {
	sessions := services.NewSessionManager("secret", 0, false, nil)
	store := memstore.New()
	ctx := context.Background()
	_, _, _ = store.Users().CreateIfAbsent(ctx, &models.User{Email: "admin@example.com", Role: models.RoleAdmin})
	_, _, _ = store.Users().CreateIfAbsent(ctx, &models.User{Email: "a@example.com", Role: models.RoleUser})

	h := RequireSession(sessions)(RequireAdmin(store.Users())(okHandler))

	for email, want := range map[string]int{
		"admin@example.com": http.StatusOK,
		"a@example.com":     http.StatusForbidden,
		"ghost@example.com": http.StatusUnauthorized,
	} {
		token, err := sessions.Issue(email)
		require.NoError(t, err)
		assert.Equal(t, want, serve(h, token).Code, email)
	}

	open := AdminIf(false, store.Users())(okHandler)
	assert.Equal(t, http.StatusOK, serve(open, "").Code)
}
