package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// SessionCookieName is the cookie the web client sends on every request
	SessionCookieName = "token"
	// SessionDuration is 7 days
	SessionDuration = 7 * 24 * time.Hour
	// RevokedSessionKeyPrefix is the Redis key prefix for logged-out token ids
	RevokedSessionKeyPrefix = "revoked_session:"
)

var (
	ErrMissingToken = errors.New("missing session token")
	ErrInvalidToken = errors.New("invalid session token")
)

// SessionClaims is the payload of a session token.
type SessionClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// Principal is the verified caller attached to the request context.
type Principal struct {
	Email     string
	TokenID   string
	ExpiresAt time.Time
}

// RevocationStore remembers token ids that were logged out before they expired.
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// SessionManager issues and verifies HS256 session tokens. It never looks up the user,
// so a token stays valid until it expires or is revoked.
type SessionManager struct {
	secret     []byte
	duration   time.Duration
	production bool
	revoked    RevocationStore
	now        func() time.Time
}

// NewSessionManager creates a manager. revoked may be nil, in which case logout only
// clears the cookie.
func NewSessionManager(secret string, duration time.Duration, production bool, revoked RevocationStore) *SessionManager {
	if duration <= 0 {
		duration = SessionDuration
	}
	return &SessionManager{
		secret:     []byte(secret),
		duration:   duration,
		production: production,
		revoked:    revoked,
		now:        time.Now,
	}
}

// Issue signs a token for email.
func (m *SessionManager) Issue(email string) (string, error) {
	now := m.now()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.duration)),
		},
		Email: email,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign session: %w", err)
	}
	return token, nil
}

// Parse verifies signature, algorithm and expiry. It does not consult the revocation list.
func (m *SessionManager) Parse(tokenString string) (*Principal, error) {
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return m.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !token.Valid || claims.Email == "" {
		return nil, ErrInvalidToken
	}

	return &Principal{
		Email:     claims.Email,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Verify parses the token and rejects revoked ones.
func (m *SessionManager) Verify(ctx context.Context, tokenString string) (*Principal, error) {
	p, err := m.Parse(tokenString)
	if err != nil {
		return nil, err
	}
	if m.revoked == nil || p.TokenID == "" {
		return p, nil
	}

	revoked, err := m.revoked.IsRevoked(ctx, p.TokenID)
	if err != nil {
		return nil, fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return nil, ErrInvalidToken
	}
	return p, nil
}

// Revoke puts the token on the revocation list until it would have expired anyway.
// Invalid tokens are ignored.
func (m *SessionManager) Revoke(ctx context.Context, tokenString string) error {
	if m.revoked == nil {
		return nil
	}
	p, err := m.Parse(tokenString)
	if err != nil || p.TokenID == "" {
		return nil
	}
	return m.revoked.Revoke(ctx, p.TokenID, p.ExpiresAt)
}

// Cookie wraps token in the session cookie. Production cookies are sent cross-site
// over TLS only; development cookies stay same-site.
func (m *SessionManager) Cookie(token string) *http.Cookie {
	c := &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.duration / time.Second),
		HttpOnly: true,
	}
	m.applyMode(c)
	return c
}

// ClearCookie returns a cookie that makes the browser drop the session.
func (m *SessionManager) ClearCookie() *http.Cookie {
	c := &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
	}
	m.applyMode(c)
	return c
}

func (m *SessionManager) applyMode(c *http.Cookie) {
	if m.production {
		c.Secure = true
		c.SameSite = http.SameSiteNoneMode
	} else {
		c.SameSite = http.SameSiteStrictMode
	}
}

type principalKey struct{}

func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext returns the caller set by the session middleware.
func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*Principal)
	return p, ok && p != nil
}

// RedisRevocationStore keeps revoked token ids in Redis with a TTL matching the token.
type RedisRevocationStore struct {
	client *redis.Client
	now    func() time.Time
}

func NewRedisRevocationStore(client *redis.Client) *RedisRevocationStore {
	return &RedisRevocationStore{client: client, now: time.Now}
}

func (s *RedisRevocationStore) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := until.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	return s.client.Set(ctx, RevokedSessionKeyPrefix+tokenID, "1", ttl).Err()
}

func (s *RedisRevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, RevokedSessionKeyPrefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
