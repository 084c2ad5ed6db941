package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session token lifetimes. Dashboard sessions are short; game-client session
// tokens live longer because the launcher reuses them between play sessions.
const (
	DashboardSessionTTL = 24 * time.Hour
	GameSessionTTL      = 7 * 24 * time.Hour
)

// ErrInvalidToken covers every verification failure: bad signature, expiry,
// malformed input. Callers should not distinguish further.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the session token payload: subject and expiry via
// RegisteredClaims, plus the account role.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Manager issues and verifies HS256 session tokens with an injected signing
// key. There is exactly one Manager per process, constructed from config.
type Manager struct {
	secret []byte
}

func NewManager(secret []byte) *Manager {
	return &Manager{secret: secret}
}

// Issue signs a session token for the given subject and role.
func (m *Manager) Issue(subject, role string, ttl time.Duration) (string, error) {
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Parse verifies signature and expiry and returns the claims.
func (m *Manager) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
