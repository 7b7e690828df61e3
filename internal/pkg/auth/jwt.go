package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt"
)

var ErrNoToken = errors.New("no token in request")

type Claims struct {
	UserID uint `json:"user_id"`
	jwt.StandardClaims
}

// TokenManager signs and validates the HS256 access tokens handed out by
// /api/token and /api/register.
type TokenManager struct {
	key []byte
	ttl time.Duration
}

func NewTokenManager(key string) *TokenManager {
	return &TokenManager{
		key: []byte(key),
		ttl: 24 * time.Hour,
	}
}

func (m *TokenManager) Generate(userID uint) (string, error) {
	claims := &Claims{
		UserID: userID,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(m.ttl).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(m.key)
}

func (m *TokenManager) Validate(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (any, error) {
		return m.key, nil
	})

	if err != nil {
		return nil, err
	}

	if !tkn.Valid {
		return nil, jwt.ErrSignatureInvalid
	}

	return claims, nil
}

// FromRequest resolves the caller's claims from the Authorization header or,
// for websocket clients that cannot set headers, a token query parameter.
func (m *TokenManager) FromRequest(r *http.Request) (*Claims, error) {
	tokenStr := ""

	if header := r.Header.Get("Authorization"); header != "" {
		tokenStr = strings.TrimPrefix(header, "Bearer ")
	} else if q := r.URL.Query().Get("token"); q != "" {
		tokenStr = q
	}

	if tokenStr == "" {
		return nil, ErrNoToken
	}

	return m.Validate(tokenStr)
}
