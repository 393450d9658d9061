package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/T69Chichass/TaxerPay-Backend/internal/model"
)

// Token errors. Expired tokens are distinguished from other invalid tokens
// only for logging; callers see the same 401 contract for both.
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// Claims are the verified contents of a bearer token.
type Claims struct {
	SubjectID  string
	Kind       model.Kind
	NaturalKey string
	IssuedAt   time.Time
	ExpiresAt  time.Time
}

// TokenManager issues and verifies signed bearer tokens. The signing key and
// lifetime are process-wide configuration, read-only after startup.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager creates a manager with the provided secret and token lifetime.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue produces a signed token for the principal. The subject is the
// principal's ID; the natural key is carried for informational use only.
func (t *TokenManager) Issue(p *model.Principal) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":         p.ID,
		"kind":        string(p.Kind),
		"natural_key": p.NaturalKey,
		"iat":         now.Unix(),
		"exp":         now.Add(t.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Verify checks the token's signature and expiry and returns its claims.
// Malformed tokens, bad signatures, and expired tokens all fail verification.
func (t *TokenManager) Verify(tokenString string) (*Claims, error) {
	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	sub, _ := mapClaims["sub"].(string)
	kind, _ := mapClaims["kind"].(string)
	if sub == "" || !model.Kind(kind).IsValid() {
		return nil, ErrInvalidToken
	}

	claims := &Claims{
		SubjectID: sub,
		Kind:      model.Kind(kind),
	}
	if naturalKey, ok := mapClaims["natural_key"].(string); ok {
		claims.NaturalKey = naturalKey
	}
	if iat, ok := mapClaims["iat"].(float64); ok {
		claims.IssuedAt = time.Unix(int64(iat), 0)
	}
	if exp, ok := mapClaims["exp"].(float64); ok {
		claims.ExpiresAt = time.Unix(int64(exp), 0)
	}

	return claims, nil
}
