package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/taskboard/taskboard-api/internal/models"
)

var (
	// ErrTokenExpired is returned for tokens that were valid but are past
	// their expiry. Callers map this to a distinct response so clients can
	// prompt re-authentication instead of treating it as a bad token.
	ErrTokenExpired = errors.New("token has expired")
	// ErrTokenInvalid is returned for malformed, unsigned or tampered tokens.
	ErrTokenInvalid = errors.New("token is invalid")
)

// Claims is the identity payload embedded in issued tokens.
type Claims struct {
	UserID uint64      `json:"user_id"`
	Email  string      `json:"email"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

// Service issues and verifies signed, time-limited identity tokens.
type Service struct {
	secret []byte
	ttl    time.Duration
}

func NewService(secret string, ttl time.Duration) *Service {
	return &Service{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// TTL returns the configured token lifetime.
func (s *Service) TTL() time.Duration {
	return s.ttl
}

// Issue signs a token carrying the user's id, email and role at issuance time.
func (s *Service) Issue(user *models.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify parses and validates a token, returning the embedded claims.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	if !parsed.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
