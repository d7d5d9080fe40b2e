package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mmynk/groupspend/internal/models"
)

// Issuer is the iss claim of every session token.
const Issuer = "groupspend"

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrMissingToken = errors.New("authorization token required")
)

// Claims identify a member across requests. The subject is the user ID; the
// display name is the one group rosters show, so handlers can log and
// attribute actions without a user lookup.
type Claims struct {
	DisplayName string `json:"name"`
	Email       string `json:"email"`
	jwt.RegisteredClaims
}

// Member returns the identity carried by the token as a group member.
func (c *Claims) Member() models.Member {
	return models.Member{ID: c.Subject, DisplayName: c.DisplayName, Contact: c.Email}
}

// JWTManager issues and verifies HS256 session tokens.
type JWTManager struct {
	secretKey []byte
	ttl       time.Duration
	now       func() time.Time
	parser    *jwt.Parser
}

// NewJWTManager creates a manager signing with secretKey. Tokens expire ttl
// after they are issued.
func NewJWTManager(secretKey string, ttl time.Duration) *JWTManager {
	return &JWTManager{
		secretKey: []byte(secretKey),
		ttl:       ttl,
		now:       time.Now,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(Issuer),
			jwt.WithExpirationRequired(),
		),
	}
}

// Generate issues a session token for user.
func (m *JWTManager) Generate(user *models.User) (string, error) {
	member := user.AsMember()
	issued := m.now()
	claims := &Claims{
		DisplayName: member.DisplayName,
		Email:       member.Contact,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			Subject:   member.ID,
			ExpiresAt: jwt.NewNumericDate(issued.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(issued),
			NotBefore: jwt.NewNumericDate(issued),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secretKey)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Validate verifies a session token and returns its claims. Tokens signed
// with another algorithm or issued by someone else are rejected.
func (m *JWTManager) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := m.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return m.secretKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return claims, nil
}
