package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rotisserie/eris"
)

// Issuer is stamped on every operator token and required when parsing.
const Issuer = "lead-discovery"

var (
	errEmptySecret   = eris.New("jwt secret must not be empty")
	errSigningMethod = eris.New("unexpected signing method")
	errInvalidClaims = eris.New("invalid token claims")
)

// Claims is the payload carried by operator access tokens.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Role  string `json:"role"`
}

// JWTManager issues and verifies HMAC signed operator tokens.
type JWTManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTManager constructs a manager with the given secret and token lifetime.
// A non-positive ttl falls back to 24 hours.
func NewJWTManager(secret string, ttl time.Duration) *JWTManager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &JWTManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// TTL returns the lifetime applied to issued tokens.
func (m *JWTManager) TTL() time.Duration {
	return m.ttl
}

// GenerateToken signs an access token for the operator identified by subject.
func (m *JWTManager) GenerateToken(subject, email, role string) (string, error) {
	if len(m.secret) == 0 {
		return "", errEmptySecret
	}

	issuedAt := m.now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
		},
		Email: email,
		Role:  role,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", eris.Wrap(err, "sign token")
	}
	return signed, nil
}

// ParseToken verifies signature, issuer and expiry and returns the claims.
func (m *JWTManager) ParseToken(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errSigningMethod
		}
		return m.secret, nil
	}, jwt.WithIssuer(Issuer), jwt.WithTimeFunc(m.now))
	if err != nil {
		return nil, eris.Wrap(err, "parse token")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errInvalidClaims
	}
	return claims, nil
}
