package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"golang.org/x/crypto/bcrypt"

	"github.com/octobees/lead-discovery/internal/auth"
)

var (
	// ErrInvalidCredentials is returned for unknown operators and wrong passwords.
	ErrInvalidCredentials = eris.New("invalid credentials")
	// ErrOperatorNotFound is returned by directories that do not know an email.
	ErrOperatorNotFound = eris.New("operator not found")
)

// Operator is an account allowed to run lead searches.
type Operator struct {
	ID           string
	Email        string
	PasswordHash string
	Role         string
}

// OperatorDirectory resolves operators by email.
type OperatorDirectory interface {
	FindByEmail(ctx context.Context, email string) (*Operator, error)
}

// StaticOperators is an OperatorDirectory backed by configuration.
type StaticOperators struct {
	byEmail map[string]Operator
}

// NewStaticOperators indexes the given operators by lower-cased email. Entries
// without an email or password hash are skipped; a missing ID is derived from
// the email so tokens keep a stable subject across restarts.
func NewStaticOperators(operators ...Operator) *StaticOperators {
	dir := &StaticOperators{byEmail: make(map[string]Operator, len(operators))}
	for _, op := range operators {
		email := strings.ToLower(strings.TrimSpace(op.Email))
		if email == "" || strings.TrimSpace(op.PasswordHash) == "" {
			continue
		}
		op.Email = email
		if op.ID == "" {
			op.ID = uuid.NewSHA1(uuid.NameSpaceURL, []byte("mailto:"+email)).String()
		}
		dir.byEmail[email] = op
	}
	return dir
}

// FindByEmail returns the operator registered for email.
func (d *StaticOperators) FindByEmail(_ context.Context, email string) (*Operator, error) {
	op, ok := d.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, ErrOperatorNotFound
	}
	return &op, nil
}

// Len reports how many operators are registered.
func (d *StaticOperators) Len() int {
	return len(d.byEmail)
}

// AuthService coordinates credential validation and token issuance.
type AuthService struct {
	operators OperatorDirectory
	jwt       *auth.JWTManager
}

// NewAuthService constructs a new AuthService.
func NewAuthService(operators OperatorDirectory, jwtManager *auth.JWTManager) *AuthService {
	return &AuthService{operators: operators, jwt: jwtManager}
}

// TokenTTL reports the lifetime of issued tokens.
func (s *AuthService) TokenTTL() time.Duration {
	return s.jwt.TTL()
}

// Login validates credentials and returns a JWT.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", eris.New("email and password must not be empty")
	}

	op, err := s.operators.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrOperatorNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(op.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(op.ID, op.Email, op.Role)
	if err != nil {
		return "", eris.Wrap(err, "issue token")
	}

	return token, nil
}
