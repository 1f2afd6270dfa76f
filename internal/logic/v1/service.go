package v1

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/crypto/bcrypt"

	"github.com/enhancify/auth-service/internal/core/domain"
	"github.com/enhancify/auth-service/middleware"
)

// AuthService implements the credential business rules: registration, login,
// and identity lookup. It depends on the repository interface and the token
// issuer (injected via constructor) and MUST NOT access the store driver
// directly.
type AuthService struct {
	users  domain.UserRepository
	tokens *TokenIssuer
	cost   int
}

// NewAuthService creates a new AuthService. cost is the bcrypt work factor
// used when hashing passwords at registration.
func NewAuthService(users domain.UserRepository, tokens *TokenIssuer, cost int) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		cost:   cost,
	}
}

// Register creates a new identity from the given credential pair.
// Returns ErrUserExists when the username is already taken. Registration
// does not imply an authenticated session: no token is issued here.
func (s *AuthService) Register(ctx context.Context, req domain.SignupRequest) error {
	ctx, span := middleware.StartSpan(ctx, "auth.register", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.String("username", req.Username),
	))
	defer span.End()

	existing, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("query user %q: %w", req.Username, err)
	}
	if existing != nil {
		span.SetAttributes(attribute.Bool("registration.success", false))
		return fmt.Errorf("register user %q: %w", req.Username, ErrUserExists)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("hash password: %w", err)
	}

	// The unique index backs up the existence check above: a concurrent
	// registration of the same username loses here and maps to the same
	// conflict outcome.
	userID, err := s.users.Insert(ctx, req.Username, string(hash))
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, domain.ErrDuplicateKey) {
			span.SetAttributes(attribute.Bool("registration.success", false))
			return fmt.Errorf("register user %q: %w", req.Username, ErrUserExists)
		}
		return fmt.Errorf("insert user: %w", err)
	}

	span.SetAttributes(
		attribute.String("user.id", userID),
		attribute.Bool("registration.success", true),
	)
	span.AddEvent("user.registered")

	return nil
}

// Login verifies the credential pair and returns a signed session token.
// Returns ErrUserNotFound for an unknown username and ErrInvalidCredentials
// for a wrong password. The two outcomes are deliberately distinguishable;
// the transport layer maps them to distinct statuses.
func (s *AuthService) Login(ctx context.Context, req domain.LoginRequest) (string, error) {
	ctx, span := middleware.StartSpan(ctx, "auth.login", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.String("username", req.Username),
	))
	defer span.End()

	user, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("query user %q: %w", req.Username, err)
	}
	if user == nil {
		span.SetAttributes(attribute.Bool("auth.success", false))
		span.AddEvent("authentication.failed")
		return "", fmt.Errorf("authenticate user %q: %w", req.Username, ErrUserNotFound)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		span.SetAttributes(attribute.Bool("auth.success", false))
		span.AddEvent("authentication.failed")
		return "", fmt.Errorf("authenticate user %q: %w", req.Username, ErrInvalidCredentials)
	}

	token, err := s.tokens.Issue(user.Username)
	if err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("issue token: %w", err)
	}

	span.SetAttributes(
		attribute.String("user.id", user.ID),
		attribute.Bool("auth.success", true),
	)
	span.AddEvent("user.authenticated")

	return token, nil
}

// GetUser fetches the identity record with the given store-assigned id.
// Returns ErrUserNotFound when the id does not resolve; callers must treat
// this as distinct from an authorization failure.
func (s *AuthService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	ctx, span := middleware.StartSpan(ctx, "auth.get_user", trace.WithAttributes(
		attribute.String("layer", "logic"),
	))
	defer span.End()

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("query user id %q: %w", id, err)
	}
	if user == nil {
		return nil, fmt.Errorf("lookup user id %q: %w", id, ErrUserNotFound)
	}

	span.SetAttributes(attribute.String("user.id", user.ID))
	return user, nil
}

// VerifyToken checks a bearer token and re-resolves the asserted username to
// a full identity record. Used by the access gate; every failure is a
// rejection, never a partially resolved identity.
func (s *AuthService) VerifyToken(ctx context.Context, token string) (*domain.User, error) {
	ctx, span := middleware.StartSpan(ctx, "auth.verify_token", trace.WithAttributes(
		attribute.String("layer", "logic"),
	))
	defer span.End()

	username, err := s.tokens.Verify(token)
	if err != nil {
		span.SetAttributes(attribute.Bool("token.valid", false))
		return nil, fmt.Errorf("verify token: %w", err)
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("query user %q: %w", username, err)
	}
	if user == nil {
		// The identity behind a still-valid token can disappear out-of-band;
		// the gate must reject rather than admit a ghost.
		return nil, fmt.Errorf("resolve user %q: %w", username, ErrUserNotFound)
	}

	span.SetAttributes(
		attribute.String("user.id", user.ID),
		attribute.Bool("token.valid", true),
	)

	return user, nil
}
