package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/clinicore/patients-api/internal/core/domain"
	"github.com/clinicore/patients-api/internal/core/ports"
)

// LoginThrottle limits repeated failed logins per email. Backed by Redis in
// production; failures degrade open.
type LoginThrottle interface {
	IsLocked(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Clear(ctx context.Context, email string) error
}

// AuthService implements signup and login.
type AuthService struct {
	repo     ports.AuthRepository
	issuer   ports.TokenIssuer
	throttle LoginThrottle
	audit    ports.AuditRecorder
	log      zerolog.Logger
}

func NewAuthService(repo ports.AuthRepository, issuer ports.TokenIssuer, throttle LoginThrottle, audit ports.AuditRecorder, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, issuer: issuer, throttle: throttle, audit: audit, log: log}
}

// Signup creates an account with a bcrypt-hashed password. Any role outside
// the closed set is stored as "user".
func (s *AuthService) Signup(ctx context.Context, email, password, role string) (*domain.User, error) {
	if email == "" || password == "" || role == "" {
		return nil, domain.ErrMissingFields
	}

	if existing, err := s.repo.FindByEmail(ctx, email); err == nil && existing != nil {
		return nil, domain.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.NormalizeRole(role),
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.record(domain.AuditEntry{
		Actor:      created.Email,
		Role:       created.Role,
		Action:     domain.AuditSignup,
		Resource:   "user",
		ResourceID: created.ID,
	})

	return created, nil
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password both return ErrInvalidCredentials so callers cannot enumerate
// accounts.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrMissingFields
	}

	if s.throttle != nil {
		locked, err := s.throttle.IsLocked(ctx, email)
		if err != nil {
			s.log.Warn().Err(err).Msg("login throttle check failed, allowing attempt")
		} else if locked {
			return "", nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, err
		}
		s.failure(ctx, email)
		return "", nil, domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.failure(ctx, email)
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(domain.Identity{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	})
	if err != nil {
		return "", nil, err
	}

	if s.throttle != nil {
		if err := s.throttle.Clear(ctx, email); err != nil {
			s.log.Warn().Err(err).Msg("failed to clear login throttle")
		}
	}

	s.record(domain.AuditEntry{
		Actor:      user.Email,
		Role:       user.Role,
		Action:     domain.AuditLogin,
		Resource:   "user",
		ResourceID: user.ID,
	})

	return token, user, nil
}

func (s *AuthService) failure(ctx context.Context, email string) {
	if s.throttle == nil {
		return
	}
	if err := s.throttle.RecordFailure(ctx, email); err != nil {
		s.log.Warn().Err(err).Msg("failed to record login failure")
	}
}

func (s *AuthService) record(entry domain.AuditEntry) {
	if s.audit == nil {
		return
	}
	entry.Timestamp = time.Now().UTC()
	s.audit.Record(entry)
}
