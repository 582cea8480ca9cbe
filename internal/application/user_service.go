package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-todo-api/internal/domain/entity"
	repo "github.com/oksasatya/go-todo-api/internal/domain/repository"
	"github.com/oksasatya/go-todo-api/pkg/helpers"
	"github.com/oksasatya/go-todo-api/pkg/mailer"
)

var (
	ErrInvalidEmail   = errors.New("invalid email")
	ErrDuplicateEmail = errors.New("email already registered")
	ErrShortPassword  = errors.New("password must be at least 6 characters")
	// ErrInvalidToken means the token signature failed verification.
	ErrInvalidToken = errors.New("invalid auth token")
	// ErrNoTokenGrant means the signature checked out but no stored grant
	// matches; kept distinct from ErrInvalidToken so revocation can build
	// on it later.
	ErrNoTokenGrant = errors.New("no matching token grant")
)

const minPasswordLen = 6

var validate = validator.New()

type UserService struct {
	Repo   repo.UserRepository
	JWT    *helpers.JWTManager
	Logger *logrus.Logger
	Pub    *helpers.RabbitPublisher
}

func NewUserService(r repo.UserRepository, jwt *helpers.JWTManager, logger *logrus.Logger, pub *helpers.RabbitPublisher) *UserService {
	return &UserService{Repo: r, JWT: jwt, Logger: logger, Pub: pub}
}

// Register validates the credentials, persists the user with an explicit
// bcrypt hash, and issues the first auth token. The returned user carries
// the new grant; nothing is persisted on validation failure.
func (s *UserService) Register(ctx context.Context, email, password string) (*entity.User, string, error) {
	email = strings.TrimSpace(email)
	if err := validate.Var(email, "required,email"); err != nil {
		return nil, "", ErrInvalidEmail
	}
	if len(password) < minPasswordLen {
		return nil, "", ErrShortPassword
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, "", err
	}
	u := &entity.User{Email: email, Password: hash}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, "", ErrDuplicateEmail
		}
		return nil, "", err
	}

	token, err := s.IssueAuthToken(ctx, u)
	if err != nil {
		return nil, "", err
	}

	s.publishWelcome(ctx, u.Email)
	return u, token, nil
}

// IssueAuthToken signs a token for the user, appends the grant to the
// stored token list, and returns the token string. The list grows
// monotonically; grants are never deduplicated or capped.
func (s *UserService) IssueAuthToken(ctx context.Context, u *entity.User) (string, error) {
	token, err := s.JWT.GenerateAuthToken(u.ID, entity.AccessAuth)
	if err != nil {
		return "", err
	}
	grant := entity.TokenGrant{Access: entity.AccessAuth, Token: token}
	if err := s.Repo.AppendToken(ctx, u.ID, grant); err != nil {
		return "", err
	}
	u.Tokens = append(u.Tokens, grant)
	return token, nil
}

// FindByToken verifies the token signature, then requires a stored grant
// with the exact token string and the auth access tag.
func (s *UserService) FindByToken(ctx context.Context, token string) (*entity.User, error) {
	claims, err := s.JWT.ParseAuthToken(token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	// A wrong access tag is still a well-signed token; it falls through to
	// the grant lookup and fails there, like any other missing grant.
	u, err := s.Repo.GetByToken(ctx, claims.UserID, token, entity.AccessAuth)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNoTokenGrant
		}
		return nil, err
	}
	return u, nil
}

func (s *UserService) publishWelcome(ctx context.Context, email string) {
	if s.Pub == nil {
		return
	}
	c, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := s.Pub.PublishJSON(c, mailer.WelcomeJob(email)); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("email", email).Warn("welcome email enqueue failed")
	}
}
