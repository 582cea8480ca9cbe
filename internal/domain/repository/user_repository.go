package repository

import (
	"context"

	"github.com/oksasatya/go-todo-api/internal/domain/entity"
)

// UserRepository defines the interface for user database operations.
// Token grants are append-only; there is no removal in the current scope.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	AppendToken(ctx context.Context, userID string, grant entity.TokenGrant) error
	// GetByToken returns the user whose id matches userID and whose grant
	// list contains the exact token with the given access tag.
	GetByToken(ctx context.Context, userID, token, access string) (*entity.User, error)
}
