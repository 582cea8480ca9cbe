package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/go-todo-api/internal/domain/entity"
)

var (
	// ErrNotFound is returned when no record matches a well-formed identifier.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateEmail is returned when the unique email constraint fires.
	ErrDuplicateEmail = errors.New("email already exists")
)

// TodoPatch carries the updatable fields of a todo. A nil Text leaves the
// stored text unchanged.
type TodoPatch struct {
	Text        *string
	Completed   bool
	CompletedAt *int64
}

// TodoRepository defines the interface for todo database operations.
type TodoRepository interface {
	Create(ctx context.Context, t *entity.Todo) error
	List(ctx context.Context) ([]entity.Todo, error)
	GetByID(ctx context.Context, id string) (*entity.Todo, error)
	DeleteByID(ctx context.Context, id string) (*entity.Todo, error)
	UpdateByID(ctx context.Context, id string, p TodoPatch) (*entity.Todo, error)
}
