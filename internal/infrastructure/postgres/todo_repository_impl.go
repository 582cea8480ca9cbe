package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-todo-api/internal/domain/entity"
	"github.com/oksasatya/go-todo-api/internal/domain/repository"
)

type TodoRepository struct {
	pool *pgxpool.Pool
}

func NewTodoRepository(pool *pgxpool.Pool) *TodoRepository {
	return &TodoRepository{pool: pool}
}

func (r *TodoRepository) Create(ctx context.Context, t *entity.Todo) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO todos (text, completed, completed_at)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, t.Text, t.Completed, t.CompletedAt)

	return row.Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

func (r *TodoRepository) List(ctx context.Context) ([]entity.Todo, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, text, completed, completed_at, created_at, updated_at
		FROM todos
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	todos := make([]entity.Todo, 0)
	for rows.Next() {
		var t entity.Todo
		if err := rows.Scan(&t.ID, &t.Text, &t.Completed, &t.CompletedAt,
			&t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		todos = append(todos, t)
	}
	return todos, rows.Err()
}

func (r *TodoRepository) GetByID(ctx context.Context, id string) (*entity.Todo, error) {
	t := &entity.Todo{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, text, completed, completed_at, created_at, updated_at
		FROM todos
		WHERE id = $1
	`, id)

	if err := row.Scan(&t.ID, &t.Text, &t.Completed, &t.CompletedAt,
		&t.CreatedAt, &t.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *TodoRepository) DeleteByID(ctx context.Context, id string) (*entity.Todo, error) {
	t := &entity.Todo{}
	row := r.pool.QueryRow(ctx, `
		DELETE FROM todos
		WHERE id = $1
		RETURNING id, text, completed, completed_at, created_at, updated_at
	`, id)

	if err := row.Scan(&t.ID, &t.Text, &t.Completed, &t.CompletedAt,
		&t.CreatedAt, &t.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *TodoRepository) UpdateByID(ctx context.Context, id string, p repository.TodoPatch) (*entity.Todo, error) {
	t := &entity.Todo{}
	row := r.pool.QueryRow(ctx, `
		UPDATE todos
		SET text = COALESCE($2, text), completed = $3, completed_at = $4, updated_at = now()
		WHERE id = $1
		RETURNING id, text, completed, completed_at, created_at, updated_at
	`, id, p.Text, p.Completed, p.CompletedAt)

	if err := row.Scan(&t.ID, &t.Text, &t.Completed, &t.CompletedAt,
		&t.CreatedAt, &t.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

var _ repository.TodoRepository = (*TodoRepository)(nil)
