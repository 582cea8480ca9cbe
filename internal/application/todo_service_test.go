package application

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-todo-api/internal/domain/entity"
	repo "github.com/oksasatya/go-todo-api/internal/domain/repository"
)

// fakeTodoRepo is an in-memory stand-in for the Postgres repository with
// the same patch semantics (COALESCE on text, full replace otherwise).
type fakeTodoRepo struct {
	mu    sync.Mutex
	items map[string]entity.Todo
	calls int
}

func newFakeTodoRepo() *fakeTodoRepo {
	return &fakeTodoRepo{items: make(map[string]entity.Todo)}
}

func (f *fakeTodoRepo) Create(_ context.Context, t *entity.Todo) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	t.ID = uuid.NewString()
	f.items[t.ID] = *t
	return nil
}

func (f *fakeTodoRepo) List(_ context.Context) ([]entity.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	out := make([]entity.Todo, 0, len(f.items))
	for _, t := range f.items {
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeTodoRepo) GetByID(_ context.Context, id string) (*entity.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	t, ok := f.items[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &t, nil
}

func (f *fakeTodoRepo) DeleteByID(_ context.Context, id string) (*entity.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	t, ok := f.items[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	delete(f.items, id)
	return &t, nil
}

func (f *fakeTodoRepo) UpdateByID(_ context.Context, id string, p repo.TodoPatch) (*entity.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	t, ok := f.items[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	if p.Text != nil {
		t.Text = *p.Text
	}
	t.Completed = p.Completed
	t.CompletedAt = p.CompletedAt
	f.items[id] = t
	return &t, nil
}

func newTodoService(f *fakeTodoRepo) *TodoService {
	return NewTodoService(f, nil, nil, "")
}

func TestTodoCreate_Defaults(t *testing.T) {
	t.Parallel()

	f := newFakeTodoRepo()
	svc := newTodoService(f)

	first, err := svc.Create(context.Background(), "Test todo text")
	require.NoError(t, err)
	require.Equal(t, "Test todo text", first.Text)
	require.False(t, first.Completed)
	require.Nil(t, first.CompletedAt)
	require.NotEmpty(t, first.ID)

	second, err := svc.Create(context.Background(), "another")
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)
}

func TestTodoCreate_EmptyText(t *testing.T) {
	t.Parallel()

	f := newFakeTodoRepo()
	svc := newTodoService(f)

	_, err := svc.Create(context.Background(), "")
	require.ErrorIs(t, err, ErrEmptyText)
	require.Empty(t, f.items, "nothing may be persisted on validation failure")
}

func TestTodoGet_InvalidID_SkipsStore(t *testing.T) {
	t.Parallel()

	f := newFakeTodoRepo()
	svc := newTodoService(f)

	for _, id := range []string{"123", "abc", "not-a-uuid", ""} {
		_, err := svc.Get(context.Background(), id)
		require.ErrorIs(t, err, ErrInvalidID)
		_, err = svc.Delete(context.Background(), id)
		require.ErrorIs(t, err, ErrInvalidID)
		_, err = svc.Update(context.Background(), id, TodoPatch{})
		require.ErrorIs(t, err, ErrInvalidID)
	}
	require.Zero(t, f.calls, "malformed ids must not reach the store")
}

func TestTodoOps_MissingID(t *testing.T) {
	t.Parallel()

	svc := newTodoService(newFakeTodoRepo())
	missing := uuid.NewString()

	_, err := svc.Get(context.Background(), missing)
	require.ErrorIs(t, err, ErrTodoNotFound)
	_, err = svc.Delete(context.Background(), missing)
	require.ErrorIs(t, err, ErrTodoNotFound)
	_, err = svc.Update(context.Background(), missing, TodoPatch{Completed: true})
	require.ErrorIs(t, err, ErrTodoNotFound)
}

func TestTodoUpdate_CompletedSetsTimestamp(t *testing.T) {
	t.Parallel()

	svc := newTodoService(newFakeTodoRepo())
	created, err := svc.Create(context.Background(), "walk the dog")
	require.NoError(t, err)

	text := "walk the cat"
	updated, err := svc.Update(context.Background(), created.ID, TodoPatch{Text: &text, Completed: true})
	require.NoError(t, err)
	require.Equal(t, "walk the cat", updated.Text)
	require.True(t, updated.Completed)
	require.NotNil(t, updated.CompletedAt)
	require.Greater(t, *updated.CompletedAt, int64(0))
}

func TestTodoUpdate_NotCompletedClearsTimestamp(t *testing.T) {
	t.Parallel()

	svc := newTodoService(newFakeTodoRepo())
	created, err := svc.Create(context.Background(), "pay rent")
	require.NoError(t, err)

	done, err := svc.Update(context.Background(), created.ID, TodoPatch{Completed: true})
	require.NoError(t, err)
	require.True(t, done.Completed)

	// a patch without completed=true resets state regardless of history
	reset, err := svc.Update(context.Background(), created.ID, TodoPatch{})
	require.NoError(t, err)
	require.False(t, reset.Completed)
	require.Nil(t, reset.CompletedAt)
	require.Equal(t, "pay rent", reset.Text, "absent text leaves the stored text alone")
}

func TestTodoDelete_ThenGetNotFound(t *testing.T) {
	t.Parallel()

	svc := newTodoService(newFakeTodoRepo())
	created, err := svc.Create(context.Background(), "ephemeral")
	require.NoError(t, err)

	deleted, err := svc.Delete(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, deleted.ID)

	_, err = svc.Get(context.Background(), created.ID)
	require.ErrorIs(t, err, ErrTodoNotFound)
}

func TestTodoList_ReturnsEverything(t *testing.T) {
	t.Parallel()

	svc := newTodoService(newFakeTodoRepo())
	for _, text := range []string{"one", "two", "three"} {
		_, err := svc.Create(context.Background(), text)
		require.NoError(t, err)
	}

	todos, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, todos, 3)
}
