package application

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-todo-api/internal/domain/entity"
	repo "github.com/oksasatya/go-todo-api/internal/domain/repository"
)

var (
	ErrTodoNotFound = errors.New("todo not found")
	ErrInvalidID    = errors.New("invalid identifier")
	ErrEmptyText    = errors.New("text is required")
)

// TodoPatch is the subset of fields an update accepts. Completed is true
// only when the client sent a JSON boolean true; anything else counts as
// not completed.
type TodoPatch struct {
	Text      *string
	Completed bool
}

type TodoService struct {
	Repo         repo.TodoRepository
	Logger       *logrus.Logger
	ES           *elasticsearch.Client
	ESTodosIndex string
}

func NewTodoService(r repo.TodoRepository, logger *logrus.Logger, es *elasticsearch.Client, esTodosIndex string) *TodoService {
	return &TodoService{Repo: r, Logger: logger, ES: es, ESTodosIndex: esTodosIndex}
}

// Create persists a new todo with the given text, not completed.
func (s *TodoService) Create(ctx context.Context, text string) (*entity.Todo, error) {
	if text == "" {
		return nil, ErrEmptyText
	}
	t := &entity.Todo{Text: text}
	if err := s.Repo.Create(ctx, t); err != nil {
		return nil, err
	}
	_ = s.indexTodo(ctx, t)
	return t, nil
}

// List returns every stored todo, in no particular order.
func (s *TodoService) List(ctx context.Context) ([]entity.Todo, error) {
	return s.Repo.List(ctx)
}

func (s *TodoService) Get(ctx context.Context, id string) (*entity.Todo, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	t, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return t, nil
}

func (s *TodoService) Delete(ctx context.Context, id string) (*entity.Todo, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	t, err := s.Repo.DeleteByID(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	_ = s.removeFromIndex(ctx, id)
	return t, nil
}

// Update applies a patch. A completed=true patch stamps CompletedAt with
// the current epoch millis; every other case forces completed=false and a
// null CompletedAt, regardless of the stored state.
func (s *TodoService) Update(ctx context.Context, id string, p TodoPatch) (*entity.Todo, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	rp := repo.TodoPatch{Text: p.Text, Completed: p.Completed}
	if p.Completed {
		now := time.Now().UnixMilli()
		rp.CompletedAt = &now
	}
	t, err := s.Repo.UpdateByID(ctx, id, rp)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	_ = s.indexTodo(ctx, t)
	return t, nil
}

func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidID
	}
	return nil
}

func mapRepoErr(err error) error {
	if errors.Is(err, repo.ErrNotFound) {
		return ErrTodoNotFound
	}
	return err
}

func (s *TodoService) indexTodo(ctx context.Context, t *entity.Todo) error {
	if s.ES == nil || s.ESTodosIndex == "" {
		return nil
	}
	b, _ := json.Marshal(t)
	req := esapi.IndexRequest{Index: s.ESTodosIndex, DocumentID: t.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("todo_id", t.ID).Warn("es index failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("todo_id", t.ID).Warn("es index response error")
	}
	return nil
}

func (s *TodoService) removeFromIndex(ctx context.Context, id string) error {
	if s.ES == nil || s.ESTodosIndex == "" {
		return nil
	}
	req := esapi.DeleteRequest{Index: s.ESTodosIndex, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("todo_id", id).Warn("es delete failed")
		}
		return err
	}
	_ = res.Body.Close()
	return nil
}

// Search runs a match query against the todo text index.
func (s *TodoService) Search(ctx context.Context, q string, size int) ([]entity.Todo, error) {
	if s.ES == nil || s.ESTodosIndex == "" {
		return []entity.Todo{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"match": map[string]any{
				"text": q,
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESTodosIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source entity.Todo `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]entity.Todo, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
