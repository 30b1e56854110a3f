package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/todolist/internal/common"
	"github.com/dmitrijs2005/todolist/internal/dbx"
	"github.com/dmitrijs2005/todolist/internal/server/models"
	"github.com/dmitrijs2005/todolist/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/todolist/internal/server/repositories/todos"
)

// TodoService provides todo item operations scoped to an authenticated user.
// Every operation that touches an existing item checks ownership through the
// UserService before returning or mutating it.
type TodoService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	users       *UserService
}

// NewTodoService constructs a TodoService.
func NewTodoService(db *sql.DB, m repomanager.RepositoryManager, users *UserService) *TodoService {
	return &TodoService{db: db, repomanager: m, users: users}
}

// Create stores a new todo item owned by the given user, in Pending status
// unless another valid status is supplied.
func (s *TodoService) Create(ctx context.Context, user *models.User, title, description string, status models.TodoStatus) (*models.Todo, error) {
	if !status.Valid() {
		status = models.StatusPending
	}

	todo := &models.Todo{
		UserID:      user.ID,
		Title:       title,
		Description: description,
		Status:      status,
	}

	repo := s.repomanager.Todos(s.db)
	todo, err := repo.Create(ctx, todo)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return todo, nil
}

// GetByID returns a single todo item. Items that exist but belong to another
// user yield ErrorForbidden.
func (s *TodoService) GetByID(ctx context.Context, user *models.User, id int64) (*models.Todo, error) {
	repo := s.repomanager.Todos(s.db)

	todo, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}

	if err := s.users.AuthorizeOwnership(user, todo.UserID); err != nil {
		return nil, err
	}

	return todo, nil
}

// List returns the user's todo items, newest first, honoring the filter's
// pagination and optional status.
func (s *TodoService) List(ctx context.Context, user *models.User, filter todos.ListFilter) ([]*models.Todo, error) {
	repo := s.repomanager.Todos(s.db)

	result, err := repo.ListByOwner(ctx, user.ID, filter)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return result, nil
}

// UpdateStatus changes the status of one of the user's todo items. The read
// and the write run in one transaction so the ownership check cannot race
// with a concurrent update.
func (s *TodoService) UpdateStatus(ctx context.Context, user *models.User, id int64, status models.TodoStatus) (*models.Todo, error) {
	var updated *models.Todo

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Todos(tx)

		todo, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if err := s.users.AuthorizeOwnership(user, todo.UserID); err != nil {
			return err
		}

		updated, err = repo.UpdateStatus(ctx, id, status)
		return err
	})

	if err != nil {
		if errors.Is(err, common.ErrorNotFound) || errors.Is(err, common.ErrorForbidden) {
			return nil, err
		}
		return nil, common.ErrorInternal
	}

	return updated, nil
}
