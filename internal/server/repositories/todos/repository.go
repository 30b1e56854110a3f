package todos

import (
	"context"

	"github.com/dmitrijs2005/todolist/internal/server/models"
)

// ListFilter narrows a ListByOwner query. A nil Status means todos of all
// statuses are returned.
type ListFilter struct {
	Offset int64
	Limit  int64
	Status *models.TodoStatus
}

type Repository interface {
	Create(ctx context.Context, todo *models.Todo) (*models.Todo, error)
	GetByID(ctx context.Context, id int64) (*models.Todo, error)
	ListByOwner(ctx context.Context, ownerID int64, filter ListFilter) ([]*models.Todo, error)
	UpdateStatus(ctx context.Context, id int64, status models.TodoStatus) (*models.Todo, error)
}
