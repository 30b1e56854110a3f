package todos

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/todolist/internal/common"
	"github.com/dmitrijs2005/todolist/internal/dbx"
	"github.com/dmitrijs2005/todolist/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const maxListLimit = 100

func (r *PostgresRepository) Create(ctx context.Context, todo *models.Todo) (*models.Todo, error) {

	query :=
		`INSERT INTO todos (user_id, title, description, status)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		todo.UserID, todo.Title, todo.Description, todo.Status).Scan(&todo.ID, &todo.CreatedAt, &todo.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return todo, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Todo, error) {
	query :=
		`SELECT id, user_id, title, description, status, created_at, updated_at FROM todos
		 WHERE id = $1
		 `

	todo := &models.Todo{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&todo.ID, &todo.UserID, &todo.Title, &todo.Description, &todo.Status, &todo.CreatedAt, &todo.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return todo, nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID int64, filter ListFilter) ([]*models.Todo, error) {

	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	limit := filter.Limit
	if limit <= 0 || limit > maxListLimit {
		limit = maxListLimit
	}

	var rows *sql.Rows
	var err error

	if filter.Status != nil {
		query :=
			`SELECT id, user_id, title, description, status, created_at, updated_at FROM todos
			 WHERE user_id = $1 AND status = $2
			 ORDER BY id DESC
			 LIMIT $3 OFFSET $4
			 `
		rows, err = r.db.QueryContext(ctx, query, ownerID, *filter.Status, limit, offset)
	} else {
		query :=
			`SELECT id, user_id, title, description, status, created_at, updated_at FROM todos
			 WHERE user_id = $1
			 ORDER BY id DESC
			 LIMIT $2 OFFSET $3
			 `
		rows, err = r.db.QueryContext(ctx, query, ownerID, limit, offset)
	}

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Todo, 0)
	for rows.Next() {
		todo := &models.Todo{}
		err := rows.Scan(&todo.ID, &todo.UserID, &todo.Title, &todo.Description, &todo.Status,
			&todo.CreatedAt, &todo.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, todo)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id int64, status models.TodoStatus) (*models.Todo, error) {

	query :=
		`UPDATE todos SET status = $1, updated_at = now()
		 WHERE id = $2
		 RETURNING id, user_id, title, description, status, created_at, updated_at
		 `

	todo := &models.Todo{}
	err := r.db.QueryRowContext(ctx, query, status, id).Scan(
		&todo.ID, &todo.UserID, &todo.Title, &todo.Description, &todo.Status, &todo.CreatedAt, &todo.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return todo, nil
}
