package services

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"database/sql"
	"encoding/pem"
	"testing"
	"time"

	"github.com/dmitrijs2005/todolist/internal/dbx"
	"github.com/dmitrijs2005/todolist/internal/server/auth"
	"github.com/dmitrijs2005/todolist/internal/server/models"
	"github.com/dmitrijs2005/todolist/internal/server/repositories/todos"
	"github.com/dmitrijs2005/todolist/internal/server/repositories/users"
)

// fakeUserRepo is a canned-response users.Repository.
type fakeUserRepo struct {
	createResult     *models.User
	createErr        error
	getByEmailResult *models.User
	getByEmailErr    error
	getByIDResult    *models.User
	getByIDErr       error

	lastCreated *models.User
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	created := *user
	r.lastCreated = &created
	if r.createErr != nil {
		return nil, r.createErr
	}
	if r.createResult != nil {
		return r.createResult, nil
	}
	user.ID = 1
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	return user, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if r.getByEmailResult == nil {
		return nil, r.getByEmailErr
	}
	// each lookup yields a fresh row, as a real scan would
	found := *r.getByEmailResult
	return &found, r.getByEmailErr
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getByIDResult, r.getByIDErr
}

// fakeTodoRepo is a canned-response todos.Repository that records the last
// filter it was called with.
type fakeTodoRepo struct {
	createResult *models.Todo
	createErr    error
	getResult    *models.Todo
	getErr       error
	listResult   []*models.Todo
	listErr      error
	updateResult *models.Todo
	updateErr    error

	lastFilter  todos.ListFilter
	lastOwnerID int64
}

func (r *fakeTodoRepo) Create(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	if r.createResult != nil {
		return r.createResult, nil
	}
	todo.ID = 1
	return todo, nil
}

func (r *fakeTodoRepo) GetByID(ctx context.Context, id int64) (*models.Todo, error) {
	return r.getResult, r.getErr
}

func (r *fakeTodoRepo) ListByOwner(ctx context.Context, ownerID int64, filter todos.ListFilter) ([]*models.Todo, error) {
	r.lastOwnerID = ownerID
	r.lastFilter = filter
	return r.listResult, r.listErr
}

func (r *fakeTodoRepo) UpdateStatus(ctx context.Context, id int64, status models.TodoStatus) (*models.Todo, error) {
	return r.updateResult, r.updateErr
}

// fakeRepoManager hands out the fakes regardless of the DBTX passed in.
type fakeRepoManager struct {
	users *fakeUserRepo
	todos *fakeTodoRepo
}

func (m *fakeRepoManager) RunMigrations(ctx context.Context, db *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository                  { return m.users }
func (m *fakeRepoManager) Todos(db dbx.DBTX) todos.Repository                  { return m.todos }

func testCodec(t *testing.T) *auth.TokenCodec {
	t.Helper()

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("generating key: %v", err)
	}

	privDER, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		t.Fatalf("marshaling private key: %v", err)
	}
	pubDER, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		t.Fatalf("marshaling public key: %v", err)
	}

	privPEM := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: privDER})
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})

	codec, err := auth.NewTokenCodec(privPEM, pubPEM, "todolist-server", "todolist-client", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenCodec error: %v", err)
	}
	return codec
}
