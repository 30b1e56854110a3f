package httpapi

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"database/sql"
	"encoding/pem"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/todolist/internal/dbx"
	"github.com/dmitrijs2005/todolist/internal/logging"
	"github.com/dmitrijs2005/todolist/internal/server/auth"
	"github.com/dmitrijs2005/todolist/internal/server/models"
	"github.com/dmitrijs2005/todolist/internal/server/repositories/todos"
	"github.com/dmitrijs2005/todolist/internal/server/repositories/users"
	"github.com/dmitrijs2005/todolist/internal/server/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubUserRepo struct {
	createResult     *models.User
	createErr        error
	getByEmailResult *models.User
	getByEmailErr    error
}

func (r *stubUserRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
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

func (r *stubUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getByEmailResult, r.getByEmailErr
}

func (r *stubUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return nil, nil
}

type stubTodoRepo struct {
	createErr    error
	getResult    *models.Todo
	getErr       error
	listResult   []*models.Todo
	listErr      error
	updateResult *models.Todo
	updateErr    error
}

func (r *stubTodoRepo) Create(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	todo.ID = 1
	todo.CreatedAt = time.Now()
	todo.UpdatedAt = todo.CreatedAt
	return todo, nil
}

func (r *stubTodoRepo) GetByID(ctx context.Context, id int64) (*models.Todo, error) {
	return r.getResult, r.getErr
}

func (r *stubTodoRepo) ListByOwner(ctx context.Context, ownerID int64, filter todos.ListFilter) ([]*models.Todo, error) {
	return r.listResult, r.listErr
}

func (r *stubTodoRepo) UpdateStatus(ctx context.Context, id int64, status models.TodoStatus) (*models.Todo, error) {
	return r.updateResult, r.updateErr
}

type stubRepoManager struct {
	users *stubUserRepo
	todos *stubTodoRepo
}

func (m *stubRepoManager) RunMigrations(ctx context.Context, db *sql.DB) error { return nil }
func (m *stubRepoManager) Users(db dbx.DBTX) users.Repository                  { return m.users }
func (m *stubRepoManager) Todos(db dbx.DBTX) todos.Repository                  { return m.todos }

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

// testServer wires a full HTTPServer over stub repositories and returns the
// user service so tests can mint valid tokens.
func testServer(t *testing.T, m *stubRepoManager, db *sql.DB) (*HTTPServer, *services.UserService) {
	t.Helper()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	us, err := services.NewUserService(db, m, testCodec(t))
	if err != nil {
		t.Fatalf("NewUserService error: %v", err)
	}
	ts := services.NewTodoService(db, m, us)

	srv, err := NewHTTPServer(":0", logger, us, ts)
	if err != nil {
		t.Fatalf("NewHTTPServer error: %v", err)
	}
	return srv, us
}
