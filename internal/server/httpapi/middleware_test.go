package httpapi

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dmitrijs2005/todolist/internal/common"
	"github.com/dmitrijs2005/todolist/internal/logging"
	"github.com/dmitrijs2005/todolist/internal/server/models"
	"github.com/dmitrijs2005/todolist/internal/server/services"
)

func TestAuthRequired_MissingHeader(t *testing.T) {
	m := &stubRepoManager{users: &stubUserRepo{}, todos: &stubTodoRepo{}}
	srv, _ := testServer(t, m, nil)

	w := doRequest(srv, http.MethodGet, "/todos", "", "")

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("want 401, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAuthRequired_MalformedHeader(t *testing.T) {
	m := &stubRepoManager{users: &stubUserRepo{}, todos: &stubTodoRepo{}}
	srv, _ := testServer(t, m, nil)

	req := httptest.NewRequest(http.MethodGet, "/todos", nil)
	req.Header.Set(common.AuthorizationHeaderName, "Token abcdef")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("want 401, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAuthRequired_InvalidToken(t *testing.T) {
	m := &stubRepoManager{users: &stubUserRepo{}, todos: &stubTodoRepo{}}
	srv, _ := testServer(t, m, nil)

	w := doRequest(srv, http.MethodGet, "/todos", "", "not-a-token")

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("want 401, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAuthRequired_ValidToken(t *testing.T) {
	m := &stubRepoManager{users: &stubUserRepo{}, todos: &stubTodoRepo{listResult: []*models.Todo{}}}
	srv, us := testServer(t, m, nil)
	token := mintToken(t, m, us, &models.User{ID: 7, Email: "alice@example.com"})

	w := doRequest(srv, http.MethodGet, "/todos", "", token)

	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRequestLogger_EmitsStartAndCompletion(t *testing.T) {
	m := &stubRepoManager{users: &stubUserRepo{}, todos: &stubTodoRepo{}}

	var buf bytes.Buffer
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	us, err := services.NewUserService(nil, m, testCodec(t))
	if err != nil {
		t.Fatalf("NewUserService error: %v", err)
	}
	ts := services.NewTodoService(nil, m, us)
	srv, err := NewHTTPServer(":0", logger, us, ts)
	if err != nil {
		t.Fatalf("NewHTTPServer error: %v", err)
	}

	w := doRequest(srv, http.MethodPost, "/signup",
		`{"username":"alice","email":"alice@example.com","password":"s3cret"}`, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("want 201, got %d: %s", w.Code, w.Body.String())
	}

	out := buf.String()
	if !strings.Contains(out, "request started") {
		t.Fatalf("missing debug start line in log output: %s", out)
	}
	if !strings.Contains(out, "request handled") {
		t.Fatalf("missing completion line in log output: %s", out)
	}
}

func TestRequestID_GeneratedWhenAbsent(t *testing.T) {
	m := &stubRepoManager{users: &stubUserRepo{}, todos: &stubTodoRepo{}}
	srv, _ := testServer(t, m, nil)

	w := doRequest(srv, http.MethodPost, "/signup",
		`{"username":"alice","email":"alice@example.com","password":"s3cret"}`, "")

	if w.Header().Get(requestIDHeader) == "" {
		t.Fatal("expected a generated request id header")
	}
}

func TestRequestID_EchoedWhenPresent(t *testing.T) {
	m := &stubRepoManager{users: &stubUserRepo{}, todos: &stubTodoRepo{}}
	srv, _ := testServer(t, m, nil)

	req := httptest.NewRequest(http.MethodPost, "/signin", nil)
	req.Header.Set(requestIDHeader, "req-123")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if got := w.Header().Get(requestIDHeader); got != "req-123" {
		t.Fatalf("want req-123, got %q", got)
	}
}
