// Package httpapi exposes the todolist over HTTP/JSON using gin.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/todolist/internal/logging"
	"github.com/dmitrijs2005/todolist/internal/server/services"
)

type HTTPServer struct {
	address string
	logger  logging.Logger
	users   *services.UserService
	todos   *services.TodoService
}

func NewHTTPServer(a string, l logging.Logger, us *services.UserService, ts *services.TodoService) (*HTTPServer, error) {
	return &HTTPServer{
		address: a,
		logger:  l.With("module", "http_server"),
		users:   us,
		todos:   ts,
	}, nil
}

// Router builds the gin engine with middleware and all routes registered.
func (s *HTTPServer) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.requestID())
	r.Use(s.requestLogger())
	r.Use(cors.Default())

	r.POST("/signup", s.signUp)
	r.POST("/signin", s.signIn)

	todos := r.Group("/todos")
	todos.Use(s.authRequired())
	{
		todos.POST("", s.createTodo)
		todos.GET("", s.listTodos)
		todos.GET("/:id", s.getTodo)
		todos.PUT("/:id", s.updateTodoStatus)
	}

	return r
}

func (s *HTTPServer) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
