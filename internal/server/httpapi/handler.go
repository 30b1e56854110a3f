package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/todolist/internal/common"
	"github.com/dmitrijs2005/todolist/internal/server/models"
	"github.com/dmitrijs2005/todolist/internal/server/repositories/todos"
)

type signUpRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type signInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type createTodoRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

type updateTodoRequest struct {
	Status string `json:"status" binding:"required"`
}

type userResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type todoResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toTodoResponse(t *models.Todo) todoResponse {
	return todoResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status.String(),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// writeError maps service errors to HTTP statuses. Anything unexpected
// becomes a generic 500 so internals never leak to clients.
func (s *HTTPServer) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrorEmailAlreadyExists):
		c.JSON(http.StatusConflict, errorResponse{Error: "email already registered"})
	case errors.Is(err, common.ErrorAuthFailed):
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "authentication failed"})
	case errors.Is(err, common.ErrorForbidden):
		c.JSON(http.StatusForbidden, errorResponse{Error: "access denied"})
	case errors.Is(err, common.ErrorNotFound):
		c.JSON(http.StatusNotFound, errorResponse{Error: "not found"})
	default:
		s.logger.Error(c.Request.Context(), "internal error", "error", err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func (s *HTTPServer) signUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
		return
	}

	user, token, err := s.users.SignUp(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, authResponse{Token: token, User: toUserResponse(user)})
}

func (s *HTTPServer) signIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
		return
	}

	user, token, err := s.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, authResponse{Token: token, User: toUserResponse(user)})
}

func (s *HTTPServer) createTodo(c *gin.Context) {
	user, ok := identityFromContext(c)
	if !ok {
		s.writeError(c, common.ErrorAuthFailed)
		return
	}

	var req createTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
		return
	}

	status := models.StatusPending
	if req.Status != "" {
		var err error
		status, err = models.ParseTodoStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid status"})
			return
		}
	}

	todo, err := s.todos.Create(c.Request.Context(), user, req.Title, req.Description, status)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toTodoResponse(todo))
}

func (s *HTTPServer) listTodos(c *gin.Context) {
	user, ok := identityFromContext(c)
	if !ok {
		s.writeError(c, common.ErrorAuthFailed)
		return
	}

	filter := todos.ListFilter{}
	if v := c.Query("offset"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid offset"})
			return
		}
		filter.Offset = n
	}
	if v := c.Query("limit"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid limit"})
			return
		}
		filter.Limit = n
	}
	if v := c.Query("status"); v != "" {
		status, err := models.ParseTodoStatus(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid status"})
			return
		}
		filter.Status = &status
	}

	list, err := s.todos.List(c.Request.Context(), user, filter)
	if err != nil {
		s.writeError(c, err)
		return
	}

	result := make([]todoResponse, 0, len(list))
	for _, t := range list {
		result = append(result, toTodoResponse(t))
	}

	c.JSON(http.StatusOK, result)
}

func (s *HTTPServer) getTodo(c *gin.Context) {
	user, ok := identityFromContext(c)
	if !ok {
		s.writeError(c, common.ErrorAuthFailed)
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return
	}

	todo, err := s.todos.GetByID(c.Request.Context(), user, id)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTodoResponse(todo))
}

func (s *HTTPServer) updateTodoStatus(c *gin.Context) {
	user, ok := identityFromContext(c)
	if !ok {
		s.writeError(c, common.ErrorAuthFailed)
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return
	}

	var req updateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
		return
	}

	status, err := models.ParseTodoStatus(req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid status"})
		return
	}

	todo, err := s.todos.UpdateStatus(c.Request.Context(), user, id, status)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTodoResponse(todo))
}
