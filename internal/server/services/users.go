// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login, and verification of
// Ed25519-signed JWTs used to authenticate requests.
package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/todolist/internal/common"
	"github.com/dmitrijs2005/todolist/internal/server/auth"
	"github.com/dmitrijs2005/todolist/internal/server/models"
	"github.com/dmitrijs2005/todolist/internal/server/repositories/repomanager"
)

// UserService provides authentication-related operations:
// - SignUp: create users with argon2id-hashed passwords
// - Login: verify credentials and mint a signed token
// - Authenticate: resolve a bearer token into the user it identifies
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	codec       *auth.TokenCodec
	// decoyHash is verified against the candidate password when the email is
	// unknown, so both branches of a failed login cost one argon2id run.
	decoyHash string
}

// NewUserService constructs a UserService using repositories and a token codec.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, codec *auth.TokenCodec) (*UserService, error) {
	decoy, err := auth.HashPassword(uuid.NewString())
	if err != nil {
		return nil, err
	}
	return &UserService{db: db, repomanager: m, codec: codec, decoyHash: decoy}, nil
}

// SignUp creates a new user with the given username, email, and password,
// and returns it together with a freshly signed token. A duplicate email
// yields ErrorEmailAlreadyExists.
func (s *UserService) SignUp(ctx context.Context, username, email, password string) (*models.User, string, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	user := &models.User{Username: username, Email: email, PasswordHash: hash}

	repo := s.repomanager.Users(s.db)
	user, err = repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorEmailAlreadyExists) {
			return nil, "", common.ErrorEmailAlreadyExists
		}
		return nil, "", common.ErrorInternal
	}
	user.PasswordHash = ""

	token, err := s.codec.Sign(user)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	return user, token, nil
}

// Login verifies the email/password pair and, on success, returns the user and
// a signed token. Unknown emails and wrong passwords both yield ErrorAuthFailed.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// burn the same hashing cost as the known-email path
			auth.VerifyPassword(password, s.decoyHash)
			return nil, "", common.ErrorAuthFailed
		}
		return nil, "", common.ErrorInternal
	}

	ok, err := auth.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, "", common.ErrorInternal
	}
	if !ok {
		return nil, "", common.ErrorAuthFailed
	}
	user.PasswordHash = ""

	token, err := s.codec.Sign(user)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	return user, token, nil
}

// Authenticate verifies a compact token and returns the identity it carries.
// Any verification failure yields ErrorAuthFailed.
func (s *UserService) Authenticate(token string) (*models.User, error) {
	user, err := s.codec.Verify(token)
	if err != nil {
		return nil, common.ErrorAuthFailed
	}
	return user, nil
}

// AuthorizeOwnership checks that the authenticated user owns the resource.
func (s *UserService) AuthorizeOwnership(user *models.User, ownerID int64) error {
	if user == nil || user.ID != ownerID {
		return common.ErrorForbidden
	}
	return nil
}
