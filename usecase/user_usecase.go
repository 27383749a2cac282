package usecase

import (
	"context"
	"time"

	"yu-marketplace-backend/model"
	"yu-marketplace-backend/pkg/apperr"
	"yu-marketplace-backend/pkg/auth"
)

type UserStore interface {
	Insert(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetAll(ctx context.Context) ([]model.User, error)
}

type UserUsecase struct {
	repo UserStore
}

func NewUserUsecase(repo UserStore) *UserUsecase {
	return &UserUsecase{repo: repo}
}

// Register creates a new account. Email and username uniqueness are
// checked before the insert; the UNIQUE indexes back them up.
func (u *UserUsecase) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	if username == "" || email == "" || password == "" {
		return nil, apperr.Validation("missing required fields")
	}

	existing, err := u.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperr.Store("checking email", err)
	}
	if existing != nil {
		return nil, apperr.Duplicate("email already registered")
	}

	existing, err = u.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, apperr.Store("checking username", err)
	}
	if existing != nil {
		return nil, apperr.Duplicate("username already taken")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, apperr.Store("hashing password", err)
	}

	user := &model.User{
		ID:           newULID(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}
	if err := u.repo.Insert(ctx, user); err != nil {
		return nil, apperr.Store("creating user", err)
	}
	return user, nil
}

// Authenticate verifies credentials. Unknown email and wrong password
// produce the same failure so accounts cannot be enumerated.
func (u *UserUsecase) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	user, err := u.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperr.Store("looking up user", err)
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, password) {
		return nil, apperr.AuthFailed("invalid email or password")
	}
	return user, nil
}

func (u *UserUsecase) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := u.repo.GetAll(ctx)
	if err != nil {
		return nil, apperr.Store("listing users", err)
	}
	if users == nil {
		users = []model.User{}
	}
	return users, nil
}
