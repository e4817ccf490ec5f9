package repository

import (
	"context"

	"bestiary-backend/internal/domains/user/model"
)

// Repository is the user data-access contract.
type Repository interface {
	Create(ctx context.Context, u *model.User) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
}
