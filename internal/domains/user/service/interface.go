package service

import (
	"context"

	"bestiary-backend/internal/domains/user/model"
)

// Service is the user business-logic contract.
type Service interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.UserResponse, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
	GetProfile(ctx context.Context, userID int64) (*model.UserResponse, error)
}
