package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"bestiary-backend/internal/domains/user/model"
	"bestiary-backend/internal/domains/user/repository"
	"bestiary-backend/pkg/jwt"
	"bestiary-backend/pkg/logger"
)

type userServiceImpl struct {
	repo       repository.Repository
	jwtManager *jwt.Manager
}

func NewUserService(repo repository.Repository, jwtManager *jwt.Manager) Service {
	return &userServiceImpl{
		repo:       repo,
		jwtManager: jwtManager,
	}
}

func (s *userServiceImpl) Register(ctx context.Context, req *model.RegisterRequest) (*model.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := req.Role
	if role == "" {
		role = model.RoleUser
	}

	created, err := s.repo.Create(ctx, &model.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Gender:       req.Gender,
		Username:     req.Username,
		PasswordHash: string(hash),
		Role:         role,
	})
	if err != nil {
		return nil, err
	}

	return created.ToResponse(), nil
}

func (s *userServiceImpl) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, model.ErrInvalidPassword
	}

	token, err := s.jwtManager.GenerateToken(u.ID, u.Role)
	if err != nil {
		logger.Error("failed to sign token", err)
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &model.LoginResponse{Token: token}, nil
}

func (s *userServiceImpl) GetProfile(ctx context.Context, userID int64) (*model.UserResponse, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return u.ToResponse(), nil
}
