package service

import (
	"context"

	"bestiary-backend/internal/domains/favourite/model"
)

// Service is the favourite business-logic contract. The userID argument is
// always the authenticated caller; operations only ever touch that user's
// rows.
type Service interface {
	Add(ctx context.Context, userID int64, req *model.AddFavouriteRequest) (*model.FavouriteResponse, error)
	Remove(ctx context.Context, userID, creatureID int64) error
	SetBackground(ctx context.Context, userID, creatureID int64, req *model.SetBackgroundRequest) error
	ClearBackground(ctx context.Context, userID, creatureID int64) error
	GetBackground(ctx context.Context, userID, creatureID int64) (*model.BackgroundResponse, error)
}
