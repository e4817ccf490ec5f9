package service

import (
	"context"
	"time"

	"bestiary-backend/internal/domains/favourite/model"
	"bestiary-backend/internal/domains/favourite/repository"
	"bestiary-backend/pkg/imagecodec"
)

type favouriteServiceImpl struct {
	repo          repository.Repository
	maxImageBytes int64
}

func NewFavouriteService(repo repository.Repository, maxImageBytes int64) Service {
	return &favouriteServiceImpl{
		repo:          repo,
		maxImageBytes: maxImageBytes,
	}
}

func (s *favouriteServiceImpl) Add(ctx context.Context, userID int64, req *model.AddFavouriteRequest) (*model.FavouriteResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// AddedBy is the owner by construction: favourites are never added on
	// another user's behalf.
	created, err := s.repo.Add(ctx, &model.Favourite{
		CreatureID: req.CreatureID,
		UserID:     userID,
		AddedBy:    userID,
	})
	if err != nil {
		return nil, err
	}

	return &model.FavouriteResponse{
		ID:         created.ID,
		CreatureID: created.CreatureID,
		UserID:     created.UserID,
		AddedOn:    created.AddedOn.Format(time.RFC3339),
	}, nil
}

func (s *favouriteServiceImpl) Remove(ctx context.Context, userID, creatureID int64) error {
	return s.repo.Remove(ctx, userID, creatureID)
}

// SetBackground decodes the data URI and rejects payloads whose decoded
// bytes do not carry a recognized image signature. The MIME prefix on the
// request itself is never trusted.
func (s *favouriteServiceImpl) SetBackground(ctx context.Context, userID, creatureID int64, req *model.SetBackgroundRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	img, err := imagecodec.FromDataURI(req.BackgroundImg)
	if err != nil {
		return err
	}

	if int64(len(img)) > s.maxImageBytes {
		return model.ErrImageTooLarge
	}

	if !imagecodec.IsSupportedImage(img) {
		return model.ErrUnsupportedImage
	}

	return s.repo.SetBackground(ctx, userID, creatureID, userID, img)
}

func (s *favouriteServiceImpl) ClearBackground(ctx context.Context, userID, creatureID int64) error {
	return s.repo.ClearBackground(ctx, userID, creatureID, userID)
}

func (s *favouriteServiceImpl) GetBackground(ctx context.Context, userID, creatureID int64) (*model.BackgroundResponse, error) {
	img, err := s.repo.GetBackground(ctx, userID, creatureID)
	if err != nil {
		return nil, err
	}

	resp := &model.BackgroundResponse{CreatureID: creatureID}
	if uri := imagecodec.ToDataURI(img); uri != "" {
		resp.BackgroundImg = &uri
	}

	return resp, nil
}
