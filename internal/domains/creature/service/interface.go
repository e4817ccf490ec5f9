package service

import (
	"context"

	"bestiary-backend/internal/domains/creature/model"
)

// Service is the catalog business-logic contract. Listing composes the
// creature and favourite stores: filters, pagination and favourite scoping
// all meet here.
type Service interface {
	// ListCreatures answers a catalog listing for the given user. The
	// offline-snapshot flag short-circuits every filter, favourite scope
	// and pagination parameter.
	ListCreatures(ctx context.Context, userID int64, req *model.ListCreaturesRequest) (*model.ListCreaturesResult, error)

	// GetDetails returns one creature annotated with the user's favourite
	// membership.
	GetDetails(ctx context.Context, userID, creatureID int64) (*model.CreatureDetail, error)

	// Admin-gated mutations.
	Create(ctx context.Context, createdBy int64, req *model.CreateCreatureRequest) (*model.CreatureDetail, error)
	Update(ctx context.Context, updatedBy, creatureID int64, req *model.UpdateCreatureRequest) error
	Delete(ctx context.Context, creatureID int64) error
}
