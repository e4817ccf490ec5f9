package repository

import (
	"context"

	"bestiary-backend/internal/domains/favourite/model"
)

// Repository is the favourite data-access contract. Every read and mutation
// is scoped by the owning user id; ownership is enforced here at the query
// layer, not by a separate authorization object.
type Repository interface {
	// Add inserts unconditionally: duplicate (user, creature) pairs are
	// permitted at the store level.
	Add(ctx context.Context, f *model.Favourite) (*model.Favourite, error)

	// Remove deletes the user's favourites of a creature;
	// ErrFavouriteNotFound when nothing matched.
	Remove(ctx context.Context, userID, creatureID int64) error

	SetBackground(ctx context.Context, userID, creatureID, updatedBy int64, img []byte) error
	ClearBackground(ctx context.Context, userID, creatureID, updatedBy int64) error
	GetBackground(ctx context.Context, userID, creatureID int64) ([]byte, error)

	// ListCreatureIDs returns the set of creature ids the user favourited.
	ListCreatureIDs(ctx context.Context, userID int64) (map[int64]struct{}, error)

	// DeleteDangling prunes favourites whose creature no longer exists and
	// returns the number of rows removed.
	DeleteDangling(ctx context.Context) (int64, error)
}
