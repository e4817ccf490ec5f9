package repository

import (
	"context"

	"bestiary-backend/internal/domains/creature/model"
)

// Repository is the creature data-access contract. Callers never see SQL;
// sentinel errors from the model package classify every failure.
type Repository interface {
	// Create inserts a creature, enforcing name uniqueness inside a single
	// transaction so a concurrent duplicate surfaces as ErrDuplicateName.
	Create(ctx context.Context, c *model.Creature) (*model.Creature, error)

	GetByID(ctx context.Context, id int64) (*model.Creature, error)

	// Update replaces name, lore and image; ErrCreatureNotFound when no row
	// matches.
	Update(ctx context.Context, c *model.Creature) error

	// Delete removes a creature. Favourites referencing it are left in
	// place; the background sweeper prunes them.
	Delete(ctx context.Context, id int64) error

	// Query returns one page of creatures plus the filtered and unfiltered
	// counts. Page is 1-based.
	Query(ctx context.Context, filter model.Filter, page, limit int) ([]model.Creature, int64, int64, error)

	// ListFirst returns the first n creatures by id, ignoring all filters.
	ListFirst(ctx context.Context, n int) ([]model.Creature, error)
}
