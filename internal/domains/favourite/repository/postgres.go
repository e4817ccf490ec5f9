package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bestiary-backend/internal/domains/favourite/model"
	"bestiary-backend/pkg/cache"
)

type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) Repository {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

const (
	favouriteIDsKeyPrefix  = "favourites:user:"
	favouriteIDsKeySuffix  = ":ids"
	favouriteIDsKeyPattern = favouriteIDsKeyPrefix + "*"
	cacheTTL               = 15 * time.Minute
)

func idsCacheKey(userID int64) string {
	return fmt.Sprintf("%s%d%s", favouriteIDsKeyPrefix, userID, favouriteIDsKeySuffix)
}

func (r *postgresRepository) Add(ctx context.Context, f *model.Favourite) (*model.Favourite, error) {
	query := `
        INSERT INTO favourites (creature_id, user_id, added_by, added_on, updated_by, updated_on)
        VALUES ($1, $2, $3, NOW(), $3, NOW())
        RETURNING id, creature_id, user_id, added_by, added_on, updated_by, updated_on
    `

	var created model.Favourite
	err := r.pool.QueryRow(ctx, query, f.CreatureID, f.UserID, f.AddedBy).Scan(
		&created.ID,
		&created.CreatureID,
		&created.UserID,
		&created.AddedBy,
		&created.AddedOn,
		&created.UpdatedBy,
		&created.UpdatedOn,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to add favourite: %w", err)
	}

	r.cache.Delete(ctx, idsCacheKey(f.UserID))

	return &created, nil
}

func (r *postgresRepository) Remove(ctx context.Context, userID, creatureID int64) error {
	cmdTag, err := r.pool.Exec(ctx,
		`DELETE FROM favourites WHERE user_id = $1 AND creature_id = $2`,
		userID, creatureID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove favourite: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return model.ErrFavouriteNotFound
	}

	r.cache.Delete(ctx, idsCacheKey(userID))

	return nil
}

func (r *postgresRepository) SetBackground(ctx context.Context, userID, creatureID, updatedBy int64, img []byte) error {
	return r.updateBackground(ctx, userID, creatureID, updatedBy, img)
}

func (r *postgresRepository) ClearBackground(ctx context.Context, userID, creatureID, updatedBy int64) error {
	return r.updateBackground(ctx, userID, creatureID, updatedBy, nil)
}

func (r *postgresRepository) updateBackground(ctx context.Context, userID, creatureID, updatedBy int64, img []byte) error {
	query := `
        UPDATE favourites
        SET background_img = $1, updated_by = $2, updated_on = NOW()
        WHERE user_id = $3 AND creature_id = $4
    `

	cmdTag, err := r.pool.Exec(ctx, query, img, updatedBy, userID, creatureID)
	if err != nil {
		return fmt.Errorf("failed to update favourite background: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return model.ErrFavouriteNotFound
	}

	return nil
}

func (r *postgresRepository) GetBackground(ctx context.Context, userID, creatureID int64) ([]byte, error) {
	var img []byte
	err := r.pool.QueryRow(ctx,
		`SELECT background_img FROM favourites WHERE user_id = $1 AND creature_id = $2 LIMIT 1`,
		userID, creatureID,
	).Scan(&img)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrFavouriteNotFound
		}
		return nil, fmt.Errorf("failed to get favourite background: %w", err)
	}

	return img, nil
}

func (r *postgresRepository) ListCreatureIDs(ctx context.Context, userID int64) (map[int64]struct{}, error) {
	cacheKey := idsCacheKey(userID)

	var cachedIDs []int64
	if found, err := r.cache.Get(ctx, cacheKey, &cachedIDs); err == nil && found {
		return idSet(cachedIDs), nil
	}

	rows, err := r.pool.Query(ctx,
		`SELECT DISTINCT creature_id FROM favourites WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list favourite creature ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan favourite creature id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating favourite creature ids: %w", err)
	}

	r.cache.Set(ctx, cacheKey, ids, cacheTTL)

	return idSet(ids), nil
}

// DeleteDangling removes favourites whose creature was deleted. Invalidates
// every user's cached id set since any of them may have shrunk.
func (r *postgresRepository) DeleteDangling(ctx context.Context) (int64, error) {
	cmdTag, err := r.pool.Exec(ctx, `
        DELETE FROM favourites f
        WHERE NOT EXISTS (SELECT 1 FROM creatures c WHERE c.id = f.creature_id)
    `)
	if err != nil {
		return 0, fmt.Errorf("failed to delete dangling favourites: %w", err)
	}

	removed := cmdTag.RowsAffected()
	if removed > 0 {
		r.cache.DeletePattern(ctx, favouriteIDsKeyPattern)
	}

	return removed, nil
}

func idSet(ids []int64) map[int64]struct{} {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
