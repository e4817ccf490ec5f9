package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"bestiary-backend/internal/domains/creature/model"
	"bestiary-backend/pkg/cache"
	"bestiary-backend/pkg/database"
)

// postgresRepository implements Repository on pgxpool with a Redis
// cache-aside layer for keyed lookups.
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
	creatureCacheKeyPrefix = "creature:"
	cacheTTL               = 15 * time.Minute
)

const creatureColumns = "id, name, lore, img, created_by, created_on, updated_by, updated_on"

// Create runs the name pre-check and the insert inside one transaction so
// two concurrent creations with the same name cannot both succeed; the
// loser observes ErrDuplicateName either from the pre-check or from the
// unique constraint.
func (r *postgresRepository) Create(ctx context.Context, c *model.Creature) (*model.Creature, error) {
	created, err := database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*model.Creature, error) {
		var exists bool
		if err := tx.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM creatures WHERE name = $1)`, c.Name,
		).Scan(&exists); err != nil {
			return nil, fmt.Errorf("failed to check creature name: %w", err)
		}
		if exists {
			return nil, model.ErrDuplicateName
		}

		query := `
            INSERT INTO creatures (name, lore, img, created_by, created_on, updated_by, updated_on)
            VALUES ($1, $2, $3, $4, NOW(), $4, NOW())
            RETURNING ` + creatureColumns

		var inserted model.Creature
		err := tx.QueryRow(ctx, query, c.Name, c.Lore, c.Img, c.CreatedBy).Scan(
			&inserted.ID,
			&inserted.Name,
			&inserted.Lore,
			&inserted.Img,
			&inserted.CreatedBy,
			&inserted.CreatedOn,
			&inserted.UpdatedBy,
			&inserted.UpdatedOn,
		)
		if err != nil {
			return nil, err
		}

		return &inserted, nil
	})

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, model.ErrDuplicateName
		}
		if errors.Is(err, model.ErrDuplicateName) {
			return nil, model.ErrDuplicateName
		}
		return nil, fmt.Errorf("failed to create creature: %w", err)
	}

	return created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.Creature, error) {
	cacheKey := fmt.Sprintf("%s%d", creatureCacheKeyPrefix, id)

	var c model.Creature
	if found, err := r.cache.Get(ctx, cacheKey, &c); err == nil && found {
		return &c, nil
	}

	query := `SELECT ` + creatureColumns + ` FROM creatures WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID,
		&c.Name,
		&c.Lore,
		&c.Img,
		&c.CreatedBy,
		&c.CreatedOn,
		&c.UpdatedBy,
		&c.UpdatedOn,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrCreatureNotFound
		}
		return nil, fmt.Errorf("failed to get creature by id: %w", err)
	}

	r.cache.Set(ctx, cacheKey, &c, cacheTTL)

	return &c, nil
}

func (r *postgresRepository) Update(ctx context.Context, c *model.Creature) error {
	query := `
        UPDATE creatures
        SET name = $1, lore = $2, img = $3, updated_by = $4, updated_on = NOW()
        WHERE id = $5
    `

	cmdTag, err := r.pool.Exec(ctx, query, c.Name, c.Lore, c.Img, c.UpdatedBy, c.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return model.ErrDuplicateName
		}
		return fmt.Errorf("failed to update creature: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return model.ErrCreatureNotFound
	}

	r.cache.Delete(ctx, fmt.Sprintf("%s%d", creatureCacheKeyPrefix, c.ID))

	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM creatures WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete creature: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return model.ErrCreatureNotFound
	}

	r.cache.Delete(ctx, fmt.Sprintf("%s%d", creatureCacheKeyPrefix, id))

	return nil
}

// Query builds the WHERE clause dynamically, pages the filtered rows and
// returns both the filtered count and the unfiltered total.
func (r *postgresRepository) Query(ctx context.Context, filter model.Filter, page, limit int) ([]model.Creature, int64, int64, error) {
	if page < 1 || limit < 1 {
		return nil, 0, 0, model.ErrInvalidPageLimit
	}

	where, args := buildWhere(filter)

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + creatureColumns + ` FROM creatures`)
	queryBuilder.WriteString(where)
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY id LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2))

	offset := (page - 1) * limit
	rows, err := r.pool.Query(ctx, queryBuilder.String(), append(args, limit, offset)...)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to query creatures: %w", err)
	}
	defer rows.Close()

	var creatures []model.Creature
	for rows.Next() {
		var c model.Creature
		if err := rows.Scan(
			&c.ID,
			&c.Name,
			&c.Lore,
			&c.Img,
			&c.CreatedBy,
			&c.CreatedOn,
			&c.UpdatedBy,
			&c.UpdatedOn,
		); err != nil {
			return nil, 0, 0, fmt.Errorf("failed to scan creature: %w", err)
		}
		creatures = append(creatures, c)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, 0, fmt.Errorf("error iterating creatures: %w", err)
	}

	var matched int64
	countQuery := `SELECT COUNT(*) FROM creatures` + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&matched); err != nil {
		return nil, 0, 0, fmt.Errorf("failed to count matching creatures: %w", err)
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM creatures`).Scan(&total); err != nil {
		return nil, 0, 0, fmt.Errorf("failed to count creatures: %w", err)
	}

	return creatures, matched, total, nil
}

func (r *postgresRepository) ListFirst(ctx context.Context, n int) ([]model.Creature, error) {
	query := `SELECT ` + creatureColumns + ` FROM creatures ORDER BY id LIMIT $1`

	rows, err := r.pool.Query(ctx, query, n)
	if err != nil {
		return nil, fmt.Errorf("failed to list creatures: %w", err)
	}
	defer rows.Close()

	var creatures []model.Creature
	for rows.Next() {
		var c model.Creature
		if err := rows.Scan(
			&c.ID,
			&c.Name,
			&c.Lore,
			&c.Img,
			&c.CreatedBy,
			&c.CreatedOn,
			&c.UpdatedBy,
			&c.UpdatedOn,
		); err != nil {
			return nil, fmt.Errorf("failed to scan creature: %w", err)
		}
		creatures = append(creatures, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating creatures: %w", err)
	}

	return creatures, nil
}

// buildWhere translates a Filter into SQL. Name matching is plain LIKE, not
// ILIKE: uniqueness and filtering are case-sensitive byte comparisons.
func buildWhere(filter model.Filter) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if strings.TrimSpace(filter.Name) != "" {
		args = append(args, "%"+filter.Name+"%")
		conditions = append(conditions, fmt.Sprintf("name LIKE $%d", len(args)))
	}

	if filter.CreatedBefore != nil {
		args = append(args, *filter.CreatedBefore)
		conditions = append(conditions, fmt.Sprintf("created_on < $%d", len(args)))
	}

	if filter.IncludeIDs != nil {
		args = append(args, pq.Array(filter.IncludeIDs))
		conditions = append(conditions, fmt.Sprintf("id = ANY($%d)", len(args)))
	}

	if filter.ExcludeIDs != nil {
		args = append(args, pq.Array(filter.ExcludeIDs))
		conditions = append(conditions, fmt.Sprintf("NOT (id = ANY($%d))", len(args)))
	}

	if len(conditions) == 0 {
		return "", nil
	}

	return " WHERE " + strings.Join(conditions, " AND "), args
}
