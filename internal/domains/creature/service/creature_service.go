package service

import (
	"context"

	"bestiary-backend/internal/domains/creature/model"
	"bestiary-backend/internal/domains/creature/repository"
	"bestiary-backend/pkg/imagecodec"
)

// offlineSnapshotSize is the fixed size of the unfiltered starter pack
// served to clients building an offline cache.
const offlineSnapshotSize = 10

// FavouriteLister is the slice of the favourite store the catalog needs:
// just the id set for scoping and annotation.
type FavouriteLister interface {
	ListCreatureIDs(ctx context.Context, userID int64) (map[int64]struct{}, error)
}

type creatureServiceImpl struct {
	creatures     repository.Repository
	favourites    FavouriteLister
	maxImageBytes int64
}

func NewCreatureService(creatures repository.Repository, favourites FavouriteLister, maxImageBytes int64) Service {
	return &creatureServiceImpl{
		creatures:     creatures,
		favourites:    favourites,
		maxImageBytes: maxImageBytes,
	}
}

func (s *creatureServiceImpl) ListCreatures(ctx context.Context, userID int64, req *model.ListCreaturesRequest) (*model.ListCreaturesResult, error) {
	// The offline snapshot bypasses filters, favourite scoping and
	// pagination: first 10 creatures in store order, never annotated as
	// favourites.
	if req.OfflineSnapshot {
		return s.offlineSnapshot(ctx)
	}

	favouriteIDs, err := s.favourites.ListCreatureIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	filter := model.Filter{
		Name:          req.Name,
		CreatedBefore: req.Latest,
	}

	// Three-way favourite scope: constrain to the favourite id set, its
	// complement, or leave membership unfiltered but reported.
	switch {
	case req.OnlyFavorites:
		filter.IncludeIDs = idSlice(favouriteIDs)
	case req.ExcludeFavorites:
		filter.ExcludeIDs = idSlice(favouriteIDs)
	}

	page, limit := req.Page, req.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = offlineSnapshotSize
	}

	creatures, matched, total, err := s.creatures.Query(ctx, filter, page, limit)
	if err != nil {
		return nil, err
	}

	items := make([]model.CreatureListItem, 0, len(creatures))
	for _, c := range creatures {
		_, isFavourite := favouriteIDs[c.ID]
		items = append(items, model.CreatureListItem{
			ID:          c.ID,
			Name:        c.Name,
			Img:         imgDataURI(c.Img),
			IsFavourite: isFavourite,
		})
	}

	return &model.ListCreaturesResult{
		Items:        items,
		MatchedCount: matched,
		TotalCount:   total,
	}, nil
}

func (s *creatureServiceImpl) offlineSnapshot(ctx context.Context) (*model.ListCreaturesResult, error) {
	creatures, err := s.creatures.ListFirst(ctx, offlineSnapshotSize)
	if err != nil {
		return nil, err
	}

	items := make([]model.CreatureListItem, 0, len(creatures))
	for _, c := range creatures {
		items = append(items, model.CreatureListItem{
			ID:          c.ID,
			Name:        c.Name,
			Img:         imgDataURI(c.Img),
			IsFavourite: false,
		})
	}

	return &model.ListCreaturesResult{
		Items:        items,
		MatchedCount: int64(len(items)),
		TotalCount:   int64(len(items)),
	}, nil
}

func (s *creatureServiceImpl) GetDetails(ctx context.Context, userID, creatureID int64) (*model.CreatureDetail, error) {
	c, err := s.creatures.GetByID(ctx, creatureID)
	if err != nil {
		return nil, err
	}

	favouriteIDs, err := s.favourites.ListCreatureIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	_, isFavourite := favouriteIDs[c.ID]

	return &model.CreatureDetail{
		ID:          c.ID,
		Name:        c.Name,
		Img:         imgDataURI(c.Img),
		Lore:        c.Lore,
		IsFavourite: isFavourite,
	}, nil
}

func (s *creatureServiceImpl) Create(ctx context.Context, createdBy int64, req *model.CreateCreatureRequest) (*model.CreatureDetail, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	img, err := s.decodeImage(req.Img)
	if err != nil {
		return nil, err
	}

	created, err := s.creatures.Create(ctx, &model.Creature{
		Name:      req.Name,
		Lore:      req.Lore,
		Img:       img,
		CreatedBy: createdBy,
		UpdatedBy: createdBy,
	})
	if err != nil {
		return nil, err
	}

	return &model.CreatureDetail{
		ID:   created.ID,
		Name: created.Name,
		Img:  imgDataURI(created.Img),
		Lore: created.Lore,
	}, nil
}

// Update is a full replace of name, lore and image: an empty Img clears the
// stored image rather than keeping it.
func (s *creatureServiceImpl) Update(ctx context.Context, updatedBy, creatureID int64, req *model.UpdateCreatureRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	img, err := s.decodeImage(req.Img)
	if err != nil {
		return err
	}

	return s.creatures.Update(ctx, &model.Creature{
		ID:        creatureID,
		Name:      req.Name,
		Lore:      req.Lore,
		Img:       img,
		UpdatedBy: updatedBy,
	})
}

func (s *creatureServiceImpl) Delete(ctx context.Context, creatureID int64) error {
	return s.creatures.Delete(ctx, creatureID)
}

// decodeImage turns an optional data-URI payload into raw bytes and applies
// the uniform ingestion policy: size bound plus signature check.
func (s *creatureServiceImpl) decodeImage(dataURI string) ([]byte, error) {
	if dataURI == "" {
		return nil, nil
	}

	img, err := imagecodec.FromDataURI(dataURI)
	if err != nil {
		return nil, err
	}

	if int64(len(img)) > s.maxImageBytes {
		return nil, model.ErrImageTooLarge
	}

	if !imagecodec.IsSupportedImage(img) {
		return nil, model.ErrUnsupportedImage
	}

	return img, nil
}

func imgDataURI(img []byte) *string {
	uri := imagecodec.ToDataURI(img)
	if uri == "" {
		return nil
	}
	return &uri
}

func idSlice(set map[int64]struct{}) []int64 {
	ids := make([]int64, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	return ids
}
