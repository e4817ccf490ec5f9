package service

import (
	"context"
	"encoding/base64"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bestiary-backend/internal/domains/creature/model"
	"bestiary-backend/pkg/imagecodec"
)

const testMaxImageBytes = 16 * 1024 * 1024

var pngBytes = []byte("\x89PNG\r\n\x1a\nfake-png-payload")

func pngDataURI() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes)
}

// fakeCreatureRepo keeps creatures in a slice ordered by id and implements
// the same filter semantics as the SQL layer.
type fakeCreatureRepo struct {
	creatures []model.Creature
	nextID    int64
}

func newFakeCreatureRepo() *fakeCreatureRepo {
	return &fakeCreatureRepo{nextID: 1}
}

func (r *fakeCreatureRepo) Create(_ context.Context, c *model.Creature) (*model.Creature, error) {
	for _, existing := range r.creatures {
		if existing.Name == c.Name {
			return nil, model.ErrDuplicateName
		}
	}
	created := *c
	created.ID = r.nextID
	r.nextID++
	r.creatures = append(r.creatures, created)
	return &created, nil
}

func (r *fakeCreatureRepo) GetByID(_ context.Context, id int64) (*model.Creature, error) {
	for _, c := range r.creatures {
		if c.ID == id {
			found := c
			return &found, nil
		}
	}
	return nil, model.ErrCreatureNotFound
}

func (r *fakeCreatureRepo) Update(_ context.Context, c *model.Creature) error {
	for i, existing := range r.creatures {
		if existing.ID == c.ID {
			updated := *c
			updated.CreatedBy = existing.CreatedBy
			updated.CreatedOn = existing.CreatedOn
			r.creatures[i] = updated
			return nil
		}
	}
	return model.ErrCreatureNotFound
}

func (r *fakeCreatureRepo) Delete(_ context.Context, id int64) error {
	for i, c := range r.creatures {
		if c.ID == id {
			r.creatures = append(r.creatures[:i], r.creatures[i+1:]...)
			return nil
		}
	}
	return model.ErrCreatureNotFound
}

func (r *fakeCreatureRepo) Query(_ context.Context, filter model.Filter, page, limit int) ([]model.Creature, int64, int64, error) {
	if page < 1 || limit < 1 {
		return nil, 0, 0, model.ErrInvalidPageLimit
	}

	matched := make([]model.Creature, 0)
	for _, c := range r.creatures {
		if filter.Name != "" && !strings.Contains(c.Name, filter.Name) {
			continue
		}
		if filter.CreatedBefore != nil && !c.CreatedOn.Before(*filter.CreatedBefore) {
			continue
		}
		if filter.IncludeIDs != nil && !idIn(c.ID, filter.IncludeIDs) {
			continue
		}
		if filter.ExcludeIDs != nil && idIn(c.ID, filter.ExcludeIDs) {
			continue
		}
		matched = append(matched, c)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	start := (page - 1) * limit
	end := start + limit
	if start > len(matched) {
		start = len(matched)
	}
	if end > len(matched) {
		end = len(matched)
	}

	return matched[start:end], int64(len(matched)), int64(len(r.creatures)), nil
}

func (r *fakeCreatureRepo) ListFirst(_ context.Context, n int) ([]model.Creature, error) {
	all := make([]model.Creature, len(r.creatures))
	copy(all, r.creatures)
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	if n > len(all) {
		n = len(all)
	}
	return all[:n], nil
}

func idIn(id int64, ids []int64) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

// fakeFavouriteQuerier satisfies only the favourite repository methods the
// catalog engine touches.
type fakeFavouriteQuerier struct {
	byUser map[int64]map[int64]struct{}
}

func newFakeFavouriteQuerier() *fakeFavouriteQuerier {
	return &fakeFavouriteQuerier{byUser: make(map[int64]map[int64]struct{})}
}

func (f *fakeFavouriteQuerier) favourite(userID, creatureID int64) {
	if f.byUser[userID] == nil {
		f.byUser[userID] = make(map[int64]struct{})
	}
	f.byUser[userID][creatureID] = struct{}{}
}

func (f *fakeFavouriteQuerier) ListCreatureIDs(_ context.Context, userID int64) (map[int64]struct{}, error) {
	ids := make(map[int64]struct{}, len(f.byUser[userID]))
	for id := range f.byUser[userID] {
		ids[id] = struct{}{}
	}
	return ids, nil
}

func newTestService(t *testing.T) (Service, *fakeCreatureRepo, *fakeFavouriteQuerier) {
	t.Helper()
	creatures := newFakeCreatureRepo()
	favourites := newFakeFavouriteQuerier()
	return NewCreatureService(creatures, favourites, testMaxImageBytes), creatures, favourites
}

func seedCreatures(t *testing.T, svc Service, names ...string) []int64 {
	t.Helper()
	ids := make([]int64, 0, len(names))
	for _, name := range names {
		detail, err := svc.Create(context.Background(), 1, &model.CreateCreatureRequest{Name: name})
		require.NoError(t, err)
		ids = append(ids, detail.ID)
	}
	return ids
}

func TestCreateDuplicateName(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, 1, &model.CreateCreatureRequest{Name: "Griffin"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, 1, &model.CreateCreatureRequest{Name: "Griffin"})
	assert.ErrorIs(t, err, model.ErrDuplicateName)
}

func TestCreateValidatesName(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Create(context.Background(), 1, &model.CreateCreatureRequest{Name: ""})
	assert.Error(t, err)
}

func TestCreateRejectsNonImagePayload(t *testing.T) {
	svc, _, _ := newTestService(t)

	pdf := "data:application/pdf;base64," + base64.StdEncoding.EncodeToString([]byte("%PDF-1.7 content"))
	_, err := svc.Create(context.Background(), 1, &model.CreateCreatureRequest{
		Name: "Griffin",
		Img:  pdf,
	})
	assert.ErrorIs(t, err, model.ErrUnsupportedImage)
}

func TestCreateRejectsMalformedDataURI(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Create(context.Background(), 1, &model.CreateCreatureRequest{
		Name: "Griffin",
		Img:  "no comma in here",
	})
	assert.ErrorIs(t, err, imagecodec.ErrMalformedDataURI)
}

func TestCreateRejectsOversizedImage(t *testing.T) {
	creatures := newFakeCreatureRepo()
	favourites := newFakeFavouriteQuerier()
	svc := NewCreatureService(creatures, favourites, 8)

	_, err := svc.Create(context.Background(), 1, &model.CreateCreatureRequest{
		Name: "Griffin",
		Img:  pngDataURI(),
	})
	assert.ErrorIs(t, err, model.ErrImageTooLarge)
}

func TestCreateStoresDecodedImage(t *testing.T) {
	svc, creatures, _ := newTestService(t)

	detail, err := svc.Create(context.Background(), 1, &model.CreateCreatureRequest{
		Name: "Griffin",
		Img:  pngDataURI(),
	})
	require.NoError(t, err)
	require.NotNil(t, detail.Img)
	assert.Equal(t, pngDataURI(), *detail.Img)

	stored, err := creatures.GetByID(context.Background(), detail.ID)
	require.NoError(t, err)
	assert.Equal(t, pngBytes, stored.Img)
}

func TestUpdateReplacesWholesale(t *testing.T) {
	svc, creatures, _ := newTestService(t)
	ctx := context.Background()

	detail, err := svc.Create(ctx, 1, &model.CreateCreatureRequest{
		Name: "Griffin",
		Lore: "old lore",
		Img:  pngDataURI(),
	})
	require.NoError(t, err)

	// Empty Img clears the stored image rather than keeping it.
	err = svc.Update(ctx, 2, detail.ID, &model.UpdateCreatureRequest{
		Name: "Gryphon",
		Lore: "new lore",
	})
	require.NoError(t, err)

	stored, err := creatures.GetByID(ctx, detail.ID)
	require.NoError(t, err)
	assert.Equal(t, "Gryphon", stored.Name)
	assert.Equal(t, "new lore", stored.Lore)
	assert.Nil(t, stored.Img)
	assert.Equal(t, int64(2), stored.UpdatedBy)
}

func TestUpdateMissingCreature(t *testing.T) {
	svc, _, _ := newTestService(t)

	err := svc.Update(context.Background(), 1, 999, &model.UpdateCreatureRequest{Name: "Ghost"})
	assert.ErrorIs(t, err, model.ErrCreatureNotFound)
}

func TestDeleteMissingCreature(t *testing.T) {
	svc, _, _ := newTestService(t)

	err := svc.Delete(context.Background(), 999)
	assert.ErrorIs(t, err, model.ErrCreatureNotFound)
}

func TestListNameFilterReportsBothCounts(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	seedCreatures(t, svc, "Griffin", "Dragon", "Unicorn")

	result, err := svc.ListCreatures(ctx, 1, &model.ListCreaturesRequest{
		Name:  "Griff",
		Page:  1,
		Limit: 10,
	})
	require.NoError(t, err)

	require.Len(t, result.Items, 1)
	assert.Equal(t, "Griffin", result.Items[0].Name)
	assert.Equal(t, int64(1), result.MatchedCount)
	assert.Equal(t, int64(3), result.TotalCount)
}

func TestListPagination(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	seedCreatures(t, svc, "a1", "a2", "a3", "a4", "a5")

	page2, err := svc.ListCreatures(ctx, 1, &model.ListCreaturesRequest{Page: 2, Limit: 2})
	require.NoError(t, err)
	require.Len(t, page2.Items, 2)
	assert.Equal(t, "a3", page2.Items[0].Name)
	assert.Equal(t, "a4", page2.Items[1].Name)
	assert.Equal(t, int64(5), page2.MatchedCount)

	// Counts describe the whole filtered set, not the page.
	page3, err := svc.ListCreatures(ctx, 1, &model.ListCreaturesRequest{Page: 3, Limit: 2})
	require.NoError(t, err)
	require.Len(t, page3.Items, 1)
	assert.Equal(t, int64(5), page3.MatchedCount)

	beyond, err := svc.ListCreatures(ctx, 1, &model.ListCreaturesRequest{Page: 9, Limit: 2})
	require.NoError(t, err)
	assert.Empty(t, beyond.Items)
	assert.Equal(t, int64(5), beyond.MatchedCount)
}

// The three favourite scopes partition the catalog: unscoped equals
// onlyFavorites plus excludeFavorites with no overlap.
func TestListFavouriteScoping(t *testing.T) {
	svc, _, favourites := newTestService(t)
	ctx := context.Background()
	const userID int64 = 7

	ids := seedCreatures(t, svc, "Griffin", "Dragon", "Unicorn", "Kraken")
	favourites.favourite(userID, ids[0])
	favourites.favourite(userID, ids[2])

	all, err := svc.ListCreatures(ctx, userID, &model.ListCreaturesRequest{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, all.Items, 4)

	only, err := svc.ListCreatures(ctx, userID, &model.ListCreaturesRequest{
		Page: 1, Limit: 10, OnlyFavorites: true,
	})
	require.NoError(t, err)
	require.Len(t, only.Items, 2)
	for _, item := range only.Items {
		assert.True(t, item.IsFavourite)
	}

	excluded, err := svc.ListCreatures(ctx, userID, &model.ListCreaturesRequest{
		Page: 1, Limit: 10, ExcludeFavorites: true,
	})
	require.NoError(t, err)
	require.Len(t, excluded.Items, 2)
	for _, item := range excluded.Items {
		assert.False(t, item.IsFavourite)
	}

	assert.Equal(t, all.MatchedCount, only.MatchedCount+excluded.MatchedCount)
}

// A user with no favourites asking for only favourites gets an empty page,
// never the whole catalog.
func TestListOnlyFavouritesEmptySet(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	seedCreatures(t, svc, "Griffin", "Dragon")

	result, err := svc.ListCreatures(ctx, 1, &model.ListCreaturesRequest{
		Page: 1, Limit: 10, OnlyFavorites: true,
	})
	require.NoError(t, err)
	assert.Empty(t, result.Items)
	assert.Equal(t, int64(0), result.MatchedCount)
}

func TestListAnnotatesFavourites(t *testing.T) {
	svc, _, favourites := newTestService(t)
	ctx := context.Background()
	const userID int64 = 7

	ids := seedCreatures(t, svc, "Griffin", "Dragon")
	favourites.favourite(userID, ids[1])

	result, err := svc.ListCreatures(ctx, userID, &model.ListCreaturesRequest{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, result.Items, 2)
	assert.False(t, result.Items[0].IsFavourite)
	assert.True(t, result.Items[1].IsFavourite)

	// Another user sees the same catalog unannotated.
	other, err := svc.ListCreatures(ctx, 8, &model.ListCreaturesRequest{Page: 1, Limit: 10})
	require.NoError(t, err)
	for _, item := range other.Items {
		assert.False(t, item.IsFavourite)
	}
}

// The offline snapshot ignores every filter and favourite flag and serves
// the first creatures with favourite annotation forced off.
func TestListOfflineSnapshot(t *testing.T) {
	svc, _, favourites := newTestService(t)
	ctx := context.Background()
	const userID int64 = 7

	names := make([]string, 0, 12)
	for _, n := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"} {
		names = append(names, "creature-"+n)
	}
	ids := seedCreatures(t, svc, names...)
	favourites.favourite(userID, ids[0])

	result, err := svc.ListCreatures(ctx, userID, &model.ListCreaturesRequest{
		Name:            "creature-z",
		Page:            5,
		Limit:           2,
		OnlyFavorites:   true,
		OfflineSnapshot: true,
	})
	require.NoError(t, err)

	require.Len(t, result.Items, 10)
	assert.Equal(t, "creature-a", result.Items[0].Name)
	for _, item := range result.Items {
		assert.False(t, item.IsFavourite)
	}
}

func TestListOfflineSnapshotSmallCatalog(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	seedCreatures(t, svc, "Griffin", "Dragon")

	result, err := svc.ListCreatures(ctx, 1, &model.ListCreaturesRequest{OfflineSnapshot: true})
	require.NoError(t, err)
	assert.Len(t, result.Items, 2)
}

func TestGetDetails(t *testing.T) {
	svc, _, favourites := newTestService(t)
	ctx := context.Background()
	const userID int64 = 7

	created, err := svc.Create(ctx, 1, &model.CreateCreatureRequest{
		Name: "Griffin",
		Lore: "eagle and lion",
		Img:  pngDataURI(),
	})
	require.NoError(t, err)
	favourites.favourite(userID, created.ID)

	detail, err := svc.GetDetails(ctx, userID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Griffin", detail.Name)
	assert.Equal(t, "eagle and lion", detail.Lore)
	assert.True(t, detail.IsFavourite)
	require.NotNil(t, detail.Img)
	assert.Equal(t, pngDataURI(), *detail.Img)

	_, err = svc.GetDetails(ctx, userID, 999)
	assert.ErrorIs(t, err, model.ErrCreatureNotFound)
}
