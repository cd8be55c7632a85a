package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trottiparts/trottiparts-api/internal/domain"
	"github.com/trottiparts/trottiparts-api/internal/service"
)

type fakeGarageRepo struct {
	items  map[uint]domain.GarageItem
	nextID uint
}

func newFakeGarageRepo() *fakeGarageRepo {
	return &fakeGarageRepo{items: make(map[uint]domain.GarageItem), nextID: 1}
}

func (f *fakeGarageRepo) Create(_ context.Context, item domain.GarageItem) (domain.GarageItem, error) {
	for _, existing := range f.items {
		if existing.UserID == item.UserID && existing.ScooterModelID == item.ScooterModelID {
			return domain.GarageItem{}, service.ErrAlreadyInGarage
		}
	}
	item.ID = f.nextID
	f.nextID++
	f.items[item.ID] = item
	return item, nil
}

func (f *fakeGarageRepo) FindByUserID(_ context.Context, userID uint) ([]domain.GarageItem, error) {
	var out []domain.GarageItem
	for _, item := range f.items {
		if item.UserID == userID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakeGarageRepo) FindByID(_ context.Context, id uint) (domain.GarageItem, error) {
	item, ok := f.items[id]
	if !ok {
		return domain.GarageItem{}, service.ErrGarageItemNotFound
	}
	return item, nil
}

func (f *fakeGarageRepo) UpdateStatus(_ context.Context, id uint, status domain.GarageStatus) (domain.GarageItem, error) {
	item, ok := f.items[id]
	if !ok {
		return domain.GarageItem{}, service.ErrGarageItemNotFound
	}
	item.Status = status
	f.items[id] = item
	return item, nil
}

func (f *fakeGarageRepo) UpdateDetails(_ context.Context, id uint, nickname, photoURL string, mileageKM int) (domain.GarageItem, error) {
	item, ok := f.items[id]
	if !ok {
		return domain.GarageItem{}, service.ErrGarageItemNotFound
	}
	item.Nickname = nickname
	item.PhotoURL = photoURL
	item.MileageKM = mileageKM
	f.items[id] = item
	return item, nil
}

func (f *fakeGarageRepo) Delete(_ context.Context, id uint) error {
	if _, ok := f.items[id]; !ok {
		return service.ErrGarageItemNotFound
	}
	delete(f.items, id)
	return nil
}

type fakeScooterFinder struct {
	known map[uint]bool
}

func (f *fakeScooterFinder) FindScooterByID(_ context.Context, id uint) (domain.ScooterModel, error) {
	if !f.known[id] {
		return domain.ScooterModel{}, service.ErrScooterNotFound
	}
	return domain.ScooterModel{ID: id}, nil
}

type fakePointsAwarder struct {
	awarded map[uint]int
	fail    bool
}

func (f *fakePointsAwarder) AddPoints(_ context.Context, userID uint, points int) (domain.Profile, error) {
	if f.fail {
		return domain.Profile{}, service.ErrProfileNotFound
	}
	if f.awarded == nil {
		f.awarded = make(map[uint]int)
	}
	f.awarded[userID] += points
	return domain.Profile{UserID: userID, PerformancePoints: f.awarded[userID]}, nil
}

func newGarageFixture() (*service.GarageService, *fakeGarageRepo, *fakePointsAwarder) {
	repo := newFakeGarageRepo()
	points := &fakePointsAwarder{}
	svc := service.NewGarageService(repo, &fakeScooterFinder{known: map[uint]bool{1: true, 2: true}}, points)
	return svc, repo, points
}

func TestGarageAddScooter(t *testing.T) {
	svc, _, points := newGarageFixture()

	item, err := svc.AddScooter(context.Background(), 7, 1, domain.GarageFavorited)
	require.NoError(t, err)

	assert.Equal(t, domain.GarageFavorited, item.Status)
	assert.Equal(t, domain.PointsGarageAdd, points.awarded[7])
}

func TestGarageAddScooter_UnknownScooter(t *testing.T) {
	svc, repo, _ := newGarageFixture()

	_, err := svc.AddScooter(context.Background(), 7, 99, domain.GarageFavorited)
	assert.ErrorIs(t, err, service.ErrScooterNotFound)
	assert.Empty(t, repo.items)
}

func TestGarageAddScooter_Duplicate(t *testing.T) {
	svc, _, _ := newGarageFixture()

	_, err := svc.AddScooter(context.Background(), 7, 1, domain.GarageFavorited)
	require.NoError(t, err)

	_, err = svc.AddScooter(context.Background(), 7, 1, domain.GarageOwned)
	assert.ErrorIs(t, err, service.ErrAlreadyInGarage)
}

func TestGarageAddScooter_PointsFailureDoesNotUndoAdd(t *testing.T) {
	svc, repo, points := newGarageFixture()
	points.fail = true

	item, err := svc.AddScooter(context.Background(), 7, 1, domain.GarageFavorited)
	require.NoError(t, err)

	_, ok := repo.items[item.ID]
	assert.True(t, ok)
}

func TestGaragePromoteAndDemote_PreserveDetails(t *testing.T) {
	svc, _, points := newGarageFixture()

	item, err := svc.AddScooter(context.Background(), 7, 1, domain.GarageFavorited)
	require.NoError(t, err)

	_, err = svc.UpdateDetails(context.Background(), 7, item.ID, "Ma titine", "https://img.example/titine.jpg", 1200)
	require.NoError(t, err)

	promoted, err := svc.Promote(context.Background(), 7, item.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.GarageOwned, promoted.Status)
	assert.Equal(t, "Ma titine", promoted.Nickname)
	assert.Equal(t, 1200, promoted.MileageKM)
	assert.Equal(t, domain.PointsGarageAdd+domain.PointsPromote, points.awarded[7])

	demoted, err := svc.Demote(context.Background(), 7, item.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.GarageFavorited, demoted.Status)
	assert.Equal(t, "Ma titine", demoted.Nickname)
	assert.Equal(t, 1200, demoted.MileageKM)

	// Demoting awards nothing.
	assert.Equal(t, domain.PointsGarageAdd+domain.PointsPromote, points.awarded[7])
}

func TestGaragePromote_AlreadyOwnedIsIdempotent(t *testing.T) {
	svc, _, points := newGarageFixture()

	item, err := svc.AddScooter(context.Background(), 7, 1, domain.GarageOwned)
	require.NoError(t, err)
	awardedAfterAdd := points.awarded[7]

	promoted, err := svc.Promote(context.Background(), 7, item.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.GarageOwned, promoted.Status)
	assert.Equal(t, awardedAfterAdd, points.awarded[7])
}

func TestGarage_OwnershipChecks(t *testing.T) {
	svc, _, _ := newGarageFixture()

	item, err := svc.AddScooter(context.Background(), 7, 1, domain.GarageFavorited)
	require.NoError(t, err)

	_, err = svc.Promote(context.Background(), 8, item.ID)
	assert.ErrorIs(t, err, service.ErrGarageItemNotFound)

	err = svc.RemoveScooter(context.Background(), 8, item.ID)
	assert.ErrorIs(t, err, service.ErrGarageItemNotFound)
}

func TestGarageMembership(t *testing.T) {
	svc, _, _ := newGarageFixture()

	item, err := svc.AddScooter(context.Background(), 7, 2, domain.GarageOwned)
	require.NoError(t, err)

	membership, err := svc.Membership(context.Background(), 7, 2)
	require.NoError(t, err)
	assert.True(t, membership.InGarage)
	assert.Equal(t, domain.GarageOwned, membership.Status)
	assert.Equal(t, item.ID, membership.ItemID)

	membership, err = svc.Membership(context.Background(), 7, 1)
	require.NoError(t, err)
	assert.False(t, membership.InGarage)
}
