package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trottiparts/trottiparts-api/internal/domain"
)

func TestGarageStatus(t *testing.T) {
	assert.True(t, domain.GarageFavorited.IsValid())
	assert.True(t, domain.GarageOwned.IsValid())
	assert.False(t, domain.GarageStatus("parked").IsValid())
}

func TestMembership(t *testing.T) {
	items := []domain.GarageItem{
		{ID: 10, ScooterModelID: 1, Status: domain.GarageFavorited},
		{ID: 11, ScooterModelID: 2, Status: domain.GarageOwned},
	}

	found := domain.Membership(items, 2)
	assert.True(t, found.InGarage)
	assert.Equal(t, domain.GarageOwned, found.Status)
	assert.Equal(t, uint(11), found.ItemID)

	missing := domain.Membership(items, 99)
	assert.False(t, missing.InGarage)
	assert.Empty(t, missing.Status)
}
