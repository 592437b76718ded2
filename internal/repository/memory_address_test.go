package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propertyhub-api/internal/model"
)

func newAddressFixture(t *testing.T) (*MemoryPropertyRepository, *MemoryAddressRepository) {
	t.Helper()
	props := NewMemoryPropertyRepository()
	seedProperties(t, props)
	return props, NewMemoryAddressRepository(props)
}

func TestMemoryAddressProjections(t *testing.T) {
	_, r := newAddressFixture(t)
	ctx := context.Background()

	// T3000003 has no address and must not appear in any projection.
	all, err := r.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	addresses, err := r.GetAddressesByCity(ctx, "TORONTO")
	require.NoError(t, err)
	require.Len(t, addresses, 1, "city match is case-insensitive")
	assert.Equal(t, "Mercer St", addresses[0].StreetName)

	byCity, err := r.GetPropertiesByCity(ctx, "mississauga")
	require.NoError(t, err)
	require.Len(t, byCity, 1)
	assert.Equal(t, "D2000002", byCity[0].MLS)

	byStreet, err := r.GetPropertiesByStreet(ctx, "55", "mercer st")
	require.NoError(t, err)
	require.Len(t, byStreet, 1)
	assert.Equal(t, "C1000001", byStreet[0].MLS)

	byPostal, err := r.GetPropertiesByPostalCode(ctx, "l5b 1c9")
	require.NoError(t, err)
	require.Len(t, byPostal, 1)
	assert.Equal(t, "D2000002", byPostal[0].MLS)

	none, err := r.GetPropertiesByCity(ctx, "Vancouver")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMemoryAddressSingletonRules(t *testing.T) {
	props, r := newAddressFixture(t)
	ctx := context.Background()

	addr := model.Address{
		StreetNumber: "9", StreetName: "King St", City: "Hamilton",
		Province: "ON", PostalCode: "L8P 1A1", Country: "Canada",
	}

	// Adding to a property that already has an address conflicts.
	assert.ErrorIs(t, r.Add(ctx, "C1000001", addr), ErrAlreadyExists)

	// Adding to one without an address succeeds and stamps lastUpdate.
	before, err := props.GetByMLS(ctx, "T3000003")
	require.NoError(t, err)
	require.NoError(t, r.Add(ctx, "T3000003", addr))
	after, err := props.GetByMLS(ctx, "T3000003")
	require.NoError(t, err)
	require.NotNil(t, after.Address)
	assert.Equal(t, "Hamilton", after.Address.City)
	assert.True(t, after.LastUpdate.After(before.LastUpdate))

	// Updating replaces the whole address.
	addr.City = "Burlington"
	require.NoError(t, r.Update(ctx, "T3000003", addr))
	after, err = props.GetByMLS(ctx, "T3000003")
	require.NoError(t, err)
	assert.Equal(t, "Burlington", after.Address.City)

	// Delete nulls the field and is idempotent.
	require.NoError(t, r.Delete(ctx, "T3000003"))
	after, err = props.GetByMLS(ctx, "T3000003")
	require.NoError(t, err)
	assert.Nil(t, after.Address)
	require.NoError(t, r.Delete(ctx, "T3000003"))

	// Updating an absent address is an error.
	assert.ErrorIs(t, r.Update(ctx, "T3000003", addr), ErrNotFound)

	// Unknown property.
	assert.ErrorIs(t, r.Add(ctx, "missing", addr), ErrNotFound)
	assert.ErrorIs(t, r.Delete(ctx, "missing"), ErrNotFound)
}
