package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propertyhub-api/internal/model"
)

func intPtr(v int) *int { return &v }

func seedProperties(t *testing.T, r *MemoryPropertyRepository) {
	t.Helper()
	ctx := context.Background()
	fixtures := []model.Property{
		{
			MLS: "C1000001", Type: "Condo", Price: 550000, Bedrooms: 1, Bathrooms: 1,
			Parkings: 0, Size: 600, YearBuilt: 2018, Tax: 2400, Status: "For Sale",
			AgentRegistrationNumber: "AG-001",
			Address: &model.Address{
				StreetNumber: "55", StreetName: "Mercer St", City: "Toronto",
				Province: "ON", PostalCode: "M5V 0W4", Country: "Canada",
			},
			Feature: &model.Feature{WalkScore: intPtr(98), TransitScore: intPtr(100)},
		},
		{
			MLS: "D2000002", Type: "Detached", Price: 1250000, Bedrooms: 4, Bathrooms: 3,
			Parkings: 2, Size: 2600, YearBuilt: 1998, Tax: 6800, Status: "For Sale",
			AgentRegistrationNumber: "AG-002",
			Address: &model.Address{
				StreetNumber: "12", StreetName: "Maple Ave", City: "Mississauga",
				Province: "ON", PostalCode: "L5B 1C9", Country: "Canada",
			},
			Feature: &model.Feature{WalkScore: intPtr(55), BikeScore: intPtr(70)},
		},
		{
			MLS: "T3000003", Type: "Townhouse", Price: 820000, Bedrooms: 3, Bathrooms: 2,
			Parkings: 1, Size: 1500, YearBuilt: 2008, Tax: 4100, Status: "Sold",
			AgentRegistrationNumber: "AG-001",
		},
	}
	for i := range fixtures {
		require.NoError(t, r.Create(ctx, &fixtures[i]))
	}
}

func TestMemoryPropertyCreateAndGet(t *testing.T) {
	r := NewMemoryPropertyRepository()
	ctx := context.Background()

	p := model.Property{MLS: "C1000001", Type: "Condo", Price: 550000}
	require.NoError(t, r.Create(ctx, &p))

	got, err := r.GetByMLS(ctx, "C1000001")
	require.NoError(t, err)
	assert.Equal(t, "Condo", got.Type)

	err = r.Create(ctx, &p)
	assert.ErrorIs(t, err, ErrAlreadyExists)

	_, err = r.GetByMLS(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryPropertyUpdateAndDelete(t *testing.T) {
	r := NewMemoryPropertyRepository()
	ctx := context.Background()

	p := model.Property{MLS: "C1000001", Type: "Condo", Price: 550000}
	require.NoError(t, r.Create(ctx, &p))

	p.Price = 540000
	require.NoError(t, r.Update(ctx, &p))
	got, err := r.GetByMLS(ctx, "C1000001")
	require.NoError(t, err)
	assert.Equal(t, 540000.0, got.Price)

	missing := model.Property{MLS: "missing"}
	assert.ErrorIs(t, r.Update(ctx, &missing), ErrNotFound)

	require.NoError(t, r.Delete(ctx, "C1000001"))
	assert.ErrorIs(t, r.Delete(ctx, "C1000001"), ErrNotFound)
}

func TestMemoryPropertyFilters(t *testing.T) {
	r := NewMemoryPropertyRepository()
	seedProperties(t, r)
	ctx := context.Background()

	byType, err := r.GetByType(ctx, "Condo")
	require.NoError(t, err)
	require.Len(t, byType, 1)
	assert.Equal(t, "C1000001", byType[0].MLS)

	cheap, err := r.GetByMaxPrice(ctx, 600000)
	require.NoError(t, err)
	require.Len(t, cheap, 1)

	// Raising a price ceiling can only grow the result set.
	mid, err := r.GetByMaxPrice(ctx, 900000)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(mid), len(cheap))
	all, err := r.GetByMaxPrice(ctx, 2000000)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(all), len(mid))
	assert.Len(t, all, 3)

	beds, err := r.GetByMinBedrooms(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, beds, 2)

	baths, err := r.GetByMinBathrooms(ctx, 3)
	require.NoError(t, err)
	require.Len(t, baths, 1)
	assert.Equal(t, "D2000002", baths[0].MLS)

	parkings, err := r.GetByMinParkings(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, parkings, 2)

	size, err := r.GetByMinSize(ctx, 1500)
	require.NoError(t, err)
	assert.Len(t, size, 2)

	year, err := r.GetByMaxYearBuilt(ctx, 2000)
	require.NoError(t, err)
	require.Len(t, year, 1)
	assert.Equal(t, "D2000002", year[0].MLS)

	tax, err := r.GetByMaxTax(ctx, 5000)
	require.NoError(t, err)
	assert.Len(t, tax, 2)

	sold, err := r.GetByStatus(ctx, "Sold")
	require.NoError(t, err)
	require.Len(t, sold, 1)
	assert.Equal(t, "T3000003", sold[0].MLS)

	byAgent, err := r.GetByAgent(ctx, "AG-001")
	require.NoError(t, err)
	assert.Len(t, byAgent, 2)

	none, err := r.GetByAgent(ctx, "AG-404")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMemoryPropertyResultsSortedAndDetached(t *testing.T) {
	r := NewMemoryPropertyRepository()
	seedProperties(t, r)
	ctx := context.Background()

	all, err := r.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "C1000001", all[0].MLS)
	assert.Equal(t, "D2000002", all[1].MLS)
	assert.Equal(t, "T3000003", all[2].MLS)

	// Mutating a returned record must not leak into the store.
	all[0].Address.City = "Ottawa"
	got, err := r.GetByMLS(ctx, "C1000001")
	require.NoError(t, err)
	assert.Equal(t, "Toronto", got.Address.City)
}
