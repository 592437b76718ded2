package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propertyhub-api/internal/model"
)

func intPtr(v int) *int           { return &v }
func strPtr(v string) *string     { return &v }
func floatPtr(v float64) *float64 { return &v }

func sampleProperty() model.Property {
	listed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return model.Property{
		MLS:                     "X1234567",
		Type:                    "Condo",
		Price:                   650000,
		Bedrooms:                2,
		Bathrooms:               2,
		Parkings:                1,
		Size:                    850,
		YearBuilt:               2015,
		Tax:                     3200.50,
		Status:                  "For Sale",
		Description:             "Bright corner unit",
		AgentRegistrationNumber: "AG-001",
		ImageUrls:               []string{"https://img.example.com/a.jpg"},
		Address: &model.Address{
			StreetNumber: "55",
			StreetName:   "Mercer St",
			Unit:         "1203",
			City:         "Toronto",
			Province:     "ON",
			PostalCode:   "M5V 0W4",
			Country:      "Canada",
		},
		Feature: &model.Feature{
			WalkScore:    intPtr(98),
			TransitScore: intPtr(100),
		},
		DateListed: listed,
		LastUpdate: listed,
	}
}

func TestPropertyFromCreateDtoStampsDates(t *testing.T) {
	before := time.Now().UTC()
	p := PropertyFromCreateDto(PropertyCreateDto{
		MLS:    "N7654321",
		Type:   "Detached",
		Price:  1200000,
		Size:   2400,
		Status: "For Sale",
	})
	after := time.Now().UTC()

	require.NotNil(t, p)
	assert.Equal(t, "N7654321", p.MLS)
	assert.False(t, p.DateListed.Before(before))
	assert.False(t, p.DateListed.After(after))
	assert.Equal(t, p.DateListed, p.LastUpdate)
	assert.Nil(t, p.Address)
	assert.Nil(t, p.Feature)
}

func TestOverwritePropertyResetsOmittedFields(t *testing.T) {
	p := sampleProperty()
	listed := p.DateListed

	// A PUT body that only carries type, price and status. Everything else
	// was omitted and must reset to its zero value.
	OverwriteProperty(&p, PropertyUpdateDto{
		Type:   strPtr("Condo"),
		Price:  floatPtr(700000),
		Status: strPtr("Sold"),
	})

	assert.Equal(t, "X1234567", p.MLS, "key is immutable")
	assert.Equal(t, listed, p.DateListed, "dateListed is immutable")
	assert.Equal(t, 700000.0, p.Price)
	assert.Equal(t, "Sold", p.Status)
	assert.Zero(t, p.Bedrooms)
	assert.Zero(t, p.Bathrooms)
	assert.Zero(t, p.Size)
	assert.Zero(t, p.Tax)
	assert.Empty(t, p.Description)
	assert.Empty(t, p.AgentRegistrationNumber)
	assert.Nil(t, p.Address, "omitted address is cleared")
	assert.Nil(t, p.Feature, "omitted feature is cleared")
	assert.Nil(t, p.ImageUrls)
	assert.True(t, p.LastUpdate.After(listed))
}

func TestMergePropertyKeepsOmittedFields(t *testing.T) {
	p := sampleProperty()
	listed := p.DateListed

	MergeProperty(&p, PropertyUpdateDto{
		Price:  floatPtr(625000),
		Status: strPtr("Sold"),
	})

	assert.Equal(t, 625000.0, p.Price)
	assert.Equal(t, "Sold", p.Status)
	assert.Equal(t, 2, p.Bedrooms, "untouched field survives")
	assert.Equal(t, "Bright corner unit", p.Description)
	require.NotNil(t, p.Address)
	assert.Equal(t, "Toronto", p.Address.City)
	require.NotNil(t, p.Feature)
	assert.Equal(t, 98, *p.Feature.WalkScore)
	assert.True(t, p.LastUpdate.After(listed))
}

func TestPropertyToUpdateDtoIsFullyPopulated(t *testing.T) {
	d := PropertyToUpdateDto(sampleProperty())

	require.NotNil(t, d.Type)
	require.NotNil(t, d.Price)
	require.NotNil(t, d.Bedrooms)
	require.NotNil(t, d.Status)
	require.NotNil(t, d.Description)
	require.NotNil(t, d.Address)
	require.NotNil(t, d.Feature)
	assert.Equal(t, "Condo", *d.Type)
	assert.Equal(t, "Toronto", d.Address.City)
}

func TestPropertyToDtoDetachesSlices(t *testing.T) {
	p := sampleProperty()
	d := PropertyToDto(p)

	d.ImageUrls[0] = "mutated"
	assert.Equal(t, "https://img.example.com/a.jpg", p.ImageUrls[0])

	d.Feature.WalkScore = intPtr(1)
	assert.Equal(t, 98, *p.Feature.WalkScore)
}

func TestOverwriteAgentResetsOmittedFields(t *testing.T) {
	a := model.Agent{
		RegistrationNumber:   "AG-001",
		Name:                 "Dana Reyes",
		RegistrationCategory: "Broker",
		BrokerageTradeName:   "Reyes Realty",
		BrokeragePhone:       "416-555-0101",
		BrokerageEmail:       "dana@reyesrealty.ca",
		BrokerageAddress:     model.Address{City: "Toronto"},
	}

	OverwriteAgent(&a, AgentUpdateDto{
		Name:                 strPtr("Dana Reyes"),
		RegistrationCategory: strPtr("Salesperson"),
	})

	assert.Equal(t, "AG-001", a.RegistrationNumber, "key is immutable")
	assert.Equal(t, "Salesperson", a.RegistrationCategory)
	assert.Empty(t, a.BrokerageTradeName)
	assert.Empty(t, a.BrokerageEmail)
	assert.Equal(t, model.Address{}, a.BrokerageAddress)
}

func TestMergeAgentKeepsOmittedFields(t *testing.T) {
	a := model.Agent{
		RegistrationNumber:   "AG-001",
		Name:                 "Dana Reyes",
		RegistrationCategory: "Broker",
		BrokerageTradeName:   "Reyes Realty",
		BrokerageEmail:       "dana@reyesrealty.ca",
	}

	MergeAgent(&a, AgentUpdateDto{BrokeragePhone: strPtr("416-555-0199")})

	assert.Equal(t, "416-555-0199", a.BrokeragePhone)
	assert.Equal(t, "Broker", a.RegistrationCategory)
	assert.Equal(t, "Reyes Realty", a.BrokerageTradeName)
}

func TestApplyAddressUpdate(t *testing.T) {
	a := model.Address{
		StreetNumber: "55",
		StreetName:   "Mercer St",
		City:         "Toronto",
		Province:     "ON",
		PostalCode:   "M5V 0W4",
		Country:      "Canada",
	}

	ApplyAddressUpdate(&a, AddressUpdateDto{
		Unit: strPtr("801"),
		City: strPtr("Mississauga"),
	})

	assert.Equal(t, "801", a.Unit)
	assert.Equal(t, "Mississauga", a.City)
	assert.Equal(t, "Mercer St", a.StreetName)
	assert.Equal(t, "Canada", a.Country)
}
