package repository

import (
	"context"
	"errors"

	"propertyhub-api/internal/model"
)

// Sentinel errors handlers translate into HTTP status codes. Store failures
// are returned as-is and surface as 500.
var (
	// ErrNotFound reports that the requested key (or nested sub-object on an
	// update) does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrAlreadyExists reports a duplicate create or a singleton add on a
	// property that already carries the sub-object.
	ErrAlreadyExists = errors.New("entity already exists")
)

// PropertyRepository owns the property collection. Every filter is a single
// predicate over the whole collection; combining filters is a client concern.
type PropertyRepository interface {
	GetAll(ctx context.Context) ([]model.Property, error)
	GetByMLS(ctx context.Context, mls string) (*model.Property, error)
	GetByType(ctx context.Context, propertyType string) ([]model.Property, error)
	GetByMaxPrice(ctx context.Context, price float64) ([]model.Property, error)
	GetByMinBedrooms(ctx context.Context, bedrooms int) ([]model.Property, error)
	GetByMinBathrooms(ctx context.Context, bathrooms int) ([]model.Property, error)
	GetByMinParkings(ctx context.Context, parkings int) ([]model.Property, error)
	GetByMinSize(ctx context.Context, size int) ([]model.Property, error)
	GetByMaxYearBuilt(ctx context.Context, yearBuilt int) ([]model.Property, error)
	GetByMaxTax(ctx context.Context, tax float64) ([]model.Property, error)
	GetByStatus(ctx context.Context, status string) ([]model.Property, error)
	GetByAgent(ctx context.Context, registrationNumber string) ([]model.Property, error)
	Create(ctx context.Context, property *model.Property) error
	Update(ctx context.Context, property *model.Property) error
	Delete(ctx context.Context, mls string) error
}

// AgentRepository owns the agent collection.
type AgentRepository interface {
	GetAll(ctx context.Context) ([]model.Agent, error)
	GetByRegistrationNumber(ctx context.Context, registrationNumber string) (*model.Agent, error)
	Create(ctx context.Context, agent *model.Agent) error
	Update(ctx context.Context, agent *model.Agent) error
	Delete(ctx context.Context, registrationNumber string) error
}

// AddressRepository operates on the address sub-object embedded in property
// records; there is no independent address collection. String matches are
// case-insensitive exact matches.
type AddressRepository interface {
	GetAll(ctx context.Context) ([]model.Address, error)
	GetAddressesByCity(ctx context.Context, city string) ([]model.Address, error)
	GetPropertiesByCity(ctx context.Context, city string) ([]model.Property, error)
	GetPropertiesByStreet(ctx context.Context, streetNumber, streetName string) ([]model.Property, error)
	GetPropertiesByPostalCode(ctx context.Context, postalCode string) ([]model.Property, error)
	// Add fails with ErrAlreadyExists when the property already has an address.
	Add(ctx context.Context, mls string, address model.Address) error
	// Update fails with ErrNotFound when the property has no address yet.
	Update(ctx context.Context, mls string, address model.Address) error
	// Delete nulls the address out; deleting an absent address is a no-op.
	Delete(ctx context.Context, mls string) error
}

// FeatureRepository operates on the feature sub-object embedded in property
// records, mirroring AddressRepository's singleton rules.
type FeatureRepository interface {
	GetAll(ctx context.Context) ([]model.Feature, error)
	GetPropertiesByMinWalkScore(ctx context.Context, score int) ([]model.Property, error)
	GetPropertiesByMinTransitScore(ctx context.Context, score int) ([]model.Property, error)
	GetPropertiesByMinBikeScore(ctx context.Context, score int) ([]model.Property, error)
	GetPropertiesByMinEducationScore(ctx context.Context, score int) ([]model.Property, error)
	Add(ctx context.Context, mls string, feature model.Feature) error
	Update(ctx context.Context, mls string, feature model.Feature) error
	Delete(ctx context.Context, mls string) error
}

// UserRepository owns the user collection (email-keyed accounts).
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
}
