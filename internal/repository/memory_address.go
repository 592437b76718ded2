package repository

import (
	"context"
	"strings"
	"time"

	"propertyhub-api/internal/model"
)

// MemoryAddressRepository shares the property map with a
// MemoryPropertyRepository; addresses have no storage of their own.
type MemoryAddressRepository struct {
	props *MemoryPropertyRepository
}

func NewMemoryAddressRepository(props *MemoryPropertyRepository) *MemoryAddressRepository {
	return &MemoryAddressRepository{props: props}
}

func (r *MemoryAddressRepository) GetAll(_ context.Context) ([]model.Address, error) {
	properties := r.props.filter(func(p model.Property) bool { return p.Address != nil })
	addresses := make([]model.Address, 0, len(properties))
	for _, p := range properties {
		addresses = append(addresses, *p.Address)
	}
	return addresses, nil
}

func (r *MemoryAddressRepository) GetAddressesByCity(_ context.Context, city string) ([]model.Address, error) {
	properties := r.props.filter(func(p model.Property) bool {
		return p.Address != nil && strings.EqualFold(p.Address.City, city)
	})
	addresses := make([]model.Address, 0, len(properties))
	for _, p := range properties {
		addresses = append(addresses, *p.Address)
	}
	return addresses, nil
}

func (r *MemoryAddressRepository) GetPropertiesByCity(_ context.Context, city string) ([]model.Property, error) {
	return r.props.filter(func(p model.Property) bool {
		return p.Address != nil && strings.EqualFold(p.Address.City, city)
	}), nil
}

func (r *MemoryAddressRepository) GetPropertiesByStreet(_ context.Context, streetNumber, streetName string) ([]model.Property, error) {
	return r.props.filter(func(p model.Property) bool {
		return p.Address != nil &&
			strings.EqualFold(p.Address.StreetNumber, streetNumber) &&
			strings.EqualFold(p.Address.StreetName, streetName)
	}), nil
}

func (r *MemoryAddressRepository) GetPropertiesByPostalCode(_ context.Context, postalCode string) ([]model.Property, error) {
	return r.props.filter(func(p model.Property) bool {
		return p.Address != nil && strings.EqualFold(p.Address.PostalCode, postalCode)
	}), nil
}

func (r *MemoryAddressRepository) Add(_ context.Context, mls string, address model.Address) error {
	r.props.mu.Lock()
	defer r.props.mu.Unlock()

	p, ok := r.props.properties[mls]
	if !ok {
		return ErrNotFound
	}
	if p.Address != nil {
		return ErrAlreadyExists
	}
	p.Address = &address
	p.LastUpdate = time.Now().UTC()
	r.props.properties[mls] = p
	return nil
}

func (r *MemoryAddressRepository) Update(_ context.Context, mls string, address model.Address) error {
	r.props.mu.Lock()
	defer r.props.mu.Unlock()

	p, ok := r.props.properties[mls]
	if !ok {
		return ErrNotFound
	}
	if p.Address == nil {
		return ErrNotFound
	}
	p.Address = &address
	p.LastUpdate = time.Now().UTC()
	r.props.properties[mls] = p
	return nil
}

func (r *MemoryAddressRepository) Delete(_ context.Context, mls string) error {
	r.props.mu.Lock()
	defer r.props.mu.Unlock()

	p, ok := r.props.properties[mls]
	if !ok {
		return ErrNotFound
	}
	p.Address = nil
	p.LastUpdate = time.Now().UTC()
	r.props.properties[mls] = p
	return nil
}
