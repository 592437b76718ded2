package repository

import (
	"context"
	"sort"
	"sync"

	"propertyhub-api/internal/model"
)

// MemoryPropertyRepository backs development and tests when no document store
// is available (STORE_DRIVER=memory).
type MemoryPropertyRepository struct {
	mu         sync.RWMutex
	properties map[string]model.Property // MLS -> Property
}

func NewMemoryPropertyRepository() *MemoryPropertyRepository {
	return &MemoryPropertyRepository{
		properties: map[string]model.Property{},
	}
}

func cloneFeature(f model.Feature) model.Feature {
	clone := func(p *int) *int {
		if p == nil {
			return nil
		}
		v := *p
		return &v
	}
	return model.Feature{
		WalkScore:      clone(f.WalkScore),
		TransitScore:   clone(f.TransitScore),
		BikeScore:      clone(f.BikeScore),
		EducationScore: clone(f.EducationScore),
	}
}

// cloneProperty detaches a record from the map so callers cannot mutate
// stored state through shared pointers.
func cloneProperty(p model.Property) model.Property {
	out := p
	if p.ImageUrls != nil {
		out.ImageUrls = make([]string, len(p.ImageUrls))
		copy(out.ImageUrls, p.ImageUrls)
	}
	if p.Address != nil {
		a := *p.Address
		out.Address = &a
	}
	if p.Feature != nil {
		f := cloneFeature(*p.Feature)
		out.Feature = &f
	}
	return out
}

func (r *MemoryPropertyRepository) filter(keep func(model.Property) bool) []model.Property {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Property, 0, len(r.properties))
	for _, p := range r.properties {
		if keep(p) {
			out = append(out, cloneProperty(p))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].MLS < out[j].MLS
	})
	return out
}

func (r *MemoryPropertyRepository) GetAll(_ context.Context) ([]model.Property, error) {
	return r.filter(func(model.Property) bool { return true }), nil
}

func (r *MemoryPropertyRepository) GetByMLS(_ context.Context, mls string) (*model.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.properties[mls]
	if !ok {
		return nil, ErrNotFound
	}
	clone := cloneProperty(p)
	return &clone, nil
}

func (r *MemoryPropertyRepository) GetByType(_ context.Context, propertyType string) ([]model.Property, error) {
	return r.filter(func(p model.Property) bool { return p.Type == propertyType }), nil
}

func (r *MemoryPropertyRepository) GetByMaxPrice(_ context.Context, price float64) ([]model.Property, error) {
	return r.filter(func(p model.Property) bool { return p.Price <= price }), nil
}

func (r *MemoryPropertyRepository) GetByMinBedrooms(_ context.Context, bedrooms int) ([]model.Property, error) {
	return r.filter(func(p model.Property) bool { return p.Bedrooms >= bedrooms }), nil
}

func (r *MemoryPropertyRepository) GetByMinBathrooms(_ context.Context, bathrooms int) ([]model.Property, error) {
	return r.filter(func(p model.Property) bool { return p.Bathrooms >= bathrooms }), nil
}

func (r *MemoryPropertyRepository) GetByMinParkings(_ context.Context, parkings int) ([]model.Property, error) {
	return r.filter(func(p model.Property) bool { return p.Parkings >= parkings }), nil
}

func (r *MemoryPropertyRepository) GetByMinSize(_ context.Context, size int) ([]model.Property, error) {
	return r.filter(func(p model.Property) bool { return p.Size >= size }), nil
}

func (r *MemoryPropertyRepository) GetByMaxYearBuilt(_ context.Context, yearBuilt int) ([]model.Property, error) {
	return r.filter(func(p model.Property) bool { return p.YearBuilt <= yearBuilt }), nil
}

func (r *MemoryPropertyRepository) GetByMaxTax(_ context.Context, tax float64) ([]model.Property, error) {
	return r.filter(func(p model.Property) bool { return p.Tax <= tax }), nil
}

func (r *MemoryPropertyRepository) GetByStatus(_ context.Context, status string) ([]model.Property, error) {
	return r.filter(func(p model.Property) bool { return p.Status == status }), nil
}

func (r *MemoryPropertyRepository) GetByAgent(_ context.Context, registrationNumber string) ([]model.Property, error) {
	return r.filter(func(p model.Property) bool { return p.AgentRegistrationNumber == registrationNumber }), nil
}

func (r *MemoryPropertyRepository) Create(_ context.Context, property *model.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.properties[property.MLS]; ok {
		return ErrAlreadyExists
	}
	r.properties[property.MLS] = cloneProperty(*property)
	return nil
}

func (r *MemoryPropertyRepository) Update(_ context.Context, property *model.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.properties[property.MLS]; !ok {
		return ErrNotFound
	}
	r.properties[property.MLS] = cloneProperty(*property)
	return nil
}

func (r *MemoryPropertyRepository) Delete(_ context.Context, mls string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.properties[mls]; !ok {
		return ErrNotFound
	}
	delete(r.properties, mls)
	return nil
}
