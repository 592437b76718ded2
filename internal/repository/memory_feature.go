package repository

import (
	"context"
	"time"

	"propertyhub-api/internal/model"
)

// MemoryFeatureRepository shares the property map with a
// MemoryPropertyRepository, mirroring the address repository.
type MemoryFeatureRepository struct {
	props *MemoryPropertyRepository
}

func NewMemoryFeatureRepository(props *MemoryPropertyRepository) *MemoryFeatureRepository {
	return &MemoryFeatureRepository{props: props}
}

func (r *MemoryFeatureRepository) GetAll(_ context.Context) ([]model.Feature, error) {
	properties := r.props.filter(func(p model.Property) bool { return p.Feature != nil })
	features := make([]model.Feature, 0, len(properties))
	for _, p := range properties {
		features = append(features, *p.Feature)
	}
	return features, nil
}

func scoreAtLeast(score *int, min int) bool {
	return score != nil && *score >= min
}

func (r *MemoryFeatureRepository) GetPropertiesByMinWalkScore(_ context.Context, score int) ([]model.Property, error) {
	return r.props.filter(func(p model.Property) bool {
		return p.Feature != nil && scoreAtLeast(p.Feature.WalkScore, score)
	}), nil
}

func (r *MemoryFeatureRepository) GetPropertiesByMinTransitScore(_ context.Context, score int) ([]model.Property, error) {
	return r.props.filter(func(p model.Property) bool {
		return p.Feature != nil && scoreAtLeast(p.Feature.TransitScore, score)
	}), nil
}

func (r *MemoryFeatureRepository) GetPropertiesByMinBikeScore(_ context.Context, score int) ([]model.Property, error) {
	return r.props.filter(func(p model.Property) bool {
		return p.Feature != nil && scoreAtLeast(p.Feature.BikeScore, score)
	}), nil
}

func (r *MemoryFeatureRepository) GetPropertiesByMinEducationScore(_ context.Context, score int) ([]model.Property, error) {
	return r.props.filter(func(p model.Property) bool {
		return p.Feature != nil && scoreAtLeast(p.Feature.EducationScore, score)
	}), nil
}

func (r *MemoryFeatureRepository) Add(_ context.Context, mls string, feature model.Feature) error {
	r.props.mu.Lock()
	defer r.props.mu.Unlock()

	p, ok := r.props.properties[mls]
	if !ok {
		return ErrNotFound
	}
	if p.Feature != nil {
		return ErrAlreadyExists
	}
	p.Feature = &feature
	p.LastUpdate = time.Now().UTC()
	r.props.properties[mls] = p
	return nil
}

func (r *MemoryFeatureRepository) Update(_ context.Context, mls string, feature model.Feature) error {
	r.props.mu.Lock()
	defer r.props.mu.Unlock()

	p, ok := r.props.properties[mls]
	if !ok {
		return ErrNotFound
	}
	if p.Feature == nil {
		return ErrNotFound
	}
	p.Feature = &feature
	p.LastUpdate = time.Now().UTC()
	r.props.properties[mls] = p
	return nil
}

func (r *MemoryFeatureRepository) Delete(_ context.Context, mls string) error {
	r.props.mu.Lock()
	defer r.props.mu.Unlock()

	p, ok := r.props.properties[mls]
	if !ok {
		return ErrNotFound
	}
	p.Feature = nil
	p.LastUpdate = time.Now().UTC()
	r.props.properties[mls] = p
	return nil
}
