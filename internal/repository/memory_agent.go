package repository

import (
	"context"
	"sort"
	"sync"

	"propertyhub-api/internal/model"
)

// MemoryAgentRepository backs development and tests when no document store is
// available.
type MemoryAgentRepository struct {
	mu     sync.RWMutex
	agents map[string]model.Agent // registrationNumber -> Agent
}

func NewMemoryAgentRepository() *MemoryAgentRepository {
	return &MemoryAgentRepository{
		agents: map[string]model.Agent{},
	}
}

func (r *MemoryAgentRepository) GetAll(_ context.Context) ([]model.Agent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Agent, 0, len(r.agents))
	for _, a := range r.agents {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].RegistrationNumber < out[j].RegistrationNumber
	})
	return out, nil
}

func (r *MemoryAgentRepository) GetByRegistrationNumber(_ context.Context, registrationNumber string) (*model.Agent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.agents[registrationNumber]
	if !ok {
		return nil, ErrNotFound
	}
	return &a, nil
}

func (r *MemoryAgentRepository) Create(_ context.Context, agent *model.Agent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.agents[agent.RegistrationNumber]; ok {
		return ErrAlreadyExists
	}
	r.agents[agent.RegistrationNumber] = *agent
	return nil
}

func (r *MemoryAgentRepository) Update(_ context.Context, agent *model.Agent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.agents[agent.RegistrationNumber]; !ok {
		return ErrNotFound
	}
	r.agents[agent.RegistrationNumber] = *agent
	return nil
}

func (r *MemoryAgentRepository) Delete(_ context.Context, registrationNumber string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.agents[registrationNumber]; !ok {
		return ErrNotFound
	}
	delete(r.agents, registrationNumber)
	return nil
}
