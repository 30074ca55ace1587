package auth

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

type InMemoryStaffRepository struct {
	mu    sync.RWMutex
	staff map[string]*Staff
}

func NewInMemoryStaffRepository() *InMemoryStaffRepository {
	return &InMemoryStaffRepository{
		staff: make(map[string]*Staff),
	}
}

func (r *InMemoryStaffRepository) Save(ctx context.Context, staff *Staff) error {
	// Generate UUID if not already set
	if staff.ID == "" {
		staff.ID = uuid.New().String()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *staff
	r.staff[staff.Name] = &stored
	return nil
}

func (r *InMemoryStaffRepository) FindByName(ctx context.Context, name string) (*Staff, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	staff, ok := r.staff[name]
	if !ok {
		return nil, ErrStaffNotFound
	}
	found := *staff
	return &found, nil
}
