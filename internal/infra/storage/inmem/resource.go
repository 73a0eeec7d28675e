// Package inmem provides in-memory implementations of the storage
// contracts for unit tests. They return the same sentinel errors as
// the PostgreSQL repositories so error mapping behaves identically.
package inmem

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/batiparc/BTP-ReservationService/internal/domain"
	resourceRepo "github.com/batiparc/BTP-ReservationService/internal/infra/storage/resource"
)

// ResourceRepository is a mutex-guarded double of the resource store.
type ResourceRepository struct {
	mu        sync.Mutex
	nextID    int64
	resources map[int64]*domain.Resource
}

func NewResourceRepository() *ResourceRepository {
	return &ResourceRepository{
		nextID:    1,
		resources: make(map[int64]*domain.Resource),
	}
}

func (r *ResourceRepository) Create(_ context.Context, res *domain.Resource) (*domain.Resource, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.resources {
		if existing.Code == res.Code && !existing.IsDeleted() {
			return nil, resourceRepo.ErrDuplicateCode
		}
	}

	stored := *res
	stored.ID = r.nextID
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	r.nextID++
	r.resources[stored.ID] = &stored

	out := stored
	*res = out
	return res, nil
}

func (r *ResourceRepository) GetByID(_ context.Context, id int64) (*domain.Resource, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, ok := r.resources[id]
	if !ok {
		return nil, resourceRepo.ErrResourceNotFound
	}
	out := *res
	return &out, nil
}

func (r *ResourceRepository) GetByCode(_ context.Context, code string) (*domain.Resource, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, res := range r.resources {
		if res.Code == code && !res.IsDeleted() {
			out := *res
			return &out, nil
		}
	}
	return nil, resourceRepo.ErrResourceNotFound
}

func (r *ResourceRepository) Update(_ context.Context, id int64, upd domain.ResourceUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, ok := r.resources[id]
	if !ok || res.IsDeleted() {
		return resourceRepo.ErrResourceNotFound
	}

	if upd.Name != nil {
		res.Name = *upd.Name
	}
	if upd.Category != nil {
		res.Category = *upd.Category
	}
	if upd.Colour != nil {
		res.Colour = *upd.Colour
	}
	if upd.DefaultWindow != nil {
		res.DefaultWindow = *upd.DefaultWindow
	}
	if upd.ValidationRequired != nil {
		res.ValidationRequired = *upd.ValidationRequired
	}
	if upd.Active != nil {
		res.Active = *upd.Active
	}
	res.UpdatedAt = time.Now()

	return nil
}

func (r *ResourceRepository) SoftDelete(_ context.Context, id int64, actorID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, ok := r.resources[id]
	if !ok || res.IsDeleted() {
		return resourceRepo.ErrResourceNotFound
	}

	now := time.Now()
	res.DeletedAt = &now
	res.DeletedBy = &actorID
	res.UpdatedAt = now

	return nil
}

func (r *ResourceRepository) List(_ context.Context, filter domain.ResourceFilter) ([]*domain.Resource, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*domain.Resource, 0)
	for _, res := range r.resources {
		if res.IsDeleted() && !filter.IncludeDeleted {
			continue
		}
		if filter.Category != nil && res.Category != *filter.Category {
			continue
		}
		if filter.ActiveOnly && !res.Active {
			continue
		}
		cp := *res
		out = append(out, &cp)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
