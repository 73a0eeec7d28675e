package inmem

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/batiparc/BTP-ReservationService/internal/domain"
	reservationRepo "github.com/batiparc/BTP-ReservationService/internal/infra/storage/reservation"
)

// ReservationRepository is a mutex-guarded double of the reservation
// store. The mutex spans every operation, so the conflict check inside
// Create is as atomic as the exclusion constraint it stands in for.
type ReservationRepository struct {
	mu           sync.Mutex
	nextID       int64
	reservations map[int64]*domain.Reservation
}

func NewReservationRepository() *ReservationRepository {
	return &ReservationRepository{
		nextID:       1,
		reservations: make(map[int64]*domain.Reservation),
	}
}

func (r *ReservationRepository) Create(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Mirror the database exclusion constraint: reject overlapping
	// active reservations on the same resource and date.
	sameDay := r.byResourceAndDateLocked(res.ResourceID, res.Date)
	if len(domain.FindConflicts(res.Window, sameDay, 0)) > 0 {
		return nil, reservationRepo.ErrWindowTaken
	}

	stored := *res
	stored.ID = r.nextID
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	r.nextID++
	r.reservations[stored.ID] = &stored

	out := stored
	*res = out
	return res, nil
}

func (r *ReservationRepository) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, ok := r.reservations[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	out := *res
	return &out, nil
}

func (r *ReservationRepository) FindConflicts(_ context.Context, resourceID int64, date time.Time, window domain.TimeWindow, excludeID int64) ([]*domain.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sameDay := r.byResourceAndDateLocked(resourceID, date)
	conflicts := domain.FindConflicts(window, sameDay, excludeID)

	out := make([]*domain.Reservation, 0, len(conflicts))
	for _, c := range conflicts {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Window.Start < out[j].Window.Start })
	return out, nil
}

func (r *ReservationRepository) ListByResourceAndDateRange(_ context.Context, resourceID int64, from, to time.Time, includeInactive bool) ([]*domain.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*domain.Reservation, 0)
	for _, res := range r.reservations {
		if res.ResourceID != resourceID || res.DeletedAt != nil {
			continue
		}
		if res.Date.Before(from) || res.Date.After(to) {
			continue
		}
		if !includeInactive && !res.IsActive() {
			continue
		}
		cp := *res
		out = append(out, &cp)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Window.Start < out[j].Window.Start
	})
	return out, nil
}

func (r *ReservationRepository) ListByRequester(_ context.Context, requesterID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*domain.Reservation, 0)
	for _, res := range r.reservations {
		if res.RequesterID != requesterID || res.DeletedAt != nil {
			continue
		}
		if status != nil && res.Status != *status {
			continue
		}
		cp := *res
		out = append(out, &cp)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].Window.Start > out[j].Window.Start
	})
	return out, nil
}

func (r *ReservationRepository) ListPending(_ context.Context) ([]*domain.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*domain.Reservation, 0)
	for _, res := range r.reservations {
		if res.Status != domain.StatusPending || res.DeletedAt != nil {
			continue
		}
		cp := *res
		out = append(out, &cp)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Window.Start < out[j].Window.Start
	})
	return out, nil
}

func (r *ReservationRepository) UpdateStatusGuarded(_ context.Context, id int64, expected, next domain.ReservationStatus, validatorID *int64, motive *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, ok := r.reservations[id]
	if !ok || res.DeletedAt != nil {
		return reservationRepo.ErrStaleStatus
	}
	if res.Status != expected {
		return reservationRepo.ErrStaleStatus
	}

	now := time.Now()
	res.Status = next
	res.UpdatedAt = now
	if validatorID != nil {
		res.ValidatorID = validatorID
		res.ValidatedAt = &now
	}
	if motive != nil {
		res.RefusalMotive = motive
	}

	return nil
}

func (r *ReservationRepository) SoftDelete(_ context.Context, id int64, actorID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, ok := r.reservations[id]
	if !ok || res.DeletedAt != nil {
		return reservationRepo.ErrReservationNotFound
	}

	now := time.Now()
	res.DeletedAt = &now
	res.DeletedBy = &actorID
	res.UpdatedAt = now

	return nil
}

// byResourceAndDateLocked collects the reservations of one resource on
// one calendar date. Caller holds the mutex.
func (r *ReservationRepository) byResourceAndDateLocked(resourceID int64, date time.Time) []*domain.Reservation {
	out := make([]*domain.Reservation, 0)
	for _, res := range r.reservations {
		if res.ResourceID == resourceID && sameDate(res.Date, date) {
			out = append(out, res)
		}
	}
	return out
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
