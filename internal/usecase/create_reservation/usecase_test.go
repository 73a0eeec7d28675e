package create_reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/batiparc/BTP-ReservationService/internal/domain"
	"github.com/batiparc/BTP-ReservationService/internal/events"
	"github.com/batiparc/BTP-ReservationService/internal/infra/storage/inmem"
	reservationsService "github.com/batiparc/BTP-ReservationService/internal/service/reservations"
	reservationsModels "github.com/batiparc/BTP-ReservationService/internal/service/reservations/models"
	"github.com/batiparc/BTP-ReservationService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// passthroughTxManager runs the body directly; the in-memory
// repository is already atomic per call.
type passthroughTxManager struct{}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type capturePublisher struct {
	published []events.Event
}

func (p *capturePublisher) Publish(event events.Event) {
	p.published = append(p.published, event)
}

type fixture struct {
	useCase         *UseCase
	resourceRepo    *inmem.ResourceRepository
	reservationRepo *inmem.ReservationRepository
	publisher       *capturePublisher
}

func newFixture(t *testing.T, validationRequired bool) (*fixture, *domain.Resource) {
	t.Helper()

	resourceRepo := inmem.NewResourceRepository()
	reservationRepo := inmem.NewReservationRepository()
	publisher := &capturePublisher{}

	window, err := domain.NewTimeWindow("07:00", "18:00")
	require.NoError(t, err)

	resource, err := resourceRepo.Create(context.Background(), &domain.Resource{
		Code:               "GRUE-01",
		Name:               "Grue mobile 40t",
		Category:           domain.CategoryLifting,
		DefaultWindow:      window,
		ValidationRequired: validationRequired,
		Active:             true,
	})
	require.NoError(t, err)

	return &fixture{
		useCase:         NewUseCase(resourceRepo, reservationRepo, passthroughTxManager{}, publisher, nopLogger{}),
		resourceRepo:    resourceRepo,
		reservationRepo: reservationRepo,
		publisher:       publisher,
	}, resource
}

func request(resourceID int64, requesterID int64, start, end string) *Request {
	return &Request{
		ResourceID:  resourceID,
		SiteID:      10,
		RequesterID: requesterID,
		Date:        time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		WindowStart: start,
		WindowEnd:   end,
	}
}

func TestExecute(t *testing.T) {
	ctx := context.Background()

	t.Run("validation required yields pending", func(t *testing.T) {
		f, resource := newFixture(t, true)

		resp, err := f.useCase.Execute(ctx, request(resource.ID, 42, "08:00", "12:00"))
		require.NoError(t, err)

		assert.Equal(t, string(domain.StatusPending), resp.Status)
		assert.Equal(t, "08:00", resp.WindowStart)
		assert.Equal(t, "2026-03-02", resp.Date)

		require.Len(t, f.publisher.published, 1)
		assert.Equal(t, "reservation.created", f.publisher.published[0].EventName())
	})

	t.Run("no validation yields approved", func(t *testing.T) {
		f, resource := newFixture(t, false)

		resp, err := f.useCase.Execute(ctx, request(resource.ID, 42, "08:00", "12:00"))
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusApproved), resp.Status)
	})

	t.Run("unknown resource", func(t *testing.T) {
		f, _ := newFixture(t, true)

		_, err := f.useCase.Execute(ctx, request(404, 42, "08:00", "12:00"))
		assert.ErrorIs(t, err, ErrResourceNotFound)
	})

	t.Run("deactivated resource", func(t *testing.T) {
		f, resource := newFixture(t, true)
		require.NoError(t, f.resourceRepo.Update(ctx, resource.ID, domain.ResourceUpdate{Active: ptr.Ptr(false)}))

		_, err := f.useCase.Execute(ctx, request(resource.ID, 42, "08:00", "12:00"))
		assert.ErrorIs(t, err, ErrResourceNotBookable)
	})

	t.Run("invalid input", func(t *testing.T) {
		f, resource := newFixture(t, true)

		_, err := f.useCase.Execute(ctx, request(resource.ID, 42, "12:00", "08:00"))
		assert.ErrorIs(t, err, ErrValidation)

		_, err = f.useCase.Execute(ctx, request(resource.ID, 42, "8:00", "12:00"))
		assert.ErrorIs(t, err, ErrValidation)

		req := request(resource.ID, 42, "08:00", "12:00")
		req.SiteID = 0
		_, err = f.useCase.Execute(ctx, req)
		assert.ErrorIs(t, err, ErrValidation)
	})
}

// The reference week: overlapping requests conflict, back-to-back ones
// do not, and a cancellation frees the window for rebooking.
func TestExecuteConflictLifecycle(t *testing.T) {
	ctx := context.Background()
	f, resource := newFixture(t, true)

	reservationSvc := reservationsService.NewService(f.reservationRepo, f.publisher, nopLogger{})

	// A books 08:00-12:00.
	respA, err := f.useCase.Execute(ctx, request(resource.ID, 1, "08:00", "12:00"))
	require.NoError(t, err)
	require.Equal(t, string(domain.StatusPending), respA.Status)

	// B asks 11:00-13:00: conflict, and A is named.
	_, err = f.useCase.Execute(ctx, request(resource.ID, 2, "11:00", "13:00"))
	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)
	require.Len(t, conflictErr.Conflicts, 1)
	assert.Equal(t, respA.ID, conflictErr.Conflicts[0].ID)

	// A pending reservation blocks even before approval.
	_, err = f.useCase.Execute(ctx, request(resource.ID, 3, "08:00", "09:00"))
	assert.ErrorAs(t, err, &conflictErr)

	// C books 12:00-14:00 back to back: no conflict.
	_, err = f.useCase.Execute(ctx, request(resource.ID, 3, "12:00", "14:00"))
	require.NoError(t, err)

	// Approving A does not change its footprint.
	_, err = reservationSvc.Approve(ctx, respA.ID, &reservationsModels.ApproveRequest{
		ValidatorID: 7,
		Role:        domain.RoleSiteLead,
	})
	require.NoError(t, err)

	_, err = f.useCase.Execute(ctx, request(resource.ID, 2, "11:00", "13:00"))
	assert.ErrorAs(t, err, &conflictErr)

	// A cancels: the window frees up and B can rebook it.
	_, err = reservationSvc.Cancel(ctx, respA.ID, &reservationsModels.CancelRequest{RequesterID: 1})
	require.NoError(t, err)

	respB, err := f.useCase.Execute(ctx, request(resource.ID, 2, "08:00", "12:00"))
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPending), respB.Status)
}

// racingRepo simulates the lost race: the scan sees a free window but
// the insert hits the exclusion constraint, after which the winner's
// row is visible.
type racingRepo struct {
	inner    *inmem.ReservationRepository
	winner   *domain.Reservation
	attempts int
}

func (r *racingRepo) FindConflicts(ctx context.Context, resourceID int64, date time.Time, window domain.TimeWindow, excludeID int64) ([]*domain.Reservation, error) {
	if r.attempts == 0 {
		return nil, nil
	}
	return r.inner.FindConflicts(ctx, resourceID, date, window, excludeID)
}

func (r *racingRepo) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	r.attempts++
	if _, err := r.inner.Create(ctx, r.winner); err != nil {
		return nil, err
	}
	return r.inner.Create(ctx, res)
}

// The storage-level exclusion rejection surfaces as the same conflict
// shape the scan produces, never as an internal error.
func TestExecuteStorageExclusionBackstop(t *testing.T) {
	ctx := context.Background()

	resourceRepo := inmem.NewResourceRepository()
	window, err := domain.NewTimeWindow("07:00", "18:00")
	require.NoError(t, err)
	resource, err := resourceRepo.Create(ctx, &domain.Resource{
		Code:          "GRUE-01",
		Name:          "Grue mobile 40t",
		Category:      domain.CategoryLifting,
		DefaultWindow: window,
		Active:        true,
	})
	require.NoError(t, err)

	winnerWindow, err := domain.NewTimeWindow("08:00", "12:00")
	require.NoError(t, err)

	repo := &racingRepo{
		inner: inmem.NewReservationRepository(),
		winner: &domain.Reservation{
			ResourceID:  resource.ID,
			SiteID:      11,
			RequesterID: 1,
			Date:        time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
			Window:      winnerWindow,
			Status:      domain.StatusApproved,
		},
	}

	uc := NewUseCase(resourceRepo, repo, passthroughTxManager{}, &capturePublisher{}, nopLogger{})

	_, err = uc.Execute(ctx, request(resource.ID, 2, "10:00", "14:00"))
	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)
	require.Len(t, conflictErr.Conflicts, 1)
	assert.Equal(t, int64(1), conflictErr.Conflicts[0].RequesterID)
}
