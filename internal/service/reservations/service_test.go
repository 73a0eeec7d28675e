package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/batiparc/BTP-ReservationService/internal/domain"
	"github.com/batiparc/BTP-ReservationService/internal/events"
	"github.com/batiparc/BTP-ReservationService/internal/infra/storage/inmem"
	"github.com/batiparc/BTP-ReservationService/internal/service/reservations/models"
	"github.com/batiparc/BTP-ReservationService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type capturePublisher struct {
	published []events.Event
}

func (p *capturePublisher) Publish(event events.Event) {
	p.published = append(p.published, event)
}

type fixture struct {
	svc       *Service
	repo      *inmem.ReservationRepository
	publisher *capturePublisher
}

func newFixture() *fixture {
	repo := inmem.NewReservationRepository()
	publisher := &capturePublisher{}
	return &fixture{
		svc:       NewService(repo, publisher, nopLogger{}),
		repo:      repo,
		publisher: publisher,
	}
}

func (f *fixture) seed(t *testing.T, status domain.ReservationStatus, requesterID int64) *domain.Reservation {
	t.Helper()

	window, err := domain.NewTimeWindow("08:00", "12:00")
	require.NoError(t, err)

	res, err := f.repo.Create(context.Background(), &domain.Reservation{
		ResourceID:  1,
		SiteID:      10,
		RequesterID: requesterID,
		Date:        time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		Window:      window,
		Status:      status,
	})
	require.NoError(t, err)
	return res
}

func TestApprove(t *testing.T) {
	ctx := context.Background()

	t.Run("site lead approves pending", func(t *testing.T) {
		f := newFixture()
		seeded := f.seed(t, domain.StatusPending, 42)

		resp, err := f.svc.Approve(ctx, seeded.ID, &models.ApproveRequest{
			ValidatorID: 7,
			Role:        domain.RoleSiteLead,
		})
		require.NoError(t, err)

		assert.Equal(t, string(domain.StatusApproved), resp.Status)
		require.NotNil(t, resp.ValidatorID)
		assert.Equal(t, int64(7), *resp.ValidatorID)
		assert.NotNil(t, resp.ValidatedAt)

		require.Len(t, f.publisher.published, 1)
		assert.Equal(t, "reservation.approved", f.publisher.published[0].EventName())
	})

	t.Run("requester role is refused", func(t *testing.T) {
		f := newFixture()
		seeded := f.seed(t, domain.StatusPending, 42)

		_, err := f.svc.Approve(ctx, seeded.ID, &models.ApproveRequest{
			ValidatorID: 42,
			Role:        "worker",
		})
		assert.ErrorIs(t, err, ErrForbidden)
		assert.Empty(t, f.publisher.published)
	})

	t.Run("already approved", func(t *testing.T) {
		f := newFixture()
		seeded := f.seed(t, domain.StatusApproved, 42)

		_, err := f.svc.Approve(ctx, seeded.ID, &models.ApproveRequest{
			ValidatorID: 7,
			Role:        domain.RoleAdmin,
		})
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("unknown reservation", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.Approve(ctx, 404, &models.ApproveRequest{
			ValidatorID: 7,
			Role:        domain.RoleAdmin,
		})
		assert.ErrorIs(t, err, ErrReservationNotFound)
	})
}

func TestRefuse(t *testing.T) {
	ctx := context.Background()

	t.Run("refuse with motive", func(t *testing.T) {
		f := newFixture()
		seeded := f.seed(t, domain.StatusPending, 42)

		resp, err := f.svc.Refuse(ctx, seeded.ID, &models.RefuseRequest{
			ValidatorID: 7,
			Role:        domain.RoleSiteSupervisor,
			Motive:      ptr.Ptr("engin en maintenance"),
		})
		require.NoError(t, err)

		assert.Equal(t, string(domain.StatusRefused), resp.Status)
		require.NotNil(t, resp.RefusalMotive)
		assert.Equal(t, "engin en maintenance", *resp.RefusalMotive)

		require.Len(t, f.publisher.published, 1)
		assert.Equal(t, "reservation.refused", f.publisher.published[0].EventName())
	})

	t.Run("refuse without motive", func(t *testing.T) {
		f := newFixture()
		seeded := f.seed(t, domain.StatusPending, 42)

		resp, err := f.svc.Refuse(ctx, seeded.ID, &models.RefuseRequest{
			ValidatorID: 7,
			Role:        domain.RoleAdmin,
		})
		require.NoError(t, err)
		assert.Nil(t, resp.RefusalMotive)
	})

	t.Run("motive too long", func(t *testing.T) {
		f := newFixture()
		seeded := f.seed(t, domain.StatusPending, 42)

		long := make([]byte, domain.MaxRefusalMotiveLength+1)
		for i := range long {
			long[i] = 'x'
		}

		_, err := f.svc.Refuse(ctx, seeded.ID, &models.RefuseRequest{
			ValidatorID: 7,
			Role:        domain.RoleAdmin,
			Motive:      ptr.Ptr(string(long)),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("cannot refuse approved", func(t *testing.T) {
		f := newFixture()
		seeded := f.seed(t, domain.StatusApproved, 42)

		_, err := f.svc.Refuse(ctx, seeded.ID, &models.RefuseRequest{
			ValidatorID: 7,
			Role:        domain.RoleAdmin,
		})
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestCancel(t *testing.T) {
	ctx := context.Background()

	t.Run("requester cancels pending", func(t *testing.T) {
		f := newFixture()
		seeded := f.seed(t, domain.StatusPending, 42)

		resp, err := f.svc.Cancel(ctx, seeded.ID, &models.CancelRequest{RequesterID: 42})
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusCancelled), resp.Status)

		require.Len(t, f.publisher.published, 1)
		assert.Equal(t, "reservation.cancelled", f.publisher.published[0].EventName())
	})

	t.Run("requester cancels approved", func(t *testing.T) {
		f := newFixture()
		seeded := f.seed(t, domain.StatusApproved, 42)

		resp, err := f.svc.Cancel(ctx, seeded.ID, &models.CancelRequest{RequesterID: 42})
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	})

	t.Run("someone else cannot cancel", func(t *testing.T) {
		f := newFixture()
		seeded := f.seed(t, domain.StatusPending, 42)

		_, err := f.svc.Cancel(ctx, seeded.ID, &models.CancelRequest{RequesterID: 43})
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("refused is terminal", func(t *testing.T) {
		f := newFixture()
		seeded := f.seed(t, domain.StatusRefused, 42)

		_, err := f.svc.Cancel(ctx, seeded.ID, &models.CancelRequest{RequesterID: 42})
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestListPendingForValidator(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.seed(t, domain.StatusPending, 42)

	t.Run("validator role sees pending", func(t *testing.T) {
		resp, err := f.svc.ListPendingForValidator(ctx, domain.RoleSiteLead)
		require.NoError(t, err)
		assert.Len(t, resp.Reservations, 1)
	})

	t.Run("plain role is refused", func(t *testing.T) {
		_, err := f.svc.ListPendingForValidator(ctx, "worker")
		assert.ErrorIs(t, err, ErrForbidden)
	})
}

func TestListByRequester(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.seed(t, domain.StatusPending, 42)

	resp, err := f.svc.ListByRequester(ctx, &models.ListByRequesterRequest{RequesterID: 42})
	require.NoError(t, err)
	assert.Len(t, resp.Reservations, 1)

	resp, err = f.svc.ListByRequester(ctx, &models.ListByRequesterRequest{
		RequesterID: 42,
		Status:      ptr.Ptr("approved"),
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Reservations)

	_, err = f.svc.ListByRequester(ctx, &models.ListByRequesterRequest{
		RequesterID: 42,
		Status:      ptr.Ptr("confirmed"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSoftDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("admin deletes", func(t *testing.T) {
		f := newFixture()
		seeded := f.seed(t, domain.StatusCancelled, 42)

		require.NoError(t, f.svc.SoftDelete(ctx, seeded.ID, 1, domain.RoleAdmin))

		_, err := f.svc.GetByID(ctx, seeded.ID)
		require.NoError(t, err)
	})

	t.Run("non admin is refused", func(t *testing.T) {
		f := newFixture()
		seeded := f.seed(t, domain.StatusCancelled, 42)

		err := f.svc.SoftDelete(ctx, seeded.ID, 7, domain.RoleSiteLead)
		assert.ErrorIs(t, err, ErrForbidden)
	})
}
