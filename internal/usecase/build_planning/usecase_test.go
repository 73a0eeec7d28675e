package build_planning

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/batiparc/BTP-ReservationService/internal/domain"
	"github.com/batiparc/BTP-ReservationService/internal/infra/storage/inmem"
	"github.com/batiparc/BTP-ReservationService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type stubIdentityClient struct {
	known map[int64]string
	calls int
}

func (c *stubIdentityClient) DisplayNameOrUnknown(_ context.Context, userID int64) string {
	c.calls++
	if name, ok := c.known[userID]; ok {
		return name
	}
	return "unknown"
}

type stubSiteClient struct {
	known map[int64]string
}

func (c *stubSiteClient) NameOrUnknown(_ context.Context, siteID int64) string {
	if name, ok := c.known[siteID]; ok {
		return name
	}
	return "unknown"
}

type fixture struct {
	useCase         *UseCase
	reservationRepo *inmem.ReservationRepository
	identity        *stubIdentityClient
}

func newFixture(t *testing.T) (*fixture, *domain.Resource) {
	t.Helper()

	resourceRepo := inmem.NewResourceRepository()
	reservationRepo := inmem.NewReservationRepository()

	window, err := domain.NewTimeWindow("07:00", "18:00")
	require.NoError(t, err)

	resource, err := resourceRepo.Create(context.Background(), &domain.Resource{
		Code:          "GRUE-01",
		Name:          "Grue mobile 40t",
		Category:      domain.CategoryLifting,
		Colour:        "#E07020",
		DefaultWindow: window,
		Active:        true,
	})
	require.NoError(t, err)

	identity := &stubIdentityClient{known: map[int64]string{42: "Martin Dupont"}}
	site := &stubSiteClient{known: map[int64]string{10: "Chantier A13"}}

	return &fixture{
		useCase:         NewUseCase(resourceRepo, reservationRepo, identity, site, nopLogger{}),
		reservationRepo: reservationRepo,
		identity:        identity,
	}, resource
}

func (f *fixture) seed(t *testing.T, resourceID int64, date time.Time, start, end string, status domain.ReservationStatus, requesterID, siteID int64) {
	t.Helper()

	window, err := domain.NewTimeWindow(types.TimeString(start), types.TimeString(end))
	require.NoError(t, err)

	_, err = f.reservationRepo.Create(context.Background(), &domain.Reservation{
		ResourceID:  resourceID,
		SiteID:      siteID,
		RequesterID: requesterID,
		Date:        date,
		Window:      window,
		Status:      status,
	})
	require.NoError(t, err)
}

func TestExecute(t *testing.T) {
	ctx := context.Background()
	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	t.Run("seven day view with grouped reservations", func(t *testing.T) {
		f, resource := newFixture(t)

		f.seed(t, resource.ID, monday, "08:00", "12:00", domain.StatusApproved, 42, 10)
		f.seed(t, resource.ID, monday, "13:00", "15:00", domain.StatusPending, 99, 11)
		f.seed(t, resource.ID, monday.AddDate(0, 0, 2), "08:00", "10:00", domain.StatusApproved, 42, 10)
		// Outside the week: excluded.
		f.seed(t, resource.ID, monday.AddDate(0, 0, 7), "08:00", "10:00", domain.StatusApproved, 42, 10)

		resp, err := f.useCase.Execute(ctx, &Request{ResourceID: resource.ID, WeekStart: monday})
		require.NoError(t, err)

		assert.Equal(t, "GRUE-01", resp.Resource.Code)
		assert.Equal(t, "Grue mobile 40t", resp.Resource.Name)
		assert.Equal(t, "#E07020", resp.Resource.Colour)

		require.Len(t, resp.Days, PlanningDays)
		for i, day := range resp.Days {
			assert.Equal(t, monday.AddDate(0, 0, i).Format(domain.DateFormat), day.Date)
		}

		mondayCell := resp.Days[0]
		require.Len(t, mondayCell.Reservations, 2)
		assert.Equal(t, "08:00", mondayCell.Reservations[0].WindowStart)
		assert.Equal(t, "Martin Dupont", mondayCell.Reservations[0].RequesterName)
		assert.Equal(t, "Chantier A13", mondayCell.Reservations[0].SiteName)
		// Unknown ids degrade instead of failing.
		assert.Equal(t, "unknown", mondayCell.Reservations[1].RequesterName)
		assert.Equal(t, "unknown", mondayCell.Reservations[1].SiteName)

		assert.Len(t, resp.Days[2].Reservations, 1)
		assert.Empty(t, resp.Days[1].Reservations)
		assert.Empty(t, resp.Days[6].Reservations)
	})

	t.Run("inactive reservations are hidden", func(t *testing.T) {
		f, resource := newFixture(t)

		f.seed(t, resource.ID, monday, "08:00", "10:00", domain.StatusRefused, 42, 10)
		f.seed(t, resource.ID, monday, "10:00", "12:00", domain.StatusCancelled, 42, 10)

		resp, err := f.useCase.Execute(ctx, &Request{ResourceID: resource.ID, WeekStart: monday})
		require.NoError(t, err)
		assert.Empty(t, resp.Days[0].Reservations)
	})

	t.Run("names resolved once per id", func(t *testing.T) {
		f, resource := newFixture(t)

		for i := 0; i < 5; i++ {
			f.seed(t, resource.ID, monday.AddDate(0, 0, i), "08:00", "10:00", domain.StatusApproved, 42, 10)
		}

		_, err := f.useCase.Execute(ctx, &Request{ResourceID: resource.ID, WeekStart: monday})
		require.NoError(t, err)
		assert.Equal(t, 1, f.identity.calls)
	})

	t.Run("unknown resource", func(t *testing.T) {
		f, _ := newFixture(t)
		_, err := f.useCase.Execute(ctx, &Request{ResourceID: 404, WeekStart: monday})
		assert.ErrorIs(t, err, ErrResourceNotFound)
	})

	t.Run("invalid input", func(t *testing.T) {
		f, resource := newFixture(t)

		_, err := f.useCase.Execute(ctx, &Request{ResourceID: 0, WeekStart: monday})
		assert.ErrorIs(t, err, ErrValidation)

		_, err = f.useCase.Execute(ctx, &Request{ResourceID: resource.ID})
		assert.ErrorIs(t, err, ErrValidation)
	})
}
