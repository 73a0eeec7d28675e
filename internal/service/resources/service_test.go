package resources

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/batiparc/BTP-ReservationService/internal/infra/storage/inmem"
	"github.com/batiparc/BTP-ReservationService/internal/service/resources/models"
	"github.com/batiparc/BTP-ReservationService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService() *Service {
	return NewService(inmem.NewResourceRepository(), nopLogger{})
}

func createRequest(code string) *models.CreateResourceRequest {
	return &models.CreateResourceRequest{
		Code:               code,
		Name:               "Grue mobile 40t",
		Category:           "lifting",
		Colour:             "#E07020",
		WindowStart:        "07:00",
		WindowEnd:          "18:00",
		ValidationRequired: true,
	}
}

func TestServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("creates an active resource", func(t *testing.T) {
		svc := newTestService()

		resp, err := svc.Create(ctx, createRequest("GRUE-01"))
		require.NoError(t, err)

		assert.NotZero(t, resp.ID)
		assert.Equal(t, "GRUE-01", resp.Code)
		assert.Equal(t, "lifting", resp.Category)
		assert.Equal(t, "07:00", resp.WindowStart)
		assert.True(t, resp.ValidationRequired)
		assert.True(t, resp.Active)
	})

	t.Run("rejects duplicate code", func(t *testing.T) {
		svc := newTestService()

		_, err := svc.Create(ctx, createRequest("GRUE-01"))
		require.NoError(t, err)

		_, err = svc.Create(ctx, createRequest("GRUE-01"))
		assert.ErrorIs(t, err, ErrDuplicateCode)
	})

	t.Run("code is reusable after soft delete", func(t *testing.T) {
		svc := newTestService()

		first, err := svc.Create(ctx, createRequest("GRUE-01"))
		require.NoError(t, err)
		require.NoError(t, svc.SoftDelete(ctx, first.ID, 99))

		_, err = svc.Create(ctx, createRequest("GRUE-01"))
		assert.NoError(t, err)
	})

	t.Run("validation failures", func(t *testing.T) {
		svc := newTestService()

		req := createRequest("GRUE-01")
		req.Code = ""
		_, err := svc.Create(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidInput)

		req = createRequest("GRUE-01")
		req.Category = "spaceship"
		_, err = svc.Create(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidInput)

		req = createRequest("GRUE-01")
		req.WindowStart = "18:00"
		req.WindowEnd = "07:00"
		_, err = svc.Create(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestServiceUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("partial update", func(t *testing.T) {
		svc := newTestService()
		created, err := svc.Create(ctx, createRequest("GRUE-01"))
		require.NoError(t, err)

		resp, err := svc.Update(ctx, created.ID, &models.UpdateResourceRequest{
			Name:               ptr.Ptr("Grue mobile 60t"),
			ValidationRequired: ptr.Ptr(false),
		})
		require.NoError(t, err)

		assert.Equal(t, "Grue mobile 60t", resp.Name)
		assert.False(t, resp.ValidationRequired)
		// Untouched fields keep their values.
		assert.Equal(t, "GRUE-01", resp.Code)
		assert.Equal(t, "07:00", resp.WindowStart)
	})

	t.Run("lone window bound rejected", func(t *testing.T) {
		svc := newTestService()
		created, err := svc.Create(ctx, createRequest("GRUE-01"))
		require.NoError(t, err)

		_, err = svc.Update(ctx, created.ID, &models.UpdateResourceRequest{
			WindowStart: ptr.Ptr("08:00"),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("empty update rejected", func(t *testing.T) {
		svc := newTestService()
		created, err := svc.Create(ctx, createRequest("GRUE-01"))
		require.NoError(t, err)

		_, err = svc.Update(ctx, created.ID, &models.UpdateResourceRequest{})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unknown resource", func(t *testing.T) {
		svc := newTestService()
		_, err := svc.Update(ctx, 404, &models.UpdateResourceRequest{Name: ptr.Ptr("x")})
		assert.ErrorIs(t, err, ErrResourceNotFound)
	})
}

func TestServiceSoftDelete(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	created, err := svc.Create(ctx, createRequest("GRUE-01"))
	require.NoError(t, err)

	require.NoError(t, svc.SoftDelete(ctx, created.ID, 7))

	// Listings exclude the tombstone.
	list, err := svc.List(ctx, &models.ListResourcesRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.Resources)

	// Direct reads still resolve it for reservation history.
	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "GRUE-01", got.Code)

	// Deleting twice reports not found.
	err = svc.SoftDelete(ctx, created.ID, 7)
	assert.ErrorIs(t, err, ErrResourceNotFound)
}

func TestServiceList(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	_, err := svc.Create(ctx, createRequest("GRUE-01"))
	require.NoError(t, err)

	pelle := createRequest("PELLE-01")
	pelle.Name = "Pelle hydraulique"
	pelle.Category = "earthmoving"
	_, err = svc.Create(ctx, pelle)
	require.NoError(t, err)

	t.Run("all, name ordered", func(t *testing.T) {
		list, err := svc.List(ctx, &models.ListResourcesRequest{})
		require.NoError(t, err)
		require.Len(t, list.Resources, 2)
		assert.Equal(t, "Grue mobile 40t", list.Resources[0].Name)
		assert.Equal(t, "Pelle hydraulique", list.Resources[1].Name)
	})

	t.Run("category filter", func(t *testing.T) {
		list, err := svc.List(ctx, &models.ListResourcesRequest{Category: ptr.Ptr("earthmoving")})
		require.NoError(t, err)
		require.Len(t, list.Resources, 1)
		assert.Equal(t, "PELLE-01", list.Resources[0].Code)
	})

	t.Run("unknown category rejected", func(t *testing.T) {
		_, err := svc.List(ctx, &models.ListResourcesRequest{Category: ptr.Ptr("boats")})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
