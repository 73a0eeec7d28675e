package build_planning

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/batiparc/BTP-ReservationService/internal/domain"
	resourceRepo "github.com/batiparc/BTP-ReservationService/internal/infra/storage/resource"
)

// UseCase assembles the weekly planning of one resource: seven
// consecutive day cells with the active reservations of each day,
// requester and site names resolved through the directory clients.
// Name lookups degrade to "unknown" and never fail the view.
type UseCase struct {
	resourceRepo    ResourceRepository
	reservationRepo ReservationRepository
	identityClient  IdentityServiceClient
	siteClient      SiteServiceClient
	logger          Logger
}

func NewUseCase(
	resourceRepo ResourceRepository,
	reservationRepo ReservationRepository,
	identityClient IdentityServiceClient,
	siteClient SiteServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		resourceRepo:    resourceRepo,
		reservationRepo: reservationRepo,
		identityClient:  identityClient,
		siteClient:      siteClient,
		logger:          logger,
	}
}

// Execute builds the planning view.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BuildPlanning: resource=%d, weekStart=%s", req.ResourceID, req.WeekStart.Format(domain.DateFormat))

	if req.ResourceID <= 0 {
		return nil, fmt.Errorf("%w: resourceId must be positive", ErrValidation)
	}
	if req.WeekStart.IsZero() {
		return nil, fmt.Errorf("%w: weekStart is required", ErrValidation)
	}

	resource, err := uc.resourceRepo.GetByID(ctx, req.ResourceID)
	if err != nil {
		if errors.Is(err, resourceRepo.ErrResourceNotFound) {
			uc.logger.Warn("BuildPlanning: resource id=%d not found", req.ResourceID)
			return nil, ErrResourceNotFound
		}
		uc.logger.Error("BuildPlanning: failed to get resource id=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: failed to get resource: %v", ErrInternal, err)
	}

	weekStart := truncateToDay(req.WeekStart)
	weekEnd := weekStart.AddDate(0, 0, PlanningDays-1)

	reservations, err := uc.reservationRepo.ListByResourceAndDateRange(ctx, req.ResourceID, weekStart, weekEnd, false)
	if err != nil {
		uc.logger.Error("BuildPlanning: failed to list reservations for resource id=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: failed to list reservations: %v", ErrInternal, err)
	}

	// Group per day; the repository returns rows ordered by date then
	// window start, so per-day order is preserved.
	byDay := make(map[string][]*domain.Reservation, PlanningDays)
	for _, r := range reservations {
		key := r.Date.Format(domain.DateFormat)
		byDay[key] = append(byDay[key], r)
	}

	// Resolve each name once per view.
	requesterNames := make(map[int64]string)
	siteNames := make(map[int64]string)

	days := make([]Day, 0, PlanningDays)
	for i := 0; i < PlanningDays; i++ {
		date := weekStart.AddDate(0, 0, i)
		key := date.Format(domain.DateFormat)

		entries := make([]Entry, 0, len(byDay[key]))
		for _, r := range byDay[key] {
			requesterName, ok := requesterNames[r.RequesterID]
			if !ok {
				requesterName = uc.identityClient.DisplayNameOrUnknown(ctx, r.RequesterID)
				requesterNames[r.RequesterID] = requesterName
			}
			siteName, ok := siteNames[r.SiteID]
			if !ok {
				siteName = uc.siteClient.NameOrUnknown(ctx, r.SiteID)
				siteNames[r.SiteID] = siteName
			}

			entries = append(entries, Entry{
				ID:            r.ID,
				WindowStart:   r.Window.Start.String(),
				WindowEnd:     r.Window.End.String(),
				Status:        string(r.Status),
				RequesterID:   r.RequesterID,
				RequesterName: requesterName,
				SiteID:        r.SiteID,
				SiteName:      siteName,
			})
		}

		days = append(days, Day{Date: key, Reservations: entries})
	}

	return &Response{
		Resource: ResourceHeader{
			ID:     resource.ID,
			Code:   resource.Code,
			Name:   resource.Name,
			Colour: resource.Colour,
		},
		Days: days,
	}, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
