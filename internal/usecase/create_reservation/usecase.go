package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/batiparc/BTP-ReservationService/internal/domain"
	"github.com/batiparc/BTP-ReservationService/internal/events"
	resourceRepo "github.com/batiparc/BTP-ReservationService/internal/infra/storage/resource"
	reservationRepo "github.com/batiparc/BTP-ReservationService/internal/infra/storage/reservation"
)

// UseCase creates a reservation. The conflict scan and the insert run
// inside one serializable transaction so two concurrent requests for
// an overlapping window cannot both pass the check. The storage layer
// keeps an exclusion constraint as a second line of defence; its
// violation is reported as the same ConflictError.
type UseCase struct {
	resourceRepo    ResourceRepository
	reservationRepo ReservationRepository
	txManager       TransactionManager
	publisher       EventPublisher
	timeProvider    TimeProvider
	logger          Logger
}

func NewUseCase(
	resourceRepo ResourceRepository,
	reservationRepo ReservationRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	logger Logger,
) *UseCase {
	return &UseCase{
		resourceRepo:    resourceRepo,
		reservationRepo: reservationRepo,
		txManager:       txManager,
		publisher:       publisher,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute creates the reservation or reports the conflicting ones.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: resource=%d, site=%d, requester=%d, date=%s, window=%s-%s",
		req.ResourceID, req.SiteID, req.RequesterID, req.Date.Format(domain.DateFormat), req.WindowStart, req.WindowEnd)

	// 1. Validate input and build the window.
	window, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Load the resource and check it is bookable.
	resource, err := uc.resourceRepo.GetByID(ctx, req.ResourceID)
	if err != nil {
		if errors.Is(err, resourceRepo.ErrResourceNotFound) {
			uc.logger.Warn("CreateReservation: resource id=%d not found", req.ResourceID)
			return nil, ErrResourceNotFound
		}
		uc.logger.Error("CreateReservation: failed to get resource id=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: failed to get resource: %v", ErrInternal, err)
	}
	if !resource.IsBookable() {
		uc.logger.Warn("CreateReservation: resource id=%d is not bookable", req.ResourceID)
		return nil, ErrResourceNotBookable
	}

	var result *domain.Reservation

	// 3. Conflict scan and insert in one serializable transaction. The
	// scan locks the overlapping rows (FOR UPDATE inside a tx), so the
	// second of two racing requests either sees the first one's row or
	// aborts on serialization failure and is retried by the manager.
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		conflicts, err := uc.reservationRepo.FindConflicts(txCtx, req.ResourceID, req.Date, window, 0)
		if err != nil {
			uc.logger.Error("CreateReservation: conflict scan failed: %v", err)
			return fmt.Errorf("%w: conflict scan failed: %v", ErrInternal, err)
		}
		if len(conflicts) > 0 {
			uc.logger.Warn("CreateReservation: window %s on %s conflicts with %d reservation(s)",
				window, req.Date.Format(domain.DateFormat), len(conflicts))
			return &ConflictError{Conflicts: conflicts}
		}

		reservation := &domain.Reservation{
			ResourceID:  req.ResourceID,
			SiteID:      req.SiteID,
			RequesterID: req.RequesterID,
			Date:        req.Date,
			Window:      window,
			Status:      domain.InitialStatus(resource.ValidationRequired),
			Comment:     req.Comment,
		}

		created, err := uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			return err
		}

		result = created
		return nil
	})

	if err != nil {
		// The exclusion constraint catches whatever slips past the scan;
		// translate it to the same conflict shape, re-reading the
		// conflicting rows outside the aborted transaction.
		if errors.Is(err, reservationRepo.ErrWindowTaken) {
			conflicts, scanErr := uc.reservationRepo.FindConflicts(ctx, req.ResourceID, req.Date, window, 0)
			if scanErr != nil {
				uc.logger.Error("CreateReservation: conflict re-read failed: %v", scanErr)
				conflicts = nil
			}
			uc.logger.Warn("CreateReservation: window %s on %s rejected by storage exclusion",
				window, req.Date.Format(domain.DateFormat))
			return nil, &ConflictError{Conflicts: conflicts}
		}

		var conflictErr *ConflictError
		if errors.As(err, &conflictErr) || errors.Is(err, ErrValidation) || errors.Is(err, ErrInternal) {
			return nil, err
		}

		uc.logger.Error("CreateReservation: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}

	uc.publisher.Publish(events.NewReservationCreated(
		result.ID, result.ResourceID, result.SiteID, result.RequesterID, string(result.Status), uc.timeProvider.Now()))

	uc.logger.Info("CreateReservation: successfully created reservation id=%d status=%s", result.ID, result.Status)
	return toResponse(result), nil
}
