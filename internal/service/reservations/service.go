package reservations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/batiparc/BTP-ReservationService/internal/domain"
	"github.com/batiparc/BTP-ReservationService/internal/events"
	reservationRepo "github.com/batiparc/BTP-ReservationService/internal/infra/storage/reservation"
	"github.com/batiparc/BTP-ReservationService/internal/service/reservations/models"
)

// Service drives the validation workflow of reservations: approve and
// refuse (validator roles), cancel (original requester), plus the read
// surface. Every transition is checked against the domain transition
// table and applied through a status-guarded update so a concurrent
// decision is never overwritten.
type Service struct {
	reservationRepo ReservationRepository
	publisher       EventPublisher
	logger          Logger
}

func NewService(reservationRepo ReservationRepository, publisher EventPublisher, logger Logger) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		publisher:       publisher,
		logger:          logger,
	}
}

// GetByID fetches a reservation by id.
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ReservationResponse, error) {
	res, err := s.loadReservation(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainReservation(res), nil
}

// ListByRequester returns the reservation history of one requester.
func (s *Service) ListByRequester(ctx context.Context, req *models.ListByRequesterRequest) (*models.ReservationListResponse, error) {
	var status *domain.ReservationStatus
	if req.Status != nil {
		converted, ok := models.ToDomainStatus(*req.Status)
		if !ok {
			s.logger.Warn("ListByRequester: invalid status=%s for requester=%d", *req.Status, req.RequesterID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		status = &converted
	}

	list, err := s.reservationRepo.ListByRequester(ctx, req.RequesterID, status)
	if err != nil {
		s.logger.Error("ListByRequester: repository error for requester=%d: %v", req.RequesterID, err)
		return nil, fmt.Errorf("%w: ListByRequester - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainReservationList(list), nil
}

// ListPendingForValidator returns the pending reservations awaiting a
// decision, ordered by date. Gated on the validator roles.
func (s *Service) ListPendingForValidator(ctx context.Context, role string) (*models.ReservationListResponse, error) {
	if !domain.CanValidate(role) {
		s.logger.Warn("ListPendingForValidator: role=%s may not validate", role)
		return nil, ErrForbidden
	}

	list, err := s.reservationRepo.ListPending(ctx)
	if err != nil {
		s.logger.Error("ListPendingForValidator: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListPendingForValidator - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainReservationList(list), nil
}

// Approve moves a pending reservation to APPROVED and records the
// validator and timestamp.
func (s *Service) Approve(ctx context.Context, id int64, req *models.ApproveRequest) (*models.ReservationResponse, error) {
	s.logger.Info("Approve: reservation id=%d by validator=%d role=%s", id, req.ValidatorID, req.Role)

	if !domain.CanValidate(req.Role) {
		s.logger.Warn("Approve: role=%s may not validate reservation id=%d", req.Role, id)
		return nil, ErrForbidden
	}

	res, err := s.loadReservation(ctx, "Approve", id)
	if err != nil {
		return nil, err
	}

	updated, err := s.transition(ctx, "Approve", res, domain.StatusApproved, &req.ValidatorID, nil)
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(events.NewReservationApproved(
		updated.ID, updated.ResourceID, updated.SiteID, updated.RequesterID, req.ValidatorID, time.Now()))

	s.logger.Info("Approve: reservation id=%d approved by validator=%d", id, req.ValidatorID)
	return models.FromDomainReservation(updated), nil
}

// Refuse moves a pending reservation to REFUSED with an optional
// motive, and records the validator and timestamp.
func (s *Service) Refuse(ctx context.Context, id int64, req *models.RefuseRequest) (*models.ReservationResponse, error) {
	s.logger.Info("Refuse: reservation id=%d by validator=%d role=%s", id, req.ValidatorID, req.Role)

	if !domain.CanValidate(req.Role) {
		s.logger.Warn("Refuse: role=%s may not validate reservation id=%d", req.Role, id)
		return nil, ErrForbidden
	}
	if req.Motive != nil && len(*req.Motive) > domain.MaxRefusalMotiveLength {
		s.logger.Warn("Refuse: motive too long for reservation id=%d", id)
		return nil, fmt.Errorf("%w: motive must be at most %d characters", ErrInvalidInput, domain.MaxRefusalMotiveLength)
	}

	res, err := s.loadReservation(ctx, "Refuse", id)
	if err != nil {
		return nil, err
	}

	updated, err := s.transition(ctx, "Refuse", res, domain.StatusRefused, &req.ValidatorID, req.Motive)
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(events.NewReservationRefused(
		updated.ID, updated.ResourceID, updated.SiteID, updated.RequesterID, req.ValidatorID, req.Motive, time.Now()))

	s.logger.Info("Refuse: reservation id=%d refused by validator=%d", id, req.ValidatorID)
	return models.FromDomainReservation(updated), nil
}

// Cancel moves a reservation to CANCELLED. Only the original
// requester may cancel, from PENDING or APPROVED.
func (s *Service) Cancel(ctx context.Context, id int64, req *models.CancelRequest) (*models.ReservationResponse, error) {
	s.logger.Info("Cancel: reservation id=%d by requester=%d", id, req.RequesterID)

	res, err := s.loadReservation(ctx, "Cancel", id)
	if err != nil {
		return nil, err
	}

	if res.RequesterID != req.RequesterID {
		s.logger.Warn("Cancel: user=%d is not the requester of reservation id=%d", req.RequesterID, id)
		return nil, ErrForbidden
	}

	updated, err := s.transition(ctx, "Cancel", res, domain.StatusCancelled, nil, nil)
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(events.NewReservationCancelled(
		updated.ID, updated.ResourceID, updated.SiteID, updated.RequesterID, time.Now()))

	s.logger.Info("Cancel: reservation id=%d cancelled by requester=%d", id, req.RequesterID)
	return models.FromDomainReservation(updated), nil
}

// SoftDelete tombstones a reservation for administrative redaction.
// The row is kept; audit history is never purged.
func (s *Service) SoftDelete(ctx context.Context, id int64, actorID int64, role string) error {
	s.logger.Info("DeleteReservation: id=%d by actor=%d role=%s", id, actorID, role)

	if role != domain.RoleAdmin {
		s.logger.Warn("DeleteReservation: role=%s may not delete reservation id=%d", role, id)
		return ErrForbidden
	}

	if err := s.reservationRepo.SoftDelete(ctx, id, actorID); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("DeleteReservation: reservation id=%d not found", id)
			return ErrReservationNotFound
		}
		s.logger.Error("DeleteReservation: repository error for id=%d: %v", id, err)
		return fmt.Errorf("%w: SoftDelete - repository error: %v", ErrInternal, err)
	}

	return nil
}

// transition applies a workflow move through the guarded update. When
// the guard reports a stale status, the reservation is re-read so a
// concurrent decision surfaces as ErrInvalidTransition instead of a
// silent overwrite.
func (s *Service) transition(ctx context.Context, op string, res *domain.Reservation, next domain.ReservationStatus, validatorID *int64, motive *string) (*domain.Reservation, error) {
	if !domain.CanTransition(res.Status, next) {
		s.logger.Warn("%s: illegal transition %s -> %s for reservation id=%d", op, res.Status, next, res.ID)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, res.Status, next)
	}

	err := s.reservationRepo.UpdateStatusGuarded(ctx, res.ID, res.Status, next, validatorID, motive)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrStaleStatus) {
			// A concurrent writer decided first; report against the
			// current persisted state.
			current, loadErr := s.loadReservation(ctx, op, res.ID)
			if loadErr != nil {
				return nil, loadErr
			}
			s.logger.Warn("%s: reservation id=%d changed concurrently, status is now %s", op, res.ID, current.Status)
			return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, next)
		}
		s.logger.Error("%s: repository error for reservation id=%d: %v", op, res.ID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	return s.loadReservation(ctx, op, res.ID)
}

func (s *Service) loadReservation(ctx context.Context, op string, id int64) (*domain.Reservation, error) {
	res, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("%s: reservation id=%d not found", op, id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("%s: repository error for reservation id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return res, nil
}
