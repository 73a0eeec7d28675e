package create_reservation

import (
	"errors"
	"net/http"

	"github.com/batiparc/BTP-ReservationService/internal/api/handlers"
	"github.com/batiparc/BTP-ReservationService/internal/api/middleware"
	createReservation "github.com/batiparc/BTP-ReservationService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody  = "corps de requête invalide"
	msgInvalidDate         = "format de date invalide, attendu YYYY-MM-DD"
	msgMissingUserID       = "identifiant utilisateur manquant"
	msgResourceNotFound    = "ressource introuvable"
	msgResourceNotBookable = "ressource non réservable"
	msgWindowTaken         = "le créneau demandé est déjà occupé"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(requesterID)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var conflictErr *createReservation.ConflictError
		switch {
		case errors.As(err, &conflictErr):
			h.logger.Warn("POST /reservations - Window taken: resource_id=%d, date=%s, conflicts=%d",
				req.ResourceID, req.Date, len(conflictErr.Conflicts))
			handlers.RespondJSON(w, http.StatusConflict, ToConflictResponse(msgWindowTaken, conflictErr.Conflicts))

		case errors.Is(err, createReservation.ErrResourceNotFound):
			h.logger.Warn("POST /reservations - Resource not found: resource_id=%d", req.ResourceID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, createReservation.ErrResourceNotBookable):
			h.logger.Warn("POST /reservations - Resource not bookable: resource_id=%d", req.ResourceID)
			handlers.RespondBadRequest(w, msgResourceNotBookable)

		case errors.Is(err, createReservation.ErrValidation):
			h.logger.Warn("POST /reservations - Validation failed: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: resource_id=%d, requester_id=%d, error=%v",
				req.ResourceID, requesterID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created successfully: reservation_id=%d, resource_id=%d, requester_id=%d, status=%s",
		result.ID, result.ResourceID, requesterID, result.Status)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
