package get_pending_reservations

import (
	"errors"
	"net/http"

	"github.com/batiparc/BTP-ReservationService/internal/api/handlers"
	"github.com/batiparc/BTP-ReservationService/internal/api/middleware"
	"github.com/batiparc/BTP-ReservationService/internal/service/reservations"
)

const msgForbidden = "rôle insuffisant pour consulter les demandes en attente"

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/reservations/pending
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	role := middleware.GetUserRole(r.Context())

	result, err := h.service.ListPendingForValidator(r.Context(), role)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrForbidden):
			h.logger.Warn("GET /reservations/pending - Forbidden: role=%s", role)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /reservations/pending - Failed to list pending reservations: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
