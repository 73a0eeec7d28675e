package delete_resource

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/batiparc/BTP-ReservationService/internal/api/handlers"
	"github.com/batiparc/BTP-ReservationService/internal/api/middleware"
	"github.com/batiparc/BTP-ReservationService/internal/domain"
	"github.com/batiparc/BTP-ReservationService/internal/service/resources"
)

const (
	msgInvalidResourceID = "identifiant de ressource invalide"
	msgMissingUserID     = "identifiant utilisateur manquant"
	msgForbidden         = "seul un administrateur peut gérer le catalogue"
	msgNotFound          = "ressource introuvable"
)

type Handler struct {
	service ResourceService
	logger  Logger
}

func NewHandler(service ResourceService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/resources/{resourceId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	if role := middleware.GetUserRole(r.Context()); role != domain.RoleAdmin {
		h.logger.Warn("DELETE /resources/{id} - Forbidden: role=%s", role)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /resources/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	vars := mux.Vars(r)
	resourceID, err := strconv.ParseInt(vars["resourceId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /resources/{id} - Invalid resource ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	if err := h.service.SoftDelete(r.Context(), resourceID, actorID); err != nil {
		switch {
		case errors.Is(err, resources.ErrResourceNotFound):
			h.logger.Warn("DELETE /resources/{id} - Resource not found: resource_id=%d", resourceID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /resources/{id} - Failed to delete resource: resource_id=%d, error=%v",
				resourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /resources/{id} - Resource deleted successfully: resource_id=%d, actor_id=%d",
		resourceID, actorID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
