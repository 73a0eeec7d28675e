package create_resource

import (
	"errors"
	"net/http"

	"github.com/batiparc/BTP-ReservationService/internal/api/handlers"
	"github.com/batiparc/BTP-ReservationService/internal/api/middleware"
	"github.com/batiparc/BTP-ReservationService/internal/domain"
	"github.com/batiparc/BTP-ReservationService/internal/service/resources"
	"github.com/batiparc/BTP-ReservationService/internal/service/resources/models"
)

const (
	msgInvalidRequestBody = "corps de requête invalide"
	msgForbidden          = "seul un administrateur peut gérer le catalogue"
	msgDuplicateCode      = "code de ressource déjà utilisé"
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

// Handle POST /api/v1/resources
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	if role := middleware.GetUserRole(r.Context()); role != domain.RoleAdmin {
		h.logger.Warn("POST /resources - Forbidden: role=%s", role)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	var req models.CreateResourceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /resources - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, resources.ErrDuplicateCode):
			h.logger.Warn("POST /resources - Duplicate code: code=%s", req.Code)
			handlers.RespondError(w, http.StatusConflict, msgDuplicateCode)

		case errors.Is(err, resources.ErrInvalidInput):
			h.logger.Warn("POST /resources - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /resources - Failed to create resource: code=%s, error=%v", req.Code, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /resources - Resource created successfully: resource_id=%d, code=%s", result.ID, result.Code)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
