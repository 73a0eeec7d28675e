package get_resources

import (
	"errors"
	"net/http"

	"github.com/batiparc/BTP-ReservationService/internal/api/handlers"
	"github.com/batiparc/BTP-ReservationService/internal/service/resources"
	"github.com/batiparc/BTP-ReservationService/internal/service/resources/models"
)

const msgInvalidCategory = "catégorie invalide"

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

// Handle GET /api/v1/resources?category=lifting&activeOnly=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &models.ListResourcesRequest{}

	if category := r.URL.Query().Get("category"); category != "" {
		req.Category = &category
	}
	if r.URL.Query().Get("activeOnly") == "true" {
		req.ActiveOnly = true
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, resources.ErrInvalidInput):
			h.logger.Warn("GET /resources - Invalid category: %v", err)
			handlers.RespondBadRequest(w, msgInvalidCategory)

		default:
			h.logger.Error("GET /resources - Failed to list resources: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
