package get_planning

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/batiparc/BTP-ReservationService/internal/api/handlers"
	"github.com/batiparc/BTP-ReservationService/internal/domain"
	buildPlanning "github.com/batiparc/BTP-ReservationService/internal/usecase/build_planning"
)

const (
	msgInvalidResourceID = "identifiant de ressource invalide"
	msgInvalidWeekStart  = "paramètre weekStart invalide, attendu YYYY-MM-DD"
	msgResourceNotFound  = "ressource introuvable"
)

type Handler struct {
	useCase BuildPlanningUseCase
	logger  Logger
}

func NewHandler(useCase BuildPlanningUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/resources/{resourceId}/planning?weekStart=2026-03-02
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	resourceID, err := strconv.ParseInt(vars["resourceId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /resources/{id}/planning - Invalid resource ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	weekStartStr := r.URL.Query().Get("weekStart")
	weekStart, err := time.Parse(domain.DateFormat, weekStartStr)
	if err != nil {
		h.logger.Warn("GET /resources/{id}/planning - Invalid weekStart %q: %v", weekStartStr, err)
		handlers.RespondBadRequest(w, msgInvalidWeekStart)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &buildPlanning.Request{
		ResourceID: resourceID,
		WeekStart:  weekStart,
	})
	if err != nil {
		switch {
		case errors.Is(err, buildPlanning.ErrResourceNotFound):
			h.logger.Warn("GET /resources/{id}/planning - Resource not found: resource_id=%d", resourceID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, buildPlanning.ErrValidation):
			h.logger.Warn("GET /resources/{id}/planning - Validation failed: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /resources/{id}/planning - Failed to build planning: resource_id=%d, error=%v",
				resourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
