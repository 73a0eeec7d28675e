package create_reservation

import (
	"fmt"

	"github.com/batiparc/BTP-ReservationService/internal/domain"
	"github.com/batiparc/BTP-ReservationService/pkg/types"
)

// validateRequest checks identifiers, comment length and the time
// window shape before touching storage.
func validateRequest(req *Request) (domain.TimeWindow, error) {
	if req.ResourceID <= 0 {
		return domain.TimeWindow{}, fmt.Errorf("%w: resourceId must be positive", ErrValidation)
	}
	if req.SiteID <= 0 {
		return domain.TimeWindow{}, fmt.Errorf("%w: siteId must be positive", ErrValidation)
	}
	if req.RequesterID <= 0 {
		return domain.TimeWindow{}, fmt.Errorf("%w: requesterId must be positive", ErrValidation)
	}
	if req.Date.IsZero() {
		return domain.TimeWindow{}, fmt.Errorf("%w: date is required", ErrValidation)
	}
	if req.Comment != nil && len(*req.Comment) > domain.MaxCommentLength {
		return domain.TimeWindow{}, fmt.Errorf("%w: comment must be at most %d characters", ErrValidation, domain.MaxCommentLength)
	}

	start, err := types.NewTimeStringFromString(req.WindowStart)
	if err != nil {
		return domain.TimeWindow{}, fmt.Errorf("%w: invalid windowStart: %v", ErrValidation, err)
	}
	end, err := types.NewTimeStringFromString(req.WindowEnd)
	if err != nil {
		return domain.TimeWindow{}, fmt.Errorf("%w: invalid windowEnd: %v", ErrValidation, err)
	}

	window, err := domain.NewTimeWindow(start, end)
	if err != nil {
		return domain.TimeWindow{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return window, nil
}
