package resources

import (
	"context"
	"errors"
	"fmt"

	"github.com/batiparc/BTP-ReservationService/internal/domain"
	resourceRepo "github.com/batiparc/BTP-ReservationService/internal/infra/storage/resource"
	"github.com/batiparc/BTP-ReservationService/internal/service/resources/models"
	"github.com/batiparc/BTP-ReservationService/pkg/types"
)

// Service is the equipment catalog: resource definitions and their
// lifecycle. Resources are only ever soft-deleted so that historical
// reservations stay resolvable.
type Service struct {
	resourceRepo ResourceRepository
	logger       Logger
}

func NewService(resourceRepo ResourceRepository, logger Logger) *Service {
	return &Service{
		resourceRepo: resourceRepo,
		logger:       logger,
	}
}

// Create registers a new resource in the catalog.
func (s *Service) Create(ctx context.Context, req *models.CreateResourceRequest) (*models.ResourceResponse, error) {
	s.logger.Info("CreateResource: code=%s, name=%s, category=%s", req.Code, req.Name, req.Category)

	res, err := toDomainResource(req)
	if err != nil {
		s.logger.Warn("CreateResource: validation failed: %v", err)
		return nil, err
	}

	created, err := s.resourceRepo.Create(ctx, res)
	if err != nil {
		if errors.Is(err, resourceRepo.ErrDuplicateCode) {
			s.logger.Warn("CreateResource: code=%s already in use", req.Code)
			return nil, ErrDuplicateCode
		}
		s.logger.Error("CreateResource: repository error for code=%s: %v", req.Code, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateResource: successfully created resource id=%d code=%s", created.ID, created.Code)
	return models.FromDomainResource(created), nil
}

// GetByID fetches one resource, including soft-deleted ones, so that
// reservation history stays resolvable.
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ResourceResponse, error) {
	res, err := s.resourceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, resourceRepo.ErrResourceNotFound) {
			s.logger.Warn("GetResource: resource id=%d not found", id)
			return nil, ErrResourceNotFound
		}
		s.logger.Error("GetResource: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainResource(res), nil
}

// GetByCode fetches a non-deleted resource by its catalog code.
func (s *Service) GetByCode(ctx context.Context, code string) (*models.ResourceResponse, error) {
	res, err := s.resourceRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, resourceRepo.ErrResourceNotFound) {
			s.logger.Warn("GetResource: resource code=%s not found", code)
			return nil, ErrResourceNotFound
		}
		s.logger.Error("GetResource: repository error for code=%s: %v", code, err)
		return nil, fmt.Errorf("%w: GetByCode - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainResource(res), nil
}

// Update applies a partial update to a non-deleted resource.
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateResourceRequest) (*models.ResourceResponse, error) {
	s.logger.Info("UpdateResource: id=%d", id)

	upd, err := toDomainUpdate(req)
	if err != nil {
		s.logger.Warn("UpdateResource: validation failed for id=%d: %v", id, err)
		return nil, err
	}
	if upd.Empty() {
		s.logger.Warn("UpdateResource: empty update for id=%d", id)
		return nil, fmt.Errorf("%w: no fields to update", ErrInvalidInput)
	}

	if err := s.resourceRepo.Update(ctx, id, upd); err != nil {
		if errors.Is(err, resourceRepo.ErrResourceNotFound) {
			s.logger.Warn("UpdateResource: resource id=%d not found", id)
			return nil, ErrResourceNotFound
		}
		s.logger.Error("UpdateResource: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	res, err := s.resourceRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("UpdateResource: reload failed for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - reload error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateResource: successfully updated resource id=%d", id)
	return models.FromDomainResource(res), nil
}

// SoftDelete tombstones a resource on behalf of actorID. Listings
// exclude it afterwards; history reads still resolve it.
func (s *Service) SoftDelete(ctx context.Context, id int64, actorID int64) error {
	s.logger.Info("DeleteResource: id=%d by actor=%d", id, actorID)

	if err := s.resourceRepo.SoftDelete(ctx, id, actorID); err != nil {
		if errors.Is(err, resourceRepo.ErrResourceNotFound) {
			s.logger.Warn("DeleteResource: resource id=%d not found", id)
			return ErrResourceNotFound
		}
		s.logger.Error("DeleteResource: repository error for id=%d: %v", id, err)
		return fmt.Errorf("%w: SoftDelete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteResource: successfully deleted resource id=%d", id)
	return nil
}

// List returns catalog entries ordered by name, excluding soft-deleted
// resources.
func (s *Service) List(ctx context.Context, req *models.ListResourcesRequest) (*models.ResourceListResponse, error) {
	filter := domain.ResourceFilter{ActiveOnly: req.ActiveOnly}

	if req.Category != nil {
		category := domain.ResourceCategory(*req.Category)
		if !domain.ValidCategory(category) {
			s.logger.Warn("ListResources: invalid category=%s", *req.Category)
			return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, *req.Category)
		}
		filter.Category = &category
	}

	list, err := s.resourceRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListResources: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainResourceList(list), nil
}

// toDomainResource validates and converts a creation request.
func toDomainResource(req *models.CreateResourceRequest) (*domain.Resource, error) {
	if req.Code == "" || len(req.Code) > domain.MaxResourceCodeLength {
		return nil, fmt.Errorf("%w: code must be 1-%d characters", ErrInvalidInput, domain.MaxResourceCodeLength)
	}
	if req.Name == "" || len(req.Name) > domain.MaxResourceNameLength {
		return nil, fmt.Errorf("%w: name must be 1-%d characters", ErrInvalidInput, domain.MaxResourceNameLength)
	}

	category := domain.ResourceCategory(req.Category)
	if !domain.ValidCategory(category) {
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, req.Category)
	}

	window, err := parseWindow(req.WindowStart, req.WindowEnd)
	if err != nil {
		return nil, err
	}

	return &domain.Resource{
		Code:               req.Code,
		Name:               req.Name,
		Category:           category,
		Colour:             req.Colour,
		DefaultWindow:      window,
		ValidationRequired: req.ValidationRequired,
		Active:             true,
	}, nil
}

// toDomainUpdate validates and converts a partial update request.
func toDomainUpdate(req *models.UpdateResourceRequest) (domain.ResourceUpdate, error) {
	var upd domain.ResourceUpdate

	if req.Name != nil {
		if *req.Name == "" || len(*req.Name) > domain.MaxResourceNameLength {
			return upd, fmt.Errorf("%w: name must be 1-%d characters", ErrInvalidInput, domain.MaxResourceNameLength)
		}
		upd.Name = req.Name
	}
	if req.Category != nil {
		category := domain.ResourceCategory(*req.Category)
		if !domain.ValidCategory(category) {
			return upd, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, *req.Category)
		}
		upd.Category = &category
	}
	if req.Colour != nil {
		upd.Colour = req.Colour
	}

	// Window bounds are only updatable together; a lone bound cannot
	// be validated against the stored one without a read-modify-write.
	if (req.WindowStart == nil) != (req.WindowEnd == nil) {
		return upd, fmt.Errorf("%w: windowStart and windowEnd must be updated together", ErrInvalidInput)
	}
	if req.WindowStart != nil {
		window, err := parseWindow(*req.WindowStart, *req.WindowEnd)
		if err != nil {
			return upd, err
		}
		upd.DefaultWindow = &window
	}

	upd.ValidationRequired = req.ValidationRequired
	upd.Active = req.Active

	return upd, nil
}

func parseWindow(start, end string) (domain.TimeWindow, error) {
	windowStart, err := types.NewTimeStringFromString(start)
	if err != nil {
		return domain.TimeWindow{}, fmt.Errorf("%w: invalid windowStart: %v", ErrInvalidInput, err)
	}
	windowEnd, err := types.NewTimeStringFromString(end)
	if err != nil {
		return domain.TimeWindow{}, fmt.Errorf("%w: invalid windowEnd: %v", ErrInvalidInput, err)
	}
	window, err := domain.NewTimeWindow(windowStart, windowEnd)
	if err != nil {
		return domain.TimeWindow{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return window, nil
}
