package models

import (
	"time"

	"github.com/batiparc/BTP-ReservationService/internal/domain"
)

// Request models

// CreateResourceRequest carries the fields of a new catalog entry.
type CreateResourceRequest struct {
	Code               string `json:"code"`
	Name               string `json:"name"`
	Category           string `json:"category"`
	Colour             string `json:"colour"`
	WindowStart        string `json:"windowStart"` // "07:30"
	WindowEnd          string `json:"windowEnd"`   // "18:00"
	ValidationRequired bool   `json:"validationRequired"`
}

// UpdateResourceRequest carries a partial catalog update. Nil fields
// are left untouched.
type UpdateResourceRequest struct {
	Name               *string `json:"name,omitempty"`
	Category           *string `json:"category,omitempty"`
	Colour             *string `json:"colour,omitempty"`
	WindowStart        *string `json:"windowStart,omitempty"`
	WindowEnd          *string `json:"windowEnd,omitempty"`
	ValidationRequired *bool   `json:"validationRequired,omitempty"`
	Active             *bool   `json:"active,omitempty"`
}

// ListResourcesRequest narrows catalog listings.
type ListResourcesRequest struct {
	Category   *string `json:"category,omitempty"`
	ActiveOnly bool    `json:"activeOnly,omitempty"`
}

// Response models

// ResourceResponse is the catalog DTO.
type ResourceResponse struct {
	ID                 int64     `json:"id"`
	Code               string    `json:"code"`
	Name               string    `json:"name"`
	Category           string    `json:"category"`
	Colour             string    `json:"colour"`
	WindowStart        string    `json:"windowStart"`
	WindowEnd          string    `json:"windowEnd"`
	ValidationRequired bool      `json:"validationRequired"`
	Active             bool      `json:"active"`
	Deleted            bool      `json:"deleted"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// ResourceListResponse is the catalog listing DTO.
type ResourceListResponse struct {
	Resources []ResourceResponse `json:"resources"`
}

// FromDomainResource converts a domain resource into the DTO.
func FromDomainResource(r *domain.Resource) *ResourceResponse {
	if r == nil {
		return nil
	}
	return &ResourceResponse{
		ID:                 r.ID,
		Code:               r.Code,
		Name:               r.Name,
		Category:           string(r.Category),
		Colour:             r.Colour,
		WindowStart:        r.DefaultWindow.Start.String(),
		WindowEnd:          r.DefaultWindow.End.String(),
		ValidationRequired: r.ValidationRequired,
		Active:             r.Active,
		Deleted:            r.IsDeleted(),
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
}

// FromDomainResourceList converts a domain resource list into the DTO.
func FromDomainResourceList(resources []*domain.Resource) *ResourceListResponse {
	resp := &ResourceListResponse{
		Resources: make([]ResourceResponse, 0, len(resources)),
	}
	for _, r := range resources {
		if dto := FromDomainResource(r); dto != nil {
			resp.Resources = append(resp.Resources, *dto)
		}
	}
	return resp
}
