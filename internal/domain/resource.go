package domain

import "time"

// ResourceCategory classifies a piece of bookable site equipment.
type ResourceCategory string

const (
	CategoryLifting      ResourceCategory = "lifting"       // cranes, hoists
	CategoryEarthmoving  ResourceCategory = "earthmoving"   // excavators, loaders
	CategoryVehicle      ResourceCategory = "vehicle"       // trucks, utility vehicles
	CategoryHeavyTooling ResourceCategory = "heavy_tooling" // compressors, generators
	CategoryGeneral      ResourceCategory = "general"
)

// Categories lists the closed set of valid resource categories.
var Categories = []ResourceCategory{
	CategoryLifting,
	CategoryEarthmoving,
	CategoryVehicle,
	CategoryHeavyTooling,
	CategoryGeneral,
}

// ValidCategory reports whether c belongs to the closed category set.
func ValidCategory(c ResourceCategory) bool {
	for _, valid := range Categories {
		if c == valid {
			return true
		}
	}
	return false
}

// Resource is a piece of shared site equipment that can be reserved.
// Resources are never physically removed: deletion sets the tombstone
// fields so historical reservations stay resolvable.
type Resource struct {
	ID       int64
	Code     string // human code, unique among non-deleted resources
	Name     string
	Category ResourceCategory
	Colour   string // display colour for planning views

	// DefaultWindow is the time window proposed to requesters by
	// default; it does not constrain reservations.
	DefaultWindow TimeWindow

	// ValidationRequired makes new reservations start PENDING instead
	// of APPROVED. Persisted as validation_requise.
	ValidationRequired bool

	Active bool

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
	DeletedBy *int64
}

// IsDeleted reports whether the resource carries a tombstone.
func (r *Resource) IsDeleted() bool {
	return r.DeletedAt != nil
}

// IsBookable reports whether new reservations may target the resource.
func (r *Resource) IsBookable() bool {
	return r.Active && !r.IsDeleted()
}

// ResourceFilter narrows catalog listings.
type ResourceFilter struct {
	Category   *ResourceCategory // optional, nil means all categories
	ActiveOnly bool              // only resources open for booking

	// IncludeDeleted lifts the default exclusion of tombstoned rows.
	// Used by history reads only.
	IncludeDeleted bool
}

// ResourceUpdate carries the partial fields of a catalog update.
// Nil fields are left untouched.
type ResourceUpdate struct {
	Name               *string
	Category           *ResourceCategory
	Colour             *string
	DefaultWindow      *TimeWindow
	ValidationRequired *bool
	Active             *bool
}

// Empty reports whether the update changes nothing.
func (u ResourceUpdate) Empty() bool {
	return u.Name == nil && u.Category == nil && u.Colour == nil &&
		u.DefaultWindow == nil && u.ValidationRequired == nil && u.Active == nil
}
