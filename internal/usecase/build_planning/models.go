package build_planning

import "time"

// PlanningDays is the width of a planning view.
const PlanningDays = 7

// Request asks for the planning of one resource for the week starting
// at WeekStart.
type Request struct {
	ResourceID int64
	WeekStart  time.Time
}

// Response is the 7-day planning view.
type Response struct {
	Resource ResourceHeader `json:"resource"`
	Days     []Day          `json:"days"`
}

// ResourceHeader is the display metadata of the planned resource.
type ResourceHeader struct {
	ID     int64  `json:"id"`
	Code   string `json:"code"`
	Name   string `json:"name"`
	Colour string `json:"colour"`
}

// Day is one planning cell: a date and its active reservations ordered
// by window start.
type Day struct {
	Date         string  `json:"date"`
	Reservations []Entry `json:"reservations"`
}

// Entry is one reservation as shown in the planning.
type Entry struct {
	ID            int64  `json:"id"`
	WindowStart   string `json:"windowStart"`
	WindowEnd     string `json:"windowEnd"`
	Status        string `json:"status"`
	RequesterID   int64  `json:"requesterId"`
	RequesterName string `json:"requesterName"`
	SiteID        int64  `json:"siteId"`
	SiteName      string `json:"siteName"`
}
