package siteservice

import "errors"

var (
	// ErrSiteNotFound is returned when the site id is unknown.
	ErrSiteNotFound = errors.New("siteservice client: site not found")

	// ErrInternal is returned on client-side failures.
	ErrInternal = errors.New("siteservice client: internal error")

	// ErrInvalidResponse is returned on malformed service responses.
	ErrInvalidResponse = errors.New("siteservice client: invalid response")
)
