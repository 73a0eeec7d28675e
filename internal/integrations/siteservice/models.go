package siteservice

// UnknownSiteName is the degraded value used when the directory
// cannot be reached.
const UnknownSiteName = "unknown"

// Site is the construction-site record exposed by the site directory.
type Site struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ErrorResponse is the error payload returned by the site directory.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
