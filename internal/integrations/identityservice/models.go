package identityservice

// UnknownDisplayName is the degraded value used when the directory
// cannot be reached.
const UnknownDisplayName = "unknown"

// User is the identity record exposed by the identity service.
type User struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

// ErrorResponse is the error payload returned by the identity service.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
