package common

// Header names used to carry identity on outbound API requests.
const (
	AuthorizationHeaderName = "Authorization"
	UserIDHeaderName        = "X-User-Id"
	RequestIDHeaderName     = "X-Request-Id"
)
