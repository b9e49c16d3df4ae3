package errors

import (
	"fmt"
	"net/http"
)

// Code represents an error code with HTTP status and message
type Code struct {
	Code    int    // Business error code
	Status  int    // HTTP status code
	Message string // Error message
}

// Error codes for different modules
const (
	// Success
	Success = 0

	// Common errors (1000-1999)
	ErrInternalServer = 1000
	ErrInvalidParams  = 1001
	ErrNotFound       = 1002
	ErrServiceUnavail = 1003

	// Query errors (2000-2999)
	ErrQueryInvalidInput   = 2000
	ErrQueryCredential     = 2001
	ErrQuerySearchProvider = 2002

	// Image errors (3000-3999)
	ErrImageProvider = 3000
	ErrImageNotFound = 3001
	ErrImageStore    = 3002

	// Cache errors (4000-4999)
	ErrCacheRead  = 4000
	ErrCacheWrite = 4001
)

// codeMap maps error codes to their details
var codeMap = map[int]Code{
	Success: {Success, http.StatusOK, "Success"},

	// Common errors
	ErrInternalServer: {ErrInternalServer, http.StatusInternalServerError, "Internal server error"},
	ErrInvalidParams:  {ErrInvalidParams, http.StatusBadRequest, "Invalid parameters"},
	ErrNotFound:       {ErrNotFound, http.StatusNotFound, "Resource not found"},
	ErrServiceUnavail: {ErrServiceUnavail, http.StatusServiceUnavailable, "Service unavailable"},

	// Query errors. Invalid input maps to 404 so that hand-crafted query
	// URLs behave exactly like an unknown path.
	ErrQueryInvalidInput:   {ErrQueryInvalidInput, http.StatusNotFound, "Invalid query"},
	ErrQueryCredential:     {ErrQueryCredential, http.StatusBadGateway, "Failed to authenticate with search provider"},
	ErrQuerySearchProvider: {ErrQuerySearchProvider, http.StatusBadGateway, "Failed to fetch results from search provider"},

	// Image errors
	ErrImageProvider: {ErrImageProvider, http.StatusBadGateway, "Failed to fetch map image"},
	ErrImageNotFound: {ErrImageNotFound, http.StatusNotFound, "Map image not found"},
	ErrImageStore:    {ErrImageStore, http.StatusInternalServerError, "Image storage operation failed"},

	// Cache errors
	ErrCacheRead:  {ErrCacheRead, http.StatusInternalServerError, "Cache read failed"},
	ErrCacheWrite: {ErrCacheWrite, http.StatusInternalServerError, "Cache write failed"},
}

// GetCode returns the Code for a given error code
func GetCode(code int) Code {
	if c, ok := codeMap[code]; ok {
		return c
	}
	return codeMap[ErrInternalServer]
}

// GetHTTPStatus returns HTTP status for a given error code
func GetHTTPStatus(code int) int {
	return GetCode(code).Status
}

// GetMessage returns the message for a given error code
func GetMessage(code int) string {
	return GetCode(code).Message
}

// IsSuccess checks if the code represents success
func IsSuccess(code int) bool {
	return code == Success
}

// FormatError formats an error message with code
func FormatError(code int, details ...string) string {
	msg := GetMessage(code)
	if len(details) > 0 && details[0] != "" {
		return fmt.Sprintf("%s: %s", msg, details[0])
	}
	return msg
}
