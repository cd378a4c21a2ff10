// Package services provides the business logic layer between HTTP handlers and
// the loader, analytics and chat packages.
package services

import "errors"

// ServiceError represents a service layer error
type ServiceError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func (e *ServiceError) Error() string {
	return e.Message
}

// NewServiceError creates a new ServiceError
func NewServiceError(code, message string) *ServiceError {
	return &ServiceError{
		Code:    code,
		Message: message,
	}
}

// Error codes returned by the services.
const (
	CodeInvalidDataType      = "INVALID_DATA_TYPE"
	CodeInvalidAnalyticsType = "INVALID_ANALYTICS_TYPE"
	CodeInvalidInterval      = "INVALID_INTERVAL"
	CodeInvalidParameter     = "INVALID_PARAMETER"
	CodeLoadFailed           = "LOAD_FAILED"
	CodeMessageRequired      = "MESSAGE_REQUIRED"
	CodeChatNotConfigured    = "CHAT_NOT_CONFIGURED"
	CodeChatFailed           = "CHAT_FAILED"
)

// NewServiceErrorWithDetails creates a new ServiceError with details
func NewServiceErrorWithDetails(code, message string, details map[string]interface{}) *ServiceError {
	return &ServiceError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// AsServiceError unwraps err into a *ServiceError.
func AsServiceError(err error) (*ServiceError, bool) {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr, true
	}
	return nil, false
}
