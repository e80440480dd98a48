package errors

import (
	"fmt"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeValidation indicates a malformed or out-of-range argument
	ErrorTypeValidation ErrorType = "Validation"

	// ErrorTypePermission indicates insufficient permissions
	ErrorTypePermission ErrorType = "Permission"

	// ErrorTypeDatabase indicates a database operation failure
	ErrorTypeDatabase ErrorType = "Database"

	// ErrorTypeAPI indicates an external API communication failure
	ErrorTypeAPI ErrorType = "API"

	// ErrorTypeStateConflict indicates an action that conflicts with active
	// session state (game already running, answering twice, moving out of turn)
	ErrorTypeStateConflict ErrorType = "StateConflict"

	// ErrorTypeMedia indicates a media transcode or synthesis failure
	ErrorTypeMedia ErrorType = "Media"

	// ErrorTypeNotFound indicates a resource was not found
	ErrorTypeNotFound ErrorType = "NotFound"

	// ErrorTypeUnexpected indicates an unexpected/unknown error
	ErrorTypeUnexpected ErrorType = "Unexpected"
)

// BotError represents a structured error with type and user-friendly message
type BotError struct {
	Type           ErrorType
	UserMessage    string // Message to send to the user
	InternalError  error  // Original error for logging
	InternalDetail string // Additional detail for logging
}

// Error implements the error interface
func (e *BotError) Error() string {
	if e.InternalError != nil {
		return fmt.Sprintf("%s: %s (internal: %v)", e.Type, e.UserMessage, e.InternalError)
	}
	if e.InternalDetail != "" {
		return fmt.Sprintf("%s: %s (detail: %s)", e.Type, e.UserMessage, e.InternalDetail)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.UserMessage)
}

// Unwrap returns the underlying error
func (e *BotError) Unwrap() error {
	return e.InternalError
}

// NewValidationError creates an error for invalid input data.
// The message is shown to the user as-is, so it should include usage guidance.
func NewValidationError(message string) *BotError {
	return &BotError{
		Type:        ErrorTypeValidation,
		UserMessage: message,
	}
}

// NewUsageError creates a validation error carrying a corrective usage line
func NewUsageError(commandName, correctUsage string) *BotError {
	return &BotError{
		Type:           ErrorTypeValidation,
		UserMessage:    fmt.Sprintf("❌ الاستخدام الصحيح: %s", correctUsage),
		InternalDetail: fmt.Sprintf("command=%s", commandName),
	}
}

// NewPermissionError creates an error for insufficient permissions
func NewPermissionError(requiredRole string) *BotError {
	return &BotError{
		Type:           ErrorTypePermission,
		UserMessage:    "⛔ هذا الأمر متاح للمشرفين فقط.",
		InternalDetail: fmt.Sprintf("required_role=%s", requiredRole),
	}
}

// NewDatabaseError creates an error for database operation failures
func NewDatabaseError(operation string, err error) *BotError {
	return &BotError{
		Type:           ErrorTypeDatabase,
		UserMessage:    "❌ حدث خطأ، حاول مرة أخرى لاحقاً",
		InternalError:  err,
		InternalDetail: fmt.Sprintf("operation=%s", operation),
	}
}

// NewAPIError creates an error for external API communication failures
func NewAPIError(service string, err error) *BotError {
	return &BotError{
		Type:           ErrorTypeAPI,
		UserMessage:    "❌ الخدمة غير متاحة حالياً، حاول مرة أخرى لاحقاً",
		InternalError:  err,
		InternalDetail: fmt.Sprintf("service=%s", service),
	}
}

// NewStateConflictError creates an error for actions that conflict with
// active game, quiz, or menu state. The message names the specific conflict.
func NewStateConflictError(message, detail string) *BotError {
	return &BotError{
		Type:           ErrorTypeStateConflict,
		UserMessage:    message,
		InternalDetail: detail,
	}
}

// NewMediaError creates an error for media transcode or synthesis failures
func NewMediaError(operation string, err error) *BotError {
	return &BotError{
		Type:           ErrorTypeMedia,
		UserMessage:    "❌ فشلت معالجة الوسائط، حاول مرة أخرى",
		InternalError:  err,
		InternalDetail: fmt.Sprintf("operation=%s", operation),
	}
}

// NewNotFoundError creates an error for resources that don't exist
func NewNotFoundError(resourceType, resourceName string) *BotError {
	return &BotError{
		Type:           ErrorTypeNotFound,
		UserMessage:    fmt.Sprintf("❌ %s غير موجود", resourceType),
		InternalDetail: fmt.Sprintf("resource_type=%s, resource_name=%s", resourceType, resourceName),
	}
}

// NewUnexpectedError creates an error for unexpected failures
func NewUnexpectedError(err error) *BotError {
	return &BotError{
		Type:          ErrorTypeUnexpected,
		UserMessage:   "❌ حدث خطأ غير متوقع، حاول مرة أخرى لاحقاً",
		InternalError: err,
	}
}

// IsBotError checks if an error is a BotError
func IsBotError(err error) bool {
	_, ok := err.(*BotError)
	return ok
}

// AsBotError attempts to convert an error to a BotError
func AsBotError(err error) (*BotError, bool) {
	botErr, ok := err.(*BotError)
	return botErr, ok
}

// IsPermission reports whether the error is a permission failure.
// The dispatch loop uses this to pick the lock reaction over the plain
// failure reaction.
func IsPermission(err error) bool {
	if botErr, ok := AsBotError(err); ok {
		return botErr.Type == ErrorTypePermission
	}
	return false
}
