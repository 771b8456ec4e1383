package errors

import (
	"errors"
	"fmt"
)

// ResourceUnavailableError represents a completed request to the Text United API
// that did not return HTTP 200
type ResourceUnavailableError struct {
	Message    string // Response body text
	URL        string
	StatusCode int
}

func (e *ResourceUnavailableError) Error() string {
	if e.URL != "" {
		return fmt.Sprintf("%s at %s (HTTP status: %d)", e.Message, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s (HTTP status: %d)", e.Message, e.StatusCode)
}

// UnauthorizedError is the HTTP 401 specialization of ResourceUnavailableError.
// errors.As with a *ResourceUnavailableError target also matches it.
type UnauthorizedError struct {
	*ResourceUnavailableError
}

// Unwrap exposes the underlying ResourceUnavailableError
func (e *UnauthorizedError) Unwrap() error {
	return e.ResourceUnavailableError
}

// NotFoundError represents an error when an entity is not found
type NotFoundError struct {
	Entity  string
	Context string // Additional context like "with id 42"
}

func (e *NotFoundError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s not found %s", e.Entity, e.Context)
	}
	return fmt.Sprintf("%s not found", e.Entity)
}

// Is enables errors.Is() comparison for NotFoundError
func (e *NotFoundError) Is(target error) bool {
	t, ok := target.(*NotFoundError)
	if !ok {
		return false
	}
	return e.Entity == t.Entity
}

// ContractViolationError is raised synchronously for malformed caller input,
// never from network activity
type ContractViolationError struct {
	Field   string
	Message string
}

func (e *ContractViolationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("contract violation: %s - %s", e.Field, e.Message)
	}
	return fmt.Sprintf("contract violation: %s", e.Message)
}

// UnsupportedLanguageError signals a language code or remote id with no registered mapping
type UnsupportedLanguageError struct {
	Code string
	ID   int
}

func (e *UnsupportedLanguageError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("language with code %q is not supported", e.Code)
	}
	return fmt.Sprintf("language with id %d is not implemented", e.ID)
}

// MalformedPayloadError represents a response payload missing a required field
// or carrying a value of the wrong shape
type MalformedPayloadError struct {
	Entity  string
	Field   string
	Message string
}

func (e *MalformedPayloadError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("malformed %s payload: %s - %s", e.Entity, e.Field, e.Message)
	}
	return fmt.Sprintf("malformed %s payload: %s", e.Entity, e.Message)
}

// ConfigurationError represents configuration-related errors
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

// Entity Not Found Errors
var (
	ErrProjectNotFound = &NotFoundError{Entity: "project"}
	ErrAccountNotFound = &NotFoundError{Entity: "account"}
	ErrFileNotFound    = &NotFoundError{Entity: "file"}
)

// Configuration Errors
var (
	ErrCredentialsMissing = &ConfigurationError{Message: "textunited configuration missing: TEXTUNITED_COMPANY_ID or TEXTUNITED_API_KEY"}
)

// Helper Functions

// IsResourceUnavailable checks if an error is a ResourceUnavailableError (401 included)
func IsResourceUnavailable(err error) bool {
	var unavailableErr *ResourceUnavailableError
	return errors.As(err, &unavailableErr)
}

// IsUnauthorized checks if an error is an UnauthorizedError
func IsUnauthorized(err error) bool {
	var unauthorizedErr *UnauthorizedError
	return errors.As(err, &unauthorizedErr)
}

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// IsContractViolation checks if an error is a ContractViolationError
func IsContractViolation(err error) bool {
	var contractErr *ContractViolationError
	return errors.As(err, &contractErr)
}

// IsUnsupportedLanguage checks if an error is an UnsupportedLanguageError
func IsUnsupportedLanguage(err error) bool {
	var languageErr *UnsupportedLanguageError
	return errors.As(err, &languageErr)
}

// IsMalformedPayload checks if an error is a MalformedPayloadError
func IsMalformedPayload(err error) bool {
	var payloadErr *MalformedPayloadError
	return errors.As(err, &payloadErr)
}

// IsConfiguration checks if an error is a ConfigurationError
func IsConfiguration(err error) bool {
	var configErr *ConfigurationError
	return errors.As(err, &configErr)
}

// StatusCode returns the HTTP status carried by err, or 0 when err is not a
// ResourceUnavailableError
func StatusCode(err error) int {
	var unavailableErr *ResourceUnavailableError
	if errors.As(err, &unavailableErr) {
		return unavailableErr.StatusCode
	}
	return 0
}

// NewResourceUnavailableError creates a new ResourceUnavailableError
func NewResourceUnavailableError(message, url string, statusCode int) error {
	return &ResourceUnavailableError{Message: message, URL: url, StatusCode: statusCode}
}

// NewUnauthorizedError creates a new UnauthorizedError
func NewUnauthorizedError(message, url string, statusCode int) error {
	return &UnauthorizedError{
		ResourceUnavailableError: &ResourceUnavailableError{Message: message, URL: url, StatusCode: statusCode},
	}
}

// NewNotFoundError creates a new NotFoundError for a custom entity
func NewNotFoundError(entity, context string) error {
	return &NotFoundError{Entity: entity, Context: context}
}

// NewProjectNotFoundError creates a project NotFoundError matching ErrProjectNotFound
func NewProjectNotFoundError(projectID int) error {
	return &NotFoundError{Entity: ErrProjectNotFound.Entity, Context: fmt.Sprintf("with id %d", projectID)}
}

// NewAccountNotFoundError creates an account NotFoundError matching ErrAccountNotFound
func NewAccountNotFoundError(context string) error {
	return &NotFoundError{Entity: ErrAccountNotFound.Entity, Context: context}
}

// NewContractViolationError creates a new ContractViolationError
func NewContractViolationError(field, message string) error {
	return &ContractViolationError{Field: field, Message: message}
}

// NewUnsupportedLanguageCodeError creates an UnsupportedLanguageError for a code lookup
func NewUnsupportedLanguageCodeError(code string) error {
	return &UnsupportedLanguageError{Code: code}
}

// NewUnsupportedLanguageIDError creates an UnsupportedLanguageError for an id lookup
func NewUnsupportedLanguageIDError(id int) error {
	return &UnsupportedLanguageError{ID: id}
}

// NewMalformedPayloadError creates a new MalformedPayloadError
func NewMalformedPayloadError(entity, field, message string) error {
	return &MalformedPayloadError{Entity: entity, Field: field, Message: message}
}

// NewConfigurationError creates a new ConfigurationError
func NewConfigurationError(message string) error {
	return &ConfigurationError{Message: message}
}
