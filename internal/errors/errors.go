// Package errors provides standardized error types for the vhostcfg engine.
//
// Every failure the engine can produce falls into one of a small set of
// categories: input validation, external-tool failures that triggered a
// rollback, not-found lookups, and partial successes where the primary
// mutation committed but a follow-up step failed. ConfigError carries the
// category so callers can branch on it without string matching.
//
// # Usage
//
//	// Remove target absent from every file
//	return errors.NotFound("example.com")
//
//	// Input rejected before any file I/O
//	return errors.Validation("port must be between 1024 and 65535")
//
//	// configtest failed and the backup was restored
//	return errors.SyntaxCheck("api.example.com", toolOutput, err)
//
// Check with errors.Is against the sentinels, or errors.As to get at the
// code and captured tool output:
//
//	var cfgErr *errors.ConfigError
//	if errors.As(err, &cfgErr) && cfgErr.Code == errors.ErrCodeSyntax {
//	    fmt.Println(cfgErr.Output)
//	}
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes errors for programmatic handling.
type ErrorCode string

// Error codes for different error categories.
const (
	ErrCodeNotFound      ErrorCode = "NOT_FOUND"      // Domain not present in any conf file
	ErrCodeAlreadyExists ErrorCode = "ALREADY_EXISTS" // Domain already has a block
	ErrCodeValidation    ErrorCode = "VALIDATION"     // Input validation failed
	ErrCodeSyntax        ErrorCode = "SYNTAX"         // configtest failed, changes rolled back
	ErrCodeReload        ErrorCode = "RELOAD"         // Service reload failed
	ErrCodePermission    ErrorCode = "PERMISSION"     // Privileged file operation failed
	ErrCodeSSL           ErrorCode = "SSL"            // Certificate tooling error
	ErrCodePartial       ErrorCode = "PARTIAL"        // Primary mutation committed, follow-up failed
	ErrCodeConfig        ErrorCode = "CONFIG"         // Application configuration error
	ErrCodeInternal      ErrorCode = "INTERNAL"       // Internal/unexpected error
)

// ConfigError represents a structured error with context about the operation.
type ConfigError struct {
	Code    ErrorCode // Error category
	Message string    // Human-readable message
	Domain  string    // Domain name (if applicable)
	Output  string    // Captured external-tool output (if applicable)
	Err     error     // Underlying error (if any)
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	msg := e.Message
	if e.Domain != "" {
		msg = fmt.Sprintf("%s: %s", e.Domain, msg)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.Output != "" {
		msg = fmt.Sprintf("%s\n%s", msg, e.Output)
	}
	return msg
}

// Unwrap returns the underlying error for error chain traversal.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Is reports whether target matches this error.
// Comparison is based on error code.
func (e *ConfigError) Is(target error) bool {
	t, ok := target.(*ConfigError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Sentinel errors for common error scenarios.
// Use these with errors.Is() for error checking.
var (
	// ErrDomainNotFound indicates the requested domain has no block in any file.
	ErrDomainNotFound = &ConfigError{Code: ErrCodeNotFound, Message: "domain not found"}

	// ErrDomainExists indicates a block for the domain already exists.
	ErrDomainExists = &ConfigError{Code: ErrCodeAlreadyExists, Message: "domain already exists"}

	// ErrInvalidDomain indicates the domain name is not valid.
	ErrInvalidDomain = &ConfigError{Code: ErrCodeValidation, Message: "invalid domain"}

	// ErrInvalidPort indicates the routing target port is out of range.
	ErrInvalidPort = &ConfigError{Code: ErrCodeValidation, Message: "invalid port"}

	// ErrInvalidPath indicates a content root path is unsafe or not absolute.
	ErrInvalidPath = &ConfigError{Code: ErrCodeValidation, Message: "invalid path"}

	// ErrSyntaxCheck indicates configtest rejected the staged file.
	ErrSyntaxCheck = &ConfigError{Code: ErrCodeSyntax, Message: "syntax check failed"}

	// ErrReload indicates the service reload command failed.
	ErrReload = &ConfigError{Code: ErrCodeReload, Message: "reload failed"}

	// ErrCertbotNotInstalled indicates certbot is not on PATH.
	ErrCertbotNotInstalled = &ConfigError{Code: ErrCodeSSL, Message: "certbot not installed"}
)

// NotFound creates an error for a domain that has no block in any file.
func NotFound(domain string) error {
	return &ConfigError{
		Code:    ErrCodeNotFound,
		Message: "domain not found",
		Domain:  domain,
	}
}

// AlreadyExists creates an error for a domain that already has a block.
func AlreadyExists(domain string) error {
	return &ConfigError{
		Code:    ErrCodeAlreadyExists,
		Message: "domain already exists",
		Domain:  domain,
	}
}

// Validation creates a validation error with a custom message.
func Validation(msg string) error {
	return &ConfigError{
		Code:    ErrCodeValidation,
		Message: msg,
	}
}

// SyntaxCheck creates an error for a failed configtest, keeping the tool's
// captured output for operator diagnosis.
func SyntaxCheck(domain, output string, err error) error {
	return &ConfigError{
		Code:    ErrCodeSyntax,
		Message: "syntax check failed",
		Domain:  domain,
		Output:  output,
		Err:     err,
	}
}

// Reload creates an error for a failed service reload.
func Reload(output string, err error) error {
	return &ConfigError{
		Code:    ErrCodeReload,
		Message: "reload failed",
		Output:  output,
		Err:     err,
	}
}

// Partial creates an error for a committed mutation whose follow-up step
// failed. The caller must treat the primary mutation as applied.
func Partial(domain, msg string, err error) error {
	return &ConfigError{
		Code:    ErrCodePartial,
		Message: msg,
		Domain:  domain,
		Err:     err,
	}
}

// Wrap creates an error with the specified code, message, and underlying error.
func Wrap(code ErrorCode, msg string, err error) error {
	return &ConfigError{
		Code:    code,
		Message: msg,
		Err:     err,
	}
}

// Is reports whether any error in err's chain matches target.
// This is a re-export of errors.Is for convenience.
var Is = errors.Is

// As finds the first error in err's chain that matches target.
// This is a re-export of errors.As for convenience.
var As = errors.As
