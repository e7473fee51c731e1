package errors

import "fmt"

// ErrorCode represents a repoview error code.
type ErrorCode string

const (
	ErrSyncFailed     ErrorCode = "SYNC_FAILED"     // 502
	ErrNotFound       ErrorCode = "NOT_FOUND"       // 404
	ErrInvalidPath    ErrorCode = "INVALID_PATH"    // 400
	ErrReadFailed     ErrorCode = "READ_FAILED"     // 500
	ErrParseFailed    ErrorCode = "PARSE_FAILED"    // 422
	ErrInvalidRequest ErrorCode = "INVALID_REQUEST" // 400
	ErrInternal       ErrorCode = "INTERNAL"        // 500
)

// RepoError represents a structured error with code, status, and details.
type RepoError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *RepoError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewSyncFailed creates a 502 error for a failed clone or pull.
// gitOutput carries the combined output of the failed git command.
func NewSyncFailed(mode, gitOutput string) *RepoError {
	return &RepoError{
		Code:    ErrSyncFailed,
		Status:  502,
		Message: fmt.Sprintf("git %s failed: %s", mode, gitOutput),
		Details: map[string]any{"mode": mode},
	}
}

// NewNotFound creates a 404 error for a file absent from the mirror.
func NewNotFound(path string) *RepoError {
	return &RepoError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("file not found in mirror: %s", path),
		Details: map[string]any{"path": path},
	}
}

// NewInvalidPath creates a 400 error for an empty or escaping path.
func NewInvalidPath(msg string) *RepoError {
	return &RepoError{
		Code:    ErrInvalidPath,
		Status:  400,
		Message: msg,
	}
}

// NewReadFailed creates a 500 error for a non-not-found read failure.
func NewReadFailed(path string, err error) *RepoError {
	return &RepoError{
		Code:    ErrReadFailed,
		Status:  500,
		Message: fmt.Sprintf("failed to read %s: %v", path, err),
		Details: map[string]any{"path": path},
	}
}

// NewParseFailed creates a 422 error for markup that cannot be tokenized.
func NewParseFailed(err error) *RepoError {
	return &RepoError{
		Code:    ErrParseFailed,
		Status:  422,
		Message: fmt.Sprintf("failed to tokenize markup: %v", err),
	}
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *RepoError {
	return &RepoError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *RepoError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &RepoError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is a RepoError with the given code.
func Is(err error, code ErrorCode) bool {
	if rErr, ok := err.(*RepoError); ok {
		return rErr.Code == code
	}
	return false
}
