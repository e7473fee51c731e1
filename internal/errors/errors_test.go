package errors

import (
	"fmt"
	"strings"
	"testing"
)

func TestRepoError_Error(t *testing.T) {
	err := &RepoError{
		Code:    ErrNotFound,
		Status:  404,
		Message: "file not found in mirror: index.html",
	}

	expected := "NOT_FOUND: file not found in mirror: index.html"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestNewSyncFailed(t *testing.T) {
	err := NewSyncFailed("clone", "fatal: repository not found")

	if err.Code != ErrSyncFailed {
		t.Errorf("Code = %q, want %q", err.Code, ErrSyncFailed)
	}
	if err.Status != 502 {
		t.Errorf("Status = %d, want 502", err.Status)
	}
	if !strings.Contains(err.Message, "git clone failed") {
		t.Errorf("Message = %q, want it to mention the failed git mode", err.Message)
	}
	if err.Details["mode"] != "clone" {
		t.Errorf("Details[mode] = %v, want %q", err.Details["mode"], "clone")
	}
}

func TestNewNotFound(t *testing.T) {
	err := NewNotFound("docs/index.html")

	if err.Code != ErrNotFound {
		t.Errorf("Code = %q, want %q", err.Code, ErrNotFound)
	}
	if err.Status != 404 {
		t.Errorf("Status = %d, want 404", err.Status)
	}
	if err.Details["path"] != "docs/index.html" {
		t.Errorf("Details[path] = %v, want %q", err.Details["path"], "docs/index.html")
	}
}

func TestNewInvalidPath(t *testing.T) {
	err := NewInvalidPath("file path must not be empty")

	if err.Code != ErrInvalidPath {
		t.Errorf("Code = %q, want %q", err.Code, ErrInvalidPath)
	}
	if err.Status != 400 {
		t.Errorf("Status = %d, want 400", err.Status)
	}
}

func TestNewReadFailed(t *testing.T) {
	err := NewReadFailed("secret.bin", fmt.Errorf("permission denied"))

	if err.Code != ErrReadFailed {
		t.Errorf("Code = %q, want %q", err.Code, ErrReadFailed)
	}
	if err.Status != 500 {
		t.Errorf("Status = %d, want 500", err.Status)
	}
	if err.Details["path"] != "secret.bin" {
		t.Errorf("Details[path] = %v, want %q", err.Details["path"], "secret.bin")
	}
}

func TestNewParseFailed(t *testing.T) {
	err := NewParseFailed(fmt.Errorf("unexpected byte"))

	if err.Code != ErrParseFailed {
		t.Errorf("Code = %q, want %q", err.Code, ErrParseFailed)
	}
	if err.Status != 422 {
		t.Errorf("Status = %d, want 422", err.Status)
	}
}

func TestNewInvalidRequest(t *testing.T) {
	err := NewInvalidRequest("file_path is required")

	if err.Code != ErrInvalidRequest {
		t.Errorf("Code = %q, want %q", err.Code, ErrInvalidRequest)
	}
	if err.Status != 400 {
		t.Errorf("Status = %d, want 400", err.Status)
	}
	if err.Message != "file_path is required" {
		t.Errorf("Message = %q, want %q", err.Message, "file_path is required")
	}
}

func TestNewInternal(t *testing.T) {
	err := NewInternal(fmt.Errorf("boom"))
	if err.Code != ErrInternal || err.Message != "boom" {
		t.Errorf("NewInternal(boom) = %v, want INTERNAL: boom", err)
	}

	err = NewInternal(nil)
	if err.Message != "internal error" {
		t.Errorf("NewInternal(nil) message = %q, want %q", err.Message, "internal error")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code ErrorCode
		want bool
	}{
		{"matching code", NewNotFound("x"), ErrNotFound, true},
		{"different code", NewNotFound("x"), ErrSyncFailed, false},
		{"plain error", fmt.Errorf("plain"), ErrNotFound, false},
		{"nil error", nil, ErrNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is() = %v, want %v", got, tt.want)
			}
		})
	}
}
