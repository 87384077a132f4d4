package pkgerror

import (
	"errors"
	"net/http"
	"strings"
	"testing"
)

func TestTypeString(t *testing.T) {
	if got := TypeValidation.String(); got != "ERROR_TYPE_VALIDATION" {
		t.Fatalf("unexpected validation string: %q", got)
	}
	if got := TypeBusiness.String(); got != "ERROR_TYPE_BUSINESS" {
		t.Fatalf("unexpected business string: %q", got)
	}
	if got := TypeServer.String(); got != "ERROR_TYPE_SERVER" {
		t.Fatalf("unexpected server string: %q", got)
	}
	if got := Type(99).String(); got != "ERROR_TYPE_UNKNOWN" {
		t.Fatalf("unexpected unknown type string: %q", got)
	}
}

func TestCodeStatusMapping(t *testing.T) {
	tests := []struct {
		code   Code
		name   string
		status int
	}{
		{CodeInternal, "ERROR_CODE_INTERNAL", http.StatusInternalServerError},
		{CodeInvalidFormat, "ERROR_CODE_INVALID_FORMAT", http.StatusBadRequest},
		{CodeInvalidInput, "ERROR_CODE_INVALID_INPUT", http.StatusUnprocessableEntity},
		{CodeNotFound, "ERROR_CODE_NOT_FOUND", http.StatusNotFound},
		{CodeConflict, "ERROR_CODE_CONFLICT", http.StatusConflict},
		{CodeResourceExhausted, "ERROR_CODE_RESOURCE_EXHAUSTED", http.StatusInsufficientStorage},
		{Code(99), "ERROR_CODE_INTERNAL", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := tt.code.String(); got != tt.name {
			t.Fatalf("Code(%d).String() = %q, want %q", tt.code, got, tt.name)
		}
		e := &Error{code: tt.code}
		if got := e.StatusCode(); got != tt.status {
			t.Fatalf("Code(%d) status = %d, want %d", tt.code, got, tt.status)
		}
	}
}

func TestServerError(t *testing.T) {
	root := errors.New("boom")
	err := NewServer(root)
	gerr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	if !errors.Is(err, root) {
		t.Fatalf("expected wrapped error")
	}
	if got := gerr.Msg(); got != "Internal server error" {
		t.Fatalf("unexpected msg: %q", got)
	}
	if got := gerr.Type(); got != TypeServer {
		t.Fatalf("unexpected type: %v", got)
	}
	if got := gerr.Error(); got != "boom" {
		t.Fatalf("unexpected error string: %q", got)
	}
}

func TestInvalidInputExposesReason(t *testing.T) {
	root := errors.New("malformed record at bytes [13, 24): missing ';' separator")
	gerr := NewInvalidInput(root).(*Error)

	if got := gerr.Msg(); got != root.Error() {
		t.Fatalf("unexpected msg: %q", got)
	}
	if !errors.Is(gerr, root) {
		t.Fatalf("expected invalid input to wrap error")
	}
	if got := gerr.StatusCode(); got != http.StatusUnprocessableEntity {
		t.Fatalf("unexpected status: %d", got)
	}

	if got := NewInvalidInput(nil).(*Error).Msg(); got != "validation error" {
		t.Fatalf("unexpected fallback msg: %q", got)
	}
}

func TestResourceExhausted(t *testing.T) {
	root := errors.New("too many stations")
	gerr := NewResourceExhausted(root).(*Error)

	if gerr.Code() != CodeResourceExhausted {
		t.Fatalf("unexpected code: %v", gerr.Code())
	}
	if !errors.Is(gerr, root) {
		t.Fatalf("expected wrapped error")
	}
}

func TestErrorFallbackMessages(t *testing.T) {
	validation := new(nil, "", TypeValidation, CodeInternal).(*Error)
	if got := validation.Error(); got != "Validation violation" {
		t.Fatalf("unexpected validation fallback: %q", got)
	}

	business := new(nil, "", TypeBusiness, CodeInternal).(*Error)
	if got := business.Error(); got != "Logical business not meet with requirement" {
		t.Fatalf("unexpected business fallback: %q", got)
	}

	server := new(nil, "", TypeServer, CodeInternal).(*Error)
	if got := server.Error(); got != "Internal error" {
		t.Fatalf("unexpected server fallback: %q", got)
	}
}

func TestErrorStringIncludesDetails(t *testing.T) {
	err := NewBusiness("job is still running", CodeConflict).(*Error)
	str := err.String()
	if !strings.Contains(str, "ERROR_TYPE_BUSINESS") {
		t.Fatalf("expected error type in string: %q", str)
	}
	if !strings.Contains(str, "ERROR_CODE_CONFLICT") {
		t.Fatalf("expected error code in string: %q", str)
	}
	if !strings.Contains(str, "job is still running") {
		t.Fatalf("expected message in string: %q", str)
	}
}
