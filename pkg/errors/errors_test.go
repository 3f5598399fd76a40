package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeNotFound, "resource not found")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Code != ErrCodeNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeNotFound, err.Code)
	}
	if err.Message != "resource not found" {
		t.Errorf("expected message 'resource not found', got %s", err.Message)
	}
	if err.Cause != nil {
		t.Errorf("expected nil cause, got %v", err.Cause)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeInternal, "operation failed", cause)

	if err.Code != ErrCodeInternal {
		t.Errorf("expected code %s, got %s", ErrCodeInternal, err.Code)
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected cause to be wrapped")
	}
}

func TestWrapWithContext(t *testing.T) {
	cause := errors.New("timeout")
	ctx := map[string]any{
		"command": "mount",
		"device":  "sdc1",
	}

	err := WrapWithContext(ErrCodeTimeout, "mount timed out", cause, ctx)

	if err.Code != ErrCodeTimeout {
		t.Errorf("expected code %s, got %s", ErrCodeTimeout, err.Code)
	}
	if err.Context == nil {
		t.Fatal("expected context to be set")
	}
	if err.Context["command"] != "mount" {
		t.Errorf("expected command to be mount")
	}
}

func TestError(t *testing.T) {
	tests := []struct {
		name     string
		err      *StructuredError
		expected string
	}{
		{
			name:     "error without cause",
			err:      New(ErrCodeNotFound, "not found"),
			expected: "[NOT_FOUND] not found",
		},
		{
			name:     "error with cause",
			err:      Wrap(ErrCodeInternal, "failed", errors.New("root cause")),
			expected: "[INTERNAL] failed: root cause",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(ErrCodeInternal, "wrapped", cause)

	unwrapped := err.Unwrap()
	if !errors.Is(unwrapped, cause) {
		t.Errorf("expected unwrapped error to be original cause")
	}

	if !errors.Is(err, cause) {
		t.Errorf("errors.Is should work with Unwrap")
	}
}

func TestErrorCodes(t *testing.T) {
	codes := []ErrorCode{
		ErrCodeNotFound,
		ErrCodeUnauthorized,
		ErrCodeTimeout,
		ErrCodeInternal,
		ErrCodeInvalidRequest,
		ErrCodeIO,
		ErrCodeUnavailable,
	}

	for _, code := range codes {
		if string(code) == "" {
			t.Errorf("error code should not be empty: %v", code)
		}
	}
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"structured", New(ErrCodeIO, "mkdir failed"), ErrCodeIO},
		{"wrapped structured", fmt.Errorf("outer: %w", New(ErrCodeUnauthorized, "denied")), ErrCodeUnauthorized},
		{"plain", errors.New("boom"), ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.want {
				t.Errorf("CodeOf() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestAttr(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		if a := Attr(nil); !a.Equal(slog.Attr{}) {
			t.Errorf("expected empty attr, got %v", a)
		}
	})

	t.Run("structured", func(t *testing.T) {
		err := WrapWithContext(ErrCodeIO, "failed to create mount point", errors.New("read-only"),
			map[string]any{"path": "/mnt/sdc1", "device": "sdc1"})
		a := Attr(err)
		if a.Key != "error" {
			t.Fatalf("expected key error, got %s", a.Key)
		}
		got := map[string]string{}
		var order []string
		for _, ga := range a.Value.Group() {
			got[ga.Key] = ga.Value.String()
			order = append(order, ga.Key)
		}
		if got["code"] != string(ErrCodeIO) {
			t.Errorf("expected code %s, got %q", ErrCodeIO, got["code"])
		}
		if got["device"] != "sdc1" || got["path"] != "/mnt/sdc1" {
			t.Errorf("context missing from attr: %v", got)
		}
		want := []string{"message", "code", "device", "path"}
		if fmt.Sprint(order) != fmt.Sprint(want) {
			t.Errorf("attr order = %v, want %v", order, want)
		}
	})

	t.Run("plain", func(t *testing.T) {
		group := Attr(errors.New("boom")).Value.Group()
		if len(group) != 1 || group[0].Value.String() != "boom" {
			t.Errorf("unexpected attrs: %v", group)
		}
	})
}
