package errors

import (
	"fmt"
	"strings"
	"testing"
)

func TestConfigError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ConfigError
		want string
	}{
		{
			name: "message only",
			err:  &ConfigError{Code: ErrCodeValidation, Message: "invalid port"},
			want: "invalid port",
		},
		{
			name: "with domain",
			err:  &ConfigError{Code: ErrCodeNotFound, Message: "domain not found", Domain: "example.com"},
			want: "example.com: domain not found",
		},
		{
			name: "with underlying error",
			err:  &ConfigError{Code: ErrCodeReload, Message: "reload failed", Err: fmt.Errorf("exit status 1")},
			want: "reload failed: exit status 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConfigError_IncludesToolOutput(t *testing.T) {
	err := SyntaxCheck("api.example.com", "AH00526: Syntax error on line 12", fmt.Errorf("exit status 1"))
	if !strings.Contains(err.Error(), "AH00526") {
		t.Errorf("expected tool output in message, got %q", err.Error())
	}
}

func TestSentinelMatching(t *testing.T) {
	t.Run("NotFound matches sentinel", func(t *testing.T) {
		err := NotFound("example.com")
		if !Is(err, ErrDomainNotFound) {
			t.Error("expected NotFound to match ErrDomainNotFound")
		}
	})

	t.Run("Validation does not match NotFound", func(t *testing.T) {
		err := Validation("bad input")
		if Is(err, ErrDomainNotFound) {
			t.Error("validation error should not match ErrDomainNotFound")
		}
	})

	t.Run("SyntaxCheck matches sentinel", func(t *testing.T) {
		err := SyntaxCheck("example.com", "output", nil)
		if !Is(err, ErrSyntaxCheck) {
			t.Error("expected SyntaxCheck to match ErrSyntaxCheck")
		}
	})
}

func TestConfigError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("exec failed")
	err := Wrap(ErrCodePermission, "copy failed", inner)

	var cfgErr *ConfigError
	if !As(err, &cfgErr) {
		t.Fatal("expected ConfigError")
	}
	if cfgErr.Unwrap() != inner {
		t.Error("Unwrap should return the inner error")
	}
}

func TestPartial(t *testing.T) {
	err := Partial("new.example.com", "certificate issuance failed", fmt.Errorf("certbot exit 1"))

	var cfgErr *ConfigError
	if !As(err, &cfgErr) {
		t.Fatal("expected ConfigError")
	}
	if cfgErr.Code != ErrCodePartial {
		t.Errorf("expected PARTIAL code, got %s", cfgErr.Code)
	}
	if cfgErr.Domain != "new.example.com" {
		t.Errorf("expected domain to be set, got %q", cfgErr.Domain)
	}
}
