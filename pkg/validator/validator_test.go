package validator

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
)

type sampleForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8,max=72"`
	ClubSlug string `validate:"required"`
	Surface  string `validate:"omitempty,oneof=saibro rapida"`
}

func TestParseErrorMapsFieldsToJSONNames(t *testing.T) {
	v := validator.New()
	err := v.Struct(sampleForm{Email: "not-an-email", Password: "short", Surface: "grass"})
	if err == nil {
		t.Fatal("expected validation errors")
	}

	fields := ParseError(err)

	tests := []struct {
		key  string
		want string
	}{
		{"email", "Enter a valid email address"},
		{"password", "Must be at least 8 characters"},
		{"club_slug", "This field is required"},
		{"surface", "Must be one of: saibro, rapida"},
	}
	for _, tt := range tests {
		if got := fields[tt.key]; got != tt.want {
			t.Errorf("fields[%q] = %q, want %q", tt.key, got, tt.want)
		}
	}
	if _, exists := fields["ClubSlug"]; exists {
		t.Error("keys must be snake_cased, found Go field name instead")
	}
}

func TestParseErrorNonValidatorError(t *testing.T) {
	fields := ParseError(errors.New("unexpected EOF"))
	if fields["error"] != "unexpected EOF" {
		t.Errorf("fields[\"error\"] = %q, want the raw message", fields["error"])
	}
}

func TestParseErrorNil(t *testing.T) {
	if fields := ParseError(nil); len(fields) != 0 {
		t.Errorf("expected empty map for nil error, got %v", fields)
	}
}
