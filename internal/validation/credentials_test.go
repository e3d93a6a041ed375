package validation

import (
	"testing"
)

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"reader@example.com", true},
		{"a@b.co", true},
		{"no-at-sign.com", false},
		{"spaces in@example.com", false},
		{"missing@tld", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsValidEmail(tt.email); got != tt.want {
			t.Errorf("IsValidEmail(%q) = %v, want %v", tt.email, got, tt.want)
		}
	}
}

func TestValidatePasswordWeak(t *testing.T) {
	result := ValidatePassword("abc")
	if result.IsValid {
		t.Fatal("weak password accepted")
	}

	// "abc" satisfies only the lowercase rule; every other rule must report.
	want := []string{
		"Password must be at least 8 characters long.",
		"Password must include at least one number.",
		"Password must include at least one uppercase letter.",
		"Password must include at least one special character.",
	}
	if len(result.Errors) != len(want) {
		t.Fatalf("got %d errors, want %d: %v", len(result.Errors), len(want), result.Errors)
	}
	for i, msg := range want {
		if result.Errors[i] != msg {
			t.Errorf("error %d = %q, want %q", i, result.Errors[i], msg)
		}
	}
}

func TestValidatePasswordAllRulesFail(t *testing.T) {
	// Digits only: misses length, uppercase, lowercase, and special.
	result := ValidatePassword("1234")
	if len(result.Errors) != 4 {
		t.Errorf("got %d errors, want 4: %v", len(result.Errors), result.Errors)
	}

	// Empty password misses every rule.
	result = ValidatePassword("")
	if len(result.Errors) != 5 {
		t.Errorf("empty password: got %d errors, want 5: %v", len(result.Errors), result.Errors)
	}
}

func TestValidatePasswordStrong(t *testing.T) {
	result := ValidatePassword("Abcdef1!")
	if !result.IsValid {
		t.Errorf("strong password rejected: %v", result.Errors)
	}
	if len(result.Errors) != 0 {
		t.Errorf("expected no errors, got %v", result.Errors)
	}
}

func TestValidatorStructRules(t *testing.T) {
	type createPost struct {
		Title   string `json:"title" validate:"required"`
		Content string `json:"content" validate:"required"`
		UserID  int64  `json:"user_id" validate:"required,gt=0"`
		BookID  int64  `json:"book_id" validate:"required,gt=0"`
	}

	v := New()

	if err := v.Validate(createPost{Title: "t", Content: "c", UserID: 1, BookID: 2}); err != nil {
		t.Errorf("valid struct rejected: %v", err)
	}

	err := v.Validate(createPost{Title: "t"})
	if err == nil {
		t.Fatal("expected validation error for missing fields")
	}
}
