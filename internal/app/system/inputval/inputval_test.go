package inputval

import "testing"

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"user@example.com", true},
		{"user.name@example.com", true},
		{"user+tag@example.com", true},
		{"user@subdomain.example.com", true},
		{"  user@example.com  ", true},

		{"", false},
		{"   ", false},
		{"user", false},
		{"user@", false},
		{"@example.com", false},
		{"User Name <user@example.com>", false},
		{"user @example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			got := IsValidEmail(tt.email)
			if got != tt.want {
				t.Errorf("IsValidEmail(%q) = %v, want %v", tt.email, got, tt.want)
			}
		})
	}
}

type signup struct {
	FirstName string `json:"first_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Area      string `json:"main_area" validate:"omitempty,oneof=sociales ciencias salud humanidades"`
}

func TestStruct_UsesJSONNames(t *testing.T) {
	errs := Struct(signup{Email: "nope", Area: "deportes"})
	if errs == nil {
		t.Fatal("expected validation errors")
	}
	for _, field := range []string{"first_name", "email", "main_area"} {
		if errs[field] == "" {
			t.Errorf("missing message for %q in %v", field, errs)
		}
	}
	if _, ok := errs["FirstName"]; ok {
		t.Error("Go field name leaked into error map")
	}
}

func TestStruct_Valid(t *testing.T) {
	if errs := Struct(signup{FirstName: "Ana", Email: "ana@example.com", Area: "salud"}); errs != nil {
		t.Errorf("unexpected errors: %v", errs)
	}
}
