package validation

import "testing"

func TestStringValidation(t *testing.T) {
	tests := []struct {
		name string
		v    *StringValidation
		want bool
	}{
		{"required empty", NewStringValidation(""), false},
		{"optional empty", NewStringValidation("").WithRequired(false), true},
		{"too short", NewStringValidation("a").WithMinLength(2), false},
		{"too long", NewStringValidation("abcdef").WithMaxLength(3), false},
		{"valid email", NewStringValidation("user@college.edu").WithPattern(CompiledPatterns.Email), true},
		{"invalid email", NewStringValidation("not-an-email").WithPattern(CompiledPatterns.Email), false},
		{"valid roll no", NewStringValidation("NEET/2024-001").WithPattern(CompiledPatterns.RollNo), true},
		{"roll no leading slash", NewStringValidation("/R100").WithPattern(CompiledPatterns.RollNo), false},
		{"valid phone", NewStringValidation("+919812345678").WithPattern(CompiledPatterns.Phone), true},
		{"invalid phone", NewStringValidation("12ab").WithPattern(CompiledPatterns.Phone), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Validate(); got != tt.want {
				t.Fatalf("Validate() = %v, want %v", got, tt.want)
			}
		})
	}
}
