package extract

import (
	"reflect"
	"testing"
)

func TestNormalizeFields(t *testing.T) {
	tests := []struct {
		name   string
		fields []string
		want   []string
	}{
		{
			name:   "trims whitespace",
			fields: []string{"  company ", "person"},
			want:   []string{"company", "person"},
		},
		{
			name:   "drops blanks",
			fields: []string{"company", "", "   ", "person"},
			want:   []string{"company", "person"},
		},
		{
			name:   "dedupes preserving first occurrence",
			fields: []string{"b", "a", "b", "c", "a"},
			want:   []string{"b", "a", "c"},
		},
		{
			name:   "case variants are distinct fields",
			fields: []string{"Company", "company"},
			want:   []string{"Company", "company"},
		},
		{
			name:   "all blank",
			fields: []string{"", " "},
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeFields(tt.fields)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizeFields(%v) = %v, want %v", tt.fields, got, tt.want)
			}
		})
	}
}

func TestCredentialFromEnvPriority(t *testing.T) {
	t.Setenv("GEMEXTRACT_API_KEY", "primary")
	t.Setenv("GEMINI_API_KEY", "secondary")

	if got := CredentialFromEnv(); got != "primary" {
		t.Errorf("CredentialFromEnv() = %q, want %q", got, "primary")
	}

	t.Setenv("GEMEXTRACT_API_KEY", "")
	if got := CredentialFromEnv(); got != "secondary" {
		t.Errorf("CredentialFromEnv() = %q, want %q", got, "secondary")
	}

	t.Setenv("GEMINI_API_KEY", "  ")
	if got := CredentialFromEnv(); got != "" {
		t.Errorf("CredentialFromEnv() = %q, want empty", got)
	}
}
