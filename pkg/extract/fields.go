package extract

import (
	"os"
	"strings"
)

// NormalizeFields trims each field name, drops blanks, and removes
// duplicates while preserving first-occurrence order.
func NormalizeFields(fields []string) []string {
	seen := make(map[string]struct{}, len(fields))
	out := make([]string, 0, len(fields))

	for _, f := range fields {
		cleaned := strings.TrimSpace(f)
		if cleaned == "" {
			continue
		}
		if _, ok := seen[cleaned]; ok {
			continue
		}
		seen[cleaned] = struct{}{}
		out = append(out, cleaned)
	}

	return out
}

// credentialEnvVars are the recognized API key variables, in priority order.
var credentialEnvVars = []string{"GEMEXTRACT_API_KEY", "GEMINI_API_KEY"}

// CredentialFromEnv resolves an API credential from the environment.
// Intended for the composition root; the engines themselves only see the
// credential threaded in via Config.
func CredentialFromEnv() string {
	for _, key := range credentialEnvVars {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			return v
		}
	}
	return ""
}
