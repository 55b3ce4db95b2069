package server

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writePresetsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "presets.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write presets file: %v", err)
	}
	return path
}

func TestLoadPresets(t *testing.T) {
	path := writePresetsFile(t, `
presets:
  - name: contacts
    fields:
      - person
      - person
      - "  company  "
      - ""
  - name: articles
    fields: [title, author]
`)

	presets, err := LoadPresets(path)
	if err != nil {
		t.Fatalf("LoadPresets failed: %v", err)
	}

	if len(presets) != 2 {
		t.Fatalf("got %d presets, want 2", len(presets))
	}
	if want := []string{"person", "company"}; !reflect.DeepEqual(presets[0].Fields, want) {
		t.Errorf("fields = %v, want normalized %v", presets[0].Fields, want)
	}
	if presets[1].Name != "articles" {
		t.Errorf("name = %q", presets[1].Name)
	}
}

func TestLoadPresetsRejectsBadFiles(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unnamed preset", "presets:\n  - fields: [a]\n"},
		{"no usable fields", "presets:\n  - name: empty\n    fields: [\"\", \"  \"]\n"},
		{"not yaml", "{{{{"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writePresetsFile(t, tt.content)
			if _, err := LoadPresets(path); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadPresetsMissingFile(t *testing.T) {
	if _, err := LoadPresets(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
