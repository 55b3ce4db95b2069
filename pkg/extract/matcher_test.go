package extract

import (
	"reflect"
	"testing"
)

func TestMatcherFind(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "single capitalized word",
			text: "visited Paris yesterday",
			want: []string{"Paris"},
		},
		{
			name: "multi-word sequence",
			text: "met with Jane Smith at the office",
			want: []string{"Jane Smith"},
		},
		{
			name: "multiple candidates in order",
			text: "Acme Corp hired Jane Smith in Berlin",
			want: []string{"Acme Corp", "Jane Smith", "Berlin"},
		},
		{
			name: "repeated word starts a new candidate",
			text: "Paris Paris London",
			want: []string{"Paris", "Paris London"},
		},
		{
			name: "duplicates across sentences",
			text: "Paris is large. Paris is old. London too.",
			want: []string{"Paris", "Paris", "London"},
		},
		{
			name: "all caps words excluded",
			text: "NASA launched Artemis",
			want: []string{"Artemis"},
		},
		{
			name: "lowercase only",
			text: "nothing capitalized here",
			want: nil,
		},
		{
			name: "empty text",
			text: "",
			want: nil,
		},
	}

	m := NewMatcher()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.Find(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Find(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}
