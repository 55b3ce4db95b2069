package extract

import (
	"context"
	"reflect"
	"testing"
)

func TestFallbackPositionalAssignment(t *testing.T) {
	f := NewFallback()

	docs := []Document{
		{Name: "report.txt", Text: "Acme Corp hired Jane Smith in Berlin"},
	}
	fields := []string{"company", "person"}

	result, err := f.Extract(context.Background(), docs, fields)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	want := Record{
		"document": "report.txt",
		"company":  "Acme Corp",
		"person":   "Jane Smith",
	}
	if !reflect.DeepEqual(result.Records[0], want) {
		t.Errorf("record = %v, want %v", result.Records[0], want)
	}
	if result.Engine != EngineFallback {
		t.Errorf("engine = %q, want %q", result.Engine, EngineFallback)
	}
}

func TestFallbackFieldsBeyondMatchesAreEmpty(t *testing.T) {
	f := NewFallback()

	docs := []Document{{Name: "a.txt", Text: "only Paris here"}}
	fields := []string{"city", "country", "person"}

	result, err := f.Extract(context.Background(), docs, fields)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	row := result.Records[0]
	if row["city"] != "Paris" {
		t.Errorf("city = %q, want %q", row["city"], "Paris")
	}
	if row["country"] != "" || row["person"] != "" {
		t.Errorf("unfilled fields should be empty, got country=%q person=%q", row["country"], row["person"])
	}
}

func TestFallbackDuplicateMatchesCollapse(t *testing.T) {
	f := NewFallback()

	docs := []Document{{Name: "a.txt", Text: "Paris Paris London"}}
	fields := []string{"city"}

	result, err := f.Extract(context.Background(), docs, fields)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if got := result.Records[0]["city"]; got != "Paris" {
		t.Errorf("city = %q, want %q", got, "Paris")
	}
}

func TestFallbackDeterministic(t *testing.T) {
	f := NewFallback()

	docs := []Document{
		{Name: "a.txt", Text: "Jane Smith met John Doe at Acme Corp"},
		{Name: "b.txt", Text: ""},
	}
	fields := []string{"one", "two", "three"}

	first, err := f.Extract(context.Background(), docs, fields)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	for i := 0; i < 10; i++ {
		again, err := f.Extract(context.Background(), docs, fields)
		if err != nil {
			t.Fatalf("Extract failed: %v", err)
		}
		if !reflect.DeepEqual(again.Records, first.Records) {
			t.Fatalf("run %d differs: %v vs %v", i, again.Records, first.Records)
		}
	}
}

func TestFallbackOneRecordPerDocumentInOrder(t *testing.T) {
	f := NewFallback()

	docs := []Document{
		{Name: "first.txt", Text: "Alpha"},
		{Name: "", Text: "Beta"},
		{Name: "third.txt", Text: ""},
	}
	fields := []string{"value"}

	result, err := f.Extract(context.Background(), docs, fields)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if len(result.Records) != len(docs) {
		t.Fatalf("got %d records for %d documents", len(result.Records), len(docs))
	}

	wantNames := []string{"first.txt", DefaultDocumentName, "third.txt"}
	for i, rec := range result.Records {
		if rec["document"] != wantNames[i] {
			t.Errorf("record %d document = %q, want %q", i, rec["document"], wantNames[i])
		}
		if _, ok := rec["value"]; !ok {
			t.Errorf("record %d missing field key", i)
		}
	}

	if len(result.Logs) == 0 {
		t.Error("logs should never be empty")
	}
}
