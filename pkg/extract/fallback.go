package extract

import (
	"context"
	"fmt"
)

// Fallback is the deterministic regex-based engine. It assigns the i-th
// unique entity candidate in a document to the i-th requested field, with
// no semantic matching between field name and candidate. It never fails:
// fields beyond the number of candidates get empty strings.
type Fallback struct {
	matcher *Matcher
}

// NewFallback creates the fallback engine.
func NewFallback() *Fallback {
	return &Fallback{matcher: NewMatcher()}
}

// Extract produces one record per document using positional assignment.
// fields must already be normalized. The returned error is always nil and
// exists only to satisfy the Engine contract.
func (f *Fallback) Extract(_ context.Context, docs []Document, fields []string) (*Result, error) {
	logs := []string{"running fallback entity extraction rules (positional assignment, no semantic matching)"}

	records := make([]Record, 0, len(docs))
	for _, doc := range docs {
		records = append(records, f.row(doc, fields))
	}

	logs = append(logs, fmt.Sprintf("fallback generated %d extracted record(s)", len(records)))

	return &Result{
		Records: records,
		Logs:    logs,
		Engine:  EngineFallback,
	}, nil
}

// row extracts a single document's record.
func (f *Fallback) row(doc Document, fields []string) Record {
	row := newRecord(doc, fields)

	matches := f.matcher.Find(doc.Text)
	uniq := make([]string, 0, len(matches))
	seen := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		uniq = append(uniq, m)
	}

	for i, field := range fields {
		if i < len(uniq) {
			row[field] = uniq[i]
		}
	}

	return row
}

// Name returns the fallback engine identifier.
func (f *Fallback) Name() string {
	return EngineFallback
}

var _ Engine = (*Fallback)(nil)
