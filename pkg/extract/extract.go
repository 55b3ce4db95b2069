// Package extract turns uploaded documents into tabular field records.
//
// The entry point is the Adapter, which routes a batch of documents to a
// model-backed engine when an annotation client and credential are present
// and degrades to a deterministic regex fallback otherwise. Both engines
// produce the same record shape: one row per document, one column per
// requested field, every column always present.
package extract

import (
	"context"
	"errors"
)

// Engine identifiers reported in Result.Engine. They name the strategy that
// actually executed, not the one that was requested.
const (
	EngineModel    = "model"
	EngineFallback = "regex-fallback"
)

// DefaultDocumentName is used for documents uploaded without a name.
const DefaultDocumentName = "unnamed.txt"

// Caller-input errors, raised before any engine work starts.
var (
	ErrNoDocuments = errors.New("no documents to extract from")
	ErrNoFields    = errors.New("no fields requested")
)

// Document is a single named text to extract from. Text may be empty.
type Document struct {
	Name string
	Text string
}

// DisplayName returns the document name, or a placeholder if absent.
func (d Document) DisplayName() string {
	if d.Name == "" {
		return DefaultDocumentName
	}
	return d.Name
}

// Record maps column names to extracted string values. Every record carries
// a "document" key plus one key per requested field; a field with no value
// holds the empty string rather than being absent.
type Record map[string]string

// DocumentKey is the record column holding the document name.
const DocumentKey = "document"

// Result is the outcome of one extraction call.
type Result struct {
	// Records holds one row per input document, in input order.
	Records []Record

	// Logs is a human-readable trail of what the extraction did.
	// Never empty: at minimum it states which engine ran.
	Logs []string

	// Engine names the strategy that executed (EngineModel or EngineFallback).
	Engine string
}

// Engine is the contract shared by the model-backed and fallback extractors.
type Engine interface {
	Extract(ctx context.Context, docs []Document, fields []string) (*Result, error)
	Name() string
}

// newRecord builds a row with the document column and every field present.
func newRecord(doc Document, fields []string) Record {
	row := make(Record, len(fields)+1)
	row[DocumentKey] = doc.DisplayName()
	for _, f := range fields {
		row[f] = ""
	}
	return row
}
