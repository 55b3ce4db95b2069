package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/Palash-creator/gem-extract/internal/logger"
	"github.com/Palash-creator/gem-extract/pkg/annotate"
)

// DefaultModel is the model identifier used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Default batching parameters passed to the annotation client. A single
// extraction pass with a bounded worker pool and no progress reporting.
const (
	defaultPasses    = 1
	defaultWorkers   = 4
	defaultBatchSize = 8000
)

// Config holds the model engine's construction-time configuration.
type Config struct {
	// Model is the model identifier (default DefaultModel).
	Model string

	// Credential is the environment-sourced API key, resolved by the
	// composition root. A per-call override takes priority over it.
	Credential string

	// Client is the annotation client. nil means the capability is
	// unavailable and every call degrades to the fallback engine.
	Client annotate.Client

	// Passes, Workers, and BatchSize tune the annotation client.
	// Zero values take the package defaults.
	Passes    int
	Workers   int
	BatchSize int
}

// ModelEngine runs prompt-driven extraction through an annotation client,
// degrading to the fallback engine per the selection policy in Extract.
type ModelEngine struct {
	cfg      Config
	fallback *Fallback
}

// NewModelEngine creates the model-backed engine.
func NewModelEngine(cfg Config) *ModelEngine {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Passes <= 0 {
		cfg.Passes = defaultPasses
	}
	if cfg.Workers <= 0 {
		cfg.Workers = defaultWorkers
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatchSize
	}

	return &ModelEngine{
		cfg:      cfg,
		fallback: NewFallback(),
	}
}

// Extract runs the engine-selection policy once for the batch and produces
// one record per document.
//
// Degradation to the fallback engine (missing client, no credential) is not
// an error: the call succeeds and the substitution is recorded in the logs.
// Only empty documents or empty fields fail, before any engine work.
func (e *ModelEngine) Extract(ctx context.Context, docs []Document, fields []string, credentialOverride string) (*Result, error) {
	if len(docs) == 0 {
		return nil, ErrNoDocuments
	}
	fields = NormalizeFields(fields)
	if len(fields) == 0 {
		return nil, ErrNoFields
	}

	if e.cfg.Client == nil {
		return e.degrade(ctx, docs, fields,
			"annotation client not available; using fallback regex extractor. Configure a model client to switch to production extraction.")
	}

	credential := strings.TrimSpace(credentialOverride)
	if credential == "" {
		credential = strings.TrimSpace(e.cfg.Credential)
	}
	if credential == "" {
		return e.degrade(ctx, docs, fields,
			"no API credential found; using fallback regex extractor. Set GEMEXTRACT_API_KEY or GEMINI_API_KEY to enable model extraction.")
	}

	return e.extractWithModel(ctx, docs, fields, credential)
}

// degrade runs the whole batch through the fallback engine, prepending a
// log entry explaining why.
func (e *ModelEngine) degrade(ctx context.Context, docs []Document, fields []string, reason string) (*Result, error) {
	logger.Debug("degrading to fallback engine", "reason", reason)

	result, _ := e.fallback.Extract(ctx, docs, fields)
	result.Logs = append([]string{reason}, result.Logs...)
	return result, nil
}

// extractWithModel runs the model-backed path for every document. A failure
// on one document falls back for that document only; the batch continues and
// the result keeps the model engine identifier.
func (e *ModelEngine) extractWithModel(ctx context.Context, docs []Document, fields []string, credential string) (*Result, error) {
	logs := []string{fmt.Sprintf("running model extraction with %s", e.cfg.Model)}
	prompt := BuildPrompt(fields)

	// Lowercase lookup built once; annotation class labels match
	// case-insensitively against the requested field names.
	fieldByLower := make(map[string]string, len(fields))
	for _, f := range fields {
		fieldByLower[strings.ToLower(f)] = f
	}

	records := make([]Record, 0, len(docs))
	for _, doc := range docs {
		row := newRecord(doc, fields)

		if strings.TrimSpace(doc.Text) == "" {
			logs = append(logs, fmt.Sprintf("document %q has no text; skipped model call", doc.DisplayName()))
			records = append(records, row)
			continue
		}

		annotated, err := e.cfg.Client.Annotate(ctx, annotate.Request{
			Text:       doc.Text,
			Prompt:     prompt,
			Credential: credential,
			Model:      e.cfg.Model,
			Passes:     e.cfg.Passes,
			Workers:    e.cfg.Workers,
			BatchSize:  e.cfg.BatchSize,
		})
		if err != nil {
			logger.Debug("model extraction failed for document",
				"document", doc.DisplayName(),
				"error", err)
			logs = append(logs, fmt.Sprintf("model extraction failed for %q: %v; used fallback for this document", doc.DisplayName(), err))

			for field, value := range e.fallback.row(doc, fields) {
				if field == DocumentKey {
					continue
				}
				row[field] = value
			}
			records = append(records, row)
			continue
		}

		e.mapAnnotations(row, annotated.Annotations, fieldByLower)
		records = append(records, row)
	}

	logs = append(logs, fmt.Sprintf("model extraction produced %d record(s)", len(records)))

	return &Result{
		Records: records,
		Logs:    logs,
		Engine:  EngineModel,
	}, nil
}

// mapAnnotations fills a row from the model's annotations. Labels that match
// no requested field are discarded; identical extracted text contributes to a
// field only once; accepted values join with "; " in arrival order.
func (e *ModelEngine) mapAnnotations(row Record, anns []annotate.Annotation, fieldByLower map[string]string) {
	values := make(map[string][]string)
	seen := make(map[string]map[string]struct{})

	for _, a := range anns {
		field, ok := fieldByLower[strings.ToLower(strings.TrimSpace(a.Class))]
		if !ok {
			continue
		}
		text := strings.TrimSpace(a.Text)
		if text == "" {
			continue
		}
		if seen[field] == nil {
			seen[field] = make(map[string]struct{})
		}
		if _, dup := seen[field][text]; dup {
			continue
		}
		seen[field][text] = struct{}{}
		values[field] = append(values[field], text)
	}

	for field, vals := range values {
		row[field] = strings.Join(vals, "; ")
	}
}

// Name returns the model engine identifier.
func (e *ModelEngine) Name() string {
	return EngineModel
}
