package annotate

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/Palash-creator/gem-extract/internal/logger"
	"github.com/Palash-creator/gem-extract/pkg/llm"
)

const (
	defaultBatchSize = 8000
	defaultMaxTokens = 8192
)

// annotationSchema is the JSON schema sent to providers for structured output.
var annotationSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"annotations": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"class": map[string]any{"type": "string"},
					"text":  map[string]any{"type": "string"},
				},
				"required": []any{"class", "text"},
			},
		},
	},
	"required": []any{"annotations"},
}

// LLMClient implements Client on top of an llm.Provider.
type LLMClient struct {
	// providerFor builds a provider for a request. Overridable in tests.
	providerFor func(llm.ProviderConfig) (llm.Provider, error)

	temperature float64
	maxTokens   int
}

// NewLLMClient creates the default LLM-backed annotation client.
func NewLLMClient() *LLMClient {
	return &LLMClient{
		providerFor: llm.ForModel,
		temperature: 0.1,
		maxTokens:   defaultMaxTokens,
	}
}

// Annotate runs the annotation task over the request text. Long texts are
// split into chunks and annotated by a bounded worker pool; annotation order
// follows chunk order. Any chunk failure fails the whole document.
func (c *LLMClient) Annotate(ctx context.Context, req Request) (*AnnotatedDocument, error) {
	if strings.TrimSpace(req.Credential) == "" {
		return nil, fmt.Errorf("annotate: credential required")
	}
	if req.Model == "" {
		return nil, fmt.Errorf("annotate: model required")
	}

	provider, err := c.providerFor(llm.ProviderConfig{
		APIKey: req.Credential,
		Model:  req.Model,
	})
	if err != nil {
		return nil, fmt.Errorf("annotate: provider init: %w", err)
	}

	batchSize := req.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	passes := req.Passes
	if passes <= 0 {
		passes = 1
	}
	workers := req.Workers
	if workers <= 0 {
		workers = 1
	}

	chunks := splitChunks(req.Text, batchSize)

	doc := &AnnotatedDocument{}
	for pass := 0; pass < passes; pass++ {
		anns, err := c.annotateChunks(ctx, provider, req, chunks, workers)
		if err != nil {
			return nil, err
		}
		doc.Annotations = append(doc.Annotations, anns...)
	}

	return doc, nil
}

// annotateChunks fans chunks out to a bounded worker pool and reassembles
// the annotations in chunk order.
func (c *LLMClient) annotateChunks(ctx context.Context, provider llm.Provider, req Request, chunks []string, workers int) ([]Annotation, error) {
	results := make([][]Annotation, len(chunks))
	errs := make([]error, len(chunks))

	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i, chunk := range chunks {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, chunk string) {
			defer wg.Done()
			defer func() { <-sem }()

			if req.Progress {
				logger.Debug("annotating chunk",
					"chunk", i+1,
					"total", len(chunks),
					"size", len(chunk))
			}
			results[i], errs[i] = c.annotateOne(ctx, provider, req.Prompt, chunk)
		}(i, chunk)
	}
	wg.Wait()

	var all []Annotation
	for i := range chunks {
		if errs[i] != nil {
			return nil, fmt.Errorf("annotate chunk %d/%d: %w", i+1, len(chunks), errs[i])
		}
		all = append(all, results[i]...)
	}
	return all, nil
}

// annotateOne sends a single chunk to the provider and parses the response.
func (c *LLMClient) annotateOne(ctx context.Context, provider llm.Provider, prompt, chunk string) ([]Annotation, error) {
	resp, err := provider.Execute(ctx, llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: prompt},
			{Role: llm.RoleUser, Content: chunk},
		},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
		JSONSchema:  annotationSchema,
	})
	if err != nil {
		return nil, err
	}

	return ParseAnnotations(resp.Content)
}

// ParseAnnotations decodes a model response into annotations. It accepts
// either an {"annotations": [...]} envelope or a bare array, tolerates a
// markdown code fence, and drops entries missing a class or text.
func ParseAnnotations(content string) ([]Annotation, error) {
	raw := StripMarkdownCodeBlock(content)

	var envelope struct {
		Annotations []Annotation `json:"annotations"`
	}
	if err := json.Unmarshal([]byte(raw), &envelope); err == nil && envelope.Annotations != nil {
		return pruneAnnotations(envelope.Annotations), nil
	}

	var bare []Annotation
	if err := json.Unmarshal([]byte(raw), &bare); err != nil {
		return nil, fmt.Errorf("failed to parse response as JSON: %w (response: %s)", err, truncateForError(content))
	}
	return pruneAnnotations(bare), nil
}

func pruneAnnotations(anns []Annotation) []Annotation {
	out := anns[:0]
	for _, a := range anns {
		if strings.TrimSpace(a.Class) == "" || strings.TrimSpace(a.Text) == "" {
			continue
		}
		out = append(out, a)
	}
	return out
}

// splitChunks splits text into chunks of at most max bytes, preferring line
// boundaries. A single line longer than max is hard-split.
func splitChunks(text string, max int) []string {
	if len(text) <= max {
		return []string{text}
	}

	var chunks []string
	var b strings.Builder

	flush := func() {
		if b.Len() > 0 {
			chunks = append(chunks, b.String())
			b.Reset()
		}
	}

	for _, line := range strings.SplitAfter(text, "\n") {
		for len(line) > max {
			flush()
			chunks = append(chunks, line[:max])
			line = line[max:]
		}
		if b.Len()+len(line) > max {
			flush()
		}
		b.WriteString(line)
	}
	flush()

	return chunks
}

// StripMarkdownCodeBlock removes a markdown code fence from JSON responses.
// Some models wrap their output in ```json ... ``` blocks.
func StripMarkdownCodeBlock(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
	} else {
		return s
	}

	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func truncateForError(s string) string {
	if len(s) <= 200 {
		return s
	}
	return s[:200] + "..."
}

var _ Client = (*LLMClient)(nil)
