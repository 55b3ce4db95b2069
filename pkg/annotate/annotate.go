// Package annotate provides a prompt-driven entity annotation client.
//
// A client takes raw text plus a task prompt and returns class-labelled text
// spans. The default implementation drives an LLM provider and asks for the
// annotations as structured JSON.
package annotate

import "context"

// Annotation is a single labelled span returned by the model.
// A blank Class or Text means the entry carries no value and is dropped.
type Annotation struct {
	Class string `json:"class"`
	Text  string `json:"text"`
}

// AnnotatedDocument holds the annotations produced for one input text.
type AnnotatedDocument struct {
	Annotations []Annotation
}

// Request describes a single annotation run over one text.
type Request struct {
	// Text is the raw content to annotate.
	Text string

	// Prompt describes the annotation task and the allowed class labels.
	Prompt string

	// Credential is the API key used for this call.
	Credential string

	// Model is the model identifier (e.g., "gemini-2.5-flash").
	Model string

	// Passes is the number of annotation passes over the text (default 1).
	// Additional passes re-annotate and union the results.
	Passes int

	// Workers bounds concurrent chunk annotation (default 1).
	Workers int

	// BatchSize is the maximum chunk size in bytes (default 8000, 0 = default).
	BatchSize int

	// Progress enables per-chunk debug logging.
	Progress bool
}

// Client annotates text with class-labelled spans.
type Client interface {
	Annotate(ctx context.Context, req Request) (*AnnotatedDocument, error)
}
