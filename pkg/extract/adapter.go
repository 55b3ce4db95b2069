package extract

import (
	"context"

	"github.com/Palash-creator/gem-extract/internal/logger"
)

// Adapter is the single entry point used by the HTTP layer and the CLI.
// It holds immutable construction-time configuration and delegates to the
// model-backed engine, which owns the selection policy.
type Adapter struct {
	engine    *ModelEngine
	available bool
}

// NewAdapter creates the adapter. The annotation client capability is probed
// once here: a nil client means every call degrades to the fallback engine.
func NewAdapter(cfg Config) *Adapter {
	available := cfg.Client != nil
	if !available {
		logger.Warn("annotation client not configured; extraction will use the regex fallback")
	}

	return &Adapter{
		engine:    NewModelEngine(cfg),
		available: available,
	}
}

// Extract processes the whole document batch synchronously.
// credentialOverride, when non-blank after trimming, takes priority over the
// configured environment-sourced credential.
//
// It fails only for caller-input errors (ErrNoDocuments, ErrNoFields); every
// other abnormal condition degrades and is reported through Result.Logs.
func (a *Adapter) Extract(ctx context.Context, docs []Document, fields []string, credentialOverride string) (*Result, error) {
	return a.engine.Extract(ctx, docs, fields, credentialOverride)
}

// Available reports whether the model-backed path can be taken at all
// (annotation client present). Credential resolution still happens per call.
func (a *Adapter) Available() bool {
	return a.available
}
