// Package wire validates the JSON wire encoding of a bot's proposed
// action before it ever reaches engine.Normalize: an out-of-process bot
// speaks raw JSON, and its reply is checked against an embedded schema
// before being decoded into a typed Action.
package wire

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/holdemcore/simcore/internal/engine"
)

//go:embed schemas
var schemaFiles embed.FS

const actionSchemaURL = "https://holdemcore.dev/schemas/action.json"

// ActionValidator checks a raw JSON proposed action against the action
// schema: malformed wire input (wrong type, unknown fields, negative
// amount) is rejected here, before it ever reaches the normalizer, which
// only has to handle semantically-illegal-but-well-formed actions.
type ActionValidator struct {
	schema *jsonschema.Schema
}

// NewActionValidator compiles the embedded action schema once; the
// returned validator is safe for concurrent use across seats and hands.
func NewActionValidator() (*ActionValidator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	data, err := schemaFiles.ReadFile("schemas/action.json")
	if err != nil {
		return nil, fmt.Errorf("wire: read action schema: %w", err)
	}
	if err := compiler.AddResource(actionSchemaURL, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("wire: add action schema: %w", err)
	}
	schema, err := compiler.Compile(actionSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("wire: compile action schema: %w", err)
	}
	return &ActionValidator{schema: schema}, nil
}

// ValidateAction reports whether raw is a well-formed proposed-action
// envelope. It does not know about legal-action ranges for the current
// decision point; that is engine.Normalize's job.
func (v *ActionValidator) ValidateAction(raw []byte) error {
	var data interface{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("wire: invalid JSON: %w", err)
	}
	if err := v.schema.Validate(data); err != nil {
		return fmt.Errorf("wire: action schema validation failed: %w", err)
	}
	return nil
}

// DecodeAction validates raw against the action schema and, if it
// passes, unmarshals it into an engine.Action. A bot process that
// communicates over a wire (rather than an in-process Go callable) round
// trips through exactly this path.
func (v *ActionValidator) DecodeAction(raw []byte) (*engine.Action, error) {
	if err := v.ValidateAction(raw); err != nil {
		return nil, err
	}
	var action engine.Action
	if err := json.Unmarshal(raw, &action); err != nil {
		return nil, fmt.Errorf("wire: decode action: %w", err)
	}
	return &action, nil
}

// JSONSource is the abstract "ask an external bot for its next move"
// operation: it returns the raw JSON wire bytes for one proposed action,
// the shape a subprocess or network bot speaks instead of calling Go code
// directly.
type JSONSource func(ctx context.Context, botCode string, visible engine.VisibleState) ([]byte, error)

// Decide adapts a JSONSource into an engine.Decide: it calls source, then
// validates and decodes the raw reply through this package's schema
// before handing it to the engine. A schema violation or decode failure
// here is reported back to the engine as an ordinary decide error, which
// the fallback chain already tolerates.
func (v *ActionValidator) Decide(source JSONSource) engine.Decide {
	return func(ctx context.Context, botCode string, visible engine.VisibleState) (*engine.Action, error) {
		raw, err := source(ctx, botCode, visible)
		if err != nil {
			return nil, fmt.Errorf("wire: bot source: %w", err)
		}
		return v.DecodeAction(raw)
	}
}
