package classify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/regsense/regsense/internal/domain"
)

// Extractor is the opaque structured-extraction capability: prompt text
// plus a response schema in, raw JSON conforming to that schema out.
type Extractor interface {
	Extract(ctx context.Context, system, prompt string, schema json.RawMessage) (json.RawMessage, error)
}

// Invoker runs the extraction step for one alert. It owns prompt
// construction and schema validation; it never retries.
type Invoker struct {
	extractor Extractor
	schema    json.RawMessage
}

func NewInvoker(extractor Extractor) *Invoker {
	return &Invoker{
		extractor: extractor,
		schema:    ResponseSchema(),
	}
}

// Classify returns a validated classification for the alert or an error.
// Extraction output that does not decode or that falls outside the
// enumerated domains is a failure, never silently coerced.
func (iv *Invoker) Classify(ctx context.Context, alert domain.Alert) (*domain.Classification, error) {
	raw, err := iv.extractor.Extract(ctx, SystemPrompt, BuildPrompt(alert), iv.schema)
	if err != nil {
		return nil, fmt.Errorf("extraction call: %w", err)
	}

	var c domain.Classification
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, &SchemaError{Field: "output", Reason: fmt.Sprintf("not a classification object: %v", err)}
	}

	if err := Validate(c); err != nil {
		return nil, err
	}
	return &c, nil
}
