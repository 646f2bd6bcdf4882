package classify

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/regsense/regsense/internal/domain"
)

// Closed-world value domains of the classification contract. Output that
// falls outside them is rejected, never coerced.
var (
	Categories = []string{
		"AML/CFT",
		"Consumer Protection",
		"Prudential",
		"Sanctions",
		"Disclosure",
		"Licensing",
		"ESG/Sustainability",
		"Enforcement",
		"Conduct",
		"Operational Resilience",
		"Other",
	}

	// Ordered Critical > High > Medium > Low.
	Severities = []string{"Critical", "High", "Medium", "Low"}

	Sectors = []string{
		"Banking",
		"Insurance",
		"Investment",
		"Fiduciary",
		"Lending",
		"Pensions",
		"All Sectors",
	}
)

// SchemaError marks extraction output that violates the classification
// contract: a value outside an enumerated domain or a shape mismatch.
type SchemaError struct {
	Field  string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("classification schema violation on %s: %s", e.Field, e.Reason)
}

// Validate checks a classification against the enumerated domains.
func Validate(c domain.Classification) error {
	if !slices.Contains(Categories, c.Category) {
		return &SchemaError{Field: "category", Reason: fmt.Sprintf("%q is not a known category", c.Category)}
	}
	if !slices.Contains(Severities, c.Severity) {
		return &SchemaError{Field: "severity", Reason: fmt.Sprintf("%q is not a known severity", c.Severity)}
	}
	for _, sector := range c.AffectedSectors {
		if !slices.Contains(Sectors, sector) {
			return &SchemaError{Field: "affected_sectors", Reason: fmt.Sprintf("%q is not a known sector", sector)}
		}
	}
	return nil
}

type jsonSchema struct {
	Type                 string                `json:"type"`
	Properties           map[string]jsonField  `json:"properties"`
	Required             []string              `json:"required"`
	AdditionalProperties bool                  `json:"additionalProperties"`
}

type jsonField struct {
	Type        string     `json:"type"`
	Description string     `json:"description,omitempty"`
	Enum        []string   `json:"enum,omitempty"`
	Items       *jsonField `json:"items,omitempty"`
}

// ResponseSchema is the JSON schema handed to the extraction provider so
// the model is constrained to the classification contract.
func ResponseSchema() json.RawMessage {
	schema := jsonSchema{
		Type: "object",
		Properties: map[string]jsonField{
			"summary": {
				Type: "string",
				Description: "Plain-English summary of the regulatory change in 2-3 sentences. " +
					"Written for a compliance professional, not a lawyer.",
			},
			"category": {
				Type:        "string",
				Description: "Primary regulatory category.",
				Enum:        Categories,
			},
			"subcategories": {
				Type: "array",
				Description: "More specific tags within the primary category, e.g. " +
					"['KYC', 'Sanctions Screening']. Empty if none apply.",
				Items: &jsonField{Type: "string"},
			},
			"severity": {
				Type: "string",
				Description: "Impact severity. Critical = immediate action needed, High = action " +
					"within weeks, Medium = review at next cycle, Low = informational only.",
				Enum: Severities,
			},
			"affected_sectors": {
				Type:        "array",
				Description: "Which financial sectors are impacted. ['All Sectors'] if the regulation applies broadly.",
				Items:       &jsonField{Type: "string", Enum: Sectors},
			},
			"action_items": {
				Type: "array",
				Description: "Concrete steps a compliance team should take in response. " +
					"Each item should be specific and actionable, e.g. " +
					"'Review AML procedures against updated thresholds by Q2 2026'.",
				Items: &jsonField{Type: "string"},
			},
			"effective_date": {
				Type: "string",
				Description: "When the regulation takes effect, if stated. ISO format (YYYY-MM-DD) " +
					"for a specific date, a phrase like 'Immediately' or 'Q2 2026' otherwise, " +
					"empty string if not mentioned.",
			},
			"key_entities": {
				Type:        "array",
				Description: "Organisations, regulatory bodies, or frameworks mentioned, e.g. ['GFSC', 'FATF', 'Basel III'].",
				Items:       &jsonField{Type: "string"},
			},
		},
		Required: []string{
			"summary", "category", "subcategories", "severity",
			"affected_sectors", "action_items", "effective_date", "key_entities",
		},
		AdditionalProperties: false,
	}

	raw, err := json.Marshal(schema)
	if err != nil {
		panic(fmt.Sprintf("marshal classification schema: %v", err))
	}
	return raw
}
