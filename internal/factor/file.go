package factor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/shopspring/decimal"

	"github.com/Gee9999/Air-Ship/internal/common"
)

// BuildFactorsJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map. A factors file is a flat object keyed by duty percentage,
// each value a positive multiplier: {"0": 1.0, "15": 25.91}.
func BuildFactorsJSONSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"minProperties":        1,
		"additionalProperties": false,
		"patternProperties": map[string]any{
			`^\d{1,2}$`: map[string]any{
				"type":             "number",
				"exclusiveMinimum": 0.0,
			},
		},
	}
}

// LoadFile reads a factors JSON file, validates it against the factors
// schema, and parses it into a Table.
func LoadFile(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read factors file: %v: %w", err, common.ErrConfig)
	}
	if err := validateJSONAgainstSchema(BuildFactorsJSONSchema(), data); err != nil {
		return nil, fmt.Errorf("factors file %s: %v: %w", path, err, common.ErrConfig)
	}

	var raw map[string]json.Number
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse factors file %s: %v: %w", path, err, common.ErrConfig)
	}
	t := Table{}
	for k, v := range raw {
		key, err := decimal.NewFromString(k)
		if err != nil {
			return nil, fmt.Errorf("bad factors file key %q: %w", k, common.ErrConfig)
		}
		val, err := decimal.NewFromString(v.String())
		if err != nil {
			return nil, fmt.Errorf("bad factors file value %q: %w", v, common.ErrConfig)
		}
		t[int(key.IntPart())] = val
	}
	return t, nil
}

// validateJSONAgainstSchema validates "data" against "schemaMap".
func validateJSONAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("factors.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("factors.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
