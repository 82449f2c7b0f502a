package rentroll

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// EncodeRegistry writes the registry as an indented JSON document.
//
// Keys keep the order given by the MarshalJSON methods; payment accounts are masked.
func EncodeRegistry(w io.Writer, r *Registry) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal registry: %w", err)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(json.RawMessage(data)); err != nil {
		return fmt.Errorf("failed to write registry: %w", err)
	}
	return nil
}

// Query evaluates a JSONPath expression (like "$.buildings[*].name") against
// the JSON representation of the registry.
func Query(r *Registry, path string) (any, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal registry: %w", err)
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode registry: %w", err)
	}
	v, err := jsonpath.Get(path, doc)
	if err != nil {
		return nil, fmt.Errorf("error evaluating %q: %w", path, err)
	}
	return v, nil
}
