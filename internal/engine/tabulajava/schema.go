package tabulajava

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/joseph-ayodele/pdf2csv/internal/table"
)

// outputSchema describes the subset of tabula-java's JSON output that we rely on.
// Extra fields (geometry, spec_index, ...) are allowed.
func outputSchema() map[string]any {
	cell := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"text": map[string]any{"type": []string{"string", "null"}},
		},
	}
	return map[string]any{
		"type": "array",
		"items": map[string]any{
			"type":     "object",
			"required": []string{"data"},
			"properties": map[string]any{
				"extraction_method": map[string]any{"type": "string"},
				"page_number":       map[string]any{"type": "integer", "minimum": 0},
				"data": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "array", "items": cell},
				},
			},
		},
	}
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func schema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		b, err := json.Marshal(outputSchema())
		if err != nil {
			compileErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("tabula-output.json", bytes.NewReader(b)); err != nil {
			compileErr = fmt.Errorf("add schema: %w", err)
			return
		}
		compiled, compileErr = compiler.Compile("tabula-output.json")
	})
	return compiled, compileErr
}

type jsonCell struct {
	Text *string `json:"text"`
}

type jsonTable struct {
	ExtractionMethod string       `json:"extraction_method"`
	PageNumber       int          `json:"page_number"`
	Data             [][]jsonCell `json:"data"`
}

// decodeOutput validates tabula-java's stdout against outputSchema and converts it
// into raw tables. Empty output means no tables.
func decodeOutput(data []byte) ([]table.Raw, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	s, err := schema()
	if err != nil {
		return nil, err
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("unmarshal engine output: %w", err)
	}
	if err := s.Validate(v); err != nil {
		return nil, fmt.Errorf("engine output does not match schema: %w", err)
	}

	var tables []jsonTable
	if err := json.Unmarshal(data, &tables); err != nil {
		return nil, fmt.Errorf("decode engine output: %w", err)
	}

	raws := make([]table.Raw, 0, len(tables))
	for _, t := range tables {
		rows := make([][]any, len(t.Data))
		for i, row := range t.Data {
			cells := make([]any, len(row))
			for j, c := range row {
				if c.Text != nil {
					cells[j] = *c.Text
				}
			}
			rows[i] = cells
		}
		raws = append(raws, table.Raw{Rows: rows, Page: t.PageNumber})
	}
	return raws, nil
}
