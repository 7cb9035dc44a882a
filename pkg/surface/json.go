package surface

import (
	"encoding/json"
	"io"

	"github.com/esgcopilot/esgcore/pkg/pipeline"
)

// JSONRenderer marshals a Result to indented JSON.
type JSONRenderer struct{}

func (r *JSONRenderer) Render(w io.Writer, result *pipeline.Result) error {
	return WriteJSON(w, result)
}

// RecordRenderer marshals the flat storable record of a Result.
type RecordRenderer struct{}

func (r *RecordRenderer) Render(w io.Writer, result *pipeline.Result) error {
	return WriteJSON(w, result.Record())
}

// WriteJSON encodes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
