package output

import (
	"bufio"
	"encoding/json"
	"io"

	"github.com/mattdoug604/ensembl-map/internal/feature"
)

// JSONWriter writes feature records as JSON, one object per line.
type JSONWriter struct {
	w   *bufio.Writer
	enc *json.Encoder
}

// NewJSONWriter creates a new JSON lines writer.
func NewJSONWriter(w io.Writer) *JSONWriter {
	bw := bufio.NewWriter(w)
	return &JSONWriter{
		w:   bw,
		enc: json.NewEncoder(bw),
	}
}

// WriteHeader is a no-op; JSON lines output carries no header.
func (jw *JSONWriter) WriteHeader() error {
	return nil
}

// Write writes a single feature record as one JSON object.
func (jw *JSONWriter) Write(f feature.Feature) error {
	r, err := NewRecord(f)
	if err != nil {
		return err
	}
	return jw.enc.Encode(r)
}

// Flush flushes any buffered data to the underlying writer.
func (jw *JSONWriter) Flush() error {
	return jw.w.Flush()
}
