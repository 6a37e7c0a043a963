package cache

import (
	"encoding/json"
	"fmt"
	"os"
)

// JSONLoader loads transcript definitions from a JSON file holding an array
// of TranscriptData objects. Used for custom annotations and in tests, where
// a full GENCODE download would be overkill.
type JSONLoader struct {
	path string
}

// NewJSONLoader creates a new JSON loader.
func NewJSONLoader(path string) *JSONLoader {
	return &JSONLoader{path: path}
}

// Load decodes the JSON file and adds all transcripts to the cache. Derived
// fields (exon transcript-space spans, protein sequence) are filled in the
// same way as for GENCODE-loaded transcripts.
func (l *JSONLoader) Load(c *Cache) error {
	f, err := os.Open(l.path)
	if err != nil {
		return fmt.Errorf("open transcripts JSON: %w", err)
	}
	defer f.Close()

	var data []TranscriptData
	if err := json.NewDecoder(f).Decode(&data); err != nil {
		return fmt.Errorf("decode transcripts JSON: %w", err)
	}

	for _, d := range data {
		if d.TranscriptID == "" {
			return fmt.Errorf("transcripts JSON: entry missing transcript_id")
		}
		c.AddTranscript(NewTranscript(d))
	}

	return nil
}
