package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONLoaderLoad(t *testing.T) {
	data, err := json.Marshal([]TranscriptData{krasData()})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "transcripts.json")
	require.NoError(t, os.WriteFile(path, data, 0644))

	c := New()
	require.NoError(t, NewJSONLoader(path).Load(c))
	assert.Equal(t, 1, c.TranscriptCount())

	tr, ok := c.GetTranscript("ENST00000311936")
	require.True(t, ok)
	assert.Equal(t, "KRAS", tr.GeneName())
	assert.Equal(t, "ATGCCGCTGTAA", tr.CodingSequence())
	assert.Equal(t, "MPL", tr.ProteinSequence(), "derived fields are filled on load")

	e, ok := tr.ExonByIndex(1)
	require.True(t, ok)
	assert.Equal(t, 1, e.RelStart)
	assert.Equal(t, 179, e.RelEnd)
}

func TestJSONLoaderRejectsMissingID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transcripts.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"gene_name": "KRAS"}]`), 0644))

	err := NewJSONLoader(path).Load(New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transcript_id")
}

func TestJSONLoaderMissingFile(t *testing.T) {
	err := NewJSONLoader("/nonexistent/transcripts.json").Load(New())
	assert.Error(t, err)
}

func TestJSONLoaderMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transcripts.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0644))

	err := NewJSONLoader(path).Load(New())
	assert.Error(t, err)
}
