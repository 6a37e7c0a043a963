package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheAddAndGet(t *testing.T) {
	c := New()
	c.AddTranscript(NewTranscript(krasData()))

	tr, ok := c.GetTranscript("ENST00000311936")
	require.True(t, ok)
	assert.Equal(t, "KRAS", tr.GeneName())

	// Versioned IDs resolve to the unversioned entry.
	tr, ok = c.GetTranscript("ENST00000311936.8")
	require.True(t, ok)
	assert.Equal(t, "ENST00000311936", tr.TranscriptID())

	_, ok = c.GetTranscript("ENST00000000000")
	assert.False(t, ok)
}

func TestCacheFindByGene(t *testing.T) {
	c := New()

	second := krasData()
	second.TranscriptID = "ENST00000256078"
	second.TranscriptName = "KRAS-202"

	// Insert out of ID order to exercise sorting.
	c.AddTranscript(NewTranscript(krasData()))
	c.AddTranscript(NewTranscript(second))

	transcripts := c.FindByGene("KRAS")
	require.Len(t, transcripts, 2)
	assert.Equal(t, "ENST00000256078", transcripts[0].TranscriptID())
	assert.Equal(t, "ENST00000311936", transcripts[1].TranscriptID())

	assert.Nil(t, c.FindByGene("TP53"))
}

func TestCacheReplaceTranscript(t *testing.T) {
	c := New()
	c.AddTranscript(NewTranscript(krasData()))

	updated := krasData()
	updated.TranscriptName = "KRAS-201-updated"
	c.AddTranscript(NewTranscript(updated))

	assert.Equal(t, 1, c.TranscriptCount())
	assert.Len(t, c.FindByGene("KRAS"), 1)

	tr, ok := c.GetTranscript("ENST00000311936")
	require.True(t, ok)
	assert.Equal(t, "KRAS-201-updated", tr.TranscriptName())
}

func TestCacheTranscriptIDs(t *testing.T) {
	c := New()
	assert.Empty(t, c.TranscriptIDs())

	second := krasData()
	second.TranscriptID = "ENST00000256078"

	c.AddTranscript(NewTranscript(krasData()))
	c.AddTranscript(NewTranscript(second))

	assert.Equal(t, []string{"ENST00000256078", "ENST00000311936"}, c.TranscriptIDs())
}
