package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// krasData returns a small KRAS-like transcript definition used across the
// package tests. The coding sequence translates to "MPL" with a stop.
func krasData() TranscriptData {
	return TranscriptData{
		TranscriptID:   "ENST00000311936",
		TranscriptName: "KRAS-201",
		GeneID:         "ENSG00000133703",
		GeneName:       "KRAS",
		ProteinID:      "ENSP00000308495",
		Contig:         "12",
		Strand:         "-",
		Biotype:        "protein_coding",
		Start:          25205246,
		End:            25250929,
		Exons: []Exon{
			{ID: "ENSE00000000028", Index: 1, Start: 25250751, End: 25250929},
			{ID: "ENSE00000936617", Index: 2, Start: 25245274, End: 25245395},
			{ID: "ENSE00001719809", Index: 3, Start: 25227234, End: 25227412},
		},
		Sequence:       "GGGGTTTTATGCCGCTGTAA",
		CodingSequence: "ATGCCGCTGTAA",
	}
}

func TestNewTranscriptDerivesRelativeSpans(t *testing.T) {
	tr := NewTranscript(krasData())

	exons := tr.Exons()
	require.Len(t, exons, 3)

	// First exon spans 179 bases, so transcript space [1, 179].
	assert.Equal(t, 1, exons[0].RelStart)
	assert.Equal(t, 179, exons[0].RelEnd)

	// Second exon spans 122 bases, starting where the first ended.
	assert.Equal(t, 180, exons[1].RelStart)
	assert.Equal(t, 301, exons[1].RelEnd)

	// Third exon spans 179 bases.
	assert.Equal(t, 302, exons[2].RelStart)
	assert.Equal(t, 480, exons[2].RelEnd)
}

func TestNewTranscriptKeepsSuppliedRelativeSpans(t *testing.T) {
	d := krasData()
	d.Exons[0].RelStart = 5
	d.Exons[0].RelEnd = 10

	tr := NewTranscript(d)

	e, ok := tr.ExonByIndex(1)
	require.True(t, ok)
	assert.Equal(t, 5, e.RelStart)
	assert.Equal(t, 10, e.RelEnd)
}

func TestNewTranscriptLeavesInputUntouched(t *testing.T) {
	d := krasData()
	NewTranscript(d)

	// Deriving transcript-space spans must not write back into the
	// caller's exon slice.
	for _, e := range d.Exons {
		assert.Zero(t, e.RelStart)
		assert.Zero(t, e.RelEnd)
	}
}

func TestNewTranscriptTranslatesCDS(t *testing.T) {
	tr := NewTranscript(krasData())

	// ATG CCG CTG TAA -> MPL, trimmed at the stop codon.
	assert.Equal(t, "MPL", tr.ProteinSequence())
}

func TestNewTranscriptKeepsSuppliedProteinSequence(t *testing.T) {
	d := krasData()
	d.ProteinSequence = "MTEYK"

	tr := NewTranscript(d)
	assert.Equal(t, "MTEYK", tr.ProteinSequence())
}

func TestTranscriptAccessors(t *testing.T) {
	tr := NewTranscript(krasData())

	assert.Equal(t, "12", tr.Contig())
	assert.Equal(t, "-", tr.Strand())
	assert.Equal(t, "protein_coding", tr.Biotype())
	assert.Equal(t, "ENST00000311936", tr.TranscriptID())
	assert.Equal(t, "KRAS-201", tr.TranscriptName())
	assert.Equal(t, "ENSG00000133703", tr.GeneID())
	assert.Equal(t, "KRAS", tr.GeneName())
	assert.Equal(t, "ENSP00000308495", tr.ProteinID())
	assert.Equal(t, 25205246, tr.Start())
	assert.Equal(t, 25250929, tr.End())
	assert.Equal(t, "GGGGTTTTATGCCGCTGTAA", tr.Sequence())
	assert.Equal(t, "ATGCCGCTGTAA", tr.CodingSequence())
	assert.Equal(t, 3, tr.ExonCount())
	assert.True(t, tr.IsProteinCoding())
}

func TestExonLookups(t *testing.T) {
	tr := NewTranscript(krasData())

	e, ok := tr.ExonByIndex(2)
	require.True(t, ok)
	assert.Equal(t, "ENSE00000936617", e.ID)

	e, ok = tr.ExonByID("ENSE00001719809")
	require.True(t, ok)
	assert.Equal(t, 3, e.Index)

	_, ok = tr.ExonByIndex(99)
	assert.False(t, ok)

	_, ok = tr.ExonByID("ENSE00000000000")
	assert.False(t, ok)
}

func TestDataReturnsCopy(t *testing.T) {
	tr := NewTranscript(krasData())

	d := tr.Data()
	d.Exons[0].ID = "mutated"
	d.TranscriptID = "mutated"

	assert.Equal(t, "ENST00000311936", tr.TranscriptID())
	e, ok := tr.ExonByIndex(1)
	require.True(t, ok)
	assert.Equal(t, "ENSE00000000028", e.ID)
}

func TestNonCodingTranscript(t *testing.T) {
	d := krasData()
	d.CodingSequence = ""
	d.ProteinID = ""

	tr := NewTranscript(d)
	assert.False(t, tr.IsProteinCoding())
	assert.Empty(t, tr.ProteinSequence())
}
