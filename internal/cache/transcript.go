// Package cache provides the source-transcript side of feature extraction:
// transcript records loaded from GENCODE annotation files, JSON definitions
// or the Ensembl REST API, held in an in-memory registry.
package cache

import (
	"github.com/mattdoug604/ensembl-map/internal/seq"
)

// Exon is one exon of a transcript as the provider knows it: its Ensembl ID,
// its ordinal among the transcript's exons, its genomic span, and its span in
// transcript space. The transcript-space span is derived by accumulating exon
// lengths in transcript order, so callers can hand a feature loader a
// coordinate pair without doing coordinate arithmetic themselves.
type Exon struct {
	ID       string `json:"exon_id"`             // Exon ID (e.g., ENSE00000936617)
	Index    int    `json:"index"`               // 1-based ordinal in transcript order
	Start    int    `json:"start"`               // Genomic start (1-based)
	End      int    `json:"end"`                 // Genomic end (1-based, inclusive)
	RelStart int    `json:"rel_start,omitempty"` // Start in transcript space (1-based)
	RelEnd   int    `json:"rel_end,omitempty"`   // End in transcript space (1-based, inclusive)
}

// TranscriptData is the plain, serializable form of a transcript. Loaders
// assemble it, NewTranscript seals it, and the JSON loader and the disk
// snapshot move it in and out of the registry.
type TranscriptData struct {
	TranscriptID    string `json:"transcript_id"`
	TranscriptName  string `json:"transcript_name"`
	GeneID          string `json:"gene_id"`
	GeneName        string `json:"gene_name"`
	ProteinID       string `json:"protein_id,omitempty"`
	Contig          string `json:"contig"`
	Strand          string `json:"strand"` // "+" or "-"
	Biotype         string `json:"biotype"`
	Start           int    `json:"start"` // Genomic start (1-based)
	End             int    `json:"end"`   // Genomic end (1-based, inclusive)
	Exons           []Exon `json:"exons,omitempty"`
	Sequence        string `json:"sequence,omitempty"`         // Spliced transcript sequence
	CodingSequence  string `json:"coding_sequence,omitempty"`  // CDS portion of the sequence
	ProteinSequence string `json:"protein_sequence,omitempty"` // Translation of the CDS
}

// Transcript is a fully materialized isoform. Fields are unexported and set
// once by NewTranscript; the accessor methods satisfy feature.SourceTranscript,
// so a *Transcript can feed any feature loader directly.
type Transcript struct {
	data TranscriptData
}

// NewTranscript seals a TranscriptData into a read-only Transcript. Two
// fields are derived here when the source data does not carry them: the
// transcript-space span of each exon (accumulated from exon lengths in
// transcript order) and the protein sequence (translated from the coding
// sequence).
func NewTranscript(d TranscriptData) *Transcript {
	// The exon slice is copied so deriving spans never writes through to
	// the caller's backing array.
	d.Exons = append([]Exon(nil), d.Exons...)

	offset := 0
	for i := range d.Exons {
		e := &d.Exons[i]
		length := e.End - e.Start + 1
		if e.RelStart == 0 && e.RelEnd == 0 {
			e.RelStart = offset + 1
			e.RelEnd = offset + length
		}
		offset += length
	}

	if d.ProteinSequence == "" && d.CodingSequence != "" {
		d.ProteinSequence = seq.TranslateCDS(d.CodingSequence)
	}

	return &Transcript{data: d}
}

// Data returns a copy of the transcript's serializable form.
func (t *Transcript) Data() TranscriptData {
	d := t.data
	d.Exons = append([]Exon(nil), t.data.Exons...)
	return d
}

// Contig returns the reference sequence name.
func (t *Transcript) Contig() string { return t.data.Contig }

// Strand returns "+" or "-".
func (t *Transcript) Strand() string { return t.data.Strand }

// Biotype returns the transcript biotype (e.g., protein_coding).
func (t *Transcript) Biotype() string { return t.data.Biotype }

// TranscriptID returns the Ensembl transcript ID.
func (t *Transcript) TranscriptID() string { return t.data.TranscriptID }

// TranscriptName returns the transcript symbol (e.g., KRAS-201).
func (t *Transcript) TranscriptName() string { return t.data.TranscriptName }

// GeneID returns the parent gene ID.
func (t *Transcript) GeneID() string { return t.data.GeneID }

// GeneName returns the parent gene symbol.
func (t *Transcript) GeneName() string { return t.data.GeneName }

// ProteinID returns the Ensembl protein ID, or "" for non-coding transcripts.
func (t *Transcript) ProteinID() string { return t.data.ProteinID }

// Start returns the genomic start of the transcript (1-based).
func (t *Transcript) Start() int { return t.data.Start }

// End returns the genomic end of the transcript (1-based, inclusive).
func (t *Transcript) End() int { return t.data.End }

// Sequence returns the full spliced transcript sequence.
func (t *Transcript) Sequence() string { return t.data.Sequence }

// CodingSequence returns the transcript's coding sequence.
func (t *Transcript) CodingSequence() string { return t.data.CodingSequence }

// ProteinSequence returns the transcript's translated sequence.
func (t *Transcript) ProteinSequence() string { return t.data.ProteinSequence }

// Exons returns the transcript's exons in transcript order.
func (t *Transcript) Exons() []Exon {
	return append([]Exon(nil), t.data.Exons...)
}

// ExonCount returns the number of exons.
func (t *Transcript) ExonCount() int { return len(t.data.Exons) }

// ExonByIndex returns the exon with the given 1-based ordinal.
func (t *Transcript) ExonByIndex(index int) (Exon, bool) {
	for _, e := range t.data.Exons {
		if e.Index == index {
			return e, true
		}
	}
	return Exon{}, false
}

// ExonByID returns the exon with the given Ensembl ID.
func (t *Transcript) ExonByID(id string) (Exon, bool) {
	for _, e := range t.data.Exons {
		if e.ID == id {
			return e, true
		}
	}
	return Exon{}, false
}

// IsProteinCoding returns true if the transcript has a coding sequence.
func (t *Transcript) IsProteinCoding() bool {
	return t.data.CodingSequence != ""
}
