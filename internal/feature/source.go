// Package feature defines the genomic feature records (gene, transcript,
// exon, CDS, protein) and the loaders that build them from a source
// transcript plus a 1-based inclusive coordinate pair.
package feature

// GeneSource provides the transcript attributes read by the gene loader.
type GeneSource interface {
	Contig() string
	Strand() string
	Biotype() string
	GeneID() string
	GeneName() string
}

// TranscriptSource provides the attributes read by the transcript loader.
// Sequence returns the full spliced transcript sequence; the loader slices
// it to the requested range.
type TranscriptSource interface {
	Contig() string
	Strand() string
	Biotype() string
	TranscriptID() string
	TranscriptName() string
	Sequence() string
}

// ExonSource provides the attributes read by the exon loader. The exon
// biotype is supplied by the caller rather than read from the source, so it
// is deliberately absent here.
type ExonSource interface {
	Contig() string
	Strand() string
	TranscriptID() string
	TranscriptName() string
	Sequence() string
}

// CDSSource provides the attributes read by the CDS loader. CodingSequence
// returns the full coding sequence of the transcript.
type CDSSource interface {
	Contig() string
	Strand() string
	Biotype() string
	TranscriptID() string
	TranscriptName() string
	CodingSequence() string
}

// ProteinSource provides the attributes read by the protein loader.
// ProteinSequence returns the full translated sequence.
type ProteinSource interface {
	Contig() string
	Strand() string
	Biotype() string
	ProteinID() string
	ProteinSequence() string
}

// SourceTranscript is the union of the per-kind source interfaces. A value
// implementing it can feed any loader, which is what the dynamic factory
// path requires.
type SourceTranscript interface {
	GeneSource
	TranscriptSource
	ExonSource
	CDSSource
	ProteinSource
}
