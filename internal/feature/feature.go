package feature

// Identity is the (ID, start, end) triple that keys a feature record within
// its kind. It is comparable, so it can be used directly as a map key for
// deduplication.
type Identity struct {
	ID    string
	Start int
	End   int
}

// Feature is the behavior shared by all record kinds.
type Feature interface {
	// Kind reports which record variant this is.
	Kind() Kind
	// Identity returns the record's identity triple.
	Identity() Identity
}

// subseq extracts the 1-based inclusive range [start, end] from seq.
// Coordinates are not bounds-checked: an end beyond the sequence truncates
// the result and a start beyond it yields "". Loaders rely on this
// permissive slicing; they never report a range error.
func subseq(seq string, start, end int) string {
	if start < 1 {
		start = 1
	}
	if end > len(seq) {
		end = len(seq)
	}
	if start > end {
		return ""
	}
	return seq[start-1 : end]
}

// Gene represents a gene's span on its contig. It is the only feature kind
// that carries no sequence.
type Gene struct {
	Contig   string // Chromosome or scaffold name
	Start    int    // Genomic start (1-based)
	End      int    // Genomic end (1-based, inclusive)
	Strand   string // "+" or "-"
	Biotype  string // Gene biotype (e.g., protein_coding)
	GeneID   string // Gene ID (e.g., ENSG00000133703)
	GeneName string // Gene symbol (e.g., KRAS)
}

// LoadGene builds a Gene record from the gene-level attributes of src.
// start and end are genomic coordinates; callers pass a validated pair with
// start <= end.
func LoadGene(src GeneSource, start, end int) Gene {
	return Gene{
		Contig:   src.Contig(),
		Start:    start,
		End:      end,
		Strand:   src.Strand(),
		Biotype:  src.Biotype(),
		GeneID:   src.GeneID(),
		GeneName: src.GeneName(),
	}
}

// Kind returns KindGene.
func (g Gene) Kind() Kind { return KindGene }

// Identity returns the gene ID with the record's coordinates.
func (g Gene) Identity() Identity { return Identity{g.GeneID, g.Start, g.End} }

func (g Gene) String() string {
	return formatRecord("Gene",
		field{"contig", g.Contig},
		field{"start", g.Start},
		field{"end", g.End},
		field{"strand", g.Strand},
		field{"biotype", g.Biotype},
		field{"gene_id", g.GeneID},
		field{"gene_name", g.GeneName},
	)
}

// Transcript represents a span of a spliced transcript. Start and end are
// 1-based inclusive positions in transcript space, counted along the mature
// (exon-joined) sequence.
type Transcript struct {
	Contig         string // Chromosome or scaffold name
	Start          int    // Transcript start (1-based)
	End            int    // Transcript end (1-based, inclusive)
	Strand         string // "+" or "-"
	Biotype        string // Transcript biotype
	TranscriptID   string // Transcript ID (e.g., ENST00000311936)
	TranscriptName string // Transcript symbol (e.g., KRAS-201)
	Seq            string // Transcript sequence slice [start, end]
}

// LoadTranscript builds a Transcript record over the range [start, end] of
// the source's spliced sequence. An end past the sequence truncates Seq
// silently.
func LoadTranscript(src TranscriptSource, start, end int) Transcript {
	return Transcript{
		Contig:         src.Contig(),
		Start:          start,
		End:            end,
		Strand:         src.Strand(),
		Biotype:        src.Biotype(),
		TranscriptID:   src.TranscriptID(),
		TranscriptName: src.TranscriptName(),
		Seq:            subseq(src.Sequence(), start, end),
	}
}

// Kind returns KindTranscript.
func (t Transcript) Kind() Kind { return KindTranscript }

// Identity returns the transcript ID with the record's coordinates.
func (t Transcript) Identity() Identity { return Identity{t.TranscriptID, t.Start, t.End} }

func (t Transcript) String() string {
	return formatRecord("Transcript",
		field{"contig", t.Contig},
		field{"start", t.Start},
		field{"end", t.End},
		field{"strand", t.Strand},
		field{"biotype", t.Biotype},
		field{"transcript_id", t.TranscriptID},
		field{"transcript_name", t.TranscriptName},
		field{"seq", t.Seq},
	)
}

// Exon represents one exon of a transcript. Start and end are 1-based
// inclusive positions in transcript space. Biotype, ExonID and Index are
// supplied by the caller: an exon's own identity is not derivable from the
// source transcript's attributes, and its biotype may legitimately differ
// from the transcript's.
type Exon struct {
	Contig         string // Chromosome or scaffold name
	Start          int    // Exon start in transcript space (1-based)
	End            int    // Exon end in transcript space (1-based, inclusive)
	Strand         string // "+" or "-"
	Biotype        string // Caller-supplied biotype
	ExonID         string // Exon ID (e.g., ENSE00000936617)
	TranscriptID   string // Parent transcript ID
	TranscriptName string // Parent transcript symbol
	Index          int    // Ordinal among the transcript's exons (1-based)
	Seq            string // Transcript sequence slice [start, end]
}

// LoadExon builds an Exon record over the range [start, end] of the
// source's spliced sequence. The stored biotype is the one passed in, never
// the source transcript's own.
func LoadExon(src ExonSource, start, end int, biotype, exonID string, index int) Exon {
	return Exon{
		Contig:         src.Contig(),
		Start:          start,
		End:            end,
		Strand:         src.Strand(),
		Biotype:        biotype,
		ExonID:         exonID,
		TranscriptID:   src.TranscriptID(),
		TranscriptName: src.TranscriptName(),
		Index:          index,
		Seq:            subseq(src.Sequence(), start, end),
	}
}

// Kind returns KindExon.
func (e Exon) Kind() Kind { return KindExon }

// Identity returns the exon ID with the record's coordinates. The parent
// transcript ID is not part of the identity.
func (e Exon) Identity() Identity { return Identity{e.ExonID, e.Start, e.End} }

func (e Exon) String() string {
	return formatRecord("Exon",
		field{"contig", e.Contig},
		field{"start", e.Start},
		field{"end", e.End},
		field{"strand", e.Strand},
		field{"biotype", e.Biotype},
		field{"exon_id", e.ExonID},
		field{"transcript_id", e.TranscriptID},
		field{"transcript_name", e.TranscriptName},
		field{"index", e.Index},
		field{"seq", e.Seq},
	)
}

// CDS represents a span of a transcript's coding sequence. Start and end
// are 1-based inclusive positions in CDS space, where position 1 is the A
// of the start codon.
type CDS struct {
	Contig         string // Chromosome or scaffold name
	Start          int    // CDS start (1-based)
	End            int    // CDS end (1-based, inclusive)
	Strand         string // "+" or "-"
	Biotype        string // Transcript biotype
	TranscriptID   string // Parent transcript ID
	TranscriptName string // Parent transcript symbol
	Seq            string // Coding sequence slice [start, end]
}

// LoadCDS builds a CDS record over the range [start, end] of the source's
// coding sequence. Unlike the exon loader, the biotype is read from the
// source transcript.
func LoadCDS(src CDSSource, start, end int) CDS {
	return CDS{
		Contig:         src.Contig(),
		Start:          start,
		End:            end,
		Strand:         src.Strand(),
		Biotype:        src.Biotype(),
		TranscriptID:   src.TranscriptID(),
		TranscriptName: src.TranscriptName(),
		Seq:            subseq(src.CodingSequence(), start, end),
	}
}

// Kind returns KindCDS.
func (c CDS) Kind() Kind { return KindCDS }

// Identity returns the parent transcript ID with the record's coordinates.
// A CDS has no ID of its own.
func (c CDS) Identity() Identity { return Identity{c.TranscriptID, c.Start, c.End} }

func (c CDS) String() string {
	return formatRecord("CDS",
		field{"contig", c.Contig},
		field{"start", c.Start},
		field{"end", c.End},
		field{"strand", c.Strand},
		field{"biotype", c.Biotype},
		field{"transcript_id", c.TranscriptID},
		field{"transcript_name", c.TranscriptName},
		field{"seq", c.Seq},
	)
}

// Protein represents a span of a transcript's translation. Start and end
// are 1-based inclusive amino acid positions. Protein has no custom debug
// form; default struct formatting is used for it.
type Protein struct {
	Contig    string // Chromosome or scaffold name
	Start     int    // Protein start (1-based)
	End       int    // Protein end (1-based, inclusive)
	Strand    string // "+" or "-"
	Biotype   string // Transcript biotype
	ProteinID string // Protein ID (e.g., ENSP00000308495)
	Seq       string // Protein sequence slice [start, end]
}

// LoadProtein builds a Protein record over the range [start, end] of the
// source's translated sequence.
func LoadProtein(src ProteinSource, start, end int) Protein {
	return Protein{
		Contig:    src.Contig(),
		Start:     start,
		End:       end,
		Strand:    src.Strand(),
		Biotype:   src.Biotype(),
		ProteinID: src.ProteinID(),
		Seq:       subseq(src.ProteinSequence(), start, end),
	}
}

// Kind returns KindProtein.
func (p Protein) Kind() Kind { return KindProtein }

// Identity returns the protein ID with the record's coordinates.
func (p Protein) Identity() Identity { return Identity{p.ProteinID, p.Start, p.End} }
