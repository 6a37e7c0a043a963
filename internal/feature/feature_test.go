package feature

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeSource is a minimal SourceTranscript for loader tests, populated with
// KRAS-like values.
type fakeSource struct {
	contig         string
	strand         string
	biotype        string
	geneID         string
	geneName       string
	transcriptID   string
	transcriptName string
	proteinID      string
	seq            string
	cds            string
	protein        string
}

func (s fakeSource) Contig() string          { return s.contig }
func (s fakeSource) Strand() string          { return s.strand }
func (s fakeSource) Biotype() string         { return s.biotype }
func (s fakeSource) GeneID() string          { return s.geneID }
func (s fakeSource) GeneName() string        { return s.geneName }
func (s fakeSource) TranscriptID() string    { return s.transcriptID }
func (s fakeSource) TranscriptName() string  { return s.transcriptName }
func (s fakeSource) ProteinID() string       { return s.proteinID }
func (s fakeSource) Sequence() string        { return s.seq }
func (s fakeSource) CodingSequence() string  { return s.cds }
func (s fakeSource) ProteinSequence() string { return s.protein }

func krasSource() fakeSource {
	return fakeSource{
		contig:         "12",
		strand:         "-",
		biotype:        "protein_coding",
		geneID:         "ENSG00000133703",
		geneName:       "KRAS",
		transcriptID:   "ENST00000311936",
		transcriptName: "KRAS-201",
		proteinID:      "ENSP00000308495",
		seq:            "GGGGATGCCCTAATTTT",
		cds:            "ATGCCCTAA",
		protein:        "MP",
	}
}

func TestSubseq(t *testing.T) {
	tests := []struct {
		name  string
		seq   string
		start int
		end   int
		want  string
	}{
		{"first codon", "ATGCCCTAA", 1, 3, "ATG"},
		{"interior range", "ATGCCCTAA", 4, 9, "CCCTAA"},
		{"single base", "ATGCCCTAA", 3, 3, "G"},
		{"whole sequence", "ATGCCCTAA", 1, 9, "ATGCCCTAA"},
		{"end past sequence truncates", "ATGCCCTAA", 4, 100, "CCCTAA"},
		{"start past sequence yields empty", "ATGCCCTAA", 50, 60, ""},
		{"start at length", "ATGCCCTAA", 9, 20, "A"},
		{"empty sequence", "", 1, 10, ""},
		{"start below one clamped", "ATGCCCTAA", 0, 3, "ATG"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := subseq(tt.seq, tt.start, tt.end)
			if got != tt.want {
				t.Errorf("subseq(%q, %d, %d) = %q, want %q", tt.seq, tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestLoadGene(t *testing.T) {
	src := krasSource()
	g := LoadGene(src, 25205246, 25250929)

	assert.Equal(t, "12", g.Contig)
	assert.Equal(t, 25205246, g.Start)
	assert.Equal(t, 25250929, g.End)
	assert.Equal(t, "-", g.Strand)
	assert.Equal(t, "protein_coding", g.Biotype)
	assert.Equal(t, "ENSG00000133703", g.GeneID)
	assert.Equal(t, "KRAS", g.GeneName)

	assert.Equal(t, KindGene, g.Kind())
	assert.Equal(t, Identity{"ENSG00000133703", 25205246, 25250929}, g.Identity())
}

func TestLoadTranscript(t *testing.T) {
	src := krasSource()
	tr := LoadTranscript(src, 5, 7)

	assert.Equal(t, "12", tr.Contig)
	assert.Equal(t, 5, tr.Start)
	assert.Equal(t, 7, tr.End)
	assert.Equal(t, "ENST00000311936", tr.TranscriptID)
	assert.Equal(t, "KRAS-201", tr.TranscriptName)
	assert.Equal(t, "protein_coding", tr.Biotype)
	assert.Equal(t, "ATG", tr.Seq)

	assert.Equal(t, KindTranscript, tr.Kind())
	assert.Equal(t, Identity{"ENST00000311936", 5, 7}, tr.Identity())
}

func TestLoadTranscript_TruncatesSilently(t *testing.T) {
	src := krasSource()

	// End far past the sequence: Seq is the suffix from start onward.
	tr := LoadTranscript(src, 5, 100000)
	assert.Equal(t, "ATGCCCTAATTTT", tr.Seq)
	assert.Equal(t, 100000, tr.End, "coordinates are stored as given, not clamped")

	// Start past the sequence: Seq is empty, still no error.
	tr = LoadTranscript(src, 500, 600)
	assert.Equal(t, "", tr.Seq)
}

func TestLoadExon(t *testing.T) {
	src := krasSource()

	// The biotype is the caller's, even when it disagrees with the source.
	e := LoadExon(src, 2, 5, "lncRNA", "ENSE00000936617", 2)

	assert.Equal(t, "12", e.Contig)
	assert.Equal(t, 2, e.Start)
	assert.Equal(t, 5, e.End)
	assert.Equal(t, "lncRNA", e.Biotype)
	assert.Equal(t, "ENSE00000936617", e.ExonID)
	assert.Equal(t, "ENST00000311936", e.TranscriptID)
	assert.Equal(t, "KRAS-201", e.TranscriptName)
	assert.Equal(t, 2, e.Index)
	assert.Equal(t, "GGGA", e.Seq)

	assert.Equal(t, KindExon, e.Kind())
	assert.Equal(t, Identity{"ENSE00000936617", 2, 5}, e.Identity(),
		"exon identity keys on the exon ID, not the transcript ID")
}

func TestLoadCDS(t *testing.T) {
	src := krasSource()

	first := LoadCDS(src, 1, 3)
	assert.Equal(t, "ATG", first.Seq)
	assert.Equal(t, "protein_coding", first.Biotype, "CDS biotype comes from the source")

	rest := LoadCDS(src, 4, 9)
	assert.Equal(t, "CCCTAA", rest.Seq)

	assert.Equal(t, KindCDS, first.Kind())
	assert.Equal(t, Identity{"ENST00000311936", 1, 3}, first.Identity(),
		"CDS identity keys on the parent transcript ID")
}

func TestLoadProtein(t *testing.T) {
	src := krasSource()
	p := LoadProtein(src, 1, 1)

	assert.Equal(t, "M", p.Seq)
	assert.Equal(t, "ENSP00000308495", p.ProteinID)
	assert.Equal(t, "protein_coding", p.Biotype)

	assert.Equal(t, KindProtein, p.Kind())
	assert.Equal(t, Identity{"ENSP00000308495", 1, 1}, p.Identity())
}

func TestIdentityDeduplication(t *testing.T) {
	src := krasSource()

	// Loading the same range twice yields the same identity, so identities
	// work as map keys for deduplication.
	seen := make(map[Identity]bool)
	seen[LoadCDS(src, 1, 3).Identity()] = true
	seen[LoadCDS(src, 1, 3).Identity()] = true
	seen[LoadCDS(src, 4, 9).Identity()] = true

	assert.Len(t, seen, 2)
}

func TestRecordsImplementFeature(t *testing.T) {
	src := krasSource()

	records := []Feature{
		LoadGene(src, 1, 10),
		LoadTranscript(src, 1, 10),
		LoadExon(src, 1, 10, "protein_coding", "ENSE00000936617", 1),
		LoadCDS(src, 1, 3),
		LoadProtein(src, 1, 2),
	}

	wantKinds := []Kind{KindGene, KindTranscript, KindExon, KindCDS, KindProtein}
	for i, r := range records {
		assert.Equal(t, wantKinds[i], r.Kind())
	}
}
