package feature

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordString(t *testing.T) {
	src := krasSource()

	tests := []struct {
		name string
		rec  fmt.Stringer
		want string
	}{
		{
			"gene",
			LoadGene(src, 25205246, 25250929),
			"Gene(contig=12, start=25205246, end=25250929, strand=-, biotype=protein_coding, gene_id=ENSG00000133703, gene_name=KRAS)",
		},
		{
			"transcript with short seq",
			LoadTranscript(src, 5, 7),
			"Transcript(contig=12, start=5, end=7, strand=-, biotype=protein_coding, transcript_id=ENST00000311936, transcript_name=KRAS-201, seq=ATG)",
		},
		{
			"exon abbreviates long seq",
			LoadExon(src, 2, 5, "lncRNA", "ENSE00000936617", 2),
			"Exon(contig=12, start=2, end=5, strand=-, biotype=lncRNA, exon_id=ENSE00000936617, transcript_id=ENST00000311936, transcript_name=KRAS-201, index=2, seq=GGG...)",
		},
		{
			"cds with seq at preview limit",
			LoadCDS(src, 1, 3),
			"CDS(contig=12, start=1, end=3, strand=-, biotype=protein_coding, transcript_id=ENST00000311936, transcript_name=KRAS-201, seq=ATG)",
		},
		{
			"cds abbreviates long seq",
			LoadCDS(src, 1, 9),
			"CDS(contig=12, start=1, end=9, strand=-, biotype=protein_coding, transcript_id=ENST00000311936, transcript_name=KRAS-201, seq=ATG...)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rec.String())
		})
	}
}

func TestStringDoesNotModifySeq(t *testing.T) {
	src := krasSource()
	c := LoadCDS(src, 1, 9)

	_ = c.String()
	assert.Equal(t, "ATGCCCTAA", c.Seq, "abbreviation is display-only")
}

func TestProteinHasNoStringer(t *testing.T) {
	// Protein deliberately has no custom debug form.
	_, ok := any(Protein{}).(fmt.Stringer)
	assert.False(t, ok)
}
