// Package output provides feature record writers.
package output

import (
	"fmt"

	"github.com/mattdoug604/ensembl-map/internal/feature"
)

// Record is the flattened, format-neutral form of a feature record, shared
// by the tab and JSON writers. The ID field holds the feature's own
// identifier (gene ID, transcript ID, exon ID or protein ID, matching the
// identity tuple); parent identifiers are carried separately.
type Record struct {
	Type           string `json:"type"`
	ID             string `json:"id"`
	Name           string `json:"name,omitempty"`
	Contig         string `json:"contig"`
	Start          int    `json:"start"`
	End            int    `json:"end"`
	Strand         string `json:"strand"`
	Biotype        string `json:"biotype,omitempty"`
	TranscriptID   string `json:"transcript_id,omitempty"`
	TranscriptName string `json:"transcript_name,omitempty"`
	Index          int    `json:"index,omitempty"`
	Seq            string `json:"seq,omitempty"`
}

// NewRecord flattens a feature record for output.
func NewRecord(f feature.Feature) (Record, error) {
	switch v := f.(type) {
	case feature.Gene:
		return Record{
			Type:   string(v.Kind()),
			ID:     v.GeneID,
			Name:   v.GeneName,
			Contig: v.Contig, Start: v.Start, End: v.End,
			Strand: v.Strand, Biotype: v.Biotype,
		}, nil
	case feature.Transcript:
		return Record{
			Type:   string(v.Kind()),
			ID:     v.TranscriptID,
			Name:   v.TranscriptName,
			Contig: v.Contig, Start: v.Start, End: v.End,
			Strand: v.Strand, Biotype: v.Biotype,
			Seq: v.Seq,
		}, nil
	case feature.Exon:
		return Record{
			Type:   string(v.Kind()),
			ID:     v.ExonID,
			Contig: v.Contig, Start: v.Start, End: v.End,
			Strand: v.Strand, Biotype: v.Biotype,
			TranscriptID: v.TranscriptID, TranscriptName: v.TranscriptName,
			Index: v.Index,
			Seq:   v.Seq,
		}, nil
	case feature.CDS:
		return Record{
			Type:   string(v.Kind()),
			ID:     v.TranscriptID,
			Contig: v.Contig, Start: v.Start, End: v.End,
			Strand: v.Strand, Biotype: v.Biotype,
			TranscriptID: v.TranscriptID, TranscriptName: v.TranscriptName,
			Seq: v.Seq,
		}, nil
	case feature.Protein:
		return Record{
			Type:   string(v.Kind()),
			ID:     v.ProteinID,
			Contig: v.Contig, Start: v.Start, End: v.End,
			Strand: v.Strand, Biotype: v.Biotype,
			Seq: v.Seq,
		}, nil
	}
	return Record{}, fmt.Errorf("unsupported feature record %T", f)
}
