package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mattdoug604/ensembl-map/internal/extract"
)

func newInfoCmd() *cobra.Command {
	var transcriptsJSON string
	var useREST bool

	cmd := &cobra.Command{
		Use:   "info <transcript-id>",
		Short: "Show a transcript's identifiers, span and exon table",
		Long: `Show the identifiers, genomic span, biotype, sequences and exon table of
a transcript: the data needed to compose feature extractions against it.`,
		Example: `  ensembl-map info ENST00000311936
  ensembl-map info --transcripts-json custom.json ENST00000311936`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(args[0], transcriptsJSON, useREST)
		},
	}

	cmd.Flags().StringVar(&transcriptsJSON, "transcripts-json", "", "Load transcripts from a JSON file instead of GENCODE data")
	cmd.Flags().BoolVar(&useREST, "rest", false, "Fetch unknown transcripts from the Ensembl REST API")

	return cmd
}

func runInfo(transcriptID, transcriptsJSON string, useREST bool) error {
	assembly := viper.GetString("assembly")

	var lookup extract.TranscriptLookup
	if useREST {
		lookup = newRESTLookup(cacheOrEmpty(assembly, transcriptsJSON), assembly)
	} else {
		c, err := loadTranscripts(assembly, transcriptsJSON)
		if err != nil {
			return err
		}
		lookup = c
	}

	t, ok := lookup.GetTranscript(transcriptID)
	if !ok {
		return fmt.Errorf("unknown transcript %q", transcriptID)
	}

	fmt.Printf("Transcript:   %s (%s)\n", t.TranscriptID(), t.TranscriptName())
	fmt.Printf("Gene:         %s (%s)\n", t.GeneID(), t.GeneName())
	if t.ProteinID() != "" {
		fmt.Printf("Protein:      %s\n", t.ProteinID())
	}
	fmt.Printf("Location:     %s:%d-%d (%s)\n", t.Contig(), t.Start(), t.End(), t.Strand())
	fmt.Printf("Biotype:      %s\n", t.Biotype())
	fmt.Printf("Sequence:     %d bp", len(t.Sequence()))
	if t.IsProteinCoding() {
		fmt.Printf(", CDS %d bp, protein %d aa", len(t.CodingSequence()), len(t.ProteinSequence()))
	}
	fmt.Println()

	exons := t.Exons()
	if len(exons) == 0 {
		return nil
	}

	fmt.Printf("Exons:        %d\n", len(exons))
	fmt.Println("  index  exon_id            genomic              transcript")
	for _, e := range exons {
		fmt.Printf("  %-5d  %-17s  %d-%d  %d-%d\n",
			e.Index, e.ID, e.Start, e.End, e.RelStart, e.RelEnd)
	}

	return nil
}
