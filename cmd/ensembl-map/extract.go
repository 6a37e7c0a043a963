package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mattdoug604/ensembl-map/internal/extract"
	"github.com/mattdoug604/ensembl-map/internal/feature"
	"github.com/mattdoug604/ensembl-map/internal/output"
	"github.com/mattdoug604/ensembl-map/internal/store"
)

type extractOptions struct {
	specs           []string
	batchFile       string
	featureType     string
	transcriptID    string
	start           int
	end             int
	biotype         string
	exonID          string
	exonIndex       int
	format          string
	outputFile      string
	saveTo          string
	transcriptsJSON string
	useREST         bool
	workers         int
}

func newExtractCmd() *cobra.Command {
	opts := &extractOptions{}

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Build feature records from transcripts",
		Long: `Build feature records from a coordinate pair and a source transcript.
Requests can be given as compact specs, as explicit flags, or as a
tab-separated batch file.`,
		Example: `  # Compact specs (kind:transcript:start-end)
  ensembl-map extract --spec cds:ENST00000311936:1-9
  ensembl-map extract --spec exon:ENST00000311936:2

  # Explicit flags
  ensembl-map extract --type cds --transcript ENST00000311936 --start 1 --end 9

  # Batch file (use '-' for stdin)
  ensembl-map extract --batch requests.tsv --format json -o features.jsonl`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(opts)
		},
	}

	cmd.Flags().StringArrayVar(&opts.specs, "spec", nil, "Feature spec kind:transcript:start-end[:biotype:exonID:index] (repeatable)")
	cmd.Flags().StringVar(&opts.batchFile, "batch", "", "Tab-separated batch file of requests ('-' for stdin)")
	cmd.Flags().StringVar(&opts.featureType, "type", "", "Feature type: cds, exon, gene, protein, transcript")
	cmd.Flags().StringVar(&opts.transcriptID, "transcript", "", "Source transcript ID")
	cmd.Flags().IntVar(&opts.start, "start", 0, "Start position (1-based, inclusive)")
	cmd.Flags().IntVar(&opts.end, "end", 0, "End position (1-based, inclusive)")
	cmd.Flags().StringVar(&opts.biotype, "biotype", "", "Exon biotype override (default: transcript's own)")
	cmd.Flags().StringVar(&opts.exonID, "exon-id", "", "Exon ID (exon requests)")
	cmd.Flags().IntVar(&opts.exonIndex, "exon-index", 0, "1-based exon ordinal (exon requests)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "tab", "Output format: tab, json")
	cmd.Flags().StringVarP(&opts.outputFile, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVar(&opts.saveTo, "save", "", "Also save records to a DuckDB database at this path")
	cmd.Flags().StringVar(&opts.transcriptsJSON, "transcripts-json", "", "Load transcripts from a JSON file instead of GENCODE data")
	cmd.Flags().BoolVar(&opts.useREST, "rest", false, "Fetch unknown transcripts from the Ensembl REST API")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "Worker count for batch mode (0 = all CPUs)")

	return cmd
}

func runExtract(opts *extractOptions) error {
	requests, err := gatherRequests(opts)
	if err != nil {
		return err
	}
	if len(requests) == 0 && opts.batchFile == "" {
		return fmt.Errorf("nothing to extract: give --spec, --batch, or --type with --transcript")
	}

	assembly := viper.GetString("assembly")

	var lookup extract.TranscriptLookup
	if opts.useREST {
		// REST mode works without local GENCODE data; whatever local
		// transcripts exist still take precedence.
		c := cacheOrEmpty(assembly, opts.transcriptsJSON)
		lookup = newRESTLookup(c, assembly)
	} else {
		c, err := loadTranscripts(assembly, opts.transcriptsJSON)
		if err != nil {
			return err
		}
		lookup = c
	}

	extractor := extract.NewExtractor(lookup)
	extractor.SetLogger(logger)

	out := os.Stdout
	if opts.outputFile != "" {
		out, err = os.Create(opts.outputFile)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer out.Close()
	}

	var writer extract.FeatureWriter
	switch opts.format {
	case "tab":
		writer = output.NewTabWriter(out)
	case "json":
		writer = output.NewJSONWriter(out)
	default:
		return fmt.Errorf("unknown output format %q", opts.format)
	}

	var keep *storeWriter
	if opts.saveTo != "" {
		s, err := store.Open(opts.saveTo)
		if err != nil {
			return err
		}
		defer s.Close()
		keep = &storeWriter{next: writer, store: s}
		writer = keep
	}

	if err := writer.WriteHeader(); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	if opts.batchFile != "" {
		parser, err := extract.NewBatchParser(opts.batchFile)
		if err != nil {
			return err
		}
		defer parser.Close()
		return extractor.ExtractAll(parser, writer, opts.workers)
	}

	// Direct requests fail loudly: a bad spec or unknown transcript on the
	// command line is a caller mistake, not a batch row to skip.
	for _, req := range requests {
		feat, err := extractor.Extract(req)
		if err != nil {
			return err
		}
		if err := writer.Write(feat); err != nil {
			return fmt.Errorf("write feature: %w", err)
		}
	}
	return writer.Flush()
}

// gatherRequests collects the direct (non-batch) requests from flags.
func gatherRequests(opts *extractOptions) ([]extract.Request, error) {
	var requests []extract.Request

	for _, spec := range opts.specs {
		req, err := extract.ParseSpec(spec)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}

	if opts.featureType != "" || opts.transcriptID != "" {
		if opts.featureType == "" || opts.transcriptID == "" {
			return nil, fmt.Errorf("--type and --transcript must be given together")
		}
		// Same coordinate rule as specs and batch rows: a pair may be
		// omitted entirely (exon shorthand) but never inverted.
		if opts.start != 0 || opts.end != 0 {
			if opts.start < 1 {
				return nil, fmt.Errorf("--start must be >= 1, got %d", opts.start)
			}
			if opts.start > opts.end {
				return nil, fmt.Errorf("--start %d is greater than --end %d", opts.start, opts.end)
			}
		}
		requests = append(requests, extract.Request{
			Type:         opts.featureType,
			TranscriptID: opts.transcriptID,
			Start:        opts.start,
			End:          opts.end,
			Biotype:      opts.biotype,
			ExonID:       opts.exonID,
			ExonIndex:    opts.exonIndex,
		})
	}

	return requests, nil
}

// storeWriter tees written records into a DuckDB store before forwarding
// them to the next writer.
type storeWriter struct {
	next  extract.FeatureWriter
	store *store.Store
	feats []feature.Feature
}

func (w *storeWriter) WriteHeader() error { return w.next.WriteHeader() }

func (w *storeWriter) Write(f feature.Feature) error {
	w.feats = append(w.feats, f)
	return w.next.Write(f)
}

func (w *storeWriter) Flush() error {
	if err := w.store.WriteFeatures(w.feats); err != nil {
		return fmt.Errorf("save features: %w", err)
	}
	w.feats = nil
	return w.next.Flush()
}
