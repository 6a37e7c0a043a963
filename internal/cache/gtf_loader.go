package cache

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// GTFLoader loads transcript annotations from GENCODE GTF files.
type GTFLoader struct {
	path string
}

// NewGTFLoader creates a new GTF loader.
func NewGTFLoader(path string) *GTFLoader {
	return &GTFLoader{path: path}
}

// Load parses the GTF file and adds all transcripts to the cache. Transcripts
// loaded this way carry no sequences; use GENCODELoader to attach them from
// the companion FASTA file.
func (l *GTFLoader) Load(c *Cache) error {
	data, err := l.Parse()
	if err != nil {
		return err
	}
	for _, d := range data {
		c.AddTranscript(NewTranscript(*d))
	}
	return nil
}

// Parse reads the GTF file and returns the assembled transcript data keyed by
// transcript ID, leaving the caller free to attach sequences before sealing.
func (l *GTFLoader) Parse() (map[string]*TranscriptData, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open GTF file: %w", err)
	}
	defer f.Close()

	var reader io.Reader = f
	if strings.HasSuffix(l.path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("open gzip reader: %w", err)
		}
		defer gz.Close()
		reader = gz
	}

	return l.parseGTF(reader)
}

// gtfFeature represents a parsed GTF line.
type gtfFeature struct {
	chrom       string
	source      string
	featureType string
	start       int
	end         int
	strand      string
	attributes  map[string]string
}

// parseGTF parses GTF content and assembles transcript data.
func (l *GTFLoader) parseGTF(reader io.Reader) (map[string]*TranscriptData, error) {
	scanner := bufio.NewScanner(reader)
	// Increase buffer size for long lines
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	transcripts := make(map[string]*TranscriptData)
	exonsByTranscript := make(map[string][]Exon)

	for scanner.Scan() {
		line := scanner.Text()

		// Skip comments and empty lines
		if strings.HasPrefix(line, "#") || line == "" {
			continue
		}

		feat, err := l.parseLine(line)
		if err != nil {
			continue // Skip malformed lines
		}

		transcriptID := stripVersion(feat.attributes["transcript_id"])
		if transcriptID == "" {
			continue
		}

		switch feat.featureType {
		case "transcript":
			transcripts[transcriptID] = &TranscriptData{
				TranscriptID:   transcriptID,
				TranscriptName: feat.attributes["transcript_name"],
				GeneID:         stripVersion(feat.attributes["gene_id"]),
				GeneName:       feat.attributes["gene_name"],
				Contig:         feat.chrom,
				Strand:         feat.strand,
				Biotype:        feat.attributes["transcript_type"],
				Start:          feat.start,
				End:            feat.end,
			}

		case "exon":
			index, _ := strconv.Atoi(feat.attributes["exon_number"])
			exonsByTranscript[transcriptID] = append(exonsByTranscript[transcriptID], Exon{
				ID:    stripVersion(feat.attributes["exon_id"]),
				Index: index,
				Start: feat.start,
				End:   feat.end,
			})

		case "CDS":
			// The protein ID only appears on CDS (and start/stop codon) lines.
			if t, ok := transcripts[transcriptID]; ok && t.ProteinID == "" {
				t.ProteinID = stripVersion(feat.attributes["protein_id"])
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan GTF: %w", err)
	}

	// Attach exons in transcript order. GENCODE numbers exons 5' to 3', so
	// sorting by exon_number gives transcript order on both strands.
	for id, t := range transcripts {
		exons := exonsByTranscript[id]
		sort.Slice(exons, func(i, j int) bool {
			return exons[i].Index < exons[j].Index
		})
		t.Exons = exons
	}

	return transcripts, nil
}

// parseLine parses a single GTF line.
func (l *GTFLoader) parseLine(line string) (*gtfFeature, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < 9 {
		return nil, fmt.Errorf("invalid GTF line: expected 9 fields, got %d", len(fields))
	}

	start, err := strconv.Atoi(fields[3])
	if err != nil {
		return nil, fmt.Errorf("parse start: %w", err)
	}

	end, err := strconv.Atoi(fields[4])
	if err != nil {
		return nil, fmt.Errorf("parse end: %w", err)
	}

	return &gtfFeature{
		chrom:       normalizeChrom(fields[0]),
		source:      fields[1],
		featureType: fields[2],
		start:       start,
		end:         end,
		strand:      fields[6],
		attributes:  parseAttributes(fields[8]),
	}, nil
}

// parseAttributes parses the GTF attribute column.
// Format: key "value"; key "value"; ...
func parseAttributes(attrStr string) map[string]string {
	attrs := make(map[string]string)

	for _, part := range strings.Split(attrStr, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		idx := strings.Index(part, " ")
		if idx == -1 {
			continue
		}

		key := part[:idx]
		value := strings.TrimSpace(part[idx+1:])
		value = strings.Trim(value, "\"")
		attrs[key] = value
	}

	return attrs
}

// stripVersion removes the version suffix from an Ensembl ID.
// e.g., "ENST00000456328.2" -> "ENST00000456328"
func stripVersion(id string) string {
	if idx := strings.LastIndex(id, "."); idx != -1 {
		return id[:idx]
	}
	return id
}

// normalizeChrom normalizes chromosome names by removing the "chr" prefix,
// for consistency between GENCODE ("chr12") and Ensembl ("12") naming.
func normalizeChrom(chrom string) string {
	if strings.HasPrefix(chrom, "chr") {
		return chrom[3:]
	}
	return chrom
}

// GENCODELoader combines the GTF and FASTA loaders into a complete provider:
// annotations from the GTF, transcript and coding sequences from the FASTA,
// protein sequences by translation.
type GENCODELoader struct {
	gtfPath   string
	fastaPath string
}

// NewGENCODELoader creates a loader for GENCODE GTF + FASTA files. An empty
// fastaPath loads annotations only.
func NewGENCODELoader(gtfPath, fastaPath string) *GENCODELoader {
	return &GENCODELoader{gtfPath: gtfPath, fastaPath: fastaPath}
}

// Load assembles transcripts from both source files into the cache.
func (l *GENCODELoader) Load(c *Cache) error {
	data, err := NewGTFLoader(l.gtfPath).Parse()
	if err != nil {
		return fmt.Errorf("load GTF: %w", err)
	}

	if l.fastaPath != "" {
		fasta := NewFASTALoader(l.fastaPath)
		if err := fasta.Load(); err != nil {
			return fmt.Errorf("load FASTA: %w", err)
		}
		for id, t := range data {
			t.Sequence = fasta.Sequence(id)
			t.CodingSequence = fasta.CodingSequence(id)
		}
	}

	for _, t := range data {
		c.AddTranscript(NewTranscript(*t))
	}
	return nil
}
