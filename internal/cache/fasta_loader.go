package cache

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// FASTALoader loads transcript sequences from GENCODE pc_transcripts FASTA
// files. Each entry holds the full spliced transcript sequence; the CDS span
// within it is announced in the header, which lets the loader serve both the
// transcript sequence and the coding sequence.
type FASTALoader struct {
	path      string
	sequences map[string]string // transcript_id -> full transcript sequence
	cdsRanges map[string][2]int // transcript_id -> [cdsStart, cdsEnd] (1-based from header)
}

// NewFASTALoader creates a new FASTA loader.
func NewFASTALoader(path string) *FASTALoader {
	return &FASTALoader{
		path:      path,
		sequences: make(map[string]string),
		cdsRanges: make(map[string][2]int),
	}
}

// Load parses the FASTA file and stores sequences indexed by transcript ID.
func (l *FASTALoader) Load() error {
	f, err := os.Open(l.path)
	if err != nil {
		return fmt.Errorf("open FASTA file: %w", err)
	}
	defer f.Close()

	var reader io.Reader = f
	if strings.HasSuffix(l.path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return fmt.Errorf("open gzip reader: %w", err)
		}
		defer gz.Close()
		reader = gz
	}

	return l.parseFASTA(reader)
}

// parseFASTA parses FASTA content. GENCODE pc_transcripts headers look like:
// >ENST00000456328.2|ENSG00000290825.1|OTTHUMG...|OTTHUMT...|DDX11L2-202|DDX11L2|459|UTR5:1-200|CDS:201-459|UTR3:460-1657|
func (l *FASTALoader) parseFASTA(reader io.Reader) error {
	scanner := bufio.NewScanner(reader)
	// Increase buffer size for long sequences
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024) // 10MB max line

	var currentID string
	var currentSeq strings.Builder

	for scanner.Scan() {
		line := scanner.Text()

		if strings.HasPrefix(line, ">") {
			if currentID != "" && currentSeq.Len() > 0 {
				l.sequences[currentID] = currentSeq.String()
			}

			currentID = parseFASTAHeader(line)
			if cdsStart, cdsEnd, ok := parseCDSRange(line); ok {
				l.cdsRanges[currentID] = [2]int{cdsStart, cdsEnd}
			}
			currentSeq.Reset()
		} else {
			currentSeq.WriteString(strings.TrimSpace(line))
		}
	}

	if currentID != "" && currentSeq.Len() > 0 {
		l.sequences[currentID] = currentSeq.String()
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan FASTA: %w", err)
	}

	return nil
}

// parseFASTAHeader extracts the transcript ID from a FASTA header. Handles
// the pipe-delimited GENCODE format, the space-delimited Ensembl format, and
// bare IDs.
func parseFASTAHeader(header string) string {
	header = strings.TrimPrefix(header, ">")

	if idx := strings.Index(header, "|"); idx != -1 {
		return stripVersion(header[:idx])
	}
	if idx := strings.Index(header, " "); idx != -1 {
		return stripVersion(header[:idx])
	}
	return stripVersion(header)
}

// parseCDSRange extracts the CDS start and end positions from a GENCODE
// FASTA header field of the form "CDS:201-459". Positions are 1-based
// inclusive within the transcript sequence.
func parseCDSRange(header string) (start, end int, ok bool) {
	for _, field := range strings.Split(header, "|") {
		field = strings.TrimSpace(field)
		if !strings.HasPrefix(field, "CDS:") {
			continue
		}
		parts := strings.SplitN(field[4:], "-", 2)
		if len(parts) != 2 {
			return 0, 0, false
		}
		s, err1 := strconv.Atoi(parts[0])
		e, err2 := strconv.Atoi(parts[1])
		if err1 != nil || err2 != nil {
			return 0, 0, false
		}
		return s, e, true
	}
	return 0, 0, false
}

// Sequence returns the full transcript sequence for a transcript ID, or ""
// if the FASTA has no entry for it. The ID may carry a version suffix.
func (l *FASTALoader) Sequence(transcriptID string) string {
	return l.sequences[stripVersion(transcriptID)]
}

// CodingSequence returns the CDS portion of a transcript's sequence, cut out
// using the CDS range announced in the FASTA header. Returns "" when the
// entry is missing or carries no CDS annotation.
func (l *FASTALoader) CodingSequence(transcriptID string) string {
	id := stripVersion(transcriptID)
	seq, ok := l.sequences[id]
	if !ok {
		return ""
	}
	cds, ok := l.cdsRanges[id]
	if !ok {
		return ""
	}
	start, end := cds[0]-1, cds[1]
	if start < 0 || start >= end || end > len(seq) {
		return ""
	}
	return seq[start:end]
}

// SequenceCount returns the number of loaded sequences.
func (l *FASTALoader) SequenceCount() int {
	return len(l.sequences)
}

// HasSequence checks if a sequence exists for the given transcript ID.
func (l *FASTALoader) HasSequence(transcriptID string) bool {
	_, ok := l.sequences[stripVersion(transcriptID)]
	return ok
}
