// Package extract provides the pipeline that turns feature requests into
// feature records: request parsing, transcript lookup, loader dispatch, and
// parallel batch processing.
package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Request describes one feature record to build: a feature type tag, the
// transcript to build it from, and a coordinate pair. The exon-only fields
// are ignored for other feature types.
type Request struct {
	Type         string // Feature type tag: cds, exon, gene, protein, transcript
	TranscriptID string // Source transcript ID
	Start        int    // 1-based inclusive start
	End          int    // 1-based inclusive end
	Biotype      string // Exon only: overriding biotype ("" = transcript's own)
	ExonID       string // Exon only: exon ID ("" = resolve from ExonIndex)
	ExonIndex    int    // Exon only: 1-based ordinal among the transcript's exons
	Line         int    // Batch input only: source line number (0 = not from a batch file)
}

// Regexes for request spec parsing.
var (
	// Full form: cds:ENST00000311936:1-9
	// or with exon fields: exon:ENST00000311936:180-301:protein_coding:ENSE00000936617:2
	reSpecFull = regexp.MustCompile(`^([a-z]+):([A-Za-z0-9_.\-]+):(\d+)-(\d+)(?::([A-Za-z0-9_]*):([A-Za-z0-9_.]*):(\d+))?$`)
	// Exon shorthand by ordinal: exon:ENST00000311936:2
	// (coordinates and exon ID are resolved from the transcript's exon table)
	reSpecExonIndex = regexp.MustCompile(`^exon:([A-Za-z0-9_.\-]+):(\d+)$`)
)

// ParseSpec parses a compact request spec of the form
// kind:transcript:start-end[:biotype:exonID:index], or the exon shorthand
// kind:transcript:index. Coordinate pairs are validated here, at the edge,
// so the feature loaders downstream can trust their start <= end
// precondition.
func ParseSpec(input string) (Request, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return Request{}, fmt.Errorf("empty feature spec")
	}

	if req, ok := parseSpecFull(input); ok {
		if req.Start < 1 {
			return Request{}, fmt.Errorf("invalid feature spec %q: start must be >= 1, got %d", input, req.Start)
		}
		if req.Start > req.End {
			return Request{}, fmt.Errorf("invalid feature spec %q: start %d is greater than end %d", input, req.Start, req.End)
		}
		return req, nil
	}

	if req, ok := parseSpecExonIndex(input); ok {
		return req, nil
	}

	return Request{}, fmt.Errorf("cannot parse feature spec %q (expected kind:transcript:start-end[:biotype:exonID:index])", input)
}

func parseSpecFull(input string) (Request, bool) {
	m := reSpecFull.FindStringSubmatch(input)
	if m == nil {
		return Request{}, false
	}

	start, err := strconv.Atoi(m[3])
	if err != nil {
		return Request{}, false
	}
	end, err := strconv.Atoi(m[4])
	if err != nil {
		return Request{}, false
	}

	req := Request{
		Type:         m[1],
		TranscriptID: m[2],
		Start:        start,
		End:          end,
		Biotype:      m[5],
		ExonID:       m[6],
	}
	if m[7] != "" {
		index, err := strconv.Atoi(m[7])
		if err != nil {
			return Request{}, false
		}
		req.ExonIndex = index
	}
	return req, true
}

func parseSpecExonIndex(input string) (Request, bool) {
	m := reSpecExonIndex.FindStringSubmatch(input)
	if m == nil {
		return Request{}, false
	}
	index, err := strconv.Atoi(m[2])
	if err != nil || index < 1 {
		return Request{}, false
	}
	return Request{
		Type:         "exon",
		TranscriptID: m[1],
		ExonIndex:    index,
	}, true
}
