package extract

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// RequestSource yields feature requests one at a time. Next returns nil, nil
// at end of input.
type RequestSource interface {
	Next() (*Request, error)
	Close() error
}

// BatchParser reads feature requests from a tab-separated batch file with
// the columns
//
//	type  transcript_id  start  end  [biotype  exon_id  exon_index]
//
// The last three columns apply to exon requests only and may be omitted or
// left as "-". A header line and "#" comment lines are skipped.
type BatchParser struct {
	reader     *bufio.Reader
	file       *os.File
	gzipReader *gzip.Reader
	lineNumber int
	headerDone bool
}

// NewBatchParser creates a parser for the given file. Supports plain and
// gzipped input, and "-" for stdin.
func NewBatchParser(path string) (*BatchParser, error) {
	if path == "-" {
		return NewBatchParserFromReader(os.Stdin), nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open batch file: %w", err)
	}

	p := &BatchParser{file: file}

	// Check for gzip magic bytes
	buf := make([]byte, 2)
	if _, err := file.Read(buf); err != nil && err != io.EOF {
		file.Close()
		return nil, fmt.Errorf("read batch file: %w", err)
	}
	if _, err := file.Seek(0, 0); err != nil {
		file.Close()
		return nil, fmt.Errorf("seek batch file: %w", err)
	}

	if buf[0] == 0x1f && buf[1] == 0x8b {
		p.gzipReader, err = gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("create gzip reader: %w", err)
		}
		p.reader = bufio.NewReader(p.gzipReader)
	} else {
		p.reader = bufio.NewReader(file)
	}

	return p, nil
}

// NewBatchParserFromReader creates a parser from an io.Reader (e.g., stdin).
func NewBatchParserFromReader(r io.Reader) *BatchParser {
	return &BatchParser{reader: bufio.NewReader(r)}
}

// Next returns the next request, or nil, nil at end of input.
func (p *BatchParser) Next() (*Request, error) {
	for {
		line, err := p.reader.ReadString('\n')
		if err == io.EOF && line == "" {
			return nil, nil
		}
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("read batch line: %w", err)
		}
		p.lineNumber++

		line = strings.TrimRight(line, "\r\n")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		// The first non-comment line may be a header naming the columns.
		if !p.headerDone {
			p.headerDone = true
			if strings.HasPrefix(strings.ToLower(line), "type\t") {
				continue
			}
		}

		req, err := p.parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", p.lineNumber, err)
		}
		req.Line = p.lineNumber
		return req, nil
	}
}

// parseLine parses one tab-separated request row.
func (p *BatchParser) parseLine(line string) (*Request, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < 4 {
		return nil, fmt.Errorf("expected at least 4 tab-separated fields, got %d", len(fields))
	}

	req := &Request{
		Type:         strings.TrimSpace(fields[0]),
		TranscriptID: strings.TrimSpace(fields[1]),
	}

	var err error
	if req.Start, err = parseCoord(fields[2]); err != nil {
		return nil, fmt.Errorf("parse start: %w", err)
	}
	if req.End, err = parseCoord(fields[3]); err != nil {
		return nil, fmt.Errorf("parse end: %w", err)
	}

	if len(fields) > 4 {
		req.Biotype = blankField(fields[4])
	}
	if len(fields) > 5 {
		req.ExonID = blankField(fields[5])
	}
	if len(fields) > 6 && blankField(fields[6]) != "" {
		if req.ExonIndex, err = strconv.Atoi(strings.TrimSpace(fields[6])); err != nil {
			return nil, fmt.Errorf("parse exon index: %w", err)
		}
	}

	if req.Start != 0 || req.End != 0 {
		if req.Start < 1 {
			return nil, fmt.Errorf("start must be >= 1, got %d", req.Start)
		}
		if req.Start > req.End {
			return nil, fmt.Errorf("start %d is greater than end %d", req.Start, req.End)
		}
	}

	return req, nil
}

// parseCoord parses a coordinate field, treating "-" and "" as absent.
func parseCoord(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

// blankField normalizes "-" placeholders to "".
func blankField(s string) string {
	s = strings.TrimSpace(s)
	if s == "-" {
		return ""
	}
	return s
}

// Close closes the underlying file.
func (p *BatchParser) Close() error {
	if p.gzipReader != nil {
		p.gzipReader.Close()
	}
	if p.file != nil {
		return p.file.Close()
	}
	return nil
}
