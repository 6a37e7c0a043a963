package output

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/mattdoug604/ensembl-map/internal/feature"
)

// TabWriter writes feature records in tab-delimited format, one row per
// record. Absent values are rendered as "-".
type TabWriter struct {
	w       *bufio.Writer
	columns []string
}

// NewTabWriter creates a new tab-delimited writer.
func NewTabWriter(w io.Writer) *TabWriter {
	return &TabWriter{
		w: bufio.NewWriter(w),
		columns: []string{
			"#Feature_type",
			"Feature",
			"Name",
			"Contig",
			"Start",
			"End",
			"Strand",
			"Biotype",
			"Transcript",
			"Transcript_name",
			"Exon_index",
			"Seq",
		},
	}
}

// WriteHeader writes the header line.
func (tw *TabWriter) WriteHeader() error {
	_, err := tw.w.WriteString(strings.Join(tw.columns, "\t") + "\n")
	return err
}

// Write writes a single feature record.
func (tw *TabWriter) Write(f feature.Feature) error {
	r, err := NewRecord(f)
	if err != nil {
		return err
	}

	index := "-"
	if r.Index > 0 {
		index = strconv.Itoa(r.Index)
	}

	values := []string{
		r.Type,
		dash(r.ID),
		dash(r.Name),
		dash(r.Contig),
		strconv.Itoa(r.Start),
		strconv.Itoa(r.End),
		dash(r.Strand),
		dash(r.Biotype),
		dash(r.TranscriptID),
		dash(r.TranscriptName),
		index,
		dash(r.Seq),
	}

	_, err = tw.w.WriteString(strings.Join(values, "\t") + "\n")
	return err
}

// Flush flushes any buffered data to the underlying writer.
func (tw *TabWriter) Flush() error {
	return tw.w.Flush()
}

// dash renders empty values as "-".
func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
