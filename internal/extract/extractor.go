package extract

import (
	"fmt"
	"runtime"

	"go.uber.org/zap"

	"github.com/mattdoug604/ensembl-map/internal/cache"
	"github.com/mattdoug604/ensembl-map/internal/feature"
)

// TranscriptLookup defines the interface for resolving transcript IDs.
type TranscriptLookup interface {
	GetTranscript(id string) (*cache.Transcript, bool)
}

// Extractor builds feature records from requests, resolving the transcript
// through a lookup and the record variant through the feature factory.
type Extractor struct {
	cache  TranscriptLookup
	logger *zap.Logger
}

// NewExtractor creates a new extractor with the given transcript lookup.
func NewExtractor(c TranscriptLookup) *Extractor {
	return &Extractor{
		cache:  c,
		logger: zap.NewNop(),
	}
}

// SetLogger sets the logger for warning and info messages.
func (e *Extractor) SetLogger(l *zap.Logger) {
	e.logger = l
}

// Extract builds one feature record. For exon requests it applies two
// conveniences before dispatch: an empty biotype defaults to the
// transcript's own, and when only an ordinal is given the exon ID and
// coordinate pair are filled from the transcript's exon table. Both are
// extractor sugar; the feature loaders themselves take what they are given.
func (e *Extractor) Extract(req Request) (feature.Feature, error) {
	kind, err := feature.ParseKind(req.Type)
	if err != nil {
		return nil, err
	}

	t, ok := e.cache.GetTranscript(req.TranscriptID)
	if !ok {
		return nil, fmt.Errorf("unknown transcript %q", req.TranscriptID)
	}

	loader, err := feature.LoaderFor(req.Type)
	if err != nil {
		return nil, err
	}

	var extra []any
	if kind == feature.KindExon {
		if extra, err = e.exonExtra(t, &req); err != nil {
			return nil, err
		}
	}

	return loader(t, req.Start, req.End, extra...)
}

// exonExtra resolves the exon loader's extra arguments, filling defaults
// from the transcript where the request leaves them open.
func (e *Extractor) exonExtra(t *cache.Transcript, req *Request) ([]any, error) {
	biotype := req.Biotype
	if biotype == "" {
		biotype = t.Biotype()
	}

	exonID := req.ExonID
	index := req.ExonIndex

	switch {
	case exonID == "" && index > 0:
		ex, ok := t.ExonByIndex(index)
		if !ok {
			return nil, fmt.Errorf("transcript %s has no exon with index %d", t.TranscriptID(), index)
		}
		exonID = ex.ID
		if req.Start == 0 && req.End == 0 {
			req.Start = ex.RelStart
			req.End = ex.RelEnd
		}
	case exonID != "" && index == 0:
		ex, ok := t.ExonByID(exonID)
		if !ok {
			return nil, fmt.Errorf("transcript %s has no exon %s", t.TranscriptID(), exonID)
		}
		index = ex.Index
		if req.Start == 0 && req.End == 0 {
			req.Start = ex.RelStart
			req.End = ex.RelEnd
		}
	case exonID == "" && index == 0:
		return nil, fmt.Errorf("exon request needs an exon ID or index")
	}

	if req.Start == 0 && req.End == 0 {
		return nil, fmt.Errorf("exon request needs a coordinate pair or a resolvable exon")
	}

	return []any{biotype, exonID, index}, nil
}

// ExtractAll processes all requests from a source through the worker pool
// and writes the resulting records in input order. Requests that fail are
// logged and skipped; the batch continues.
func (e *Extractor) ExtractAll(src RequestSource, writer FeatureWriter, workers int) error {
	items := make(chan WorkItem, 2*runtime.NumCPU())
	var parseErr error

	go func() {
		defer close(items)
		seq := 0
		for {
			req, err := src.Next()
			if err != nil {
				parseErr = fmt.Errorf("read request: %w", err)
				return
			}
			if req == nil {
				return
			}
			items <- WorkItem{Seq: seq, Req: *req}
			seq++
		}
	}()

	results := e.ParallelExtract(items, workers)

	if err := OrderedCollect(results, func(r WorkResult) error {
		if r.Err != nil {
			fields := []zap.Field{
				zap.String("type", r.Req.Type),
				zap.String("transcript", r.Req.TranscriptID),
			}
			if r.Req.Line > 0 {
				fields = append(fields, zap.Int("line", r.Req.Line))
			}
			e.logger.Warn("failed to extract feature", append(fields, zap.Error(r.Err))...)
			return nil
		}
		if err := writer.Write(r.Feat); err != nil {
			return fmt.Errorf("write feature: %w", err)
		}
		return nil
	}); err != nil {
		return err
	}

	if parseErr != nil {
		return parseErr
	}

	return writer.Flush()
}

// FeatureWriter defines the interface for writing feature records.
type FeatureWriter interface {
	WriteHeader() error
	Write(f feature.Feature) error
	Flush() error
}
