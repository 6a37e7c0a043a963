package extract

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattdoug604/ensembl-map/internal/feature"
)

func TestParallelExtractOrdering(t *testing.T) {
	e := NewExtractor(testCache(t))

	const n = 100
	items := make(chan WorkItem, n)
	for i := 0; i < n; i++ {
		items <- WorkItem{
			Seq: i,
			Req: Request{Type: "cds", TranscriptID: "ENST00000311936", Start: 1, End: 1 + i%10},
		}
	}
	close(items)

	results := e.ParallelExtract(items, 4)

	var seqs []int
	err := OrderedCollect(results, func(r WorkResult) error {
		require.NoError(t, r.Err)
		seqs = append(seqs, r.Seq)

		// The record matches its own request, not some other worker's.
		cds := r.Feat.(feature.CDS)
		assert.Equal(t, r.Req.End, cds.End)
		return nil
	})
	require.NoError(t, err)

	require.Len(t, seqs, n)
	for i, s := range seqs {
		assert.Equal(t, i, s, "results must arrive in input order")
	}
}

func TestParallelExtractPropagatesErrors(t *testing.T) {
	e := NewExtractor(testCache(t))

	items := make(chan WorkItem, 2)
	items <- WorkItem{Seq: 0, Req: Request{Type: "cds", TranscriptID: "ENST00000311936", Start: 1, End: 3}}
	items <- WorkItem{Seq: 1, Req: Request{Type: "cds", TranscriptID: "ENST00000000000", Start: 1, End: 3}}
	close(items)

	results := e.ParallelExtract(items, 2)

	byseq := make(map[int]WorkResult)
	err := OrderedCollect(results, func(r WorkResult) error {
		byseq[r.Seq] = r
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, byseq[0].Err)
	require.Error(t, byseq[1].Err)
	assert.Contains(t, byseq[1].Err.Error(), "ENST00000000000")
}

func TestOrderedCollectStopsOnCallbackError(t *testing.T) {
	results := make(chan WorkResult, 3)
	for i := 0; i < 3; i++ {
		results <- WorkResult{Seq: i}
	}
	close(results)

	calls := 0
	err := OrderedCollect(results, func(r WorkResult) error {
		calls++
		return fmt.Errorf("writer broke")
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestParallelExtractDefaultWorkerCount(t *testing.T) {
	e := NewExtractor(testCache(t))

	items := make(chan WorkItem, 1)
	items <- WorkItem{Seq: 0, Req: Request{Type: "gene", TranscriptID: "ENST00000311936", Start: 1, End: 2}}
	close(items)

	count := 0
	err := OrderedCollect(e.ParallelExtract(items, 0), func(r WorkResult) error {
		count++
		return r.Err
	})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
