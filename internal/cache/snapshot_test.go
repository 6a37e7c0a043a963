package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFingerprints(t *testing.T, dir string) (gtf, fasta FileFingerprint) {
	t.Helper()
	gtfPath := filepath.Join(dir, "test.gtf")
	fastaPath := filepath.Join(dir, "test.fa")
	require.NoError(t, os.WriteFile(gtfPath, []byte("gtf"), 0644))
	require.NoError(t, os.WriteFile(fastaPath, []byte("fasta"), 0644))

	var err error
	gtf, err = StatFile(gtfPath)
	require.NoError(t, err)
	fasta, err = StatFile(fastaPath)
	require.NoError(t, err)
	return gtf, fasta
}

func TestSnapshotRoundTrip(t *testing.T) {
	dir := t.TempDir()
	gtf, fasta := testFingerprints(t, dir)

	c := New()
	c.AddTranscript(NewTranscript(krasData()))

	snap := NewSnapshot(dir)
	require.NoError(t, snap.Write(c, gtf, fasta))
	assert.True(t, snap.Valid(gtf, fasta))

	loaded := New()
	require.NoError(t, snap.Load(loaded))
	assert.Equal(t, 1, loaded.TranscriptCount())

	tr, ok := loaded.GetTranscript("ENST00000311936")
	require.True(t, ok)
	assert.Equal(t, "KRAS", tr.GeneName())
	assert.Equal(t, "GGGGTTTTATGCCGCTGTAA", tr.Sequence())
	assert.Equal(t, "MPL", tr.ProteinSequence())

	e, ok := tr.ExonByIndex(2)
	require.True(t, ok)
	assert.Equal(t, 180, e.RelStart)
}

func TestSnapshotInvalidation(t *testing.T) {
	dir := t.TempDir()
	gtf, fasta := testFingerprints(t, dir)

	snap := NewSnapshot(dir)
	assert.False(t, snap.Valid(gtf, fasta), "no snapshot yet")

	c := New()
	c.AddTranscript(NewTranscript(krasData()))
	require.NoError(t, snap.Write(c, gtf, fasta))
	require.True(t, snap.Valid(gtf, fasta))

	// A changed source file invalidates the snapshot.
	stale := gtf
	stale.Size += 100
	assert.False(t, snap.Valid(stale, fasta))

	stale = gtf
	stale.ModTime = stale.ModTime.Add(time.Hour)
	assert.False(t, snap.Valid(stale, fasta))
}

func TestSnapshotClear(t *testing.T) {
	dir := t.TempDir()
	gtf, fasta := testFingerprints(t, dir)

	snap := NewSnapshot(dir)
	c := New()
	c.AddTranscript(NewTranscript(krasData()))
	require.NoError(t, snap.Write(c, gtf, fasta))

	snap.Clear()
	assert.False(t, snap.Valid(gtf, fasta))
	_, err := os.Stat(snap.Path())
	assert.True(t, os.IsNotExist(err))
}

func TestStatFileMissing(t *testing.T) {
	_, err := StatFile("/nonexistent/file")
	assert.Error(t, err)
}
