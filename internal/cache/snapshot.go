package cache

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"
)

// Snapshot manages a zstd-compressed gob serialization of a loaded cache on
// disk, so repeated runs skip GTF and FASTA parsing. Files live alongside the
// GENCODE source files:
//
//	~/.ensembl-map/{assembly}/transcripts.gob.zst       (serialized transcripts)
//	~/.ensembl-map/{assembly}/transcripts.gob.zst.meta  (source file fingerprints)
type Snapshot struct {
	dir string // cache directory (e.g. ~/.ensembl-map/grch38)
}

// NewSnapshot creates a snapshot manager for the given directory.
func NewSnapshot(dir string) *Snapshot {
	return &Snapshot{dir: dir}
}

// Path returns the snapshot file path.
func (s *Snapshot) Path() string {
	return filepath.Join(s.dir, "transcripts.gob.zst")
}

func (s *Snapshot) metaPath() string {
	return filepath.Join(s.dir, "transcripts.gob.zst.meta")
}

// FileFingerprint holds stat-based identity for a source file.
type FileFingerprint struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// StatFile creates a FileFingerprint from an on-disk file.
func StatFile(path string) (FileFingerprint, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileFingerprint{}, err
	}
	return FileFingerprint{
		Path:    path,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}

// Valid checks whether the snapshot matches the current source files.
func (s *Snapshot) Valid(gtf, fasta FileFingerprint) bool {
	meta, err := s.readMeta()
	if err != nil {
		return false
	}

	checks := []struct{ key, val string }{
		{"gtf_size", strconv.FormatInt(gtf.Size, 10)},
		{"gtf_modtime", gtf.ModTime.UTC().Format(time.RFC3339Nano)},
		{"fasta_size", strconv.FormatInt(fasta.Size, 10)},
		{"fasta_modtime", fasta.ModTime.UTC().Format(time.RFC3339Nano)},
	}

	for _, c := range checks {
		if meta[c.key] != c.val {
			return false
		}
	}

	if _, err := os.Stat(s.Path()); err != nil {
		return false
	}
	return true
}

// Load reads the snapshot from disk into the cache.
func (s *Snapshot) Load(c *Cache) error {
	f, err := os.Open(s.Path())
	if err != nil {
		return fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()

	zr, err := zstd.NewReader(f)
	if err != nil {
		return fmt.Errorf("open zstd reader: %w", err)
	}
	defer zr.Close()

	var data []TranscriptData
	if err := gob.NewDecoder(zr).Decode(&data); err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}

	for _, d := range data {
		c.AddTranscript(NewTranscript(d))
	}
	return nil
}

// Write serializes all transcripts from the cache to disk, together with the
// source file fingerprints used for invalidation.
func (s *Snapshot) Write(c *Cache, gtf, fasta FileFingerprint) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create snapshot directory: %w", err)
	}

	data := make([]TranscriptData, 0, c.TranscriptCount())
	for _, id := range c.TranscriptIDs() {
		t, _ := c.GetTranscript(id)
		data = append(data, t.Data())
	}

	f, err := os.Create(s.Path())
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}

	zw, err := zstd.NewWriter(f)
	if err != nil {
		f.Close()
		return fmt.Errorf("open zstd writer: %w", err)
	}

	if err := gob.NewEncoder(zw).Encode(data); err != nil {
		zw.Close()
		f.Close()
		os.Remove(s.Path())
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := zw.Close(); err != nil {
		f.Close()
		os.Remove(s.Path())
		return fmt.Errorf("close zstd writer: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close snapshot: %w", err)
	}

	return s.writeMeta(gtf, fasta)
}

// Clear removes the snapshot files.
func (s *Snapshot) Clear() {
	os.Remove(s.Path())
	os.Remove(s.metaPath())
}

func (s *Snapshot) writeMeta(gtf, fasta FileFingerprint) error {
	lines := []string{
		"gtf_size=" + strconv.FormatInt(gtf.Size, 10),
		"gtf_modtime=" + gtf.ModTime.UTC().Format(time.RFC3339Nano),
		"fasta_size=" + strconv.FormatInt(fasta.Size, 10),
		"fasta_modtime=" + fasta.ModTime.UTC().Format(time.RFC3339Nano),
		"created_at=" + time.Now().UTC().Format(time.RFC3339),
		"",
	}
	return os.WriteFile(s.metaPath(), []byte(strings.Join(lines, "\n")), 0644)
}

func (s *Snapshot) readMeta() (map[string]string, error) {
	data, err := os.ReadFile(s.metaPath())
	if err != nil {
		return nil, err
	}

	meta := make(map[string]string)
	for _, line := range strings.Split(string(data), "\n") {
		if k, v, ok := strings.Cut(line, "="); ok {
			meta[k] = v
		}
	}
	return meta, nil
}
