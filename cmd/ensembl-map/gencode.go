package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/mattdoug604/ensembl-map/internal/cache"
)

// findGENCODEFiles locates the downloaded GENCODE GTF and FASTA files in an
// assembly directory.
func findGENCODEFiles(dir string) (gtfPath, fastaPath string, found bool) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", "", false
	}

	for _, entry := range entries {
		name := entry.Name()
		switch {
		case strings.Contains(name, "annotation.gtf"):
			gtfPath = filepath.Join(dir, name)
		case strings.Contains(name, "pc_transcripts.fa"):
			fastaPath = filepath.Join(dir, name)
		}
	}

	return gtfPath, fastaPath, gtfPath != ""
}

// restLookup resolves transcripts from the registry first and falls back to
// the Ensembl REST API, caching what it fetches. Lookup failures surface as
// a miss; the extractor reports the unknown transcript.
type restLookup struct {
	c      *cache.Cache
	loader *cache.RESTLoader
}

func newRESTLookup(c *cache.Cache, assembly string) *restLookup {
	return &restLookup{c: c, loader: cache.NewRESTLoader(assembly)}
}

func (r *restLookup) GetTranscript(id string) (*cache.Transcript, bool) {
	if t, ok := r.c.GetTranscript(id); ok {
		return t, true
	}
	if err := r.loader.LoadTranscript(r.c, id); err != nil {
		logger.Warn("Ensembl REST lookup failed",
			zap.String("transcript", id),
			zap.Error(err))
		return nil, false
	}
	return r.c.GetTranscript(id)
}

// cacheOrEmpty loads whatever local transcript data is available and
// falls back to an empty registry. Used by REST mode, where missing
// local data is not an error.
func cacheOrEmpty(assembly, transcriptsJSON string) *cache.Cache {
	c, err := loadTranscripts(assembly, transcriptsJSON)
	if err != nil {
		logger.Debug("no local transcript data, relying on REST", zap.Error(err))
		return cache.New()
	}
	return c
}

// loadTranscripts builds the transcript registry for a run. A JSON file
// takes precedence; otherwise the GENCODE files for the assembly are used,
// going through the disk snapshot when it is still valid.
func loadTranscripts(assembly, transcriptsJSON string) (*cache.Cache, error) {
	c := cache.New()

	if transcriptsJSON != "" {
		if err := cache.NewJSONLoader(transcriptsJSON).Load(c); err != nil {
			return nil, err
		}
		logger.Info("loaded transcripts from JSON",
			zap.String("path", transcriptsJSON),
			zap.Int("transcripts", c.TranscriptCount()))
		return c, nil
	}

	dir, err := assemblyDir(assembly)
	if err != nil {
		return nil, err
	}

	gtfPath, fastaPath, found := findGENCODEFiles(dir)
	if !found {
		return nil, fmt.Errorf("no GENCODE annotation found for %s in %s (run: ensembl-map download --assembly %s)", assembly, dir, assembly)
	}

	gtfFP, err := cache.StatFile(gtfPath)
	if err != nil {
		return nil, fmt.Errorf("stat GTF: %w", err)
	}
	var fastaFP cache.FileFingerprint
	if fastaPath != "" {
		if fastaFP, err = cache.StatFile(fastaPath); err != nil {
			return nil, fmt.Errorf("stat FASTA: %w", err)
		}
	}

	snap := cache.NewSnapshot(dir)
	if snap.Valid(gtfFP, fastaFP) {
		if err := snap.Load(c); err == nil {
			logger.Info("loaded transcripts from snapshot",
				zap.String("path", snap.Path()),
				zap.Int("transcripts", c.TranscriptCount()))
			return c, nil
		}
		// A corrupt snapshot falls through to a fresh parse.
		snap.Clear()
	}

	if err := cache.NewGENCODELoader(gtfPath, fastaPath).Load(c); err != nil {
		return nil, err
	}
	logger.Info("loaded transcripts from GENCODE files",
		zap.String("gtf", gtfPath),
		zap.String("fasta", fastaPath),
		zap.Int("transcripts", c.TranscriptCount()))

	if err := snap.Write(c, gtfFP, fastaFP); err != nil {
		logger.Warn("could not write transcript snapshot", zap.Error(err))
	}

	return c, nil
}
