package cache

import (
	"sort"
)

// Cache is an in-memory transcript registry keyed by transcript ID, with a
// secondary index by gene name. It is populated by a loader once and read-only
// afterwards, so concurrent lookups need no locking.
type Cache struct {
	transcripts map[string]*Transcript
	byGene      map[string][]*Transcript
}

// New creates a new empty cache.
func New() *Cache {
	return &Cache{
		transcripts: make(map[string]*Transcript),
		byGene:      make(map[string][]*Transcript),
	}
}

// AddTranscript adds a transcript to the cache. A transcript with the same ID
// replaces the earlier entry.
func (c *Cache) AddTranscript(t *Transcript) {
	id := t.TranscriptID()
	if prev, ok := c.transcripts[id]; ok {
		c.removeFromGeneIndex(prev)
	}
	c.transcripts[id] = t
	if name := t.GeneName(); name != "" {
		c.byGene[name] = append(c.byGene[name], t)
	}
}

func (c *Cache) removeFromGeneIndex(t *Transcript) {
	name := t.GeneName()
	list := c.byGene[name]
	for i, cand := range list {
		if cand == t {
			c.byGene[name] = append(list[:i], list[i+1:]...)
			return
		}
	}
}

// GetTranscript returns the transcript with the given ID. Version suffixes
// are ignored, so "ENST00000311936.8" finds "ENST00000311936".
func (c *Cache) GetTranscript(id string) (*Transcript, bool) {
	if t, ok := c.transcripts[id]; ok {
		return t, true
	}
	t, ok := c.transcripts[stripVersion(id)]
	return t, ok
}

// FindByGene returns all transcripts of a gene, sorted by transcript ID.
func (c *Cache) FindByGene(geneName string) []*Transcript {
	list := c.byGene[geneName]
	if len(list) == 0 {
		return nil
	}
	result := append([]*Transcript(nil), list...)
	sort.Slice(result, func(i, j int) bool {
		return result[i].TranscriptID() < result[j].TranscriptID()
	})
	return result
}

// TranscriptCount returns the number of transcripts in the cache.
func (c *Cache) TranscriptCount() int {
	return len(c.transcripts)
}

// TranscriptIDs returns all transcript IDs in sorted order.
func (c *Cache) TranscriptIDs() []string {
	ids := make([]string, 0, len(c.transcripts))
	for id := range c.transcripts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
