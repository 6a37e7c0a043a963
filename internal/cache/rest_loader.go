package cache

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// RESTLoader loads single transcripts from the Ensembl REST API. Useful for
// cache-less operation when only a handful of transcripts are needed and
// downloading GENCODE files would be overkill.
type RESTLoader struct {
	baseURL    string
	assembly   string
	httpClient *http.Client
}

// NewRESTLoader creates a new REST API loader.
// assembly should be "GRCh37" or "GRCh38".
func NewRESTLoader(assembly string) *RESTLoader {
	baseURL := "https://rest.ensembl.org"
	if assembly == "GRCh37" {
		baseURL = "https://grch37.rest.ensembl.org"
	}

	return &RESTLoader{
		baseURL:  baseURL,
		assembly: assembly,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// restTranscript is the JSON shape of the /lookup/id response with exons
// expanded.
type restTranscript struct {
	ID            string     `json:"id"`
	DisplayName   string     `json:"display_name"`
	Parent        string     `json:"Parent"`
	SeqRegionName string     `json:"seq_region_name"`
	Start         int        `json:"start"`
	End           int        `json:"end"`
	Strand        int        `json:"strand"`
	Biotype       string     `json:"biotype"`
	Exons         []restExon `json:"Exon"`
	Translation   *struct {
		ID string `json:"id"`
	} `json:"Translation"`
}

type restExon struct {
	ID    string `json:"id"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// LoadTranscript fetches one transcript and its sequences from the REST API
// and adds it to the cache. Already-cached transcripts are not refetched.
func (l *RESTLoader) LoadTranscript(c *Cache, transcriptID string) error {
	if _, ok := c.GetTranscript(transcriptID); ok {
		return nil
	}

	var rt restTranscript
	url := fmt.Sprintf("%s/lookup/id/%s?expand=1;content-type=application/json",
		l.baseURL, stripVersion(transcriptID))
	if err := l.getJSON(url, &rt); err != nil {
		return fmt.Errorf("lookup transcript %s: %w", transcriptID, err)
	}

	d := TranscriptData{
		TranscriptID:   stripVersion(rt.ID),
		TranscriptName: rt.DisplayName,
		GeneID:         stripVersion(rt.Parent),
		Contig:         normalizeChrom(rt.SeqRegionName),
		Strand:         formatStrand(rt.Strand),
		Biotype:        rt.Biotype,
		Start:          rt.Start,
		End:            rt.End,
	}
	if rt.Translation != nil {
		d.ProteinID = stripVersion(rt.Translation.ID)
	}

	// The REST API returns exons in transcript order already.
	for i, e := range rt.Exons {
		d.Exons = append(d.Exons, Exon{
			ID:    stripVersion(e.ID),
			Index: i + 1,
			Start: e.Start,
			End:   e.End,
		})
	}

	var err error
	if d.Sequence, err = l.fetchSequence(d.TranscriptID, "cdna"); err != nil {
		return fmt.Errorf("fetch cdna sequence for %s: %w", transcriptID, err)
	}
	if d.Biotype == "protein_coding" {
		if d.CodingSequence, err = l.fetchSequence(d.TranscriptID, "cds"); err != nil {
			return fmt.Errorf("fetch cds sequence for %s: %w", transcriptID, err)
		}
		if d.ProteinSequence, err = l.fetchSequence(d.TranscriptID, "protein"); err != nil {
			return fmt.Errorf("fetch protein sequence for %s: %w", transcriptID, err)
		}
	}

	c.AddTranscript(NewTranscript(d))
	return nil
}

// fetchSequence retrieves one sequence for a transcript.
// seqType is "cdna", "cds" or "protein".
func (l *RESTLoader) fetchSequence(transcriptID, seqType string) (string, error) {
	var result struct {
		Seq string `json:"seq"`
	}
	url := fmt.Sprintf("%s/sequence/id/%s?type=%s;content-type=application/json",
		l.baseURL, transcriptID, seqType)
	if err := l.getJSON(url, &result); err != nil {
		return "", err
	}
	return result.Seq, nil
}

// getJSON performs a GET request and decodes the JSON response into v.
func (l *RESTLoader) getJSON(url string, v any) error {
	resp, err := l.httpClient.Get(url)
	if err != nil {
		return fmt.Errorf("REST API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("REST API error %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode REST response: %w", err)
	}
	return nil
}

// formatStrand converts the REST API's numeric strand to "+"/"-".
func formatStrand(strand int) string {
	if strand < 0 {
		return "-"
	}
	return "+"
}
