package feature

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		tag     string
		want    Kind
		wantErr bool
	}{
		{"cds", KindCDS, false},
		{"exon", KindExon, false},
		{"gene", KindGene, false},
		{"protein", KindProtein, false},
		{"transcript", KindTranscript, false},
		{"CDS", "", true}, // matching is case-sensitive
		{"Gene", "", true},
		{"codon", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			got, err := ParseKind(tt.tag)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.tag, "error should name the offending tag")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKinds(t *testing.T) {
	assert.Equal(t, []Kind{KindCDS, KindExon, KindGene, KindProtein, KindTranscript}, Kinds())
}

func TestLoaderFor_AllKinds(t *testing.T) {
	src := krasSource()

	tests := []struct {
		tag   string
		extra []any
		want  Kind
	}{
		{"cds", nil, KindCDS},
		{"exon", []any{"protein_coding", "ENSE00000936617", 2}, KindExon},
		{"gene", nil, KindGene},
		{"protein", nil, KindProtein},
		{"transcript", nil, KindTranscript},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			load, err := LoaderFor(tt.tag)
			require.NoError(t, err)

			f, err := load(src, 1, 3, tt.extra...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, f.Kind())
		})
	}
}

func TestLoaderFor_UnknownTag(t *testing.T) {
	load, err := LoaderFor("enhancer")
	assert.Nil(t, load)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "enhancer")
}

func TestLoaderFor_MatchesTypedLoaders(t *testing.T) {
	src := krasSource()

	load, err := LoaderFor("exon")
	require.NoError(t, err)
	got, err := load(src, 2, 5, "lncRNA", "ENSE00000936617", 2)
	require.NoError(t, err)
	assert.Equal(t, LoadExon(src, 2, 5, "lncRNA", "ENSE00000936617", 2), got)

	load, err = LoaderFor("cds")
	require.NoError(t, err)
	got, err = load(src, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, LoadCDS(src, 1, 3), got)
}

func TestLoaderFor_RejectsWrongExtras(t *testing.T) {
	src := krasSource()

	tests := []struct {
		name    string
		tag     string
		extra   []any
		wantMsg string
	}{
		{"cds with extras", "cds", []any{"protein_coding"}, "takes no extra arguments"},
		{"gene with extras", "gene", []any{1, 2, 3}, "takes no extra arguments"},
		{"exon with no extras", "exon", nil, "takes 3 extra arguments"},
		{"exon with two extras", "exon", []any{"protein_coding", "ENSE1"}, "takes 3 extra arguments"},
		{"exon with bad biotype type", "exon", []any{42, "ENSE1", 1}, "biotype must be a string"},
		{"exon with bad exon ID type", "exon", []any{"protein_coding", 42, 1}, "exon ID must be a string"},
		{"exon with bad index type", "exon", []any{"protein_coding", "ENSE1", "2"}, "index must be an int"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			load, err := LoaderFor(tt.tag)
			require.NoError(t, err)

			f, err := load(src, 1, 3, tt.extra...)
			assert.Nil(t, f)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}
