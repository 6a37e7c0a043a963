package feature

import "fmt"

// Kind tags one of the feature record variants. The tag values double as
// the user-facing feature type names in specs and output.
type Kind string

// The closed set of feature kinds. Tags are lowercase and matched exactly.
const (
	KindCDS        Kind = "cds"
	KindExon       Kind = "exon"
	KindGene       Kind = "gene"
	KindProtein    Kind = "protein"
	KindTranscript Kind = "transcript"
)

// Kinds returns all feature kinds in tag order.
func Kinds() []Kind {
	return []Kind{KindCDS, KindExon, KindGene, KindProtein, KindTranscript}
}

// ParseKind validates a feature type tag. Unknown tags, including case
// variants of known ones, are rejected with an error naming the tag.
func ParseKind(tag string) (Kind, error) {
	switch k := Kind(tag); k {
	case KindCDS, KindExon, KindGene, KindProtein, KindTranscript:
		return k, nil
	}
	return "", fmt.Errorf("unknown feature type %q", tag)
}

// Loader builds one feature record from a source transcript and a 1-based
// inclusive coordinate pair. The exon loader takes exactly three extra
// arguments, biotype (string), exon ID (string) and index (int), matching
// LoadExon; every other loader takes none. A wrong argument set is reported
// as an error, never corrected.
type Loader func(src SourceTranscript, start, end int, extra ...any) (Feature, error)

// LoaderFor returns the load function for a feature type tag, letting
// pipeline code pick the record variant at runtime. The typed Load
// functions are preferred when the kind is known statically. Unknown tags
// are rejected with an error naming the tag; the factory never invokes the
// loader it returns.
func LoaderFor(tag string) (Loader, error) {
	switch Kind(tag) {
	case KindCDS:
		return loadCDSFeature, nil
	case KindExon:
		return loadExonFeature, nil
	case KindGene:
		return loadGeneFeature, nil
	case KindProtein:
		return loadProteinFeature, nil
	case KindTranscript:
		return loadTranscriptFeature, nil
	}
	return nil, fmt.Errorf("no loader for feature type %q", tag)
}

func loadCDSFeature(src SourceTranscript, start, end int, extra ...any) (Feature, error) {
	if err := wantNoExtra(KindCDS, extra); err != nil {
		return nil, err
	}
	return LoadCDS(src, start, end), nil
}

func loadExonFeature(src SourceTranscript, start, end int, extra ...any) (Feature, error) {
	biotype, exonID, index, err := exonExtra(extra)
	if err != nil {
		return nil, err
	}
	return LoadExon(src, start, end, biotype, exonID, index), nil
}

func loadGeneFeature(src SourceTranscript, start, end int, extra ...any) (Feature, error) {
	if err := wantNoExtra(KindGene, extra); err != nil {
		return nil, err
	}
	return LoadGene(src, start, end), nil
}

func loadProteinFeature(src SourceTranscript, start, end int, extra ...any) (Feature, error) {
	if err := wantNoExtra(KindProtein, extra); err != nil {
		return nil, err
	}
	return LoadProtein(src, start, end), nil
}

func loadTranscriptFeature(src SourceTranscript, start, end int, extra ...any) (Feature, error) {
	if err := wantNoExtra(KindTranscript, extra); err != nil {
		return nil, err
	}
	return LoadTranscript(src, start, end), nil
}

// wantNoExtra rejects extra arguments for the loaders that take none.
func wantNoExtra(kind Kind, extra []any) error {
	if len(extra) != 0 {
		return fmt.Errorf("%s loader takes no extra arguments, got %d", kind, len(extra))
	}
	return nil
}

// exonExtra unpacks the positional extra arguments of the exon loader.
func exonExtra(extra []any) (biotype, exonID string, index int, err error) {
	if len(extra) != 3 {
		return "", "", 0, fmt.Errorf("exon loader takes 3 extra arguments (biotype, exon ID, index), got %d", len(extra))
	}
	var ok bool
	if biotype, ok = extra[0].(string); !ok {
		return "", "", 0, fmt.Errorf("exon loader: biotype must be a string, got %T", extra[0])
	}
	if exonID, ok = extra[1].(string); !ok {
		return "", "", 0, fmt.Errorf("exon loader: exon ID must be a string, got %T", extra[1])
	}
	if index, ok = extra[2].(int); !ok {
		return "", "", 0, fmt.Errorf("exon loader: index must be an int, got %T", extra[2])
	}
	return biotype, exonID, index, nil
}
