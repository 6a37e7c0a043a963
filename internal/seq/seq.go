// Package seq implements nucleotide translation using the standard genetic
// code.
package seq

import "strings"

// Standard genetic code: DNA codon to single letter amino acid.
var codonTable = map[string]byte{
	"TTT": 'F', "TTC": 'F', "TTA": 'L', "TTG": 'L',
	"TCT": 'S', "TCC": 'S', "TCA": 'S', "TCG": 'S',
	"TAT": 'Y', "TAC": 'Y', "TAA": '*', "TAG": '*',
	"TGT": 'C', "TGC": 'C', "TGA": '*', "TGG": 'W',

	"CTT": 'L', "CTC": 'L', "CTA": 'L', "CTG": 'L',
	"CCT": 'P', "CCC": 'P', "CCA": 'P', "CCG": 'P',
	"CAT": 'H', "CAC": 'H', "CAA": 'Q', "CAG": 'Q',
	"CGT": 'R', "CGC": 'R', "CGA": 'R', "CGG": 'R',

	"ATT": 'I', "ATC": 'I', "ATA": 'I', "ATG": 'M',
	"ACT": 'T', "ACC": 'T', "ACA": 'T', "ACG": 'T',
	"AAT": 'N', "AAC": 'N', "AAA": 'K', "AAG": 'K',
	"AGT": 'S', "AGC": 'S', "AGA": 'R', "AGG": 'R',

	"GTT": 'V', "GTC": 'V', "GTA": 'V', "GTG": 'V',
	"GCT": 'A', "GCC": 'A', "GCA": 'A', "GCG": 'A',
	"GAT": 'D', "GAC": 'D', "GAA": 'E', "GAG": 'E',
	"GGT": 'G', "GGC": 'G', "GGA": 'G', "GGG": 'G',
}

// TranslateCodon translates a DNA codon to its amino acid. Returns '*' for
// stop codons and 'X' for anything else that is not a valid uppercase
// codon. GENCODE and Ensembl sequence data is uppercase already, so no case
// normalization is done here.
func TranslateCodon(codon string) byte {
	if len(codon) != 3 {
		return 'X'
	}
	if aa, ok := codonTable[codon]; ok {
		return aa
	}
	return 'X'
}

// Translate translates a DNA sequence to amino acids, one letter per codon,
// including any stop codons as '*'. A trailing incomplete codon is ignored.
func Translate(dna string) string {
	n := (len(dna) / 3) * 3

	var b strings.Builder
	b.Grow(n / 3)
	for i := 0; i < n; i += 3 {
		b.WriteByte(TranslateCodon(dna[i : i+3]))
	}
	return b.String()
}

// TranslateCDS translates a coding sequence and trims the result at the
// first stop codon, matching how Ensembl reports protein sequences.
func TranslateCDS(cds string) string {
	prot := Translate(cds)
	if i := strings.IndexByte(prot, '*'); i >= 0 {
		return prot[:i]
	}
	return prot
}
