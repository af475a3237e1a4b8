// Package seq is for classifying user-entered sequences before they're
// matched against a reference table.
package seq

import (
	"strings"
	"unicode"
)

// Kind is the classification of a raw input sequence.
type Kind int

const (
	// DNA is the only accepted kind
	DNA Kind = iota
	// AminoAcid is a protein sequence
	AminoAcid
	// RNA has a uracil or is otherwise built from the RNA alphabet
	RNA
	// Invalid is anything else, including an empty input
	Invalid
)

var (
	dnaAlphabet       = alphabet("ACGT")
	rnaAlphabet       = alphabet("ACGU")
	aminoAcidAlphabet = alphabet("ARNDCQEGHILKMPSTWYV")
)

// String returns a short name for the kind.
func (k Kind) String() string {
	switch k {
	case DNA:
		return "DNA"
	case AminoAcid:
		return "amino acid"
	case RNA:
		return "RNA"
	default:
		return "invalid"
	}
}

// Message is the user facing message for a classification.
func (k Kind) Message() string {
	switch k {
	case DNA:
		return "DNA sequence accepted."
	case AminoAcid:
		return "An amino acid sequence was entered. Please enter a DNA sequence."
	case RNA:
		return "An RNA sequence was entered. Please enter a DNA sequence."
	default:
		return "Invalid input. Please enter a DNA sequence."
	}
}

// Result of validating a raw sequence. Seq is only set for DNA.
type Result struct {
	Kind Kind
	Seq  string
}

// OK returns whether the input was accepted.
func (r Result) OK() bool {
	return r.Kind == DNA
}

// Validate normalizes and classifies a raw sequence.
//
// The order of the checks matters: every DNA sequence is also made
// of amino acid letters so DNA is checked first. An input is only
// called an amino acid sequence if it has none of A, C, G or U.
func Validate(raw string) Result {
	s := Normalize(raw)
	if s == "" {
		return Result{Kind: Invalid}
	}

	switch {
	case dnaAlphabet.all(s):
		return Result{Kind: DNA, Seq: s}
	case aminoAcidAlphabet.all(s) && rnaAlphabet.none(s):
		return Result{Kind: AminoAcid}
	case rnaAlphabet.any(s):
		return Result{Kind: RNA}
	default:
		return Result{Kind: Invalid}
	}
}

// Normalize uppercases the sequence and removes all whitespace.
func Normalize(raw string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToUpper(r)
	}, raw)
}

type alphabet string

func (a alphabet) has(r rune) bool {
	return strings.ContainsRune(string(a), r)
}

func (a alphabet) all(s string) bool {
	for _, r := range s {
		if !a.has(r) {
			return false
		}
	}
	return true
}

func (a alphabet) any(s string) bool {
	for _, r := range s {
		if a.has(r) {
			return true
		}
	}
	return false
}

func (a alphabet) none(s string) bool {
	return !a.any(s)
}
