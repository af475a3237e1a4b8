// Package align finds the best local alignment of a query against a
// reference, Smith-Waterman with affine gap penalties.
package align

import (
	"fmt"
	"sort"
	"strings"

	bioalign "github.com/biogo/biogo/align"
	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/seq/linear"
)

// Gap is the character used for gaps in aligned sequences.
const Gap = '-'

// Scoring is the scoring scheme of a local alignment. GapOpen is the score
// of the first position in a gap and GapExtend the score of each one after it.
type Scoring struct {
	Match     int `mapstructure:"match"`
	Mismatch  int `mapstructure:"mismatch"`
	GapOpen   int `mapstructure:"gap-open"`
	GapExtend int `mapstructure:"gap-extend"`
}

// DefaultScoring is +2 for a match and -1 for everything else.
var DefaultScoring = Scoring{Match: 2, Mismatch: -1, GapOpen: -1, GapExtend: -1}

// Validate returns an error if the scheme can't produce a local alignment.
func (s Scoring) Validate() error {
	if s.Match <= 0 {
		return fmt.Errorf("match score must be positive: %d", s.Match)
	}
	if s.Mismatch > 0 {
		return fmt.Errorf("mismatch score must be <= 0: %d", s.Mismatch)
	}
	if s.GapOpen > 0 || s.GapExtend > 0 {
		return fmt.Errorf("gap scores must be <= 0: open %d, extend %d", s.GapOpen, s.GapExtend)
	}
	return nil
}

func (s Scoring) pair(a, b byte) int {
	if a == b {
		return s.Match
	}
	return s.Mismatch
}

// Alphabet of the sequences that can be aligned: the IUPAC nucleotide codes,
// case-insensitive, with '-' as the gap.
var Alphabet = alphabet.DNAredundant

// Check returns an error for the first character of s that isn't a nucleotide.
func Check(s string) error {
	for i := 0; i < len(s); i++ {
		if l := alphabet.Letter(s[i]); l == Alphabet.Gap() || !Alphabet.IsValid(l) {
			return fmt.Errorf("%q at position %d is not a nucleotide", s[i], i+1)
		}
	}
	return nil
}

// matrix is the substitution matrix of the scheme over Alphabet. The gap is
// at index 0 and scores GapExtend; SWAffine adds the rest of GapOpen once per gap.
func (s Scoring) matrix() bioalign.Linear {
	n := Alphabet.Len()
	m := make(bioalign.Linear, n)
	for i := range m {
		m[i] = make([]int, n)
		for j := range m[i] {
			switch {
			case i == 0 && j == 0:
			case i == 0 || j == 0:
				m[i][j] = s.GapExtend
			case i == j:
				m[i][j] = s.Match
			default:
				m[i][j] = s.Mismatch
			}
		}
	}
	return m
}

// score of an aligned region
func (s Scoring) score(query, reference string) int {
	total, gapIn := 0, byte(0)
	for i := 0; i < len(query) && i < len(reference); i++ {
		var in byte
		switch {
		case query[i] == Gap:
			in = 'q'
		case reference[i] == Gap:
			in = 'r'
		default:
			total += s.pair(query[i], reference[i])
			gapIn = 0
			continue
		}

		if gapIn == in {
			total += s.GapExtend
		} else {
			total += s.GapOpen
		}
		gapIn = in
	}
	return total
}

// Result is the best local alignment between a query and a reference.
//
// AlignedQuery and AlignedReference carry the full sequences: the parts
// before the aligned region are right aligned against one another and the
// parts after it left aligned, with the shorter side padded with gaps.
// [Start, End) is the aligned region within those padded strings.
type Result struct {
	AlignedQuery     string
	AlignedReference string
	Score            int
	Start            int
	End              int

	// 0-based, half-open region of each input that was aligned
	QueryStart int
	QueryEnd   int
	RefStart   int
	RefEnd     int
}

// Identity is the percentage of the query's non-gap positions that are
// identical to the reference. A query made only of gaps has 0 identity.
func (r Result) Identity() float64 {
	matches, length := 0, 0
	for i := 0; i < len(r.AlignedQuery); i++ {
		q := r.AlignedQuery[i]
		if q == Gap {
			continue
		}
		length++
		if i < len(r.AlignedReference) && q == r.AlignedReference[i] {
			matches++
		}
	}

	if length == 0 {
		return 0
	}
	return float64(matches) * 100 / float64(length)
}

// Local aligns query against reference and returns the single highest
// scoring local alignment. It returns false if no alignment scores above
// zero or either sequence has a letter outside Alphabet.
//
// Ties between equally scoring alignments are broken the same way every run.
func Local(query, reference string, s Scoring) (Result, bool) {
	if query == "" || reference == "" || Check(query) != nil || Check(reference) != nil {
		return Result{}, false
	}

	ref := linear.NewSeq("reference", alphabet.BytesToLetters([]byte(reference)), Alphabet)
	qry := linear.NewSeq("query", alphabet.BytesToLetters([]byte(query)), Alphabet)

	sw := bioalign.SWAffine{Matrix: s.matrix(), GapOpen: s.GapOpen - s.GapExtend}
	pairs, err := sw.Align(ref, qry)
	if err != nil || len(pairs) == 0 {
		return Result{}, false
	}

	// each pair is a run of aligned letters or a gap, ordered along the alignment
	sort.Slice(pairs, func(i, j int) bool {
		fi, fj := pairs[i].Features(), pairs[j].Features()
		if fi[0].Start() != fj[0].Start() {
			return fi[0].Start() < fj[0].Start()
		}
		return fi[1].Start() < fj[1].Start()
	})

	first, last := pairs[0].Features(), pairs[len(pairs)-1].Features()
	rStart, qStart := first[0].Start(), first[1].Start()
	rEnd, qEnd := last[0].End(), last[1].End()

	aligned := bioalign.Format(ref, qry, pairs, Alphabet.Gap())
	rRegion, qRegion := letters(aligned[0]), letters(aligned[1])

	score := s.score(qRegion, rRegion)
	if score <= 0 {
		return Result{}, false
	}

	qPrefix, rPrefix := padLeft(query[:qStart], reference[:rStart])
	qSuffix, rSuffix := padRight(query[qEnd:], reference[rEnd:])

	return Result{
		AlignedQuery:     qPrefix + qRegion + qSuffix,
		AlignedReference: rPrefix + rRegion + rSuffix,
		Score:            score,
		Start:            len(qPrefix),
		End:              len(qPrefix) + len(qRegion),
		QueryStart:       qStart,
		QueryEnd:         qEnd,
		RefStart:         rStart,
		RefEnd:           rEnd,
	}, true
}

// letters returns the sequence of an aligned slice
func letters(s alphabet.Slice) string {
	l, _ := s.(alphabet.Letters)
	b := make([]byte, len(l))
	for i, c := range l {
		b[i] = byte(c)
	}
	return string(b)
}

// padLeft right aligns two prefixes by padding the shorter one on its left
func padLeft(a, b string) (string, string) {
	if d := len(a) - len(b); d > 0 {
		b = strings.Repeat(string(Gap), d) + b
	} else if d < 0 {
		a = strings.Repeat(string(Gap), -d) + a
	}
	return a, b
}

// padRight left aligns two suffixes by padding the shorter one on its right
func padRight(a, b string) (string, string) {
	if d := len(a) - len(b); d > 0 {
		b += strings.Repeat(string(Gap), d)
	} else if d < 0 {
		a += strings.Repeat(string(Gap), -d)
	}
	return a, b
}
