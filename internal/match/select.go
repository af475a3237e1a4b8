package match

import (
	"github.com/jjtimmons/biohack/internal/align"
)

// DefaultMinIdentity is the %-identity a gene needs to be reported as a match.
const DefaultMinIdentity = 90.0

// Selector finds the reference gene most identical to a query sequence.
type Selector struct {
	Scoring align.Scoring

	// MinIdentity is the lowest %-identity reported as a match
	MinIdentity float64
}

// Decision is the outcome of matching a query against the gene table.
type Decision struct {
	// Gene is the most identical gene, nil if none aligned
	Gene *Gene

	// Identity is the Gene's %-identity with the query
	Identity float64

	// Alignment of the query against Gene
	Alignment align.Result

	// Matched is whether Identity reached the selector's MinIdentity
	Matched bool
}

// Risk of the matched gene. Only meaningful if the decision Matched.
func (d Decision) Risk() Risk {
	if d.Gene == nil {
		return LowRisk
	}
	return Classify(d.Gene.Risk)
}

// NewSelector returns a Selector with the default scoring and threshold.
func NewSelector() Selector {
	return Selector{Scoring: align.DefaultScoring, MinIdentity: DefaultMinIdentity}
}

// Select aligns the query against every gene and keeps the one with the
// highest %-identity. A gene only replaces the current best if it's
// strictly better, so the first of equally identical genes is kept.
// Genes that don't align at all are skipped.
//
// progress, if not nil, is called after each gene with the number of
// genes done and the total.
func (s Selector) Select(query string, genes []Gene, progress func(done, total int)) Decision {
	var d Decision
	for i := range genes {
		result, ok := align.Local(query, genes[i].Sequence, s.Scoring)
		if ok {
			if identity := result.Identity(); identity > d.Identity {
				d.Gene = &genes[i]
				d.Identity = identity
				d.Alignment = result
			}
		}

		if progress != nil {
			progress(i+1, len(genes))
		}
	}

	d.Matched = d.Gene != nil && s.Reached(d.Identity)
	return d
}

// Reached returns whether an identity is high enough to count as a match.
func (s Selector) Reached(identity float64) bool {
	return identity >= s.MinIdentity
}
