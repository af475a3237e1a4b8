// Package match is for finding the reference gene closest to a DNA sequence
// and classifying the risk associated with it.
package match

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jjtimmons/biohack/internal/align"
	"github.com/jjtimmons/biohack/internal/table"
)

// columns of a gene reference table (after header normalization)
const (
	colGene      = "gene"
	colSequence  = "dna_seq"
	colCondition = "condition"
	colRisk      = "risk"
)

// Gene is a row in the reference table of cancer associated genes.
type Gene struct {
	// Name of the gene, ex "BRCA1"
	Name string

	// Sequence is the gene's reference sequence (uppercase)
	Sequence string

	// Condition associated with the gene
	Condition string

	// Risk is the risk indicator of the condition, higher is worse
	Risk int
}

// LoadGenes reads a gene reference table from a CSV/XLSX file.
func LoadGenes(path string) ([]Gene, error) {
	t, err := table.Read(path, table.Options{})
	if err != nil {
		return nil, err
	}
	return GenesFromTable(t)
}

// GenesFromTable converts the rows of a table into Genes. Every row needs
// a sequence and an integer risk.
func GenesFromTable(t *table.Table) ([]Gene, error) {
	if err := t.Require(colGene, colSequence, colCondition, colRisk); err != nil {
		return nil, err
	}

	var genes []Gene
	for _, r := range t.Records() {
		seq := strings.ToUpper(strings.Join(strings.Fields(r.Get(colSequence)), ""))
		if seq == "" {
			return nil, r.Errorf("no sequence for gene %q", r.Get(colGene))
		}
		if err := align.Check(seq); err != nil {
			return nil, r.Errorf("sequence of gene %q: %v", r.Get(colGene), err)
		}

		risk, err := strconv.Atoi(r.Get(colRisk))
		if err != nil {
			return nil, r.Errorf("risk of gene %q is not an integer: %q", r.Get(colGene), r.Get(colRisk))
		}

		genes = append(genes, Gene{
			Name:      r.Get(colGene),
			Sequence:  seq,
			Condition: r.Get(colCondition),
			Risk:      risk,
		})
	}

	if len(genes) == 0 {
		return nil, fmt.Errorf("no genes in %s", t.Path)
	}
	return genes, nil
}
