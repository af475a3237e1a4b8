package render

import (
	"fmt"
	"strconv"

	"github.com/jjtimmons/biohack/internal/drug"
	"github.com/jjtimmons/biohack/internal/match"
)

// Decision writes the outcome of matching a DNA sequence against the gene table.
func (p *Printer) Decision(d match.Decision, verbose bool) {
	if !d.Matched {
		p.Error("No match found in database :(")
		if verbose && d.Gene != nil {
			p.Info("Closest gene: %s (%.2f%% identity)", d.Gene.Name, d.Identity)
		}
		return
	}

	p.Success("Match found!")
	p.Info("Gene associated with entered sequence: %s (%.2f%% identity)", d.Gene.Name, d.Identity)

	risk := d.Risk()
	p.Info("%s", risk.Headline())
	switch risk {
	case match.HighRisk:
		p.Error("%s", risk.Message(d.Gene.Condition))
	case match.ModerateRisk:
		p.Warning("%s", risk.Message(d.Gene.Condition))
	default:
		p.Success("%s", risk.Message(d.Gene.Condition))
	}

	if verbose {
		a := d.Alignment
		p.Info("score %d, query %d-%d, reference %d-%d", a.Score, a.QueryStart+1, a.QueryEnd, a.RefStart+1, a.RefEnd)
		p.Info("  query     %s", a.AlignedQuery)
		p.Info("  reference %s", a.AlignedReference)
	}
}

// Comparisons writes the advice for each compared drug and a summary table.
func (p *Printer) Comparisons(comparisons []drug.Comparison) {
	for _, c := range comparisons {
		msg := fmt.Sprintf("Drug: %s - Risk Level: %s. %s", c.Name, c.Level, c.Level.Advice())
		switch c.Level {
		case drug.Low:
			p.Success("%s", msg)
		case drug.Medium:
			p.Warning("%s", msg)
		case drug.High:
			p.Error("%s", msg)
		default:
			p.Warning("%s", msg)
		}
	}

	p.Info("")
	p.Table(
		[]string{"Drug Name", "Risk Level", "Molecular Weight Difference (%)", "Active Ingredient Match", "Molecular Formula Match"},
		ComparisonRows(comparisons),
	)
}

// ComparisonRows are the table rows of drug comparisons.
func ComparisonRows(comparisons []drug.Comparison) [][]string {
	rows := make([][]string, 0, len(comparisons))
	for _, c := range comparisons {
		if !c.Found {
			rows = append(rows, []string{c.Name, "Unknown - drug not found", drug.NotAvailable, drug.NotAvailable, drug.NotAvailable})
			continue
		}
		rows = append(rows, []string{
			c.Name,
			c.Level.String(),
			strconv.FormatFloat(c.Deviation*100, 'f', 2, 64),
			strconv.FormatBool(c.IngredientMatch),
			strconv.FormatBool(c.FormulaMatch),
		})
	}
	return rows
}

// Metadata writes the additional information about a drug.
func (p *Printer) Metadata(name string, m drug.Metadata, found bool) {
	p.Info("Additional information about %s:", name)
	if !found {
		p.Info("  No metadata found for this drug")
		return
	}

	rows := make([][]string, 0, 6)
	for _, f := range m.Fields() {
		rows = append(rows, []string{"  " + f[0] + ":", f[1]})
	}
	p.Table(nil, rows)
}
