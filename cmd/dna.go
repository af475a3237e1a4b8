package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jjtimmons/biohack/internal/match"
	"github.com/jjtimmons/biohack/internal/render"
	"github.com/jjtimmons/biohack/internal/seq"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// dnaCmd is the parent of the commands on DNA sequences
var dnaCmd = &cobra.Command{
	Use:                        "dna",
	Short:                      "Screen a DNA sequence for disease associated genes",
	SuggestionsMinimumDistance: 2,
}

// dnaMatchCmd is for matching a DNA sequence against the gene table
var dnaMatchCmd = &cobra.Command{
	Use:                        "match [sequence]",
	Short:                      "Find the gene most identical to a DNA sequence",
	RunE:                       runDNAMatch,
	SuggestionsMinimumDistance: 2,
	Long: `Match a DNA sequence against a table of genes using local alignment.

The gene with the highest %-identity is reported if it's at least
--identity percent identical, along with the risk of developing its
associated condition. Amino acid and RNA sequences are rejected.

Every record of a multi-FASTA file passed with --in is matched.

The gene table needs the columns gene, dna_seq, condition and risk.`,
	Example: `  biohack dna match ATCGATCGATCG
  biohack dna match --in query.fa --reference genes.xlsx`,
	Aliases: []string{"find", "search"},
}

func runDNAMatch(cmd *cobra.Command, args []string) error {
	c, p, err := setup(cmd)
	if err != nil {
		return err
	}

	records, err := dnaInput(cmd, args)
	if err != nil {
		return err
	}

	var genes []match.Gene
	for i, r := range records {
		if len(records) > 1 {
			if i > 0 {
				p.Info("")
			}
			p.Info(">%s", r.ID)
		}

		result := seq.Validate(r.Seq)
		if !result.OK() {
			p.Error("%s", result.Kind.Message())
			continue
		}

		if genes == nil {
			if genes, err = match.LoadGenes(c.DNA.Reference); err != nil {
				return fmt.Errorf("failed to load genes: %w", err)
			}
		}
		if c.Verbose {
			stderr.Printf("aligning %d bp against %d genes from %s", len(result.Seq), len(genes), c.DNA.Reference)
		}

		bar := render.NewProgress(progressWriter(cmd), len(genes), "aligning")
		decision := c.Selector().Select(result.Seq, genes, bar.Set)
		p.Decision(decision, c.Verbose)
	}
	return nil
}

// dnaInput returns the sequences to match, from --in or the arguments
func dnaInput(cmd *cobra.Command, args []string) ([]seq.Record, error) {
	in, _ := cmd.Flags().GetString("in")
	if in == "" {
		return []seq.Record{{ID: "input", Seq: strings.Join(args, "")}}, nil
	}
	if len(args) > 0 {
		return nil, fmt.Errorf("pass a sequence or --in, not both")
	}

	records, err := seq.ReadFASTA(in)
	if err != nil {
		return nil, fmt.Errorf("failed to read sequence file: %w", err)
	}
	return records, nil
}

// progressWriter is where progress bars are drawn: stderr when it's a
// terminal. nil when it's a buffer, a regular file or a pipe.
func progressWriter(cmd *cobra.Command) io.Writer {
	f, ok := cmd.ErrOrStderr().(*os.File)
	if !ok {
		return nil
	}
	if fi, err := f.Stat(); err != nil || fi.Mode()&os.ModeCharDevice == 0 {
		return nil
	}
	return f
}

// set flags
func init() {
	dnaMatchCmd.Flags().StringP("in", "i", "", "FASTA or text file with the sequence to match")
	dnaMatchCmd.Flags().StringP("reference", "r", "", "table of genes <CSV, TSV or XLSX>")
	dnaMatchCmd.Flags().Float64P("identity", "t", match.DefaultMinIdentity, "lowest %-identity reported as a match")

	viper.BindPFlag("dna.reference", dnaMatchCmd.Flags().Lookup("reference"))
	viper.BindPFlag("dna.min-identity", dnaMatchCmd.Flags().Lookup("identity"))

	dnaCmd.AddCommand(dnaMatchCmd)
	RootCmd.AddCommand(dnaCmd)
}
