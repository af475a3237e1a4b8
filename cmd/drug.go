package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var addHelp = `a newly verified drug for this run: "name,ingredient,formula,weight".
Can be repeated. The ingredient may be a comma separated list.`

// drugCmd is the parent of the commands on drugs
var drugCmd = &cobra.Command{
	Use:                        "drug",
	Short:                      "Check medicines for counterfeits",
	SuggestionsMinimumDistance: 2,
	Long: `Compare a drug's active ingredient, molecular formula and molecular weight
against a table of verified drugs to judge whether it's a counterfeit.

The verified table needs the columns "Drug Name", "Active Ingredient",
"Molecular Formula" and "Molecular Weight (g/mol)".`,
	Aliases: []string{"drugs", "medicine"},
}

// drugCheckCmd is for checking a single drug
var drugCheckCmd = &cobra.Command{
	Use:                        "check",
	Short:                      "Check a drug against the verified drugs",
	RunE:                       runDrugCheck,
	SuggestionsMinimumDistance: 2,
	Long: `Check a drug against every verified drug with its name.

The risk is High if the active ingredient or formula don't match. Otherwise
it depends on the molecular weight's deviation from the verified weight.`,
	Example: `  biohack drug check --name Tylenol --ingredient acetaminophen --formula C8H9NO2 --weight 151.16`,
}

// drugScanCmd is for checking a table of drugs
var drugScanCmd = &cobra.Command{
	Use:                        "scan",
	Short:                      "Check every drug in a table against the verified drugs",
	RunE:                       runDrugScan,
	SuggestionsMinimumDistance: 2,
	Example:                    `  biohack drug scan --samples counterfeit_drugs.csv`,
}

// drugInfoCmd is for showing a drug's metadata
var drugInfoCmd = &cobra.Command{
	Use:                        "info [name]",
	Short:                      "Show the dosage form, appearance and manufacturer of a drug",
	RunE:                       runDrugInfo,
	Args:                       cobra.MinimumNArgs(1),
	SuggestionsMinimumDistance: 2,
	Example:                    `  biohack drug info Tylenol --metadata drug_metadata.csv --metadata-encoding cp1252`,
}

// drugReportCmd is for reporting a suspicious drug
var drugReportCmd = &cobra.Command{
	Use:                        "report [text]",
	Short:                      "Report a drug you think is counterfeit",
	RunE:                       runDrugReport,
	Args:                       cobra.MinimumNArgs(1),
	SuggestionsMinimumDistance: 2,
}

// drugSessionCmd is for checking drugs interactively
var drugSessionCmd = &cobra.Command{
	Use:                        "session",
	Short:                      "Check, add and report drugs interactively",
	RunE:                       runDrugSession,
	SuggestionsMinimumDistance: 2,
	Long: `Start a session that reads one command per line from stdin.

Drugs added in a session are used for the rest of it, but aren't saved.

` + sessionHelp,
	Aliases: []string{"shell"},
}

// openSession loads the session and adds the drugs passed with --add
func openSession(cmd *cobra.Command) (*session, error) {
	c, p, err := setup(cmd)
	if err != nil {
		return nil, err
	}

	s, err := newSession(c, p)
	if err != nil {
		return nil, err
	}

	adds, _ := cmd.Flags().GetStringArray("add")
	for _, a := range adds {
		s.add(splitFields(a, ","))
	}
	return s, nil
}

func runDrugCheck(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	name, _ := flags.GetString("name")
	ingredient, _ := flags.GetString("ingredient")
	formula, _ := flags.GetString("formula")
	weight, _ := flags.GetString("weight")

	s.checkFields([]string{name, ingredient, formula, weight})
	return nil
}

func runDrugScan(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	return s.scan()
}

func runDrugInfo(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	s.info(strings.Join(args, " "))
	return nil
}

func runDrugReport(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	s.report(strings.Join(args, " "))
	return nil
}

func runDrugSession(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}

	s.printer.Info("%d verified drugs loaded, 'help' lists the commands", s.store.Len())
	return s.run(cmd.InOrStdin())
}

// set flags
func init() {
	drugCheckCmd.Flags().StringP("name", "n", "", "name of the drug")
	drugCheckCmd.Flags().StringP("ingredient", "a", "", "listed active ingredient(s), comma separated")
	drugCheckCmd.Flags().StringP("formula", "f", "", "listed molecular formula of the active ingredient")
	drugCheckCmd.Flags().StringP("weight", "w", "", "listed molecular weight of the active ingredient in g/mol")
	drugCheckCmd.MarkFlagRequired("name")

	drugCmd.PersistentFlags().String("verified", "", "table of verified drugs <CSV, TSV or XLSX>")
	drugCmd.PersistentFlags().String("samples", "", "table of drugs to scan <CSV, TSV or XLSX>")
	drugCmd.PersistentFlags().String("metadata", "", "table of drug metadata <CSV, TSV or XLSX>")
	drugCmd.PersistentFlags().String("metadata-encoding", "", "encoding of the metadata table, ex cp1252")
	drugCmd.PersistentFlags().StringArray("add", nil, addHelp)

	viper.BindPFlag("drug.verified", drugCmd.PersistentFlags().Lookup("verified"))
	viper.BindPFlag("drug.samples", drugCmd.PersistentFlags().Lookup("samples"))
	viper.BindPFlag("drug.metadata", drugCmd.PersistentFlags().Lookup("metadata"))
	viper.BindPFlag("drug.metadata-encoding", drugCmd.PersistentFlags().Lookup("metadata-encoding"))

	drugCmd.AddCommand(drugCheckCmd)
	drugCmd.AddCommand(drugScanCmd)
	drugCmd.AddCommand(drugInfoCmd)
	drugCmd.AddCommand(drugReportCmd)
	drugCmd.AddCommand(drugSessionCmd)

	RootCmd.AddCommand(drugCmd)
}
