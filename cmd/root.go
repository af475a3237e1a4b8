// Package cmd is for command line interactions with the biohack application
package cmd

import (
	"log"
	"os"

	"github.com/jjtimmons/biohack/config"
	"github.com/jjtimmons/biohack/internal/render"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// stderr is for diagnostics, user facing output goes through a render.Printer
var stderr = log.New(os.Stderr, "", 0)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use: "biohack",
	Short: `Screen DNA for disease associated genes and medicines for counterfeits.
Match a DNA sequence against a table of genes or check a drug's composition against verified drugs`,
	Version:           "0.1.0",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadSettings,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		stderr.Fatalf("%v", err)
	}
}

// loadSettings reads the settings file into viper before any command runs
func loadSettings(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("settings")
	return config.Load(viper.GetViper(), path)
}

// setup returns the settings and a printer to the command's output
func setup(cmd *cobra.Command) (config.Config, *render.Printer, error) {
	c, err := config.New(viper.GetViper())
	if err != nil {
		return c, nil, err
	}
	if c.Verbose {
		stderr.Printf("settings: %+v", c)
	}
	return c, render.New(cmd.OutOrStdout(), !c.NoColor), nil
}

// set flags
func init() {
	config.SetDefaults(viper.GetViper())

	// settings is an optional settings file that overrides the defaults
	RootCmd.PersistentFlags().StringP("settings", "s", "", "settings file (default ./"+config.RootSettingsFile+")")
	RootCmd.PersistentFlags().BoolP("verbose", "v", false, "log diagnostics and alignments")
	RootCmd.PersistentFlags().Bool("no-color", false, "print without color")

	viper.BindPFlag("verbose", RootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("no-color", RootCmd.PersistentFlags().Lookup("no-color"))
}
