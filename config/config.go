// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/jjtimmons/biohack/internal/align"
	"github.com/jjtimmons/biohack/internal/drug"
	"github.com/jjtimmons/biohack/internal/match"
	"github.com/spf13/viper"
)

// RootSettingsFile is the settings file read when --settings isn't passed.
// It's optional, the defaults below are used if it doesn't exist.
const RootSettingsFile = "biohack.yaml"

// EnvPrefix prefixes environment variables that override settings,
// ex BIOHACK_DNA_MIN_IDENTITY
const EnvPrefix = "BIOHACK"

// DNAConfig is settings for matching DNA against the gene table
type DNAConfig struct {
	// path to the table of genes
	Reference string `mapstructure:"reference"`

	// the lowest %-identity reported as a match
	MinIdentity float64 `mapstructure:"min-identity"`

	// local alignment scores
	Scoring align.Scoring `mapstructure:"scoring"`
}

// DrugConfig is settings for checking drugs
type DrugConfig struct {
	// path to the table of verified drugs
	Verified string `mapstructure:"verified"`

	// path to the table of drugs to scan
	Samples string `mapstructure:"samples"`

	// path to the drug metadata table, optional
	Metadata string `mapstructure:"metadata"`

	// encoding of the metadata table, ex cp1252
	MetadataEncoding string `mapstructure:"metadata-encoding"`

	// molecular weight deviations for a low and medium risk
	Thresholds drug.Thresholds `mapstructure:"thresholds"`
}

// Config is the root-level settings struct and is a mix
// of settings available in biohack.yaml and those
// available from the command line
type Config struct {
	DNA DNAConfig `mapstructure:"dna"`

	Drug DrugConfig `mapstructure:"drug"`

	// whether to log diagnostics and alignments
	Verbose bool `mapstructure:"verbose"`

	// whether to print without color
	NoColor bool `mapstructure:"no-color"`
}

// SetDefaults sets the default of every setting on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("dna.reference", "genes.csv")
	v.SetDefault("dna.min-identity", match.DefaultMinIdentity)
	v.SetDefault("dna.scoring.match", align.DefaultScoring.Match)
	v.SetDefault("dna.scoring.mismatch", align.DefaultScoring.Mismatch)
	v.SetDefault("dna.scoring.gap-open", align.DefaultScoring.GapOpen)
	v.SetDefault("dna.scoring.gap-extend", align.DefaultScoring.GapExtend)

	v.SetDefault("drug.verified", "verified_drugs.csv")
	v.SetDefault("drug.samples", "counterfeit_drugs.csv")
	v.SetDefault("drug.metadata", "")
	v.SetDefault("drug.metadata-encoding", "")
	v.SetDefault("drug.thresholds.low", drug.DefaultThresholds.Low)
	v.SetDefault("drug.thresholds.medium", drug.DefaultThresholds.Medium)

	v.SetDefault("verbose", false)
	v.SetDefault("no-color", false)
}

// Load reads the settings file at path into v. A missing file is only an
// error if it was asked for explicitly, ie path isn't RootSettingsFile.
func Load(v *viper.Viper, path string) error {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = RootSettingsFile
	}
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if path == RootSettingsFile && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read settings file %s: %w", path, err)
	}
	return nil
}

// New returns a Config populated by the settings in v (defaults, the
// settings file, environment variables and bound command line flags)
func New(v *viper.Viper) (Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("unable to decode settings: %w", err)
	}

	if err := c.DNA.Scoring.Validate(); err != nil {
		return c, err
	}
	if c.DNA.MinIdentity < 0 || c.DNA.MinIdentity > 100 {
		return c, fmt.Errorf("min identity must be between 0 and 100, got %v", c.DNA.MinIdentity)
	}
	if err := c.Drug.Thresholds.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

// Selector returns a gene selector with the DNA settings.
func (c Config) Selector() match.Selector {
	return match.Selector{Scoring: c.DNA.Scoring, MinIdentity: c.DNA.MinIdentity}
}
