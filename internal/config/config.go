package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/microlab-cli/internal/analysis"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Columns maps record fields to the dataset's header names.
type Columns struct {
	Month           string `mapstructure:"month" yaml:"month"`
	Material        string `mapstructure:"material" yaml:"material"`
	GroupedMaterial string `mapstructure:"grouped_material" yaml:"grouped_material"`
	Location        string `mapstructure:"location" yaml:"location"`
	Microorganism   string `mapstructure:"microorganism" yaml:"microorganism"`
	OrganismType    string `mapstructure:"organism_type" yaml:"organism_type"`
}

// Global configuration structure.
type Global struct {
	Columns Columns `mapstructure:"columns" yaml:"columns"`

	Antibiotics          []string `mapstructure:"antibiotics" yaml:"antibiotics"`
	EvolutionAntibiotics []string `mapstructure:"evolution_antibiotics" yaml:"evolution_antibiotics"`
	Mechanisms           []string `mapstructure:"mechanisms" yaml:"mechanisms"`
	OrganismTypes        []string `mapstructure:"organism_types" yaml:"organism_types"`

	TopN              int      `mapstructure:"top_n" yaml:"top_n"`
	EvolutionTopN     int      `mapstructure:"evolution_top_n" yaml:"evolution_top_n"`
	PrevalencePrimary string   `mapstructure:"prevalence_primary" yaml:"prevalence_primary"`
	PrevalenceLimit   int      `mapstructure:"prevalence_limit" yaml:"prevalence_limit"`
	PrevalenceOthers  []string `mapstructure:"prevalence_others" yaml:"prevalence_others"`

	// Result vocabularies, matched case-insensitively as substrings.
	SensitiveTerms []string `mapstructure:"sensitive_terms" yaml:"sensitive_terms"`
	ResistantTerms []string `mapstructure:"resistant_terms" yaml:"resistant_terms"`
	MechanismTerms []string `mapstructure:"mechanism_terms" yaml:"mechanism_terms"`
	FoldAccents    bool     `mapstructure:"fold_accents" yaml:"fold_accents"`

	// Input
	Delimiter   string `mapstructure:"delimiter" yaml:"delimiter"`
	SheetName   string `mapstructure:"sheet_name" yaml:"sheet_name"`
	SheetIndex  int    `mapstructure:"sheet_index" yaml:"sheet_index"`
	SQLiteTable string `mapstructure:"sqlite_table" yaml:"sqlite_table"`

	OutputFormat string `mapstructure:"output_format" yaml:"output_format"`
	LogLevel     string `mapstructure:"log_level" yaml:"log_level"`
}

// OutputFormats lists the accepted output_format values.
var OutputFormats = []string{"markdown", "json", "yaml"}

// Default returns the built-in configuration without reading files or env.
func Default() *Global {
	s := analysis.DefaultSchema()
	q := analysis.DefaultQuota()
	return &Global{
		Columns: Columns{
			Month:           s.Headers[analysis.FieldMonth],
			Material:        s.Headers[analysis.FieldMaterial],
			GroupedMaterial: s.Headers[analysis.FieldGroupedMaterial],
			Location:        s.Headers[analysis.FieldLocation],
			Microorganism:   s.Headers[analysis.FieldMicroorganism],
			OrganismType:    s.Headers[analysis.FieldOrganismType],
		},
		Antibiotics:          clone(analysis.DefaultAntibiotics),
		EvolutionAntibiotics: clone(analysis.EvolutionAntibiotics),
		Mechanisms:           clone(analysis.DefaultMechanisms),
		OrganismTypes:        clone(analysis.DefaultOrganismTypes),
		TopN:                 analysis.DefaultTopN,
		EvolutionTopN:        analysis.DefaultTopN,
		PrevalencePrimary:    q.Primary,
		PrevalenceLimit:      q.PrimaryLimit,
		PrevalenceOthers:     clone(q.Others),
		SensitiveTerms:       []string{"sensível"},
		ResistantTerms:       []string{"resistente"},
		MechanismTerms:       []string{"positivo", "sim", "presente"},
		SheetIndex:           1,
		SQLiteTable:          "samples",
		OutputFormat:         "markdown",
		LogLevel:             "info",
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("columns.month", d.Columns.Month)
	v.SetDefault("columns.material", d.Columns.Material)
	v.SetDefault("columns.grouped_material", d.Columns.GroupedMaterial)
	v.SetDefault("columns.location", d.Columns.Location)
	v.SetDefault("columns.microorganism", d.Columns.Microorganism)
	v.SetDefault("columns.organism_type", d.Columns.OrganismType)
	v.SetDefault("antibiotics", d.Antibiotics)
	v.SetDefault("evolution_antibiotics", d.EvolutionAntibiotics)
	v.SetDefault("mechanisms", d.Mechanisms)
	v.SetDefault("organism_types", d.OrganismTypes)
	v.SetDefault("top_n", d.TopN)
	v.SetDefault("evolution_top_n", d.EvolutionTopN)
	v.SetDefault("prevalence_primary", d.PrevalencePrimary)
	v.SetDefault("prevalence_limit", d.PrevalenceLimit)
	v.SetDefault("prevalence_others", d.PrevalenceOthers)
	v.SetDefault("sensitive_terms", d.SensitiveTerms)
	v.SetDefault("resistant_terms", d.ResistantTerms)
	v.SetDefault("mechanism_terms", d.MechanismTerms)
	v.SetDefault("fold_accents", d.FoldAccents)
	v.SetDefault("delimiter", d.Delimiter)
	v.SetDefault("sheet_name", d.SheetName)
	v.SetDefault("sheet_index", d.SheetIndex)
	v.SetDefault("sqlite_table", d.SQLiteTable)
	v.SetDefault("output_format", d.OutputFormat)
	v.SetDefault("log_level", d.LogLevel)
}

// Dir returns the per-user config directory, ~/.microlab.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".microlab"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.microlab/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := Dir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults. An explicit cfgFile must exist.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("MICROLAB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var nf viper.ConfigFileNotFoundError
			if !errors.As(err, &nf) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the configuration for values the engine cannot use.
func (c *Global) Validate() error {
	if c.TopN <= 0 {
		return fmt.Errorf("invalid config: top_n must be > 0, got %d", c.TopN)
	}
	if c.EvolutionTopN <= 0 {
		return fmt.Errorf("invalid config: evolution_top_n must be > 0, got %d", c.EvolutionTopN)
	}
	if len(c.Antibiotics) == 0 {
		return errors.New("invalid config: antibiotics must not be empty")
	}
	if len(c.EvolutionAntibiotics) == 0 {
		return errors.New("invalid config: evolution_antibiotics must not be empty")
	}
	if len(c.Mechanisms) == 0 {
		return errors.New("invalid config: mechanisms must not be empty")
	}
	if strings.TrimSpace(c.PrevalencePrimary) == "" {
		return errors.New("invalid config: prevalence_primary must not be empty")
	}
	if len(c.SensitiveTerms) == 0 || len(c.ResistantTerms) == 0 || len(c.MechanismTerms) == 0 {
		return errors.New("invalid config: result vocabularies must not be empty")
	}
	if !validFormat(c.OutputFormat) {
		return fmt.Errorf("invalid config: output_format %q (use %s)", c.OutputFormat, strings.Join(OutputFormats, "|"))
	}
	if err := c.Schema().Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Schema builds the record schema from the configured headers and columns.
func (c *Global) Schema() analysis.Schema {
	s := analysis.Schema{
		Headers: map[analysis.Field]string{
			analysis.FieldMonth:           c.Columns.Month,
			analysis.FieldMaterial:        c.Columns.Material,
			analysis.FieldGroupedMaterial: c.Columns.GroupedMaterial,
			analysis.FieldLocation:        c.Columns.Location,
			analysis.FieldMicroorganism:   c.Columns.Microorganism,
			analysis.FieldOrganismType:    c.Columns.OrganismType,
		},
	}
	var results []string
	seen := map[string]bool{}
	for _, list := range [][]string{c.Antibiotics, c.EvolutionAntibiotics, c.Mechanisms} {
		for _, col := range list {
			if !seen[col] {
				seen[col] = true
				results = append(results, col)
			}
		}
	}
	s.Results = results
	return s
}

// Quota returns the prevalence category quota.
func (c *Global) Quota() analysis.QuotaRule {
	return analysis.QuotaRule{
		Primary:      c.PrevalencePrimary,
		PrimaryLimit: c.PrevalenceLimit,
		Others:       clone(c.PrevalenceOthers),
	}
}

// Vocabulary returns the result matchers.
func (c *Global) Vocabulary() analysis.ResultVocabulary {
	return analysis.NewVocabulary(c.SensitiveTerms, c.ResistantTerms, c.MechanismTerms, c.FoldAccents)
}

func validFormat(f string) bool {
	for _, ok := range OutputFormats {
		if f == ok {
			return true
		}
	}
	return false
}

func clone(s []string) []string { return append([]string(nil), s...) }
