package cmd

import (
	"fmt"
	"strings"

	cfgpkg "github.com/KaramelBytes/microlab-cli/internal/config"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set microlab configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := settings()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "columns.month: %s\n", c.Columns.Month)
		fmt.Fprintf(out, "columns.material: %s\n", c.Columns.Material)
		fmt.Fprintf(out, "columns.grouped_material: %s\n", c.Columns.GroupedMaterial)
		fmt.Fprintf(out, "columns.location: %s\n", c.Columns.Location)
		fmt.Fprintf(out, "columns.microorganism: %s\n", c.Columns.Microorganism)
		fmt.Fprintf(out, "columns.organism_type: %s\n", c.Columns.OrganismType)
		fmt.Fprintf(out, "antibiotics: %d columns\n", len(c.Antibiotics))
		fmt.Fprintf(out, "evolution_antibiotics: %d columns\n", len(c.EvolutionAntibiotics))
		fmt.Fprintf(out, "mechanisms: %d columns\n", len(c.Mechanisms))
		fmt.Fprintf(out, "organism_types: %s\n", strings.Join(c.OrganismTypes, ", "))
		fmt.Fprintf(out, "top_n: %d\n", c.TopN)
		fmt.Fprintf(out, "evolution_top_n: %d\n", c.EvolutionTopN)
		fmt.Fprintf(out, "prevalence_primary: %s\n", c.PrevalencePrimary)
		fmt.Fprintf(out, "prevalence_limit: %d\n", c.PrevalenceLimit)
		fmt.Fprintf(out, "prevalence_others: %s\n", strings.Join(c.PrevalenceOthers, ", "))
		fmt.Fprintf(out, "sensitive_terms: %s\n", strings.Join(c.SensitiveTerms, ", "))
		fmt.Fprintf(out, "resistant_terms: %s\n", strings.Join(c.ResistantTerms, ", "))
		fmt.Fprintf(out, "mechanism_terms: %s\n", strings.Join(c.MechanismTerms, ", "))
		fmt.Fprintf(out, "fold_accents: %t\n", c.FoldAccents)
		if c.Delimiter != "" {
			fmt.Fprintf(out, "delimiter: %q\n", c.Delimiter)
		}
		if c.SheetName != "" {
			fmt.Fprintf(out, "sheet_name: %s\n", c.SheetName)
		}
		fmt.Fprintf(out, "sheet_index: %d\n", c.SheetIndex)
		fmt.Fprintf(out, "sqlite_table: %s\n", c.SQLiteTable)
		fmt.Fprintf(out, "output_format: %s\n", c.OutputFormat)
		fmt.Fprintf(out, "log_level: %s\n", c.LogLevel)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Long:  `Sets one key. List keys take a comma-separated value.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		c := *settings()
		if err := setKey(&c, key, val); err != nil {
			return err
		}
		if err := c.Validate(); err != nil {
			return err
		}
		if err := cfgpkg.Save(&c, cfgFile); err != nil {
			return err
		}
		cfg = &c
		fmt.Fprintln(cmd.OutOrStdout(), "✓ Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

func setKey(c *cfgpkg.Global, key, val string) error {
	switch key {
	case "columns.month":
		c.Columns.Month = val
	case "columns.material":
		c.Columns.Material = val
	case "columns.grouped_material":
		c.Columns.GroupedMaterial = val
	case "columns.location":
		c.Columns.Location = val
	case "columns.microorganism":
		c.Columns.Microorganism = val
	case "columns.organism_type":
		c.Columns.OrganismType = val
	case "antibiotics":
		c.Antibiotics = splitList(val)
	case "evolution_antibiotics":
		c.EvolutionAntibiotics = splitList(val)
	case "mechanisms":
		c.Mechanisms = splitList(val)
	case "organism_types":
		c.OrganismTypes = splitList(val)
	case "prevalence_others":
		c.PrevalenceOthers = splitList(val)
	case "sensitive_terms":
		c.SensitiveTerms = splitList(val)
	case "resistant_terms":
		c.ResistantTerms = splitList(val)
	case "mechanism_terms":
		c.MechanismTerms = splitList(val)
	case "top_n", "evolution_top_n", "prevalence_limit", "sheet_index":
		i, err := cast.ToIntE(val)
		if err != nil {
			return fmt.Errorf("invalid int for %s: %v", key, val)
		}
		switch key {
		case "top_n":
			c.TopN = i
		case "evolution_top_n":
			c.EvolutionTopN = i
		case "prevalence_limit":
			c.PrevalenceLimit = i
		default:
			c.SheetIndex = i
		}
	case "fold_accents":
		b, err := cast.ToBoolE(val)
		if err != nil {
			return fmt.Errorf("invalid bool for fold_accents: %v", val)
		}
		c.FoldAccents = b
	case "prevalence_primary":
		c.PrevalencePrimary = val
	case "delimiter":
		c.Delimiter = val
	case "sheet_name":
		c.SheetName = val
	case "sqlite_table":
		c.SQLiteTable = val
	case "output_format":
		c.OutputFormat = strings.ToLower(val)
	case "log_level":
		c.LogLevel = strings.ToLower(val)
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
