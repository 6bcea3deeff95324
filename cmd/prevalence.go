package cmd

import (
	"github.com/KaramelBytes/microlab-cli/internal/analysis"
	"github.com/KaramelBytes/microlab-cli/internal/report"
	"github.com/spf13/cobra"
)

var prevLimit int

var prevalenceCmd = &cobra.Command{
	Use:   "prevalence <dataset>",
	Short: "Rank microorganisms by frequency with a per-category quota",
	Long: `Ranks microorganisms by record count. Organisms of the primary category
(prevalence_primary, default Bactéria) are capped at prevalence_limit entries;
organisms of each category in prevalence_others follow uncapped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := openView(args[0])
		if err != nil {
			return err
		}
		rule := settings().Quota()
		if cmd.Flags().Changed("limit") {
			rule.PrimaryLimit = prevLimit
		}
		ranked := analysis.RankPrevalence(v.records, rule)
		return emit(cmd, v.document(report.KindPrevalence, ranked))
	},
}

func init() {
	rootCmd.AddCommand(prevalenceCmd)
	addViewFlags(prevalenceCmd)
	prevalenceCmd.Flags().IntVar(&prevLimit, "limit", 15, "cap for the primary category (negative = no cap)")
}
