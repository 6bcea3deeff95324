package cmd

import (
	"github.com/KaramelBytes/microlab-cli/internal/analysis"
	"github.com/KaramelBytes/microlab-cli/internal/report"
	"github.com/spf13/cobra"
)

var resTopN int

var resistanceCmd = &cobra.Command{
	Use:   "resistance <dataset>",
	Short: "Percent of records with each resistance mechanism",
	Long: `Builds the organism by mechanism matrix. Every record of the organism counts
in the denominator, so untested mechanisms read as 0%.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := openView(args[0])
		if err != nil {
			return err
		}
		c := settings()
		topN := c.TopN
		if resTopN > 0 {
			topN = resTopN
		}
		tab := analysis.BuildCrossTab(v.records, analysis.ResistanceConfig(c.Mechanisms, c.Vocabulary(), topN))
		return emit(cmd, v.document(report.KindResistance, tab))
	},
}

func init() {
	rootCmd.AddCommand(resistanceCmd)
	addViewFlags(resistanceCmd)
	resistanceCmd.Flags().IntVar(&resTopN, "top", 0, "number of organisms (overrides top_n)")
}
