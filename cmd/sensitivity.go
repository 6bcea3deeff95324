package cmd

import (
	"github.com/KaramelBytes/microlab-cli/internal/analysis"
	"github.com/KaramelBytes/microlab-cli/internal/report"
	"github.com/spf13/cobra"
)

var sensTopN int

var sensitivityCmd = &cobra.Command{
	Use:   "sensitivity <dataset>",
	Short: "Percent sensible per antibiotic for the most frequent organisms",
	Long: `Builds the organism by antibiotic sensitivity matrix. Only explicit sensible or
resistant results count toward a cell; a cell with none prints N/A.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := openView(args[0])
		if err != nil {
			return err
		}
		c := settings()
		topN := c.TopN
		if sensTopN > 0 {
			topN = sensTopN
		}
		tab := analysis.BuildCrossTab(v.records, analysis.SensitivityConfig(c.Antibiotics, c.Vocabulary(), topN))
		return emit(cmd, v.document(report.KindSensitivity, tab))
	},
}

func init() {
	rootCmd.AddCommand(sensitivityCmd)
	addViewFlags(sensitivityCmd)
	sensitivityCmd.Flags().IntVar(&sensTopN, "top", 0, "number of organisms (overrides top_n)")
}
