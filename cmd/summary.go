package cmd

import (
	"github.com/KaramelBytes/microlab-cli/internal/analysis"
	"github.com/KaramelBytes/microlab-cli/internal/report"
	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary <dataset>",
	Short: "Count records per organism type",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := openView(args[0])
		if err != nil {
			return err
		}
		s := analysis.Summarize(v.records, settings().OrganismTypes)
		return emit(cmd, v.document(report.KindSummary, s))
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	addViewFlags(summaryCmd)
}
