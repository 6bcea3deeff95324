package cmd

import (
	"github.com/KaramelBytes/microlab-cli/internal/analysis"
	"github.com/KaramelBytes/microlab-cli/internal/report"
	"github.com/spf13/cobra"
)

var distField string

var distributionCmd = &cobra.Command{
	Use:   "distribution <dataset>",
	Short: "Count records per value of a field",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := analysis.ParseField(distField)
		if err != nil {
			return err
		}
		v, err := openView(args[0])
		if err != nil {
			return err
		}
		doc := v.document(report.KindDistribution, analysis.Distribution(v.records, f))
		doc.Field = f
		return emit(cmd, doc)
	},
}

func init() {
	rootCmd.AddCommand(distributionCmd)
	addViewFlags(distributionCmd)
	distributionCmd.Flags().StringVar(&distField, "field", string(analysis.FieldMaterial), "field to group by")
}
