package cmd

import (
	"github.com/KaramelBytes/microlab-cli/internal/report"
	"github.com/spf13/cobra"
)

var recLimit int

var recordsCmd = &cobra.Command{
	Use:   "records <dataset>",
	Short: "Show the first matching records",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := openView(args[0])
		if err != nil {
			return err
		}
		rows := v.records
		if recLimit >= 0 && recLimit < len(rows) {
			rows = rows[:recLimit]
		}
		return emit(cmd, v.document(report.KindRecords, rows))
	},
}

func init() {
	rootCmd.AddCommand(recordsCmd)
	addViewFlags(recordsCmd)
	recordsCmd.Flags().IntVar(&recLimit, "limit", 20, "maximum rows to show (negative = all)")
}
