package cmd

import (
	"github.com/KaramelBytes/microlab-cli/internal/analysis"
	"github.com/KaramelBytes/microlab-cli/internal/report"
	"github.com/spf13/cobra"
)

var optionsCmd = &cobra.Command{
	Use:   "options <dataset> <field>",
	Short: "List the distinct non-empty values of a field",
	Long:  `Lists the values a filter on <field> can take, sorted, over the whole dataset.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := analysis.ParseField(args[1])
		if err != nil {
			return err
		}
		store, err := openStore(args[0])
		if err != nil {
			return err
		}
		doc := report.Document{
			Kind:     report.KindOptions,
			Source:   store.Source(),
			Total:    store.Len(),
			Filtered: store.Len(),
			Field:    f,
			Result:   report.Options{Values: store.DistinctValues(f)},
		}
		return emit(cmd, doc)
	},
}

func init() {
	rootCmd.AddCommand(optionsCmd)
	addInputFlags(optionsCmd)
	addOutputFlags(optionsCmd)
}
