package cmd

import (
	"strings"

	"github.com/KaramelBytes/microlab-cli/internal/analysis"
	"github.com/KaramelBytes/microlab-cli/internal/report"
	"github.com/spf13/cobra"
)

var (
	evoTopN    int
	evoColumns []string
)

var evolutionCmd = &cobra.Command{
	Use:   "evolution <dataset>",
	Short: "Monthly percent sensible per antibiotic",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := openView(args[0], evoColumns...)
		if err != nil {
			return err
		}
		c := settings()
		topN := c.EvolutionTopN
		if evoTopN > 0 {
			topN = evoTopN
		}
		cols := c.EvolutionAntibiotics
		if len(evoColumns) > 0 {
			cols = nil
			for _, col := range evoColumns {
				if col = strings.TrimSpace(col); col != "" {
					cols = append(cols, col)
				}
			}
		}
		vocab := c.Vocabulary()
		ev := analysis.BuildEvolution(v.records, cols, topN, vocab.Sensitive, vocab.Resistant)
		return emit(cmd, v.document(report.KindEvolution, ev))
	},
}

func init() {
	rootCmd.AddCommand(evolutionCmd)
	addViewFlags(evolutionCmd)
	evolutionCmd.Flags().IntVar(&evoTopN, "top", 0, "number of organisms (overrides evolution_top_n)")
	evolutionCmd.Flags().StringSliceVar(&evoColumns, "antibiotic", nil, "antibiotic columns to chart (repeatable; default evolution_antibiotics)")
}
