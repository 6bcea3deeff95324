package cmd

import (
	"github.com/KaramelBytes/microlab-cli/internal/dashboard"
	"github.com/KaramelBytes/microlab-cli/internal/report"
	"github.com/spf13/cobra"
)

var dashDetails int

var dashboardCmd = &cobra.Command{
	Use:   "dashboard <dataset>",
	Short: "Compute every report over one filtered view",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sel, err := selectionFromFlags()
		if err != nil {
			return err
		}
		store, err := openStore(args[0])
		if err != nil {
			return err
		}
		d := dashboard.New(store, settings()).WithDetailLimit(dashDetails).Apply(sel)
		snap, err := d.Compute(cmd.Context())
		if err != nil {
			return err
		}
		doc := report.Document{
			Kind:     report.KindDashboard,
			Source:   snap.Source,
			Total:    snap.Total,
			Filtered: snap.Filtered,
			Filters:  snap.Filters,
			Result:   snap,
		}
		return emit(cmd, doc)
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
	addViewFlags(dashboardCmd)
	dashboardCmd.Flags().IntVar(&dashDetails, "details", dashboard.DefaultDetailLimit, "detail rows to include")
}
