package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/JonMunkholm/lotto/internal/core"
	"github.com/spf13/cobra"
)

func newInspectCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Parse a table and show its shape and per-slot band sizes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, sel, err := opts.loadConfig()
			if err != nil {
				return err
			}
			app, err := openApp(cmd.Context(), cfg, sel)
			if err != nil {
				return err
			}
			defer app.Close()

			t, err := app.Service.Table()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "source:    %s\n", app.Source.Name())
			fmt.Fprintf(out, "layout:    %s (%s-delimited)\n", t.Layout(), t.Delimiter())
			fmt.Fprintf(out, "rows:      %d (%d distinct numbers)\n", t.RowCount(), len(t.Numbers()))
			fmt.Fprintf(out, "slots:     %d\n", t.SlotCount())
			fmt.Fprintf(out, "mode:      %s\n", app.Service.Mode())
			fmt.Fprintf(out, "columns:   %s\n\n", strings.Join(t.Columns(), ", "))

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SLOT\tCOLUMN\tTOP\tBOTTOM\tRANDOM")
			for slot := 1; slot <= t.SlotCount(); slot++ {
				column, _ := t.SlotColumn(slot)
				row := []string{fmt.Sprint(slot), column}
				for _, p := range core.Policies {
					nums, err := app.Service.Eligible(slot, p)
					if err != nil {
						return err
					}
					row = append(row, fmt.Sprint(len(nums)))
				}
				fmt.Fprintln(tw, strings.Join(row, "\t"))
			}
			return tw.Flush()
		},
	}
}
