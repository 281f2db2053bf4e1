package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/JonMunkholm/lotto/internal/core"
	"github.com/spf13/cobra"
)

type generateOptions struct {
	count  int
	slots  string
	preset string
	seed   int64
	mode   string
	order  string
	json   bool
}

func newGenerateCmd(opts *globalOptions) *cobra.Command {
	g := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate combinations from a table",
		Example: `  lottogen generate -f lotto_data.txt -n 10 --slots top,bottom,random,random,random,random
  lottogen generate --preset hot --seed 42 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, sel, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("seed") {
				cfg.Generate.RandomSource = core.RandomSourcePCG
				cfg.Generate.Seed = g.seed
			}
			if g.mode != "" {
				sel.Mode = g.mode
			}
			if g.order != "" {
				cfg.Generate.Order = g.order
			}

			app, err := openApp(cmd.Context(), cfg, sel)
			if err != nil {
				return err
			}
			defer app.Close()

			var policies core.SlotPolicies
			switch {
			case g.slots != "":
				policies, err = core.ParsePolicies(strings.Split(g.slots, ","))
			case g.preset != "":
				policies, err = app.Service.Preset(g.preset)
			default:
				policies, err = app.Service.Preset(app.Service.DefaultPreset())
			}
			if err != nil {
				return userError(err)
			}

			res, err := app.Service.Generate(cmd.Context(), core.GenerateRequest{Count: g.count, Policies: policies})
			if err != nil {
				return userError(err)
			}

			out := cmd.OutOrStdout()
			if g.json {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			for _, e := range res.Entries {
				if e.Separator {
					fmt.Fprintln(out, "---")
					continue
				}
				fmt.Fprintln(out, e.Record.Text())
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVarP(&g.count, "count", "n", 5, "number of combinations (1-20)")
	f.StringVar(&g.slots, "slots", "", "six comma-separated policies: top, bottom, random")
	f.StringVar(&g.preset, "preset", "", "named slot preset from the selection file")
	f.Int64Var(&g.seed, "seed", 0, "seed for repeatable draws (forces the pcg source)")
	f.StringVar(&g.mode, "mode", "", "selection mode: threshold or rank")
	f.StringVar(&g.order, "order", "", "slot order: grouped or sequential")
	f.BoolVar(&g.json, "json", false, "print the batch as JSON")
	cmd.MarkFlagsMutuallyExclusive("slots", "preset")
	return cmd
}

// userError replaces errors with a known mapping by their display message
// and code. Unmapped errors pass through unchanged.
func userError(err error) error {
	if !core.IsUserFacing(err) {
		return err
	}
	return errors.New(core.FormatUserError(err))
}
