package main

import (
	"fmt"

	"github.com/JonMunkholm/lotto/internal/application"
	"github.com/JonMunkholm/lotto/internal/core"
	"github.com/JonMunkholm/lotto/internal/source"
	"github.com/spf13/cobra"
)

func newPushCmd(opts *globalOptions) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "push",
		Short: "Validate a table file and store it in PostgreSQL for the postgres source",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, _, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if cfg.Database.URL == "" {
				return fmt.Errorf("DATABASE_URL is required for push")
			}
			if name == "" {
				name = cfg.Source.TableName
			}

			file := source.NewFile(cfg.Source.Path)
			body, err := file.ReadText(ctx)
			if err != nil {
				return err
			}
			t, err := core.ParseTable(body, core.ParseOptions{
				Indicator: cfg.Table.Indicator,
				Sentinels: cfg.Table.Sentinels,
			})
			if err != nil {
				return fmt.Errorf("%s: %s", file.Name(), core.FormatUserError(err))
			}

			pool, err := application.OpenPool(ctx, cfg.Database)
			if err != nil {
				return err
			}
			defer pool.Close()

			pg := source.NewPostgres(pool, name)
			if err := pg.EnsureSchema(ctx); err != nil {
				return err
			}
			if err := pg.Save(ctx, body); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "stored %s as %s (%d rows, %d slots)\n",
				file.Name(), pg.Name(), t.RowCount(), t.SlotCount())
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "table name (default: SOURCE_TABLE_NAME)")
	return cmd
}
