// Command lottogen parses probability tables and generates combinations
// from the command line.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/lotto/internal/application"
	"github.com/JonMunkholm/lotto/internal/config"
	"github.com/JonMunkholm/lotto/internal/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	file          string
	selectionFile string
	logLevel      string
	logFormat     string
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "lottogen",
		Short: "Slot-band lotto combination generator",
		Long: `lottogen reads a per-slot probability table (number, then count and
percentage for each of six slots) and draws 6-number combinations whose
slots follow TOP, BOTTOM or RANDOM bands.

Settings not given as flags come from the environment (and .env), the same
variables the web server reads.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupWriter(cmd.ErrOrStderr(), opts.logLevel, opts.logFormat)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.file, "file", "f", "", "probability table file (default: SOURCE_PATH)")
	pf.StringVar(&opts.selectionFile, "selection", "", "selection YAML file (default: SELECTION_FILE)")
	pf.StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	pf.StringVar(&opts.logFormat, "log-format", "text", "log format: text or json")

	root.AddCommand(newInspectCmd(opts))
	root.AddCommand(newGenerateCmd(opts))
	root.AddCommand(newPushCmd(opts))
	return root
}

// loadConfig reads environment configuration and applies the global flags.
// The CLI always reads a local file and never watches it.
func (o *globalOptions) loadConfig() (*config.Config, *config.Selection, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	cfg.Source.Kind = "file"
	cfg.Source.Watch = false
	if o.file != "" {
		cfg.Source.Path = o.file
	}

	selPath := cfg.Generate.SelectionFile
	if o.selectionFile != "" {
		selPath = o.selectionFile
	}
	sel, err := config.LoadSelection(selPath)
	if err != nil {
		return nil, nil, err
	}
	return cfg, sel, nil
}

// openApp builds and loads the application for a file source.
func openApp(ctx context.Context, cfg *config.Config, sel *config.Selection) (*application.App, error) {
	app, err := application.New(ctx, cfg, sel)
	if err != nil {
		return nil, err
	}
	if err := app.Load(ctx); err != nil {
		app.Close()
		return nil, err
	}
	return app, nil
}

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
