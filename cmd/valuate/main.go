// Command valuate values free agents from the command line without running
// the HTTP service.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	service "github.com/okian/aav/internal/app"
	"github.com/okian/aav/internal/config"
	"github.com/okian/aav/internal/domain/valuation"
	"github.com/okian/aav/pkg/logger"
)

const (
	formatTable = "table"
	formatJSON  = "json"
)

// rootOptions are the flags shared by every subcommand.
type rootOptions struct {
	season     int
	salaryCap  float64
	tablesFile string
	format     string
	noColor    bool
	verbose    bool
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:          "valuate",
		Short:        "Value free-agent contracts",
		Long:         "valuate computes recommended contract AAVs for players, either one at a time or for a whole free-agent pool.",
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if opts.noColor {
				color.NoColor = true
			}
			if opts.format != formatTable && opts.format != formatJSON {
				return fmt.Errorf("unknown format %q (want %s or %s)", opts.format, formatTable, formatJSON)
			}
			level := "error"
			if opts.verbose {
				level = "debug"
			}
			if err := logger.InitWithFormat("text"); err != nil {
				return err
			}
			return logger.SetLevelString(level)
		},
	}

	f := root.PersistentFlags()
	f.IntVar(&opts.season, "season", time.Now().Year(), "league season to value against")
	f.Float64Var(&opts.salaryCap, "salary-cap", 0, "salary cap override in dollars (0 keeps the tables value)")
	f.StringVar(&opts.tablesFile, "tables", "", "YAML file of league table overrides")
	f.StringVarP(&opts.format, "format", "o", formatTable, "output format: table or json")
	f.BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "log engine decisions to stdout")

	root.AddCommand(newEvaluateCmd(opts), newPoolCmd(opts))
	return root
}

func (o *rootOptions) valuationContext(ctx context.Context) (*valuation.Context, error) {
	return config.LoadValuationContext(ctx, o.tablesFile, o.season, o.salaryCap)
}

// newService builds an unstarted service; evaluation does not need workers.
func newService(vc *valuation.Context, extra ...service.Option) *service.Service {
	opts := append([]service.Option{
		service.WithValuationContext(vc),
		service.WithLogger(logger.GetOrNop()),
	}, extra...)
	return service.New(opts...)
}
