package main

import (
	"errors"
	"runtime"

	"github.com/spf13/cobra"

	service "github.com/okian/aav/internal/app"
	"github.com/okian/aav/internal/domain/model"
	"github.com/okian/aav/internal/domain/owner"
	"github.com/okian/aav/internal/domain/player"
	"github.com/okian/aav/internal/poolgen"
)

// poolFile is the on-disk shape of a free-agent pool for one team.
type poolFile struct {
	DynastyID string           `yaml:"dynasty_id"`
	TeamID    string           `yaml:"team_id"`
	Owner     owner.Directives `yaml:"owner"`
	Players   []player.Data    `yaml:"players"`
}

type poolOptions struct {
	synthetic   int
	seed        uint64
	positions   []string
	missingRate float64
	top         int
	concurrency int
	ownerFile   string
}

func newPoolCmd(root *rootOptions) *cobra.Command {
	opts := &poolOptions{}
	cmd := &cobra.Command{
		Use:   "pool [POOL_FILE]",
		Short: "Value and rank a free-agent pool",
		Long: `Value every player in a pool for one team and rank them by final AAV.
The pool comes from a YAML file with dynasty_id, team_id, owner and players,
or is generated with --synthetic N.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			vc, err := root.valuationContext(ctx)
			if err != nil {
				return err
			}

			var reqs []model.EvaluationRequest
			switch {
			case len(args) == 1 && opts.synthetic > 0:
				return errors.New("use either POOL_FILE or --synthetic, not both")
			case len(args) == 1:
				if reqs, err = readPool(args[0]); err != nil {
					return err
				}
			case opts.synthetic > 0:
				gen := poolgen.New(vc,
					poolgen.WithSeed(opts.seed),
					poolgen.WithPositions(opts.positions...),
					poolgen.WithMissingDataRate(opts.missingRate),
				)
				if reqs, err = gen.Requests(ctx, opts.synthetic, "synthetic", "team-1"); err != nil {
					return err
				}
			default:
				return errors.New("a POOL_FILE or --synthetic N is required")
			}

			if opts.ownerFile != "" {
				d, err := readDirectives(opts.ownerFile)
				if err != nil {
					return err
				}
				for i := range reqs {
					reqs[i].Directives = d
				}
			}

			svc := newService(vc, service.WithPoolConcurrency(opts.concurrency))
			results, err := svc.EvaluatePool(ctx, reqs)
			if err != nil {
				return err
			}
			if root.format == formatJSON {
				return writeJSON(cmd.OutOrStdout(), rankPool(results))
			}
			return writePoolTable(cmd.OutOrStdout(), results, opts.top)
		},
	}
	f := cmd.Flags()
	f.IntVar(&opts.synthetic, "synthetic", 0, "generate a synthetic pool of N players")
	f.Uint64Var(&opts.seed, "seed", 1, "seed for --synthetic")
	f.StringSliceVar(&opts.positions, "positions", nil, "restrict --synthetic to these positions")
	f.Float64Var(&opts.missingRate, "missing-rate", 0.1, "chance a synthetic player lacks attributes or stats")
	f.IntVar(&opts.top, "top", 25, "rows to print (0 prints all)")
	f.IntVar(&opts.concurrency, "concurrency", runtime.NumCPU(), "players valued at once")
	f.StringVar(&opts.ownerFile, "owner", "", "YAML file of owner directives applied to every player")
	return cmd
}

func readPool(path string) ([]model.EvaluationRequest, error) {
	var pf poolFile
	if err := decodeFile(path, &pf); err != nil {
		return nil, err
	}
	if len(pf.Players) == 0 {
		return nil, errors.New(path + ": no players")
	}
	reqs := make([]model.EvaluationRequest, len(pf.Players))
	for i := range pf.Players {
		reqs[i] = model.EvaluationRequest{
			DynastyID:  pf.DynastyID,
			TeamID:     pf.TeamID,
			Player:     pf.Players[i],
			Directives: pf.Owner,
		}
	}
	return reqs, nil
}
