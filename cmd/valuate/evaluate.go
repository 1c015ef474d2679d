package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/okian/aav/internal/domain/model"
	"github.com/okian/aav/internal/domain/owner"
)

type evaluateOptions struct {
	ownerFile string
	dynastyID string
	teamID    string
}

func newEvaluateCmd(root *rootOptions) *cobra.Command {
	opts := &evaluateOptions{}
	cmd := &cobra.Command{
		Use:   "evaluate REQUEST_FILE",
		Short: "Value one player",
		Long: `Value one player described by a YAML or JSON file:

  team_id: team-1
  player:
    player_id: qb-1
    position: QB
    age: 29
    overall_rating: 95
  owner:
    owner_philosophy: balanced`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := readEvaluationRequest(args[0])
			if err != nil {
				return err
			}
			if opts.ownerFile != "" {
				if req.Directives, err = readDirectives(opts.ownerFile); err != nil {
					return err
				}
			}
			if opts.dynastyID != "" {
				req.DynastyID = opts.dynastyID
			}
			if opts.teamID != "" {
				req.TeamID = opts.teamID
			}

			vc, err := root.valuationContext(cmd.Context())
			if err != nil {
				return err
			}
			rec, err := newService(vc).Evaluate(cmd.Context(), req)
			if err != nil {
				return err
			}
			if root.format == formatJSON {
				return writeJSON(cmd.OutOrStdout(), rec)
			}
			return writeRecommendation(cmd.OutOrStdout(), &rec)
		},
	}
	cmd.Flags().StringVar(&opts.ownerFile, "owner", "", "YAML file of owner directives, replacing the request's")
	cmd.Flags().StringVar(&opts.dynastyID, "dynasty", "", "dynasty ID")
	cmd.Flags().StringVar(&opts.teamID, "team", "", "team ID")
	return cmd
}

// readEvaluationRequest decodes a request file. JSON is valid YAML, so one
// decoder covers both.
func readEvaluationRequest(path string) (model.EvaluationRequest, error) {
	var req model.EvaluationRequest
	if err := decodeFile(path, &req); err != nil {
		return model.EvaluationRequest{}, err
	}
	return req, nil
}

func readDirectives(path string) (owner.Directives, error) {
	var d owner.Directives
	if err := decodeFile(path, &d); err != nil {
		return owner.Directives{}, err
	}
	return d, nil
}

func decodeFile(path string, v any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
