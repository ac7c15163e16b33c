package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/stackmill/secretsync/internal/config"
	"github.com/stackmill/secretsync/internal/syncer"
)

func NewDeployCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Write changed secrets from the local file to the parameter store",
		Long: `Deploy diffs every entry of the local secrets file against the parameter
store and writes only the entries whose value drifted. A missing secrets
file deploys nothing and is not an error.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, req, err := newOrchestrator(cfg)
			if err != nil {
				return err
			}

			ctx := context.Background()
			outcomes, err := orch.Deploy(ctx, req)
			if err != nil {
				return err
			}

			updated := 0
			for _, outcome := range outcomes {
				if outcome.Status != syncer.StatusUnchanged {
					updated++
				}
			}
			fmt.Printf("Deployed %s-%s: %d updated, %d unchanged\n",
				req.Service, req.Stage, updated, len(outcomes)-updated)
			return nil
		},
	}

	return cmd
}
