package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/stackmill/secretsync/internal/config"
)

func NewPullCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pull",
		Short: "Overwrite the local secrets file from the parameter store",
		Long: `Pull lists every parameter under the namespace prefix, decodes the stored
values, and overwrites the local secrets file with the result.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, req, err := newOrchestrator(cfg)
			if err != nil {
				return err
			}

			ctx := context.Background()
			if err := orch.Pull(ctx, req); err != nil {
				return err
			}

			fmt.Printf("Wrote %s\n", req.File)
			return nil
		},
	}

	return cmd
}
