package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/stackmill/secretsync/internal/config"
)

func NewRemoveCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Delete every deployed secret under the recorded namespace prefix",
		Long: `Remove looks up the namespace prefix recorded by the last deploy and
deletes every parameter under it. Without a recorded prefix nothing is
removed and no remote call is made.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, req, err := newOrchestrator(cfg)
			if err != nil {
				return err
			}

			ctx := context.Background()
			count, prefix, err := orch.Remove(ctx, req)
			if err != nil {
				return err
			}

			if prefix == "" {
				fmt.Printf("Nothing to remove for %s-%s\n", req.Service, req.Stage)
				return nil
			}
			fmt.Printf("Removed %d secrets under %s\n", count, prefix)
			return nil
		},
	}

	return cmd
}
