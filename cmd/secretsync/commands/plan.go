package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/stackmill/secretsync/internal/config"
	"github.com/stackmill/secretsync/internal/syncer"
)

func NewPlanCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show which secrets a deploy would write (no values shown)",
		Long: `Plan diffs every entry of the local secrets file against the parameter
store and prints the classification per entry without writing anything.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, req, err := newOrchestrator(cfg)
			if err != nil {
				return err
			}

			ctx := context.Background()
			outcomes, err := orch.Plan(ctx, req)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintf(w, "SECRET\tSTATUS\n")
			_, _ = fmt.Fprintf(w, "------\t------\n")

			toWrite := 0
			for _, outcome := range outcomes {
				if outcome.Status != syncer.StatusUnchanged {
					toWrite++
				}
				_, _ = fmt.Fprintf(w, "%s\t%s\n", outcome.Name, outcome.Status)
			}
			_ = w.Flush()

			fmt.Printf("\nSummary: %d to write, %d unchanged\n", toWrite, len(outcomes)-toWrite)
			return nil
		},
	}

	return cmd
}
