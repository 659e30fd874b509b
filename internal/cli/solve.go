package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/linebalance/pkg/pipeline"
	"github.com/matzehuels/linebalance/pkg/store"
)

// solveCommand creates the solve command.
func (c *CLI) solveCommand() *cobra.Command {
	var (
		f       solverFlags
		backend string
	)
	cmd := &cobra.Command{
		Use:   "solve <instance>",
		Short: "Compute lower bounds and a heuristic solution",
		Long: `Solve reads an instance (.alb or .json) and prints

  LOWERBOUNDS <name> <n> <lm1> <lms1> <lm2> <lm3> <best>
  SUMMARY <name> stations <count>

The SUMMARY line is omitted with --onlylb.`,
		Example: `  linebalance solve HAHN.alb
  linebalance solve HAHN.alb --seed 7 --iter 1000 --workers 8
  linebalance solve HAHN.alb --onlylb`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.solverOptions(cmd, &f)
			if err != nil {
				return err
			}
			opts.Path = args[0]
			return c.runSolve(cmd.Context(), cmd.OutOrStdout(), opts, f.noCache, backend)
		},
	}
	f.register(cmd, true)
	cmd.Flags().StringVar(&backend, "store", "", "archive the run: none, memory or mongo (default from config)")
	return cmd
}

func (c *CLI) runSolve(ctx context.Context, w io.Writer, opts pipeline.Options, noCache bool, backend string) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	res, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}
	if err := pipeline.WriteLines(w, res); err != nil {
		return err
	}

	st, err := c.newStore(ctx, backend)
	if err != nil {
		return err
	}
	if st == nil {
		return nil
	}
	defer st.Close(ctx)

	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	rec := store.NewRecord(res, opts)
	if err := st.Save(ctx, rec); err != nil {
		return fmt.Errorf("archive run: %w", err)
	}
	c.Logger.Info("archived run", "instance", res.Name(), "id", rec.ID)
	return nil
}
