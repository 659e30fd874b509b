package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/matzehuels/linebalance/pkg/errors"
	"github.com/matzehuels/linebalance/pkg/pipeline"
)

// batchCommand creates the batch command.
func (c *CLI) batchCommand() *cobra.Command {
	var (
		f       solverFlags
		csvPath string
		jobs    int
	)
	cmd := &cobra.Command{
		Use:   "batch <instance|dir>...",
		Short: "Solve many instances",
		Long: `Batch solves every instance and prints the result lines in input order.
Directories are expanded to the .alb files they contain. A failing instance
is reported and does not stop the batch.`,
		Example: `  linebalance batch data/*.alb --csv results.csv
  linebalance batch data/ --jobs 8 --onlylb`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.solverOptions(cmd, &f)
			if err != nil {
				return err
			}
			paths, err := expandPaths(args)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, f.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			prog := newProgress(c.Logger)
			items, err := runner.ExecuteBatch(ctx, paths, opts, jobs)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, it := range items {
				if it.Err != nil {
					c.Logger.Error("instance failed", "instance", it.Name, "err", errors.UserMessage(it.Err))
					continue
				}
				if err := pipeline.WriteLines(out, it.Result); err != nil {
					return err
				}
			}
			failed := pipeline.Failed(items)
			prog.done("batch finished", "instances", len(items), "failed", failed)

			if csvPath != "" {
				if err := writeCSVFile(csvPath, items); err != nil {
					return err
				}
				c.Logger.Info("wrote csv", "path", csvPath)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d instances failed", failed, len(items))
			}
			return nil
		},
	}
	f.register(cmd, true)
	cmd.Flags().StringVar(&csvPath, "csv", "", "write a CSV summary to this file")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.NumCPU(), "instances solved concurrently")
	return cmd
}

// expandPaths replaces directories by the .alb files directly inside them.
func expandPaths(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "%s", arg)
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		matches, err := filepath.Glob(filepath.Join(arg, "*.alb"))
		if err != nil {
			return nil, err
		}
		if len(matches) == 0 {
			return nil, errors.New(errors.ErrCodeFileNotFound, "no .alb files in %s", arg)
		}
		paths = append(paths, matches...)
	}
	return paths, nil
}

func writeCSVFile(path string, items []pipeline.BatchItem) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := pipeline.WriteCSV(f, items); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
