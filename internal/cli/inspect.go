package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		f     solverFlags
		noTUI bool
	)
	cmd := &cobra.Command{
		Use:   "inspect <instance>",
		Short: "Browse the stations of a heuristic solution",
		Long: `Inspect solves the instance and opens an interactive list of its stations
with task times, setups, load and idle time. The detail pane shows the
earliest (E) and latest (T) station estimates of each task.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.solverOptions(cmd, &f)
			if err != nil {
				return err
			}
			opts.Path = args[0]

			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, f.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			sp := newSpinner(ctx, cmd.ErrOrStderr(), "Solving "+args[0])
			sp.Start()
			res, err := runner.Execute(ctx, opts)
			sp.Stop()
			if err != nil {
				return err
			}
			model := NewStationListModel(res)

			if noTUI {
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, summaryLine(res))
				fmt.Fprintln(out, stationTable(model.Loads, res.Instance.C, -1).Render())
				return nil
			}
			_, err = tea.NewProgram(model, tea.WithContext(ctx), tea.WithAltScreen()).Run()
			return err
		},
	}
	f.register(cmd, false)
	cmd.Flags().BoolVar(&noTUI, "no-tui", false, "print a table instead of the interactive view")
	return cmd
}
