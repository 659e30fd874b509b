package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/linebalance/pkg/render"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string // output path, default <instance>.<format>
	format   string // dot or svg
	detailed bool   // setup edges and load breakdown
	plain    bool   // precedence graph only, no solution
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		f    solverFlags
		opts = renderOpts{format: string(render.FormatSVG)}
	)
	cmd := &cobra.Command{
		Use:   "render <instance>",
		Short: "Draw the precedence graph grouped into stations",
		Long: `Render solves the instance and draws its precedence graph with one cluster
per station of the heuristic solution. With --plain only the graph is drawn.
Use "-o -" to write to stdout.`,
		Example: `  linebalance render HAHN.alb
  linebalance render HAHN.alb --format dot -o - | dot -Tpng > hahn.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := render.ParseFormat(opts.format)
			if err != nil {
				return err
			}
			po, err := c.solverOptions(cmd, &f)
			if err != nil {
				return err
			}
			po.Path = args[0]
			po.OnlyLB = opts.plain

			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, f.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			res, err := runner.Execute(ctx, po)
			if err != nil {
				return err
			}

			dot := render.ToDOT(res.Problem, res.Solution, render.Options{Detailed: opts.detailed})
			data, err := render.Render(ctx, dot, format)
			if err != nil {
				return err
			}

			if opts.output == "-" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			out := opts.output
			if out == "" {
				out = outputPath(args[0], string(format))
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			printSuccess("Rendered %s", res.Name())
			printFile(out)
			return nil
		},
	}
	f.register(cmd, false)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default <instance>.<format>, - for stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: dot or svg")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show setup times and station load breakdown")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "draw the precedence graph without stations")
	return cmd
}
