package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/linebalance/pkg/errors"
	"github.com/matzehuels/linebalance/pkg/heuristic"
	"github.com/matzehuels/linebalance/pkg/preprocess"
)

// Format is an output format of the render command.
type Format string

const (
	FormatDOT Format = "dot"
	FormatSVG Format = "svg"
)

// ParseFormat accepts "dot" or "svg" in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatDOT, FormatSVG:
		return f, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidInput, "unknown render format %q (want dot or svg)", s)
	}
}

// Options configures diagram generation.
type Options struct {
	// Detailed adds setup times to edges inside a station and the load
	// breakdown to station labels.
	Detailed bool
}

// ToDOT converts a problem and an optional solution to Graphviz DOT.
//
// Tasks are numbered from 1 as in the instance files. Overloaded stations are
// drawn with a red border.
func ToDOT(p *preprocess.Problem, sol *heuristic.Result, opts Options) string {
	inst := p.Instance

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  compound=true;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14];\n")
	buf.WriteString("\n")

	if sol == nil {
		for i := 0; i < inst.N; i++ {
			fmt.Fprintf(&buf, "  %s;\n", taskNode(i, inst.T[i]))
		}
	} else {
		for _, l := range heuristic.Loads(p, sol) {
			writeStation(&buf, inst.C, inst.T, l, opts)
		}
	}

	buf.WriteString("\n")
	for _, e := range inst.Edges() {
		fmt.Fprintf(&buf, "  t%d -> t%d;\n", e[0]+1, e[1]+1)
	}

	if opts.Detailed && sol != nil {
		for _, l := range heuristic.Loads(p, sol) {
			for k := 1; k < len(l.Tasks); k++ {
				from, to := l.Tasks[k-1], l.Tasks[k]
				fmt.Fprintf(&buf, "  t%d -> t%d [style=dashed, color=grey, constraint=false, label=\"%d\"];\n",
					from+1, to+1, inst.SF.At(from, to))
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func writeStation(buf *bytes.Buffer, c int, t []int, l heuristic.StationLoad, opts Options) {
	fmt.Fprintf(buf, "  subgraph cluster_station_%d {\n", l.Station)
	fmt.Fprintf(buf, "    label=%q;\n", stationLabel(c, l, opts.Detailed))
	buf.WriteString("    style=rounded;\n")
	if l.Idle < 0 {
		buf.WriteString("    color=red;\n")
	}
	for _, task := range l.Tasks {
		fmt.Fprintf(buf, "    %s;\n", taskNode(task, t[task]))
	}
	buf.WriteString("  }\n")
}

func stationLabel(c int, l heuristic.StationLoad, detailed bool) string {
	label := fmt.Sprintf("station %d: %d/%d", l.Station, l.Load(), c)
	if !detailed {
		return label
	}
	return fmt.Sprintf("%s\ntasks %d, setup %d, closing %d, idle %d",
		label, l.TaskTime, l.Forward, l.Closing, l.Idle)
}

// taskNode declares task i with duration t.
func taskNode(i, t int) string {
	return fmt.Sprintf("t%d [label=\"%d (%d)\"]", i+1, i+1, t)
}
