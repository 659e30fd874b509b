package pipeline

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/matzehuels/linebalance/pkg/bounds"
)

// FormatLowerBounds returns "LOWERBOUNDS <name> <n> <lm1> <lms1> <lm2> <lm3> <best>".
func FormatLowerBounds(name string, n int, b bounds.LowerBounds) string {
	return fmt.Sprintf("LOWERBOUNDS %s %d %s", name, n, b)
}

// FormatSummary returns "SUMMARY <name> stations <count>".
func FormatSummary(name string, stations int) string {
	return fmt.Sprintf("SUMMARY %s stations %d", name, stations)
}

// WriteLines writes the LOWERBOUNDS line of res and, when a solution is
// present, the SUMMARY line.
func WriteLines(w io.Writer, res *Result) error {
	if _, err := fmt.Fprintln(w, FormatLowerBounds(res.Name(), res.Stats.N, res.Bounds)); err != nil {
		return err
	}
	if res.Solution == nil {
		return nil
	}
	_, err := fmt.Fprintln(w, FormatSummary(res.Name(), res.Solution.Stations))
	return err
}

var csvHeader = []string{
	"instance", "n", "c",
	"lm1", "lms1", "lm2", "lm3", "best",
	"stations", "optimum", "gap", "time_ms", "error",
}

// WriteCSV writes one row per batch item. Columns that do not apply, such as
// stations with --onlylb or an unknown optimum, are left empty.
func WriteCSV(w io.Writer, items []BatchItem) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, it := range items {
		if err := cw.Write(csvRow(it)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func csvRow(it BatchItem) []string {
	row := make([]string, len(csvHeader))
	row[0] = it.Name
	if it.Err != nil {
		row[12] = it.Err.Error()
		return row
	}

	res := it.Result
	b := res.Bounds
	row[1] = itoa(res.Stats.N)
	row[2] = itoa(res.Instance.C)
	row[3] = itoa(b.LM1)
	row[4] = itoa(b.LMS1)
	row[5] = itoa(b.LM2)
	row[6] = itoa(b.LM3)
	row[7] = itoa(b.Best())
	if res.Solution != nil {
		row[8] = itoa(res.Solution.Stations)
		row[10] = itoa(res.Gap())
	}
	if res.Instance.Optimum != nil {
		row[9] = itoa(*res.Instance.Optimum)
	}
	row[11] = strconv.FormatFloat(float64(res.Stats.Total().Microseconds())/1000, 'f', 3, 64)
	return row
}

func itoa(v int) string { return strconv.Itoa(v) }
