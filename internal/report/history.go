package report

import (
	"context"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/verte-zerg/semilep/internal/store"
)

const sparkChars = " .:-=+*#%@"

// RunSummary is a recorded run together with its values.
type RunSummary struct {
	store.Run
	Values []store.Value
}

// BuildHistory loads the most recent runs, newest first.
func BuildHistory(ctx context.Context, st *store.Store, limit int) ([]RunSummary, error) {
	runs, err := st.ListRuns(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]RunSummary, 0, len(runs))
	for _, r := range runs {
		values, err := st.RunValues(ctx, r.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, RunSummary{Run: r, Values: values})
	}
	return out, nil
}

// Sparkline renders a single-line ASCII sparkline for the values. NaN
// values render as '?'.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	var b strings.Builder
	for _, v := range values {
		if math.IsNaN(v) {
			b.WriteByte('?')
			continue
		}
		if math.Abs(maxVal-minVal) < 1e-300 {
			b.WriteByte(sparkChars[len(sparkChars)/2])
			continue
		}
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// summarize describes a run's values in one cell: a sparkline per
// differential label, the value itself for a single number, a count otherwise.
func summarize(values []store.Value) string {
	if len(values) == 0 {
		return "-"
	}
	var order []string
	curves := map[string][]float64{}
	scalars := 0
	for _, v := range values {
		if v.Kind != "differential" {
			scalars++
			continue
		}
		if _, ok := curves[v.Label]; !ok {
			order = append(order, v.Label)
		}
		curves[v.Label] = append(curves[v.Label], v.Value)
	}
	var parts []string
	for _, label := range order {
		parts = append(parts, fmt.Sprintf("%s [%s]", label, Sparkline(curves[label])))
	}
	switch {
	case scalars == 1 && len(values) == 1:
		parts = append(parts, fmt.Sprintf("%s = %s", values[0].Label, FormatValue(values[0].Value)))
	case scalars > 0:
		parts = append(parts, fmt.Sprintf("%d values", scalars))
	}
	return strings.Join(parts, "; ")
}

// RenderHistory prints one line per run.
func RenderHistory(w io.Writer, runs []RunSummary) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "No runs recorded.")
		return err
	}
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		id := r.ID
		if len(id) > 8 {
			id = id[:8]
		}
		rows = append(rows, []string{
			id,
			r.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			r.Command,
			strings.Join(r.Options, ","),
			summarize(r.Values),
		})
	}
	return RenderTable(w, []string{"Run", "When", "Command", "Options", "Result"}, rows, nil)
}
