package report

import (
	"fmt"
	"io"
	"math"

	"github.com/verte-zerg/semilep/internal/formfactor"
)

// FormatValue prints a number the way every table in this package does.
func FormatValue(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return fmt.Sprintf("%.6g", v)
}

// RenderDiagnostics prints labelled values with their evaluation errors.
func RenderDiagnostics(w io.Writer, title string, diags []formfactor.Diagnostic) error {
	if len(diags) == 0 {
		_, err := fmt.Fprintln(w, "No values.")
		return err
	}
	if title != "" {
		if _, err := fmt.Fprintln(w, title); err != nil {
			return err
		}
	}
	rows := make([][]string, 0, len(diags))
	for _, d := range diags {
		msg := ""
		if d.Err != nil {
			msg = d.Err.Error()
		}
		rows = append(rows, []string{d.Label, FormatValue(d.Value), msg})
	}
	if err := RenderTable(w, []string{"Quantity", "Value", "Error"}, rows, map[int]bool{1: true}); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderSamples prints one column per series against the shared abscissa.
func RenderSamples(w io.Writer, variable string, xs []float64, series []Series) error {
	if len(xs) == 0 {
		_, err := fmt.Fprintln(w, "No points.")
		return err
	}
	headers := []string{variable}
	right := map[int]bool{0: true}
	for i, s := range series {
		headers = append(headers, s.Name)
		right[i+1] = true
	}
	rows := make([][]string, 0, len(xs))
	for i, x := range xs {
		row := []string{fmt.Sprintf("%.4f", x)}
		for _, s := range series {
			v := math.NaN()
			if i < len(s.Values) {
				v = s.Values[i]
			}
			row = append(row, FormatValue(v))
		}
		rows = append(rows, row)
	}
	return RenderTable(w, headers, rows, right)
}
