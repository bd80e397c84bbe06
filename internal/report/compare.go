package report

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/verte-zerg/semilep/internal/formfactor"
)

// Comparison pairs a computed value with its published reference.
type Comparison struct {
	Label     string
	Reference float64
	Value     float64
	Tolerance float64
	Err       error
}

// Deviation is the signed relative deviation from the reference.
func (c Comparison) Deviation() float64 {
	if c.Reference == 0 {
		return c.Value
	}
	return (c.Value - c.Reference) / math.Abs(c.Reference)
}

// Pass reports whether the value lies within the absolute tolerance.
func (c Comparison) Pass() bool {
	return c.Err == nil && math.Abs(c.Value-c.Reference) <= c.Tolerance
}

// Compare matches computed values to references by label. References
// without a computed counterpart are reported with an error.
func Compare(refs []formfactor.Reference, got []formfactor.Diagnostic) []Comparison {
	byLabel := make(map[string]formfactor.Diagnostic, len(got))
	for _, d := range got {
		byLabel[d.Label] = d
	}
	out := make([]Comparison, 0, len(refs))
	for _, r := range refs {
		c := Comparison{Label: r.Label, Reference: r.Value, Tolerance: r.Tolerance, Value: math.NaN()}
		if d, ok := byLabel[r.Label]; ok {
			c.Value, c.Err = d.Value, d.Err
		} else {
			c.Err = fmt.Errorf("%s was not evaluated", r.Label)
		}
		out = append(out, c)
	}
	return out
}

// WorstDeviations returns the n comparisons furthest from their references,
// failures first.
func WorstDeviations(cs []Comparison, n int) []Comparison {
	if n <= 0 || len(cs) == 0 {
		return nil
	}
	sorted := make([]Comparison, len(cs))
	copy(sorted, cs)
	score := func(c Comparison) float64 {
		if c.Err != nil || math.IsNaN(c.Value) {
			return math.Inf(1)
		}
		return math.Abs(c.Deviation())
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return score(sorted[i]) > score(sorted[j])
	})
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

// RenderComparison prints a comparison table followed by a pass count.
func RenderComparison(w io.Writer, title string, cs []Comparison) error {
	if title != "" {
		if _, err := fmt.Fprintln(w, title); err != nil {
			return err
		}
	}
	rows := make([][]string, 0, len(cs))
	passed := 0
	for _, c := range cs {
		status := "ok"
		switch {
		case c.Err != nil:
			status = "error: " + c.Err.Error()
		case !c.Pass():
			status = "off"
		default:
			passed++
		}
		rows = append(rows, []string{
			c.Label,
			FormatValue(c.Reference),
			FormatValue(c.Value),
			fmt.Sprintf("%.0e", c.Tolerance),
			fmt.Sprintf("%+.2e", c.Deviation()),
			status,
		})
	}
	headers := []string{"Quantity", "Reference", "Computed", "Tol", "Rel. dev", "Status"}
	if err := RenderTable(w, headers, rows, map[int]bool{1: true, 2: true, 3: true, 4: true}); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d/%d within tolerance\n\n", passed, len(cs))
	return err
}
