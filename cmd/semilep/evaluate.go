package main

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/verte-zerg/semilep/internal/formfactor"
	"github.com/verte-zerg/semilep/internal/observable"
	"github.com/verte-zerg/semilep/internal/report"
	"github.com/verte-zerg/semilep/internal/store"
)

var (
	diagCompare bool

	ffPoints int
	ffMin    float64
	ffMax    float64
	ffPlot   bool

	obsAt   float64
	obsMin  float64
	obsMax  float64
	obsList bool

	curvePoints  int
	curveMin     float64
	curveMax     float64
	curveWorkers int
	curvePlot    bool
)

func newDiagnosticsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diagnostics",
		Short: "Print the D -> pi sum-rule intermediates",
		Args:  cobra.NoArgs,
		RunE:  runDiagnosticsCmd,
	}
	cmd.Flags().BoolVar(&diagCompare, "compare", false, "also evaluate the reference sets and compare")
	return cmd
}

func runDiagnosticsCmd(cmd *cobra.Command, _ []string) error {
	s, err := loadSession(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	l, err := formfactor.NewLCSR(s.params, s.options, nil)
	if err != nil {
		return err
	}
	diags := l.Diagnostics()
	if err := report.RenderDiagnostics(out, "Sum-rule intermediates (D->pi, KKMO2009)", diags); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	values := diagnosticValues("", diags)

	failures := 0
	if diagCompare {
		for _, set := range formfactor.ReferenceSets {
			s.logger.Debug("evaluating reference set", zap.String("set", set.Name))
			got, err := set.Evaluate(s.params)
			if err != nil {
				return err
			}
			cs := report.Compare(set.Entries, got)
			for _, c := range cs {
				if !c.Pass() {
					failures++
				}
			}
			if err := report.RenderComparison(out, "Reference set: "+set.Name, cs); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
			values = append(values, diagnosticValues(set.Name+": ", got)...)
		}
	}

	s.record(cmd.Context(), "diagnostics", values)
	if failures > 0 {
		return fmt.Errorf("%d reference values outside tolerance", failures)
	}
	return nil
}

func diagnosticValues(prefix string, diags []formfactor.Diagnostic) []store.Value {
	out := make([]store.Value, 0, len(diags))
	for _, d := range diags {
		out = append(out, store.Value{Label: prefix + d.Label, Kind: "diagnostic", Value: d.Value})
	}
	return out
}

func newFormFactorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "formfactors",
		Short: "Tabulate f_+, f_0 and f_T of the selected channel",
		Args:  cobra.NoArgs,
		RunE:  runFormFactorsCmd,
	}
	cmd.Flags().IntVar(&ffPoints, "points", defaultFFPoints, "number of q2 points")
	cmd.Flags().Float64Var(&ffMin, "min", 0, "lowest q2 (default: start of phase space)")
	cmd.Flags().Float64Var(&ffMax, "max", 0, "highest q2 (default: end of phase space)")
	cmd.Flags().BoolVar(&ffPlot, "plot", false, "draw the form factors")
	return cmd
}

func runFormFactorsCmd(cmd *cobra.Command, _ []string) error {
	s, err := loadSession(cmd)
	if err != nil {
		return err
	}
	if ffPoints < 1 {
		return fmt.Errorf("--points must be > 0")
	}
	d, err := observable.New(s.params, s.options)
	if err != nil {
		return err
	}
	ps := d.PhaseSpace()
	lo, hi := ps.Min, ps.Max
	if cmd.Flags().Changed("min") {
		lo = ffMin
	}
	if cmd.Flags().Changed("max") {
		hi = ffMax
	}
	if hi < lo {
		return fmt.Errorf("--max must not be below --min")
	}

	xs := observable.Grid(lo, hi, ffPoints)
	pts := formfactor.Tabulate(d.FormFactors(), xs)
	fp := make([]float64, len(pts))
	f0 := make([]float64, len(pts))
	fT := make([]float64, len(pts))
	values := make([]store.Value, 0, 3*len(pts))
	for i, pt := range pts {
		fp[i], f0[i], fT[i] = pt.FPlus, pt.FZero, pt.FT
		if pt.Err != nil {
			s.logger.Warn("form factor evaluation failed", zap.Float64("q2", pt.Q2), zap.Error(pt.Err))
		}
		values = append(values,
			store.Value{Label: "f_+", Kind: "differential", Q2: pt.Q2, Value: pt.FPlus},
			store.Value{Label: "f_0", Kind: "differential", Q2: pt.Q2, Value: pt.FZero},
			store.Value{Label: "f_T", Kind: "differential", Q2: pt.Q2, Value: pt.FT},
		)
	}
	series := []report.Series{{Name: "f_+", Values: fp}, {Name: "f_0", Values: f0}, {Name: "f_T", Values: fT}}

	out := cmd.OutOrStdout()
	if _, err := fmt.Fprintf(out, "%s form factors (%s)\n", d.Descriptor().Process, s.options.Value("form-factors")); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := report.RenderSamples(out, "q2", xs, series); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if ffPlot {
		if err := report.PlotSeries(out, "", series, report.PlotOptions{XMin: lo, XMax: hi, XLabel: "q2"}); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	s.record(cmd.Context(), "formfactors", values)
	return nil
}

func newObservableCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "observable [name]",
		Short: "Evaluate one observable, or all integrated ones without a name",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runObservableCmd,
	}
	cmd.Flags().Float64Var(&obsAt, "at", 0, "point of a differential observable")
	cmd.Flags().Float64Var(&obsMin, "min", 0, "lower bound of an integrated observable (default: domain start)")
	cmd.Flags().Float64Var(&obsMax, "max", 0, "upper bound of an integrated observable (default: domain end)")
	cmd.Flags().BoolVar(&obsList, "list", false, "list the available observables")
	return cmd
}

func runObservableCmd(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if obsList {
		rows := make([][]string, 0)
		for _, o := range observable.All() {
			rows = append(rows, []string{o.Name, o.Kind.String(), o.Variable, o.Description})
		}
		if err := report.RenderTable(out, []string{"Name", "Kind", "Variable", "Description"}, rows, nil); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	s, err := loadSession(cmd)
	if err != nil {
		return err
	}
	d, err := observable.New(s.params, s.options)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return runSummary(cmd, s, d)
	}

	o, err := observable.Lookup(args[0])
	if err != nil {
		return err
	}
	var v float64
	var value store.Value
	switch o.Kind {
	case observable.Differential:
		if !cmd.Flags().Changed("at") {
			return fmt.Errorf("--at is required for the differential observable %s", o.Name)
		}
		v, err = o.At(d, obsAt)
		value = store.Value{Label: o.Name, Kind: "differential", Q2: obsAt, Value: v}
		if err == nil {
			_, err = fmt.Fprintf(out, "%s(%s = %g) = %s\n", o.Name, o.Variable, obsAt, report.FormatValue(v))
		}
	default:
		lo, hi := o.Domain(d)
		if cmd.Flags().Changed("min") {
			lo = obsMin
		}
		if cmd.Flags().Changed("max") {
			hi = obsMax
		}
		v, err = o.Over(d, lo, hi)
		value = store.Value{Label: fmt.Sprintf("%s[%g, %g]", o.Name, lo, hi), Kind: "integrated", Value: v}
		if err == nil {
			_, err = fmt.Fprintf(out, "%s over %s in [%g, %g] = %s\n", o.Name, o.Variable, lo, hi, report.FormatValue(v))
		}
	}
	if err != nil {
		return err
	}
	s.record(cmd.Context(), "observable", []store.Value{value})
	return nil
}

func runSummary(cmd *cobra.Command, s *session, d *observable.DToPLNu) error {
	results, err := d.Summary(cmd.Context(), observable.WithLogger(s.logger))
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(results))
	values := make([]store.Value, 0, len(results))
	for _, r := range results {
		msg := ""
		if r.Err != nil {
			msg = r.Err.Error()
		}
		rows = append(rows, []string{
			r.Observable.Name,
			report.FormatValue(r.Value),
			fmt.Sprintf("%s in [%.4f, %.4f]", r.Observable.Variable, r.Lo, r.Hi),
			msg,
		})
		values = append(values, store.Value{Label: r.Observable.Name, Kind: "integrated", Value: r.Value})
	}
	out := cmd.OutOrStdout()
	desc := d.Descriptor()
	if _, err := fmt.Fprintf(out, "%s -> %s %s nu\n", desc.Parent, desc.Daughter, s.options.Value("l")); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := report.RenderTable(out, []string{"Observable", "Value", "Range", "Error"}, rows, map[int]bool{1: true}); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	s.record(cmd.Context(), "observable", values)
	return nil
}

func newCurveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "curve <name>",
		Short: "Evaluate a differential observable on a grid",
		Args:  cobra.ExactArgs(1),
		RunE:  runCurveCmd,
	}
	cmd.Flags().IntVar(&curvePoints, "points", defaultCurvePoints, "number of points")
	cmd.Flags().Float64Var(&curveMin, "min", 0, "first point (default: domain start)")
	cmd.Flags().Float64Var(&curveMax, "max", 0, "last point (default: domain end)")
	cmd.Flags().IntVar(&curveWorkers, "workers", 0, "points evaluated at once (default: GOMAXPROCS)")
	cmd.Flags().BoolVar(&curvePlot, "plot", false, "draw the curve")
	return cmd
}

func runCurveCmd(cmd *cobra.Command, args []string) error {
	s, err := loadSession(cmd)
	if err != nil {
		return err
	}
	applyIntConfig(cmd, "points", &curvePoints, s.file.Curve.Points)
	applyIntConfig(cmd, "workers", &curveWorkers, s.file.Curve.Workers)
	minSet := cmd.Flags().Changed("min") || s.file.Curve.Min != nil
	maxSet := cmd.Flags().Changed("max") || s.file.Curve.Max != nil
	applyFloatConfig(cmd, "min", &curveMin, s.file.Curve.Min)
	applyFloatConfig(cmd, "max", &curveMax, s.file.Curve.Max)
	if curvePoints < 1 {
		return fmt.Errorf("--points must be > 0")
	}

	d, err := observable.New(s.params, s.options)
	if err != nil {
		return err
	}
	o, err := observable.Lookup(args[0])
	if err != nil {
		return err
	}
	lo, hi := o.Domain(d)
	if minSet {
		lo = math.Max(lo, curveMin)
	}
	if maxSet {
		hi = math.Min(hi, curveMax)
	}
	if hi < lo {
		return fmt.Errorf("empty range [%g, %g] for %s", lo, hi, o.Name)
	}

	xs := observable.Grid(lo, hi, curvePoints)
	samples, err := d.Curve(cmd.Context(), o.Name, xs,
		observable.WithLogger(s.logger), observable.WithWorkers(curveWorkers))
	if err != nil {
		return err
	}
	vals := make([]float64, len(samples))
	values := make([]store.Value, 0, len(samples))
	for i, smp := range samples {
		vals[i] = smp.Value
		values = append(values, store.Value{Label: o.Name, Kind: "differential", Q2: smp.X, Value: smp.Value})
	}
	series := []report.Series{{Name: o.Name, Values: vals}}

	out := cmd.OutOrStdout()
	if err := report.RenderSamples(out, o.Variable, xs, series); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if curvePlot {
		if err := report.PlotSeries(out, "", series, report.PlotOptions{XMin: lo, XMax: hi, XLabel: o.Variable}); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	s.record(cmd.Context(), "curve", values)
	return nil
}
