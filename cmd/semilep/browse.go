package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/verte-zerg/semilep/internal/explorer"
	"github.com/verte-zerg/semilep/internal/observable"
	"github.com/verte-zerg/semilep/internal/report"
	"github.com/verte-zerg/semilep/internal/store"
)

var (
	paramsUsed    bool
	historyLimit  int
	historyRun    string
	exploreCurve  string
	explorePoints int
)

func newParamsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "params [prefix]",
		Short: "List parameters and their current values",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runParamsCmd,
	}
	cmd.Flags().BoolVar(&paramsUsed, "used", false, "only the parameters the selected channel depends on")
	return cmd
}

func runParamsCmd(cmd *cobra.Command, args []string) error {
	s, err := loadSession(cmd)
	if err != nil {
		return err
	}
	names := s.params.Names()
	if paramsUsed {
		d, err := observable.New(s.params, s.options)
		if err != nil {
			return err
		}
		names = d.Used()
	}
	prefix := ""
	if len(args) == 1 {
		prefix = args[0]
	}
	rows := make([][]string, 0, len(names))
	for _, name := range names {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		v, err := s.params.Get(name)
		if err != nil {
			return err
		}
		rows = append(rows, []string{name, report.FormatValue(v)})
	}
	if len(rows) == 0 {
		return fmt.Errorf("no parameters match %q", prefix)
	}
	if err := report.RenderTable(cmd.OutOrStdout(), []string{"Parameter", "Value"}, rows, map[int]bool{1: true}); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded runs",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().IntVar(&historyLimit, "limit", defaultHistory, "number of runs to list (0 for all)")
	cmd.Flags().StringVar(&historyRun, "run", "", "print the values of the run whose id starts with this prefix")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	s, err := loadSession(cmd)
	if err != nil {
		return err
	}
	if !s.storeOn {
		logErrln("run history is disabled; listing what was recorded before")
	}
	st, err := store.Open(s.storePath)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	out := cmd.OutOrStdout()
	if historyRun == "" {
		runs, err := report.BuildHistory(cmd.Context(), st, historyLimit)
		if err != nil {
			return fmt.Errorf("failed to load history: %w", err)
		}
		if err := report.RenderHistory(out, runs); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	run, err := findRun(cmd, st, historyRun)
	if err != nil {
		return err
	}
	values, err := st.RunValues(cmd.Context(), run.ID)
	if err != nil {
		return fmt.Errorf("failed to load run: %w", err)
	}
	if _, err := fmt.Fprintf(out, "Run %s (%s, %s)\n", run.ID, run.Command,
		run.CreatedAt.Local().Format("2006-01-02 15:04:05")); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	rows := make([][]string, 0, len(values))
	for _, v := range values {
		q2 := ""
		if v.Kind == "differential" {
			q2 = fmt.Sprintf("%.4f", v.Q2)
		}
		rows = append(rows, []string{v.Label, v.Kind, q2, report.FormatValue(v.Value)})
	}
	if err := report.RenderTable(out, []string{"Label", "Kind", "x", "Value"}, rows, map[int]bool{2: true, 3: true}); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func findRun(cmd *cobra.Command, st *store.Store, prefix string) (store.Run, error) {
	runs, err := st.ListRuns(cmd.Context(), 0)
	if err != nil {
		return store.Run{}, fmt.Errorf("failed to load history: %w", err)
	}
	var match []store.Run
	for _, r := range runs {
		if strings.HasPrefix(r.ID, prefix) {
			match = append(match, r)
		}
	}
	switch len(match) {
	case 0:
		return store.Run{}, fmt.Errorf("no run with id prefix %q", prefix)
	case 1:
		return match[0], nil
	}
	return store.Run{}, fmt.Errorf("run id prefix %q is ambiguous", prefix)
}

func newExploreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explore",
		Short: "Browse form factors, observables and diagnostics interactively",
		Args:  cobra.NoArgs,
		RunE:  runExploreCmd,
	}
	cmd.Flags().StringVar(&exploreCurve, "curve", "dBR/dq2", "differential observable shown on the Curves tab")
	cmd.Flags().IntVar(&explorePoints, "points", 40, "grid points of curves and tables")
	return cmd
}

func runExploreCmd(cmd *cobra.Command, _ []string) error {
	s, err := loadSession(cmd)
	if err != nil {
		return err
	}
	applyIntConfig(cmd, "points", &explorePoints, s.file.Curve.Points)
	workers := 0
	applyIntConfig(cmd, "", &workers, s.file.Curve.Workers)

	// The alternate screen owns the terminal; logging stays off.
	m := explorer.NewModel(explorer.Config{
		Params:  s.params,
		Options: s.options,
		Points:  explorePoints,
		Curve:   exploreCurve,
		Workers: workers,
		Logger:  zap.NewNop(),
	})
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run explorer: %w", err)
	}
	return nil
}
