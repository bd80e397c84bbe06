// Package main provides the CLI entrypoint for semilep.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/verte-zerg/semilep/internal/config"
	"github.com/verte-zerg/semilep/internal/errs"
	"github.com/verte-zerg/semilep/internal/options"
	"github.com/verte-zerg/semilep/internal/params"
	"github.com/verte-zerg/semilep/internal/store"
)

const (
	defaultCurvePoints = 50
	defaultFFPoints    = 10
	defaultHistory     = 20
)

var (
	configPath  string
	setFlags    []string
	optionFlags []string
	verbose     bool
	noStore     bool
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(exitCode(err))
	}
}

// exitCode maps the error class onto the process exit status.
func exitCode(err error) int {
	switch errs.Classify(err) {
	case errs.CodeConfig:
		return 2
	case errs.CodeNumerical:
		return 3
	case errs.CodeIO:
		return 4
	case errs.CodeCancel:
		return 130
	}
	return 1
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "semilep",
		Short:         "Form factors and observables of semileptonic D -> P l nu decays",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", config.DefaultConfigPath(), "run file (TOML)")
	pf.StringArrayVar(&setFlags, "set", nil, "override a parameter, name=value (repeatable)")
	pf.StringArrayVarP(&optionFlags, "option", "o", nil, "set an option, key=value (repeatable)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging to stderr")
	pf.BoolVar(&noStore, "no-store", false, "do not record this run in the history database")

	rootCmd.AddCommand(newDiagnosticsCmd())
	rootCmd.AddCommand(newFormFactorsCmd())
	rootCmd.AddCommand(newObservableCmd())
	rootCmd.AddCommand(newCurveCmd())
	rootCmd.AddCommand(newParamsCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newExploreCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// session is the resolved state shared by the evaluation commands: the
// run file merged with the command line.
type session struct {
	file      config.FileConfig
	params    *params.Parameters
	options   options.Options
	logger    *zap.Logger
	storeOn   bool
	storePath string
}

func loadSession(cmd *cobra.Command) (*session, error) {
	fileCfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	opts, err := options.Parse(fileCfg.Options.Pairs())
	if err != nil {
		return nil, fmt.Errorf("invalid [options] in %s: %w", configPath, err)
	}
	flagOpts, err := options.Parse(optionFlags)
	if err != nil {
		return nil, err
	}
	for k, v := range flagOpts {
		opts[k] = v
	}

	p := params.Defaults()
	names := make([]string, 0, len(fileCfg.Parameters))
	for name := range fileCfg.Parameters {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := p.Set(name, fileCfg.Parameters[name]); err != nil {
			return nil, fmt.Errorf("invalid [parameters] in %s: %w", configPath, err)
		}
	}
	overrides, err := parseAssignments(setFlags)
	if err != nil {
		return nil, err
	}
	for _, a := range overrides {
		if err := p.Set(a.name, a.value); err != nil {
			return nil, err
		}
	}

	storeOn := true
	applyBoolConfig(cmd, "", &storeOn, fileCfg.Store.Enabled)
	if noStore {
		storeOn = false
	}
	storePath := config.DefaultDBPath()
	if fileCfg.Store.Path != nil && *fileCfg.Store.Path != "" {
		storePath = expandHome(*fileCfg.Store.Path)
	}

	return &session{
		file:      fileCfg,
		params:    p,
		options:   opts,
		logger:    newLogger(verbose),
		storeOn:   storeOn,
		storePath: storePath,
	}, nil
}

type assignment struct {
	name  string
	value float64
}

func parseAssignments(pairs []string) ([]assignment, error) {
	out := make([]assignment, 0, len(pairs))
	for _, pair := range pairs {
		idx := strings.LastIndex(pair, "=")
		if idx <= 0 {
			return nil, fmt.Errorf("invalid --set %q (want name=value)", pair)
		}
		name := strings.TrimSpace(pair[:idx])
		v, err := strconv.ParseFloat(strings.TrimSpace(pair[idx+1:]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid --set %q: %w", pair, err)
		}
		out = append(out, assignment{name: name, value: v})
	}
	return out, nil
}

func newLogger(debug bool) *zap.Logger {
	level := zapcore.WarnLevel
	if debug {
		level = zapcore.DebugLevel
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true
	logger, err := cfg.Build()
	if err != nil {
		logErrf("failed to build logger: %v\n", err)
		return zap.NewNop()
	}
	return logger
}

// record stores a finished run. Failures only warn: the results are
// already printed.
func (s *session) record(ctx context.Context, command string, values []store.Value) {
	if !s.storeOn {
		return
	}
	st, err := store.Open(s.storePath)
	if err != nil {
		s.logger.Warn("failed to open history db", zap.String("path", s.storePath), zap.Error(err))
		return
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()
	var pairs []string
	if len(s.options) > 0 {
		pairs = strings.Split(s.options.String(), ",")
	}
	id, err := st.InsertRun(ctx, command, pairs, values)
	if err != nil {
		s.logger.Warn("failed to record run", zap.String("command", command), zap.Error(err))
		return
	}
	s.logger.Debug("run recorded", zap.String("id", id), zap.String("command", command), zap.Int("values", len(values)))
}

func newConfigCmd() *cobra.Command {
	var printPath bool
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create/open the run file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if printPath {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), configPath)
				return err
			}
			return runConfigCmd(cmd, nil)
		},
	}
	cmd.Flags().BoolVar(&printPath, "path", false, "print the run file path and exit")
	return cmd
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := configPath
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(config.Template), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

// applyXConfig copies a run-file value into target unless the flag was
// given explicitly. An empty name means there is no flag.
func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if name != "" && cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if name != "" && cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if name != "" && cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
