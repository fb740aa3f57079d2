// Command ellex is the thin CLI entrypoint: "repl" and "run PATH..."
// only — hosting surfaces like a server or TUI dashboard are external
// collaborators, not part of this binary (spec.md §1 Non-goals). It is
// grounded on cmd/gosh/main.go's runAll/run/runPath/runInteractive shape,
// restructured onto cobra the way vippsas-sqlcode/cli/cmd lays out its
// subcommands.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ellex-lang/ellex/config"
	"github.com/ellex-lang/ellex/logging"
)

// Exit codes (spec.md §6 "External Interfaces").
const (
	exitOK             = 0
	exitRuntimeError   = 1
	exitParseError     = 2
	exitSafetyViolation = 3
)

var (
	configPath string
	logLevel   string
	log        = logging.New()
)

func main() {
	os.Exit(main1())
}

// main1 is split out from main so tests (cmd/ellex's testscript suite) can
// register it as a subprocess entrypoint via testscript.RunMain, the way
// cmd/shfmt's main_test.go does.
func main1() int {
	root := &cobra.Command{
		Use:   "ellex",
		Short: "Ellex is a natural-language programming environment for young learners",
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a config file")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "operator log level (debug, info, warn, error)")

	root.AddCommand(replCmd(), runCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitRuntimeError
	}
	return exitOK
}

func loadConfig() (config.Config, error) {
	if err := log.SetLevel(logLevel); err != nil {
		return config.Config{}, err
	}
	return config.Load(configPath)
}

func rootContext() context.Context {
	ctx, _ := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	return ctx
}

func replCmd() *cobra.Command {
	var sessionPath string
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive Ellex session",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				log.Errorf("loading config: %v", err)
				return err
			}
			return runREPL(rootContext(), cfg, sessionPath)
		},
	}
	cmd.Flags().StringVar(&sessionPath, "session", "", "path to load/save session state from")
	return cmd
}

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run PATH...",
		Short: "Run one or more Ellex programs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				log.Errorf("loading config: %v", err)
				return err
			}
			return runFiles(rootContext(), cfg, args)
		},
	}
	return cmd
}

// runFiles executes every path concurrently, each with its own isolated
// session, turtle, and evaluator (spec.md §5 Concurrency: "sessions never
// share evaluator or turtle state"), grounded on the teacher's
// golang.org/x/sync/errgroup usage pattern.
func runFiles(ctx context.Context, cfg config.Config, paths []string) error {
	g, ctx := errgroup.WithContext(ctx)
	codes := make([]int, len(paths))
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			codes[i] = runFile(ctx, cfg, path)
			return nil
		})
	}
	_ = g.Wait()
	worst := exitOK
	for _, c := range codes {
		if c > worst {
			worst = c
		}
	}
	if worst != exitOK {
		os.Exit(worst)
	}
	return nil
}
