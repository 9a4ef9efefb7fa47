package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/yuchingh/daybook/internal/auth"
	"github.com/yuchingh/daybook/internal/common"
	"github.com/yuchingh/daybook/internal/config"
	"github.com/yuchingh/daybook/internal/gateway"
	"github.com/yuchingh/daybook/internal/storage"
	"github.com/yuchingh/daybook/internal/tui"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "daybook",
		Short: "Terminal expense tracker with a daily logging streak",
		Long: `daybook is a terminal client for a personal expense-tracking backend.
It shows a monthly dashboard, records transactions, and keeps a daily
logging streak with manual check-ins for transaction-free days.`,
		RunE: runTUI,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: <user config dir>/daybook/config.yaml)")
	rootCmd.AddCommand(authCmd())
	rootCmd.AddCommand(dbCmd())
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	err := rootCmd.ExecuteContext(ctx)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runTUI(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	// While the TUI owns the terminal, unrouted logs go nowhere.
	logFile := cfg.Logging.File
	if logFile == "" {
		logFile = os.DevNull
	}
	closer, err := common.SetupLogger(cfg.Logging.Level, cfg.Logging.Format, logFile)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}

	gw, err := buildGateway(cfg)
	if err != nil {
		return err
	}

	db, storeCfg, err := storage.Open(cmd.Context())
	if err != nil {
		return fmt.Errorf("open local store: %w", err)
	}
	defer db.Close()
	slog.Info("local store ready", "path", storeCfg.Path)

	markers := storage.NewAppConfigRepo(db)
	program := tea.NewProgram(
		tui.New(gw, markers),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

func buildGateway(cfg *config.Config) (gateway.Gateway, error) {
	switch cfg.Backend {
	case config.BackendAppsScript:
		return gateway.NewAppsScript(cfg.Endpoint), nil
	case config.BackendSupabase:
		token, err := auth.LoadToken()
		if err != nil {
			// No stored token: fall back to anonymous access.
			slog.Debug("no backend token stored, using anon key", "err", err)
			token = cfg.SupabaseAnonKey
		}
		return gateway.NewSupabase(cfg.Endpoint, cfg.SupabaseAnonKey, token), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}
