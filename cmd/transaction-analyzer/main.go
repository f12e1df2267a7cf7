package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/transaction-analyzer/internal/config"
	"github.com/example/transaction-analyzer/internal/logger"
	"github.com/example/transaction-analyzer/internal/service"
	"github.com/example/transaction-analyzer/internal/source"
	"github.com/example/transaction-analyzer/pkg/transaction"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		log := logger.New()
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

var rootCmd = newRootCmd()

// app holds what every subcommand needs once flags are parsed.
type app struct {
	configPath string
	envFile    string

	cfg  *config.Config
	logs *logger.Factory
}

func newRootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:   "transaction-analyzer",
		Short: "Analyze bank transaction exports",
		Long: `Transaction Analyzer reads a bank transaction export and reports
per-card spend and cashback, top transactions, category spending,
text search results and transfers to private persons.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.init(); err != nil {
				return err
			}
			log := a.logs.For(logger.ComponentApp)
			log.Debug().Str("command", cmd.Name()).Str("config", a.configPath).Msg("command started")
			cmd.SetContext(logger.WithContext(cmd.Context(), log))
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.logs != nil {
				return a.logs.Close()
			}
			return nil
		},
	}
	cmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "path to a TOML config file")
	cmd.PersistentFlags().StringVar(&a.envFile, "env", ".env", "path to a .env file with API keys")

	cmd.AddCommand(
		newHomeCmd(a),
		newSearchCmd(a),
		newTransfersCmd(a),
		newSpendingCmd(a),
	)
	return cmd
}

func (a *app) init() error {
	if err := config.LoadEnv(a.envFile); err != nil {
		return err
	}
	cfg, err := config.LoadConfig(a.configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg
	a.logs = logger.NewFactory(logger.Config{
		Level:   cfg.Logging.Level,
		Dir:     cfg.Logging.Dir,
		Console: cfg.Logging.Console,
	})
	return nil
}

// load reads the configured export once.
func (a *app) load(cmd *cobra.Command) (*transaction.TransactionList, error) {
	ctx := cmd.Context()
	log := a.logs.For(logger.ComponentSource)

	src, err := source.FromConfig(ctx, a.cfg.Source)
	if err != nil {
		ctxLog := logger.FromContext(ctx)
		ctxLog.Error().Err(err).Msg("failed to open transaction source")
		return nil, err
	}
	txs, err := source.NewSnapshot(src).Load(ctx)
	if err != nil {
		log.Error().Err(err).Str("type", a.cfg.Source.Type).Msg("failed to load transactions")
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	list := transaction.NewTransactionList(a.sourceName(), txs, time.Now())
	log.Info().Int("count", list.Total).Str("type", a.cfg.Source.Type).Str("source", list.Source).Msg("transactions loaded")
	return list, nil
}

// service loads the configured export and wraps it in a report service.
func (a *app) service(cmd *cobra.Command) (*service.Service, error) {
	list, err := a.load(cmd)
	if err != nil {
		return nil, err
	}
	return service.NewFromList(list, service.WithLogger(a.logs.For(logger.ComponentService))), nil
}

func (a *app) sourceName() string {
	if a.cfg.Source.Type == "sheets" {
		return "sheets:" + a.cfg.Source.SpreadsheetID
	}
	return a.cfg.Source.Path
}
