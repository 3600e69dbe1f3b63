package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/regimelab/macrogate/internal/gates"
	"github.com/regimelab/macrogate/internal/macro"
	"github.com/regimelab/macrogate/internal/metrics"
	"github.com/regimelab/macrogate/internal/regime"
)

const (
	appName = "macrogate"
	version = "v1.2.0"
)

var (
	flagLogLevel    string
	flagConfig      string
	flagGatesConfig string
	flagInputs      string
	flagTrade       string
	flagJSON        bool
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	rootCmd := &cobra.Command{
		Use:     appName,
		Short:   "Macro regime classification and trade gate evaluation",
		Version: version,
		Long: `macrogate classifies macro/market conditions into a discrete regime from six
axis readings (Growth, Inflation, Liquidity, Credit, Dollar, Volatility) and
runs trade candidates through a five-stage gate pipeline against it.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level, err := zerolog.ParseLevel(strings.ToLower(flagLogLevel))
			if err != nil {
				level = zerolog.InfoLevel
			}
			zerolog.SetGlobalLevel(level)
			log.Logger = log.Logger.With().Str("run_id", uuid.NewString()).Logger()
		},
	}
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "log level (trace|debug|info|warn|error)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "regime config yaml (defaults when empty)")
	rootCmd.PersistentFlags().StringVar(&flagGatesConfig, "gates-config", "", "gates config yaml (defaults when empty)")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Compute a regime snapshot from a macro inputs file",
		RunE:  runSnapshot,
	}
	snapshotCmd.Flags().StringVar(&flagInputs, "inputs", "", "macro inputs yaml file (required)")
	snapshotCmd.Flags().BoolVar(&flagJSON, "json", false, "emit the snapshot as JSON")
	snapshotCmd.MarkFlagRequired("inputs")

	gatesCmd := &cobra.Command{
		Use:   "gates",
		Short: "Evaluate a trade candidate through the five-stage gate pipeline",
		RunE:  runGates,
	}
	gatesCmd.Flags().StringVar(&flagInputs, "inputs", "", "macro inputs yaml file (required)")
	gatesCmd.Flags().StringVar(&flagTrade, "trade", "", "trade candidate yaml file (required)")
	gatesCmd.Flags().BoolVar(&flagJSON, "json", false, "emit the gate summary as JSON")
	gatesCmd.MarkFlagRequired("inputs")
	gatesCmd.MarkFlagRequired("trade")

	rootCmd.AddCommand(snapshotCmd, gatesCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func loadRegimeConfig() (*regime.Config, error) {
	if flagConfig == "" {
		return regime.DefaultConfig(), nil
	}
	return regime.LoadConfig(flagConfig)
}

func loadGatesConfig() (*gates.Config, error) {
	if flagGatesConfig == "" {
		return gates.DefaultConfig(), nil
	}
	return gates.LoadConfig(flagGatesConfig)
}

func computeSnapshot() (*regime.Snapshot, error) {
	cfg, err := loadRegimeConfig()
	if err != nil {
		return nil, err
	}
	inputs, err := macro.LoadInputs(flagInputs)
	if err != nil {
		return nil, err
	}

	engine := regime.NewEngine(cfg)
	snap := engine.Snapshot(inputs)
	log.Info().Str("regime", snap.Regime.String()).Str("confidence", snap.Confidence.String()).Msg("regime classified")
	return snap, nil
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	snap, err := computeSnapshot()
	if err != nil {
		return err
	}

	reg := metrics.NewRegistry()
	reg.RecordSnapshot(snap)

	if flagJSON {
		return printJSON(snap)
	}
	fmt.Println(snap.DetailedReport())
	return nil
}

func runGates(cmd *cobra.Command, args []string) error {
	snap, err := computeSnapshot()
	if err != nil {
		return err
	}
	gcfg, err := loadGatesConfig()
	if err != nil {
		return err
	}
	trade, err := loadTrade(flagTrade)
	if err != nil {
		return err
	}

	summary := gates.NewEvaluator(gcfg).Evaluate(snap, trade)

	reg := metrics.NewRegistry()
	reg.RecordSnapshot(snap)
	reg.RecordGateSummary(summary)

	if flagJSON {
		return printJSON(summary)
	}
	fmt.Println(summary.DetailedReport())
	if !summary.AllPass {
		os.Exit(2)
	}
	return nil
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}
