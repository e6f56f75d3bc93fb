// Command marketchart renders, aligns and serves market index charts.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iwvelando/marketchart/internal/chart"
	"github.com/iwvelando/marketchart/internal/config"
	"github.com/iwvelando/marketchart/internal/ingest"
	"github.com/iwvelando/marketchart/internal/series"
	"github.com/iwvelando/marketchart/internal/server"
	"github.com/iwvelando/marketchart/pkg/adapters"
	"github.com/iwvelando/marketchart/pkg/constants"
	"github.com/iwvelando/marketchart/pkg/output"
	"github.com/iwvelando/marketchart/pkg/validation"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var (
	configLocation string
	envFile        string
	logLevel       string
	outputFormat   string
	rangeFlag      string
	relativeFlag   string
	selection      []string
	serverConfig   string
	listenAddress  string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "marketchart",
		Short:        "Align and chart market index series",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			loadEnvFile(cmd.ErrOrStderr())
		},
	}
	rootCmd.PersistentFlags().StringVar(&configLocation, "config", constants.DefaultConfigFile, "path to configuration file")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "optional file of environment overrides")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "Render the configured series and print the chart as JSON",
		Args:  cobra.NoArgs,
		RunE:  runRender,
	}
	renderCmd.Flags().StringVar(&rangeFlag, "range", "", "period preset override: 1W, 1M, 3M, 6M, 1Y, MAX")
	renderCmd.Flags().StringVar(&relativeFlag, "relative", "", "relative mode override: auto, always, never")
	renderCmd.Flags().StringSliceVar(&selection, "select", nil, "series to show (default: all)")

	alignCmd := &cobra.Command{
		Use:   "align",
		Short: "Print the configured series aligned on one timeline",
		Args:  cobra.NoArgs,
		RunE:  runAlign,
	}
	alignCmd.Flags().StringVar(&outputFormat, "output-format", "", "type of output override: pretty, csv, json")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the chart API over HTTP",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&serverConfig, "server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	serveCmd.Flags().StringVar(&listenAddress, "address", "", "listen address override")

	rootCmd.AddCommand(renderCmd, alignCmd, serveCmd)
	return rootCmd
}

// loadEnvFile applies the env file before viper reads the environment. A
// missing file is not an error.
func loadEnvFile(stderr io.Writer) {
	if envFile == "" {
		return
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(stderr, "Warning: failed to load env file %s: %v\n", envFile, err)
	}
}

// setup loads the configuration, builds the logger and logs config warnings.
func setup() (*config.Configuration, *zap.Logger, error) {
	conf, err := config.LoadConfiguration(configLocation)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration at %s: %w", configLocation, err)
	}

	logger, err := initializeLogger(conf.Logging, logLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}
	return conf, logger, nil
}

func loadSeries(ctx context.Context, conf *config.Configuration, logger *zap.Logger) ([]series.Series, error) {
	loaded, warnings, err := ingest.NewLoader(logger).LoadAll(ctx, adapters.SeriesToSources(conf.Series))
	if err != nil {
		return nil, err
	}
	for _, warning := range warnings {
		logger.Warn(warning, zap.String("op", "main.loadSeries"))
	}
	return loaded, nil
}

func runRender(cmd *cobra.Command, args []string) error {
	conf, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	opts := conf.Chart.ChartOptions()
	if rangeFlag != "" {
		if err := validation.ValidateRange(rangeFlag); err != nil {
			return err
		}
		opts.Range = series.RangeKey(rangeFlag)
	}
	if relativeFlag != "" {
		if err := validation.ValidateRelativeMode(relativeFlag); err != nil {
			return err
		}
		opts.Relative = chart.RelativeMode(relativeFlag)
	}

	loaded, err := loadSeries(cmd.Context(), conf, logger)
	if err != nil {
		logger.Error("failed to load series",
			zap.String("op", "main.render"),
			zap.Error(err),
		)
		return err
	}

	c := chart.New(logger, opts)
	c.Load(loaded)
	if len(selection) > 0 {
		c.SetSelection(selection)
	}
	return output.JSONFormat(cmd.OutOrStdout(), c.Render())
}

func runAlign(cmd *cobra.Command, args []string) error {
	conf, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	// CLI override takes precedence over config
	format := conf.Output.Format
	if outputFormat != "" {
		format = outputFormat
	}
	if format == "" {
		format = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(format); err != nil {
		return err
	}

	loaded, err := loadSeries(cmd.Context(), conf, logger)
	if err != nil {
		logger.Error("failed to load series",
			zap.String("op", "main.align"),
			zap.Error(err),
		)
		return err
	}

	opts := series.AlignmentOptions{Calendar: conf.Chart.Calendar}
	if conf.Chart.LeaveGaps {
		opts.GapPolicy = series.LeaveGaps
	}
	frame := series.Align(loaded, opts)

	out := cmd.OutOrStdout()
	switch format {
	case constants.OutputFormatPretty:
		output.PrettyFormat(out, frame)
	case constants.OutputFormatCSV:
		output.CsvFormat(out, frame)
	case constants.OutputFormatJSON:
		return output.JSONFormat(out, output.Rows(frame))
	}
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := server.LoadConfig(serverConfig)
	if err != nil {
		return err
	}
	if listenAddress != "" {
		cfg.Address = strings.TrimSpace(listenAddress)
	}

	logger, err := initializeLogger(cfg.Logging, logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	srv := &http.Server{
		Addr:    cfg.Address,
		Handler: server.NewHandler(logger, cfg.UploadSizeBytes(), version, cfg.Chart),
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server",
			zap.String("op", "main.serve"),
			zap.String("address", cfg.Address),
			zap.Int64("maxUploadSize", cfg.UploadSizeBytes()),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed",
				zap.String("op", "main.serve"),
				zap.Error(err),
			)
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeoutDuration())
	defer cancel()
	logger.Info("shutting down server", zap.String("op", "main.serve"))
	return srv.Shutdown(shutdownCtx)
}
