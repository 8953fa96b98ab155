package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/smauto-dev/engine/domain/model"
	"github.com/smauto-dev/engine/engine"
	engconfig "github.com/smauto-dev/engine/pkg/config"
	"github.com/smauto-dev/engine/pkg/logger"
	"github.com/smauto-dev/engine/pkg/metrics"
)

func init() {
	rootCmd.AddCommand(interpretCmd)
}

var interpretCmd = &cobra.Command{
	Use:   "interpret MODEL.yaml",
	Short: "Validate a model document and run the automation engine against it",
	Args:  cobra.ExactArgs(1),
	RunE:  runInterpret,
}

func runInterpret(cmd *cobra.Command, args []string) error {
	cfg, err := engconfig.Load()
	if err != nil {
		return fmt.Errorf("load process config: %w", err)
	}

	log := logger.New(logger.LoggingConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: cfg.LogOutput,
	})

	m, err := model.Load(args[0])
	if err != nil {
		return fmt.Errorf("invalid model: %w", err)
	}

	var engMetrics *metrics.Metrics
	var metricsSrv *http.Server
	if cfg.MetricsEnabled {
		engMetrics = metrics.New()
		metricsSrv = &http.Server{Addr: cfg.MetricsAddr, Handler: promhttp.Handler()}
		go func() {
			if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.WithField("error", err).Warn("metrics server stopped")
			}
		}()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eng, err := engine.New(ctx, m, log, engine.WithMetrics(engMetrics), engine.WithRetryConfig(cfg.BrokerRetryConfig()))
	if err != nil {
		return fmt.Errorf("build engine: %w", err)
	}
	if metricsSrv != nil {
		eng.Hooks().OnPostStopNamed("metrics_server", func(context.Context) error {
			return metricsSrv.Close()
		})
	}

	log.WithField("automations", len(m.Automations)).Info("engine starting")
	return eng.Run(ctx)
}
