package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-web-host/internal/config"
	httphandler "github.com/MKhiriev/go-web-host/internal/handler/http"
	"github.com/MKhiriev/go-web-host/internal/host"
	"github.com/MKhiriev/go-web-host/internal/logger"
	"github.com/MKhiriev/go-web-host/internal/metrics"
	"github.com/MKhiriev/go-web-host/internal/server"
	"github.com/MKhiriev/go-web-host/internal/service"
	"github.com/MKhiriev/go-web-host/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "web-host",
		Short: "Run the web host",
		Long: `Run the web host over HTTPS.

Settings are read from App_Data/appsettings.json, then from
App_Data/{Directory}/appsettings.json when both --appsettings and
--Directory are given, then from the environment and finally from the
command line. Keys use ':' as separator (Application:MaxRequestBodySize);
environment variables use '__' (Application__MaxRequestBodySize).`,
		Example: `  web-host --Application:MaxRequestBodySize=1048576
  web-host --appsettings=1 --Directory=production
  Server__Address=127.0.0.1:8443 web-host`,
		// every argument is a configuration key
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), args)
		},
	}
}

func run(ctx context.Context, args []string) error {
	printBuildInfo()

	log := logger.NewLogger("web-host")

	cfg, err := config.GetStructuredConfig(".", args)
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	if err = logger.SetLevel(cfg.Logging.Level); err != nil {
		log.Fatal().Err(err).Msg("error setting log level")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	limits := host.NewListenerLimits(cfg.App)
	m := metrics.NewMetrics()

	services, err := service.NewServices(service.BuildInfo{
		Version: buildVersion,
		Date:    buildDate,
		Commit:  buildCommit,
	}, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	backgroundWorkers := workers.NewWorkers(m, log)
	workers.RegisterTasks(backgroundWorkers, services, cfg, m, log)

	handler := httphandler.NewHandler(services, m, log)

	srv, err := server.NewServer(handler.Init(), limits, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	backgroundWorkers.Run(ctx)

	err = srv.RunServer(ctx)

	cancel()
	backgroundWorkers.Wait()

	if err != nil {
		log.Error().Err(err).Msg("error running server")
		return err
	}

	return nil
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
