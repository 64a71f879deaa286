package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-pos-sync/internal/client"
	"github.com/MKhiriev/go-pos-sync/internal/config"
	"github.com/MKhiriev/go-pos-sync/internal/logger"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	bootLog := logger.NewLogger("pos-terminal")
	cfg, err := config.GetTerminalConfig()
	if err != nil {
		bootLog.Fatal().Err(err).Msg("error getting configs")
	}

	// keep the status line alone on stdout
	log := logger.NewFileLogger("pos-terminal", cfg.LogFile)

	app, err := client.NewApp(context.Background(), cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init terminal app error")
	}

	if err = app.Run(); err != nil {
		log.Fatal().Err(err).Msg("terminal run error")
	}
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
