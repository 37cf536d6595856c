package main

import (
	"fmt"

	"github.com/ltemarine/shiplog/internal/airtable"
	"github.com/ltemarine/shiplog/internal/config"
	httphandler "github.com/ltemarine/shiplog/internal/handler/http"
	"github.com/ltemarine/shiplog/internal/logger"
	"github.com/ltemarine/shiplog/internal/mailer"
	"github.com/ltemarine/shiplog/internal/server"
	"github.com/ltemarine/shiplog/internal/service"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("shiplog-server")
	cfg, err := config.GetServerConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	if cfg.App.Version == "" {
		cfg.App.Version = buildVersion
	}

	users, err := airtable.NewClientFromConfig(cfg.Airtable, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating user directory client")
	}

	codeMailer, err := mailer.NewResendMailerFromConfig(cfg.Email, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating mailer")
	}

	services := service.NewServices(users, codeMailer, cfg.App, log)
	handler := httphandler.NewHandler(services, log)

	srv, err := server.NewServer(handler, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
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
