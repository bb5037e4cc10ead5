package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"freight/internal/carrier"
	"freight/internal/configuration"
	"freight/internal/eligibility"
	"freight/internal/logging"
	"freight/internal/offers"
)

// app holds the components shared by all commands.
type app struct {
	config  *configuration.AppConfig
	catalog *carrier.Catalog
	scoring *eligibility.Service
	offers  *offers.Service
	close   func() error
}

// newApp loads the configuration, installs the logger and builds the scoring pipeline.
// Logs go to console unless the configuration names a log file.
func newApp(ctx context.Context, path string, console io.Writer) (*app, error) {
	config, err := configuration.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	closeLog := logging.Setup(config.Logger, console)

	catalog, err := carrier.LoadFromFile(config.Catalog.File)
	if err != nil {
		closeLog()
		return nil, err
	}

	scoring, err := eligibility.NewService(config.Scoring.Overrides())
	if err != nil {
		closeLog()
		return nil, fmt.Errorf("error creating eligibility service: %w", err)
	}

	carriers, err := catalog.Carriers(ctx)
	if err == nil {
		err = scoring.Prepare(carriers)
	}
	if err != nil {
		closeLog()
		return nil, err
	}

	slog.Info("Carrier catalog loaded", "file", config.Catalog.File, "carriers", catalog.Len())

	return &app{
		config:  config,
		catalog: catalog,
		scoring: scoring,
		offers:  offers.NewService(catalog, scoring),
		close:   closeLog,
	}, nil
}
