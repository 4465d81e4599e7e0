package main

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/viralit/client/internal/apiclient"
	"github.com/viralit/client/internal/config"
	"github.com/viralit/client/internal/logging"
	"github.com/viralit/client/internal/metrics"
)

// app bundles the process-wide collaborators built once at startup.
type app struct {
	cfg      *config.Config
	logger   zerolog.Logger
	registry *prometheus.Registry
	metrics  *metrics.ClientMetrics
	client   *apiclient.Client
}

func newApp(configPath string) (*app, error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	logger := logging.NewLogger(cfg)
	registry := prometheus.NewRegistry()
	m := metrics.NewClientMetrics(registry)

	opts := []apiclient.Option{
		apiclient.WithLogger(logger),
		apiclient.WithMetrics(m),
	}

	tlsCfg, err := cfg.APITLS()
	if err != nil {
		return nil, fmt.Errorf("api tls: %w", err)
	}
	if tlsCfg != nil {
		tr := http.DefaultTransport.(*http.Transport).Clone()
		tr.TLSClientConfig = tlsCfg
		opts = append(opts, apiclient.WithHTTPClient(&http.Client{Transport: tr}))
	}
	if cfg.HTTPTimeout > 0 {
		opts = append(opts, apiclient.WithTimeout(cfg.HTTPTimeout))
	}

	client := apiclient.New(cfg.BaseURL(), opts...)
	logger.Debug().Str("base_url", client.BaseURL()).Msg("api client ready")

	return &app{
		cfg:      cfg,
		logger:   logger,
		registry: registry,
		metrics:  m,
		client:   client,
	}, nil
}
