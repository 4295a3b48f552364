package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	versioncollector "github.com/prometheus/client_golang/prometheus/collectors/version"
	"github.com/prometheus/common/version"

	"github.com/psantana5/flexdash/internal/dashboard"
	"github.com/psantana5/flexdash/pkg/client"
	"github.com/psantana5/flexdash/pkg/logging"
	"github.com/psantana5/flexdash/pkg/metrics"
	"github.com/psantana5/flexdash/pkg/ratelimit"
	"github.com/psantana5/flexdash/pkg/shutdown"
	"github.com/psantana5/flexdash/pkg/tlsutil"
	"github.com/psantana5/flexdash/pkg/tracing"
)

func main() {
	cfg, dotenv, err := LoadConfig()
	if err != nil {
		logging.NewLogger(logging.ERROR, false).Fatal("Invalid configuration", logging.Fields{"error": err})
	}

	logger := logging.NewLogger(logging.ParseLevel(cfg.LogLevel), cfg.LogJSON).WithComponent("flexdash")
	logger.Info("Starting flexdash", logging.Fields{
		"version": version.Info(),
		"build":   version.BuildContext(),
	})
	if dotenv {
		logger.Info("Loaded .env file")
	}
	logger.Info("Configuration", logging.Fields{
		"port":        cfg.Port,
		"hub":         cfg.HubURL,
		"environment": cfg.Environment,
		"tracing":     cfg.TracingEnabled,
		"rate_limit":  cfg.RateLimitRPS,
		"tls":         cfg.TLSEnabled(),
	})

	provider, err := tracing.InitTracer(tracing.Config{
		ServiceName:    "flexdash",
		ServiceVersion: version.Version,
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		Enabled:        cfg.TracingEnabled,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize tracing", logging.Fields{"error": err})
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		versioncollector.NewCollector("flexdash"),
	)
	clientMetrics := metrics.NewClientMetrics(reg)

	transport, err := tlsutil.Transport(cfg.HubCAFile)
	if err != nil {
		logger.Fatal("Failed to load hub CA", logging.Fields{"error": err})
	}
	transport = tracing.NewTransport(provider, transport)
	transport = clientMetrics.InstrumentTransport(transport)
	transport = dashboard.PropagateRequestID(transport)

	hub, err := client.New(cfg.HubURL,
		client.WithHTTPClient(&http.Client{Timeout: cfg.HubTimeout}),
		client.WithTransport(transport),
		client.WithUserAgent("flexdash/"+version.Version),
	)
	if err != nil {
		logger.Fatal("Failed to create hub client", logging.Fields{"error": err})
	}
	reg.MustRegister(metrics.NewHubCollector(hub, 5*time.Second))

	opts := dashboard.Options{
		HubURL:   hub.BaseURL(),
		Logger:   logger,
		Metrics:  metrics.NewHTTPMetrics(reg),
		Gatherer: reg,
		Tracing:  provider,
	}
	stopCleanup := func(context.Context) error { return nil }
	if cfg.RateLimited() {
		opts.Limiter = ratelimit.NewLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
		stopCleanup = runLimiterCleanup(opts.Limiter, 10*time.Minute)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           dashboard.NewServer(hub, opts).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	if cfg.TLSEnabled() {
		srv.TLSConfig, err = tlsutil.ServerConfig(cfg.TLSCertFile, cfg.TLSKeyFile)
		if err != nil {
			logger.Fatal("Failed to load TLS certificate", logging.Fields{"error": err})
		}
	}

	mgr := shutdown.New(15*time.Second, logger)
	mgr.Register("tracing", provider.Shutdown)
	mgr.Register("rate limiter", stopCleanup)
	mgr.Register("http server", shutdown.StopHTTPServer(srv))

	go func() {
		logger.Info("Dashboard listening", logging.Fields{"addr": srv.Addr, "tls": cfg.TLSEnabled()})
		var err error
		if cfg.TLSEnabled() {
			err = srv.ListenAndServeTLS("", "")
		} else {
			err = srv.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server failed", logging.Fields{"error": err})
			mgr.Shutdown()
			os.Exit(1)
		}
	}()

	if err := mgr.Wait(context.Background()); err != nil {
		os.Exit(1)
	}
}

// runLimiterCleanup periodically drops idle rate-limit buckets until the
// returned function is called.
func runLimiterCleanup(l *ratelimit.Limiter, maxAge time.Duration) func(context.Context) error {
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				l.Cleanup(maxAge)
			case <-done:
				return
			}
		}
	}()
	return func(context.Context) error {
		close(done)
		return nil
	}
}
