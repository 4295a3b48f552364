// Command fakehub serves the Flex hub REST API from memory for local
// development and demos of flexdash and flexctl.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"time"

	"github.com/psantana5/flexdash/internal/fakehub"
	"github.com/psantana5/flexdash/pkg/logging"
	"github.com/psantana5/flexdash/pkg/shutdown"
	"github.com/psantana5/flexdash/pkg/tlsutil"
)

func main() {
	port := flag.String("port", "7111", "Listen port")
	seed := flag.Bool("seed", true, "Populate the store with demo jobs and flexlets")
	logLevel := flag.String("log-level", "INFO", "Log level (DEBUG, INFO, WARN, ERROR)")
	tlsCert := flag.String("tls-cert", "", "TLS certificate file; serves HTTPS when set with --tls-key")
	tlsKey := flag.String("tls-key", "", "TLS private key file")
	generateCert := flag.Bool("generate-cert", false, "write a self-signed certificate to --tls-cert and --tls-key before starting")
	flag.Parse()

	logger := logging.NewLogger(logging.ParseLevel(*logLevel), false).WithComponent("fakehub")

	store := fakehub.NewStore()
	if *seed {
		fakehub.Seed(store)
		stats := store.Stats()
		logger.Info("Seeded demo data", logging.Fields{
			"pending": stats.Job.PendingJobs,
			"running": stats.Job.RunningJobs,
			"online":  stats.Flexlet.OnlineFlexlets,
		})
	}

	useTLS := *tlsCert != "" && *tlsKey != ""
	if *generateCert {
		if !useTLS {
			logger.Fatal("--generate-cert requires --tls-cert and --tls-key")
		}
		if err := tlsutil.GenerateSelfSigned(*tlsCert, *tlsKey, "fakehub"); err != nil {
			logger.Fatal("Failed to generate certificate", logging.Fields{"error": err})
		}
		logger.Info("Generated self-signed certificate", logging.Fields{"cert": *tlsCert})
	}

	handler := fakehub.NewHandler(store, logger)
	srv := &http.Server{
		Addr:         ":" + *port,
		Handler:      handler.NewRouter(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	if useTLS {
		cfg, err := tlsutil.ServerConfig(*tlsCert, *tlsKey)
		if err != nil {
			logger.Fatal("Failed to load TLS certificate", logging.Fields{"error": err})
		}
		srv.TLSConfig = cfg
	}

	mgr := shutdown.New(10*time.Second, logger)
	mgr.Register("http server", shutdown.StopHTTPServer(srv))

	go func() {
		logger.Info("Fake hub listening", logging.Fields{"addr": srv.Addr, "tls": useTLS})
		logger.Info("API endpoints: GET /api/jobs, /api/jobs/{id}, /api/jobs/{id}/{stdout|stderr}, /api/flexlets, /api/stats")
		var err error
		if useTLS {
			err = srv.ListenAndServeTLS("", "")
		} else {
			err = srv.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server failed", logging.Fields{"error": err})
			os.Exit(1)
		}
	}()

	if err := mgr.Wait(context.Background()); err != nil {
		os.Exit(1)
	}
}
