package cmd

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/mj1618/sikuli-cli/internal/metrics"
	"github.com/mj1618/sikuli-cli/internal/platform"
	"github.com/mj1618/sikuli-cli/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an MCP server exposing sikuli-cli tools",
	Long: `Start a Model Context Protocol (MCP) server that exposes the sikuli-cli
actions as tools on one long-lived interpreter session.

Supported transports:
  stdio             Standard I/O (default)
  streamable-http   Streamable HTTP transport (for remote agents)

With --metrics-addr (or metrics.addr in the config) Prometheus metrics are
served on /metrics and a liveness probe on /healthz.

Examples:
  sikuli-cli serve
  sikuli-cli serve --transport streamable-http --port 8080 --metrics-addr :9090`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", "stdio", "Transport: stdio, streamable-http")
	serveCmd.Flags().Int("port", 8080, "HTTP port for streamable-http transport")
	serveCmd.Flags().String("metrics-addr", "", "Listen address for /metrics and /healthz (overrides metrics.addr)")
}

func runServe(cmd *cobra.Command, args []string) error {
	transport, _ := cmd.Flags().GetString("transport")
	port, _ := cmd.Flags().GetInt("port")
	metricsAddr, _ := cmd.Flags().GetString("metrics-addr")
	if metricsAddr == "" && appCfg != nil {
		metricsAddr = appCfg.Metrics.Addr
	}

	session, provider, err := openSession()
	if err != nil {
		return err
	}
	defer closeSession(session)

	if metricsAddr != "" {
		srv, err := startMetrics(metricsAddr, provider)
		if err != nil {
			return err
		}
		defer srv.Close()
	}

	logger.Info("serving", zap.String("transport", transport), zap.String("session", session.ID()))
	return server.New(session, logger).Serve(server.Config{Transport: transport, Port: port})
}

// startMetrics serves the provider's registry in the background.
func startMetrics(addr string, provider *platform.Provider) (*http.Server, error) {
	if provider.Registry == nil {
		return nil, fmt.Errorf("metrics requested but the runtime has no registry")
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           metrics.NewHandler(provider.Registry),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics listener", zap.String("addr", addr), zap.Error(err))
		}
	}()
	logger.Info("metrics listening", zap.String("addr", addr))
	return srv, nil
}
