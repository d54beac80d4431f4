// Package platform assembles the runtime a Session talks to.
package platform

import (
	"errors"
	"fmt"

	"github.com/mj1618/sikuli-cli/internal/config"
	"github.com/mj1618/sikuli-cli/internal/interpreter"
	"github.com/mj1618/sikuli-cli/internal/metrics"
	"github.com/mj1618/sikuli-cli/internal/sikuli"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Provider bundles the runtime backend and the metrics registry it reports to.
type Provider struct {
	Runtime  sikuli.Runtime
	Registry *prometheus.Registry
	Options  []sikuli.Option
}

// ErrNoRuntime is returned when no runtime factory is installed.
var ErrNoRuntime = errors.New("no sikuli runtime available")

// NewProviderFunc builds the Provider. Tests replace it to inject a fake
// runtime.
var NewProviderFunc = newInterpreterProvider

// NewProvider returns a Provider for cfg.
func NewProvider(cfg *config.Config, logger *zap.Logger) (*Provider, error) {
	if NewProviderFunc == nil {
		return nil, ErrNoRuntime
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return NewProviderFunc(cfg, logger)
}

func newInterpreterProvider(cfg *config.Config, logger *zap.Logger) (*Provider, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: nil config", ErrNoRuntime)
	}
	reg := prometheus.NewRegistry()
	collectors := metrics.NewCollectors(reg)
	rt := metrics.Instrument(interpreter.New(cfg.Interpreter, logger), collectors)
	return &Provider{
		Runtime:  rt,
		Registry: reg,
		Options: []sikuli.Option{
			sikuli.WithLogger(logger),
			sikuli.WithStrictPresence(cfg.Session.StrictPresence),
		},
	}, nil
}

// OpenSession starts a Session on the provider's runtime.
func (p *Provider) OpenSession() (*sikuli.Session, error) {
	if p.Runtime == nil {
		return nil, ErrNoRuntime
	}
	return sikuli.NewSession(p.Runtime, p.Options...)
}
