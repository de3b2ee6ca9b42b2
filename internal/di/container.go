// Package di wires the LinkCheck server together with samber/do.
package di

import (
	"github.com/samber/do/v2"

	"github.com/shelfpost/linkcheck/internal/config"
	"github.com/shelfpost/linkcheck/internal/di/providers"
	"github.com/shelfpost/linkcheck/internal/logger"
	"github.com/shelfpost/linkcheck/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Database layer
	do.Provide(injector, providers.ProvideStore)

	// Business services
	do.Provide(injector, providers.ProvideSubmissionService)
	do.Provide(injector, providers.ProvideLinkHealthService)

	// Server
	do.Provide(injector, providers.ProvideRateLimiter)
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap eagerly resolves every provider so startup errors surface before
// the server reports itself ready.
func Bootstrap(injector *do.RootScope) error {
	if _, err := do.Invoke[*config.Config](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*logger.Logger](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.StoreHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*service.SubmissionService](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*service.LinkHealthService](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.HTTPServerHandle](injector); err != nil {
		return err
	}
	return nil
}
