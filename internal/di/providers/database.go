package providers

import (
	"github.com/samber/do/v2"

	"github.com/shelfpost/linkcheck/internal/config"
	"github.com/shelfpost/linkcheck/internal/logger"
	"github.com/shelfpost/linkcheck/internal/store"
)

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	*store.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore opens the submission database under the configured data path.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	db, err := store.New(cfg.Store.DataPath, log.Logger)
	if err != nil {
		return nil, err
	}

	return &StoreHandle{Store: db}, nil
}
