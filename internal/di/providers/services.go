package providers

import (
	"github.com/samber/do/v2"

	"github.com/shelfpost/linkcheck/internal/config"
	"github.com/shelfpost/linkcheck/internal/logger"
	"github.com/shelfpost/linkcheck/internal/service"
)

// ProvideSubmissionService provides the submission service.
func ProvideSubmissionService(i do.Injector) (*service.SubmissionService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewSubmissionService(storeHandle.Store, log.Logger), nil
}

// ProvideLinkHealthService provides the link health service.
func ProvideLinkHealthService(i do.Injector) (*service.LinkHealthService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	submissions := do.MustInvoke[*service.SubmissionService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewLinkHealthService(submissions, cfg.Links.MaxPerTitle, log.Logger), nil
}
