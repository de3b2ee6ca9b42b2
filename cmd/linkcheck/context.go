package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/shelfpost/linkcheck/internal/domain"
	"github.com/shelfpost/linkcheck/internal/linkfile"
	"github.com/shelfpost/linkcheck/internal/logger"
	"github.com/shelfpost/linkcheck/internal/service"
)

// stdinPath makes a command read the draft from standard input.
const stdinPath = "-"

// commandContext carries the persistent flags shared by every subcommand.
type commandContext struct {
	logLevel  string
	linksPath string
}

func (c *commandContext) logger(cmd *cobra.Command) *logger.Logger {
	return logger.New(logger.Config{
		Writer:      cmd.ErrOrStderr(),
		Environment: "development",
		Level:       logger.ParseLevel(c.logLevel),
		NoColor:     true,
	})
}

func (c *commandContext) loadLinks() ([]domain.AffiliateLink, error) {
	if c.linksPath == "" {
		return nil, errors.New("--links is required")
	}
	return linkfile.Load(c.linksPath)
}

// linkHealth builds a service for ad-hoc drafts. Stored submissions are not
// reachable from the CLI.
func (c *commandContext) linkHealth(cmd *cobra.Command, maxPerTitle int) *service.LinkHealthService {
	return service.NewLinkHealthService(nil, maxPerTitle, c.logger(cmd).Logger)
}

// draftRequest loads the draft at path together with the configured links.
func (c *commandContext) draftRequest(cmd *cobra.Command, path string) (service.DraftRequest, error) {
	links, err := c.loadLinks()
	if err != nil {
		return service.DraftRequest{}, err
	}
	draft, err := readDraft(cmd.InOrStdin(), path)
	if err != nil {
		return service.DraftRequest{}, err
	}
	return service.DraftRequest{Content: draft, Links: links}, nil
}

func readDraft(stdin io.Reader, path string) (string, error) {
	var data []byte
	var err error
	if path == stdinPath {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read draft: %w", err)
	}
	return string(data), nil
}
