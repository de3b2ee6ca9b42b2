package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shelfpost/linkcheck/internal/watcher"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	var opts analyzeOptions

	cmd := &cobra.Command{
		Use:   "watch DRAFT",
		Short: "Re-run analyze whenever the draft or link file changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] == stdinPath {
				return errors.New("watch needs a draft file, not standard input")
			}
			if ctx.linksPath == "" {
				return errors.New("--links is required")
			}
			return runWatch(cmd, ctx, args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.json, "json", false, "Print each report as JSON")

	return cmd
}

func runWatch(cmd *cobra.Command, ctx *commandContext, draftPath string, opts analyzeOptions) error {
	log := ctx.logger(cmd)
	out := cmd.OutOrStdout()

	w, err := watcher.New(log.Logger, watcher.Options{})
	if err != nil {
		return err
	}
	defer w.Stop() //nolint:errcheck // Best-effort cleanup

	for _, p := range []string{draftPath, ctx.linksPath} {
		if err := w.Watch(p); err != nil {
			return err
		}
	}

	runCtx := cmd.Context()
	go w.Start(runCtx) //nolint:errcheck // Returns nil on cancellation

	analyze := func() {
		if err := runAnalyze(cmd, ctx, draftPath, opts); err != nil {
			fmt.Fprintf(out, "error: %s\n", formatError(err))
		}
	}
	analyze()

	for {
		select {
		case <-runCtx.Done():
			return nil
		case ev := <-w.Events():
			if ev.Type == watcher.EventRemoved {
				fmt.Fprintf(out, "%s was removed, waiting for it to return\n", ev.Path)
				continue
			}
			fmt.Fprintf(out, "\n%s changed\n", ev.Path)
			analyze()
		case err := <-w.Errors():
			log.Warn("watch error", "error", err)
		}
	}
}
