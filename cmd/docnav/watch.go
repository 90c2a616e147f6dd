package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/helixml/docnav/application/service"
	"github.com/helixml/docnav/domain/check"
	"github.com/spf13/cobra"
)

func watchCmd(g *globalFlags) *cobra.Command {
	var (
		versions []string
		content  bool
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Check again whenever site, docs or html files change",
		Long: `Check once, then again every time files under --site-dir, --docs-dir or
--html-dir change. Bursts of changes are coalesced (WATCH_DEBOUNCE_MS).
Stops on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openFromFlags(g)
			if err != nil {
				return err
			}
			defer s.close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			opts := []service.RunOption{service.WithVersions(versions...)}
			if cmd.Flags().Changed("content") {
				opts = append(opts, service.WithContent(content))
			}

			s.logStart(ctx, "watching documentation")
			out := cmd.OutOrStdout()
			err = s.client.Watch(ctx, func(r check.Report, err error) {
				if err != nil {
					s.logger.Error("check failed", "error", err)
					return
				}
				printReport(out, r)
				fmt.Fprintln(out)
			}, opts...)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringSliceVar(&versions, "version", nil, "Version to check, repeatable (default: all)")
	cmd.Flags().BoolVar(&content, "content", false, "Also check links inside page content (default: CHECK_CONTENT)")

	return cmd
}
