package main

import (
	"github.com/helixml/docnav/application/service"
	"github.com/spf13/cobra"
)

func checkCmd(g *globalFlags) *cobra.Command {
	var (
		versions []string
		content  bool
		external bool
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check navigation links against the documentation pages",
		Long: `Check the navigation bar and sidebar of each version.

Structural problems (empty labels, duplicate siblings, malformed links) are
always reported. Internal links are checked against the page catalog when
--docs-dir or --html-dir is set. The report is stored in the check history.
The command exits non-zero when any problem is found.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openFromFlags(g)
			if err != nil {
				return err
			}
			defer s.close()

			opts := []service.RunOption{service.WithVersions(versions...)}
			if cmd.Flags().Changed("content") {
				opts = append(opts, service.WithContent(content))
			}
			if cmd.Flags().Changed("external") {
				opts = append(opts, service.WithExternal(external))
			}

			report, err := s.client.Checks.Run(cmd.Context(), opts...)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				if err := writeReportJSON(out, report); err != nil {
					return err
				}
			} else {
				printReport(out, report)
			}
			if !report.OK() {
				return errProblems
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&versions, "version", nil, "Version to check, repeatable (default: all)")
	cmd.Flags().BoolVar(&content, "content", false, "Also check links inside page content (default: CHECK_CONTENT)")
	cmd.Flags().BoolVar(&external, "external", false, "Probe external links over HTTP (default: CHECK_EXTERNAL)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the report as JSON")

	return cmd
}
