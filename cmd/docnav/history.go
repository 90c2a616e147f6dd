package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func historyCmd(g *globalFlags) *cobra.Command {
	var (
		limit  int
		showID string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List stored check reports, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openFromFlags(g)
			if err != nil {
				return err
			}
			defer s.close()

			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if showID != "" {
				report, err := s.client.Checks.Get(ctx, showID)
				if err != nil {
					return err
				}
				printReport(out, report)
				return nil
			}

			reports, err := s.client.Checks.List(ctx, limit)
			if err != nil {
				return err
			}
			if len(reports) == 0 {
				fmt.Fprintln(out, "no checks recorded")
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tSTARTED\tRESULT\tLINKS\tVERSIONS\t")
			for _, r := range reports {
				result := "ok"
				if !r.OK() {
					result = fmt.Sprintf("%d %s", len(r.Problems()), plural(len(r.Problems()), "problem"))
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t\n",
					r.ID(), humanize.Time(r.StartedAt()), result,
					humanize.Comma(int64(r.LinksChecked())), strings.Join(r.Versions(), ","))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Number of reports to list (default: 20)")
	cmd.Flags().StringVar(&showID, "show", "", "Print the full report with this ID")

	return cmd
}
