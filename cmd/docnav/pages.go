package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func pagesCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "pages",
		Short: "List the pages found under --docs-dir or --html-dir",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openFromFlags(g)
			if err != nil {
				return err
			}
			defer s.close()

			catalog, err := s.client.Catalog(cmd.Context())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "PATH\tTITLE\tSIZE\tLINKS\t")
			var total int64
			for _, p := range catalog.Pages() {
				total += p.Size()
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t\n", p.Path(), p.Title(), humanize.Bytes(uint64(p.Size())), len(p.Links()))
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s pages, %s\n", humanize.Comma(int64(catalog.Len())), humanize.Bytes(uint64(total)))
			return nil
		},
	}
}
