package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func versionsCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "versions",
		Short: "List the documentation versions, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openFromFlags(g)
			if err != nil {
				return err
			}
			defer s.close()

			versions, err := s.client.Sites.Versions(cmd.Context())
			if err != nil {
				return err
			}
			latest, _ := versions.Latest()

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "VERSION\tTITLE\tBASE\tNAV\tSIDEBAR\t")
			for _, st := range versions.Sites() {
				name := st.Version()
				if name == latest.Version() {
					name += " (latest)"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t\n",
					name, st.Title(), st.Base(), len(st.Nav().Links()), len(st.Sidebar().Links()))
			}
			return tw.Flush()
		},
	}
}
