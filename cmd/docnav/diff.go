package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func diffCmd(g *globalFlags) *cobra.Command {
	var menu string

	cmd := &cobra.Command{
		Use:   "diff <from> <to>",
		Short: "Show how a menu changed between two versions",
		Long: `Show how a menu changed between two versions.

Lines start with + for added entries, - for removed, ~ for relinked and ^
for entries that moved among their siblings.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openFromFlags(g)
			if err != nil {
				return err
			}
			defer s.close()

			changes, err := s.client.Sites.Diff(cmd.Context(), args[0], args[1], menu)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(changes) == 0 {
				fmt.Fprintf(out, "%s menu unchanged\n", menu)
				return nil
			}
			for _, c := range changes {
				fmt.Fprintln(out, c.String())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&menu, "menu", "sidebar", "Menu to compare: nav or sidebar")

	return cmd
}
