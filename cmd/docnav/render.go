package main

import (
	"fmt"

	"github.com/google/renameio/v2"
	"github.com/helixml/docnav/application/service"
	"github.com/helixml/docnav/domain/nav"
	"github.com/helixml/docnav/infrastructure/render"
	"github.com/spf13/cobra"
)

func renderCmd(g *globalFlags) *cobra.Command {
	var (
		menu   string
		format string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "render [version]",
		Short: "Render a version's menu as text, markdown, html or json",
		Long: `Render the nav or sidebar menu of a version (default: latest).

With --out the file is replaced atomically, so a site build reading it never
sees a partial menu.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := render.ParseFormat(format)
			if err != nil {
				return err
			}
			ver := service.LatestVersion
			if len(args) == 1 {
				ver = args[0]
			}

			s, err := openFromFlags(g)
			if err != nil {
				return err
			}
			defer s.close()

			ctx := cmd.Context()
			st, err := s.client.Sites.Get(ctx, ver)
			if err != nil {
				return err
			}
			tree, err := s.client.Sites.Menu(ctx, ver, menu)
			if err != nil {
				return err
			}
			opts := []render.Option{render.WithBase(st.Base())}

			if out == "" {
				return render.Menu(cmd.OutOrStdout(), tree, f, opts...)
			}
			if err := writeAtomically(out, tree, f, opts...); err != nil {
				return err
			}
			s.logger.Info("menu written", "path", out, "version", st.Version(), "menu", menu, "format", string(f))
			return nil
		},
	}

	cmd.Flags().StringVar(&menu, "menu", "sidebar", "Menu to render: nav or sidebar")
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text, markdown, html, json")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write to this file instead of stdout")

	return cmd
}

// writeAtomically renders into a pending file that replaces path only once
// fully written and synced.
func writeAtomically(path string, tree nav.Tree, f render.Format, opts ...render.Option) error {
	pending, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o644))
	if err != nil {
		return fmt.Errorf("create pending file: %w", err)
	}
	defer func() { _ = pending.Cleanup() }()

	if err := render.Menu(pending, tree, f, opts...); err != nil {
		return err
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
