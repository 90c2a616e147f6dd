// Package main is the entry point for the docnav CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/helixml/docnav/internal/config"
	"github.com/spf13/cobra"
)

// Version information set via ldflags during build.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// errProblems is returned when a check finds problems, so the process
// exits non-zero after the report has been printed.
var errProblems = errors.New("problems found")

func main() {
	if err := rootCmd().Execute(); err != nil {
		if !errors.Is(err, errProblems) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

// globalFlags are shared by every command that opens a client.
type globalFlags struct {
	envFile string
	siteDir string
	docsDir string
	htmlDir string
	dbURL   string
}

func rootCmd() *cobra.Command {
	g := &globalFlags{}

	cmd := &cobra.Command{
		Use:   "docnav",
		Short: "Validate and render versioned documentation navigation",
		Long: `docnav checks the navigation bar and sidebar of every documentation
version against the pages that exist, renders menus for the site build, and
keeps a history of check reports.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&g.envFile, "env-file", "", "Path to an env file (default: .env.local and .env in current directory)")
	flags.StringVar(&g.siteDir, "site-dir", "", "Directory of per-version site files (default: built-in chess-library sites)")
	flags.StringVar(&g.docsDir, "docs-dir", "", "Markdown documentation root")
	flags.StringVar(&g.htmlDir, "html-dir", "", "Built HTML site, used instead of --docs-dir")
	flags.StringVar(&g.dbURL, "db-url", "", "Database URL (default: sqlite:///{data_dir}/docnav.db)")

	cmd.AddCommand(checkCmd(g))
	cmd.AddCommand(renderCmd(g))
	cmd.AddCommand(diffCmd(g))
	cmd.AddCommand(versionsCmd(g))
	cmd.AddCommand(pagesCmd(g))
	cmd.AddCommand(historyCmd(g))
	cmd.AddCommand(watchCmd(g))
	cmd.AddCommand(serveCmd(g))
	cmd.AddCommand(versionCmd())

	return cmd
}

// loadConfig loads configuration from .env file and environment variables,
// then applies the global flag overrides.
func loadConfig(g *globalFlags) (config.AppConfig, error) {
	cfg, err := config.LoadConfig(g.envFile)
	if err != nil {
		return config.AppConfig{}, fmt.Errorf("load config: %w", err)
	}
	return applyGlobalOverrides(cfg, g), nil
}

// applyGlobalOverrides applies command line flag overrides to the config.
func applyGlobalOverrides(cfg config.AppConfig, g *globalFlags) config.AppConfig {
	var opts []config.AppConfigOption

	if g.siteDir != "" {
		opts = append(opts, config.WithSiteDir(g.siteDir))
	}
	if g.docsDir != "" {
		opts = append(opts, config.WithDocsDir(g.docsDir))
	}
	if g.htmlDir != "" {
		opts = append(opts, config.WithHTMLDir(g.htmlDir))
	}
	if g.dbURL != "" {
		opts = append(opts, config.WithDBURL(g.dbURL))
	}

	return cfg.Apply(opts...)
}
