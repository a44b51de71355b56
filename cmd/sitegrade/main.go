package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sitegrade/sitegrade/internal/analyzer"
	"github.com/sitegrade/sitegrade/internal/config"
	"github.com/sitegrade/sitegrade/internal/fetcher"
	"github.com/sitegrade/sitegrade/internal/pagespeed"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:     "sitegrade",
	Short:   "SiteGrade - single-page website quality audit",
	Long:    `SiteGrade audits a public web page and reports a weighted quality score combining on-page SEO, trust pages, UX heuristics and PageSpeed metrics.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
}

var auditCmd = &cobra.Command{
	Use:   "audit [URL]",
	Short: "Audit a single page and print the JSON report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logger, _ := zap.NewDevelopment()
		defer logger.Sync()

		service := analyzer.NewService(
			fetcher.New(cfg.Fetch.Timeout),
			pagespeed.NewClient(cfg.PageSpeed.APIKey, cfg.PageSpeed.Timeout, logger),
			logger,
		)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		report, err := service.Analyze(ctx, args[0])
		if err != nil {
			return fmt.Errorf("audit failed: %w", err)
		}

		pretty, _ := cmd.Flags().GetBool("pretty")
		enc := json.NewEncoder(os.Stdout)
		if pretty {
			enc.SetIndent("", "  ")
		}
		return enc.Encode(report)
	},
}

func init() {
	auditCmd.Flags().Bool("pretty", true, "Indent the JSON output")
	rootCmd.AddCommand(auditCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
