package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/akoskinen/teamstalk/internal/browser"
	"github.com/akoskinen/teamstalk/internal/config"
	"github.com/akoskinen/teamstalk/internal/fetcher"
	"github.com/akoskinen/teamstalk/internal/pages"
	"github.com/akoskinen/teamstalk/internal/pipeline"
	"github.com/akoskinen/teamstalk/internal/scrape"
	"github.com/akoskinen/teamstalk/internal/storage"
	"github.com/akoskinen/teamstalk/internal/types"
)

var (
	cfgFile      string
	verbose      bool
	stageFlag    string
	delaySeconds float64
	resume       bool
	dryRun       bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "teamstalk",
		Short: "teamstalk — staged team-administrator contact scraper",
		Long: `teamstalk extracts team administrator (Joukkueenjohtaja) contact details
from the Finnish football results service in three checkpointed stages:

  categories  collect league/cup links for the configured filters
  teams       collect team links from every category page
  contacts    collect administrator contacts from every team's players page

Each stage persists its output (JSON/CSV) and a checkpoint, so interrupted
runs can resume from the last completed stage.`,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(scrapeCmd())
	rootCmd.AddCommand(versionCmd())
	rootCmd.AddCommand(configCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// scrapeCmd creates the "scrape" subcommand.
func scrapeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Run the scraping pipeline",
		Long:  "Run one stage or the whole pipeline in fixed order (categories, teams, contacts).",
		RunE:  runScrape,
	}

	cmd.Flags().StringVar(&stageFlag, "stage", "all", "which stage to run: categories, teams, contacts, all")
	cmd.Flags().Float64Var(&delaySeconds, "delay", 2.0, "delay between page navigations in seconds")
	cmd.Flags().BoolVar(&resume, "resume", false, "skip stages already completed according to checkpoints")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "extract but write no output files or checkpoints")

	return cmd
}

// runScrape executes the scrape command.
func runScrape(cmd *cobra.Command, args []string) error {
	logger := setupLogger()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cmd.Flags().Changed("delay") {
		cfg.Scrape.Delay = time.Duration(delaySeconds * float64(time.Second))
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	stages, err := selectStages(stageFlag)
	if err != nil {
		return err
	}

	logger.Info("starting scraper",
		"stages", stages,
		"delay", cfg.Scrape.Delay,
		"resume", resume,
		"dry_run", dryRun,
	)
	if dryRun {
		logger.Info("dry run mode: no output files will be written")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The categories page needs JavaScript for its filter buttons; the other
	// stages only need the browser when fetcher.type is "browser".
	needBrowser := cfg.Fetcher.Type == "browser"
	for _, s := range stages {
		if s == types.StageCategories {
			needBrowser = true
		}
	}

	var sess *browser.Session
	if needBrowser {
		sess, err = browser.New(cfg, logger)
		if err != nil {
			return fmt.Errorf("start browser: %w", err)
		}
		defer func() {
			if err := sess.Close(); err != nil {
				logger.Warn("browser close failed", "error", err)
			}
		}()
	}

	var pageFetcher pages.Fetcher
	if cfg.Fetcher.Type == "http" {
		pageFetcher, err = fetcher.NewClient(cfg, logger)
		if err != nil {
			return fmt.Errorf("create fetcher: %w", err)
		}
	} else {
		pageFetcher = sess
	}

	checkpoints, err := pipeline.OpenCheckpointStore(cfg.Output.CheckpointFile, logger)
	if err != nil {
		return fmt.Errorf("open checkpoints: %w", err)
	}

	runner := pipeline.NewRunner(
		cfg.Output,
		checkpoints,
		storage.FileStore{},
		scrape.NewCategories(pages.NewCategoriesPage(sess, cfg, logger), cfg.Scrape.Delay, logger),
		scrape.NewTeams(pages.NewTeamsPage(pageFetcher, logger), cfg.Scrape.Delay, logger),
		scrape.NewContacts(pages.NewContactPage(pageFetcher, logger), cfg.Scrape.Delay, logger),
		logger,
	)

	if cfg.Mongo.Enabled {
		exporter, err := storage.NewMongoExporter(cfg.Mongo.URI, cfg.Mongo.Database, cfg.Mongo.Collection, logger)
		if err != nil {
			return fmt.Errorf("connect mongodb: %w", err)
		}
		defer exporter.Close()
		runner.SetExporter(exporter)
	}

	start := time.Now()
	if err := runner.Run(ctx, stages, pipeline.Options{Resume: resume, DryRun: dryRun}); err != nil {
		return err
	}

	logger.Info("scraping completed", "elapsed", time.Since(start).Round(time.Millisecond))
	return nil
}

// selectStages maps the --stage flag to the stages to run.
func selectStages(flag string) ([]types.Stage, error) {
	if flag == "" || flag == "all" {
		return types.StageOrder, nil
	}
	stage, err := types.ParseStage(flag)
	if err != nil {
		return nil, err
	}
	return []types.Stage{stage}, nil
}

// versionCmd creates the "version" subcommand.
func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("teamstalk %s\n", config.Version)
		},
	}
}

// configCmd creates the "config" subcommand for inspecting configuration.
func configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			fmt.Printf("Scrape:\n")
			fmt.Printf("  Categories URL:    %s\n", cfg.Scrape.CategoriesURL)
			fmt.Printf("  Delay:             %s\n", cfg.Scrape.Delay)
			fmt.Printf("  Nav Timeout:       %s\n", cfg.Scrape.NavigationTimeout)
			fmt.Printf("\nFilters:\n")
			fmt.Printf("  Sport:             %s\n", cfg.Filters.Sport)
			fmt.Printf("  Region:            %s\n", cfg.Filters.Region)
			fmt.Printf("  Division:          %s\n", cfg.Filters.Division)
			fmt.Printf("  Age Group:         %s\n", cfg.Filters.AgeGroup)
			fmt.Printf("\nBrowser:\n")
			fmt.Printf("  Headless:          %v\n", cfg.Browser.Headless)
			fmt.Printf("  Window Size:       %s\n", cfg.Browser.WindowSize)
			fmt.Printf("  Stealth:           %v\n", cfg.Browser.Stealth)
			fmt.Printf("\nFetcher:\n")
			fmt.Printf("  Type:              %s\n", cfg.Fetcher.Type)
			fmt.Printf("  Max Body Size:     %d bytes\n", cfg.Fetcher.MaxBodySize)
			fmt.Printf("\nOutput:\n")
			fmt.Printf("  Leagues File:      %s\n", cfg.Output.LeaguesFile)
			fmt.Printf("  Teams File:        %s\n", cfg.Output.TeamsFile)
			fmt.Printf("  Contacts File:     %s\n", cfg.Output.ContactsFile)
			fmt.Printf("  Checkpoint File:   %s\n", cfg.Output.CheckpointFile)
			fmt.Printf("\nMongo Export:\n")
			fmt.Printf("  Enabled:           %v\n", cfg.Mongo.Enabled)
			return nil
		},
	}
}

// setupLogger creates a structured logger.
func setupLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}
