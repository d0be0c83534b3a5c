// Package pipeline sequences the scraping stages and owns the file-based
// checkpoint state between them. Data flows strictly downstream: each stage
// reads only the previous stage's persisted output file.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/akoskinen/teamstalk/internal/config"
	"github.com/akoskinen/teamstalk/internal/types"
)

// CategoriesScraper produces the stage 1 records.
type CategoriesScraper interface {
	Scrape(ctx context.Context) ([]types.Category, error)
}

// TeamsScraper produces the stage 2 records from stage 1 output.
type TeamsScraper interface {
	Scrape(ctx context.Context, categories []types.Category) ([]types.Team, error)
}

// ContactsScraper produces the final records from stage 2 output.
type ContactsScraper interface {
	Scrape(ctx context.Context, teams []types.Team) ([]types.Contact, error)
}

// Store persists stage outputs and loads stage inputs.
type Store interface {
	WriteCategories(path string, records []types.Category) error
	ReadCategories(path string) ([]types.Category, error)
	WriteTeams(path string, records []types.Team) error
	ReadTeams(path string) ([]types.Team, error)
	WriteContactsCSV(path string, records []types.Contact) error
}

// ContactsExporter mirrors final contacts to a secondary backend.
type ContactsExporter interface {
	ExportContacts(ctx context.Context, records []types.Contact) error
}

// Options control one pipeline run.
type Options struct {
	// Resume skips stages whose checkpoint is already completed.
	Resume bool
	// DryRun performs extraction but writes no output files or checkpoints.
	DryRun bool
}

// Runner executes the requested stages in fixed order.
type Runner struct {
	output      config.OutputConfig
	checkpoints *CheckpointStore
	store       Store
	categories  CategoriesScraper
	teams       TeamsScraper
	contacts    ContactsScraper
	exporter    ContactsExporter // optional
	logger      *slog.Logger
}

// NewRunner wires the stage scrapers into a pipeline.
func NewRunner(
	output config.OutputConfig,
	checkpoints *CheckpointStore,
	store Store,
	categories CategoriesScraper,
	teams TeamsScraper,
	contacts ContactsScraper,
	logger *slog.Logger,
) *Runner {
	return &Runner{
		output:      output,
		checkpoints: checkpoints,
		store:       store,
		categories:  categories,
		teams:       teams,
		contacts:    contacts,
		logger:      logger.With("component", "pipeline"),
	}
}

// SetExporter attaches an optional secondary export for final contacts.
// Export failures are logged, never fatal.
func (r *Runner) SetExporter(e ContactsExporter) { r.exporter = e }

// Run executes the requested stages. Stages always run in the fixed order
// categories, teams, contacts regardless of the request order. The first
// stage failure aborts the pipeline; earlier outputs stay valid and
// resumable because their checkpoints were already written.
func (r *Runner) Run(ctx context.Context, requested []types.Stage, opts Options) error {
	want := make(map[types.Stage]bool, len(requested))
	for _, s := range requested {
		want[s] = true
	}

	for _, stage := range types.StageOrder {
		if !want[stage] {
			continue
		}
		if opts.Resume && r.checkpoints.Completed(stage) {
			r.logger.Info("stage already completed, skipping", "stage", stage)
			continue
		}
		if err := r.runStage(ctx, stage, opts); err != nil {
			return fmt.Errorf("stage %s: %w", stage, err)
		}
	}
	return nil
}

func (r *Runner) runStage(ctx context.Context, stage types.Stage, opts Options) error {
	r.logger.Info("stage starting", "stage", stage, "dry_run", opts.DryRun)

	switch stage {
	case types.StageCategories:
		records, err := r.categories.Scrape(ctx)
		if err != nil {
			return err
		}
		return r.finish(stage, len(records), opts, func() error {
			return r.store.WriteCategories(r.output.LeaguesFile, records)
		})

	case types.StageTeams:
		input, err := r.loadCategories(stage)
		if err != nil {
			return err
		}
		records, err := r.teams.Scrape(ctx, input)
		if err != nil {
			return err
		}
		return r.finish(stage, len(records), opts, func() error {
			return r.store.WriteTeams(r.output.TeamsFile, records)
		})

	case types.StageContacts:
		input, err := r.loadTeams(stage)
		if err != nil {
			return err
		}
		records, err := r.contacts.Scrape(ctx, input)
		if err != nil {
			return err
		}
		if err := r.finish(stage, len(records), opts, func() error {
			return r.store.WriteContactsCSV(r.output.ContactsFile, records)
		}); err != nil {
			return err
		}
		if r.exporter != nil && !opts.DryRun {
			if err := r.exporter.ExportContacts(ctx, records); err != nil {
				r.logger.Warn("contacts export failed", "error", err)
			}
		}
		return nil
	}

	return fmt.Errorf("unknown stage %q", stage)
}

// finish writes the stage output and marks the checkpoint, unless this is a
// dry run. The write is atomic; the checkpoint only follows a successful
// write, so an interrupted run leaves the stage unmarked.
func (r *Runner) finish(stage types.Stage, count int, opts Options, write func() error) error {
	outputPath := r.output.StageOutput(string(stage))

	if opts.DryRun {
		r.logger.Info("dry run: output and checkpoint skipped",
			"stage", stage,
			"records", count,
			"would_write", outputPath,
		)
		return nil
	}

	if err := write(); err != nil {
		return err
	}
	if err := r.checkpoints.MarkCompleted(stage, outputPath); err != nil {
		return fmt.Errorf("mark checkpoint: %w", err)
	}

	r.logger.Info("stage complete", "stage", stage, "records", count, "output", outputPath)
	return nil
}

func (r *Runner) loadCategories(stage types.Stage) ([]types.Category, error) {
	records, err := r.store.ReadCategories(r.output.LeaguesFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &types.MissingInputError{Stage: stage, Path: r.output.LeaguesFile}
		}
		return nil, err
	}
	return records, nil
}

func (r *Runner) loadTeams(stage types.Stage) ([]types.Team, error) {
	records, err := r.store.ReadTeams(r.output.TeamsFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &types.MissingInputError{Stage: stage, Path: r.output.TeamsFile}
		}
		return nil, err
	}
	return records, nil
}
