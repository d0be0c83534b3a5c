package pipeline

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/akoskinen/teamstalk/internal/types"
)

// Checkpoint marks one stage as completed and records where its output
// lives. Never mutated: re-running a stage supersedes its entry.
type Checkpoint struct {
	Stage      types.Stage `json:"stage"`
	Completed  bool        `json:"completed"`
	OutputPath string      `json:"output_path"`
}

// CheckpointStore persists the per-stage completion markers as one JSON
// file. It is read once at pipeline start and written once per stage
// completion; resume state is never re-derived from output file contents.
type CheckpointStore struct {
	path    string
	entries map[types.Stage]Checkpoint
	logger  *slog.Logger
}

// OpenCheckpointStore loads the checkpoint file if it exists.
func OpenCheckpointStore(path string, logger *slog.Logger) (*CheckpointStore, error) {
	cs := &CheckpointStore{
		path:    path,
		entries: make(map[types.Stage]Checkpoint),
		logger:  logger.With("component", "checkpoints"),
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cs, nil // No checkpoints yet
		}
		return nil, fmt.Errorf("open checkpoint file: %w", err)
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(&cs.entries); err != nil {
		return nil, fmt.Errorf("decode checkpoint file: %w", err)
	}
	cs.logger.Debug("checkpoints loaded", "path", path, "entries", len(cs.entries))
	return cs, nil
}

// Completed reports whether a stage has a completed checkpoint.
func (cs *CheckpointStore) Completed(stage types.Stage) bool {
	cp, ok := cs.entries[stage]
	return ok && cp.Completed
}

// MarkCompleted records a stage's completion and saves the store to disk
// (write to temp path, rename).
func (cs *CheckpointStore) MarkCompleted(stage types.Stage, outputPath string) error {
	cs.entries[stage] = Checkpoint{
		Stage:      stage,
		Completed:  true,
		OutputPath: outputPath,
	}
	return cs.save()
}

// Clear forgets a stage's checkpoint, forcing the stage to run again.
func (cs *CheckpointStore) Clear(stage types.Stage) error {
	if _, ok := cs.entries[stage]; !ok {
		return nil
	}
	delete(cs.entries, stage)
	return cs.save()
}

func (cs *CheckpointStore) save() error {
	dir := filepath.Dir(cs.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create checkpoint dir: %w", err)
	}

	tmpPath := cs.path + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create checkpoint file: %w", err)
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(cs.entries); err != nil {
		f.Close()
		return fmt.Errorf("encode checkpoints: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	if err := os.Rename(tmpPath, cs.path); err != nil {
		return fmt.Errorf("rename checkpoint file: %w", err)
	}
	return nil
}
