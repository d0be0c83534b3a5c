package pipeline

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/akoskinen/teamstalk/internal/types"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCheckpointStoreMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checkpoints.json")

	cs, err := OpenCheckpointStore(path, testLogger())
	if err != nil {
		t.Fatalf("missing checkpoint file must not be an error: %v", err)
	}
	for _, stage := range types.StageOrder {
		if cs.Completed(stage) {
			t.Errorf("stage %s completed in an empty store", stage)
		}
	}
}

func TestCheckpointStoreRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checkpoints.json")

	cs, err := OpenCheckpointStore(path, testLogger())
	if err != nil {
		t.Fatal(err)
	}
	if err := cs.MarkCompleted(types.StageCategories, "data/intermediate/leagues.json"); err != nil {
		t.Fatalf("mark completed: %v", err)
	}

	// A fresh store must see the persisted state.
	reloaded, err := OpenCheckpointStore(path, testLogger())
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !reloaded.Completed(types.StageCategories) {
		t.Error("categories checkpoint lost across reload")
	}
	if reloaded.Completed(types.StageTeams) {
		t.Error("teams checkpoint appeared out of nowhere")
	}

	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temp file left behind: %v", err)
	}
}

func TestCheckpointStoreClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checkpoints.json")

	cs, err := OpenCheckpointStore(path, testLogger())
	if err != nil {
		t.Fatal(err)
	}
	if err := cs.MarkCompleted(types.StageTeams, "teams.json"); err != nil {
		t.Fatal(err)
	}
	if err := cs.Clear(types.StageTeams); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if cs.Completed(types.StageTeams) {
		t.Error("cleared stage still completed")
	}

	reloaded, err := OpenCheckpointStore(path, testLogger())
	if err != nil {
		t.Fatal(err)
	}
	if reloaded.Completed(types.StageTeams) {
		t.Error("cleared stage still completed after reload")
	}
}
