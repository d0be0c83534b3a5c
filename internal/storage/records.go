// Package storage persists stage outputs. Every write goes to a temp file
// in the destination directory first and is renamed into place, so a failed
// run never leaves a half-written output.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/akoskinen/teamstalk/internal/types"
)

// WriteCategories writes the categories stage output (leagues.json).
func WriteCategories(path string, records []types.Category) error {
	return writeJSONAtomic(path, records)
}

// ReadCategories loads the categories stage output. The caller converts a
// missing file into a MissingInputError with stage context.
func ReadCategories(path string) ([]types.Category, error) {
	var records []types.Category
	if err := readJSON(path, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// WriteTeams writes the teams stage output (teams.json).
func WriteTeams(path string, records []types.Team) error {
	return writeJSONAtomic(path, records)
}

// ReadTeams loads the teams stage output.
func ReadTeams(path string) ([]types.Team, error) {
	var records []types.Team
	if err := readJSON(path, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// ContactsHeader is the fixed header row of the final CSV.
var ContactsHeader = []string{"team_name", "administrator_name", "contact_info"}

// WriteContactsCSV writes the final contacts output atomically.
func WriteContactsCSV(path string, records []types.Contact) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &types.StorageError{Path: path, Err: fmt.Errorf("create output dir: %w", err)}
	}

	tmpPath := path + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return &types.StorageError{Path: path, Err: err}
	}

	w := csv.NewWriter(f)
	if err := w.Write(ContactsHeader); err != nil {
		f.Close()
		return &types.StorageError{Path: path, Err: fmt.Errorf("write CSV header: %w", err)}
	}
	for _, rec := range records {
		row := []string{rec.TeamName, rec.AdministratorName, rec.ContactInfo}
		if err := w.Write(row); err != nil {
			f.Close()
			return &types.StorageError{Path: path, Err: fmt.Errorf("write CSV row: %w", err)}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return &types.StorageError{Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &types.StorageError{Path: path, Err: err}
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return &types.StorageError{Path: path, Err: fmt.Errorf("rename output file: %w", err)}
	}
	return nil
}

// writeJSONAtomic serializes records as indented JSON via temp-and-rename.
func writeJSONAtomic(path string, records any) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &types.StorageError{Path: path, Err: fmt.Errorf("create output dir: %w", err)}
	}

	tmpPath := path + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return &types.StorageError{Path: path, Err: err}
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(records); err != nil {
		f.Close()
		return &types.StorageError{Path: path, Err: fmt.Errorf("encode JSON: %w", err)}
	}
	if err := f.Close(); err != nil {
		return &types.StorageError{Path: path, Err: err}
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return &types.StorageError{Path: path, Err: fmt.Errorf("rename output file: %w", err)}
	}
	return nil
}

// readJSON decodes a stage output file. A missing file surfaces unwrapped
// so callers can detect it with os.IsNotExist / errors.Is(fs.ErrNotExist).
func readJSON(path string, out any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(out); err != nil {
		return &types.StorageError{Path: path, Err: fmt.Errorf("decode JSON: %w", err)}
	}
	return nil
}
