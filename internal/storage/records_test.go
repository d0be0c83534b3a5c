package storage

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/akoskinen/teamstalk/internal/types"
)

func TestCategoriesRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "intermediate", "leagues.json")
	records := []types.Category{
		{Name: "P13 Ykkönen", URL: "https://tulospalvelu.palloliitto.fi/category/123/frontpage"},
		{Name: "P13 Kakkonen", URL: "https://tulospalvelu.palloliitto.fi/category/456/frontpage?tab=standings&lang=fi"},
	}

	if err := WriteCategories(path, records); err != nil {
		t.Fatalf("write: %v", err)
	}
	loaded, err := ReadCategories(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(loaded) != len(records) {
		t.Fatalf("got %d records, want %d", len(loaded), len(records))
	}
	for i := range records {
		if loaded[i] != records[i] {
			t.Errorf("record %d: got %+v, want %+v", i, loaded[i], records[i])
		}
	}

	// URLs must not be HTML-escaped in the output file.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "standings&lang") {
		t.Errorf("JSON output HTML-escapes URLs:\n%s", data)
	}
	if !strings.Contains(string(data), `"name"`) || !strings.Contains(string(data), `"url"`) {
		t.Errorf("unexpected field names in output:\n%s", data)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temp file left behind: %v", err)
	}
}

func TestTeamsRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "teams.json")
	records := []types.Team{
		{CategoryURL: "https://site/category/1", TeamName: "Team X", TeamURL: "https://site/team/11/info"},
	}

	if err := WriteTeams(path, records); err != nil {
		t.Fatalf("write: %v", err)
	}
	loaded, err := ReadTeams(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(loaded) != 1 || loaded[0] != records[0] {
		t.Fatalf("got %+v, want %+v", loaded, records)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, field := range []string{`"category_url"`, `"team_name"`, `"team_url"`} {
		if !strings.Contains(string(data), field) {
			t.Errorf("missing field %s in output:\n%s", field, data)
		}
	}
}

func TestReadMissingFile(t *testing.T) {
	_, err := ReadCategories(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}
	_, err = ReadTeams(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestReadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leagues.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := ReadCategories(path)
	var storageErr *types.StorageError
	if !errors.As(err, &storageErr) {
		t.Fatalf("expected StorageError, got %v", err)
	}
	if storageErr.Path != path {
		t.Errorf("path: got %q, want %q", storageErr.Path, path)
	}
}

func TestWriteContactsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contacts.csv")
	records := []types.Contact{
		{TeamName: "Team X, Team Y", AdministratorName: "Jane Doe", ContactInfo: "jane@example.com"},
		{TeamName: "Team Z", AdministratorName: "John Roe", ContactInfo: "john@example.com"},
	}

	if err := WriteContactsCSV(path, records); err != nil {
		t.Fatalf("write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "team_name,administrator_name,contact_info\n" +
		"\"Team X, Team Y\",Jane Doe,jane@example.com\n" +
		"Team Z,John Roe,john@example.com\n"
	if string(data) != want {
		t.Errorf("CSV content:\n got %q\nwant %q", data, want)
	}
}

func TestWriteContactsCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contacts.csv")
	if err := WriteContactsCSV(path, nil); err != nil {
		t.Fatalf("write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "team_name,administrator_name,contact_info\n" {
		t.Errorf("empty run should still write the header, got %q", data)
	}
}
