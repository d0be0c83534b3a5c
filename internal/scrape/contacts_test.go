package scrape

import (
	"context"
	"testing"

	"github.com/akoskinen/teamstalk/internal/types"
)

type fakeOfficialsReader struct {
	officials map[string][]types.Official
	errs      map[string]error
	calls     []string
}

func (f *fakeOfficialsReader) Officials(ctx context.Context, teamURL string) ([]types.Official, error) {
	f.calls = append(f.calls, teamURL)
	if err := f.errs[teamURL]; err != nil {
		return nil, err
	}
	return f.officials[teamURL], nil
}

func TestContactsScrapeRoleFilter(t *testing.T) {
	teams := []types.Team{
		{CategoryURL: "https://site/category/1", TeamName: "Team X", TeamURL: "https://site/team/11/info"},
	}
	reader := &fakeOfficialsReader{
		officials: map[string][]types.Official{
			"https://site/team/11/info": {
				{Role: "Joukkueenjohtaja", Name: "Jane Doe", Email: "jane@example.com"},
				{Role: "Valmentaja", Name: "Ville Valmentaja", Email: "ville@example.com"},
				{Role: "Huoltaja", Name: "Heikki Huoltaja", Email: "heikki@example.com"},
			},
		},
	}

	scraper := NewContacts(reader, 0, testLogger())
	contacts, err := scraper.Scrape(context.Background(), teams)
	if err != nil {
		t.Fatalf("scrape error: %v", err)
	}
	if len(contacts) != 1 {
		t.Fatalf("only administrator rows should survive, got %+v", contacts)
	}

	want := types.Contact{TeamName: "Team X", AdministratorName: "Jane Doe", ContactInfo: "jane@example.com"}
	if contacts[0] != want {
		t.Errorf("got %+v, want %+v", contacts[0], want)
	}
}

func TestContactsScrapeDeduplicates(t *testing.T) {
	teams := []types.Team{
		{TeamName: "Team X", TeamURL: "https://site/team/11/info"},
		{TeamName: "Team Y", TeamURL: "https://site/team/12/info"},
		{TeamName: "Team Z", TeamURL: "https://site/team/13/info"},
	}
	jane := types.Official{Role: "Joukkueenjohtaja", Name: "Jane Doe", Email: "jane@example.com"}
	reader := &fakeOfficialsReader{
		officials: map[string][]types.Official{
			"https://site/team/11/info": {jane},
			"https://site/team/12/info": {jane},
			"https://site/team/13/info": {
				{Role: "Joukkueenjohtaja", Name: "John Roe", Email: "john@example.com"},
			},
		},
	}

	scraper := NewContacts(reader, 0, testLogger())
	contacts, err := scraper.Scrape(context.Background(), teams)
	if err != nil {
		t.Fatalf("scrape error: %v", err)
	}
	if len(contacts) != 2 {
		t.Fatalf("duplicate administrator should collapse into one record, got %+v", contacts)
	}
	if contacts[0].TeamName != "Team X, Team Y" {
		t.Errorf("team names not merged: %q", contacts[0].TeamName)
	}
	if contacts[1].AdministratorName != "John Roe" {
		t.Errorf("distinct administrator lost: %+v", contacts[1])
	}
}

func TestContactsScrapeSameNameDifferentEmail(t *testing.T) {
	teams := []types.Team{
		{TeamName: "Team X", TeamURL: "https://site/team/11/info"},
		{TeamName: "Team Y", TeamURL: "https://site/team/12/info"},
	}
	reader := &fakeOfficialsReader{
		officials: map[string][]types.Official{
			"https://site/team/11/info": {
				{Role: "Joukkueenjohtaja", Name: "Jane Doe", Email: "jane@example.com"},
			},
			"https://site/team/12/info": {
				{Role: "Joukkueenjohtaja", Name: "Jane Doe", Email: "jane.doe@other.example"},
			},
		},
	}

	scraper := NewContacts(reader, 0, testLogger())
	contacts, err := scraper.Scrape(context.Background(), teams)
	if err != nil {
		t.Fatalf("scrape error: %v", err)
	}
	// Same name, different contact info: two distinct records.
	if len(contacts) != 2 {
		t.Fatalf("expected 2 records, got %+v", contacts)
	}
}

func TestContactsScrapeSkipsPlaceholderTeams(t *testing.T) {
	teams := []types.Team{
		{TeamName: "tyhjä", TeamURL: "https://site/team/0/info"},
		{TeamName: "Team X", TeamURL: "https://site/team/11/info"},
	}
	reader := &fakeOfficialsReader{
		officials: map[string][]types.Official{
			"https://site/team/11/info": {
				{Role: "Joukkueenjohtaja", Name: "Jane Doe", Email: "jane@example.com"},
			},
		},
	}

	scraper := NewContacts(reader, 0, testLogger())
	contacts, err := scraper.Scrape(context.Background(), teams)
	if err != nil {
		t.Fatalf("scrape error: %v", err)
	}
	if len(reader.calls) != 1 || reader.calls[0] != "https://site/team/11/info" {
		t.Fatalf("placeholder team must never be fetched, calls: %v", reader.calls)
	}
	if len(contacts) != 1 {
		t.Fatalf("expected 1 contact, got %+v", contacts)
	}
}

func TestContactsScrapeSkipsFailedTeam(t *testing.T) {
	teams := []types.Team{
		{TeamName: "broken", TeamURL: "https://site/team/11/info"},
		{TeamName: "Team Y", TeamURL: "https://site/team/12/info"},
	}
	reader := &fakeOfficialsReader{
		officials: map[string][]types.Official{
			"https://site/team/12/info": {
				{Role: "Joukkueenjohtaja", Name: "John Roe", Email: "john@example.com"},
			},
		},
		errs: map[string]error{
			"https://site/team/11/info": types.ErrElementNotFound,
		},
	}

	scraper := NewContacts(reader, 0, testLogger())
	contacts, err := scraper.Scrape(context.Background(), teams)
	if err != nil {
		t.Fatalf("a failed team must not abort the stage, got %v", err)
	}
	if len(contacts) != 1 || contacts[0].AdministratorName != "John Roe" {
		t.Fatalf("expected the surviving team's contact, got %+v", contacts)
	}
}
