package scrape

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/akoskinen/teamstalk/internal/types"
)

// AdministratorRole is the officials-table role label of the team
// administrator. Rows without it are discarded.
const AdministratorRole = "Joukkueenjohtaja"

// OfficialsReader is the page object contract for the contacts stage.
type OfficialsReader interface {
	Officials(ctx context.Context, teamURL string) ([]types.Official, error)
}

// Contacts is the stage 3 scraper: one players page per input team, with
// role filtering and administrator deduplication.
type Contacts struct {
	page   OfficialsReader
	delay  time.Duration
	role   string
	logger *slog.Logger
}

// NewContacts creates the contacts stage scraper.
func NewContacts(page OfficialsReader, delay time.Duration, logger *slog.Logger) *Contacts {
	return &Contacts{
		page:   page,
		delay:  delay,
		role:   AdministratorRole,
		logger: logger.With("component", "contacts_scraper"),
	}
}

type contactKey struct {
	name    string
	contact string
}

// Scrape visits every team's players page, keeps only administrator rows,
// and collapses duplicate (name, contact) pairs into one record with a
// merged team list. A failed team is skipped with a warning.
func (s *Contacts) Scrape(ctx context.Context, teams []types.Team) ([]types.Contact, error) {
	index := make(map[contactKey]*types.Contact)
	var ordered []*types.Contact
	skipped := 0

	for i, team := range teams {
		// Null team placeholders have no players page.
		if strings.Contains(team.TeamURL, "/team/0/") {
			s.logger.Debug("skipping null team placeholder", "url", team.TeamURL)
			continue
		}

		if err := wait(ctx, s.delay); err != nil {
			return nil, err
		}
		s.logger.Info("processing team",
			"team", team.TeamName,
			"progress", i+1,
			"total", len(teams),
		)

		officials, err := s.page.Officials(ctx, team.TeamURL)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			skipped++
			extractionErr := &types.ExtractionError{URL: team.TeamURL, Err: err}
			s.logger.Warn("team skipped", "team", team.TeamName, "error", extractionErr)
			continue
		}

		for _, official := range officials {
			if !strings.Contains(official.Role, s.role) {
				continue
			}
			s.add(official, team.TeamName, index, &ordered)
		}
	}

	if skipped > 0 {
		s.logger.Warn("contacts stage finished with skipped teams",
			"skipped", skipped,
			"total", len(teams),
		)
	}

	contacts := make([]types.Contact, len(ordered))
	for i, c := range ordered {
		contacts[i] = *c
	}
	s.logger.Info("contacts stage complete",
		"administrators", len(contacts),
		"teams", len(teams),
	)
	return contacts, nil
}

// add records one administrator row, merging the team name into an existing
// record when the same (name, contact) pair was already seen.
func (s *Contacts) add(official types.Official, teamName string, index map[contactKey]*types.Contact, ordered *[]*types.Contact) {
	key := contactKey{name: official.Name, contact: official.Email}
	if existing, ok := index[key]; ok {
		if !hasTeam(existing.TeamName, teamName) {
			existing.TeamName += ", " + teamName
		}
		return
	}

	contact := &types.Contact{
		TeamName:          teamName,
		AdministratorName: official.Name,
		ContactInfo:       official.Email,
	}
	index[key] = contact
	*ordered = append(*ordered, contact)
	s.logger.Debug("administrator found", "name", official.Name, "team", teamName)
}

func hasTeam(merged, team string) bool {
	for _, t := range strings.Split(merged, ", ") {
		if t == team {
			return true
		}
	}
	return false
}
