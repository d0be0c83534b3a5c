package storage

import "github.com/akoskinen/teamstalk/internal/types"

// FileStore adapts the package-level readers and writers to the pipeline's
// Store interface.
type FileStore struct{}

func (FileStore) WriteCategories(path string, records []types.Category) error {
	return WriteCategories(path, records)
}

func (FileStore) ReadCategories(path string) ([]types.Category, error) {
	return ReadCategories(path)
}

func (FileStore) WriteTeams(path string, records []types.Team) error {
	return WriteTeams(path, records)
}

func (FileStore) ReadTeams(path string) ([]types.Team, error) {
	return ReadTeams(path)
}

func (FileStore) WriteContactsCSV(path string, records []types.Contact) error {
	return WriteContactsCSV(path, records)
}
