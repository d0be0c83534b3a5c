package types

import "fmt"

// Stage identifies one phase of the scraping pipeline.
type Stage string

const (
	StageCategories Stage = "categories"
	StageTeams      Stage = "teams"
	StageContacts   Stage = "contacts"
)

// StageOrder is the fixed execution order. Data flows strictly downstream:
// each stage reads only the previous stage's persisted output.
var StageOrder = []Stage{StageCategories, StageTeams, StageContacts}

// ParseStage converts a CLI/config string into a Stage.
func ParseStage(s string) (Stage, error) {
	switch Stage(s) {
	case StageCategories, StageTeams, StageContacts:
		return Stage(s), nil
	}
	return "", fmt.Errorf("unknown stage %q (valid: categories, teams, contacts)", s)
}

// Input returns the stage whose output this stage consumes, or "" for the
// first stage.
func (s Stage) Input() Stage {
	switch s {
	case StageTeams:
		return StageCategories
	case StageContacts:
		return StageTeams
	}
	return ""
}
