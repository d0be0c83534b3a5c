package pages

import (
	"errors"
	"testing"

	"github.com/akoskinen/teamstalk/internal/types"
)

const categoriesHTML = `
<html><body>
<div id="filters">
  <a href="/category/999/ignored">not in results</a>
</div>
<div id="results">
  <a href="/category/123/frontpage">
    <div>Etelä Jalkapallo 2025</div>
    <div>
      P13 Ykkönen</div>
  </a>
  <a href="https://tulospalvelu.palloliitto.fi/category/456/frontpage">P13 Kakkonen</a>
  <a href="/match/789">not a category</a>
  <a href="/category/777/frontpage"><div></div></a>
</div>
</body></html>`

func TestParseCategories(t *testing.T) {
	cats, err := ParseCategories(categoriesHTML, "https://tulospalvelu.palloliitto.fi/categories")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if len(cats) != 2 {
		t.Fatalf("expected 2 categories, got %d: %+v", len(cats), cats)
	}

	if cats[0].Name != "P13 Ykkönen" {
		t.Errorf("expected name below the heading line, got %q", cats[0].Name)
	}
	if cats[0].URL != "https://tulospalvelu.palloliitto.fi/category/123/frontpage" {
		t.Errorf("relative href not resolved: %q", cats[0].URL)
	}
	if cats[1].Name != "P13 Kakkonen" {
		t.Errorf("unexpected second name: %q", cats[1].Name)
	}
	if cats[1].URL != "https://tulospalvelu.palloliitto.fi/category/456/frontpage" {
		t.Errorf("absolute href mangled: %q", cats[1].URL)
	}
}

func TestParseCategoriesNoResultsContainer(t *testing.T) {
	_, err := ParseCategories(`<html><body><p>loading</p></body></html>`, "https://example.com")
	if !errors.Is(err, types.ErrNoResults) {
		t.Fatalf("expected ErrNoResults, got %v", err)
	}
}

func TestCategoryName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"P13 Ykkönen", "P13 Ykkönen"},
		{"\n Etelä Jalkapallo 2025 \n\n  P13 Ykkönen  \n", "P13 Ykkönen"},
		{"   \n\t\n", ""},
	}
	for _, tt := range tests {
		if got := categoryName(tt.input); got != tt.expected {
			t.Errorf("categoryName(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
