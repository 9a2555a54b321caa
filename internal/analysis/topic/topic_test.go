package topic

import (
	"testing"

	"github.com/aishwaryareddy05/NEWS-SENTIMENT-ANALYSIS-AGENT/internal/config"
	"github.com/aishwaryareddy05/NEWS-SENTIMENT-ANALYSIS-AGENT/internal/datasource"
	"github.com/aishwaryareddy05/NEWS-SENTIMENT-ANALYSIS-AGENT/pkg/models"
)

func TestCategorize(t *testing.T) {
	c := Default()
	tests := []struct {
		name        string
		title, desc string
		want        models.Category
	}{
		{"technology", "New software release", "", models.CategoryTechnology},
		{"business", "Stock market rallies", "", models.CategoryBusiness},
		{"health", "Hospital opens wing", "", models.CategoryHealth},
		{"environment", "Renewable targets set", "", models.CategoryEnvironment},
		{"politics", "Election results due", "", models.CategoryPolitics},
		{"sports", "Tournament final tonight", "", models.CategorySports},
		{"entertainment", "Film festival opens", "", models.CategoryEntertainment},
		{"description only", "Breaking", "The government responded", models.CategoryPolitics},
		{"case insensitive", "CLIMATE SUMMIT", "", models.CategoryEnvironment},
		{"no keyword", "Quantum leap announced", "", models.CategoryOther},
		{"empty", "", "", models.CategoryOther},
		{"priority technology over health", "Digital hospital records", "", models.CategoryTechnology},
		{"priority business over politics", "Trade policy shift", "", models.CategoryBusiness},
		{"substring inside word", "Officials said on Monday", "", models.CategoryTechnology},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Categorize(tt.title, tt.desc); got != tt.want {
				t.Errorf("Categorize(%q, %q) = %s, want %s", tt.title, tt.desc, got, tt.want)
			}
		})
	}
}

func TestCategorizeSampleCorpus(t *testing.T) {
	c := Default()
	want := []models.Category{
		models.CategoryTechnology, // "ai"
		models.CategoryTechnology, // "tech"
		models.CategoryOther,
		models.CategoryTechnology, // "technologies"
		models.CategoryTechnology, // "cyber"
	}
	for i, a := range datasource.SampleCorpus() {
		if got := c.Article(a); got != want[i] {
			t.Errorf("sample %d %q = %s, want %s", i, a.Title, got, want[i])
		}
	}
}

func TestCategorizeCustomTable(t *testing.T) {
	c := New(config.AnalysisConfig{Categories: []config.CategoryKeywords{
		{Name: models.CategorySports, Keywords: []string{" Match ", ""}},
		{Name: models.CategoryTechnology, Keywords: []string{"match"}},
	}})
	if got := c.Categorize("Match report", ""); got != models.CategorySports {
		t.Errorf("got %s, want sports", got)
	}
	if got := c.Categorize("anything", ""); got != models.CategoryOther {
		t.Errorf("empty keyword must not match everything, got %s", got)
	}

	empty := New(config.AnalysisConfig{})
	if got := empty.Categorize("AI stock market", ""); got != models.CategoryOther {
		t.Errorf("empty table got %s, want other", got)
	}
}

func TestCategorizeAlwaysValid(t *testing.T) {
	c := Default()
	inputs := []string{"", "ai", "x", "The Sporting News", "Ceasefire", "日本語のニュース"}
	for _, in := range inputs {
		if got := c.Categorize(in, in); !got.Valid() {
			t.Errorf("Categorize(%q) = %q, not a valid category", in, got)
		}
	}
}
