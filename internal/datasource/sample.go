package datasource

import "github.com/aishwaryareddy05/NEWS-SENTIMENT-ANALYSIS-AGENT/pkg/models"

// SampleCorpus returns the bundled articles used in demo mode and when live
// retrieval fails. A fresh slice is returned on every call.
func SampleCorpus() []models.Article {
	return []models.Article{
		{
			Title:       "AI Revolution Transforms Healthcare Industry",
			Description: "Artificial intelligence is revolutionizing healthcare with breakthrough diagnostic tools and personalized treatment plans.",
			PublishedAt: "2024-01-20T10:30:00Z",
			Source:      "TechNews",
			URL:         "https://example.com/ai-healthcare",
		},
		{
			Title:       "Tech Stocks Plummet Amid Economic Uncertainty",
			Description: "Major technology companies face significant losses as market volatility continues to impact investor confidence.",
			PublishedAt: "2024-01-20T09:15:00Z",
			Source:      "FinanceDaily",
			URL:         "https://example.com/tech-stocks",
		},
		{
			Title:       "Breakthrough in Quantum Computing Announced",
			Description: "Scientists achieve major milestone in quantum computing, bringing us closer to practical quantum applications.",
			PublishedAt: "2024-01-20T08:45:00Z",
			Source:      "ScienceToday",
			URL:         "https://example.com/quantum-computing",
		},
		{
			Title:       "Climate Change Solutions Show Promise",
			Description: "New renewable energy technologies demonstrate significant potential for reducing carbon emissions globally.",
			PublishedAt: "2024-01-20T07:30:00Z",
			Source:      "EcoNews",
			URL:         "https://example.com/climate-solutions",
		},
		{
			Title:       "Cybersecurity Threats Increase Dramatically",
			Description: "Organizations worldwide report surge in cyber attacks, highlighting need for enhanced security measures.",
			PublishedAt: "2024-01-20T06:20:00Z",
			Source:      "SecurityAlert",
			URL:         "https://example.com/cybersecurity",
		},
	}
}
