package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"

	"github.com/aishwaryareddy05/NEWS-SENTIMENT-ANALYSIS-AGENT/internal/analysis/insight"
	"github.com/aishwaryareddy05/NEWS-SENTIMENT-ANALYSIS-AGENT/internal/config"
	"github.com/aishwaryareddy05/NEWS-SENTIMENT-ANALYSIS-AGENT/pkg/models"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	sectionStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	warningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	positiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	negativeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	infoStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	mutedStyle    = lipgloss.NewStyle().Faint(true)
)

const maxTitleWidth = 60

// renderReport prints the dashboard for one report.
func renderReport(w io.Writer, r *models.Report, label models.SentimentLabel, limit int, now time.Time) {
	fmt.Fprintln(w, titleStyle.Render("📰 News Sentiment Dashboard"))
	fmt.Fprintf(w, "%s  query=%q  mode=%s  updated %s\n",
		mutedStyle.Render(r.ID), r.Query, r.Mode, humanize.RelTime(r.GeneratedAt, now, "ago", "from now"))
	switch {
	case r.Warning == "":
	case r.Mode == models.FetchDemo:
		fmt.Fprintln(w, infoStyle.Render("ℹ️  "+r.Warning))
	default:
		fmt.Fprintln(w, warningStyle.Render("⚠️  "+r.Warning))
	}
	fmt.Fprintln(w)

	if r.NoResults {
		fmt.Fprintln(w, warningStyle.Render("No articles found. Please try a different query."))
		return
	}

	renderMetrics(w, r.Stats)
	renderInsights(w, r.Insights)
	renderArticles(w, r.Articles, label, limit, now)
}

func renderMetrics(w io.Writer, st models.Stats) {
	fmt.Fprintln(w, sectionStyle.Render("Metrics"))
	fmt.Fprintf(w, "  Total articles:  %s\n", humanize.Comma(int64(st.Total)))
	fmt.Fprintf(w, "  Avg sentiment:   %s\n", styleScore(st.AvgSentiment, fmt.Sprintf("%+.3f", st.AvgSentiment)))
	fmt.Fprintf(w, "  Positive:        %d (%s)\n", st.Positive, percent(st.Positive, st.Total))
	fmt.Fprintf(w, "  Negative:        %d (%s)\n", st.Negative, percent(st.Negative, st.Total))
	fmt.Fprintf(w, "  Neutral:         %d (%s)\n", st.Neutral, percent(st.Neutral, st.Total))
	fmt.Fprintln(w)

	if len(st.Categories) == 0 {
		return
	}
	fmt.Fprintln(w, sectionStyle.Render("Topics"))
	top := insight.Dominant(st.Categories)
	for _, c := range st.Categories {
		bar := strings.Repeat("█", barWidth(c.Count, top.Count))
		fmt.Fprintf(w, "  %-14s %3d %s\n", c.Category, c.Count, infoStyle.Render(bar))
	}
	fmt.Fprintln(w)
}

func renderInsights(w io.Writer, insights []models.Insight) {
	if len(insights) == 0 {
		return
	}
	fmt.Fprintln(w, sectionStyle.Render("Insights"))
	for _, in := range insights {
		style := infoStyle
		switch in.Level {
		case models.LevelPositive:
			style = positiveStyle
		case models.LevelNegative:
			style = negativeStyle
		}
		fmt.Fprintln(w, "  "+style.Render(in.Message))
	}
	fmt.Fprintln(w)
}

func renderArticles(w io.Writer, rows []models.EnrichedArticle, label models.SentimentLabel, limit int, now time.Time) {
	rows = models.FilterBySentiment(rows, label, limit)
	heading := "Recent Articles"
	if label != "" {
		heading += " (" + string(label) + ")"
	}
	fmt.Fprintln(w, sectionStyle.Render(heading))
	if len(rows) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("  no matching articles"))
		return
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Title", "Source", "Published", "Score", "Sentiment", "Category"})
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.SetHeaderLine(true)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT,
	})
	for _, r := range rows {
		table.Append([]string{
			truncate(r.Title, maxTitleWidth),
			r.Source,
			published(r.Article, now),
			fmt.Sprintf("%+.3f", r.SentimentScore),
			string(r.SentimentLabel),
			string(r.Category),
		})
	}
	table.Render()
}

// renderStatus prints the configuration summary and key status.
func renderStatus(w io.Writer, cfg *config.Config, version, commit string) {
	rule := strings.Repeat("═", 39)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, titleStyle.Render("  News Sentiment Agent - System Status"))
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "  Version:       %s (%s)\n", version, commit)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "  Configuration:")
	fmt.Fprintf(w, "    News Provider:   %s\n", cfg.News.Provider)
	if cfg.News.Provider == config.ProviderRSS {
		fmt.Fprintf(w, "    RSS Feeds:       %d\n", len(cfg.News.Feeds))
	}
	fmt.Fprintf(w, "    Window:          last %s\n", cfg.News.Window)
	fmt.Fprintf(w, "    Page Size:       %d\n", cfg.News.PageSize)
	fmt.Fprintf(w, "    Sentiment:       %s (labels ±%.2f)\n", cfg.Sentiment.Backend, cfg.Sentiment.PositiveThreshold)
	fmt.Fprintf(w, "    Default Query:   %s\n", cfg.Dashboard.DefaultQuery)
	fmt.Fprintf(w, "    Refresh:         every %s (auto: %t)\n", cfg.Dashboard.RefreshInterval, cfg.Dashboard.AutoRefresh)
	fmt.Fprintf(w, "    API Server:      %s:%d\n", cfg.API.Host, cfg.API.Port)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "  API Keys:")
	for _, k := range config.CheckAPIKeys(cfg) {
		status := negativeStyle.Render("❌ not set")
		if k.IsSet {
			status = positiveStyle.Render(fmt.Sprintf("✅ set (%s: %s)", k.Source, k.Masked))
		}
		fmt.Fprintf(w, "    %-20s %s\n", k.Name+":", status)
	}
	if config.DemoMode(cfg) {
		fmt.Fprintln(w, warningStyle.Render("    demo mode: the sample corpus is used instead of live news"))
	}
	fmt.Fprintln(w, rule)
}

func styleScore(score float64, s string) string {
	switch {
	case score > 0:
		return positiveStyle.Render(s)
	case score < 0:
		return negativeStyle.Render(s)
	}
	return s
}

func percent(n, total int) string {
	if total == 0 {
		return "0%"
	}
	return humanize.FtoaWithDigits(float64(n)*100/float64(total), 1) + "%"
}

func barWidth(n, max int) int {
	const width = 30
	if max <= 0 {
		return 0
	}
	return (n*width + max - 1) / max
}

func published(a models.Article, now time.Time) string {
	t := a.PublishedTime()
	if t.IsZero() {
		return a.PublishedAt
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
