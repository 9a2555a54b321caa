// News Sentiment Agent: fetches recent news for a query, scores sentiment,
// assigns topics and reports aggregate insights.
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aishwaryareddy05/NEWS-SENTIMENT-ANALYSIS-AGENT/api"
	"github.com/aishwaryareddy05/NEWS-SENTIMENT-ANALYSIS-AGENT/internal/agent"
	"github.com/aishwaryareddy05/NEWS-SENTIMENT-ANALYSIS-AGENT/internal/config"
	"github.com/aishwaryareddy05/NEWS-SENTIMENT-ANALYSIS-AGENT/internal/logger"
	"github.com/aishwaryareddy05/NEWS-SENTIMENT-ANALYSIS-AGENT/internal/metrics"
	"github.com/aishwaryareddy05/NEWS-SENTIMENT-ANALYSIS-AGENT/internal/scheduler"
	"github.com/aishwaryareddy05/NEWS-SENTIMENT-ANALYSIS-AGENT/pkg/models"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Global config and logger, set by the root command.
var (
	cfg *config.Config
	log *zap.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "newsagent",
	Short: "News Sentiment Agent: real-time news mood and topic insights",
	Long: `News Sentiment Agent
Fetches recent articles for a query, scores each article's sentiment,
assigns a topic category and surfaces aggregate insights: overall
sentiment trend, dominant topic and negative-coverage alerts.

Without a NEWS_API_KEY the agent runs in demo mode on a bundled sample
corpus.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
			cfg.Logging.Level = lvl
		}
		log, err = logger.New(cfg.Logging)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statusCmd)
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	// Needs no config.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("newsagent %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

// --- Analyze Command ---

// viewFlags are the output options shared by analyze and watch.
type viewFlags struct {
	asJSON    bool
	sentiment string
	limit     int
	sources   string
	pageSize  int
}

func addViewFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "print the report as JSON")
	cmd.Flags().String("sentiment", "all", "article filter: all, positive, negative, neutral")
	cmd.Flags().Int("limit", 10, "number of articles to list (0 = all)")
	cmd.Flags().String("sources", "", "comma-separated source filter (NewsAPI source ids or RSS feed names)")
	cmd.Flags().Int("page-size", 0, "articles to fetch, 1-100 (default from config)")
}

func readViewFlags(cmd *cobra.Command) (viewFlags, models.SentimentLabel, error) {
	var f viewFlags
	f.asJSON, _ = cmd.Flags().GetBool("json")
	f.sentiment, _ = cmd.Flags().GetString("sentiment")
	f.limit, _ = cmd.Flags().GetInt("limit")
	f.sources, _ = cmd.Flags().GetString("sources")
	f.pageSize, _ = cmd.Flags().GetInt("page-size")

	if f.limit < 0 {
		return f, "", fmt.Errorf("--limit must not be negative")
	}
	if f.pageSize == 0 {
		f.pageSize = cfg.News.PageSize
	}
	if f.pageSize < 1 || f.pageSize > 100 {
		return f, "", fmt.Errorf("--page-size must be between 1 and 100")
	}

	var label models.SentimentLabel
	if !strings.EqualFold(f.sentiment, "all") && f.sentiment != "" {
		l, ok := models.ParseSentimentLabel(f.sentiment)
		if !ok {
			return f, "", fmt.Errorf("--sentiment must be one of all, positive, negative, neutral")
		}
		label = l
	}
	return f, label, nil
}

func queryArg(args []string) string {
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		return strings.TrimSpace(args[0])
	}
	return cfg.Dashboard.DefaultQuery
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [query]",
	Short: "Fetch, score and summarize news for a query",
	Long: `Run one refresh for the query (default from config) and print the
dashboard: metrics, sentiment distribution, topic counts, insights and the
recent articles table.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags, label, err := readViewFlags(cmd)
		if err != nil {
			return err
		}
		ctx, cancel := signalContext()
		defer cancel()

		a := agent.NewFromConfig(cfg, log, nil)
		report, err := a.Refresh(ctx, agent.Request{
			Query:    queryArg(args),
			Sources:  flags.sources,
			PageSize: flags.pageSize,
		})
		if err != nil {
			return err
		}

		if flags.asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}
		renderReport(cmd.OutOrStdout(), report, label, flags.limit, time.Now())
		return nil
	},
}

func init() {
	addViewFlags(analyzeCmd)
}

// --- Watch Command ---

var watchCmd = &cobra.Command{
	Use:   "watch [query]",
	Short: "Refresh the dashboard on an interval until interrupted",
	Long: `Run a refresh immediately and then once per refresh interval
(dashboard.refresh_interval, default 30s). A refresh that is still running
when the next one is due causes that tick to be skipped.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags, label, err := readViewFlags(cmd)
		if err != nil {
			return err
		}
		interval, _ := cmd.Flags().GetDuration("interval")
		if interval <= 0 {
			interval = cfg.Dashboard.RefreshInterval
		}

		ctx, cancel := signalContext()
		defer cancel()

		a := agent.NewFromConfig(cfg, log, nil)
		req := agent.Request{Query: queryArg(args), Sources: flags.sources, PageSize: flags.pageSize}
		out := cmd.OutOrStdout()

		refresh := func(ctx context.Context) {
			report, err := a.Refresh(ctx, req)
			if err != nil {
				if ctx.Err() == nil {
					log.Error("refresh failed", zap.Error(err))
				}
				return
			}
			if flags.asJSON {
				_ = json.NewEncoder(out).Encode(report)
				return
			}
			fmt.Fprint(out, "\033[H\033[2J")
			renderReport(out, report, label, flags.limit, time.Now())
			fmt.Fprintf(out, "\nRefreshing every %s. Press Ctrl+C to stop.\n", interval)
		}

		sched := scheduler.New(log)
		if err := sched.Every(interval, refresh); err != nil {
			return err
		}
		refresh(ctx)
		sched.Start()

		<-ctx.Done()
		stopCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
		defer stop()
		return sched.Stop(stopCtx)
	},
}

func init() {
	addViewFlags(watchCmd)
	watchCmd.Flags().Duration("interval", 0, "refresh interval (default from config)")
}

// --- Serve Command (API Server) ---

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		if port, _ := cmd.Flags().GetInt("port"); port > 0 {
			cfg.API.Port = port
		}
		if auto, _ := cmd.Flags().GetBool("auto-refresh"); auto {
			cfg.Dashboard.AutoRefresh = true
		}

		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		m := metrics.New(reg)
		a := agent.NewFromConfig(cfg, log, m)

		api.Version = version
		srv := api.NewServer(cfg, a, m, log)

		ctx, cancel := signalContext()
		defer cancel()

		addr := net.JoinHostPort(cfg.API.Host, strconv.Itoa(cfg.API.Port))
		fmt.Printf("🌐 Starting News Sentiment Agent API server on %s\n", addr)
		if config.DemoMode(cfg) {
			fmt.Println("⚠️  NEWS_API_KEY not configured: serving the sample corpus (demo mode)")
		}
		return srv.ListenAndServe(ctx, addr)
	},
}

func init() {
	serveCmd.Flags().Int("port", 0, "listen port (default from config)")
	serveCmd.Flags().Bool("auto-refresh", false, "refresh the default query every refresh interval")
}

// --- Status Command ---

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show configuration and API key status",
	RunE: func(cmd *cobra.Command, args []string) error {
		renderStatus(cmd.OutOrStdout(), cfg, version, commit)
		return nil
	},
}
