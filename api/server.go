// Package api provides the HTTP API of the news agent.
//
// It exposes refresh reports, filtered article lists, configuration and key
// status, Prometheus metrics, and a WebSocket stream that receives every
// report produced by auto-refresh.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/aishwaryareddy05/NEWS-SENTIMENT-ANALYSIS-AGENT/internal/agent"
	"github.com/aishwaryareddy05/NEWS-SENTIMENT-ANALYSIS-AGENT/internal/config"
	"github.com/aishwaryareddy05/NEWS-SENTIMENT-ANALYSIS-AGENT/internal/logger"
	"github.com/aishwaryareddy05/NEWS-SENTIMENT-ANALYSIS-AGENT/internal/metrics"
	"github.com/aishwaryareddy05/NEWS-SENTIMENT-ANALYSIS-AGENT/internal/scheduler"
	"github.com/aishwaryareddy05/NEWS-SENTIMENT-ANALYSIS-AGENT/pkg/models"
)

// Version is reported by /health. Set by the CLI at startup.
var Version = "dev"

// Server is the HTTP API server.
type Server struct {
	router  chi.Router
	cfg     *config.Config
	agent   *agent.NewsAgent
	metrics *metrics.Metrics
	log     *zap.Logger
	wsHub   *WSHub
	sched   *scheduler.Scheduler

	stopHub context.CancelFunc

	// refreshMu serialises refreshes so a manual refresh never overlaps
	// a scheduled one.
	refreshMu sync.Mutex

	mu        sync.RWMutex
	latest    *models.Report
	latestReq agent.Request
}

// NewServer creates a configured API server with all routes and
// middleware. The WebSocket hub starts immediately; call Close to stop it.
func NewServer(cfg *config.Config, a *agent.NewsAgent, m *metrics.Metrics, log *zap.Logger) *Server {
	log = logger.OrNop(log)
	ctx, cancel := context.WithCancel(context.Background())

	s := &Server{
		cfg:     cfg,
		agent:   a,
		metrics: m,
		log:     log,
		wsHub:   NewWSHub(),
		sched:   scheduler.New(log),
		stopHub: cancel,
	}
	s.router = s.buildRouter()
	go s.wsHub.Run(ctx)
	return s
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// Hub returns the WebSocket hub.
func (s *Server) Hub() *WSHub {
	return s.wsHub
}

// Latest returns the most recent report, or nil before the first refresh.
func (s *Server) Latest() *models.Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest
}

// latestFor returns the latest report when it was produced by req.
func (s *Server) latestFor(req agent.Request) *models.Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.latest == nil || s.latestReq != req {
		return nil
	}
	return s.latest
}

// Refresh runs one refresh cycle, stores the report as the latest one and
// pushes it to every WebSocket client.
func (s *Server) Refresh(ctx context.Context, req agent.Request) (*models.Report, error) {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	report, err := s.agent.Refresh(ctx, req)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.latest = report
	s.latestReq = req
	s.mu.Unlock()

	s.wsHub.Broadcast(WSMessage{Type: MsgReport, Data: report})
	return report, nil
}

// defaultRequest is the refresh issued by auto-refresh.
func (s *Server) defaultRequest() agent.Request {
	return agent.Request{
		Query:    s.cfg.Dashboard.DefaultQuery,
		PageSize: s.cfg.News.PageSize,
	}
}

// StartAutoRefresh schedules the default query every interval. A tick that
// fires while a refresh is still running is skipped.
func (s *Server) StartAutoRefresh(interval time.Duration) error {
	if err := s.sched.Every(interval, func(ctx context.Context) {
		if _, err := s.Refresh(ctx, s.defaultRequest()); err != nil && !errors.Is(err, context.Canceled) {
			s.log.Error("auto-refresh failed", zap.Error(err))
		}
	}); err != nil {
		return err
	}
	s.sched.Start()
	return nil
}

// Close stops auto-refresh and the WebSocket hub.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := s.sched.Stop(ctx)
	s.stopHub()
	return err
}

// ListenAndServe starts the HTTP server and shuts it down gracefully when
// ctx is cancelled. Auto-refresh runs when enabled in the dashboard config.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	if s.cfg.Dashboard.AutoRefresh {
		if err := s.StartAutoRefresh(s.cfg.Dashboard.RefreshInterval); err != nil {
			return err
		}
	}
	defer s.Close()

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("api server listening", zap.String("addr", addr))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info("shutting down api server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}

// buildRouter configures all routes and middleware.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(corsOptions(s.cfg.API.CORSOrigins)))

	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		// Long-running fetches get their own timeout; the socket must not.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(120 * time.Second))
			r.Get("/report", s.handleReport)
			r.Get("/report/latest", s.handleLatestReport)
			r.Get("/articles", s.handleArticles)
			r.Get("/config", s.handleGetConfig)
			r.Get("/config/keys", s.handleGetConfigKeys)
		})

		r.Get("/ws", s.handleWebSocket)
	})

	return r
}

// corsOptions allows credentials only for an explicit origin list; with no
// origins configured, or a wildcard among them, any origin may read
// responses but cookies are never shared.
func corsOptions(origins []string) cors.Options {
	creds := len(origins) > 0
	for _, o := range origins {
		if o == "*" {
			creds = false
		}
	}
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: creds,
		MaxAge:           300,
	}
}

// requestLogger logs one line per request.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Debug("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("took", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

// ============================================================
// Request / Response types
// ============================================================

// APIResponse is the standard JSON envelope.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ArticlesResponse is the payload of GET /api/v1/articles.
type ArticlesResponse struct {
	ReportID  string                   `json:"report_id"`
	Query     string                   `json:"query"`
	Mode      models.FetchMode         `json:"mode"`
	Sentiment string                   `json:"sentiment"`
	Count     int                      `json:"count"`
	Articles  []models.EnrichedArticle `json:"articles"`
}

// ============================================================
// Handlers
// ============================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	data := map[string]interface{}{
		"status":     "ok",
		"version":    Version,
		"source":     s.agent.Source(),
		"demo_mode":  config.DemoMode(s.cfg),
		"ws_clients": s.wsHub.ClientCount(),
	}
	if latest := s.Latest(); latest != nil {
		data["last_refresh"] = latest.GeneratedAt
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: data})
}

// handleReport runs a refresh for ?q= (default query when absent).
// Optional: sources, page_size.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	report, err := s.Refresh(r.Context(), req)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: report})
}

func (s *Server) handleLatestReport(w http.ResponseWriter, r *http.Request) {
	latest := s.Latest()
	if latest == nil {
		writeError(w, http.StatusNotFound, "no report yet")
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: latest})
}

// handleArticles lists enriched articles filtered by ?sentiment= and
// truncated to ?limit= (default 10). The latest report is reused when it
// was produced by the same query, sources and page size; otherwise a
// refresh runs first.
func (s *Server) handleArticles(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var label models.SentimentLabel
	filter := strings.TrimSpace(r.URL.Query().Get("sentiment"))
	if filter != "" && !strings.EqualFold(filter, "all") {
		l, ok := models.ParseSentimentLabel(filter)
		if !ok {
			writeError(w, http.StatusBadRequest, "sentiment must be one of all, positive, negative, neutral")
			return
		}
		label = l
	}

	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	report := s.latestFor(req)
	if report == nil {
		report, err = s.Refresh(r.Context(), req)
		if err != nil {
			writeError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
	}

	rows := models.FilterBySentiment(report.Articles, label, limit)
	sentiment := string(label)
	if sentiment == "" {
		sentiment = "all"
	}
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: ArticlesResponse{
			ReportID:  report.ID,
			Query:     report.Query,
			Mode:      report.Mode,
			Sentiment: sentiment,
			Count:     len(rows),
			Articles:  rows,
		},
	})
}

// handleGetConfig returns the running configuration with secrets masked.
func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: s.cfg.Redacted()})
}

// handleGetConfigKeys returns the status of all credentials.
func (s *Server) handleGetConfigKeys(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: config.CheckAPIKeys(s.cfg)})
}

// parseRequest reads q, sources and page_size from the query string.
func (s *Server) parseRequest(r *http.Request) (agent.Request, error) {
	q := r.URL.Query()
	req := agent.Request{
		Query:    strings.TrimSpace(q.Get("q")),
		Sources:  strings.TrimSpace(q.Get("sources")),
		PageSize: s.cfg.News.PageSize,
	}
	if req.Query == "" {
		req.Query = s.cfg.Dashboard.DefaultQuery
	}
	if v := q.Get("page_size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 100 {
			return req, errors.New("page_size must be between 1 and 100")
		}
		req.PageSize = n
	}
	return req, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, APIResponse{
		Success: false,
		Error:   msg,
	})
}
