package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/aishwaryareddy05/NEWS-SENTIMENT-ANALYSIS-AGENT/internal/agent"
	"github.com/aishwaryareddy05/NEWS-SENTIMENT-ANALYSIS-AGENT/internal/config"
	"github.com/aishwaryareddy05/NEWS-SENTIMENT-ANALYSIS-AGENT/internal/datasource"
	"github.com/aishwaryareddy05/NEWS-SENTIMENT-ANALYSIS-AGENT/internal/metrics"
	"github.com/aishwaryareddy05/NEWS-SENTIMENT-ANALYSIS-AGENT/pkg/models"
)

// ════════════════════════════════════════════════════════════════════
// Test Helpers
// ════════════════════════════════════════════════════════════════════

type fakeFetcher struct {
	articles []models.Article
	err      error
	// echoSources stamps each article with the requested sources filter.
	echoSources bool

	mu    sync.Mutex
	calls int
}

func (f *fakeFetcher) Name() string { return "fake" }

func (f *fakeFetcher) FetchArticles(_ context.Context, q datasource.Query) ([]models.Article, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := append([]models.Article(nil), f.articles...)
	if f.echoSources {
		for i := range out {
			out[i].Source = q.Sources
		}
	}
	return out, nil
}

func (f *fakeFetcher) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// titleClassifier scores by title prefix.
type titleClassifier struct{}

func (titleClassifier) Score(_ context.Context, text string) float64 {
	switch {
	case strings.HasPrefix(text, "Good"):
		return 0.6
	case strings.HasPrefix(text, "Bad"):
		return -0.6
	}
	return 0
}

func mixedArticles() []models.Article {
	return []models.Article{
		{Title: "Good news one", Source: "A"},
		{Title: "Bad news one", Source: "B"},
		{Title: "Plain news", Source: "C"},
		{Title: "Bad news two", Source: "D"},
		{Title: "Good news two", Source: "E"},
	}
}

func testServer(t *testing.T, f *fakeFetcher) *Server {
	t.Helper()
	cfg := config.Default()
	log := zap.NewNop() // handlers log from goroutines that outlive the test
	m := metrics.New(prometheus.NewRegistry())
	a := agent.New(agent.Config{
		Fetcher:    f,
		Classifier: titleClassifier{},
		Analysis:   cfg.Analysis(),
		Metrics:    m,
		Logger:     log,
	})
	srv := NewServer(cfg, a, m, log)
	t.Cleanup(func() { _ = srv.Close() })
	return srv
}

func do(t *testing.T, srv *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder, data interface{}) APIResponse {
	t.Helper()
	var raw struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Error   string          `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&raw); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if data != nil && len(raw.Data) > 0 {
		if err := json.Unmarshal(raw.Data, data); err != nil {
			t.Fatalf("failed to decode data: %v", err)
		}
	}
	return APIResponse{Success: raw.Success, Error: raw.Error}
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

// ════════════════════════════════════════════════════════════════════
// Health
// ════════════════════════════════════════════════════════════════════

func TestHandleHealth(t *testing.T) {
	srv := testServer(t, &fakeFetcher{})
	for _, path := range []string{"/health", "/api/v1/health"} {
		rec := do(t, srv, path)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s status: got %d, want %d", path, rec.Code, http.StatusOK)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}

		var data map[string]interface{}
		resp := decodeResponse(t, rec, &data)
		if !resp.Success {
			t.Error("expected success=true")
		}
		if data["status"] != "ok" {
			t.Errorf("status: got %v", data["status"])
		}
		if data["source"] != "fake" {
			t.Errorf("source: got %v", data["source"])
		}
		if data["demo_mode"] != true {
			t.Errorf("demo_mode: got %v, want true without a key", data["demo_mode"])
		}
		if _, ok := data["version"]; !ok {
			t.Error("missing version")
		}
		if _, ok := data["last_refresh"]; ok {
			t.Error("last_refresh present before any refresh")
		}
	}
}

// ════════════════════════════════════════════════════════════════════
// Report
// ════════════════════════════════════════════════════════════════════

func TestHandleReport_DemoMode(t *testing.T) {
	srv := testServer(t, &fakeFetcher{err: datasource.ErrMissingCredentials})

	rec := do(t, srv, "/api/v1/report?q=technology")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body)
	}
	var report models.Report
	decodeResponse(t, rec, &report)

	if report.Mode != models.FetchDemo || report.Warning == "" {
		t.Errorf("mode = %s, warning = %q", report.Mode, report.Warning)
	}
	if report.Query != "technology" || len(report.Articles) != 5 {
		t.Errorf("query = %q, articles = %d", report.Query, len(report.Articles))
	}
	if len(report.Insights) == 0 {
		t.Error("expected insights for the sample corpus")
	}
	if srv.Latest() == nil || srv.Latest().ID != report.ID {
		t.Error("report not stored as latest")
	}
}

func TestHandleReport_DefaultQuery(t *testing.T) {
	srv := testServer(t, &fakeFetcher{articles: mixedArticles()})
	var report models.Report
	decodeResponse(t, do(t, srv, "/api/v1/report"), &report)
	if report.Query != srv.cfg.Dashboard.DefaultQuery {
		t.Errorf("query = %q, want default %q", report.Query, srv.cfg.Dashboard.DefaultQuery)
	}
}

func TestHandleReport_NoResults(t *testing.T) {
	srv := testServer(t, &fakeFetcher{})
	var report models.Report
	rec := do(t, srv, "/api/v1/report?q=nothing")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	decodeResponse(t, rec, &report)
	if !report.NoResults || len(report.Insights) != 0 {
		t.Errorf("report = %+v", report)
	}
}

func TestHandleReport_BadPageSize(t *testing.T) {
	srv := testServer(t, &fakeFetcher{})
	for _, v := range []string{"0", "101", "abc"} {
		rec := do(t, srv, "/api/v1/report?page_size="+v)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("page_size=%s: status %d, want 400", v, rec.Code)
		}
	}
}

func TestHandleLatestReport(t *testing.T) {
	srv := testServer(t, &fakeFetcher{articles: mixedArticles()})

	if rec := do(t, srv, "/api/v1/report/latest"); rec.Code != http.StatusNotFound {
		t.Errorf("before refresh: status %d, want 404", rec.Code)
	}

	if _, err := srv.Refresh(context.Background(), agent.Request{Query: "ai"}); err != nil {
		t.Fatal(err)
	}
	rec := do(t, srv, "/api/v1/report/latest")
	if rec.Code != http.StatusOK {
		t.Fatalf("after refresh: status %d", rec.Code)
	}
	var report models.Report
	decodeResponse(t, rec, &report)
	if report.Query != "ai" || report.Stats.Total != 5 {
		t.Errorf("report = %+v", report)
	}
}

// ════════════════════════════════════════════════════════════════════
// Articles
// ════════════════════════════════════════════════════════════════════

func TestHandleArticles_Filter(t *testing.T) {
	srv := testServer(t, &fakeFetcher{articles: mixedArticles()})

	tests := []struct {
		query     string
		wantCount int
		wantFirst string
		wantLabel string
	}{
		{"q=ai", 5, "Good news one", "all"},
		{"q=ai&sentiment=all", 5, "Good news one", "all"},
		{"q=ai&sentiment=negative", 2, "Bad news one", "negative"},
		{"q=ai&sentiment=Positive&limit=1", 1, "Good news one", "positive"},
		{"q=ai&sentiment=neutral", 1, "Plain news", "neutral"},
		{"q=ai&limit=3", 3, "Good news one", "all"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rec := do(t, srv, "/api/v1/articles?"+tt.query)
			if rec.Code != http.StatusOK {
				t.Fatalf("status %d: %s", rec.Code, rec.Body)
			}
			var got ArticlesResponse
			decodeResponse(t, rec, &got)
			if got.Count != tt.wantCount || len(got.Articles) != tt.wantCount {
				t.Fatalf("count = %d (%d rows), want %d", got.Count, len(got.Articles), tt.wantCount)
			}
			if got.Articles[0].Title != tt.wantFirst {
				t.Errorf("first = %q, want %q", got.Articles[0].Title, tt.wantFirst)
			}
			if got.Sentiment != tt.wantLabel {
				t.Errorf("sentiment = %q, want %q", got.Sentiment, tt.wantLabel)
			}
		})
	}
}

func TestHandleArticles_ReusesLatestReport(t *testing.T) {
	f := &fakeFetcher{articles: mixedArticles()}
	srv := testServer(t, f)

	do(t, srv, "/api/v1/articles?q=ai")
	do(t, srv, "/api/v1/articles?q=ai&sentiment=negative")
	if f.Calls() != 1 {
		t.Errorf("fetches = %d, want 1 for repeated query", f.Calls())
	}
	do(t, srv, "/api/v1/articles?q=markets")
	if f.Calls() != 2 {
		t.Errorf("fetches = %d, want 2 after query change", f.Calls())
	}
}

func TestHandleArticles_RefreshesOnDifferentRequest(t *testing.T) {
	f := &fakeFetcher{articles: mixedArticles(), echoSources: true}
	srv := testServer(t, f)

	steps := []struct {
		query      string
		wantSource string
		wantCalls  int
	}{
		{"q=ai&sources=bbc", "bbc", 1},
		{"q=ai&sources=bbc", "bbc", 1},
		{"q=ai&sources=cnn", "cnn", 2},
		{"q=ai&sources=cnn&page_size=5", "cnn", 3},
		{"q=ai&sources=cnn&page_size=5", "cnn", 3},
	}
	for _, st := range steps {
		rec := do(t, srv, "/api/v1/articles?"+st.query)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: status %d", st.query, rec.Code)
		}
		var got ArticlesResponse
		decodeResponse(t, rec, &got)
		if len(got.Articles) == 0 {
			t.Fatalf("%s: no articles", st.query)
		}
		if src := got.Articles[0].Source; src != st.wantSource {
			t.Errorf("%s: source = %q, want %q", st.query, src, st.wantSource)
		}
		if f.Calls() != st.wantCalls {
			t.Errorf("%s: fetches = %d, want %d", st.query, f.Calls(), st.wantCalls)
		}
	}
}

func TestHandleArticles_BadParams(t *testing.T) {
	srv := testServer(t, &fakeFetcher{articles: mixedArticles()})
	for _, q := range []string{"sentiment=angry", "limit=-1", "limit=ten"} {
		rec := do(t, srv, "/api/v1/articles?"+q)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status %d, want 400", q, rec.Code)
		}
		resp := decodeResponse(t, rec, nil)
		if resp.Success || resp.Error == "" {
			t.Errorf("%s: response = %+v", q, resp)
		}
	}
}

// ════════════════════════════════════════════════════════════════════
// Config
// ════════════════════════════════════════════════════════════════════

func TestHandleGetConfig_MasksKey(t *testing.T) {
	srv := testServer(t, &fakeFetcher{})
	srv.cfg.News.APIKey = "0123456789abcdef"

	rec := do(t, srv, "/api/v1/config")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	body := rec.Body.String()
	if strings.Contains(body, "0123456789abcdef") {
		t.Error("config response leaks the API key")
	}
	if !strings.Contains(body, "012...def") {
		t.Errorf("masked key missing: %s", body)
	}
}

func TestHandleGetConfigKeys(t *testing.T) {
	srv := testServer(t, &fakeFetcher{})
	var keys []config.KeyStatus
	decodeResponse(t, do(t, srv, "/api/v1/config/keys"), &keys)
	if len(keys) != 1 || keys[0].IsSet || keys[0].Source != config.KeySourceNone {
		t.Errorf("keys = %+v", keys)
	}
}

// ════════════════════════════════════════════════════════════════════
// Metrics
// ════════════════════════════════════════════════════════════════════

func TestMetricsEndpoint(t *testing.T) {
	srv := testServer(t, &fakeFetcher{articles: mixedArticles()})
	do(t, srv, "/api/v1/report?q=ai")

	rec := do(t, srv, "/metrics")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `newsagent_refreshes_total{mode="live"} 1`) {
		t.Errorf("metrics missing refresh counter:\n%s", rec.Body)
	}
}

func TestCORSPreflight(t *testing.T) {
	srv := testServer(t, &fakeFetcher{})
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/report", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "GET")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("Allow-Origin = %q", got)
	}
}

func TestCORSOptions(t *testing.T) {
	tests := []struct {
		name        string
		origins     []string
		wantOrigins []string
		wantCreds   bool
	}{
		{"none configured", nil, []string{"*"}, false},
		{"explicit", []string{"http://localhost:3000"}, []string{"http://localhost:3000"}, true},
		{"wildcard listed", []string{"http://localhost:3000", "*"}, []string{"http://localhost:3000", "*"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := corsOptions(tt.origins)
			if strings.Join(opts.AllowedOrigins, ",") != strings.Join(tt.wantOrigins, ",") {
				t.Errorf("origins = %v, want %v", opts.AllowedOrigins, tt.wantOrigins)
			}
			if opts.AllowCredentials != tt.wantCreds {
				t.Errorf("credentials = %v, want %v", opts.AllowCredentials, tt.wantCreds)
			}
		})
	}
}

func TestCORSWildcardOmitsCredentials(t *testing.T) {
	cfg := config.Default()
	cfg.API.CORSOrigins = nil
	srv := NewServer(cfg, agent.New(agent.Config{Fetcher: &fakeFetcher{}, Analysis: cfg.Analysis()}), nil, zap.NewNop())
	t.Cleanup(func() { _ = srv.Close() })

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Allow-Origin = %q, want *", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Credentials"); got != "" {
		t.Errorf("Allow-Credentials = %q, want none", got)
	}
}

// ════════════════════════════════════════════════════════════════════
// WebSocket Hub
// ════════════════════════════════════════════════════════════════════

func TestWSHub_RegisterAndUnregister(t *testing.T) {
	hub := NewWSHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	client := &WSClient{hub: hub, send: make(chan WSMessage, 16)}
	hub.Register(client)
	waitFor(t, "register", func() bool { return hub.ClientCount() == 1 })

	hub.Unregister(client)
	waitFor(t, "unregister", func() bool { return hub.ClientCount() == 0 })
	if _, ok := <-client.send; ok {
		t.Error("send channel should be closed after unregister")
	}
}

func TestWSHub_Broadcast(t *testing.T) {
	hub := NewWSHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	client1 := &WSClient{hub: hub, send: make(chan WSMessage, 16)}
	client2 := &WSClient{hub: hub, send: make(chan WSMessage, 16)}
	hub.Register(client1)
	hub.Register(client2)

	hub.Broadcast(WSMessage{Type: "test", Data: "hello"})

	for i, c := range []*WSClient{client1, client2} {
		select {
		case got := <-c.send:
			if got.Type != "test" {
				t.Errorf("client%d got type=%q, want 'test'", i+1, got.Type)
			}
		case <-time.After(time.Second):
			t.Errorf("client%d did not receive message", i+1)
		}
	}
}

func TestWSHub_SendTargetsOneClient(t *testing.T) {
	hub := NewWSHub()
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	target := &WSClient{hub: hub, send: make(chan WSMessage, 16)}
	other := &WSClient{hub: hub, send: make(chan WSMessage, 16)}
	hub.Register(target)
	hub.Register(other)

	hub.Send(target, WSMessage{Type: MsgPong})
	select {
	case got := <-target.send:
		if got.Type != MsgPong {
			t.Errorf("type = %q, want %q", got.Type, MsgPong)
		}
	case <-time.After(time.Second):
		t.Fatal("target did not receive message")
	}
	select {
	case got := <-other.send:
		t.Errorf("other client received %+v", got)
	default:
	}

	// A client the hub already closed is skipped rather than written to.
	hub.Unregister(other)
	hub.Send(other, WSMessage{Type: MsgPong})
	if _, ok := <-other.send; ok {
		t.Error("unregistered client received a message")
	}

	cancel()
	done := make(chan struct{})
	go func() {
		hub.Send(target, WSMessage{Type: MsgPong})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Send blocked after the hub stopped")
	}
}

func TestWSHub_DropsSlowClient(t *testing.T) {
	hub := NewWSHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	slow := &WSClient{hub: hub, send: make(chan WSMessage)} // never drained
	hub.Register(slow)
	waitFor(t, "register", func() bool { return hub.ClientCount() == 1 })

	hub.Broadcast(WSMessage{Type: "test"})
	waitFor(t, "slow client drop", func() bool { return hub.ClientCount() == 0 })
}

func TestWSHub_BroadcastDoesNotBlock(t *testing.T) {
	hub := NewWSHub() // not running: the queue fills up

	done := make(chan bool)
	go func() {
		for i := 0; i < 300; i++ {
			hub.Broadcast(WSMessage{Type: "test"})
		}
		done <- true
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Broadcast blocked when buffer was full")
	}
}

func TestWSHub_StopClosesClients(t *testing.T) {
	hub := NewWSHub()
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	client := &WSClient{hub: hub, send: make(chan WSMessage, 16)}
	hub.Register(client)
	cancel()

	select {
	case _, ok := <-client.send:
		if ok {
			t.Error("unexpected message")
		}
	case <-time.After(time.Second):
		t.Fatal("client not closed on hub stop")
	}

	// Register after stop must not block.
	late := &WSClient{hub: hub, send: make(chan WSMessage, 1)}
	hub.Register(late)
	hub.Unregister(late)
}

// ════════════════════════════════════════════════════════════════════
// WebSocket endpoint
// ════════════════════════════════════════════════════════════════════

func dialWS(t *testing.T, srv *Server) *websocket.Conn {
	t.Helper()
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/v1/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	waitFor(t, "ws client", func() bool { return srv.Hub().ClientCount() == 1 })
	return conn
}

func readMsg(t *testing.T, conn *websocket.Conn) WSMessage {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var msg WSMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	return msg
}

func TestWebSocket_ReceivesReports(t *testing.T) {
	srv := testServer(t, &fakeFetcher{articles: mixedArticles()})
	conn := dialWS(t, srv)

	if _, err := srv.Refresh(context.Background(), agent.Request{Query: "ai"}); err != nil {
		t.Fatal(err)
	}
	msg := readMsg(t, conn)
	if msg.Type != MsgReport {
		t.Fatalf("type = %q, want %q", msg.Type, MsgReport)
	}
	data, ok := msg.Data.(map[string]interface{})
	if !ok || data["query"] != "ai" {
		t.Errorf("data = %v", msg.Data)
	}
}

func TestWebSocket_PingAndRefresh(t *testing.T) {
	f := &fakeFetcher{articles: mixedArticles()}
	srv := testServer(t, f)
	conn := dialWS(t, srv)

	if err := conn.WriteJSON(WSMessage{Type: MsgPing}); err != nil {
		t.Fatal(err)
	}
	if msg := readMsg(t, conn); msg.Type != MsgPong {
		t.Errorf("type = %q, want pong", msg.Type)
	}

	if err := conn.WriteJSON(WSMessage{Type: MsgRefresh, Data: "climate"}); err != nil {
		t.Fatal(err)
	}
	msg := readMsg(t, conn)
	if msg.Type != MsgReport {
		t.Fatalf("type = %q, want report", msg.Type)
	}
	if data, _ := msg.Data.(map[string]interface{}); data["query"] != "climate" {
		t.Errorf("query = %v", data["query"])
	}
	if f.Calls() != 1 {
		t.Errorf("fetches = %d, want 1", f.Calls())
	}
}

// ════════════════════════════════════════════════════════════════════
// Auto-refresh
// ════════════════════════════════════════════════════════════════════

func TestStartAutoRefresh(t *testing.T) {
	f := &fakeFetcher{articles: mixedArticles()}
	srv := testServer(t, f)

	if err := srv.StartAutoRefresh(0); err == nil {
		t.Error("zero interval should be rejected")
	}
	if err := srv.StartAutoRefresh(time.Second); err != nil {
		t.Fatal(err)
	}
	waitFor(t, "auto-refresh", func() bool { return srv.Latest() != nil })
	if got := srv.Latest().Query; got != srv.cfg.Dashboard.DefaultQuery {
		t.Errorf("query = %q, want default", got)
	}
}

// ════════════════════════════════════════════════════════════════════
// Helpers
// ════════════════════════════════════════════════════════════════════

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, http.StatusTeapot, "short and stout")
	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d", rec.Code)
	}
	resp := decodeResponse(t, rec, nil)
	if resp.Success || resp.Error != "short and stout" {
		t.Errorf("resp = %+v", resp)
	}
}
