package testutil

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"esports-schedule/internal/domain/schedule"
	"esports-schedule/internal/providers"
)

func TestClockHelpers(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	if got := NowAt(now)(); !got.Equal(now) {
		t.Fatalf("expected fixed time, got %v", got)
	}
	if MustParseRFC3339(now.Format(time.RFC3339)) != now {
		t.Fatalf("expected parse round trip")
	}
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic on invalid RFC3339")
		}
	}()
	MustParseRFC3339("not-a-time")
}

func TestFixturesHelper(t *testing.T) {
	list := SampleClubs()
	if len(list) != 2 || list[0].Primary == "" {
		t.Fatalf("unexpected clubs fixture %+v", list)
	}
	m := SampleMatch("id-1", "Team Vitality", "G2")
	if m.ID != "id-1" || m.Team != "Team Vitality" || m.Opponent != "G2" {
		t.Fatalf("unexpected match fixture %+v", m)
	}
	s := SampleSchedule(m)
	if s.Club != "Team Vitality" || len(s.Matches) != 1 {
		t.Fatalf("unexpected schedule fixture %+v", s)
	}
	if empty := SampleSchedule(); empty.Matches == nil {
		t.Fatalf("expected normalized empty matches")
	}
}

func TestServeHelpers(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	rr := Serve(handler, http.MethodPost, "/test", strings.NewReader("{}"))
	AssertStatus(t, rr, http.StatusCreated)
	var body map[string]bool
	DecodeJSON(t, rr, &body)
	if !body["ok"] {
		t.Fatalf("expected ok=true")
	}

	req := httptest.NewRequest(http.MethodGet, "/req", nil)
	rr2 := ServeRequest(handler, req)
	AssertStatus(t, rr2, http.StatusCreated)
}

func TestSnapshotHelpers(t *testing.T) {
	w := NewTempWriter(t)
	WriteSchedule(t, w, SampleSchedule(SampleMatch("m1", "Team Vitality", "G2")))
	data, err := os.ReadFile(w.Path())
	if err != nil {
		t.Fatalf("expected schedule file, got %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("expected schedule contents")
	}
}

func TestSettingsHelper(t *testing.T) {
	svc, store := NewSettingsService("http://example.test", SampleClubs())
	got, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.BackendURL != "http://example.test" || len(got.Clubs) != 2 {
		t.Fatalf("unexpected settings %+v", got)
	}
	if store.Saves() != 0 {
		t.Fatalf("expected no writes on read")
	}
}

func TestServerStubs(t *testing.T) {
	p := &StubPoller{Err: errors.New("stop")}
	p.Start(context.Background())
	if err := p.Stop(context.Background()); !errors.Is(err, p.Err) {
		t.Fatalf("expected stop error")
	}
	if p.StartCalls != 1 || p.StopCalls != 1 {
		t.Fatalf("unexpected call counts %+v", p)
	}

	sh := &StubHTTPServer{ListenErr: errors.New("boom"), ShutdownErr: errors.New("down")}
	sh.HandlerVal = http.NewServeMux()
	_ = sh.ListenAndServe()
	_ = sh.Shutdown(context.Background())
	_ = sh.Handler()
	_ = sh.Addr()
	if sh.ListenCalls != 1 || sh.ShutdownCalls != 1 {
		t.Fatalf("expected listen/shutdown calls, got %+v", sh)
	}

	b := &BlockingHTTPServer{Unblock: make(chan struct{}), HandlerVal: http.NewServeMux()}
	if err := b.ListenAndServe(); err != nil {
		t.Fatalf("expected nil listen error for blocking server")
	}
	done := make(chan error, 1)
	go func() { done <- b.Shutdown(context.Background()) }()
	close(b.Unblock)
	_ = b.Handler()
	if b.Addr() != b.AddrVal {
		t.Fatalf("expected blocking server addr passthrough")
	}
	if err := <-done; err != nil {
		t.Fatalf("expected nil shutdown err, got %v", err)
	}
	if b.ShutdownCalls != 1 {
		t.Fatalf("expected shutdown called once")
	}

	e := &ErrHTTPServer{}
	_ = e.ListenAndServe()
	_ = e.Shutdown(context.Background())
	_ = e.Handler()
	if e.Addr() == "" {
		t.Fatalf("expected addr from ErrHTTPServer")
	}
	if e.ShutdownCalls != 1 {
		t.Fatalf("expected shutdown call for ErrHTTPServer")
	}

	c := &CloseableHTTPServer{}
	_ = c.ListenAndServe()
	_ = c.Shutdown(context.Background())
	_ = c.Handler()
	if c.Addr() == "" {
		t.Fatalf("expected addr from CloseableHTTPServer")
	}
	if c.ShutdownCalls != 1 {
		t.Fatalf("expected shutdown call for CloseableHTTPServer")
	}

	// verify Status passthrough
	if p.Status() != p.StatusVal {
		t.Fatalf("expected status passthrough")
	}
}

func TestLoggerAndMetricsHelpers(t *testing.T) {
	logger, buf := NewBufferLogger()
	logger.Info("hello", "k", "v")
	if buf.Len() == 0 {
		t.Fatalf("expected buffered log output")
	}
	rec, shutdown := NewRecorderWithShutdown()
	if rec == nil || shutdown == nil {
		t.Fatalf("expected recorder and shutdown")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("expected nil shutdown error, got %v", err)
	}
}

func TestProviderHelpers(t *testing.T) {
	ctx := context.Background()
	m := []schedule.Match{{ID: "m1"}}

	p := GoodProvider{Matches: m}
	if got, _ := p.FetchMatches(ctx, "valorant", "Team Vitality"); len(got) != 1 {
		t.Fatalf("expected matches from GoodProvider")
	}

	errProv := ErrProvider{Err: errors.New("boom")}
	if _, err := errProv.FetchMatches(ctx, "", ""); !errors.Is(err, errProv.Err) {
		t.Fatalf("expected error passthrough")
	}
	if _, err := errProv.FetchSchedule(ctx); !errors.Is(err, errProv.Err) {
		t.Fatalf("expected schedule error passthrough")
	}

	empty := EmptyProvider{}
	if got, err := empty.FetchMatches(ctx, "", ""); err != nil || len(got) != 0 {
		t.Fatalf("expected empty result, got %v err %v", got, err)
	}

	unavail := UnavailableProvider{}
	if _, err := unavail.FetchMatches(ctx, "", ""); !errors.Is(err, providers.ErrProviderUnavailable) {
		t.Fatalf("expected provider unavailable")
	}

	static := StaticScheduleProvider{Schedule: SampleSchedule(m...)}
	if got, err := static.FetchSchedule(ctx); err != nil || len(got.Matches) != 1 {
		t.Fatalf("expected static schedule, got %+v err %v", got, err)
	}

	notify := &NotifyingProvider{Matches: m, Notify: make(chan struct{}, 1)}
	if _, err := notify.FetchMatches(ctx, "", ""); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	select {
	case <-notify.Notify:
	default:
		t.Fatalf("expected notify channel to signal")
	}
}
