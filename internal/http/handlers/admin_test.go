package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"esports-schedule/internal/domain/schedule"
	"esports-schedule/internal/fetcher"
	"esports-schedule/internal/testutil"
)

type stubRefresher struct {
	schedule schedule.Schedule
	err      error
	calls    int
}

func (s *stubRefresher) Run(ctx context.Context) (schedule.Schedule, error) {
	_ = ctx
	s.calls++
	return s.schedule, s.err
}

func TestAdminRefreshRequiresAuth(t *testing.T) {
	job := &stubRefresher{}
	h := NewAdminHandler(job, "secret", nil)
	req := httptest.NewRequest(http.MethodPost, "/admin/refresh", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	rr := httptest.NewRecorder()

	h.RefreshSchedule(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
	if job.calls != 0 {
		t.Fatalf("expected job not run without auth")
	}
}

func TestAdminRefreshWithoutTokenIsDisabled(t *testing.T) {
	h := NewAdminHandler(&stubRefresher{}, "", nil)
	req := httptest.NewRequest(http.MethodPost, "/admin/refresh", nil)
	req.Header.Set("Authorization", "Bearer ")
	rr := httptest.NewRecorder()

	h.RefreshSchedule(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 when no token configured, got %d", rr.Code)
	}
}

func TestAdminRefreshRunsJob(t *testing.T) {
	job := &stubRefresher{schedule: testutil.SampleSchedule(testutil.SampleMatch("m1", "Team Vitality", "G2"))}
	h := NewAdminHandler(job, "secret", nil)

	req := httptest.NewRequest(http.MethodPost, "/admin/refresh", nil)
	req.Header.Set("Authorization", "Bearer secret")
	rr := httptest.NewRecorder()

	h.RefreshSchedule(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var resp map[string]any
	testutil.DecodeJSON(t, rr, &resp)
	if resp["matches"] != float64(1) || resp["club"] != "Team Vitality" {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestAdminRefreshAllGamesFailedIsBadGateway(t *testing.T) {
	h := NewAdminHandler(&stubRefresher{err: fetcher.ErrAllGamesFailed}, "secret", nil)

	req := httptest.NewRequest(http.MethodPost, "/admin/refresh", nil)
	req.Header.Set("Authorization", "Bearer secret")
	rr := httptest.NewRecorder()

	h.RefreshSchedule(rr, req)
	if rr.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rr.Code)
	}
}

func TestAdminRefreshRequiresPost(t *testing.T) {
	h := NewAdminHandler(&stubRefresher{}, "secret", nil)
	rr := testutil.Serve(http.HandlerFunc(h.RefreshSchedule), http.MethodGet, "/admin/refresh", nil)
	testutil.AssertStatus(t, rr, http.StatusMethodNotAllowed)
}
