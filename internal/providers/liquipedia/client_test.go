package liquipedia

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"esports-schedule/internal/providers"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func response(status int, body string, header http.Header) *http.Response {
	if header == nil {
		header = make(http.Header)
	}
	return &http.Response{StatusCode: status, Body: io.NopCloser(strings.NewReader(body)), Header: header}
}

func TestFetchMatchesBuildsLPDBRequest(t *testing.T) {
	var captured *http.Request
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		captured = req
		return response(http.StatusOK, `{"result":[{"id":1,"opponent":"G2"}]}`, nil), nil
	})
	client := NewClient(Config{BaseURL: "https://lpdb.example/api/v1/", APIKey: " key ", HTTPClient: &http.Client{Transport: rt}})

	matches, err := client.FetchMatches(context.Background(), GameLeagueOfLegends, "Team Vitality")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(matches) != 1 || matches[0].Opponent != "G2" {
		t.Fatalf("unexpected matches %+v", matches)
	}

	if captured.URL.Path != "/api/v1/match" {
		t.Fatalf("unexpected path %s", captured.URL.Path)
	}
	q := captured.URL.Query()
	if q.Get("wiki") != "leagueoflegends" || q.Get("limit") != "100" || q.Get("order") != "date ASC" {
		t.Fatalf("unexpected query %s", captured.URL.RawQuery)
	}
	if q.Get("conditions") != "(opponent1='Team Vitality' OR opponent2='Team Vitality')" {
		t.Fatalf("unexpected conditions %q", q.Get("conditions"))
	}
	if captured.Header.Get("Authorization") != "Bearer key" {
		t.Fatalf("unexpected auth header %q", captured.Header.Get("Authorization"))
	}
	if captured.Header.Get("User-Agent") != defaultUserAgent || captured.Header.Get("Accept-Encoding") != "gzip" {
		t.Fatalf("unexpected headers %v", captured.Header)
	}
}

func TestFetchMatchesDecodesGzip(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, _ = zw.Write([]byte(`{"matches":[{"id":"z","opponent":"NAVI"}]}`))
	_ = zw.Close()

	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		h := make(http.Header)
		h.Set("Content-Encoding", "gzip")
		return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(bytes.NewReader(buf.Bytes())), Header: h}, nil
	})
	client := NewClient(Config{APIKey: "k", HTTPClient: &http.Client{Transport: rt}})

	matches, err := client.FetchMatches(context.Background(), GameCounterStrike2, "Team Vitality")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(matches) != 1 || matches[0].ID != "counter_strike_2-z" {
		t.Fatalf("unexpected matches %+v", matches)
	}
}

func TestFetchMatchesRateLimitAndStatusErrors(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		h := make(http.Header)
		h.Set("Retry-After", "7")
		return response(http.StatusTooManyRequests, "slow down", h), nil
	})
	client := NewClient(Config{APIKey: "k", HTTPClient: &http.Client{Transport: rt}})
	_, err := client.FetchMatches(context.Background(), GameValorant, "Team Vitality")
	rl, ok := providers.AsRateLimitError(err)
	if !ok || rl.RetryAfter != 7*time.Second {
		t.Fatalf("expected rate limit error with retry-after, got %v", err)
	}

	rt = roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return response(http.StatusForbidden, "bad key", nil), nil
	})
	client = NewClient(Config{APIKey: "k", HTTPClient: &http.Client{Transport: rt}})
	_, err = client.FetchMatches(context.Background(), GameValorant, "Team Vitality")
	st, ok := providers.AsStatusError(err)
	if !ok || st.StatusCode != http.StatusForbidden || st.Body != "bad key" {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestFetchMatchesWithoutKey(t *testing.T) {
	called := false
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		called = true
		return response(http.StatusOK, "{}", nil), nil
	})
	client := NewClient(Config{HTTPClient: &http.Client{Transport: rt}})

	if _, err := client.FetchMatches(context.Background(), GameValorant, "Team Vitality"); !errors.Is(err, ErrNoAPIKey) {
		t.Fatalf("expected ErrNoAPIKey, got %v", err)
	}
	matches, err := client.FetchMatches(context.Background(), GameRocketLeague, "Team Vitality")
	if err != nil || matches == nil || len(matches) != 0 {
		t.Fatalf("expected empty result without key, got %v err=%v", matches, err)
	}
	if called {
		t.Fatalf("expected no upstream call without key")
	}
}

func TestFetchMatchesUnknownGame(t *testing.T) {
	if _, err := NewClient(Config{DemoMode: true}).FetchMatches(context.Background(), "chess", "x"); !errors.Is(err, ErrUnknownGame) {
		t.Fatalf("expected ErrUnknownGame, got %v", err)
	}
}

func TestFetchMatchesDemoMode(t *testing.T) {
	client := NewClient(Config{DemoMode: true})
	matches, err := client.FetchMatches(context.Background(), GameValorant, "Team Vitality")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(matches) != 3 {
		t.Fatalf("expected demo matches, got %d", len(matches))
	}
	if matches[0].Opponent != "Fnatic" || matches[0].Team != "Team Vitality" {
		t.Fatalf("unexpected first demo match %+v", matches[0])
	}
	if len(matches[1].Streams["youtube"]) != 1 {
		t.Fatalf("expected youtube link classified, got %v", matches[1].Streams)
	}

	other, err := client.FetchMatches(context.Background(), GameRocketLeague, "Team Vitality")
	if err != nil || len(other) != 0 {
		t.Fatalf("expected empty demo for other wikis, got %v err=%v", other, err)
	}
}
