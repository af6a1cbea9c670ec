package fixture

import (
	"testing"
	"time"
)

func TestPayloadIsRelativeToNow(t *testing.T) {
	fixed := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)
	p := New()
	p.now = func() time.Time { return fixed }

	payload := p.Payload("valorant", "Team Vitality")
	matches, ok := payload["matches"].([]any)
	if !ok || len(matches) != 3 {
		t.Fatalf("expected 3 demo matches, got %+v", payload)
	}

	first := matches[0].(map[string]any)
	if first["date"] != "2025-06-01T14:00:00Z" {
		t.Fatalf("unexpected start time %v", first["date"])
	}
	opponents := first["opponents"].([]any)
	if opponents[0].(map[string]any)["name"] != "Team Vitality" {
		t.Fatalf("expected club injected as first opponent, got %+v", opponents)
	}
}

func TestPayloadOtherWikisAreEmpty(t *testing.T) {
	payload := New().Payload("rocketleague", "Team Vitality")
	matches, ok := payload["matches"].([]any)
	if !ok || len(matches) != 0 {
		t.Fatalf("expected empty match list, got %+v", payload)
	}
}

func TestNewCreatesProvider(t *testing.T) {
	p := New()
	if p == nil || p.now == nil {
		t.Fatalf("expected provider with now set")
	}
}
