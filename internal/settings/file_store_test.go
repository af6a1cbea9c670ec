package settings

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"esports-schedule/internal/domain/clubs"
)

func TestFileStoreMissingFileLoadsEmpty(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "settings.json"))

	got, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.BackendURL != "" || got.Clubs != nil {
		t.Fatalf("expected empty settings, got %+v", got)
	}
}

func TestFileStoreJSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.json")
	store := NewFileStore(path)
	ctx := context.Background()

	want := Settings{BackendURL: "http://example.com", Clubs: clubs.Defaults()}
	if err := store.Save(ctx, want); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("expected temp file to be renamed away")
	}
}

func TestFileStoreYAMLRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	store := NewFileStore(path)
	ctx := context.Background()

	want := Settings{Clubs: []clubs.Club{{Name: "G2", Primary: "#ED1C24", Secondary: "#000000", Aliases: []string{"G2 Esports"}}}}
	if err := store.Save(ctx, want); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "name: G2") {
		t.Fatalf("expected yaml output, got %s", data)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestFileStoreKeepsEmptyVersusAbsentClubs(t *testing.T) {
	for _, name := range []string{"settings.json", "settings.yml"} {
		path := filepath.Join(t.TempDir(), name)
		store := NewFileStore(path)
		ctx := context.Background()

		if err := store.Save(ctx, Settings{BackendURL: "x"}); err != nil {
			t.Fatalf("save failed: %v", err)
		}
		got, _ := store.Load(ctx)
		if got.Clubs != nil {
			t.Fatalf("%s: expected absent clubs to stay nil, got %#v", name, got.Clubs)
		}

		if err := store.Save(ctx, Settings{Clubs: []clubs.Club{}}); err != nil {
			t.Fatalf("save failed: %v", err)
		}
		got, _ = store.Load(ctx)
		if got.Clubs == nil || len(got.Clubs) != 0 {
			t.Fatalf("%s: expected explicit empty list, got %#v", name, got.Clubs)
		}
	}
}

func TestFileStoreRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if _, err := NewFileStore(path).Load(context.Background()); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestServiceOverFileStorePersistsEdits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	ctx := context.Background()

	svc := NewService(NewFileStore(path), nil)
	if _, err := svc.EnsureClubs(ctx); err != nil {
		t.Fatalf("ensure failed: %v", err)
	}
	if _, err := svc.AddClub(ctx, ClubInput{Name: "G2"}); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	reopened := NewService(NewFileStore(path), nil)
	got, err := reopened.Get(ctx)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(got.Clubs) != 2 || got.Clubs[1].Name != "G2" {
		t.Fatalf("expected edits to persist, got %+v", got.Clubs)
	}
}
