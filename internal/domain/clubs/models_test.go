package clubs

import (
	"reflect"
	"testing"
)

func TestNormalizeLowercasesAndTrims(t *testing.T) {
	cases := map[string]string{
		"  Team Vitality ": "team vitality",
		"G2":               "g2",
		"   ":              "",
		"":                 "",
	}
	for input, want := range cases {
		if got := Normalize(input); got != want {
			t.Fatalf("expected %q for %q, got %q", want, input, got)
		}
	}
}

func TestParseAliasesDropsBlanks(t *testing.T) {
	got := ParseAliases(" Vitality, ,Team_Vitality ,, VIT")
	want := []string{"Vitality", "Team_Vitality", "VIT"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if got := ParseAliases(""); len(got) != 0 {
		t.Fatalf("expected no aliases for empty input, got %v", got)
	}
}

func TestDefaultsReturnsFreshCopy(t *testing.T) {
	first := Defaults()
	first[0].Name = "changed"
	first[0].Aliases[0] = "changed"

	second := Defaults()
	if second[0].Name != "Team Vitality" || second[0].Aliases[0] != "Vitality" {
		t.Fatalf("expected defaults to be unaffected by caller mutation, got %+v", second[0])
	}
	if second[0].Primary != "#F8D000" || second[0].Secondary != "#1A1A1A" {
		t.Fatalf("unexpected default colors %+v", second[0])
	}
}

func TestSameAsComparesNormalizedNames(t *testing.T) {
	a := Club{Name: " Team Vitality"}
	b := Club{Name: "team vitality  "}
	if !a.SameAs(b) {
		t.Fatal("expected clubs to match by normalized name")
	}
	if a.SameAs(Club{Name: "G2"}) {
		t.Fatal("expected different clubs not to match")
	}
}

func TestCloneCopiesAliases(t *testing.T) {
	src := []Club{{Name: "G2", Aliases: []string{"G2 Esports"}}}
	dst := Clone(src)
	dst[0].Aliases[0] = "other"
	if src[0].Aliases[0] != "G2 Esports" {
		t.Fatalf("expected clone to not share alias storage")
	}
	if Clone(nil) != nil {
		t.Fatal("expected nil clone for nil input")
	}
}
