package keys

import "testing"

func TestFighterKey(t *testing.T) {
	if got := FighterKey("  Marcus the Hound "); got != "marcus_the_hound" {
		t.Fatalf("unexpected key: %q", got)
	}
	if got := FighterKey(""); got != "" {
		t.Fatalf("expected empty key for empty name, got %q", got)
	}
}

func TestRosterKeyOrderIndependent(t *testing.T) {
	a := RosterKey([]string{"Brutus", "Aelia"})
	b := RosterKey([]string{"Aelia", "Brutus"})
	if a != b {
		t.Fatalf("roster key should not depend on order: %q vs %q", a, b)
	}
	if a != "aelia_brutus" {
		t.Fatalf("unexpected roster key: %q", a)
	}
}

func TestRosterKeySkipsEmpty(t *testing.T) {
	if got := RosterKey([]string{"", "Crixus", "  "}); got != "crixus" {
		t.Fatalf("unexpected key: %q", got)
	}
}
