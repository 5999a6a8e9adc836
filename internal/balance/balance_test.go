package balance

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/LachyC123/bloodline-arena-sub002/internal/game"
)

func TestDefaultIsValid(t *testing.T) {
	tun := Default()
	if err := tun.Validate(); err != nil {
		t.Fatalf("embedded defaults failed validation: %v", err)
	}
	if tun.Costs.HeavyStamina != 25 {
		t.Fatalf("expected heavy stamina cost 25, got %d", tun.Costs.HeavyStamina)
	}
	if tun.Combat.BaseHitChance != 75 {
		t.Fatalf("expected base hit chance 75, got %d", tun.Combat.BaseHitChance)
	}
}

func TestEveryArchetypeHasProfile(t *testing.T) {
	tun := Default()
	for _, a := range []game.AIType{
		game.AIAggressive, game.AIDefensive, game.AITrickster, game.AIBrutal,
		game.AIBalanced, game.AICautious, game.AIBerserker, game.AITactical,
	} {
		if _, ok := tun.Profile(a); !ok {
			t.Fatalf("no profile for archetype %q", a)
		}
	}
}

func TestZoneFallback(t *testing.T) {
	tun := Default()
	got := tun.Zones.Of(game.TargetZone("wings"))
	if got != tun.Zones.Body {
		t.Fatalf("unknown zone should use body modifiers, got %+v", got)
	}
}

func TestCostsOf(t *testing.T) {
	tun := Default()
	st, fc := tun.Costs.Of(game.ActionSpecial)
	if st != 20 || fc != 30 {
		t.Fatalf("special cost = (%d,%d), want (20,30)", st, fc)
	}
	st, fc = tun.Costs.Of(game.ActionLightAttack)
	if st != 5 || fc != 0 {
		t.Fatalf("light cost = (%d,%d), want (5,0)", st, fc)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/does/not/exist.yaml"); err == nil {
		t.Fatalf("expected error for missing balance file")
	}
}

func TestLoadOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "override.yaml")
	if err := os.WriteFile(path, []byte("costs:\n  heavy_stamina: 40\n"), 0o600); err != nil {
		t.Fatalf("write override: %v", err)
	}
	tun, err := Load(path)
	if err != nil {
		t.Fatalf("load override: %v", err)
	}
	if tun.Costs.HeavyStamina != 40 {
		t.Fatalf("override not applied, heavy stamina = %d", tun.Costs.HeavyStamina)
	}
	// Untouched entries keep their defaults.
	if tun.Costs.LightStamina != 5 {
		t.Fatalf("default lost under override, light stamina = %d", tun.Costs.LightStamina)
	}
}

func TestValidateRejectsZeroWeights(t *testing.T) {
	tun := Default()
	p := tun.Archetypes["balanced"]
	p.Light, p.Heavy, p.Special, p.Guard, p.Dodge = 0, 0, 0, 0, 0
	tun.Archetypes["balanced"] = p
	if err := tun.Validate(); err == nil {
		t.Fatalf("expected validation failure for all-zero action weights")
	}
}
