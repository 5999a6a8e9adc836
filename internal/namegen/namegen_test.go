package namegen

import (
	"strings"
	"testing"

	"github.com/LachyC123/bloodline-arena-sub002/internal/game"
	"github.com/LachyC123/bloodline-arena-sub002/internal/rng"
)

func TestNamesDeterministic(t *testing.T) {
	a := rng.New(42)
	b := rng.New(42)
	for i := 0; i < 50; i++ {
		if FighterName(a) != FighterName(b) {
			t.Fatalf("fighter names diverged at draw %d", i)
		}
	}
	a.Reseed(7)
	b.Reseed(7)
	for i := 0; i < 50; i++ {
		if EnemyName(a, game.AIBrutal) != EnemyName(b, game.AIBrutal) {
			t.Fatalf("enemy names diverged at draw %d", i)
		}
	}
}

func TestEnemyNameCarriesEpithet(t *testing.T) {
	r := rng.New(1)
	for i := 0; i < 20; i++ {
		name := EnemyName(r, game.AITrickster)
		if !strings.Contains(name, " the ") {
			t.Fatalf("enemy name %q missing epithet", name)
		}
	}
}

func TestUnknownArchetypeFallsBack(t *testing.T) {
	name := EnemyName(rng.New(3), game.AIType("haunted"))
	if name == "" || !strings.Contains(name, " the ") {
		t.Fatalf("fallback name %q malformed", name)
	}
}

func TestEveryArchetypeHasEpithets(t *testing.T) {
	for _, a := range []game.AIType{
		game.AIAggressive, game.AIDefensive, game.AITrickster, game.AIBrutal,
		game.AIBalanced, game.AICautious, game.AIBerserker, game.AITactical,
	} {
		if len(epithets[a]) == 0 {
			t.Fatalf("archetype %s has no epithets", a)
		}
	}
}
