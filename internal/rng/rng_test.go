package rng

import "testing"

func TestDeterminism(t *testing.T) {
	a := New(42)
	b := New(42)
	for i := 0; i < 1000; i++ {
		switch i % 4 {
		case 0:
			if a.Random() != b.Random() {
				t.Fatalf("Random diverged at call %d", i)
			}
		case 1:
			if a.RandomInt(0, 100) != b.RandomInt(0, 100) {
				t.Fatalf("RandomInt diverged at call %d", i)
			}
		case 2:
			if a.Chance(0.5) != b.Chance(0.5) {
				t.Fatalf("Chance diverged at call %d", i)
			}
		case 3:
			w := []float64{1, 2, 3}
			if a.WeightedPick(w) != b.WeightedPick(w) {
				t.Fatalf("WeightedPick diverged at call %d", i)
			}
		}
	}
}

func TestReseedRestartsSequence(t *testing.T) {
	r := New(7)
	first := []float64{r.Random(), r.Random(), r.Random()}
	r.Reseed(7)
	for i, want := range first {
		if got := r.Random(); got != want {
			t.Fatalf("draw %d after reseed: got %v want %v", i, got, want)
		}
	}
}

func TestRandomIntInclusiveBounds(t *testing.T) {
	r := New(1)
	if got := r.RandomInt(5, 5); got != 5 {
		t.Fatalf("degenerate range should return the bound, got %d", got)
	}
	sawMin, sawMax := false, false
	for i := 0; i < 2000; i++ {
		v := r.RandomInt(1, 3)
		if v < 1 || v > 3 {
			t.Fatalf("value %d outside [1,3]", v)
		}
		if v == 1 {
			sawMin = true
		}
		if v == 3 {
			sawMax = true
		}
	}
	if !sawMin || !sawMax {
		t.Fatalf("inclusive bounds not reached: min=%v max=%v", sawMin, sawMax)
	}
	// reversed bounds are swapped, not an error
	if v := r.RandomInt(3, 1); v < 1 || v > 3 {
		t.Fatalf("reversed bounds produced %d", v)
	}
}

func TestChanceEdges(t *testing.T) {
	r := New(99)
	t.Run("zero never hits", func(t *testing.T) {
		for i := 0; i < 1000; i++ {
			if r.Chance(0) {
				t.Fatalf("Chance(0) returned true on draw %d", i)
			}
		}
	})
	t.Run("one always hits", func(t *testing.T) {
		for i := 0; i < 1000; i++ {
			if !r.Chance(1) {
				t.Fatalf("Chance(1) returned false on draw %d", i)
			}
		}
	})
}

func TestWeightedPick(t *testing.T) {
	r := New(3)
	t.Run("zero total falls back to last", func(t *testing.T) {
		for i := 0; i < 50; i++ {
			if got := r.WeightedPick([]float64{0, 0, 0}); got != 2 {
				t.Fatalf("expected last index 2, got %d", got)
			}
		}
	})
	t.Run("negative weights ignored", func(t *testing.T) {
		for i := 0; i < 200; i++ {
			if got := r.WeightedPick([]float64{-5, 1, -2}); got != 1 {
				t.Fatalf("expected only positive index 1, got %d", got)
			}
		}
	})
	t.Run("empty returns -1", func(t *testing.T) {
		if got := r.WeightedPick(nil); got != -1 {
			t.Fatalf("expected -1, got %d", got)
		}
	})
	t.Run("dominant weight wins most draws", func(t *testing.T) {
		hits := 0
		for i := 0; i < 1000; i++ {
			if r.WeightedPick([]float64{99, 1}) == 0 {
				hits++
			}
		}
		if hits < 900 {
			t.Fatalf("dominant weight picked only %d/1000 times", hits)
		}
	})
}

func TestShuffleDeterministic(t *testing.T) {
	mk := func(seed int64) []int {
		s := []int{0, 1, 2, 3, 4, 5, 6, 7}
		r := New(seed)
		r.Shuffle(len(s), func(i, j int) { s[i], s[j] = s[j], s[i] })
		return s
	}
	a, b := mk(11), mk(11)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("shuffles diverged at %d: %v vs %v", i, a, b)
		}
	}
}

func TestPick(t *testing.T) {
	r := New(5)
	items := []string{"head", "body", "legs"}
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		seen[Pick(r, items)] = true
	}
	if len(seen) != 3 {
		t.Fatalf("expected all items reachable, saw %v", seen)
	}
}
