package rng

import "testing"

type loot struct {
	id     string
	weight int
}

func TestPick_Empty(t *testing.T) {
	r := New(1)
	_, ok := Pick(r, nil, func(loot) int { return 1 })
	if ok {
		t.Error("picking from empty slice should report no pick")
	}
}

func TestPick_Deterministic(t *testing.T) {
	items := []loot{{"a", 70}, {"b", 25}, {"c", 5}}
	w := func(l loot) int { return l.weight }

	r1 := New(42)
	r2 := New(42)
	for i := 0; i < 30; i++ {
		a, _ := Pick(r1, items, w)
		b, _ := Pick(r2, items, w)
		if a != b {
			t.Fatalf("pick %d: %v vs %v from same seed", i, a, b)
		}
	}
}

func TestPick_Distribution(t *testing.T) {
	items := []loot{{"a", 70}, {"b", 20}, {"c", 10}}
	w := func(l loot) int { return l.weight }
	counts := map[string]int{}

	r := New(12345)
	const trials = 10000
	for i := 0; i < trials; i++ {
		it, _ := Pick(r, items, w)
		counts[it.id]++
	}

	if counts["a"] < 6000 || counts["a"] > 8000 {
		t.Errorf("expected ~7000 for weight 70, got %d", counts["a"])
	}
	if counts["c"] < 200 || counts["c"] > 1800 {
		t.Errorf("expected ~1000 for weight 10, got %d", counts["c"])
	}
}

func TestPick_ZeroTotal_Uniform(t *testing.T) {
	items := []loot{{"a", 0}, {"b", 0}, {"c", 0}}
	w := func(l loot) int { return l.weight }
	counts := map[string]int{}

	r := New(9)
	for i := 0; i < 3000; i++ {
		it, ok := Pick(r, items, w)
		if !ok {
			t.Fatal("zero total weight should still pick")
		}
		counts[it.id]++
	}

	// Roughly uniform: each bucket should get a meaningful share.
	for _, id := range []string{"a", "b", "c"} {
		if counts[id] < 500 {
			t.Errorf("uniform fallback starved %q: %d", id, counts[id])
		}
	}
}

func TestPickUnique_NoDuplicates(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e"}
	w := func(string) int { return 10 }

	for seed := uint32(0); seed < 50; seed++ {
		picked := PickUnique(New(seed), items, 3, w)
		if len(picked) != 3 {
			t.Fatalf("seed %d: expected 3 picks, got %d", seed, len(picked))
		}
		seen := map[string]bool{}
		for _, p := range picked {
			if seen[p] {
				t.Fatalf("seed %d: duplicate pick %q", seed, p)
			}
			seen[p] = true
		}
	}
}

func TestPickUnique_PoolExhaustion(t *testing.T) {
	items := []string{"a", "b"}
	picked := PickUnique(New(1), items, 5, func(string) int { return 1 })
	if len(picked) != 2 {
		t.Fatalf("expected 2 picks from pool of 2, got %d", len(picked))
	}
}

func TestRarityWeight(t *testing.T) {
	cases := map[string]int{
		"common":   70,
		"uncommon": 25,
		"rare":     5,
		"ultra":    1,
		"":         30,
		"mythic":   30,
	}
	for rarity, want := range cases {
		if got := RarityWeight(rarity); got != want {
			t.Errorf("RarityWeight(%q) = %d, want %d", rarity, got, want)
		}
	}
}
