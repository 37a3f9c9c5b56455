package rng

// Rarity weights for loot/offer selection. Unknown rarities use
// WeightDefault.
const (
	WeightCommon   = 70
	WeightUncommon = 25
	WeightRare     = 5
	WeightUltra    = 1
	WeightDefault  = 30
)

// RarityWeight maps a rarity string to its selection weight.
func RarityWeight(rarity string) int {
	switch rarity {
	case "common":
		return WeightCommon
	case "uncommon":
		return WeightUncommon
	case "rare":
		return WeightRare
	case "ultra":
		return WeightUltra
	default:
		return WeightDefault
	}
}

// Pick returns a weighted single draw from items. If the total weight is
// zero or negative it degrades to a uniform random index. Returns false
// when items is empty.
func Pick[T any](r *Rand, items []T, weight func(T) int) (T, bool) {
	var zero T
	if len(items) == 0 {
		return zero, false
	}

	total := 0
	for _, it := range items {
		total += weight(it)
	}
	if total <= 0 {
		return items[r.Intn(len(items))], true
	}

	roll := r.Intn(total)
	acc := 0
	for _, it := range items {
		acc += weight(it)
		if roll < acc {
			return it, true
		}
	}
	return items[len(items)-1], true
}

// PickUnique draws n items without replacement by removing each pick from
// a working pool. Returns fewer than n items when the pool is exhausted.
func PickUnique[T comparable](r *Rand, items []T, n int, weight func(T) int) []T {
	pool := make([]T, len(items))
	copy(pool, items)

	var picked []T
	for len(picked) < n && len(pool) > 0 {
		it, ok := Pick(r, pool, weight)
		if !ok {
			break
		}

		removed := false
		for i := range pool {
			if pool[i] == it {
				pool = append(pool[:i], pool[i+1:]...)
				removed = true
				break
			}
		}
		if !removed {
			// Shouldn't happen; drop an arbitrary element so the
			// loop always terminates.
			pool = pool[:len(pool)-1]
		}

		picked = append(picked, it)
	}
	return picked
}
