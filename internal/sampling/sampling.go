// Package sampling draws question subsets that respect skill-area balance.
package sampling

import (
	"math/rand/v2"
)

// Stratum is one skill area's question pool, identified by name. Order of
// strata is significant: remainder slots go to earlier strata first.
type Stratum[T any] struct {
	Name  string
	Items []T
}

// Stratified draws k items across strata: every stratum first contributes
// an equal base share (k divided by the number of strata, at least one),
// then remaining slots are filled round-robin from strata that still have
// items, in stratum order. Draws within a stratum are uniform without
// replacement. If the pools together hold fewer than k items, everything
// is returned. k <= 0 or no strata yields nil.
func Stratified[T any](strata []Stratum[T], k int, rng *rand.Rand) []T {
	if k <= 0 || len(strata) == 0 {
		return nil
	}

	pools := make([][]T, len(strata))
	total := 0
	for i, s := range strata {
		pools[i] = shuffled(s.Items, rng)
		total += len(s.Items)
	}
	if total <= k {
		var all []T
		for _, p := range pools {
			all = append(all, p...)
		}
		return all
	}

	base := k / len(strata)
	if base < 1 {
		base = 1
	}

	out := make([]T, 0, k)
	for i := range pools {
		take := base
		if take > len(pools[i]) {
			take = len(pools[i])
		}
		out = append(out, pools[i][:take]...)
		pools[i] = pools[i][take:]
		if len(out) >= k {
			return out[:k]
		}
	}

	// Round-robin over whatever is left until k is reached.
	for len(out) < k {
		progressed := false
		for i := range pools {
			if len(pools[i]) == 0 {
				continue
			}
			out = append(out, pools[i][0])
			pools[i] = pools[i][1:]
			progressed = true
			if len(out) == k {
				return out
			}
		}
		if !progressed {
			break
		}
	}
	return out
}

func shuffled[T any](items []T, rng *rand.Rand) []T {
	out := make([]T, len(items))
	copy(out, items)
	if rng == nil {
		rand.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	} else {
		rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	}
	return out
}
