package availability

import (
	"slices"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Synchronize combines the chains of several people into bookings that can happen together.
// The first person's chains are the anchors. Every other person must start no later than
// SyncMaxGapMinutes after the anchor ends, no earlier than SyncMaxLeadMinutes before it
// starts, and never share a staff member in overlapping time with anyone already placed.
// With several people at most MaxCombinations combinations are produced.
func Synchronize(perPerson [][]*Chain) []Combination {
	if len(perPerson) == 0 || len(perPerson[0]) == 0 {
		return nil
	}

	if len(perPerson) == 1 {
		combinations := make([]Combination, 0, len(perPerson[0]))
		for _, c := range perPerson[0] {
			combinations = append(combinations, Combination{Chains: []*Chain{c}})
		}
		return combinations
	}

	var combinations []Combination
	for _, anchor := range perPerson[0] {
		if len(combinations) >= domain.MaxCombinations {
			break
		}
		combinations = extend([]*Chain{anchor}, perPerson[1:], combinations)
	}

	return combinations
}

func extend(current []*Chain, rest [][]*Chain, acc []Combination) []Combination {
	if len(acc) >= domain.MaxCombinations {
		return acc
	}
	if len(rest) == 0 {
		chains := slices.Clone(current)
		return append(acc, Combination{Chains: chains, ParallelScore: parallelScore(chains)})
	}

	anchor := current[0]
	for _, next := range rest[0] {
		if len(acc) >= domain.MaxCombinations {
			return acc
		}
		if next.Start() > anchor.End()+domain.SyncMaxGapMinutes || next.Start() < anchor.Start()-domain.SyncMaxLeadMinutes {
			continue
		}
		if staffConflict(next, current) {
			continue
		}
		acc = extend(append(current, next), rest[1:], acc)
	}
	return acc
}

func staffConflict(candidate *Chain, placed []*Chain) bool {
	for _, other := range placed {
		for _, b := range candidate.Blocks {
			if other.busyWith(b.StaffID, b.Start, b.End) {
				return true
			}
		}
	}
	return false
}

// parallelScore is the share of the combined span during which at least two people are served
func parallelScore(chains []*Chain) float64 {
	if len(chains) < 2 {
		return 0
	}

	first, last := chains[0].Start(), chains[0].End()
	points := make([]int, 0, len(chains)*2)
	for _, c := range chains {
		first = min(first, c.Start())
		last = max(last, c.End())
		points = append(points, c.Start(), c.End())
	}
	total := last - first
	if total == 0 {
		return 0
	}

	slices.Sort(points)
	points = slices.Compact(points)

	overlap := 0
	for i := 0; i+1 < len(points); i++ {
		from, to := points[i], points[i+1]
		active := 0
		for _, c := range chains {
			if c.Start() <= from && c.End() >= to {
				active++
			}
		}
		if active >= 2 {
			overlap += to - from
		}
	}

	return float64(overlap) / float64(total)
}
