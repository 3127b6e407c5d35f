package availability

import (
	"math"
	"slices"
	"time"
)

const parallelEpsilon = 0.01

// SelectBest groups combinations by their earliest start and keeps the best one per start.
// Best means: higher parallel score (only with two or more people), then shorter total span,
// then fewer staff changes, then the earlier start of the first person.
func SelectBest(combinations []Combination, personIDs []string) []PersonSlots {
	byStart := make(map[int][]Combination)
	for _, c := range combinations {
		if len(c.Chains) == 0 {
			continue
		}
		start := earliestStart(c.Chains)
		byStart[start] = append(byStart[start], c)
	}

	starts := make([]int, 0, len(byStart))
	for start := range byStart {
		starts = append(starts, start)
	}
	slices.Sort(starts)

	result := make([]PersonSlots, len(personIDs))
	for i, personID := range personIDs {
		result[i] = PersonSlots{PersonID: personID, Slots: make([]ChainSlot, 0)}
	}

	for _, start := range starts {
		best := slices.MinFunc(byStart[start], compareCombinations)
		for i := range personIDs {
			if i < len(best.Chains) {
				result[i].Slots = append(result[i].Slots, toChainSlot(best.Chains[i]))
			}
		}
	}

	return result
}

// compareCombinations orders a before b when a is the better combination
func compareCombinations(a, b Combination) int {
	if len(a.Chains) >= 2 {
		if diff := b.ParallelScore - a.ParallelScore; math.Abs(diff) > parallelEpsilon {
			if diff > 0 {
				return 1
			}
			return -1
		}
	}

	if diff := totalSpan(a.Chains) - totalSpan(b.Chains); diff != 0 {
		return diff
	}
	if diff := staffChanges(a.Chains) - staffChanges(b.Chains); diff != 0 {
		return diff
	}
	return a.Chains[0].Start() - b.Chains[0].Start()
}

func earliestStart(chains []*Chain) int {
	start := chains[0].Start()
	for _, c := range chains[1:] {
		start = min(start, c.Start())
	}
	return start
}

func totalSpan(chains []*Chain) int {
	end := chains[0].End()
	for _, c := range chains[1:] {
		end = max(end, c.End())
	}
	return end - earliestStart(chains)
}

func staffChanges(chains []*Chain) int {
	total := 0
	for _, c := range chains {
		total += c.StaffChanges()
	}
	return total
}

func toChainSlot(c *Chain) ChainSlot {
	slot := ChainSlot{
		Start:   c.Start(),
		End:     c.End(),
		StaffID: c.Blocks[0].StaffID,
	}
	for _, b := range c.Blocks {
		for _, s := range b.Services {
			slot.Services = append(slot.Services, ChainService{
				ServiceID: s.ServiceID,
				StaffID:   b.StaffID,
				Start:     s.Start,
				End:       s.End,
			})
		}
	}
	return slot
}

// SearchChainSlots finds bookable chain starts for every person on one date.
// Chains starting before the earliest allowed minute (past dates, minimum notice) are dropped.
func SearchChainSlots(idx *Index, date time.Time, groups []PersonGroup, now time.Time) []PersonSlots {
	personIDs := make([]string, 0, len(groups))
	for _, g := range groups {
		personIDs = append(personIDs, g.PersonID)
	}

	minStart, ok := earliestAllowedStart(idx, date, now)
	if !ok {
		return SelectBest(nil, personIDs)
	}

	builder := NewChainBuilder(idx)
	perPerson := make([][]*Chain, 0, len(groups))
	for _, g := range groups {
		var chains []*Chain
		for _, c := range builder.ChainsForGroup(g.ServiceIDs, date) {
			if c.Start() >= minStart {
				chains = append(chains, c)
			}
		}
		if len(chains) == 0 {
			return SelectBest(nil, personIDs)
		}
		perPerson = append(perPerson, chains)
	}

	return SelectBest(Synchronize(perPerson), personIDs)
}
