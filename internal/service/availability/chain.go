package availability

import "time"

// Anchor is a candidate start of a chain: the staff member doing the first block and the minute
type Anchor struct {
	StaffID int64
	Start   int
}

// PlacedService is one service inside a placed block
type PlacedService struct {
	ServiceID int64
	Start     int
	End       int
}

// PlacedBlock is a block bound to a staff member and a time window
type PlacedBlock struct {
	Block    Block
	StaffID  int64
	Start    int
	End      int
	Services []PlacedService
}

// Chain is a feasible placement of all blocks of one person on one date
type Chain struct {
	Date   time.Time
	Blocks []PlacedBlock
}

// Start is the first minute of the chain
func (c *Chain) Start() int {
	if len(c.Blocks) == 0 {
		return 0
	}
	return c.Blocks[0].Start
}

// End is the minute the last block finishes
func (c *Chain) End() int {
	if len(c.Blocks) == 0 {
		return 0
	}
	return c.Blocks[len(c.Blocks)-1].End
}

// StaffChanges counts how many times the chain switches staff between blocks
func (c *Chain) StaffChanges() int {
	changes := 0
	for i := 1; i < len(c.Blocks); i++ {
		if c.Blocks[i].StaffID != c.Blocks[i-1].StaffID {
			changes++
		}
	}
	return changes
}

// Timeline returns every service of the chain in placement order
func (c *Chain) Timeline() []PlacedService {
	var services []PlacedService
	for _, b := range c.Blocks {
		services = append(services, b.Services...)
	}
	return services
}

// busyWith reports whether the chain occupies staffID anywhere inside [start, end)
func (c *Chain) busyWith(staffID int64, start, end int) bool {
	for _, b := range c.Blocks {
		if b.StaffID == staffID && b.Start < end && b.End > start {
			return true
		}
	}
	return false
}

// ChainBuilder places blocks onto staff timelines using an Index
type ChainBuilder struct {
	idx *Index
}

func NewChainBuilder(idx *Index) *ChainBuilder {
	return &ChainBuilder{idx: idx}
}

// Build places the blocks greedily starting at the anchor.
//
// The first block is placed only on the anchor's staff member. A chain starting on
// another staff member is found from that staff member's own anchors.
// Later blocks try the previous block's staff first and then the remaining staff capable
// of the whole block in ascending id order. The first placement that validates wins.
//
// Build is deterministic: the same index, blocks and anchor always yield the same chain.
func (b *ChainBuilder) Build(blocks []Block, anchor Anchor, date time.Time) (*Chain, bool) {
	if len(blocks) == 0 {
		return nil, false
	}

	chain := &Chain{Date: date, Blocks: make([]PlacedBlock, 0, len(blocks))}
	cursor := anchor.Start

	for i, block := range blocks {
		var candidates []int64
		if i == 0 {
			if !b.idx.CanPerformAll(anchor.StaffID, block.ServiceIDs()) {
				return nil, false
			}
			candidates = []int64{anchor.StaffID}
		} else {
			cursor += bufferAfter(blocks[i-1], b.idx)
			candidates = b.candidates(block, chain.Blocks[i-1].StaffID)
		}

		placed, ok := b.placeOnFirst(block, candidates, cursor, date)
		if !ok {
			return nil, false
		}
		chain.Blocks = append(chain.Blocks, placed)
		cursor = placed.End
	}

	return chain, true
}

// candidates lists staff for a non-first block: previous staff first, then the rest ascending
func (b *ChainBuilder) candidates(block Block, previous int64) []int64 {
	capable := b.idx.StaffCapableOfAll(block.ServiceIDs())
	result := make([]int64, 0, len(capable))
	for _, staffID := range capable {
		if staffID == previous {
			result = append(result, staffID)
			break
		}
	}
	for _, staffID := range capable {
		if staffID != previous {
			result = append(result, staffID)
		}
	}
	return result
}

func (b *ChainBuilder) placeOnFirst(block Block, candidates []int64, start int, date time.Time) (PlacedBlock, bool) {
	for _, staffID := range candidates {
		placed := b.layout(block, staffID, start)
		if b.validatePlacement(placed, date) {
			return placed, true
		}
	}
	return PlacedBlock{}, false
}

// layout computes the per-service timeline of a block on one staff member
func (b *ChainBuilder) layout(block Block, staffID int64, start int) PlacedBlock {
	placed := PlacedBlock{
		Block:    block,
		StaffID:  staffID,
		Start:    start,
		Services: make([]PlacedService, 0, len(block.Services)),
	}
	cursor := start
	for _, s := range block.Services {
		end := cursor + serviceDuration(s, staffID, b.idx)
		placed.Services = append(placed.Services, PlacedService{ServiceID: s.ID, Start: cursor, End: end})
		cursor = end
	}
	placed.End = cursor
	return placed
}

// validatePlacement checks leave, working hours, existing appointments and capacity
func (b *ChainBuilder) validatePlacement(placed PlacedBlock, date time.Time) bool {
	if b.idx.OnLeave(placed.StaffID, date) {
		return false
	}

	hours, ok := b.idx.Hours(placed.StaffID, date)
	if !ok || !hours.Contains(placed.Start, placed.End) {
		return false
	}

	if !b.idx.IsFree(placed.StaffID, date, placed.Start, placed.End) {
		return false
	}

	for _, ps := range placed.Services {
		service, ok := b.idx.Service(ps.ServiceID)
		if !ok {
			return false
		}
		if !hasCapacity(service, date, ps.Start, ps.End, b.idx) {
			return false
		}
	}

	return true
}

// ChainsForGroup returns every feasible chain of one person over all anchors of the date
func (b *ChainBuilder) ChainsForGroup(serviceIDs []int64, date time.Time) []*Chain {
	blocks := BuildBlocks(serviceIDs, b.idx)
	if len(blocks) == 0 {
		return nil
	}

	var chains []*Chain
	for _, anchor := range Anchors(b.idx, date, blocks[0].ServiceIDs()) {
		if chain, ok := b.Build(blocks, anchor, date); ok {
			chains = append(chains, chain)
		}
	}
	return chains
}
