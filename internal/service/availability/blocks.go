package availability

import "github.com/m04kA/SMC-SalonBooking/internal/domain"

// BlockKind defines how the services of a block are placed
type BlockKind string

const (
	// BlockSequential services of one category done back-to-back by the same staff member
	BlockSequential BlockKind = "sequential"
	// BlockIndividual a single service
	BlockIndividual BlockKind = "individual"
)

// Block is a unit of placement: one staff member performs all its services in a row
type Block struct {
	Kind       BlockKind
	CategoryID *int64
	Services   []*domain.Service
}

// ServiceIDs returns the service ids of the block in order
func (b Block) ServiceIDs() []int64 {
	ids := make([]int64, 0, len(b.Services))
	for _, s := range b.Services {
		ids = append(ids, s.ID)
	}
	return ids
}

// BuildBlocks partitions the ordered service list into blocks.
// Consecutive services of a category with SequentialRequired merge into one block.
// Unknown service ids are skipped.
func BuildBlocks(serviceIDs []int64, idx *Index) []Block {
	var blocks []Block

	for _, serviceID := range serviceIDs {
		service, ok := idx.Service(serviceID)
		if !ok {
			continue
		}

		if service.CategoryID != nil {
			category, ok := idx.Category(*service.CategoryID)
			if ok && category.SequentialRequired {
				last := len(blocks) - 1
				if last >= 0 && blocks[last].Kind == BlockSequential && *blocks[last].CategoryID == category.ID {
					blocks[last].Services = append(blocks[last].Services, service)
					continue
				}
				categoryID := category.ID
				blocks = append(blocks, Block{
					Kind:       BlockSequential,
					CategoryID: &categoryID,
					Services:   []*domain.Service{service},
				})
				continue
			}
		}

		blocks = append(blocks, Block{
			Kind:       BlockIndividual,
			CategoryID: service.CategoryID,
			Services:   []*domain.Service{service},
		})
	}

	return blocks
}

// bufferAfter returns the pause after a block: the last service's override,
// else its category buffer, else the default
func bufferAfter(b Block, idx *Index) int {
	if len(b.Services) == 0 {
		return domain.DefaultBufferMinutes
	}
	last := b.Services[len(b.Services)-1]
	if last.BufferOverride != nil {
		return *last.BufferOverride
	}
	if last.CategoryID != nil {
		if category, ok := idx.Category(*last.CategoryID); ok && category.BufferMinutes != nil {
			return *category.BufferMinutes
		}
	}
	return domain.DefaultBufferMinutes
}

// blockDuration is the sum of the staff-specific durations of the block's services
func blockDuration(b Block, staffID int64, idx *Index) int {
	total := 0
	for _, s := range b.Services {
		total += serviceDuration(s, staffID, idx)
	}
	return total
}

func serviceDuration(s *domain.Service, staffID int64, idx *Index) int {
	if ss, ok := idx.StaffService(staffID, s.ID); ok {
		return ss.Duration(s)
	}
	if s.DurationMinutes > 0 {
		return s.DurationMinutes
	}
	return domain.DefaultServiceDurationMinutes
}

// baseDuration is the block duration from service defaults only
func baseDuration(b Block) int {
	total := 0
	for _, s := range b.Services {
		if s.DurationMinutes > 0 {
			total += s.DurationMinutes
		} else {
			total += domain.DefaultServiceDurationMinutes
		}
	}
	return total
}

// MinChainDuration is the shortest time a group can take: block durations plus inter-block buffers
func MinChainDuration(blocks []Block, idx *Index) int {
	total := 0
	for i, b := range blocks {
		total += baseDuration(b)
		if i < len(blocks)-1 {
			total += bufferAfter(b, idx)
		}
	}
	return total
}
