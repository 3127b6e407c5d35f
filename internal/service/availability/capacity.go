package availability

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// capacityLimit returns the explicit concurrency limit of a service and whether it is
// scoped to the whole category. ok is false when no explicit limit exists (implicit 1,
// already guaranteed by the per-staff overlap check).
func capacityLimit(service *domain.Service, idx *Index) (limit int, byCategory bool, ok bool) {
	if service.CapacityOverride != nil {
		return *service.CapacityOverride, false, true
	}
	if service.CategoryID != nil {
		if category, found := idx.Category(*service.CategoryID); found && category.Capacity != nil {
			return *category.Capacity, true, true
		}
	}
	return 0, false, false
}

// hasCapacity reports whether one more appointment of service fits into [start, end) on date
func hasCapacity(service *domain.Service, date time.Time, start, end int, idx *Index) bool {
	left, ok := remainingCapacity(service, date, start, end, idx)
	return !ok || left > 0
}

// remainingCapacity returns how many more appointments of service fit into [start, end) on
// date. ok is false when the service has no explicit limit.
func remainingCapacity(service *domain.Service, date time.Time, start, end int, idx *Index) (int, bool) {
	limit, byCategory, ok := capacityLimit(service, idx)
	if !ok {
		return 0, false
	}

	count := 0
	for _, span := range idx.AppointmentsOn(date) {
		if !span.Overlaps(start, end) {
			continue
		}
		if byCategory {
			other, found := idx.Service(span.ServiceID)
			if !found || other.CategoryID == nil || *other.CategoryID != *service.CategoryID {
				continue
			}
		} else if span.ServiceID != service.ID {
			continue
		}
		count++
	}

	return limit - count, true
}
