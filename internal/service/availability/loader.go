package availability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

var tracer = otel.Tracer("smc-salon-booking/availability")

// Loader reads everything the engine needs for one request and builds an Index
type Loader struct {
	catalog      CatalogSource
	appointments AppointmentSource
	logger       Logger
}

func NewLoader(catalog CatalogSource, appointments AppointmentSource, logger Logger) *Loader {
	return &Loader{
		catalog:      catalog,
		appointments: appointments,
		logger:       logger,
	}
}

// Load reads in two parallel stages: the catalog and appointments first, then working hours
// and leaves of the staff able to perform the requested services. Any failed read aborts
// the load and no index is returned.
func (l *Loader) Load(ctx context.Context, q Query) (*Index, error) {
	ctx, span := tracer.Start(ctx, "availability.Load", trace.WithAttributes(
		attribute.Int64("salon.id", q.SalonID),
		attribute.String("range.from", q.From.Format(domain.DateFormat)),
		attribute.String("range.to", q.To.Format(domain.DateFormat)),
		attribute.Int("services.count", len(q.ServiceIDs)),
	))
	defer span.End()

	in, err := l.load(ctx, q)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	return NewIndex(in), nil
}

func (l *Loader) load(ctx context.Context, q Query) (IndexInput, error) {
	var in IndexInput

	// 1. Каталог салона
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		salon, err := l.catalog.GetSalon(gctx, q.SalonID)
		if err != nil {
			return err
		}
		if salon == nil {
			return ErrSalonNotFound
		}
		in.Salon = salon
		return nil
	})
	g.Go(func() error {
		services, err := l.catalog.ListServices(gctx, q.SalonID)
		in.Services = services
		return err
	})
	g.Go(func() error {
		categories, err := l.catalog.ListCategories(gctx, q.SalonID)
		in.Categories = categories
		return err
	})
	g.Go(func() error {
		staffServices, err := l.catalog.ListStaffServices(gctx, q.SalonID, q.ServiceIDs)
		in.StaffServices = staffServices
		return err
	})
	if err := g.Wait(); err != nil {
		return IndexInput{}, l.fail("catalog", q, err)
	}

	// 2. Расписание сотрудников и записи за период (в часовом поясе салона)
	staffIDs := uniqueStaff(in.StaffServices)
	loc := in.Salon.Location()
	from := time.Date(q.From.Year(), q.From.Month(), q.From.Day(), 0, 0, 0, 0, loc)
	to := time.Date(q.To.Year(), q.To.Month(), q.To.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, 1)

	g, gctx = errgroup.WithContext(ctx)
	g.Go(func() error {
		appointments, err := l.appointments.ListOccupying(gctx, q.SalonID, from, to)
		in.Appointments = appointments
		return err
	})
	if len(staffIDs) > 0 {
		g.Go(func() error {
			hours, err := l.catalog.ListWorkingHours(gctx, staffIDs)
			in.WorkingHours = hours
			return err
		})
		g.Go(func() error {
			leaves, err := l.catalog.ListLeaves(gctx, staffIDs, q.From, q.To)
			in.Leaves = leaves
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return IndexInput{}, l.fail("schedule", q, err)
	}

	l.logger.Debug("availability.Load: salon=%d staff=%d appointments=%d", q.SalonID, len(staffIDs), len(in.Appointments))
	return in, nil
}

func (l *Loader) fail(stage string, q Query, err error) error {
	l.logger.Warn("availability.Load: %s stage failed for salon=%d: %v", stage, q.SalonID, err)
	return fmt.Errorf("%w: %s: %w", ErrDataUnavailable, stage, err)
}

func uniqueStaff(staffServices []*domain.StaffService) []int64 {
	seen := make(map[int64]struct{}, len(staffServices))
	ids := make([]int64, 0, len(staffServices))
	for _, ss := range staffServices {
		if _, ok := seen[ss.StaffID]; ok {
			continue
		}
		seen[ss.StaffID] = struct{}{}
		ids = append(ids, ss.StaffID)
	}
	return ids
}
