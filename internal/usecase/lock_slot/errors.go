package lock_slot

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

var (
	// ErrSessionNotFound возвращается, когда сессия не найдена
	ErrSessionNotFound = fmt.Errorf("%w: lock_slot: booking session not found", domain.ErrNotFound)

	// ErrServiceNotFound возвращается, когда услуга не найдена или неактивна
	ErrServiceNotFound = fmt.Errorf("%w: lock_slot: service not found", domain.ErrNotFound)

	// ErrStaffNotCapable возвращается, когда мастер не выполняет услугу
	ErrStaffNotCapable = fmt.Errorf("%w: lock_slot: staff cannot perform the service", domain.ErrInvalidInput)

	// ErrSlotLocked возвращается, когда слот пересекается с другой действующей блокировкой
	ErrSlotLocked = fmt.Errorf("%w: lock_slot: slot is locked", domain.ErrConflict)

	// ErrSlotUnavailable возвращается, когда слот нельзя забронировать у выбранных мастеров
	ErrSlotUnavailable = fmt.Errorf("%w: lock_slot: slot is not available", domain.ErrConflict)

	// ErrSlotTaken возвращается, когда у выбранного мастера уже есть запись на это время
	ErrSlotTaken = fmt.Errorf("%w: lock_slot: staff is already booked", domain.ErrConflict)

	// ErrLockTokenUsed возвращается при повторном использовании токена блокировки
	ErrLockTokenUsed = fmt.Errorf("%w: lock_slot: lock token already used", domain.ErrConflict)

	// ErrConcurrentUpdate возвращается, когда сессию или слот изменили параллельно
	ErrConcurrentUpdate = fmt.Errorf("%w: lock_slot: concurrent update", domain.ErrConflict)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: lock_slot: invalid input data", domain.ErrInvalidInput)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("lock_slot: internal error")
)
