package confirm_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

var (
	// ErrSessionNotFound возвращается, когда сессия не найдена
	ErrSessionNotFound = fmt.Errorf("%w: confirm_booking: booking session not found", domain.ErrNotFound)

	// ErrLockExpired возвращается, когда блокировка слота истекла или не принадлежит салону
	ErrLockExpired = fmt.Errorf("%w: confirm_booking: lock expired or invalid", domain.ErrExpired)

	// ErrServiceUnavailable возвращается, когда выбранная услуга больше не предоставляется
	ErrServiceUnavailable = fmt.Errorf("%w: confirm_booking: service is no longer available", domain.ErrConflict)

	// ErrSlotTaken возвращается, когда у мастера уже есть запись на это время
	ErrSlotTaken = fmt.Errorf("%w: confirm_booking: staff is already booked", domain.ErrConflict)

	// ErrConcurrentUpdate возвращается, когда сессию изменили параллельно
	ErrConcurrentUpdate = fmt.Errorf("%w: confirm_booking: concurrent update", domain.ErrConflict)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: confirm_booking: invalid input data", domain.ErrInvalidInput)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("confirm_booking: internal error")
)
