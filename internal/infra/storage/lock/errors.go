package lock

import "errors"

var (
	// ErrLockNotFound возвращается, когда действующая блокировка не найдена
	ErrLockNotFound = errors.New("lock.repository: lock not found")

	// ErrLockExists возвращается, когда блокировка с таким токеном уже существует
	ErrLockExists = errors.New("lock.repository: lock already exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("lock.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("lock.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	// (в том числе при некорректных текстовых полях lock_date, start_time, duration)
	ErrScanRow = errors.New("lock.repository: failed to scan row")
)
