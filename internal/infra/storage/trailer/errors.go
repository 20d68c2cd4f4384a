package trailer

import "errors"

var (
	// ErrTrailerNotFound возвращается, когда прицеп не найден
	ErrTrailerNotFound = errors.New("trailer.repository: trailer not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("trailer.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("trailer.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("trailer.repository: failed to scan row")
)
