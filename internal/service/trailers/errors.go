package trailers

import "errors"

var (
	// ErrTrailerNotFound возвращается, когда прицеп не найден
	ErrTrailerNotFound = errors.New("trailers: trailer not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("trailers: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("trailers: internal error")
)
