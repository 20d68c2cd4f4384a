package credentials

import "errors"

var (
	// ErrKeyMismatch возвращается при несовпадении ключа доступа.
	// Вызывающая сторона обязана отдать наружу тот же общий "не найдено",
	// что и при неизвестном rental ID, не раскрывая, что именно не совпало.
	ErrKeyMismatch = errors.New("credentials: access key mismatch")

	// ErrGenerate возвращается при ошибке генерации случайного значения
	ErrGenerate = errors.New("credentials: failed to generate random value")

	// ErrHash возвращается при ошибке хеширования ключа
	ErrHash = errors.New("credentials: failed to hash access key")
)
