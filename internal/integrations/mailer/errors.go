package mailer

import "errors"

var (
	// ErrUnknownKind возвращается для неизвестного типа уведомления
	ErrUnknownKind = errors.New("mailer: unknown notification kind")

	// ErrRenderTemplate возвращается при ошибке рендеринга шаблона письма
	ErrRenderTemplate = errors.New("mailer: failed to render template")

	// ErrSend возвращается при ошибке отправки письма
	ErrSend = errors.New("mailer: failed to send email")
)
