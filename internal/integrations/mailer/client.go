package mailer

import (
	"bytes"
	"context"
	"fmt"
	"net/smtp"

	"golang.org/x/time/rate"
)

// Config настройки SMTP клиента
type Config struct {
	Enabled  bool
	Host     string
	Port     int
	Username string
	Password string
	FromName string

	// Ограничение скорости отправки, чтобы не упереться в лимиты
	// SMTP провайдера при пакетных операциях (импорт календаря)
	RatePerSecond float64
	Burst         int
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}

// Client отправляет почтовые уведомления клиентам.
// Контракт fire-and-forget: вызывающая сторона логирует ошибку
// и никогда не пробрасывает её в бизнес-логику.
type Client struct {
	cfg     Config
	limiter *rate.Limiter
	logger  Logger

	// sendMail подменяется в тестах
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewClient создает новый SMTP клиент
func NewClient(cfg Config, logger Logger) *Client {
	if cfg.RatePerSecond <= 0 {
		cfg.RatePerSecond = 5
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 10
	}

	return &Client{
		cfg:      cfg,
		limiter:  rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.Burst),
		logger:   logger,
		sendMail: smtp.SendMail,
	}
}

// Send отправляет уведомление указанного типа.
// При выключенной конфигурации письмо логируется и не отправляется —
// удобно для локальной разработки и тестовых стендов.
func (c *Client) Send(ctx context.Context, kind, recipient string, data map[string]interface{}) error {
	tmpl, ok := templates[kind]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}

	var body bytes.Buffer
	if err := tmpl.body.Execute(&body, data); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrRenderTemplate, kind, err)
	}

	if !c.cfg.Enabled {
		c.logger.Info("mailer: [mock] %s to %s", kind, recipient)
		return nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: rate limiter: %v", ErrSend, err)
	}

	from := fmt.Sprintf("%s <%s>", c.cfg.FromName, c.cfg.Username)
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		from, recipient, tmpl.subject, body.String())

	addr := fmt.Sprintf("%s:%d", c.cfg.Host, c.cfg.Port)
	auth := smtp.PlainAuth("", c.cfg.Username, c.cfg.Password, c.cfg.Host)

	if err := c.sendMail(addr, auth, c.cfg.Username, []string{recipient}, []byte(msg)); err != nil {
		return fmt.Errorf("%w: %s to %s: %v", ErrSend, kind, recipient, err)
	}

	c.logger.Info("mailer: sent %s to %s", kind, recipient)
	return nil
}
