package import_calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/jla-rentals/JLA-BookingService/internal/domain"
	"github.com/jla-rentals/JLA-BookingService/pkg/dates"
)

// eventDetails данные, извлеченные из описания события
type eventDetails struct {
	Phone    string
	Email    string
	Delivery bool
	Notes    string
}

// affirmativeTokens значения поля delivery, трактуемые как "да"
var affirmativeTokens = map[string]bool{
	"yes":  true,
	"y":    true,
	"true": true,
	"1":    true,
}

// placeholderEmails токены, означающие отсутствие email у клиента
var placeholderEmails = map[string]bool{
	"":     true,
	"none": true,
	"n/a":  true,
	"na":   true,
}

// parseTitle разбирает заголовок события формата
// "<Customer Name> - <Trailer Label>". События без разделителя
// не являются бронированиями.
func parseTitle(summary string) (customerName, trailerLabel string, ok bool) {
	parts := strings.SplitN(summary, " - ", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	customerName = strings.TrimSpace(parts[0])
	trailerLabel = strings.TrimSpace(parts[1])
	if customerName == "" || trailerLabel == "" {
		return "", "", false
	}
	return customerName, trailerLabel, true
}

// parseDescription разбирает описание события как строки key=value.
// Ключи нечувствительны к регистру, неизвестные ключи игнорируются.
func parseDescription(description string) eventDetails {
	var details eventDetails
	for _, line := range strings.Split(description, "\n") {
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		value = strings.TrimSpace(value)
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "phone":
			details.Phone = value
		case "email":
			details.Email = strings.ToLower(value)
		case "delivery":
			details.Delivery = affirmativeTokens[strings.ToLower(value)]
		case "notes":
			details.Notes = value
		}
	}
	return details
}

// parseEventDate извлекает дату из значения start/end события.
// Значение может быть голой датой или датой-временем.
func parseEventDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if t, err := dates.Parse(value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return dates.DateOnly(t), nil
	}
	if len(value) >= len(dates.Format) {
		if t, err := dates.Parse(value[:len(dates.Format)]); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}

// splitName делит полное имя клиента на имя и фамилию: последний
// токен становится фамилией, остальное именем
func splitName(fullName string) (firstName, lastName string) {
	tokens := strings.Fields(fullName)
	switch len(tokens) {
	case 0:
		return "", ""
	case 1:
		return tokens[0], ""
	default:
		return strings.Join(tokens[:len(tokens)-1], " "), tokens[len(tokens)-1]
	}
}

// matchTrailer находит прицеп по метке из заголовка: сначала точное
// сравнение без учета регистра, затем вхождение подстроки. Метка
// "6x12 Utility" должна находить прицеп "6x12 Utility Trailer".
func matchTrailer(trailers []*domain.Trailer, label string) *domain.Trailer {
	needle := strings.ToLower(strings.TrimSpace(label))
	if needle == "" {
		return nil
	}
	for _, t := range trailers {
		if strings.ToLower(t.Name) == needle {
			return t
		}
	}
	for _, t := range trailers {
		name := strings.ToLower(t.Name)
		if strings.Contains(name, needle) || strings.Contains(needle, name) {
			return t
		}
	}
	return nil
}

// isPlaceholderEmail сообщает, что email отсутствует или заполнен
// заглушкой и его нельзя использовать как ключ клиента
func isPlaceholderEmail(email string) bool {
	return placeholderEmails[strings.ToLower(strings.TrimSpace(email))]
}

// placeholderEmail синтезирует уникальный стабильный email для
// клиента без адреса, чтобы upsert по email не склеивал разных людей
func placeholderEmail(rentalID, eventID string) string {
	return strings.ToLower(fmt.Sprintf("imported+%s.%s@placeholder.jla-rentals.com", rentalID, eventID))
}
