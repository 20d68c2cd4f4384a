package dates

import "time"

// Format формат календарной даты, используемый во всём сервисе
const Format = "2006-01-02"

// Parse парсит календарную дату в формате YYYY-MM-DD
func Parse(s string) (time.Time, error) {
	return time.Parse(Format, s)
}

// DateOnly обнуляет компонент времени, оставляя только дату
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaysBetween возвращает количество дней между двумя датами:
// ceil((b - a) / 1 день), не меньше нуля.
// Используется для расчёта стоимости и отображения, но не для проверки
// пересечений (пересечения считаются по включительным границам).
func DaysBetween(a, b time.Time) int {
	diff := DateOnly(b).Sub(DateOnly(a))
	if diff <= 0 {
		return 0
	}

	days := int(diff / (24 * time.Hour))
	if diff%(24*time.Hour) != 0 {
		days++
	}
	return days
}

// Overlaps проверяет пересечение двух включительных диапазонов дат:
// [aStart, aEnd] и [bStart, bEnd] пересекаются тогда и только тогда,
// когда aStart <= bEnd && bStart <= aEnd.
// Это единственный предикат пересечения в сервисе — создание
// бронирования, проверка доступности и календарь используют только его.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !DateOnly(aStart).After(DateOnly(bEnd)) && !DateOnly(bStart).After(DateOnly(aEnd))
}

// SameDay проверяет, что две даты относятся к одному и тому же дню
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
