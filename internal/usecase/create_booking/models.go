package create_booking

import "time"

// Request модель запроса на создание бронирования
type Request struct {
	TrailerID int64     // ID прицепа
	StartDate time.Time // Первый день аренды (включительно)
	EndDate   time.Time // Последний день аренды (включительно)

	PickupTime *string // Время выдачи "HH:MM" (опционально)
	ReturnTime *string // Время возврата "HH:MM" (опционально)

	DeliveryRequested bool // Нужна ли доставка прицепа

	// Данные клиента; клиент дедуплицируется по email
	Email         string
	FirstName     string
	LastName      string
	Phone         string
	TowingVehicle *string
	Comments      *string
}

// Response модель ответа с созданным бронированием.
// AccessKey возвращается клиенту ровно один раз и нигде не хранится
// в открытом виде.
type Response struct {
	ID       int64
	RentalID string

	// AccessKey секрет клиента для самостоятельного поиска бронирования
	AccessKey string

	TrailerID int64
	ClientID  int64
	StartDate time.Time
	EndDate   time.Time
	Status    string

	// Оценка стоимости по дневной ставке прицепа
	Days           int
	EstimatedTotal float64

	CreatedAt time.Time
}
