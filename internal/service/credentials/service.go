package credentials

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"golang.org/x/crypto/bcrypt"

	"github.com/jla-rentals/JLA-BookingService/internal/domain"
)

// Config конфигурация выдачи учетных данных
type Config struct {
	// Pepper серверный секрет, подмешиваемый в ключ перед хешированием.
	// Инжектится при конструировании — бизнес-логика не читает окружение,
	// тесты используют фиксированный pepper.
	Pepper string
}

// Credentials учетные данные бронирования. AccessKey возвращается
// вызывающей стороне один раз и нигде не сохраняется в открытом виде.
type Credentials struct {
	RentalID      string
	AccessKey     string
	AccessKeyHash string
}

// Service выдает и проверяет учетные данные бронирования:
// человекочитаемый rental ID ("JLA-######") и шестизначный ключ доступа
type Service struct {
	cfg Config
}

// NewService создает новый экземпляр сервиса учетных данных
func NewService(cfg Config) *Service {
	return &Service{cfg: cfg}
}

// Issue генерирует rental ID и ключ доступа.
// Уникальность rental ID алгоритмически не гарантируется — финальная
// защита это uniqueness constraint в БД; при его срабатывании
// вызывающая сторона вызывает Issue повторно.
func (s *Service) Issue() (*Credentials, error) {
	rentalID, err := s.generateRentalID()
	if err != nil {
		return nil, err
	}

	accessKey, err := randomDigits()
	if err != nil {
		return nil, err
	}

	hash, err := s.hashKey(accessKey)
	if err != nil {
		return nil, err
	}

	return &Credentials{
		RentalID:      rentalID,
		AccessKey:     accessKey,
		AccessKeyHash: hash,
	}, nil
}

// Verify проверяет ключ доступа против сохраненного хеша.
// Сравнение точное: без частичных совпадений и без игнорирования регистра.
func (s *Service) Verify(accessKeyHash, suppliedKey string) error {
	err := bcrypt.CompareHashAndPassword([]byte(accessKeyHash), []byte(suppliedKey+s.cfg.Pepper))
	if err != nil {
		return ErrKeyMismatch
	}
	return nil
}

func (s *Service) generateRentalID() (string, error) {
	digits, err := randomDigits()
	if err != nil {
		return "", err
	}
	return domain.RentalIDPrefix + digits, nil
}

func (s *Service) hashKey(key string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(key+s.cfg.Pepper), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHash, err)
	}
	return string(hash), nil
}

// randomDigits возвращает случайное шестизначное число [100000, 999999]
// в виде строки
func randomDigits() (string, error) {
	span := int64(domain.IdentifierMaxVal - domain.IdentifierMinVal + 1)
	n, err := rand.Int(rand.Reader, big.NewInt(span))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerate, err)
	}
	return fmt.Sprintf("%d", domain.IdentifierMinVal+n.Int64()), nil
}
