package client

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/jla-rentals/JLA-BookingService/internal/domain"
	"github.com/jla-rentals/JLA-BookingService/pkg/dbmetrics"
	"github.com/jla-rentals/JLA-BookingService/pkg/psqlbuilder"
)

var clientColumns = []string{
	"id",
	"email",
	"first_name",
	"last_name",
	"phone",
	"towing_vehicle",
	"comments",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с клиентами
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория клиентов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает клиента по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id}, "GetByID")
}

// GetByEmail получает клиента по нормализованному email
func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.Client, error) {
	return r.getOne(ctx, squirrel.Eq{"email": email}, "GetByEmail")
}

// Upsert создает клиента или обновляет существующего по email.
// Email — ключ дедупликации: повторное бронирование с известной почтой
// переиспользует существующую запись, обновляя контактные данные.
func (r *Repository) Upsert(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("clients").
		Columns("email", "first_name", "last_name", "phone", "towing_vehicle", "comments").
		Values(client.Email, client.FirstName, client.LastName, client.Phone, client.TowingVehicle, client.Comments).
		Suffix(`ON CONFLICT (email) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			phone = EXCLUDED.phone,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&client.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	client.CreatedAt = createdAt.Time
	client.UpdatedAt = updatedAt.Time
	return client, nil
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Eq, method string) (*domain.Client, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(clientColumns...).
		From("clients").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, method, err)
	}

	var client domain.Client
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&client.ID,
		&client.Email,
		&client.FirstName,
		&client.LastName,
		&client.Phone,
		&client.TowingVehicle,
		&client.Comments,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrClientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan client: %v", ErrScanRow, method, err)
	}

	client.CreatedAt = createdAt.Time
	client.UpdatedAt = updatedAt.Time
	return &client, nil
}
