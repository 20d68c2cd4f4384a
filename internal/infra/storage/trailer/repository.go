package trailer

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/jla-rentals/JLA-BookingService/internal/domain"
	"github.com/jla-rentals/JLA-BookingService/pkg/dbmetrics"
	"github.com/jla-rentals/JLA-BookingService/pkg/psqlbuilder"
)

var trailerColumns = []string{
	"id",
	"name",
	"rate_per_day",
	"active",
	"color_hex",
	"photo_urls",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с прицепами
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория прицепов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает прицеп по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Trailer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(trailerColumns...).
		From("trailers").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	trailer, err := scanTrailer(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrTrailerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan trailer: %v", ErrScanRow, err)
	}
	return trailer, nil
}

// ListActive получает все активные прицепы, отсортированные по имени
func (r *Repository) ListActive(ctx context.Context) ([]*domain.Trailer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(trailerColumns...).
		From("trailers").
		Where(squirrel.Eq{"active": true}).
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	trailers := make([]*domain.Trailer, 0)
	for rows.Next() {
		trailer, err := scanTrailer(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActive - scan row: %v", ErrScanRow, err)
		}
		trailers = append(trailers, trailer)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActive - rows error: %v", ErrScanRow, err)
	}

	return trailers, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTrailer(row rowScanner) (*domain.Trailer, error) {
	var trailer domain.Trailer
	var createdAt, updatedAt sql.NullTime
	var photoURLs pq.StringArray

	err := row.Scan(
		&trailer.ID,
		&trailer.Name,
		&trailer.RatePerDay,
		&trailer.Active,
		&trailer.ColorHex,
		&photoURLs,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	trailer.PhotoURLs = photoURLs
	trailer.CreatedAt = createdAt.Time
	trailer.UpdatedAt = updatedAt.Time
	return &trailer, nil
}
