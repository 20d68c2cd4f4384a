package list_trailers

import (
	"context"

	"github.com/jla-rentals/JLA-BookingService/internal/service/trailers/models"
)

type TrailersService interface {
	ListActive(ctx context.Context) (*models.TrailerListResponse, error)
	GetByID(ctx context.Context, id int64) (*models.TrailerResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
