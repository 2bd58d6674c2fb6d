package repository

import (
	"context"

	"gearswap/internal/domain/entity"
)

type ReportRepository interface {
	Create(ctx context.Context, report *entity.Report) error
	GetByID(ctx context.Context, id string) (*entity.Report, error)
	Update(ctx context.Context, report *entity.Report) error
	List(ctx context.Context, filter map[string]interface{}, limit, offset int) ([]*entity.Report, int64, error)

	// FindOpenByReporterAndTarget returns a non-resolved report by the same
	// reporter against the same target, or nil when none exists.
	FindOpenByReporterAndTarget(ctx context.Context, reporterID string, target entity.ReportTarget) (*entity.Report, error)
}
