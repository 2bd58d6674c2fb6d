package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"gearswap/internal/domain/entity"
	"gearswap/internal/domain/repository"
	"gearswap/pkg/errors"
)

type firestoreReportRepository struct {
	client *firestore.Client
}

func NewFirestoreReportRepository(client *firestore.Client) repository.ReportRepository {
	return &firestoreReportRepository{
		client: client,
	}
}

func (r *firestoreReportRepository) Create(ctx context.Context, report *entity.Report) error {
	if report.ID == "" {
		doc := r.client.Collection("reports").NewDoc()
		report.ID = doc.ID
	}

	now := time.Now()
	if report.CreatedAt.IsZero() {
		report.CreatedAt = now
	}
	report.UpdatedAt = now

	_, err := r.client.Collection("reports").Doc(report.ID).Set(ctx, report)
	if err != nil {
		return errors.Internal("Failed to create report", err)
	}

	return nil
}

func (r *firestoreReportRepository) GetByID(ctx context.Context, id string) (*entity.Report, error) {
	doc, err := r.client.Collection("reports").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Report", err)
		}
		return nil, errors.Internal("Failed to get report", err)
	}

	var report entity.Report
	if err := doc.DataTo(&report); err != nil {
		return nil, errors.Internal("Failed to parse report data", err)
	}

	return &report, nil
}

func (r *firestoreReportRepository) Update(ctx context.Context, report *entity.Report) error {
	report.UpdatedAt = time.Now()

	_, err := r.client.Collection("reports").Doc(report.ID).Set(ctx, report)
	if err != nil {
		return errors.Internal("Failed to update report", err)
	}

	return nil
}

func (r *firestoreReportRepository) List(ctx context.Context, filter map[string]interface{}, limit, offset int) ([]*entity.Report, int64, error) {
	query := r.client.Collection("reports").Query
	for key, value := range filter {
		query = query.Where(key, "==", value)
	}

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count reports", err)
	}
	total := int64(len(allDocs))

	query = query.OrderBy("createdAt", firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var reports []*entity.Report

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate reports", err)
		}

		var report entity.Report
		if err := doc.DataTo(&report); err != nil {
			return nil, 0, errors.Internal("Failed to parse report data", err)
		}
		reports = append(reports, &report)
	}

	return reports, total, nil
}

func (r *firestoreReportRepository) FindOpenByReporterAndTarget(ctx context.Context, reporterID string, target entity.ReportTarget) (*entity.Report, error) {
	iter := r.client.Collection("reports").
		Where("reporterId", "==", reporterID).
		Where("target.type", "==", string(target.Type)).
		Where("target.id", "==", target.ID).
		Where("status", "in", []string{entity.ReportStatusPending, entity.ReportStatusInvestigating}).
		Limit(1).
		Documents(ctx)

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Internal("Failed to query open reports", err)
	}

	var report entity.Report
	if err := doc.DataTo(&report); err != nil {
		return nil, errors.Internal("Failed to parse report data", err)
	}

	return &report, nil
}
