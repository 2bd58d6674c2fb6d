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

type firestoreNotificationRepository struct {
	client *firestore.Client
}

func NewFirestoreNotificationRepository(client *firestore.Client) repository.NotificationRepository {
	return &firestoreNotificationRepository{
		client: client,
	}
}

func (r *firestoreNotificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	if notification.ID == "" {
		doc := r.client.Collection("notifications").NewDoc()
		notification.ID = doc.ID
	}

	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now()
	}

	_, err := r.client.Collection("notifications").Doc(notification.ID).Set(ctx, notification)
	if err != nil {
		return errors.Internal("Failed to create notification", err)
	}

	return nil
}

func (r *firestoreNotificationRepository) GetByID(ctx context.Context, id string) (*entity.Notification, error) {
	doc, err := r.client.Collection("notifications").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Notification", err)
		}
		return nil, errors.Internal("Failed to get notification", err)
	}

	var notification entity.Notification
	if err := doc.DataTo(&notification); err != nil {
		return nil, errors.Internal("Failed to parse notification data", err)
	}

	return &notification, nil
}

func (r *firestoreNotificationRepository) ListByUserID(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]*entity.Notification, int64, error) {
	query := r.client.Collection("notifications").Query.Where("userId", "==", userID)
	if unreadOnly {
		query = query.Where("isRead", "==", false)
	}

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count notifications", err)
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
	var notifications []*entity.Notification

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate notifications", err)
		}

		var notification entity.Notification
		if err := doc.DataTo(&notification); err != nil {
			return nil, 0, errors.Internal("Failed to parse notification data", err)
		}
		notifications = append(notifications, &notification)
	}

	return notifications, total, nil
}

func (r *firestoreNotificationRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	docs, err := r.client.Collection("notifications").
		Where("userId", "==", userID).
		Where("isRead", "==", false).
		Documents(ctx).GetAll()
	if err != nil {
		return 0, errors.Internal("Failed to count unread notifications", err)
	}

	return int64(len(docs)), nil
}

func (r *firestoreNotificationRepository) MarkRead(ctx context.Context, id string) error {
	now := time.Now()
	_, err := r.client.Collection("notifications").Doc(id).Update(ctx, []firestore.Update{
		{Path: "isRead", Value: true},
		{Path: "readAt", Value: now},
	})
	if err != nil {
		return errors.Internal("Failed to mark notification read", err)
	}

	return nil
}

func (r *firestoreNotificationRepository) MarkAllRead(ctx context.Context, userID string) error {
	docs, err := r.client.Collection("notifications").
		Where("userId", "==", userID).
		Where("isRead", "==", false).
		Documents(ctx).GetAll()
	if err != nil {
		return errors.Internal("Failed to load unread notifications", err)
	}

	now := time.Now()
	batch := r.client.Batch()
	for _, doc := range docs {
		batch.Update(doc.Ref, []firestore.Update{
			{Path: "isRead", Value: true},
			{Path: "readAt", Value: now},
		})
	}

	if len(docs) == 0 {
		return nil
	}

	if _, err := batch.Commit(ctx); err != nil {
		return errors.Internal("Failed to mark notifications read", err)
	}

	return nil
}

func (r *firestoreNotificationRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection("notifications").Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete notification", err)
	}

	return nil
}

func (r *firestoreNotificationRepository) DeleteAllByUserID(ctx context.Context, userID string) error {
	docs, err := r.client.Collection("notifications").
		Where("userId", "==", userID).
		Documents(ctx).GetAll()
	if err != nil {
		return errors.Internal("Failed to load notifications", err)
	}

	if len(docs) == 0 {
		return nil
	}

	batch := r.client.Batch()
	for _, doc := range docs {
		batch.Delete(doc.Ref)
	}

	if _, err := batch.Commit(ctx); err != nil {
		return errors.Internal("Failed to clear notifications", err)
	}

	return nil
}
