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

type firestoreChatRepository struct {
	client *firestore.Client
}

func NewFirestoreChatRepository(client *firestore.Client) repository.ChatRepository {
	return &firestoreChatRepository{
		client: client,
	}
}

func (r *firestoreChatRepository) Create(ctx context.Context, chat *entity.Chat) error {
	if chat.ID == "" {
		doc := r.client.Collection("chats").NewDoc()
		chat.ID = doc.ID
	}

	now := time.Now()
	if chat.CreatedAt.IsZero() {
		chat.CreatedAt = now
	}
	chat.UpdatedAt = now

	_, err := r.client.Collection("chats").Doc(chat.ID).Set(ctx, chat)
	if err != nil {
		return errors.Internal("Failed to create chat", err)
	}

	return nil
}

func (r *firestoreChatRepository) GetByID(ctx context.Context, id string) (*entity.Chat, error) {
	doc, err := r.client.Collection("chats").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Chat", err)
		}
		return nil, errors.Internal("Failed to get chat", err)
	}

	var chat entity.Chat
	if err := doc.DataTo(&chat); err != nil {
		return nil, errors.Internal("Failed to parse chat data", err)
	}

	return &chat, nil
}

func (r *firestoreChatRepository) FindByParticipants(ctx context.Context, userA, userB, listingType, listingID string) (*entity.Chat, error) {
	query := r.client.Collection("chats").Query.Where("participants", "array-contains", userA)
	if listingType != "" {
		query = query.Where("listingType", "==", listingType)
	}
	if listingID != "" {
		query = query.Where("listingId", "==", listingID)
	}

	iter := query.Documents(ctx)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			return nil, nil
		}
		if err != nil {
			return nil, errors.Internal("Failed to query chats", err)
		}

		var chat entity.Chat
		if err := doc.DataTo(&chat); err != nil {
			continue
		}

		for _, id := range chat.Participants {
			if id == userB {
				return &chat, nil
			}
		}
	}
}

func (r *firestoreChatRepository) Update(ctx context.Context, chat *entity.Chat) error {
	chat.UpdatedAt = time.Now()

	_, err := r.client.Collection("chats").Doc(chat.ID).Set(ctx, chat)
	if err != nil {
		return errors.Internal("Failed to update chat", err)
	}

	return nil
}

func (r *firestoreChatRepository) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Chat, int64, error) {
	query := r.client.Collection("chats").Query.Where("participants", "array-contains", userID)

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count chats", err)
	}
	total := int64(len(allDocs))

	query = query.OrderBy("lastSentAt", firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var chats []*entity.Chat

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate chats", err)
		}

		var chat entity.Chat
		if err := doc.DataTo(&chat); err != nil {
			return nil, 0, errors.Internal("Failed to parse chat data", err)
		}
		chats = append(chats, &chat)
	}

	return chats, total, nil
}

func (r *firestoreChatRepository) CreateMessage(ctx context.Context, message *entity.Message) error {
	if message.ID == "" {
		doc := r.client.Collection("chats").Doc(message.ChatID).Collection("messages").NewDoc()
		message.ID = doc.ID
	}

	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}

	_, err := r.client.Collection("chats").Doc(message.ChatID).Collection("messages").Doc(message.ID).Set(ctx, message)
	if err != nil {
		return errors.Internal("Failed to create message", err)
	}

	return nil
}

func (r *firestoreChatRepository) ListMessages(ctx context.Context, chatID string, limit, offset int) ([]*entity.Message, int64, error) {
	query := r.client.Collection("chats").Doc(chatID).Collection("messages").Query

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count messages", err)
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
	var messages []*entity.Message

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate messages", err)
		}

		var message entity.Message
		if err := doc.DataTo(&message); err != nil {
			return nil, 0, errors.Internal("Failed to parse message data", err)
		}
		messages = append(messages, &message)
	}

	return messages, total, nil
}

func (r *firestoreChatRepository) MarkMessagesRead(ctx context.Context, chatID, readerID string) error {
	docs, err := r.client.Collection("chats").Doc(chatID).Collection("messages").
		Where("isRead", "==", false).
		Documents(ctx).GetAll()
	if err != nil {
		return errors.Internal("Failed to load unread messages", err)
	}

	now := time.Now()
	batch := r.client.Batch()
	count := 0

	for _, doc := range docs {
		var message entity.Message
		if err := doc.DataTo(&message); err != nil {
			continue
		}

		// Only the recipient's view flips messages to read.
		if message.SenderID == readerID {
			continue
		}

		batch.Update(doc.Ref, []firestore.Update{
			{Path: "isRead", Value: true},
			{Path: "readAt", Value: now},
		})
		count++
	}

	if count == 0 {
		return nil
	}

	if _, err := batch.Commit(ctx); err != nil {
		return errors.Internal("Failed to mark messages read", err)
	}

	return nil
}
