package repository

import (
	"context"
	"time"

	"leo-chat/internal/domain/conversation"
	chat_errors "leo-chat/pkg/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostgresConversationRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return NewConversationRepositoryWithClock(db, time.Now)
}

func NewConversationRepositoryWithClock(db *gorm.DB, now func() time.Time) *PostgresConversationRepository {
	return &PostgresConversationRepository{db: db, now: now}
}

// Create always inserts; an existing record for the same pair is left alone.
func (r *PostgresConversationRepository) Create(ctx context.Context, conversationID, sender, receiver string) (conversation.Conversation, error) {
	if conversationID == "" || sender == "" || receiver == "" {
		return conversation.Conversation{}, chat_errors.Invalid("conversation id, sender and receiver are required")
	}
	id, err := uuid.NewV7()
	if err != nil {
		return conversation.Conversation{}, chat_errors.Storage(err)
	}
	c := conversation.Conversation{
		ID:               id,
		ConversationID:   conversationID,
		SenderUsername:   sender,
		ReceiverUsername: receiver,
		CreatedAt:        stamp(r.now),
	}
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		return conversation.Conversation{}, mapStorageError(err)
	}
	return c, nil
}

func (r *PostgresConversationRepository) Find(ctx context.Context, sender, receiver string) ([]conversation.Conversation, error) {
	conversations := []conversation.Conversation{}
	err := r.db.WithContext(ctx).
		Scopes(betweenUsers(sender, receiver), chronological).
		Find(&conversations).Error
	if err != nil {
		return nil, mapStorageError(err)
	}
	return conversations, nil
}
