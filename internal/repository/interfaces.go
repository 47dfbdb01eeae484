package repository

import (
	"context"

	"github.com/google/uuid"

	"leo-chat/internal/domain/conversation"
	"leo-chat/internal/domain/message"
)

type ConversationRepository interface {
	Create(ctx context.Context, conversationID, sender, receiver string) (conversation.Conversation, error)
	Find(ctx context.Context, sender, receiver string) ([]conversation.Conversation, error)
}

type MessageRepository interface {
	Persist(ctx context.Context, m *message.Message) (message.Message, error)
	GetByID(ctx context.Context, id uuid.UUID) (message.Message, error)

	MessagesBetween(ctx context.Context, sender, receiver string) ([]message.Message, error)
	MessagesInConversation(ctx context.Context, conversationID string) ([]message.Message, error)
	LatestPerConversation(ctx context.Context, username string) ([]message.Message, error)

	SetOfferFlag(ctx context.Context, id uuid.UUID, flag message.OfferFlag) (message.Message, error)
	MarkRead(ctx context.Context, id uuid.UUID) (message.Message, error)
	MarkAllReadBetween(ctx context.Context, sender, receiver string, targetID uuid.UUID) (message.Message, error)
}
