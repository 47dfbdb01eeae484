package services

import (
	"context"

	"leo-chat/internal/domain/conversation"
	"leo-chat/internal/domain/message"
	"leo-chat/internal/repository"
	chat_errors "leo-chat/pkg/errors"

	"github.com/google/uuid"
)

// SendMessageInput is a new message plus whether the client already holds a conversation record.
type SendMessageInput struct {
	HasConversationID bool
	Message           message.Message
}

// ChatService implements the chat use cases on top of the stores.
type ChatService struct {
	conversations repository.ConversationRepository
	messages      repository.MessageRepository
	readState     *ReadStateManager
}

func NewChatService(conversations repository.ConversationRepository, messages repository.MessageRepository, readState *ReadStateManager) *ChatService {
	return &ChatService{
		conversations: conversations,
		messages:      messages,
		readState:     readState,
	}
}

// SendMessage stores a message, opening a conversation record first when the client has none.
// Offer notifications are raised by the message store's persist hook.
func (s *ChatService) SendMessage(ctx context.Context, input SendMessageInput) (message.Message, error) {
	m := input.Message
	if !input.HasConversationID && m.ConversationID == "" {
		m.ConversationID = uuid.NewString()
	}
	if err := m.Validate(); err != nil {
		return message.Message{}, err
	}

	if !input.HasConversationID {
		if _, err := s.conversations.Create(ctx, m.ConversationID, m.SenderUsername, m.ReceiverUsername); err != nil {
			return message.Message{}, err
		}
	}

	return s.messages.Persist(ctx, &m)
}

// StartConversation records a conversation for the pair. An empty id is replaced with a fresh one.
func (s *ChatService) StartConversation(ctx context.Context, conversationID, sender, receiver string) (conversation.Conversation, error) {
	if conversationID == "" {
		conversationID = uuid.NewString()
	}
	return s.conversations.Create(ctx, conversationID, sender, receiver)
}

func (s *ChatService) GetConversation(ctx context.Context, sender, receiver string) ([]conversation.Conversation, error) {
	return s.conversations.Find(ctx, sender, receiver)
}

func (s *ChatService) ListConversations(ctx context.Context, username string) ([]message.Message, error) {
	return s.messages.LatestPerConversation(ctx, username)
}

func (s *ChatService) GetMessages(ctx context.Context, sender, receiver string) ([]message.Message, error) {
	return s.messages.MessagesBetween(ctx, sender, receiver)
}

func (s *ChatService) GetConversationMessages(ctx context.Context, conversationID string) ([]message.Message, error) {
	return s.messages.MessagesInConversation(ctx, conversationID)
}

func (s *ChatService) UpdateOffer(ctx context.Context, messageID uuid.UUID, flagName string) (message.Message, error) {
	flag, ok := message.ParseOfferFlag(flagName)
	if !ok {
		return message.Message{}, chat_errors.Invalid("unknown offer flag %q", flagName)
	}
	return s.messages.SetOfferFlag(ctx, messageID, flag)
}

func (s *ChatService) MarkRead(ctx context.Context, messageID uuid.UUID) (message.Message, error) {
	return s.readState.MarkRead(ctx, messageID)
}

func (s *ChatService) MarkManyRead(ctx context.Context, sender, receiver string, messageID uuid.UUID) (message.Message, error) {
	return s.readState.MarkAllReadBetween(ctx, sender, receiver, messageID)
}
