package services

import (
	"context"

	"leo-chat/internal/domain/message"
	"leo-chat/internal/events"
	"leo-chat/internal/repository"
	chat_errors "leo-chat/pkg/errors"
	"leo-chat/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReadStateManager applies read receipts and tells live subscribers about them.
type ReadStateManager struct {
	messages    repository.MessageRepository
	broadcaster events.Broadcaster
	logger      *logger.Logger
}

func NewReadStateManager(messages repository.MessageRepository, broadcaster events.Broadcaster, l *logger.Logger) *ReadStateManager {
	return &ReadStateManager{messages: messages, broadcaster: broadcaster, logger: l}
}

func (s *ReadStateManager) MarkRead(ctx context.Context, messageID uuid.UUID) (message.Message, error) {
	m, err := s.messages.MarkRead(ctx, messageID)
	if err != nil {
		return message.Message{}, err
	}
	s.emit(ctx, m)
	return m, nil
}

// MarkAllReadBetween marks sender->receiver traffic as read and broadcasts the target message.
func (s *ReadStateManager) MarkAllReadBetween(ctx context.Context, sender, receiver string, targetID uuid.UUID) (message.Message, error) {
	m, err := s.messages.MarkAllReadBetween(ctx, sender, receiver, targetID)
	if err != nil {
		return message.Message{}, err
	}
	s.emit(ctx, m)
	return m, nil
}

// emit never fails the caller; a lost broadcast only shows up in the logs.
func (s *ReadStateManager) emit(ctx context.Context, m message.Message) {
	if err := s.broadcaster.Emit(ctx, message.EventMessageUpdated, m); err != nil {
		s.logger.WithContext(ctx).Warn("broadcast failed",
			zap.String("event", message.EventMessageUpdated),
			zap.String("message_id", m.ID.String()),
			zap.Error(chat_errors.Notification(err)),
		)
	}
}
