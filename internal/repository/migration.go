package repository

import (
	"fmt"

	"leo-chat/internal/domain/conversation"
	"leo-chat/internal/domain/message"

	"gorm.io/gorm"
)

// InitSchema creates the chat tables and the lookup indexes the queries rely on.
func InitSchema(db *gorm.DB) error {
	if err := db.AutoMigrate(&conversation.Conversation{}, &message.Message{}); err != nil {
		return fmt.Errorf("failed to auto-migrate chat tables: %w", err)
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_messages_direction_unread ON messages (sender_username, receiver_username, is_read)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_conversation_created ON messages (conversation_id, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_conversations_pair ON conversations (sender_username, receiver_username)`,
	}
	for _, stmt := range indexes {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}
	return nil
}
