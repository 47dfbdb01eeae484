package conversation

import (
	"time"

	"github.com/google/uuid"
)

// Conversation represents the conversations table. A sender/receiver pair
// may own more than one record; nothing here deduplicates them.
type Conversation struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ConversationID   string    `gorm:"index;not null" json:"conversationId"`
	SenderUsername   string    `gorm:"index;not null" json:"senderUsername"`
	ReceiverUsername string    `gorm:"index;not null" json:"receiverUsername"`
	CreatedAt        time.Time `gorm:"not null" json:"createdAt"`
}

func (Conversation) TableName() string {
	return "conversations"
}
