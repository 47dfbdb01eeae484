package message

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EventMessageUpdated is the event live subscribers receive after a read-state change.
const EventMessageUpdated = "message updated"

// Message represents the messages table
type Message struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ConversationID   string    `gorm:"index;not null" json:"conversationId" validate:"required,max=255"`
	SenderUsername   string    `gorm:"index;not null" json:"senderUsername" validate:"required,max=255"`
	ReceiverUsername string    `gorm:"index;not null" json:"receiverUsername" validate:"required,max=255"`
	SenderPicture    string    `json:"senderPicture,omitempty"`
	ReceiverPicture  string    `json:"receiverPicture,omitempty"`
	SellerID         string    `json:"sellerId,omitempty"`
	BuyerID          string    `json:"buyerId,omitempty"`
	Body             string    `json:"body"`
	File             string    `json:"file,omitempty"`
	FileType         string    `json:"fileType,omitempty"`
	FileSize         int64     `json:"fileSize,omitempty" validate:"gte=0"`
	FileName         string    `json:"fileName,omitempty"`
	GigID            string    `json:"gigId,omitempty"`
	IsRead           bool      `gorm:"not null" json:"isRead"`
	HasOffer         bool      `gorm:"not null" json:"hasOffer"`
	Offer            Offer     `gorm:"embedded;embeddedPrefix:offer_" json:"offer"`
	CreatedAt        time.Time `gorm:"index;not null" json:"createdAt"`
}

// Offer is the commercial proposal embedded in a message. The boolean
// lifecycle flags only ever move from false to true.
type Offer struct {
	GigTitle        string          `json:"gigTitle"`
	Price           decimal.Decimal `gorm:"type:numeric(12,2)" json:"price"`
	Description     string          `json:"description"`
	DeliveryInDays  int             `json:"deliveryInDays"`
	OldDeliveryDate string          `json:"oldDeliveryDate,omitempty"`
	NewDeliveryDate string          `json:"newDeliveryDate,omitempty"`
	Reason          string          `json:"reason,omitempty"`
	Accepted        bool            `gorm:"not null;default:false" json:"accepted"`
	Declined        bool            `gorm:"not null;default:false" json:"declined"`
	Cancelled       bool            `gorm:"not null;default:false" json:"cancelled"`
	Delivered       bool            `gorm:"not null;default:false" json:"delivered"`
	Extended        bool            `gorm:"not null;default:false" json:"extended"`
}

func (Message) TableName() string {
	return "messages"
}
