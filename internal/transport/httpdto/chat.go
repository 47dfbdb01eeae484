package httpdto

import (
	"github.com/shopspring/decimal"
)

// OfferPayload is the offer sub-record sent with POST /api/v1/chat
type OfferPayload struct {
	GigTitle        string          `json:"gigTitle"`
	Price           decimal.Decimal `json:"price"`
	Description     string          `json:"description"`
	DeliveryInDays  int             `json:"deliveryInDays"`
	OldDeliveryDate string          `json:"oldDeliveryDate"`
	NewDeliveryDate string          `json:"newDeliveryDate"`
	Reason          string          `json:"reason"`
}

// SendMessageRequest is used for POST /api/v1/chat
type SendMessageRequest struct {
	ConversationID    string        `json:"conversationId"`
	HasConversationID bool          `json:"hasConversationId"`
	SenderUsername    string        `json:"senderUsername" binding:"required"`
	ReceiverUsername  string        `json:"receiverUsername" binding:"required"`
	SenderPicture     string        `json:"senderPicture"`
	ReceiverPicture   string        `json:"receiverPicture"`
	SellerID          string        `json:"sellerId"`
	BuyerID           string        `json:"buyerId"`
	Body              string        `json:"body"`
	File              string        `json:"file"`
	FileType          string        `json:"fileType"`
	FileSize          int64         `json:"fileSize" binding:"gte=0"`
	FileName          string        `json:"fileName"`
	GigID             string        `json:"gigId"`
	HasOffer          bool          `json:"hasOffer"`
	Offer             *OfferPayload `json:"offer"`
}

// StartConversationRequest is used for POST /api/v1/chat/conversation
type StartConversationRequest struct {
	ConversationID   string `json:"conversationId"`
	SenderUsername   string `json:"senderUsername" binding:"required"`
	ReceiverUsername string `json:"receiverUsername" binding:"required"`
}

// UpdateOfferRequest is used for PUT /api/v1/chat/offer
type UpdateOfferRequest struct {
	MessageID string `json:"messageId" binding:"required,uuid"`
	Type      string `json:"type" binding:"required"`
}

// MarkReadRequest is used for PUT /api/v1/chat/mark-as-read
type MarkReadRequest struct {
	MessageID string `json:"messageId" binding:"required,uuid"`
}

// MarkManyReadRequest is used for PUT /api/v1/chat/mark-multiple-as-read
type MarkManyReadRequest struct {
	MessageID        string `json:"messageId" binding:"required,uuid"`
	SenderUsername   string `json:"senderUsername" binding:"required"`
	ReceiverUsername string `json:"receiverUsername" binding:"required"`
}

// UploadURLRequest is used for POST /api/v1/chat/files/upload-url
type UploadURLRequest struct {
	Username    string `json:"username" binding:"required"`
	FileName    string `json:"fileName" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
	FileSize    int64  `json:"fileSize" binding:"required,gt=0"`
}
