package handler

import (
	"net/http"

	"leo-chat/internal/domain/message"
	"leo-chat/internal/services"
	"leo-chat/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	service *services.ChatService
}

func NewChatHandler(service *services.ChatService) *ChatHandler {
	return &ChatHandler{service: service}
}

func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req httpdto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request")
		return
	}

	m := message.Message{
		ConversationID:   req.ConversationID,
		SenderUsername:   req.SenderUsername,
		ReceiverUsername: req.ReceiverUsername,
		SenderPicture:    req.SenderPicture,
		ReceiverPicture:  req.ReceiverPicture,
		SellerID:         req.SellerID,
		BuyerID:          req.BuyerID,
		Body:             req.Body,
		File:             req.File,
		FileType:         req.FileType,
		FileSize:         req.FileSize,
		FileName:         req.FileName,
		GigID:            req.GigID,
		HasOffer:         req.HasOffer,
	}
	if req.Offer != nil {
		m.Offer = message.Offer{
			GigTitle:        req.Offer.GigTitle,
			Price:           req.Offer.Price,
			Description:     req.Offer.Description,
			DeliveryInDays:  req.Offer.DeliveryInDays,
			OldDeliveryDate: req.Offer.OldDeliveryDate,
			NewDeliveryDate: req.Offer.NewDeliveryDate,
			Reason:          req.Offer.Reason,
		}
	}

	saved, err := h.service.SendMessage(c.Request.Context(), services.SendMessageInput{
		HasConversationID: req.HasConversationID,
		Message:           m,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, httpdto.NewSuccessResponse(gin.H{
		"conversationId": saved.ConversationID,
		"messageData":    saved,
	}))
}

func (h *ChatHandler) StartConversation(c *gin.Context) {
	var req httpdto.StartConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request")
		return
	}

	conv, err := h.service.StartConversation(c.Request.Context(), req.ConversationID, req.SenderUsername, req.ReceiverUsername)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, httpdto.NewSuccessResponse(conv))
}

func (h *ChatHandler) GetConversation(c *gin.Context) {
	conversations, err := h.service.GetConversation(c.Request.Context(), c.Param("senderUsername"), c.Param("receiverUsername"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"conversations": conversations}))
}

func (h *ChatHandler) ListConversations(c *gin.Context) {
	items, err := h.service.ListConversations(c.Request.Context(), c.Param("username"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"conversations": items}))
}

// GetMessages serves GET /:ref/:receiverUsername where ref is the sender's username.
func (h *ChatHandler) GetMessages(c *gin.Context) {
	items, err := h.service.GetMessages(c.Request.Context(), c.Param("ref"), c.Param("receiverUsername"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"messages": items}))
}

// GetConversationMessages serves GET /:ref where ref is a conversation id.
func (h *ChatHandler) GetConversationMessages(c *gin.Context) {
	items, err := h.service.GetConversationMessages(c.Request.Context(), c.Param("ref"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"messages": items}))
}

func (h *ChatHandler) UpdateOffer(c *gin.Context) {
	var req httpdto.UpdateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request")
		return
	}
	messageID, err := parseUUID(req.MessageID)
	if err != nil {
		badRequest(c, "invalid message id")
		return
	}

	updated, err := h.service.UpdateOffer(c.Request.Context(), messageID, req.Type)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"singleMessage": updated}))
}

func (h *ChatHandler) MarkRead(c *gin.Context) {
	var req httpdto.MarkReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request")
		return
	}
	messageID, err := parseUUID(req.MessageID)
	if err != nil {
		badRequest(c, "invalid message id")
		return
	}

	updated, err := h.service.MarkRead(c.Request.Context(), messageID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"singleMessage": updated}))
}

func (h *ChatHandler) MarkManyRead(c *gin.Context) {
	var req httpdto.MarkManyReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request")
		return
	}
	messageID, err := parseUUID(req.MessageID)
	if err != nil {
		badRequest(c, "invalid message id")
		return
	}

	updated, err := h.service.MarkManyRead(c.Request.Context(), req.SenderUsername, req.ReceiverUsername, messageID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"singleMessage": updated}))
}
