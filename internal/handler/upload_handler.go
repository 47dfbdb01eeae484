package handler

import (
	"net/http"

	"leo-chat/internal/services"
	"leo-chat/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

type UploadHandler struct {
	service *services.AttachmentService
}

func NewUploadHandler(service *services.AttachmentService) *UploadHandler {
	return &UploadHandler{service: service}
}

func (h *UploadHandler) CreateUploadURL(c *gin.Context) {
	var req httpdto.UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request")
		return
	}

	result, err := h.service.CreatePresignedUpload(c.Request.Context(), services.PresignInput{
		Username:    req.Username,
		FileName:    req.FileName,
		ContentType: req.ContentType,
		FileSize:    req.FileSize,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(result))
}
