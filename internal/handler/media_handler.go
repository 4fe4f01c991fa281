package handler

import (
	"net/http"

	"Orbit_Community/internal/service"

	"github.com/gin-gonic/gin"
)

type MediaHandler struct {
	svc *service.MediaService
}

func NewMediaHandler(svc *service.MediaService) *MediaHandler {
	return &MediaHandler{svc: svc}
}

// RequestUpload 获取预签名上传地址，客户端直传对象存储
func (h *MediaHandler) RequestUpload(c *gin.Context) {
	if h.svc == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"msg": "media storage not configured"})
		return
	}
	ticket, err := h.svc.RequestUpload(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"upload_url": ticket.UploadURL, "ref": ticket.Ref})
}
