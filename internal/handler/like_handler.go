package handler

import (
	"net/http"

	"Orbit_Community/internal/model"
	"Orbit_Community/internal/service"

	"github.com/gin-gonic/gin"
)

type LikeHandler struct {
	svc *service.LikeService
}

func NewLikeHandler(svc *service.LikeService) *LikeHandler {
	return &LikeHandler{svc: svc}
}

type ToggleLikeReq struct {
	TargetType string `json:"target_type"`
	TargetID   uint64 `json:"target_id"`
}

// Toggle 点赞/取消点赞，同一接口切换
func (h *LikeHandler) Toggle(c *gin.Context) {
	var req ToggleLikeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	var tt model.LikeTarget
	switch req.TargetType {
	case string(model.LikePost):
		tt = model.LikePost
	case string(model.LikeComment):
		tt = model.LikeComment
	default:
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid target_type"})
		return
	}

	res, err := h.svc.Toggle(viewerID(c), tt, req.TargetID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"liked": res.Liked, "like_count": res.NewCount})
}
