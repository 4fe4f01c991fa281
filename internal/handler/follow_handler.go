package handler

import (
	"net/http"

	"Orbit_Community/internal/service"

	"github.com/gin-gonic/gin"
)

type FollowHandler struct {
	svc *service.FollowService
}

func NewFollowHandler(svc *service.FollowService) *FollowHandler {
	return &FollowHandler{svc: svc}
}

// Follow 关注，重复关注不报错
func (h *FollowHandler) Follow(c *gin.Context) {
	followeeID, ok := pathID(c)
	if !ok {
		return
	}
	changed, err := h.svc.Follow(c.Request.Context(), viewerID(c), followeeID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"changed": changed})
}

func (h *FollowHandler) Unfollow(c *gin.Context) {
	followeeID, ok := pathID(c)
	if !ok {
		return
	}
	changed, err := h.svc.Unfollow(c.Request.Context(), viewerID(c), followeeID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"changed": changed})
}

func (h *FollowHandler) IsFollowing(c *gin.Context) {
	followeeID, ok := pathID(c)
	if !ok {
		return
	}
	following, err := h.svc.IsFollowing(c.Request.Context(), viewerID(c), followeeID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"following": following})
}
